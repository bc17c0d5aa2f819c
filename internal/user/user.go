package user

import (
	"time"

	userDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/user"
)

// User is the administrative view of an account: identity, role and the
// resolved OU and Division memberships.
type User struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      string      `json:"role"`
	OUs       []MemberRef `json:"ous"`
	Divisions []MemberRef `json:"divisions"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// MemberRef names one OU or Division a user belongs to.
type MemberRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserInfo is the self-service view returned to any authenticated caller:
// the role plus the divisions the caller may browse credentials for.
type UserInfo struct {
	Role      string      `json:"role"`
	Divisions []MemberRef `json:"divisions"`
}

// RoleChangeResult is the trimmed shape returned after a role update.
type RoleChangeResult struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func FromDataModel(u *userDatamodel.User) *User {
	result := &User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		OUs:       make([]MemberRef, len(u.OUs)),
		Divisions: make([]MemberRef, len(u.Divisions)),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	for i, ou := range u.OUs {
		result.OUs[i] = MemberRef{ID: ou.ID, Name: ou.Name}
	}
	for i, d := range u.Divisions {
		result.Divisions[i] = MemberRef{ID: d.ID, Name: d.Name}
	}
	return result
}

func FromDataModelSlice(records []*userDatamodel.User) []*User {
	result := make([]*User, len(records))
	for i, u := range records {
		result[i] = FromDataModel(u)
	}
	return result
}
