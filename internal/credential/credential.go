package credential

import (
	"time"

	credentialDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/credential"
)

// Credential is a stored secret record tied to one Division. The password
// field is stored and returned as-is; encrypting it at rest is an open
// question tracked in DESIGN.md.
type Credential struct {
	ID          int64       `json:"id"`
	Username    string      `json:"username"`
	Password    string      `json:"password"`
	Description string      `json:"description"`
	Place       string      `json:"place"`
	Division    DivisionRef `json:"division"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// DivisionRef is the joined division identity returned with every
// credential listing.
type DivisionRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func FromDataModel(c *credentialDatamodel.Credential) *Credential {
	cred := &Credential{
		ID:          c.ID,
		Username:    c.Username,
		Password:    c.Password,
		Description: c.Description,
		Place:       c.Place,
		Division:    DivisionRef{ID: c.DivisionID},
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.Division != nil {
		cred.Division.Name = c.Division.Name
	}
	return cred
}

func FromDataModelSlice(records []*credentialDatamodel.Credential) []*Credential {
	result := make([]*Credential, len(records))
	for i, c := range records {
		result[i] = FromDataModel(c)
	}
	return result
}
