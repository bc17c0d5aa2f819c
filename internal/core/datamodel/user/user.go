package user

import (
	"time"

	divisiondm "github.com/ijanvdwesz/credential-management/internal/core/datamodel/division"
	oudm "github.com/ijanvdwesz/credential-management/internal/core/datamodel/ou"
	"gorm.io/gorm"
)

type User struct {
	ID           int64                 `gorm:"primaryKey"`
	Name         string                `gorm:"column:name;not null"`
	Email        string                `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string                `gorm:"column:password_hash;not null"`
	Role         string                `gorm:"column:role;not null;default:normal_user"`
	OUs          []oudm.OU             `gorm:"many2many:user_ous;joinReferences:OuID"`
	Divisions    []divisiondm.Division `gorm:"many2many:user_divisions;"`
	CreatedAt    time.Time             `gorm:"column:created_at"`
	UpdatedAt    time.Time             `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserOU and UserDivision mirror the membership join tables so repositories
// can mutate memberships with set semantics instead of rewriting the whole
// association list.
type UserOU struct {
	UserID int64 `gorm:"column:user_id;primaryKey"`
	OUID   int64 `gorm:"column:ou_id;primaryKey"`
}

func (UserOU) TableName() string {
	return "user_ous"
}

type UserDivision struct {
	UserID     int64 `gorm:"column:user_id;primaryKey"`
	DivisionID int64 `gorm:"column:division_id;primaryKey"`
}

func (UserDivision) TableName() string {
	return "user_divisions"
}

// RegisterJoinTables binds the explicit join models to the membership
// associations. Without this gorm derives its own reference columns for the
// implicit join tables, which do not match the migrated schema, and
// preloading memberships comes back empty. Must run on every gorm handle
// before the user repositories are used.
func RegisterJoinTables(db *gorm.DB) error {
	if err := db.SetupJoinTable(&User{}, "OUs", &UserOU{}); err != nil {
		return err
	}
	return db.SetupJoinTable(&User{}, "Divisions", &UserDivision{})
}
