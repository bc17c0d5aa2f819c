package credential

import (
	"time"

	divisiondm "github.com/ijanvdwesz/credential-management/internal/core/datamodel/division"
)

type Credential struct {
	ID          int64                `gorm:"primaryKey"`
	Username    string               `gorm:"column:username;not null"`
	Password    string               `gorm:"column:password;not null"`
	Description string               `gorm:"column:description"`
	Place       string               `gorm:"column:place;not null"`
	DivisionID  int64                `gorm:"column:division_id;not null;index"`
	Division    *divisiondm.Division `gorm:"foreignKey:DivisionID"`
	CreatedAt   time.Time            `gorm:"column:created_at"`
	UpdatedAt   time.Time            `gorm:"column:updated_at"`
}

func (Credential) TableName() string {
	return "credentials"
}
