package division

import (
	"time"

	oudm "github.com/ijanvdwesz/credential-management/internal/core/datamodel/ou"
)

type Division struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	OUID      int64     `gorm:"column:ou_id;not null;index"`
	OU        *oudm.OU  `gorm:"foreignKey:OUID"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Division) TableName() string {
	return "divisions"
}
