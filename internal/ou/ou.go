package ou

import (
	"time"

	ouDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/ou"
)

// OU is an Organizational Unit, the root scoping unit. Divisions hang off it.
type OU struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromDataModel(o *ouDatamodel.OU) *OU {
	return &OU{
		ID:        o.ID,
		Name:      o.Name,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func FromDataModelSlice(records []*ouDatamodel.OU) []*OU {
	result := make([]*OU, len(records))
	for i, o := range records {
		result[i] = FromDataModel(o)
	}
	return result
}
