package division

import (
	"time"

	divisionDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/division"
	"github.com/ijanvdwesz/credential-management/internal/ou"
)

// Division is the unit of access scoping: credentials belong to exactly one
// Division, and user memberships are granted per Division.
type Division struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OUID      int64     `json:"ou_id"`
	OU        *ou.OU    `json:"ou,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromDataModel(d *divisionDatamodel.Division) *Division {
	div := &Division{
		ID:        d.ID,
		Name:      d.Name,
		OUID:      d.OUID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.OU != nil {
		div.OU = ou.FromDataModel(d.OU)
	}
	return div
}

func FromDataModelSlice(records []*divisionDatamodel.Division) []*Division {
	result := make([]*Division, len(records))
	for i, d := range records {
		result[i] = FromDataModel(d)
	}
	return result
}
