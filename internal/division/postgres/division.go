package postgres

import (
	"time"

	divisionDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/division"
	ouDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/ou"
	"github.com/ijanvdwesz/credential-management/internal/division"
	"gorm.io/gorm"
)

type DivisionRepository struct {
	db *gorm.DB
}

func NewDivisionRepository(db *gorm.DB) division.RepositoryAPI {
	return &DivisionRepository{db: db}
}

func (r *DivisionRepository) GetAll() ([]*divisionDatamodel.Division, error) {
	var records []*divisionDatamodel.Division
	err := r.db.Preload("OU").Order("name ASC").Find(&records).Error
	return records, err
}

func (r *DivisionRepository) GetByOUID(ouID int64) ([]*divisionDatamodel.Division, error) {
	var records []*divisionDatamodel.Division
	err := r.db.Where("ou_id = ?", ouID).Order("name ASC").Find(&records).Error
	return records, err
}

func (r *DivisionRepository) Create(record *divisionDatamodel.Division) error {
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	return r.db.Create(record).Error
}

func (r *DivisionRepository) OUExists(ouID int64) (bool, error) {
	var count int64
	err := r.db.Model(&ouDatamodel.OU{}).Where("id = ?", ouID).Count(&count).Error
	return count > 0, err
}
