package postgres

import (
	ouDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/ou"
	"github.com/ijanvdwesz/credential-management/internal/ou"
	"gorm.io/gorm"
)

type OURepository struct {
	db *gorm.DB
}

func NewOURepository(db *gorm.DB) ou.RepositoryAPI {
	return &OURepository{db: db}
}

func (r *OURepository) GetAll() ([]*ouDatamodel.OU, error) {
	var records []*ouDatamodel.OU
	err := r.db.Order("name ASC").Find(&records).Error
	return records, err
}
