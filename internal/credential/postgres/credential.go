package postgres

import (
	"errors"
	"time"

	credentialDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/credential"
	divisionDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/division"
	"github.com/ijanvdwesz/credential-management/internal/credential"
	"gorm.io/gorm"
)

type CredentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) credential.RepositoryAPI {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) GetAll() ([]*credentialDatamodel.Credential, error) {
	var records []*credentialDatamodel.Credential
	err := r.db.Preload("Division").Order("id ASC").Find(&records).Error
	return records, err
}

func (r *CredentialRepository) GetByID(id int64) (*credentialDatamodel.Credential, error) {
	var record credentialDatamodel.Credential
	err := r.db.Preload("Division").Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *CredentialRepository) GetByDivisionID(divisionID int64) ([]*credentialDatamodel.Credential, error) {
	var records []*credentialDatamodel.Credential
	err := r.db.Preload("Division").Where("division_id = ?", divisionID).Order("id ASC").Find(&records).Error
	return records, err
}

func (r *CredentialRepository) GetByDivisionIDs(divisionIDs []int64) ([]*credentialDatamodel.Credential, error) {
	if len(divisionIDs) == 0 {
		return []*credentialDatamodel.Credential{}, nil
	}
	var records []*credentialDatamodel.Credential
	err := r.db.Preload("Division").Where("division_id IN ?", divisionIDs).Order("id ASC").Find(&records).Error
	return records, err
}

func (r *CredentialRepository) Create(record *credentialDatamodel.Credential) error {
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	return r.db.Create(record).Error
}

func (r *CredentialRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	return r.db.Model(&credentialDatamodel.Credential{}).Where("id = ?", id).Updates(fields).Error
}

func (r *CredentialRepository) DivisionExists(divisionID int64) (bool, error) {
	var count int64
	err := r.db.Model(&divisionDatamodel.Division{}).Where("id = ?", divisionID).Count(&count).Error
	return count > 0, err
}
