package postgres

import (
	"errors"
	"time"

	divisionDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/division"
	ouDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/ou"
	userDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/user"
	"github.com/ijanvdwesz/credential-management/internal/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetAll() ([]*userDatamodel.User, error) {
	var records []*userDatamodel.User
	err := r.db.Preload("OUs").Preload("Divisions").Order("id ASC").Find(&records).Error
	return records, err
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var record userDatamodel.User
	err := r.db.Preload("OUs").Preload("Divisions").Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *UserRepository) UpdateRole(id int64, role string) error {
	return r.db.Model(&userDatamodel.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"role":       role,
		"updated_at": time.Now(),
	}).Error
}

// AddDivision inserts the membership row, ignoring the conflict when the
// pair already exists so assignment stays idempotent.
func (r *UserRepository) AddDivision(userID, divisionID int64) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&userDatamodel.UserDivision{
		UserID:     userID,
		DivisionID: divisionID,
	}).Error
}

func (r *UserRepository) RemoveDivision(userID, divisionID int64) error {
	return r.db.Where("user_id = ? AND division_id = ?", userID, divisionID).
		Delete(&userDatamodel.UserDivision{}).Error
}

func (r *UserRepository) AddOU(userID, ouID int64) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&userDatamodel.UserOU{
		UserID: userID,
		OUID:   ouID,
	}).Error
}

func (r *UserRepository) RemoveOU(userID, ouID int64) error {
	return r.db.Where("user_id = ? AND ou_id = ?", userID, ouID).
		Delete(&userDatamodel.UserOU{}).Error
}

func (r *UserRepository) DivisionExists(divisionID int64) (bool, error) {
	var count int64
	err := r.db.Model(&divisionDatamodel.Division{}).Where("id = ?", divisionID).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) OUExists(ouID int64) (bool, error) {
	var count int64
	err := r.db.Model(&ouDatamodel.OU{}).Where("id = ?", ouID).Count(&count).Error
	return count > 0, err
}
