package postgres

import (
	"errors"
	"time"

	"github.com/ijanvdwesz/credential-management/internal/auth"
	userDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetPasswordForEmail(email string) (string, int64, error) {
	var row struct {
		ID           int64
		PasswordHash string
	}
	err := r.db.Model(&userDatamodel.User{}).
		Select("id", "password_hash").
		Where("email = ?", email).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", 0, auth.ErrUserNotFound
		}
		return "", 0, err
	}
	return row.PasswordHash, row.ID, nil
}

func (r *Repository) GetUserByID(userID int64) (*auth.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", userID).Take(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	ouIDs, err := r.membershipIDs(&userDatamodel.UserOU{}, "ou_id", userID)
	if err != nil {
		return nil, err
	}
	divisionIDs, err := r.membershipIDs(&userDatamodel.UserDivision{}, "division_id", userID)
	if err != nil {
		return nil, err
	}

	return &auth.User{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        auth.Role(u.Role),
		OUIDs:       ouIDs,
		DivisionIDs: divisionIDs,
	}, nil
}

func (r *Repository) membershipIDs(model interface{}, column string, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(model).
		Where("user_id = ?", userID).
		Pluck(column, &ids).Error
	return ids, err
}

func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateUser(name, email, passwordHash string, role auth.Role) (*auth.User, error) {
	now := time.Now()
	record := &userDatamodel.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         string(role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := r.db.Create(record).Error; err != nil {
		return nil, err
	}

	return &auth.User{
		ID:    record.ID,
		Name:  record.Name,
		Email: record.Email,
		Role:  auth.Role(record.Role),
	}, nil
}
