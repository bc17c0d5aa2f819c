package division

import (
	"log/slog"

	"github.com/ijanvdwesz/credential-management/internal"
	divisionDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/division"
)

type RepositoryAPI interface {
	GetAll() ([]*divisionDatamodel.Division, error)
	GetByOUID(ouID int64) ([]*divisionDatamodel.Division, error)
	Create(record *divisionDatamodel.Division) error
	OUExists(ouID int64) (bool, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListDivisions returns every division with its OU populated. This is a
// global listing used by the assignment and credential-creation forms; it is
// not filtered by the caller's scope.
func (s *Service) ListDivisions() ([]*Division, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list divisions", "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}
	return FromDataModelSlice(records), nil
}

// CreateDivision creates a division under an existing OU.
func (s *Service) CreateDivision(dto CreateDivisionDTO) (*Division, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	exists, err := s.repo.OUExists(dto.OU)
	if err != nil {
		s.logger.Error("failed to check OU existence", "error", err, "ou_id", dto.OU)
		return nil, internal.NewInternalError("Server error", err)
	}
	if !exists {
		return nil, internal.ErrOUNotFound
	}

	record := &divisionDatamodel.Division{
		Name: dto.Name,
		OUID: dto.OU,
	}
	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create division", "error", err, "name", dto.Name)
		return nil, internal.NewInternalError("Server error", err)
	}

	s.logger.Info("division created", "division_id", record.ID, "name", record.Name, "ou_id", record.OUID)
	return FromDataModel(record), nil
}

// ListDivisionsByOU returns the divisions belonging to one OU.
func (s *Service) ListDivisionsByOU(ouID int64) ([]*Division, error) {
	exists, err := s.repo.OUExists(ouID)
	if err != nil {
		s.logger.Error("failed to check OU existence", "error", err, "ou_id", ouID)
		return nil, internal.NewInternalError("Server error", err)
	}
	if !exists {
		return nil, internal.ErrOUNotFound
	}

	records, err := s.repo.GetByOUID(ouID)
	if err != nil {
		s.logger.Error("failed to list divisions by OU", "error", err, "ou_id", ouID)
		return nil, internal.NewInternalError("Server error", err)
	}
	return FromDataModelSlice(records), nil
}
