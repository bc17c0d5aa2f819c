package ou

import (
	"log/slog"

	ouDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/ou"
)

type RepositoryAPI interface {
	GetAll() ([]*ouDatamodel.OU, error)
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

// ListOUs returns every Organizational Unit. Callers are gated to admins at
// the route level; there is no per-OU scoping for the global admin view.
func (s *Service) ListOUs() ([]*OU, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list OUs", "error", err)
		return nil, err
	}
	return FromDataModelSlice(records), nil
}
