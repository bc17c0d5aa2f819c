package credential

import (
	"context"
	"log/slog"

	"github.com/ijanvdwesz/credential-management/internal"
	"github.com/ijanvdwesz/credential-management/internal/auth"
	"github.com/ijanvdwesz/credential-management/internal/core/events"

	credentialDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/credential"
)

type RepositoryAPI interface {
	GetAll() ([]*credentialDatamodel.Credential, error)
	GetByID(id int64) (*credentialDatamodel.Credential, error)
	GetByDivisionID(divisionID int64) ([]*credentialDatamodel.Credential, error)
	GetByDivisionIDs(divisionIDs []int64) ([]*credentialDatamodel.Credential, error)
	Create(record *credentialDatamodel.Credential) error
	UpdateFields(id int64, fields map[string]interface{}) error
	DivisionExists(divisionID int64) (bool, error)
}

type Service struct {
	repo         RepositoryAPI
	scope        *auth.ScopeResolver
	eventBus     *events.EventBus
	logger       *slog.Logger
	enforceScope bool
}

// NewService wires the credential service. enforceScope gates division
// membership checks on the scoped read and write paths; listing for a
// principal is always scoped regardless of the flag.
func NewService(repo RepositoryAPI, scope *auth.ScopeResolver, eventBus *events.EventBus, logger *slog.Logger, enforceScope bool) *Service {
	return &Service{
		repo:         repo,
		scope:        scope,
		eventBus:     eventBus,
		logger:       logger,
		enforceScope: enforceScope,
	}
}

// ListForPrincipal returns the credentials the caller may see: everything
// for admins, otherwise the credentials of the caller's member divisions.
// A caller with no division memberships gets an empty list, not an error.
func (s *Service) ListForPrincipal(principal *auth.User) ([]*Credential, error) {
	ids, unrestricted := s.scope.AuthorizedDivisionIDs(principal)
	if unrestricted {
		records, err := s.repo.GetAll()
		if err != nil {
			s.logger.Error("failed to list credentials", "error", err)
			return nil, internal.NewInternalError("Server error", err)
		}
		return FromDataModelSlice(records), nil
	}

	if len(ids) == 0 {
		return []*Credential{}, nil
	}
	records, err := s.repo.GetByDivisionIDs(ids)
	if err != nil {
		s.logger.Error("failed to list credentials by divisions", "error", err, "user_id", principal.ID)
		return nil, internal.NewInternalError("Server error", err)
	}
	return FromDataModelSlice(records), nil
}

// ListByDivision returns the credentials of one division. The division must
// exist; when scope enforcement is on the caller must also be a member of it.
func (s *Service) ListByDivision(principal *auth.User, divisionID int64) ([]*Credential, error) {
	exists, err := s.repo.DivisionExists(divisionID)
	if err != nil {
		s.logger.Error("failed to check division existence", "error", err, "division_id", divisionID)
		return nil, internal.NewInternalError("Server error", err)
	}
	if !exists {
		return nil, internal.ErrDivisionNotFound
	}

	if s.enforceScope && !s.scope.IsDivisionInScope(principal, divisionID) {
		return nil, internal.ErrDivisionOutOfScope
	}

	records, err := s.repo.GetByDivisionID(divisionID)
	if err != nil {
		s.logger.Error("failed to list credentials by division", "error", err, "division_id", divisionID)
		return nil, internal.NewInternalError("Server error", err)
	}
	return FromDataModelSlice(records), nil
}

// CreateCredential stores a new credential in an existing division.
func (s *Service) CreateCredential(ctx context.Context, principal *auth.User, dto CreateCredentialDTO) (*Credential, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	exists, err := s.repo.DivisionExists(dto.Division)
	if err != nil {
		s.logger.Error("failed to check division existence", "error", err, "division_id", dto.Division)
		return nil, internal.NewInternalError("Server error", err)
	}
	if !exists {
		return nil, internal.ErrDivisionNotFound
	}

	if s.enforceScope && !s.scope.IsDivisionInScope(principal, dto.Division) {
		return nil, internal.ErrDivisionOutOfScope
	}

	record := &credentialDatamodel.Credential{
		Username:    dto.Username,
		Password:    dto.Password,
		Description: dto.Description,
		Place:       dto.Place,
		DivisionID:  dto.Division,
	}
	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create credential", "error", err, "division_id", dto.Division)
		return nil, internal.NewInternalError("Server error", err)
	}

	s.logger.Info("credential created",
		"credential_id", record.ID,
		"division_id", record.DivisionID,
		"actor_user_id", principal.ID)
	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.NewCredentialCreatedEvent(record.ID, record.DivisionID, principal.ID))
	}

	// Re-read so the response carries the joined division name.
	stored, err := s.repo.GetByID(record.ID)
	if err != nil || stored == nil {
		return FromDataModel(record), nil
	}
	return FromDataModel(stored), nil
}

// UpdateCredential applies a partial update to an existing credential. The
// scope check runs against the credential's stored division.
func (s *Service) UpdateCredential(ctx context.Context, principal *auth.User, id int64, dto UpdateCredentialDTO) (*Credential, error) {
	if dto.Empty() {
		return nil, internal.NewValidationError("No fields to update", internal.ErrCodeEmptyUpdate)
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get credential", "error", err, "credential_id", id)
		return nil, internal.NewInternalError("Server error", err)
	}
	if record == nil {
		return nil, internal.ErrCredentialNotFound
	}

	if s.enforceScope && !s.scope.IsDivisionInScope(principal, record.DivisionID) {
		return nil, internal.ErrDivisionOutOfScope
	}

	if err := s.repo.UpdateFields(id, dto.Fields()); err != nil {
		s.logger.Error("failed to update credential", "error", err, "credential_id", id)
		return nil, internal.NewInternalError("Server error", err)
	}

	s.logger.Info("credential updated",
		"credential_id", id,
		"division_id", record.DivisionID,
		"actor_user_id", principal.ID)
	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.NewCredentialUpdatedEvent(id, record.DivisionID, principal.ID))
	}

	updated, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to reload credential", "error", err, "credential_id", id)
		return nil, internal.NewInternalError("Server error", err)
	}
	if updated == nil {
		return nil, internal.ErrCredentialNotFound
	}
	return FromDataModel(updated), nil
}
