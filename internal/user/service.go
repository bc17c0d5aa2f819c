package user

import (
	"context"
	"log/slog"

	"github.com/ijanvdwesz/credential-management/internal"
	"github.com/ijanvdwesz/credential-management/internal/auth"
	"github.com/ijanvdwesz/credential-management/internal/core/events"

	userDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	GetAll() ([]*userDatamodel.User, error)
	GetByID(id int64) (*userDatamodel.User, error)
	UpdateRole(id int64, role string) error
	AddDivision(userID, divisionID int64) error
	RemoveDivision(userID, divisionID int64) error
	AddOU(userID, ouID int64) error
	RemoveOU(userID, ouID int64) error
	DivisionExists(divisionID int64) (bool, error)
	OUExists(ouID int64) (bool, error)
}

type Service struct {
	repo     RepositoryAPI
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// GetUserInfo returns the caller's own role and division memberships.
func (s *Service) GetUserInfo(userID int64) (*UserInfo, error) {
	record, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Server error", err)
	}
	if record == nil {
		return nil, internal.ErrUserNotFound
	}

	u := FromDataModel(record)
	return &UserInfo{
		Role:      u.Role,
		Divisions: u.Divisions,
	}, nil
}

// ListUsers returns every account with memberships populated. Admin only;
// the role gate enforces that at the transport layer.
func (s *Service) ListUsers() ([]*User, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}
	return FromDataModelSlice(records), nil
}

// ChangeRole sets a user's role to one of the enumerated values. The change
// takes effect on the target's next request; tokens already issued keep
// working.
func (s *Service) ChangeRole(ctx context.Context, actor *auth.User, userID int64, newRole string) (*RoleChangeResult, error) {
	if !auth.ValidRole(newRole) {
		return nil, internal.NewValidationError("Invalid role provided", internal.ErrCodeInvalidRole)
	}

	record, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Server error", err)
	}
	if record == nil {
		return nil, internal.ErrUserNotFound
	}

	oldRole := record.Role
	if err := s.repo.UpdateRole(userID, newRole); err != nil {
		s.logger.Error("failed to update role", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Server error", err)
	}

	s.logger.Info("user role changed",
		"user_id", userID,
		"old_role", oldRole,
		"new_role", newRole,
		"actor_user_id", actor.ID)
	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.NewUserRoleChangedEvent(userID, actor.ID, oldRole, newRole))
	}

	return &RoleChangeResult{
		ID:    record.ID,
		Name:  record.Name,
		Email: record.Email,
		Role:  newRole,
	}, nil
}

// AssignDivision adds a division membership. Both the user and the division
// must exist; re-assigning an existing membership is a no-op, not an error.
func (s *Service) AssignDivision(ctx context.Context, actor *auth.User, userID, divisionID int64) error {
	if err := s.checkUserAndDivision(userID, divisionID); err != nil {
		return err
	}
	if err := s.repo.AddDivision(userID, divisionID); err != nil {
		s.logger.Error("failed to assign division", "error", err, "user_id", userID, "division_id", divisionID)
		return internal.NewInternalError("Server error", err)
	}
	s.publishMembershipChange(ctx, actor, userID, "division", divisionID, "assigned")
	return nil
}

// RemoveDivision drops a division membership. Removing a membership the
// user does not hold is a no-op.
func (s *Service) RemoveDivision(ctx context.Context, actor *auth.User, userID, divisionID int64) error {
	if err := s.checkUserExists(userID); err != nil {
		return err
	}
	if err := s.repo.RemoveDivision(userID, divisionID); err != nil {
		s.logger.Error("failed to remove division", "error", err, "user_id", userID, "division_id", divisionID)
		return internal.NewInternalError("Server error", err)
	}
	s.publishMembershipChange(ctx, actor, userID, "division", divisionID, "removed")
	return nil
}

// AssignOU adds an OU membership with the same set semantics as divisions.
func (s *Service) AssignOU(ctx context.Context, actor *auth.User, userID, ouID int64) error {
	if err := s.checkUserAndOU(userID, ouID); err != nil {
		return err
	}
	if err := s.repo.AddOU(userID, ouID); err != nil {
		s.logger.Error("failed to assign OU", "error", err, "user_id", userID, "ou_id", ouID)
		return internal.NewInternalError("Server error", err)
	}
	s.publishMembershipChange(ctx, actor, userID, "ou", ouID, "assigned")
	return nil
}

// RemoveOU drops an OU membership.
func (s *Service) RemoveOU(ctx context.Context, actor *auth.User, userID, ouID int64) error {
	if err := s.checkUserExists(userID); err != nil {
		return err
	}
	if err := s.repo.RemoveOU(userID, ouID); err != nil {
		s.logger.Error("failed to remove OU", "error", err, "user_id", userID, "ou_id", ouID)
		return internal.NewInternalError("Server error", err)
	}
	s.publishMembershipChange(ctx, actor, userID, "ou", ouID, "removed")
	return nil
}

func (s *Service) checkUserExists(userID int64) error {
	record, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", userID)
		return internal.NewInternalError("Server error", err)
	}
	if record == nil {
		return internal.ErrUserNotFound
	}
	return nil
}

// checkUserAndDivision collapses the two existence checks into the single
// not-found response the assignment endpoint returns.
func (s *Service) checkUserAndDivision(userID, divisionID int64) error {
	record, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", userID)
		return internal.NewInternalError("Server error", err)
	}
	exists := false
	if record != nil {
		exists, err = s.repo.DivisionExists(divisionID)
		if err != nil {
			s.logger.Error("failed to check division existence", "error", err, "division_id", divisionID)
			return internal.NewInternalError("Server error", err)
		}
	}
	if record == nil || !exists {
		return internal.NewNotFoundError("User or Division not found", internal.ErrCodeDivisionNotFound)
	}
	return nil
}

func (s *Service) checkUserAndOU(userID, ouID int64) error {
	record, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", userID)
		return internal.NewInternalError("Server error", err)
	}
	exists := false
	if record != nil {
		exists, err = s.repo.OUExists(ouID)
		if err != nil {
			s.logger.Error("failed to check OU existence", "error", err, "ou_id", ouID)
			return internal.NewInternalError("Server error", err)
		}
	}
	if record == nil || !exists {
		return internal.NewNotFoundError("User or OU not found", internal.ErrCodeOUNotFound)
	}
	return nil
}

func (s *Service) publishMembershipChange(ctx context.Context, actor *auth.User, targetUserID int64, entity string, entityID int64, action string) {
	s.logger.Info("user membership changed",
		"user_id", targetUserID,
		"entity", entity,
		"entity_id", entityID,
		"action", action,
		"actor_user_id", actor.ID)
	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.NewUserMembershipChangedEvent(targetUserID, actor.ID, entity, entityID, action))
	}
}
