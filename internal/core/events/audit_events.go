package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeUserRoleChanged       = "user.role_changed"
	EventTypeUserMembershipChanged = "user.membership_changed"
	EventTypeCredentialCreated     = "credential.created"
	EventTypeCredentialUpdated     = "credential.updated"
)

type UserRoleChangedEvent struct {
	BaseEvent
	TargetUserID int64  `json:"target_user_id"`
	ActorUserID  int64  `json:"actor_user_id"`
	OldRole      string `json:"old_role"`
	NewRole      string `json:"new_role"`
}

func NewUserRoleChangedEvent(targetUserID, actorUserID int64, oldRole, newRole string) *UserRoleChangedEvent {
	return &UserRoleChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserRoleChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"target_user_id": targetUserID,
				"actor_user_id":  actorUserID,
				"old_role":       oldRole,
				"new_role":       newRole,
			},
		},
		TargetUserID: targetUserID,
		ActorUserID:  actorUserID,
		OldRole:      oldRole,
		NewRole:      newRole,
	}
}

type UserMembershipChangedEvent struct {
	BaseEvent
	TargetUserID int64  `json:"target_user_id"`
	ActorUserID  int64  `json:"actor_user_id"`
	Entity       string `json:"entity"`
	EntityID     int64  `json:"entity_id"`
	Action       string `json:"action"`
}

// NewUserMembershipChangedEvent records an assign or remove of an OU or
// Division membership. entity is "ou" or "division", action is "assigned"
// or "removed".
func NewUserMembershipChangedEvent(targetUserID, actorUserID int64, entity string, entityID int64, action string) *UserMembershipChangedEvent {
	return &UserMembershipChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserMembershipChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"target_user_id": targetUserID,
				"actor_user_id":  actorUserID,
				"entity":         entity,
				"entity_id":      entityID,
				"action":         action,
			},
		},
		TargetUserID: targetUserID,
		ActorUserID:  actorUserID,
		Entity:       entity,
		EntityID:     entityID,
		Action:       action,
	}
}

type CredentialChangedEvent struct {
	BaseEvent
	CredentialID int64 `json:"credential_id"`
	DivisionID   int64 `json:"division_id"`
	ActorUserID  int64 `json:"actor_user_id"`
}

func NewCredentialCreatedEvent(credentialID, divisionID, actorUserID int64) *CredentialChangedEvent {
	return newCredentialChangedEvent(EventTypeCredentialCreated, credentialID, divisionID, actorUserID)
}

func NewCredentialUpdatedEvent(credentialID, divisionID, actorUserID int64) *CredentialChangedEvent {
	return newCredentialChangedEvent(EventTypeCredentialUpdated, credentialID, divisionID, actorUserID)
}

func newCredentialChangedEvent(eventType string, credentialID, divisionID, actorUserID int64) *CredentialChangedEvent {
	return &CredentialChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"credential_id": credentialID,
				"division_id":   divisionID,
				"actor_user_id": actorUserID,
			},
		},
		CredentialID: credentialID,
		DivisionID:   divisionID,
		ActorUserID:  actorUserID,
	}
}
