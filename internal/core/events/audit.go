package events

import (
	"context"
	"log/slog"
)

// RegisterAuditLogger subscribes a logging handler for every audit event
// type so mutations to roles, memberships and credentials leave a trace.
func RegisterAuditLogger(bus *EventBus, logger *slog.Logger) {
	handler := func(ctx context.Context, event Event) error {
		logger.Info("audit",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}

	for _, eventType := range []string{
		EventTypeUserRoleChanged,
		EventTypeUserMembershipChanged,
		EventTypeCredentialCreated,
		EventTypeCredentialUpdated,
	} {
		bus.Subscribe(eventType, handler)
	}
}
