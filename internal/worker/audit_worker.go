package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/teekoob/admin-service/internal/events"
)

// StartAuditWorker subscribes an audit log writer to every auth event
// type. Audit lines go through the structured logger so they land in
// the same sink as request logs.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}

	handler := func(_ context.Context, event events.Event) error {
		logger.Info("audit",
			zap.String("event", string(event.Type)),
			zap.String("user_id", event.UserID),
			zap.String("email", event.Email),
			zap.String("detail", event.Detail),
			zap.Time("at", event.Timestamp),
		)
		return nil
	}

	for _, eventType := range []events.EventType{
		events.EventLoginSucceeded,
		events.EventLoginFailed,
		events.EventTokenRefreshed,
		events.EventLoggedOut,
		events.EventUserDeactivated,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}
