package events

import (
	"context"
	"testing"
	"time"
)

func TestDispatcherRoutesByType(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var logins, logouts int
	dispatcher.Subscribe(EventLoginSucceeded, func(_ context.Context, _ Event) error {
		logins++
		return nil
	})
	dispatcher.Subscribe(EventLoggedOut, func(_ context.Context, _ Event) error {
		logouts++
		return nil
	})

	ctx := context.Background()
	_ = dispatcher.Publish(ctx, Event{Type: EventLoginSucceeded, UserID: "u1", Timestamp: time.Now()})
	_ = dispatcher.Publish(ctx, Event{Type: EventLoginSucceeded, UserID: "u2", Timestamp: time.Now()})
	_ = dispatcher.Publish(ctx, Event{Type: EventLoggedOut, UserID: "u1", Timestamp: time.Now()})
	_ = dispatcher.Publish(ctx, Event{Type: EventTokenRefreshed, UserID: "u1", Timestamp: time.Now()})

	if logins != 2 {
		t.Errorf("logins = %d, want 2", logins)
	}
	if logouts != 1 {
		t.Errorf("logouts = %d, want 1", logouts)
	}
}
