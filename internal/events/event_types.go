package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded  EventType = "auth.login"
	EventLoginFailed     EventType = "auth.login_failed"
	EventTokenRefreshed  EventType = "auth.refresh"
	EventLoggedOut       EventType = "auth.logout"
	EventUserDeactivated EventType = "user.deactivated"
)

// Event represents an auth-significant occurrence emitted by services
// and consumed by the audit worker.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	UserID    string    `json:"user_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Detail    string    `json:"detail,omitempty"`
}
