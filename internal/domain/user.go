package domain

import (
	"errors"
	"time"
)

// SubscriptionPlan enumerates the plans a user may hold.
type SubscriptionPlan string

const (
	PlanFree     SubscriptionPlan = "free"
	PlanPremium  SubscriptionPlan = "premium"
	PlanLifetime SubscriptionPlan = "lifetime"
)

// Sentinel errors for identity resolution.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserDeactivated = errors.New("user deactivated")
)

// User is the full persisted account record, including the password hash.
type User struct {
	ID                    string
	Email                 string
	FirstName             string
	LastName              string
	PasswordHash          string
	IsActive              bool
	IsAdmin               bool
	SubscriptionPlan      SubscriptionPlan
	SubscriptionExpiresAt *time.Time
	LanguagePreference    string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Identity is the authorization view of a user: what the middleware
// attaches to requests and what auth endpoints return. Never carries
// the password hash.
type Identity struct {
	ID                    string           `json:"id"`
	Email                 string           `json:"email"`
	FirstName             string           `json:"firstName"`
	LastName              string           `json:"lastName"`
	IsActive              bool             `json:"isActive"`
	IsAdmin               bool             `json:"isAdmin"`
	SubscriptionPlan      SubscriptionPlan `json:"subscriptionPlan"`
	SubscriptionExpiresAt *time.Time       `json:"subscriptionExpiresAt,omitempty"`
}

// Identity derives the authorization view from a user record.
func (u *User) Identity() Identity {
	return Identity{
		ID:                    u.ID,
		Email:                 u.Email,
		FirstName:             u.FirstName,
		LastName:              u.LastName,
		IsActive:              u.IsActive,
		IsAdmin:               u.IsAdmin,
		SubscriptionPlan:      u.SubscriptionPlan,
		SubscriptionExpiresAt: u.SubscriptionExpiresAt,
	}
}

// Downgraded returns the identity with an expired paid plan read back
// as free. The stored row is untouched; the downgrade is applied at
// read time only.
func (i Identity) Downgraded(now time.Time) Identity {
	if i.SubscriptionPlan == PlanFree || i.SubscriptionExpiresAt == nil {
		return i
	}
	if now.After(*i.SubscriptionExpiresAt) {
		i.SubscriptionPlan = PlanFree
	}
	return i
}

// FullName joins first and last name for display.
func (i Identity) FullName() string {
	if i.FirstName == "" {
		return i.LastName
	}
	if i.LastName == "" {
		return i.FirstName
	}
	return i.FirstName + " " + i.LastName
}
