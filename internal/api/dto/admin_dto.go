package dto

import (
	"time"

	"github.com/teekoob/admin-service/internal/domain"
)

// UserSummary is the admin-facing view of an account.
type UserSummary struct {
	ID                    string                  `json:"id"`
	Email                 string                  `json:"email"`
	FirstName             string                  `json:"firstName"`
	LastName              string                  `json:"lastName"`
	IsActive              bool                    `json:"isActive"`
	IsAdmin               bool                    `json:"isAdmin"`
	SubscriptionPlan      domain.SubscriptionPlan `json:"subscriptionPlan"`
	SubscriptionExpiresAt *time.Time              `json:"subscriptionExpiresAt,omitempty"`
	CreatedAt             time.Time               `json:"createdAt"`
}

// NewUserSummary maps a domain user onto its admin view.
func NewUserSummary(user domain.User) UserSummary {
	return UserSummary{
		ID:                    user.ID,
		Email:                 user.Email,
		FirstName:             user.FirstName,
		LastName:              user.LastName,
		IsActive:              user.IsActive,
		IsAdmin:               user.IsAdmin,
		SubscriptionPlan:      user.SubscriptionPlan,
		SubscriptionExpiresAt: user.SubscriptionExpiresAt,
		CreatedAt:             user.CreatedAt,
	}
}

// SetActiveRequest payload for PATCH /admin/users/:id/active.
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// BookSummary is the admin-facing view of a catalog item.
type BookSummary struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	TitleSomali string               `json:"titleSomali,omitempty"`
	Authors     string               `json:"authors"`
	Language    string               `json:"language"`
	Format      domain.ContentFormat `json:"format"`
	IsPremium   bool                 `json:"isPremium"`
	IsFeatured  bool                 `json:"isFeatured"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// NewBookSummary maps a domain book onto its admin view.
func NewBookSummary(book domain.Book) BookSummary {
	return BookSummary{
		ID:          book.ID,
		Title:       book.Title,
		TitleSomali: book.TitleSomali,
		Authors:     book.Authors,
		Language:    book.Language,
		Format:      book.Format,
		IsPremium:   book.IsPremium,
		IsFeatured:  book.IsFeatured,
		CreatedAt:   book.CreatedAt,
	}
}
