package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/teekoob/admin-service/internal/domain"
	"github.com/teekoob/admin-service/internal/events"
	"github.com/teekoob/admin-service/internal/repository"
	"github.com/teekoob/admin-service/pkg/util"
)

// AdminService backs the admin-gated management surface.
type AdminService struct {
	users      repository.UserRepository
	books      repository.BookRepository
	dispatcher events.Dispatcher
}

// NewAdminService builds the service.
func NewAdminService(users repository.UserRepository, books repository.BookRepository, dispatcher events.Dispatcher) *AdminService {
	return &AdminService{users: users, books: books, dispatcher: dispatcher}
}

// ListUsers returns a page of accounts.
func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

// SetUserActive toggles an account's active flag. Deactivation is
// published so the audit trail records who lost access.
func (s *AdminService) SetUserActive(ctx context.Context, id string, active bool) error {
	if err := s.users.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("user", map[string]any{"id": id})
		}
		return err
	}
	if !active && s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserDeactivated,
			UserID:    id,
			Timestamp: time.Now(),
		})
	}
	return nil
}

// ListBooks returns a page of catalog items.
func (s *AdminService) ListBooks(ctx context.Context, limit, offset int) ([]domain.Book, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.books.List(ctx, limit, offset)
}

// GetBook fetches a single catalog item.
func (s *AdminService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("book", map[string]any{"id": id})
		}
		return nil, err
	}
	return book, nil
}
