package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teekoob/admin-service/internal/domain"
)

const bookColumns = `
        id, title, title_somali, description, description_somali, authors,
        language, format, category_id, is_premium, is_featured, created_at, updated_at`

// BookRepository defines catalog persistence used by the admin surface.
type BookRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context, limit, offset int) ([]domain.Book, error)
}

type bookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository returns a Postgres-backed implementation.
func NewBookRepository(pool *pgxpool.Pool) BookRepository {
	return &bookRepository{pool: pool}
}

func (r *bookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id=$1`

	var book domain.Book
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.TitleSomali,
		&book.Description,
		&book.DescriptionSo,
		&book.Authors,
		&book.Language,
		&book.Format,
		&book.CategoryID,
		&book.IsPremium,
		&book.IsFeatured,
		&book.CreatedAt,
		&book.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) List(ctx context.Context, limit, offset int) ([]domain.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var book domain.Book
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.TitleSomali,
			&book.Description,
			&book.DescriptionSo,
			&book.Authors,
			&book.Language,
			&book.Format,
			&book.CategoryID,
			&book.IsPremium,
			&book.IsFeatured,
			&book.CreatedAt,
			&book.UpdatedAt,
		); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}
