package ports

import (
	"context"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
)

// ListBooksFilter carries all query parameters for listing catalog entries.
type ListBooksFilter struct {
	Search        string // optional: partial match on title, author or isbn
	Category      string // optional: filter by category name
	AvailableOnly bool   // restrict to books with available copies
	SortBy        string // "title", "author", "publish_year", "created_at"
	Descending    bool
	Page          int // 1-based
	Limit         int // capped at 100 by the service
}

// BookRepository defines persistence operations for the catalog.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id string) error
	// List returns a page of books matching filter and the total count.
	List(ctx context.Context, filter ListBooksFilter) ([]*domain.Book, int64, error)
	// AdjustAvailable atomically changes available_copies by delta. A
	// negative delta fails with domain.ErrNoCopiesAvailable when no copy
	// is left to take.
	AdjustAvailable(ctx context.Context, id string, delta int) error
	Count(ctx context.Context) (int64, error)
}
