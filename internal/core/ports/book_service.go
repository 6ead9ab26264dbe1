package ports

import (
	"context"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
)

// BookInput carries the data needed to create or update a catalog entry.
type BookInput struct {
	Title         string
	Author        string
	ISBN          string
	Description   string
	PublishYear   int
	Publisher     string
	TotalCopies   int
	CoverImageURL string
	Categories    []string
}

// ListBooksResult is one page of catalog entries.
type ListBooksResult struct {
	Items      []*domain.Book
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// BookService defines catalog use-cases. Mutations are staff-only; the
// transport layer enforces the role before calling in.
type BookService interface {
	Get(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context, filter ListBooksFilter) (*ListBooksResult, error)
	Add(ctx context.Context, input BookInput) (*domain.Book, error)
	Update(ctx context.Context, id string, input BookInput) (*domain.Book, error)
	// Delete removes a catalog entry; refused while copies are on loan.
	Delete(ctx context.Context, id string) error
}
