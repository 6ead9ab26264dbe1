package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
	"github.com/pmbajaj/Lib-Management-System/internal/core/ports"
)

const maxPageLimit = 100

// BookService implements catalog use-cases over a BookRepository.
type BookService struct {
	repo ports.BookRepository
	log  zerolog.Logger
}

func NewBookService(repo ports.BookRepository, log zerolog.Logger) *BookService {
	return &BookService{repo: repo, log: log}
}

func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BookService) List(ctx context.Context, filter ports.ListBooksFilter) (*ports.ListBooksResult, error) {
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListBooksResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *BookService) Add(ctx context.Context, input ports.BookInput) (*domain.Book, error) {
	if _, err := s.repo.FindByISBN(ctx, input.ISBN); err == nil {
		return nil, domain.ErrISBNExists
	}

	now := time.Now().UTC()
	book := &domain.Book{
		Title:           input.Title,
		Author:          input.Author,
		ISBN:            input.ISBN,
		Description:     input.Description,
		PublishYear:     input.PublishYear,
		Publisher:       input.Publisher,
		TotalCopies:     input.TotalCopies,
		AvailableCopies: input.TotalCopies,
		CoverImageURL:   input.CoverImageURL,
		Categories:      input.Categories,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("isbn", created.ISBN).Str("title", created.Title).Msg("book added")
	return created, nil
}

func (s *BookService) Update(ctx context.Context, id string, input ports.BookInput) (*domain.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.ISBN != book.ISBN {
		if existing, err := s.repo.FindByISBN(ctx, input.ISBN); err == nil && existing.ID != id {
			return nil, domain.ErrISBNExists
		}
	}

	onLoan := book.TotalCopies - book.AvailableCopies
	if input.TotalCopies < onLoan {
		return nil, domain.ErrBookOnLoan
	}

	book.Title = input.Title
	book.Author = input.Author
	book.ISBN = input.ISBN
	book.Description = input.Description
	book.PublishYear = input.PublishYear
	book.Publisher = input.Publisher
	book.AvailableCopies = input.TotalCopies - onLoan
	book.TotalCopies = input.TotalCopies
	book.CoverImageURL = input.CoverImageURL
	book.Categories = input.Categories
	book.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Delete removes a catalog entry. Refused while any copy is on loan so the
// ledger never references a missing book.
func (s *BookService) Delete(ctx context.Context, id string) error {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if book.AvailableCopies < book.TotalCopies {
		return domain.ErrBookOnLoan
	}
	return s.repo.Delete(ctx, id)
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
