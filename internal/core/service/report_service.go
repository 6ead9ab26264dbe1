package service

import (
	"context"
	"time"

	"github.com/pmbajaj/Lib-Management-System/internal/core/ports"
)

const (
	mostBorrowedLimit = 10
	reportMonths      = 12
)

// ReportService aggregates read-only analytics for the admin area.
type ReportService struct {
	books      ports.BookRepository
	loans      ports.LoanRepository
	identities ports.IdentityRepository
}

func NewReportService(books ports.BookRepository, loans ports.LoanRepository, identities ports.IdentityRepository) *ReportService {
	return &ReportService{books: books, loans: loans, identities: identities}
}

func (s *ReportService) Summary(ctx context.Context) (*ports.LibrarySummary, error) {
	now := time.Now().UTC()

	totalBooks, err := s.books.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.identities.Count(ctx)
	if err != nil {
		return nil, err
	}
	activeLoans, err := s.loans.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	overdueLoans, err := s.loans.CountOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	fines, err := s.loans.OutstandingFines(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.LibrarySummary{
		TotalBooks:       totalBooks,
		TotalUsers:       totalUsers,
		ActiveLoans:      activeLoans,
		OverdueLoans:     overdueLoans,
		OutstandingFines: fines,
	}, nil
}

func (s *ReportService) Report(ctx context.Context) (*ports.LibraryReport, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}

	mostBorrowed, err := s.loans.MostBorrowed(ctx, mostBorrowedLimit)
	if err != nil {
		return nil, err
	}
	perMonth, err := s.loans.LoansPerMonth(ctx, reportMonths)
	if err != nil {
		return nil, err
	}

	return &ports.LibraryReport{
		Summary:       *summary,
		MostBorrowed:  mostBorrowed,
		LoansPerMonth: perMonth,
	}, nil
}
