package ports

import (
	"context"
	"time"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
)

// ListLoansFilter carries query parameters for listing loans.
type ListLoansFilter struct {
	UserID string // empty = no filter (staff); non-empty = scoped to user
	Status domain.LoanStatus
	Page   int
	Limit  int
}

// MonthlyLoanCount is one bucket of the loans-per-month report.
type MonthlyLoanCount struct {
	Year  int   `bson:"year" json:"year"`
	Month int   `bson:"month" json:"month"`
	Count int64 `bson:"count" json:"count"`
}

// BorrowCount pairs a book with how often it has been borrowed.
type BorrowCount struct {
	BookID    string `bson:"_id" json:"book_id"`
	BookTitle string `bson:"book_title" json:"book_title"`
	Count     int64  `bson:"count" json:"count"`
}

// LoanRepository defines persistence operations for the loan ledger.
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) (*domain.Loan, error)
	FindByID(ctx context.Context, id string) (*domain.Loan, error)
	Update(ctx context.Context, loan *domain.Loan) error
	List(ctx context.Context, filter ListLoansFilter) ([]*domain.Loan, int64, error)
	// CountActiveByUser counts loans in BORROWED or OVERDUE status.
	CountActiveByUser(ctx context.Context, userID string) (int64, error)
	// FindDueBefore returns active loans whose due date is before cutoff.
	FindDueBefore(ctx context.Context, cutoff time.Time) ([]*domain.Loan, error)
	CountActive(ctx context.Context) (int64, error)
	CountOverdue(ctx context.Context, now time.Time) (int64, error)
	// OutstandingFines sums unpaid fines across all loans.
	OutstandingFines(ctx context.Context) (float64, error)
	MostBorrowed(ctx context.Context, limit int) ([]BorrowCount, error)
	LoansPerMonth(ctx context.Context, months int) ([]MonthlyLoanCount, error)
}
