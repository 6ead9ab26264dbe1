package ports

import (
	"context"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
)

// Actor identifies who is performing a loan operation, for ownership checks.
type Actor struct {
	UserID string
	Role   string
}

// Staff reports whether the actor may operate on other users' loans.
func (a Actor) Staff() bool {
	return a.Role == domain.RoleAdmin || a.Role == domain.RoleLibrarian
}

// ListLoansResult is one page of the loan ledger.
type ListLoansResult struct {
	Items      []*domain.Loan
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// LoanService defines the lending use-cases.
type LoanService interface {
	// Borrow takes one available copy of the book for the actor, honouring
	// the per-user loan limit and the 14-day loan period.
	Borrow(ctx context.Context, actor Actor, bookID string) (*domain.Loan, error)
	// Return closes the loan, restores the copy and assesses a late fine
	// when the due date has passed.
	Return(ctx context.Context, actor Actor, loanID string) (*domain.Loan, error)
	// Renew extends the due date by the renewal period, up to the renewal
	// cap; refused on overdue loans.
	Renew(ctx context.Context, actor Actor, loanID string) (*domain.Loan, error)
	// List returns loans visible to the actor: own loans for regular users,
	// any user's loans for staff.
	List(ctx context.Context, actor Actor, filter ListLoansFilter) (*ListLoansResult, error)
	// Overdue returns all overdue loans. Staff only.
	Overdue(ctx context.Context) ([]*domain.Loan, error)
	// SweepOverdue flags active loans past their due date as OVERDUE and
	// emits an overdue notification per flagged loan.
	SweepOverdue(ctx context.Context) (int, error)
}
