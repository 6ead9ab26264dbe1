package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
	"github.com/pmbajaj/Lib-Management-System/internal/core/ports"
)

// LoanService implements the lending use-cases: borrow, return, renew and
// the staff-facing ledger queries. Loan status changes follow the loan
// state machine; copy counts are adjusted atomically by the book repository.
type LoanService struct {
	loans  ports.LoanRepository
	books  ports.BookRepository
	notify ports.NotificationDispatcher
	log    zerolog.Logger
	now    func() time.Time
}

func NewLoanService(loans ports.LoanRepository, books ports.BookRepository, notify ports.NotificationDispatcher, log zerolog.Logger) *LoanService {
	return &LoanService{
		loans:  loans,
		books:  books,
		notify: notify,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *LoanService) Borrow(ctx context.Context, actor ports.Actor, bookID string) (*domain.Loan, error) {
	active, err := s.loans.CountActiveByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if active >= domain.MaxLoansPerUser {
		return nil, domain.ErrLoanLimitReached
	}

	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	// Take the copy first; AdjustAvailable fails when none is left, which
	// closes the race between two concurrent borrows of the last copy.
	if err := s.books.AdjustAvailable(ctx, bookID, -1); err != nil {
		return nil, err
	}

	now := s.now()
	loan, err := s.loans.Create(ctx, &domain.Loan{
		UserID:     actor.UserID,
		BookID:     book.ID,
		BookTitle:  book.Title,
		BorrowDate: now,
		DueDate:    now.Add(domain.LoanPeriod),
		Status:     domain.LoanBorrowed,
	})
	if err != nil {
		// Put the copy back; the borrow never happened.
		if restoreErr := s.books.AdjustAvailable(ctx, bookID, 1); restoreErr != nil {
			s.log.Error().Err(restoreErr).Str("book_id", bookID).Msg("failed to restore copy after borrow failure")
		}
		return nil, err
	}

	s.log.Info().Str("user_id", actor.UserID).Str("book_id", book.ID).Time("due", loan.DueDate).Msg("book borrowed")
	return loan, nil
}

func (s *LoanService) Return(ctx context.Context, actor ports.Actor, loanID string) (*domain.Loan, error) {
	loan, err := s.ownedLoan(ctx, actor, loanID)
	if err != nil {
		return nil, err
	}

	if !loan.Status.CanTransitionTo(domain.LoanReturned) {
		return nil, domain.ErrLoanClosed
	}

	now := s.now()
	loan.ReturnDate = &now
	loan.Status = domain.LoanReturned
	if now.After(loan.DueDate) {
		loan.FineAmount = domain.LateFine(loan.DueDate, now)
		loan.FinePaid = false
	}

	if err := s.loans.Update(ctx, loan); err != nil {
		return nil, err
	}
	if err := s.books.AdjustAvailable(ctx, loan.BookID, 1); err != nil {
		s.log.Error().Err(err).Str("book_id", loan.BookID).Msg("failed to restore returned copy")
	}

	s.notify.Enqueue(ports.NotificationInput{
		UserID:  loan.UserID,
		Type:    domain.NotifyReturn,
		Title:   "Book returned",
		Message: fmt.Sprintf("You returned %q. Thank you!", loan.BookTitle),
	})

	s.log.Info().Str("loan_id", loan.ID).Float64("fine", loan.FineAmount).Msg("book returned")
	return loan, nil
}

func (s *LoanService) Renew(ctx context.Context, actor ports.Actor, loanID string) (*domain.Loan, error) {
	loan, err := s.ownedLoan(ctx, actor, loanID)
	if err != nil {
		return nil, err
	}

	if !loan.Status.Active() {
		return nil, domain.ErrLoanClosed
	}
	if loan.Status == domain.LoanOverdue || s.now().After(loan.DueDate) {
		return nil, domain.ErrLoanOverdue
	}
	if loan.Renewals >= domain.MaxRenewals {
		return nil, domain.ErrRenewalLimitReached
	}

	loan.DueDate = loan.DueDate.Add(domain.RenewalExtension)
	loan.Renewals++

	if err := s.loans.Update(ctx, loan); err != nil {
		return nil, err
	}

	s.log.Info().Str("loan_id", loan.ID).Int("renewals", loan.Renewals).Time("due", loan.DueDate).Msg("loan renewed")
	return loan, nil
}

func (s *LoanService) List(ctx context.Context, actor ports.Actor, filter ports.ListLoansFilter) (*ports.ListLoansResult, error) {
	// Regular users only ever see their own loans.
	if !actor.Staff() {
		filter.UserID = actor.UserID
	}
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)

	items, total, err := s.loans.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListLoansResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *LoanService) Overdue(ctx context.Context) ([]*domain.Loan, error) {
	return s.loans.FindDueBefore(ctx, s.now())
}

// SweepOverdue flags active loans past their due date and emits one overdue
// notification per flagged loan. Returns the number of loans flagged.
func (s *LoanService) SweepOverdue(ctx context.Context) (int, error) {
	due, err := s.loans.FindDueBefore(ctx, s.now())
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, loan := range due {
		if loan.Status != domain.LoanBorrowed {
			continue
		}
		loan.Status = domain.LoanOverdue
		if err := s.loans.Update(ctx, loan); err != nil {
			s.log.Error().Err(err).Str("loan_id", loan.ID).Msg("failed to flag overdue loan")
			continue
		}
		flagged++
		s.notify.Enqueue(ports.NotificationInput{
			UserID:  loan.UserID,
			Type:    domain.NotifyOverdue,
			Title:   "Book overdue",
			Message: fmt.Sprintf("%q was due on %s. Please return it to avoid further fines.", loan.BookTitle, loan.DueDate.Format("2006-01-02")),
		})
	}
	return flagged, nil
}

// ownedLoan loads the loan and enforces ownership: regular users may only
// touch their own loans, staff may touch any.
func (s *LoanService) ownedLoan(ctx context.Context, actor ports.Actor, loanID string) (*domain.Loan, error) {
	loan, err := s.loans.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !actor.Staff() && loan.UserID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return loan, nil
}
