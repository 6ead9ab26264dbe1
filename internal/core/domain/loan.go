package domain

import (
	"errors"
	"time"
)

// LoanStatus represents the lifecycle state of a loan.
type LoanStatus string

const (
	LoanBorrowed LoanStatus = "BORROWED"
	LoanReturned LoanStatus = "RETURNED"
	LoanOverdue  LoanStatus = "OVERDUE"
	LoanLost     LoanStatus = "LOST"
)

// validLoanTransitions defines the allowed state machine transitions.
var validLoanTransitions = map[LoanStatus][]LoanStatus{
	LoanBorrowed: {LoanReturned, LoanOverdue, LoanLost},
	LoanOverdue:  {LoanReturned, LoanLost},
}

var ErrLoanNotFound = errors.New("loan not found")
var ErrLoanClosed = errors.New("loan already closed")
var ErrLoanLimitReached = errors.New("borrowing limit reached")
var ErrRenewalLimitReached = errors.New("renewal limit reached")
var ErrLoanOverdue = errors.New("loan is overdue")
var ErrInvalidLoanTransition = errors.New("invalid loan status transition")

// Lending policy constants.
const (
	MaxLoansPerUser  = 5
	LoanPeriod       = 14 * 24 * time.Hour
	RenewalExtension = 30 * 24 * time.Hour
	MaxRenewals      = 3
	FinePerDay       = 0.50
)

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s LoanStatus) CanTransitionTo(next LoanStatus) bool {
	for _, allowed := range validLoanTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Active reports whether the loan still holds a copy of the book.
func (s LoanStatus) Active() bool {
	return s == LoanBorrowed || s == LoanOverdue
}

// Loan records one borrowing of one book copy by one identity.
type Loan struct {
	ID         string     `json:"id" bson:"_id,omitempty"`
	UserID     string     `json:"user_id" bson:"user_id"`
	BookID     string     `json:"book_id" bson:"book_id"`
	BookTitle  string     `json:"book_title" bson:"book_title"`
	BorrowDate time.Time  `json:"borrow_date" bson:"borrow_date"`
	DueDate    time.Time  `json:"due_date" bson:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty" bson:"return_date,omitempty"`
	Status     LoanStatus `json:"status" bson:"status"`
	FineAmount float64    `json:"fine_amount,omitempty" bson:"fine_amount,omitempty"`
	FinePaid   bool       `json:"fine_paid" bson:"fine_paid"`
	Renewals   int        `json:"renewals" bson:"renewals"`
	Notes      string     `json:"notes,omitempty" bson:"notes,omitempty"`
}

// LateFine returns the fine owed for returning at returned against due,
// at FinePerDay per full day late. Zero when on time.
func LateFine(due, returned time.Time) float64 {
	if !returned.After(due) {
		return 0
	}
	days := int(returned.Sub(due).Hours() / 24)
	return float64(days) * FinePerDay
}
