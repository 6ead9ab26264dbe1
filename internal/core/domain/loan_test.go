package domain

import (
	"testing"
	"time"
)

func TestLoanStatus_Transitions(t *testing.T) {
	cases := []struct {
		from    LoanStatus
		to      LoanStatus
		allowed bool
	}{
		{LoanBorrowed, LoanReturned, true},
		{LoanBorrowed, LoanOverdue, true},
		{LoanBorrowed, LoanLost, true},
		{LoanOverdue, LoanReturned, true},
		{LoanOverdue, LoanLost, true},
		{LoanReturned, LoanBorrowed, false},
		{LoanReturned, LoanOverdue, false},
		{LoanLost, LoanReturned, false},
		{LoanOverdue, LoanBorrowed, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestLoanStatus_Active(t *testing.T) {
	if !LoanBorrowed.Active() || !LoanOverdue.Active() {
		t.Fatalf("borrowed and overdue loans are active")
	}
	if LoanReturned.Active() || LoanLost.Active() {
		t.Fatalf("returned and lost loans are not active")
	}
}

func TestLateFine(t *testing.T) {
	due := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		returned time.Time
		want     float64
	}{
		{"early", due.Add(-24 * time.Hour), 0},
		{"exactly on time", due, 0},
		{"under a day late", due.Add(23 * time.Hour), 0},
		{"one day late", due.Add(24 * time.Hour), FinePerDay},
		{"ten days late", due.Add(240 * time.Hour), 10 * FinePerDay},
	}

	for _, tc := range cases {
		if got := LateFine(due, tc.returned); got != tc.want {
			t.Errorf("%s: fine = %v, want %v", tc.name, got, tc.want)
		}
	}
}
