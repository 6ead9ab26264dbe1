package ports

import "context"

// LibrarySummary is the headline block of the admin dashboard.
type LibrarySummary struct {
	TotalBooks       int64   `json:"total_books"`
	TotalUsers       int64   `json:"total_users"`
	ActiveLoans      int64   `json:"active_loans"`
	OverdueLoans     int64   `json:"overdue_loans"`
	OutstandingFines float64 `json:"outstanding_fines"`
}

// LibraryReport is the full analytics view served to administrators.
type LibraryReport struct {
	Summary       LibrarySummary     `json:"summary"`
	MostBorrowed  []BorrowCount      `json:"most_borrowed"`
	LoansPerMonth []MonthlyLoanCount `json:"loans_per_month"`
}

// ReportService aggregates read-only analytics over the catalog and ledger.
type ReportService interface {
	Summary(ctx context.Context) (*LibrarySummary, error)
	Report(ctx context.Context) (*LibraryReport, error)
}
