package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
	"github.com/pmbajaj/Lib-Management-System/internal/core/ports"
)

// In-memory doubles shared by the service tests. They implement the port
// interfaces with map-backed storage and no concurrency guarantees beyond
// what single-goroutine tests need.

func cloneIdentity(i *domain.Identity) *domain.Identity {
	if i == nil {
		return nil
	}
	clone := *i
	return &clone
}

type stubIdentityRepo struct {
	byID     map[string]*domain.Identity
	nextID   int
	failWith error
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{byID: make(map[string]*domain.Identity)}
}

func (r *stubIdentityRepo) Create(_ context.Context, identity *domain.Identity) (*domain.Identity, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, existing := range r.byID {
		if existing.Username == identity.Username {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneIdentity(identity)
	if copy.ID == "" {
		r.nextID++
		copy.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	r.byID[copy.ID] = cloneIdentity(copy)
	return copy, nil
}

func (r *stubIdentityRepo) FindByUsername(_ context.Context, username string) (*domain.Identity, error) {
	for _, i := range r.byID {
		if i.Username == username {
			return cloneIdentity(i), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id string) (*domain.Identity, error) {
	if i, ok := r.byID[id]; ok {
		return cloneIdentity(i), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubIdentityRepo) Update(_ context.Context, identity *domain.Identity) error {
	if _, ok := r.byID[identity.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.byID[identity.ID] = cloneIdentity(identity)
	return nil
}

func (r *stubIdentityRepo) List(_ context.Context, page, limit int) ([]*domain.Identity, int64, error) {
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	start := (page - 1) * limit
	items := make([]*domain.Identity, 0, limit)
	for i := start; i < len(ids) && i < start+limit; i++ {
		items = append(items, cloneIdentity(r.byID[ids[i]]))
	}
	return items, int64(len(r.byID)), nil
}

func (r *stubIdentityRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

// memSessionStore is an in-memory SessionStore. Setting failWith makes
// every Load fail, simulating an unreachable store.
type memSessionStore struct {
	sessions map[string]*domain.Identity
	failWith error
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]*domain.Identity)}
}

func (s *memSessionStore) Save(_ context.Context, token string, identity *domain.Identity) error {
	s.sessions[token] = cloneIdentity(identity)
	return nil
}

func (s *memSessionStore) Load(_ context.Context, token string) (*domain.Identity, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	if i, ok := s.sessions[token]; ok {
		return cloneIdentity(i), nil
	}
	return nil, domain.ErrNoSession
}

func (s *memSessionStore) Clear(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

type memResetStore struct {
	tokens map[string]string
}

func newMemResetStore() *memResetStore {
	return &memResetStore{tokens: make(map[string]string)}
}

func (s *memResetStore) Set(_ context.Context, token, userID string, _ time.Duration) error {
	s.tokens[token] = userID
	return nil
}

func (s *memResetStore) Get(_ context.Context, token string) (string, error) {
	if id, ok := s.tokens[token]; ok {
		return id, nil
	}
	return "", domain.ErrNoSession
}

func (s *memResetStore) Delete(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

func cloneBook(b *domain.Book) *domain.Book {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}

type stubBookRepo struct {
	byID   map[string]*domain.Book
	nextID int
}

func newStubBookRepo() *stubBookRepo {
	return &stubBookRepo{byID: make(map[string]*domain.Book)}
}

func (r *stubBookRepo) Create(_ context.Context, book *domain.Book) (*domain.Book, error) {
	copy := cloneBook(book)
	if copy.ID == "" {
		r.nextID++
		copy.ID = fmt.Sprintf("book-%d", r.nextID)
	}
	r.byID[copy.ID] = cloneBook(copy)
	return copy, nil
}

func (r *stubBookRepo) FindByID(_ context.Context, id string) (*domain.Book, error) {
	if b, ok := r.byID[id]; ok {
		return cloneBook(b), nil
	}
	return nil, domain.ErrBookNotFound
}

func (r *stubBookRepo) FindByISBN(_ context.Context, isbn string) (*domain.Book, error) {
	for _, b := range r.byID {
		if b.ISBN == isbn {
			return cloneBook(b), nil
		}
	}
	return nil, domain.ErrBookNotFound
}

func (r *stubBookRepo) Update(_ context.Context, book *domain.Book) error {
	if _, ok := r.byID[book.ID]; !ok {
		return domain.ErrBookNotFound
	}
	r.byID[book.ID] = cloneBook(book)
	return nil
}

func (r *stubBookRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrBookNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubBookRepo) List(_ context.Context, filter ports.ListBooksFilter) ([]*domain.Book, int64, error) {
	var items []*domain.Book
	for _, b := range r.byID {
		if filter.AvailableOnly && b.AvailableCopies <= 0 {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(filter.Search)) {
			continue
		}
		items = append(items, cloneBook(b))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, int64(len(items)), nil
}

func (r *stubBookRepo) AdjustAvailable(_ context.Context, id string, delta int) error {
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrBookNotFound
	}
	if b.AvailableCopies+delta < 0 {
		return domain.ErrNoCopiesAvailable
	}
	b.AvailableCopies += delta
	return nil
}

func (r *stubBookRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func cloneLoan(l *domain.Loan) *domain.Loan {
	if l == nil {
		return nil
	}
	clone := *l
	return &clone
}

type stubLoanRepo struct {
	byID   map[string]*domain.Loan
	nextID int
}

func newStubLoanRepo() *stubLoanRepo {
	return &stubLoanRepo{byID: make(map[string]*domain.Loan)}
}

func (r *stubLoanRepo) Create(_ context.Context, loan *domain.Loan) (*domain.Loan, error) {
	copy := cloneLoan(loan)
	if copy.ID == "" {
		r.nextID++
		copy.ID = fmt.Sprintf("loan-%d", r.nextID)
	}
	r.byID[copy.ID] = cloneLoan(copy)
	return copy, nil
}

func (r *stubLoanRepo) FindByID(_ context.Context, id string) (*domain.Loan, error) {
	if l, ok := r.byID[id]; ok {
		return cloneLoan(l), nil
	}
	return nil, domain.ErrLoanNotFound
}

func (r *stubLoanRepo) Update(_ context.Context, loan *domain.Loan) error {
	if _, ok := r.byID[loan.ID]; !ok {
		return domain.ErrLoanNotFound
	}
	r.byID[loan.ID] = cloneLoan(loan)
	return nil
}

func (r *stubLoanRepo) List(_ context.Context, filter ports.ListLoansFilter) ([]*domain.Loan, int64, error) {
	var items []*domain.Loan
	for _, l := range r.byID {
		if filter.UserID != "" && l.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		items = append(items, cloneLoan(l))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, int64(len(items)), nil
}

func (r *stubLoanRepo) CountActiveByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, l := range r.byID {
		if l.UserID == userID && l.Status.Active() {
			n++
		}
	}
	return n, nil
}

func (r *stubLoanRepo) FindDueBefore(_ context.Context, cutoff time.Time) ([]*domain.Loan, error) {
	var items []*domain.Loan
	for _, l := range r.byID {
		if l.Status.Active() && l.DueDate.Before(cutoff) {
			items = append(items, cloneLoan(l))
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *stubLoanRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, l := range r.byID {
		if l.Status.Active() {
			n++
		}
	}
	return n, nil
}

func (r *stubLoanRepo) CountOverdue(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, l := range r.byID {
		if l.Status.Active() && l.DueDate.Before(now) {
			n++
		}
	}
	return n, nil
}

func (r *stubLoanRepo) OutstandingFines(_ context.Context) (float64, error) {
	var sum float64
	for _, l := range r.byID {
		if !l.FinePaid {
			sum += l.FineAmount
		}
	}
	return sum, nil
}

func (r *stubLoanRepo) MostBorrowed(_ context.Context, limit int) ([]ports.BorrowCount, error) {
	counts := make(map[string]*ports.BorrowCount)
	for _, l := range r.byID {
		if c, ok := counts[l.BookID]; ok {
			c.Count++
			continue
		}
		counts[l.BookID] = &ports.BorrowCount{BookID: l.BookID, BookTitle: l.BookTitle, Count: 1}
	}
	items := make([]ports.BorrowCount, 0, len(counts))
	for _, c := range counts {
		items = append(items, *c)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Count > items[j].Count })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *stubLoanRepo) LoansPerMonth(_ context.Context, _ int) ([]ports.MonthlyLoanCount, error) {
	return nil, nil
}

// captureDispatcher records enqueued notifications instead of delivering them.
type captureDispatcher struct {
	enqueued []ports.NotificationInput
}

func (d *captureDispatcher) Enqueue(in ports.NotificationInput) {
	d.enqueued = append(d.enqueued, in)
}

func (d *captureDispatcher) EnqueueBatch(ins []ports.NotificationInput) {
	d.enqueued = append(d.enqueued, ins...)
}

var errStoreDown = errors.New("store unreachable")
