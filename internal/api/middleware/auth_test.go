package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
)

const testSecret = "test-secret"

type memStore struct {
	sessions map[string]*domain.Identity
	failWith error
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]*domain.Identity)}
}

func (s *memStore) Save(_ context.Context, token string, identity *domain.Identity) error {
	clone := *identity
	s.sessions[token] = &clone
	return nil
}

func (s *memStore) Load(_ context.Context, token string) (*domain.Identity, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	if i, ok := s.sessions[token]; ok {
		clone := *i
		return &clone, nil
	}
	return nil, domain.ErrNoSession
}

func (s *memStore) Clear(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func signedToken(t *testing.T, secret string) string {
	t.Helper()
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := tkn.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// sessionThrough runs one request through the Session middleware and returns
// the session snapshot the downstream handler observed.
func sessionThrough(t *testing.T, store *memStore, authHeader string) domain.Session {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen domain.Session
	handler := Session(testSecret, nil, store)(func(c echo.Context) error {
		seen = CurrentSession(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return seen
}

func TestSession_NoHeaderIsAnonymous(t *testing.T) {
	s := sessionThrough(t, newMemStore(), "")
	if s.State != domain.StateAnonymous {
		t.Fatalf("state = %q, want anonymous", s.State)
	}
}

func TestSession_ValidTokenBindsIdentity(t *testing.T) {
	store := newMemStore()
	token := signedToken(t, testSecret)
	_ = store.Save(context.Background(), token, &domain.Identity{ID: "u1", Username: "hana", Role: domain.RoleAdmin})

	s := sessionThrough(t, store, "Bearer "+token)
	if s.State != domain.StateAdmin || !s.Admin {
		t.Fatalf("state = %q admin=%v, want authenticated_admin", s.State, s.Admin)
	}
	if s.Identity == nil || s.Identity.Username != "hana" {
		t.Fatalf("identity = %+v", s.Identity)
	}
}

func TestSession_ForgedTokenIsAnonymous(t *testing.T) {
	store := newMemStore()
	forged := signedToken(t, "other-secret")
	_ = store.Save(context.Background(), forged, &domain.Identity{ID: "u1", Username: "x", Role: domain.RoleAdmin})

	s := sessionThrough(t, store, "Bearer "+forged)
	if s.State != domain.StateAnonymous {
		t.Fatalf("forged token admitted: %q", s.State)
	}
}

func TestSession_ValidTokenWithoutStoredSessionIsAnonymous(t *testing.T) {
	s := sessionThrough(t, newMemStore(), "Bearer "+signedToken(t, testSecret))
	if s.State != domain.StateAnonymous {
		t.Fatalf("state = %q, want anonymous", s.State)
	}
}

func TestSession_StoreOutageLeavesResolving(t *testing.T) {
	store := newMemStore()
	store.failWith = context.DeadlineExceeded

	s := sessionThrough(t, store, "Bearer "+signedToken(t, testSecret))
	if s.State != domain.StateResolving || !s.Loading {
		t.Fatalf("state = %q loading=%v, want resolving", s.State, s.Loading)
	}
}

func TestSession_MalformedHeaderIsAnonymous(t *testing.T) {
	for _, header := range []string{"Bearer", "Basic abc", "garbage"} {
		if s := sessionThrough(t, newMemStore(), header); s.State != domain.StateAnonymous {
			t.Fatalf("header %q: state = %q", header, s.State)
		}
	}
}
