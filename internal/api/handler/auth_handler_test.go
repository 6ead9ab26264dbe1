package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
	"github.com/pmbajaj/Lib-Management-System/internal/core/ports"
)

// fakeAuth is a canned-credential AuthService double. Tokens are the
// username prefixed with "tok-"; sessions live in the paired store.
type fakeAuth struct {
	users map[string]*domain.Identity // username -> identity, password "secret123"
	store ports.SessionStore
}

func newFakeAuth(store ports.SessionStore) *fakeAuth {
	return &fakeAuth{
		users: map[string]*domain.Identity{
			"root": {ID: "1", Username: "root", Role: domain.RoleAdmin},
			"alma": {ID: "2", Username: "alma", Role: domain.RoleRegular},
		},
		store: store,
	}
}

func (f *fakeAuth) Validate(_ context.Context, username, password string) (*domain.Identity, error) {
	i, ok := f.users[username]
	if !ok || password != "secret123" {
		return nil, domain.ErrInvalidCredentials
	}
	clone := *i
	return &clone, nil
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (string, *domain.Identity, error) {
	identity, err := f.Validate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	token := "tok-" + username
	if err := f.store.Save(ctx, token, identity); err != nil {
		return "", nil, err
	}
	return token, identity, nil
}

func (f *fakeAuth) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.Identity, error) {
	if _, exists := f.users[input.Username]; exists {
		return "", nil, domain.ErrUserExists
	}
	identity := &domain.Identity{ID: "new", Username: input.Username, Role: domain.RoleRegular}
	f.users[input.Username] = identity
	token := "tok-" + input.Username
	if err := f.store.Save(ctx, token, identity); err != nil {
		return "", nil, err
	}
	return token, identity, nil
}

func (f *fakeAuth) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return f.store.Clear(ctx, token)
}

func (f *fakeAuth) UpdateProfile(ctx context.Context, token string, update ports.ProfileUpdate) (*domain.Identity, error) {
	identity, err := f.store.Load(ctx, token)
	if err != nil {
		return nil, domain.ErrNoSession
	}
	if update.Email != nil {
		identity.Email = *update.Email
	}
	if err := f.store.Save(ctx, token, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

func (f *fakeAuth) RequestPasswordReset(context.Context, string) error { return nil }

func (f *fakeAuth) CreateUser(_ context.Context, input ports.RegisterInput, role string) (*domain.Identity, error) {
	return &domain.Identity{ID: "x", Username: input.Username, Role: role}, nil
}

type memSessions struct {
	data map[string]*domain.Identity
}

func newMemSessions() *memSessions {
	return &memSessions{data: make(map[string]*domain.Identity)}
}

func (s *memSessions) Save(_ context.Context, token string, identity *domain.Identity) error {
	clone := *identity
	s.data[token] = &clone
	return nil
}

func (s *memSessions) Load(_ context.Context, token string) (*domain.Identity, error) {
	if i, ok := s.data[token]; ok {
		clone := *i
		return &clone, nil
	}
	return nil, domain.ErrNoSession
}

func (s *memSessions) Clear(_ context.Context, token string) error {
	delete(s.data, token)
	return nil
}

func postJSON(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		// Mirror the app's central mapping closely enough for assertions.
		switch {
		case err == domain.ErrInvalidCredentials:
			rec.Code = http.StatusUnauthorized
		case err == domain.ErrUserExists:
			rec.Code = http.StatusConflict
		default:
			if he, ok := err.(*echo.HTTPError); ok {
				rec.Code = he.Code
			} else {
				rec.Code = http.StatusInternalServerError
			}
		}
	}
	return rec
}

func TestAuthHandler_Login(t *testing.T) {
	store := newMemSessions()
	h := NewAuthHandler(newFakeAuth(store), store)

	rec := postJSON(t, h.Login, `{"username":"alma","password":"secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("missing token")
	}
	if !resp.Session.Authenticated || resp.Session.Admin {
		t.Fatalf("session = %+v", resp.Session)
	}
	if resp.User == nil || resp.User.Username != "alma" {
		t.Fatalf("user = %+v", resp.User)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	store := newMemSessions()
	h := NewAuthHandler(newFakeAuth(store), store)

	rec := postJSON(t, h.Login, `{"username":"alma","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", rec.Code)
	}
	if len(store.data) != 0 {
		t.Fatalf("failed login bound a session")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	store := newMemSessions()
	h := NewAuthHandler(newFakeAuth(store), store)

	rec := postJSON(t, h.Login, `{"username":"alma"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", rec.Code)
	}
}

func TestAuthHandler_AdminLogin(t *testing.T) {
	store := newMemSessions()
	h := NewAuthHandler(newFakeAuth(store), store)

	rec := postJSON(t, h.AdminLogin, `{"username":"root","password":"secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}

	var resp sessionResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if !resp.Session.Admin {
		t.Fatalf("expected admin session, got %+v", resp.Session)
	}
}

func TestAuthHandler_AdminLogin_RejectsRegularUser(t *testing.T) {
	store := newMemSessions()
	h := NewAuthHandler(newFakeAuth(store), store)

	// Correct credentials, wrong role: same generic failure as a wrong
	// password, and no session may be left behind.
	rec := postJSON(t, h.AdminLogin, `{"username":"alma","password":"secret123"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", rec.Code)
	}
	if len(store.data) != 0 {
		t.Fatalf("rejected admin login bound a session")
	}
}

func TestAuthHandler_Register(t *testing.T) {
	store := newMemSessions()
	h := NewAuthHandler(newFakeAuth(store), store)

	rec := postJSON(t, h.Register, `{
		"username":"newbie",
		"password":"longenough",
		"first_name":"New",
		"last_name":"Member",
		"email":"new@example.com"
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d, want 201", rec.Code)
	}

	var resp sessionResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.User == nil || resp.User.Role != domain.RoleRegular {
		t.Fatalf("registered role = %+v", resp.User)
	}
	if resp.Token == "" {
		t.Fatalf("register must auto-login")
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	store := newMemSessions()
	h := NewAuthHandler(newFakeAuth(store), store)

	body := `{"username":"alma","password":"longenough","first_name":"A","last_name":"B","email":"a@example.com"}`
	rec := postJSON(t, h.Register, body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("code = %d, want 409", rec.Code)
	}
}
