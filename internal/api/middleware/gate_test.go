package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
)

func sessionFor(role string) domain.Session {
	return domain.BoundSession(&domain.Identity{ID: "u1", Username: "u", Role: role})
}

func TestUserGateDecision(t *testing.T) {
	cases := []struct {
		name       string
		session    domain.Session
		want       GateDecision
		wantTarget string
	}{
		{"resolving waits", domain.ResolvingSession(), DecisionWait, ""},
		{"anonymous redirects to login", domain.AnonymousSession(), DecisionRedirect, "/login"},
		{"regular user allowed", sessionFor(domain.RoleRegular), DecisionAllow, ""},
		{"admin redirected to admin dashboard", sessionFor(domain.RoleAdmin), DecisionRedirect, "/admin/dashboard"},
	}

	for _, tc := range cases {
		got := UserGateDecision(tc.session)
		if got.Decision != tc.want {
			t.Errorf("%s: decision = %q, want %q", tc.name, got.Decision, tc.want)
		}
		if got.Target != tc.wantTarget {
			t.Errorf("%s: target = %q, want %q", tc.name, got.Target, tc.wantTarget)
		}
	}
}

func TestAdminGateDecision(t *testing.T) {
	cases := []struct {
		name       string
		session    domain.Session
		want       GateDecision
		wantTarget string
	}{
		{"resolving waits", domain.ResolvingSession(), DecisionWait, ""},
		{"anonymous redirects to admin login", domain.AnonymousSession(), DecisionRedirect, "/admin-login"},
		{"regular user denied", sessionFor(domain.RoleRegular), DecisionDeny, "/dashboard"},
		{"admin allowed", sessionFor(domain.RoleAdmin), DecisionAllow, ""},
	}

	for _, tc := range cases {
		got := AdminGateDecision(tc.session)
		if got.Decision != tc.want {
			t.Errorf("%s: decision = %q, want %q", tc.name, got.Decision, tc.want)
		}
		if got.Target != tc.wantTarget {
			t.Errorf("%s: target = %q, want %q", tc.name, got.Target, tc.wantTarget)
		}
	}
}

func TestSessionGateDecision(t *testing.T) {
	cases := []struct {
		name       string
		session    domain.Session
		want       GateDecision
		wantTarget string
	}{
		{"resolving waits", domain.ResolvingSession(), DecisionWait, ""},
		{"anonymous redirects to login", domain.AnonymousSession(), DecisionRedirect, "/login"},
		{"regular user allowed", sessionFor(domain.RoleRegular), DecisionAllow, ""},
		{"librarian allowed", sessionFor(domain.RoleLibrarian), DecisionAllow, ""},
		{"admin allowed", sessionFor(domain.RoleAdmin), DecisionAllow, ""},
	}

	for _, tc := range cases {
		got := SessionGateDecision(tc.session)
		if got.Decision != tc.want {
			t.Errorf("%s: decision = %q, want %q", tc.name, got.Decision, tc.want)
		}
		if got.Target != tc.wantTarget {
			t.Errorf("%s: target = %q, want %q", tc.name, got.Target, tc.wantTarget)
		}
	}
}

func TestAdminGateDecision_DenyCarriesNotice(t *testing.T) {
	got := AdminGateDecision(sessionFor(domain.RoleRegular))
	if got.Notice == "" {
		t.Fatalf("deny outcome must carry a notice")
	}
}

// gateRequest runs one request through a gated no-op handler with the given
// session pre-set in the context.
func gateRequest(t *testing.T, mw echo.MiddlewareFunc, session domain.Session) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(sessionContextKey, session)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("gate handler returned error: %v", err)
	}
	return rec
}

func TestUserGate_HTTPMapping(t *testing.T) {
	// Resolving → 503 with Retry-After.
	rec := gateRequest(t, UserGate(), domain.ResolvingSession())
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("resolving: code = %d, want 503", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("resolving: missing Retry-After header")
	}

	// Anonymous → 303 to /login.
	rec = gateRequest(t, UserGate(), domain.AnonymousSession())
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("anonymous: code = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("anonymous: location = %q", loc)
	}

	// Regular user → 200.
	rec = gateRequest(t, UserGate(), sessionFor(domain.RoleRegular))
	if rec.Code != http.StatusOK {
		t.Fatalf("user: code = %d, want 200", rec.Code)
	}

	// Admin → 303 to the admin dashboard.
	rec = gateRequest(t, UserGate(), sessionFor(domain.RoleAdmin))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("admin: code = %d, want 303", rec.Code)
	}
}

func TestSessionGate_HTTPMapping(t *testing.T) {
	// Admin reaches the handler: session operations are not user-only views.
	rec := gateRequest(t, SessionGate(), sessionFor(domain.RoleAdmin))
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: code = %d, want 200", rec.Code)
	}

	// Anonymous → 303 to /login.
	rec = gateRequest(t, SessionGate(), domain.AnonymousSession())
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("anonymous: code = %d, want 303", rec.Code)
	}
}

func TestAdminGate_HTTPMapping(t *testing.T) {
	// Regular user → 403 with notice and redirect target.
	rec := gateRequest(t, AdminGate(), sessionFor(domain.RoleRegular))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("user: code = %d, want 403", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["redirect"] != "/dashboard" {
		t.Fatalf("redirect = %q, want /dashboard", body["redirect"])
	}
	if body["error"] == "" {
		t.Fatalf("deny body must carry the permission notice")
	}

	// Admin → 200.
	rec = gateRequest(t, AdminGate(), sessionFor(domain.RoleAdmin))
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: code = %d, want 200", rec.Code)
	}

	// Anonymous → 303 to /admin-login.
	rec = gateRequest(t, AdminGate(), domain.AnonymousSession())
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("anonymous: code = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin-login" {
		t.Fatalf("anonymous: location = %q", loc)
	}
}
