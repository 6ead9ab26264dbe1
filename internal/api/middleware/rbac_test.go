package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
)

func rbacRequest(t *testing.T, roles []string, session domain.Session) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(sessionContextKey, session)

	handler := RBAC(roles...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestRBAC_AllowsListedRole(t *testing.T) {
	rec := rbacRequest(t, []string{domain.RoleAdmin}, sessionFor(domain.RoleAdmin))
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
}

func TestRBAC_RefusesUnlistedRole(t *testing.T) {
	rec := rbacRequest(t, []string{domain.RoleAdmin}, sessionFor(domain.RoleRegular))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("code = %d, want 403", rec.Code)
	}
}

func TestRBAC_RefusesAnonymous(t *testing.T) {
	rec := rbacRequest(t, []string{domain.RoleAdmin}, domain.AnonymousSession())
	if rec.Code != http.StatusForbidden {
		t.Fatalf("code = %d, want 403", rec.Code)
	}
}

func TestRBAC_MultipleRoles(t *testing.T) {
	roles := []string{domain.RoleAdmin, domain.RoleLibrarian}
	if rec := rbacRequest(t, roles, sessionFor(domain.RoleLibrarian)); rec.Code != http.StatusOK {
		t.Fatalf("librarian refused: %d", rec.Code)
	}
	if rec := rbacRequest(t, roles, sessionFor(domain.RoleRegular)); rec.Code != http.StatusForbidden {
		t.Fatalf("regular admitted: %d", rec.Code)
	}
}
