package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrNoSession, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrBookNotFound, http.StatusNotFound},
		{domain.ErrISBNExists, http.StatusConflict},
		{domain.ErrNoCopiesAvailable, http.StatusUnprocessableEntity},
		{domain.ErrBookOnLoan, http.StatusUnprocessableEntity},
		{domain.ErrLoanNotFound, http.StatusNotFound},
		{domain.ErrLoanClosed, http.StatusUnprocessableEntity},
		{domain.ErrLoanLimitReached, http.StatusUnprocessableEntity},
		{domain.ErrRenewalLimitReached, http.StatusUnprocessableEntity},
		{domain.ErrLoanOverdue, http.StatusUnprocessableEntity},
		{domain.ErrNotificationNotFound, http.StatusNotFound},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler(tc.err, c)
		if rec.Code != tc.want {
			t.Errorf("%v: code = %d, want %d", tc.err, rec.Code, tc.want)
		}
	}
}

func TestHTTPErrorHandler_CredentialMessageIsGeneric(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(domain.ErrInvalidCredentials, c)
	body := rec.Body.String()
	if want := "Invalid username or password"; !strings.Contains(body, want) {
		t.Fatalf("body %q missing generic message", body)
	}
}

func TestHTTPErrorHandler_InternalErrorIsOpaque(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(errors.New("password hash column corrupt"), c)
	if strings.Contains(rec.Body.String(), "corrupt") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
}

func TestHTTPErrorHandler_PassesThroughEchoErrors(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(echo.NewHTTPError(http.StatusTeapot, "short and stout"), c)
	if rec.Code != http.StatusTeapot {
		t.Fatalf("code = %d, want 418", rec.Code)
	}
}
