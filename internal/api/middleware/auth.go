package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
	"github.com/pmbajaj/Lib-Management-System/internal/core/ports"
	"github.com/pmbajaj/Lib-Management-System/internal/core/service"
)

// Context keys set by the Session middleware.
const (
	sessionContextKey = "session"
	tokenContextKey   = "session_token"
)

// Session resolves the session bound to the request's bearer token and
// injects the resulting session value into the echo context. A request
// without a token, with an invalid token, or whose session was cleared
// proceeds as anonymous; the route gates decide whether that is acceptable.
// Only a session-store outage leaves the session in the resolving state.
func Session(jwtSecret string, auth ports.AuthService, store ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request())
			if token != "" && !verifyToken(token, jwtSecret) {
				token = ""
			}

			manager := service.NewSessionManager(auth, store, token)
			// A resolve failure leaves the snapshot in StateResolving;
			// gates translate that into a retryable response.
			_ = manager.Resolve(c.Request().Context())

			c.Set(sessionContextKey, manager.Snapshot())
			c.Set(tokenContextKey, token)
			return next(c)
		}
	}
}

// CurrentSession returns the session resolved by the Session middleware.
// Before the middleware has run it reports an anonymous session.
func CurrentSession(c echo.Context) domain.Session {
	if s, ok := c.Get(sessionContextKey).(domain.Session); ok {
		return s
	}
	return domain.AnonymousSession()
}

// CurrentIdentity returns the authenticated identity, or nil.
func CurrentIdentity(c echo.Context) *domain.Identity {
	return CurrentSession(c).Identity
}

// SessionToken returns the verified bearer token, or "".
func SessionToken(c echo.Context) string {
	if t, ok := c.Get(tokenContextKey).(string); ok {
		return t
	}
	return ""
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// verifyToken checks the JWT signature and expiry. The identity itself is
// authoritative in the session store; the JWT only proves the token was
// issued by this service.
func verifyToken(token, jwtSecret string) bool {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	return err == nil && tkn.Valid
}
