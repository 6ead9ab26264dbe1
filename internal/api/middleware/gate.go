package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pmbajaj/Lib-Management-System/internal/api/metrics"
	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
)

// Route targets the gates redirect to. They mirror the client application's
// route surface.
const (
	loginRoute          = "/login"
	adminLoginRoute     = "/admin-login"
	dashboardRoute      = "/dashboard"
	adminDashboardRoute = "/admin/dashboard"
)

// GateDecision is the outcome kind of one gate evaluation.
type GateDecision string

const (
	// DecisionAllow renders the requested view.
	DecisionAllow GateDecision = "allow"
	// DecisionWait holds the request while the session is still resolving.
	DecisionWait GateDecision = "wait"
	// DecisionRedirect sends the caller elsewhere without rendering.
	DecisionRedirect GateDecision = "redirect"
	// DecisionDeny refuses with a permission notice, then redirects.
	DecisionDeny GateDecision = "deny"
)

// GateOutcome is one gate evaluation: what to do, where to send the caller,
// and the notice to show on denial.
type GateOutcome struct {
	Decision GateDecision
	Target   string
	Notice   string
}

// UserGateDecision is the authenticated-only gate. It is a pure function of
// the session value, re-evaluated on every request:
//
//	Resolving           → wait
//	Anonymous           → redirect to login
//	AuthenticatedAdmin  → redirect to the admin dashboard
//	AuthenticatedUser   → allow
//
// Administrators are never shown regular-user-only views.
func UserGateDecision(s domain.Session) GateOutcome {
	switch s.State {
	case domain.StateResolving:
		return GateOutcome{Decision: DecisionWait}
	case domain.StateAnonymous:
		return GateOutcome{Decision: DecisionRedirect, Target: loginRoute}
	case domain.StateAdmin:
		return GateOutcome{Decision: DecisionRedirect, Target: adminDashboardRoute}
	default:
		return GateOutcome{Decision: DecisionAllow}
	}
}

// AdminGateDecision is the admin-only gate:
//
//	Resolving           → wait
//	Anonymous           → redirect to the admin login
//	AuthenticatedUser   → deny with a permission notice, redirect to dashboard
//	AuthenticatedAdmin  → allow
func AdminGateDecision(s domain.Session) GateOutcome {
	switch s.State {
	case domain.StateResolving:
		return GateOutcome{Decision: DecisionWait}
	case domain.StateAnonymous:
		return GateOutcome{Decision: DecisionRedirect, Target: adminLoginRoute}
	case domain.StateUser:
		return GateOutcome{
			Decision: DecisionDeny,
			Target:   dashboardRoute,
			Notice:   "You don't have administrator privileges to access this area.",
		}
	default:
		return GateOutcome{Decision: DecisionAllow}
	}
}

// SessionGateDecision admits any bound identity, regular or admin. It guards
// the operations every authenticated session may perform, such as logout and
// profile edits, and staff routes that pair it with a role check:
//
//	Resolving           → wait
//	Anonymous           → redirect to login
//	AuthenticatedUser   → allow
//	AuthenticatedAdmin  → allow
func SessionGateDecision(s domain.Session) GateOutcome {
	switch s.State {
	case domain.StateResolving:
		return GateOutcome{Decision: DecisionWait}
	case domain.StateAnonymous:
		return GateOutcome{Decision: DecisionRedirect, Target: loginRoute}
	default:
		return GateOutcome{Decision: DecisionAllow}
	}
}

// UserGate guards authenticated-user routes with UserGateDecision.
func UserGate() echo.MiddlewareFunc {
	return gate("user", UserGateDecision)
}

// AdminGate guards admin routes with AdminGateDecision.
func AdminGate() echo.MiddlewareFunc {
	return gate("admin", AdminGateDecision)
}

// SessionGate guards any-authenticated routes with SessionGateDecision.
func SessionGate() echo.MiddlewareFunc {
	return gate("session", SessionGateDecision)
}

func gate(name string, decide func(domain.Session) GateOutcome) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			outcome := decide(CurrentSession(c))
			metrics.GateDecisionsTotal.WithLabelValues(name, string(outcome.Decision)).Inc()

			switch outcome.Decision {
			case DecisionAllow:
				return next(c)
			case DecisionWait:
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "session resolving"})
			case DecisionDeny:
				return c.JSON(http.StatusForbidden, map[string]string{
					"error":    outcome.Notice,
					"redirect": outcome.Target,
				})
			default:
				return c.Redirect(http.StatusSeeOther, outcome.Target)
			}
		}
	}
}
