package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pmbajaj/Lib-Management-System/internal/api/middleware"
	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
	"github.com/pmbajaj/Lib-Management-System/internal/core/ports"
)

// DashboardHandler composes the member dashboard: the bound identity, the
// member's active loans and their unread notification count.
type DashboardHandler struct {
	loans         ports.LoanService
	notifications ports.NotificationService
}

func NewDashboardHandler(loans ports.LoanService, notifications ports.NotificationService) *DashboardHandler {
	return &DashboardHandler{loans: loans, notifications: notifications}
}

type dashboardResponse struct {
	User                *domain.Identity `json:"user"`
	ActiveLoans         []*domain.Loan   `json:"active_loans"`
	OverdueLoans        []*domain.Loan   `json:"overdue_loans"`
	UnreadNotifications int64            `json:"unread_notifications"`
}

// Dashboard returns the member dashboard for the caller.
//
// @Summary      Member dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  map[string]string
// @Router       /dashboard [get]
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return domain.ErrNoSession
	}

	act := ports.Actor{UserID: identity.ID, Role: identity.Role}
	ctx := c.Request().Context()

	active, err := h.loans.List(ctx, act, ports.ListLoansFilter{
		UserID: identity.ID,
		Status: domain.LoanBorrowed,
		Limit:  domain.MaxLoansPerUser,
	})
	if err != nil {
		return err
	}

	overdue, err := h.loans.List(ctx, act, ports.ListLoansFilter{
		UserID: identity.ID,
		Status: domain.LoanOverdue,
		Limit:  domain.MaxLoansPerUser,
	})
	if err != nil {
		return err
	}

	inbox, err := h.notifications.ListMine(ctx, identity.ID, 1, 1)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		User:                identity,
		ActiveLoans:         active.Items,
		OverdueLoans:        overdue.Items,
		UnreadNotifications: inbox.Unread,
	})
}
