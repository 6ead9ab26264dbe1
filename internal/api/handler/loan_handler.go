package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pmbajaj/Lib-Management-System/internal/api/metrics"
	"github.com/pmbajaj/Lib-Management-System/internal/api/middleware"
	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
	"github.com/pmbajaj/Lib-Management-System/internal/core/ports"
)

// LoanHandler serves the lending endpoints: borrow, return, renew and the
// loan history views, plus the staff-only ledger endpoints.
type LoanHandler struct {
	loans ports.LoanService
}

func NewLoanHandler(loans ports.LoanService) *LoanHandler {
	return &LoanHandler{loans: loans}
}

type borrowRequest struct {
	BookID string `json:"book_id" validate:"required"`
}

// actor derives the loan actor from the session identity set by the gates.
// Gated routes guarantee an identity is present; the nil check is a
// backstop for misconfigured routing.
func actor(c echo.Context) (ports.Actor, error) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return ports.Actor{}, domain.ErrNoSession
	}
	return ports.Actor{UserID: identity.ID, Role: identity.Role}, nil
}

func loanFilter(c echo.Context) ports.ListLoansFilter {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	return ports.ListLoansFilter{
		UserID: c.QueryParam("user_id"),
		Status: domain.LoanStatus(c.QueryParam("status")),
		Page:   page,
		Limit:  limit,
	}
}

// Borrow takes one available copy of a book for the caller.
//
// @Summary      Borrow a book
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      borrowRequest  true  "Book to borrow"
// @Success      201   {object}  domain.Loan
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /loans [post]
func (h *LoanHandler) Borrow(c echo.Context) error {
	var req borrowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	act, err := actor(c)
	if err != nil {
		return err
	}

	loan, err := h.loans.Borrow(c.Request().Context(), act, req.BookID)
	if err != nil {
		return err
	}

	metrics.LoansCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, loan)
}

// Return closes a loan and restores the copy to the catalog.
//
// @Summary      Return a borrowed book
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Loan ID"
// @Success      200  {object}  domain.Loan
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /loans/{id}/return [post]
func (h *LoanHandler) Return(c echo.Context) error {
	act, err := actor(c)
	if err != nil {
		return err
	}

	loan, err := h.loans.Return(c.Request().Context(), act, c.Param("id"))
	if err != nil {
		return err
	}

	fined := "false"
	if loan.FineAmount > 0 {
		fined = "true"
	}
	metrics.LoansReturnedTotal.WithLabelValues(fined).Inc()

	return c.JSON(http.StatusOK, loan)
}

// Renew extends a loan's due date.
//
// @Summary      Renew a loan
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Loan ID"
// @Success      200  {object}  domain.Loan
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /loans/{id}/renew [post]
func (h *LoanHandler) Renew(c echo.Context) error {
	act, err := actor(c)
	if err != nil {
		return err
	}

	loan, err := h.loans.Renew(c.Request().Context(), act, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loan)
}

// List returns the caller's loan history. Staff may pass user_id to scope
// to any user, or omit it to see the whole ledger.
//
// @Summary      List loans
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        status   query  string  false  "BORROWED, RETURNED, OVERDUE or LOST"
// @Param        user_id  query  string  false  "Staff only: scope to a user"
// @Param        page     query  int     false  "Page number"
// @Param        limit    query  int     false  "Page size"
// @Success      200  {object}  ports.ListLoansResult
// @Router       /loans [get]
func (h *LoanHandler) List(c echo.Context) error {
	act, err := actor(c)
	if err != nil {
		return err
	}

	result, err := h.loans.List(c.Request().Context(), act, loanFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Overdue lists every overdue loan in the ledger. Staff only.
//
// @Summary      List overdue loans
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Loan
// @Router       /admin/transactions/overdue [get]
func (h *LoanHandler) Overdue(c echo.Context) error {
	loans, err := h.loans.Overdue(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loans)
}
