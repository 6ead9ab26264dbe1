package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pmbajaj/Lib-Management-System/internal/api/metrics"
	"github.com/pmbajaj/Lib-Management-System/internal/api/middleware"
	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
	"github.com/pmbajaj/Lib-Management-System/internal/core/ports"
	"github.com/pmbajaj/Lib-Management-System/internal/core/service"
)

// AuthHandler serves every session-mutating endpoint: login, registration,
// logout, profile and password-reset requests. Mutations run through a
// SessionManager bound to the caller's token so every state transition goes
// through the session authority, never around it.
type AuthHandler struct {
	auth  ports.AuthService
	store ports.SessionStore
}

func NewAuthHandler(auth ports.AuthService, store ports.SessionStore) *AuthHandler {
	return &AuthHandler{auth: auth, store: store}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
}

type sessionResponse struct {
	Token   string           `json:"token,omitempty"`
	Session domain.Session   `json:"session"`
	User    *domain.Identity `json:"user,omitempty"`
}

// Login authenticates a user and binds a new session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	return h.login(c, false)
}

// AdminLogin authenticates like Login but only admits administrators. A
// valid non-admin credential pair is rejected with the same generic failure
// as a wrong password, so the endpoint leaks nothing about account roles.
//
// @Summary      Administrator login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/admin-login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, true)
}

func (h *AuthHandler) login(c echo.Context, adminOnly bool) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	kind := "user"
	if adminOnly {
		kind = "admin"
	}

	if adminOnly {
		// Check the role before binding anything: a non-admin must not end
		// up with a live session as a side effect of a rejected login.
		identity, err := h.auth.Validate(c.Request().Context(), req.Username, req.Password)
		if err != nil {
			metrics.LoginsTotal.WithLabelValues("failure", kind).Inc()
			return err
		}
		if !identity.IsAdmin() {
			metrics.LoginsTotal.WithLabelValues("failure", kind).Inc()
			return domain.ErrInvalidCredentials
		}
	}

	sess := service.NewSessionManager(h.auth, h.store, "")
	identity, err := sess.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure", kind).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success", kind).Inc()
	return c.JSON(http.StatusOK, sessionResponse{
		Token:   sess.Token(),
		Session: sess.Snapshot(),
		User:    identity,
	})
}

// Register creates a REGULAR account and auto-logs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess := service.NewSessionManager(h.auth, h.store, "")
	identity, err := sess.Register(c.Request().Context(), ports.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusCreated, sessionResponse{
		Token:   sess.Token(),
		Session: sess.Snapshot(),
		User:    identity,
	})
}

// Logout clears the caller's session. Calling it without a session is a
// successful no-op.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := middleware.SessionToken(c)

	sess := service.NewSessionManager(h.auth, h.store, token)
	if err := sess.Resolve(c.Request().Context()); err != nil {
		return err
	}
	if err := sess.Logout(c.Request().Context()); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// ForgotPassword accepts a password-reset request. The response is identical
// whether or not the email belongs to an account.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.auth.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "if the email exists, reset instructions have been sent",
	})
}

// Profile returns the identity bound to the caller's session.
//
// @Summary      Get own profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  map[string]string
// @Router       /profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return domain.ErrNoSession
	}
	return c.JSON(http.StatusOK, identity)
}

// UpdateProfile merges partial profile fields into the bound identity.
//
// @Summary      Update own profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  domain.Identity
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token := middleware.SessionToken(c)
	sess := service.NewSessionManager(h.auth, h.store, token)
	if err := sess.Resolve(c.Request().Context()); err != nil {
		return err
	}

	identity, err := sess.UpdateProfile(c.Request().Context(), ports.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, identity)
}

// Session reports the caller's current session snapshot, including the
// resolving flag, so clients can drive their own gates from it.
//
// @Summary      Current session state
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Session
// @Router       /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.CurrentSession(c))
}
