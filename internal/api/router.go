package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/pmbajaj/Lib-Management-System/docs"
	"github.com/pmbajaj/Lib-Management-System/internal/api/handler"
	"github.com/pmbajaj/Lib-Management-System/internal/api/middleware"
	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
	"github.com/pmbajaj/Lib-Management-System/internal/core/ports"
)

// Deps carries everything the router needs. The router wires transport only;
// construction of services happens in main.
type Deps struct {
	JWTSecret string
	Log       zerolog.Logger

	Mongo *mongo.Database
	Redis *redis.Client

	Auth          ports.AuthService
	Sessions      ports.SessionStore
	Users         ports.IdentityRepository
	Books         ports.BookService
	Loans         ports.LoanService
	Notifications ports.NotificationService
	Reports       ports.ReportService
}

// NewRouter builds and returns the Echo instance with all routes registered.
//
// Route groups mirror the authorization model:
//   - public routes: catalog browsing, login, registration, health, metrics
//   - session routes (logout, profile) open to any bound identity
//   - catalog management open to staff (librarian or administrator)
//   - /v1 member routes behind the user gate
//   - /v1/admin routes behind the admin gate plus a role check
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("library"))
	e.Use(middleware.Session(d.JWTSecret, d.Auth, d.Sessions))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Sessions)
	bookHandler := handler.NewBookHandler(d.Books)
	loanHandler := handler.NewLoanHandler(d.Loans)
	notificationHandler := handler.NewNotificationHandler(d.Notifications)
	reportHandler := handler.NewReportHandler(d.Reports)
	userHandler := handler.NewUserHandler(d.Auth, d.Users)
	dashboardHandler := handler.NewDashboardHandler(d.Loans, d.Notifications)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"service": "library-management-system"})
	})

	// --- Public routes ---
	v1 := e.Group("/v1")
	v1.GET("/session", authHandler.Session)
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/admin-login", authHandler.AdminLogin)
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/forgot-password", authHandler.ForgotPassword)

	v1.GET("/books", bookHandler.List)
	v1.GET("/books/search", bookHandler.Search)
	v1.GET("/books/available", bookHandler.Available)
	v1.GET("/books/:id", bookHandler.Get)

	// --- Session routes (any bound identity) ---
	// Logout and profile edits are session operations, not user-only views:
	// an administrator must be able to clear its own session too.
	authed := v1.Group("", middleware.SessionGate())
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/profile", authHandler.Profile)
	authed.PUT("/profile", authHandler.UpdateProfile)

	// --- Catalog management (staff: librarians and administrators) ---
	staff := v1.Group("/books", middleware.SessionGate(), middleware.RBAC(domain.RoleAdmin, domain.RoleLibrarian))
	staff.POST("", bookHandler.Add)
	staff.PUT("/:id", bookHandler.Update)

	// --- Member routes (user gate) ---
	member := v1.Group("", middleware.UserGate())
	member.GET("/dashboard", dashboardHandler.Dashboard)

	member.GET("/loans", loanHandler.List)
	member.POST("/loans", loanHandler.Borrow)
	member.POST("/loans/:id/return", loanHandler.Return)
	member.POST("/loans/:id/renew", loanHandler.Renew)
	member.GET("/transactions", loanHandler.List) // alias kept for older clients

	member.GET("/notifications", notificationHandler.List)
	member.PATCH("/notifications/read-all", notificationHandler.MarkAllRead)
	member.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
	member.DELETE("/notifications/:id", notificationHandler.Delete)

	// Announced but not yet built.
	member.GET("/reading-lists", NotImplemented)
	member.GET("/recommendations", NotImplemented)

	// --- Admin routes (admin gate + role check) ---
	admin := v1.Group("/admin", middleware.AdminGate(), middleware.RBAC(domain.RoleAdmin))
	admin.GET("/dashboard", reportHandler.AdminDashboard)
	admin.GET("/reports", reportHandler.Report)

	// Removing a catalog entry stays admin-only.
	admin.DELETE("/books/:id", bookHandler.Delete)

	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)

	admin.GET("/transactions", loanHandler.List)
	admin.GET("/transactions/overdue", loanHandler.Overdue)

	// Unknown paths land on the index instead of a bare 404.
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/")
	})

	return e
}

// NotImplemented answers for routes that are announced but not yet built.
func NotImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]string{"error": "coming soon"})
}
