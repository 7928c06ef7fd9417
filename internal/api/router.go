package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/llmbench/console/internal/api/handler"
	"github.com/llmbench/console/internal/api/middleware"
	"github.com/llmbench/console/internal/core/ports"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Auth        ports.AuthService
	Provisioner ports.CredentialProvisioner
	Catalog     ports.CatalogAPI
	Users       ports.UserAdminAPI
	Profile     ports.ProfileAPI
	TestBank    ports.TestBankAPI
	Results     ports.ResultAPI
	Backend     handler.BackendPinger

	// Store is the active session store, probed by the readiness handler.
	Store ports.SessionStore
	Log   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("console"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	catalogHandler := handler.NewCatalogHandler(d.Catalog, d.Provisioner)
	userHandler := handler.NewUserHandler(d.Users)
	testBankHandler := handler.NewTestBankHandler(d.TestBank)
	dashboardHandler := handler.NewDashboardHandler(d.Results, d.Catalog)
	profileHandler := handler.NewProfileHandler(d.Auth, d.Profile)

	// --- Always reachable ---
	e.GET(middleware.LoginPath, authHandler.LoginView)
	e.POST(middleware.LoginPath, authHandler.Login)
	e.POST("/logout", authHandler.Logout)
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Store, d.Backend)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Protected views ---
	protected := e.Group("", middleware.Guard(d.Auth))
	protected.GET("/", dashboardHandler.View)
	protected.GET("/session", authHandler.Session)

	protected.GET("/llms", catalogHandler.List)
	protected.POST("/llms", catalogHandler.Create)
	protected.PUT("/llms/:id", catalogHandler.Update)
	protected.DELETE("/llms/:id", catalogHandler.Delete)
	protected.POST("/llms/:id/run_tests", catalogHandler.RunTests)
	protected.POST("/llms/:id/token", catalogHandler.IssueToken)

	protected.GET("/profile", profileHandler.View)
	protected.PATCH("/profile", profileHandler.Update)

	// --- Staff-only views ---
	staff := protected.Group("", middleware.StaffOnly(d.Auth))
	staff.GET("/users", userHandler.List)
	staff.POST("/users", userHandler.Create)
	staff.PATCH("/users/:id", userHandler.Update)
	staff.DELETE("/users/:id", userHandler.Delete)

	staff.GET("/tests", testBankHandler.List)
	staff.POST("/tests", testBankHandler.Create)
	staff.PUT("/tests/:id", testBankHandler.Update)
	staff.DELETE("/tests/:id", testBankHandler.Delete)

	// Unknown paths fall back to the default landing view.
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, middleware.LandingPath)
	})

	return e
}
