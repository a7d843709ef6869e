package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amplyfy/consulting-crm/api/internal/auth"
	"github.com/amplyfy/consulting-crm/api/internal/config"
	"github.com/amplyfy/consulting-crm/api/internal/entity"
	"github.com/amplyfy/consulting-crm/api/internal/handler"
	middlewarepkg "github.com/amplyfy/consulting-crm/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth       *handler.AuthHandler
	Leads      *handler.LeadsHandler
	LeadFinder *handler.LeadFinderHandler
	Employees  *handler.EmployeesHandler
	Expenses   *handler.ExpensesHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, sessions *auth.SessionManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/login", handlers.Auth.Login)
	e.Static("/uploads", cfg.UploadsDir)

	secured := e.Group("")
	secured.Use(middlewarepkg.Session(sessions))

	secured.POST("/auth/logout", handlers.Auth.Logout)
	secured.GET("/auth/me", handlers.Auth.Me)

	secured.GET("/leads", handlers.Leads.List)
	secured.POST("/leads", handlers.Leads.Create)
	secured.PATCH("/leads/:id/status", handlers.Leads.UpdateStatus)
	secured.PATCH("/leads/:id/called", handlers.Leads.ToggleCalled)
	secured.DELETE("/leads/:id", handlers.Leads.Delete, middlewarepkg.RequireRole(string(entity.RoleAdmin)))
	secured.GET("/dashboard/stats", handlers.Leads.Stats)

	secured.POST("/leads/find", handlers.LeadFinder.Find, middlewarepkg.FindLeadsRateLimiter(cfg.RateLimitFindLeads))
	secured.POST("/leads/approve", handlers.LeadFinder.Approve)

	admin := secured.Group("/admin", middlewarepkg.RequireRole(string(entity.RoleAdmin)))
	admin.GET("/employees", handlers.Employees.List)
	admin.POST("/employees", handlers.Employees.Create)
	admin.DELETE("/employees/:id", handlers.Employees.Delete)
	admin.GET("/expenses", handlers.Expenses.List)
	admin.POST("/expenses", handlers.Expenses.Create)
	admin.DELETE("/expenses/:id", handlers.Expenses.Delete)
}
