// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bountyhub/internal/delivery/http/middleware"
	"bountyhub/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	TwoFactorHandler *handler.TwoFactorHandler
	ProgramHandler   *handler.ProgramHandler
	ReportHandler    *handler.ReportHandler
	AccountHandler   *handler.AccountHandler
	GateMiddleware   *middleware.GateMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	twoFactorHandler *handler.TwoFactorHandler
	programHandler   *handler.ProgramHandler
	reportHandler    *handler.ReportHandler
	accountHandler   *handler.AccountHandler
	gate             *middleware.GateMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		twoFactorHandler: params.TwoFactorHandler,
		programHandler:   params.ProgramHandler,
		reportHandler:    params.ReportHandler,
		accountHandler:   params.AccountHandler,
		gate:             params.GateMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// The gate middleware runs globally; it decides per path whether a request
// needs a token and which role the path demands.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.gate.Handle)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes; public by path, each endpoint does its own cookie work.
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.POST("/refresh", r.authHandler.Refresh)
	}

	// Routes for any authenticated user.
	userGroup := e.Group("/api/user")
	{
		userGroup.GET("/me", r.authHandler.Me)
		userGroup.GET("/sessions", r.accountHandler.Sessions)
		userGroup.POST("/2fa/setup", r.twoFactorHandler.Setup)
		userGroup.POST("/2fa/confirm", r.twoFactorHandler.Confirm)
		userGroup.POST("/2fa/disable", r.twoFactorHandler.Disable)
	}

	// Program browsing for any authenticated user.
	programGroup := e.Group("/api/programs")
	{
		programGroup.GET("", r.programHandler.ListActive)
		programGroup.GET("/:id", r.programHandler.Get)
	}

	// Company-only routes; the gate enforces the role by prefix.
	companyGroup := e.Group("/api/company")
	{
		companyGroup.POST("/programs", r.programHandler.Create)
		companyGroup.GET("/programs", r.programHandler.ListMine)
		companyGroup.PATCH("/programs/:id", r.programHandler.Update)
		companyGroup.GET("/programs/:id/reports", r.reportHandler.ListForProgram)
		companyGroup.PATCH("/reports/:id/status", r.reportHandler.UpdateStatus)
	}

	// Researcher-only routes.
	researcherGroup := e.Group("/api/researcher")
	{
		researcherGroup.POST("/programs/:id/enroll", r.programHandler.Enroll)
		researcherGroup.POST("/reports", r.reportHandler.Submit)
		researcherGroup.GET("/reports", r.reportHandler.ListMine)
		researcherGroup.GET("/reports/:id", r.reportHandler.GetMine)
	}

	// Admin-only routes.
	adminGroup := e.Group("/api/admin")
	{
		adminGroup.GET("/audit", r.accountHandler.AuditLog)
	}
}
