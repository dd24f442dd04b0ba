// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pesawise/backend/internal/integration/entrypoint/controller"
	"github.com/pesawise/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	profileController     *controller.ProfileController
	transactionController *controller.TransactionController
	budgetController      *controller.BudgetController
	goalController        *controller.GoalController
	dashboardController   *controller.DashboardController
	advisorController     *controller.AdvisorController
	loginRateLimiter      middleware.Limiter
	advisorRateLimiter    middleware.Limiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	profileController *controller.ProfileController,
	transactionController *controller.TransactionController,
	budgetController *controller.BudgetController,
	goalController *controller.GoalController,
	dashboardController *controller.DashboardController,
	advisorController *controller.AdvisorController,
	loginRateLimiter middleware.Limiter,
	advisorRateLimiter middleware.Limiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		profileController:     profileController,
		transactionController: transactionController,
		budgetController:      budgetController,
		goalController:        goalController,
		dashboardController:   dashboardController,
		advisorController:     advisorController,
		loginRateLimiter:      loginRateLimiter,
		advisorRateLimiter:    advisorRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	// Auth routes (only setup if auth controller is available)
	if r.authController != nil && r.loginRateLimiter != nil {
		auth := v1.Group("/auth")
		{
			auth.POST("/register", middleware.RateLimit(r.loginRateLimiter, "register"), r.authController.Register)
			auth.POST("/login", middleware.RateLimit(r.loginRateLimiter, "login"), r.authController.Login)
		}
	}

	if r.authMiddleware == nil {
		return
	}

	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	if r.profileController != nil {
		protected.GET("/profile", r.profileController.Get)
		protected.PATCH("/profile", r.profileController.Update)
	}

	if r.transactionController != nil {
		transactions := protected.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", r.transactionController.Create)
			transactions.DELETE("/:id", r.transactionController.Delete)
		}
		protected.POST("/sync/mobile-money", r.transactionController.SyncMobileMoney)
	}

	if r.budgetController != nil {
		budgets := protected.Group("/budgets")
		{
			budgets.GET("", r.budgetController.List)
			budgets.POST("", r.budgetController.Create)
			budgets.GET("/overview", r.budgetController.Overview)
			budgets.DELETE("/:id", r.budgetController.Delete)
		}
	}

	if r.goalController != nil {
		goals := protected.Group("/goals")
		{
			goals.GET("", r.goalController.List)
			goals.POST("", r.goalController.Create)
			goals.PATCH("/:id", r.goalController.Update)
			goals.DELETE("/:id", r.goalController.Delete)
		}
	}

	if r.dashboardController != nil {
		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("", r.dashboardController.Get)
			dashboard.GET("/monthly", r.dashboardController.Monthly)
		}
	}

	if r.advisorController != nil {
		advisor := protected.Group("/advisor")
		if r.advisorRateLimiter != nil {
			advisor.Use(middleware.RateLimit(r.advisorRateLimiter, "advisor"))
		}
		{
			advisor.POST("/ask", r.advisorController.Ask)
			advisor.POST("/summary", r.advisorController.Summary)
		}
	}
}
