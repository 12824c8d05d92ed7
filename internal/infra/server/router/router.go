// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/wallet/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/wallet/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	accountController     *controller.AccountController
	creditCardController  *controller.CreditCardController
	billController        *controller.BillController
	transactionController *controller.TransactionController
	categoryController    *controller.CategoryController
	goalController        *controller.GoalController
	reportController      *controller.ReportController
	eventController       *controller.EventController
	authRateLimiter       *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	accountController *controller.AccountController,
	creditCardController *controller.CreditCardController,
	billController *controller.BillController,
	transactionController *controller.TransactionController,
	categoryController *controller.CategoryController,
	goalController *controller.GoalController,
	reportController *controller.ReportController,
	eventController *controller.EventController,
	authRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		accountController:     accountController,
		creditCardController:  creditCardController,
		billController:        billController,
		transactionController: transactionController,
		categoryController:    categoryController,
		goalController:        goalController,
		reportController:      reportController,
		eventController:       eventController,
		authRateLimiter:       authRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
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

	auth := v1.Group("/auth")
	auth.Use(r.authRateLimiter.Middleware())
	{
		auth.POST("/register", r.authController.Register)
		auth.POST("/login", r.authController.Login)
		auth.POST("/refresh", r.authController.Refresh)
		auth.POST("/logout", r.authController.Logout)
	}

	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	accounts := protected.Group("/accounts")
	{
		accounts.GET("", r.accountController.List)
		accounts.POST("", r.accountController.Create)
		accounts.GET("/:id", r.accountController.Get)
		accounts.PATCH("/:id", r.accountController.Update)
		accounts.DELETE("/:id", r.accountController.Delete)
	}

	cards := protected.Group("/credit-cards")
	{
		cards.GET("", r.creditCardController.List)
		cards.POST("", r.creditCardController.Create)
		cards.GET("/:id", r.creditCardController.Get)
		cards.PATCH("/:id", r.creditCardController.Update)
		cards.DELETE("/:id", r.creditCardController.Delete)

		cards.GET("/:id/bills", r.billController.List)
		cards.GET("/:id/bills/current", r.billController.Current)
		cards.GET("/:id/bills/:period", r.billController.Details)
		cards.POST("/:id/bills/:period/refresh", r.billController.Materialize)
	}

	bills := protected.Group("/bills")
	{
		bills.POST("/:id/pay", r.billController.Pay)
		bills.POST("/:id/unpay", r.billController.Unpay)
	}

	protected.GET("/billing/period", r.billController.ResolvePeriod)

	transactions := protected.Group("/transactions")
	{
		transactions.GET("", r.transactionController.List)
		transactions.POST("", r.transactionController.Create)
		transactions.POST("/suggest-category", r.transactionController.SuggestCategory)
		transactions.GET("/:id", r.transactionController.Get)
		transactions.PUT("/:id", r.transactionController.Update)
		transactions.PATCH("/:id/status", r.transactionController.SetStatus)
		transactions.DELETE("/:id", r.transactionController.Delete)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", r.categoryController.List)
		categories.POST("", r.categoryController.Create)
		categories.PATCH("/:id", r.categoryController.Update)
		categories.DELETE("/:id", r.categoryController.Delete)
	}

	goals := protected.Group("/goals")
	{
		goals.GET("", r.goalController.List)
		goals.POST("", r.goalController.Create)
		goals.GET("/:id", r.goalController.Get)
		goals.PATCH("/:id", r.goalController.Update)
		goals.DELETE("/:id", r.goalController.Delete)
		goals.POST("/:id/contribute", r.goalController.Contribute)
		goals.POST("/:id/withdraw", r.goalController.Withdraw)
	}

	protected.GET("/reports/categories", r.reportController.CategoryBreakdown)

	// EventSource cannot set headers, so the stream authenticates separately.
	v1.GET("/events", r.authMiddleware.AuthenticateStream(), r.eventController.Stream)
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
