package server

import (
	"github.com/labstack/echo/v4"

	"example.com/subtracker/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	budgetHandler *handlers.BudgetHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	scanHandler *handlers.ScanHandler,
	notificationHandler *handlers.NotificationHandler,
	adminHandler *handlers.AdminHandler,
	authMiddleware echo.MiddlewareFunc,
	adminMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
	scanRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	// Оценка без сохранения доступна анонимно.
	budget := api.Group("/budget")
	budget.GET("/currencies", budgetHandler.Currencies)
	budget.POST("/evaluate", budgetHandler.Evaluate)
	budget.GET("/profile", budgetHandler.GetProfile, authMiddleware)
	budget.PUT("/profile", budgetHandler.SaveProfile, authMiddleware)
	budget.GET("/report/export/json", budgetHandler.ExportJSON, authMiddleware)
	budget.GET("/report/export/csv", budgetHandler.ExportCSV, authMiddleware)

	subscriptions := api.Group("/subscriptions", authMiddleware)
	subscriptions.GET("", subscriptionHandler.List)
	subscriptions.POST("", subscriptionHandler.Create)
	subscriptions.GET("/summary", subscriptionHandler.Summary)
	subscriptions.POST("/scan", scanHandler.Run, scanRateLimiter)
	subscriptions.GET("/scan", scanHandler.History)
	subscriptions.GET("/:id", subscriptionHandler.Get)
	subscriptions.PUT("/:id", subscriptionHandler.Update)
	subscriptions.DELETE("/:id", subscriptionHandler.Delete)
	subscriptions.PATCH("/:id/toggle", subscriptionHandler.Toggle)

	notifications := api.Group("/notifications", authMiddleware)
	notifications.GET("/stream", notificationHandler.Stream)

	admin := api.Group("/admin", authMiddleware, adminMiddleware)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/scans", adminHandler.ListScanRuns)
	admin.GET("/usage", adminHandler.Usage)
}
