package server

import (
	"github.com/labstack/echo/v4"

	"example.com/mood-insight-engine/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	healthHandler *handlers.HealthHandler,
	moodHandler *handlers.MoodHandler,
	trendHandler *handlers.TrendHandler,
	insightHandler *handlers.InsightHandler,
	authMiddleware echo.MiddlewareFunc,
	ingestRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", healthHandler.Check)

	api := e.Group("/api/v1")

	moods := api.Group("/moods", authMiddleware)
	moods.POST("", moodHandler.Create, ingestRateLimiter)
	moods.GET("", moodHandler.List)
	moods.PUT("/:id", moodHandler.Update)
	moods.DELETE("/:id", moodHandler.Delete)

	trends := api.Group("/trends", authMiddleware)
	trends.GET("/daily", trendHandler.Daily)
	trends.GET("/patterns", trendHandler.Patterns)
	trends.GET("/weekly", trendHandler.Weekly)
	trends.GET("/summary", trendHandler.Summary)

	insights := api.Group("/insights", authMiddleware)
	insights.POST("", insightHandler.Ingest, ingestRateLimiter)
	insights.GET("", insightHandler.List)
	insights.GET("/actionable", insightHandler.Actionable)
	insights.GET("/summary", insightHandler.Summary)
	insights.GET("/:id", insightHandler.Get)
	insights.PATCH("/:id/read", insightHandler.MarkRead)
	insights.PATCH("/:id/action", insightHandler.MarkActionTaken)
	insights.DELETE("/:id", insightHandler.Delete)
}
