package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/sewasew/census-backend/internal/handlers"
)

type RouterConfig struct {
	ServiceName       string
	AllowOrigins      []string
	SubmissionHandler *handlers.SubmissionHandler
	AnalyticsHandler  *handlers.AnalyticsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware(cfg.ServiceName))

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Write side
		api.POST("/household", cfg.SubmissionHandler.Create)
		// Read side
		api.GET("/households", cfg.AnalyticsHandler.ListHouseholds)
		api.GET("/members", cfg.AnalyticsHandler.ListMembers)
		api.GET("/kpis", cfg.AnalyticsHandler.GetKPIs)
		api.GET("/tithe-status", cfg.AnalyticsHandler.TitheBreakdown)
		api.GET("/dashboard", cfg.AnalyticsHandler.Dashboard)
	}

	return router
}
