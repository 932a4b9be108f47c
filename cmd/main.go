package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	redisclient "github.com/sewasew/census-backend/internal/clients/redis"
	"github.com/sewasew/census-backend/internal/clients/twilio"
	"github.com/sewasew/census-backend/internal/db"
	"github.com/sewasew/census-backend/internal/handlers"
	"github.com/sewasew/census-backend/internal/logger"
	"github.com/sewasew/census-backend/internal/observability"
	"github.com/sewasew/census-backend/internal/repos"
	"github.com/sewasew/census-backend/internal/server"
	"github.com/sewasew/census-backend/internal/services"
	"github.com/sewasew/census-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "census-backend",
		Environment: utils.GetEnv("DEPLOY_ENV", "development", log),
	})
	if shutdownOTel != nil {
		defer func() {
			_ = shutdownOTel(context.Background())
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	defer postgresService.Close()
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	householdRepo := repos.NewHouseholdRepo(thePG, log)
	familyMemberRepo := repos.NewFamilyMemberRepo(thePG, log)
	submissionLogRepo := repos.NewSubmissionLogRepo(thePG, log)

	// Clients (both optional at runtime)
	smsClient, err := twilio.NewFromEnv(log)
	if err != nil {
		log.Warn("SMS client not configured, confirmations disabled", "error", err)
		smsClient = nil
	}
	analyticsCache, err := redisclient.NewAnalyticsCache(log)
	if err != nil {
		log.Warn("Redis cache not configured, analytics reads go straight to Postgres", "error", err)
		analyticsCache = nil
	}
	if analyticsCache != nil {
		defer analyticsCache.Close()
	}

	// Services
	log.Info("Setting up services...")
	submissionService := services.NewSubmissionService(thePG, log, householdRepo, familyMemberRepo, submissionLogRepo, smsClient, analyticsCache)
	analyticsService := services.NewAnalyticsService(thePG, log, householdRepo, familyMemberRepo, analyticsCache)

	// Handlers
	log.Info("Setting up handlers...")
	submissionHandler := handlers.NewSubmissionHandler(log, submissionService)
	analyticsHandler := handlers.NewAnalyticsHandler(log, analyticsService)

	// Router
	log.Info("Setting up router...")
	var allowOrigins []string
	if raw := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowOrigins = append(allowOrigins, origin)
			}
		}
	}
	router := server.NewRouter(server.RouterConfig{
		ServiceName:       "census-backend",
		AllowOrigins:      allowOrigins,
		SubmissionHandler: submissionHandler,
		AnalyticsHandler:  analyticsHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
