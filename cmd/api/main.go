package main

import (
	"fmt"
	"os"

	"campfire/internal/config"
	"campfire/internal/database"
	"campfire/internal/logger"
	"campfire/internal/server"
	"campfire/internal/validator"
)

// @title           Campfire Marketplace API
// @version         1.0
// @description     Resale marketplace for community badge holdings.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey WalletAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the wallet token.

// @securityDefinitions.apikey PipelineKey
// @in header
// @name X-API-Key
// @description Shared key of the award issuance pipeline.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if cerr := dbManager.Close(); cerr != nil {
			log.Warnf("failed to close database: %v", cerr)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	if appConfig.RequireWalletAuth && appConfig.WalletJWTSecret == "" {
		return fmt.Errorf("REQUIRE_WALLET_AUTH is set but WALLET_JWT_SECRET is empty")
	}
	if appConfig.PipelineAPIKey == "" {
		log.Warn("PIPELINE_API_KEY is not set; award issuance endpoint is disabled")
	}

	validator.Register()
	router := server.NewRouter(appConfig, dbManager.DB())

	log.Infof("Starting Campfire marketplace on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
