package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/kontorhq/kontor-api/internal/application/service"
	"github.com/kontorhq/kontor-api/internal/config"
	"github.com/kontorhq/kontor-api/internal/infrastructure/database"
	"github.com/kontorhq/kontor-api/internal/infrastructure/repository"
	"github.com/kontorhq/kontor-api/internal/logger"
	"github.com/kontorhq/kontor-api/internal/presentation/http/handler"
	"github.com/kontorhq/kontor-api/internal/presentation/http/routes"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewSQLiteDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Initialize repositories
	incomeRepo := repository.NewIncomeRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	clientRepo := repository.NewClientRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	ledgerService := service.NewLedgerService(incomeRepo, expenseRepo, clientRepo)
	bwaService := service.NewBwaService(incomeRepo, expenseRepo)
	ustVaService := service.NewUstVaService(incomeRepo, expenseRepo, settingsRepo)
	zmService := service.NewZmService(incomeRepo, clientRepo, settingsRepo)
	datevService := service.NewDatevService(incomeRepo, expenseRepo, assetRepo, settingsRepo)
	assetService := service.NewAssetService(assetRepo)
	duplicateService := service.NewDuplicateService(incomeRepo, expenseRepo, service.DefaultScoringPolicy())
	submissionService := service.NewSubmissionService(submissionRepo)
	clientService := service.NewClientService(clientRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Report:   handler.NewReportHandler(bwaService),
		Elster:   handler.NewElsterHandler(ustVaService, zmService, submissionService),
		Export:   handler.NewExportHandler(datevService),
		Asset:    handler.NewAssetHandler(assetService),
		Entry:    handler.NewEntryHandler(ledgerService, duplicateService),
		Client:   handler.NewClientHandler(clientService),
		Settings: handler.NewSettingsHandler(settingsService),
	}

	// Setup routes
	router := routes.Setup(handlers, cfg)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Info().
		Str("service", cfg.App.Name).
		Str("env", cfg.App.Env).
		Str("port", port).
		Msg("starting server")

	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
