package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"brickledger/internal/config"
	"brickledger/internal/handler"
	"brickledger/internal/ledger"
	"brickledger/internal/logger"
	"brickledger/internal/port"
	"brickledger/internal/router"
	"brickledger/internal/service"
	"brickledger/internal/storage/postgres"
	s3backup "brickledger/internal/storage/s3"
	"brickledger/internal/storage/workbook"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize the register store
	var store port.RegisterStore
	healthH := handler.NewHealthHandler(nil)
	switch cfg.Store.Driver {
	case "postgres":
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		store = postgres.NewStore(db)
		healthH = handler.NewHealthHandler(db)
	default:
		store = workbook.NewStore(cfg.Store.WorkbookPath)
	}

	// Load the persisted register
	reg, err := ledger.Open(context.Background(), store)
	if err != nil {
		return fmt.Errorf("failed to load invoice register: %w", err)
	}
	log.Info().Str("driver", cfg.Store.Driver).Int("invoices", reg.Len()).Msg("register loaded")

	// Optional off-site snapshot backup
	var backup port.BackupSink
	if cfg.Backup.Enabled {
		backup, err = s3backup.NewBackupSink(&cfg.Backup)
		if err != nil {
			return fmt.Errorf("failed to initialize backup sink: %w", err)
		}
	}

	// Initialize services and handlers
	registerSvc := service.NewRegisterService(reg, store, backup, cfg.Seller)
	invoiceH := handler.NewInvoiceHandler(registerSvc)
	reportH := handler.NewReportHandler(registerSvc)

	// Setup router
	r := router.Setup(invoiceH, reportH, healthH, cfg.CORS.AllowedOrigins)

	log.Info().Str("port", cfg.Server.Port).Msg("server starting")
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
