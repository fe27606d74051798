package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"receipt-insights/internal/api"
	"receipt-insights/internal/api/handlers"
	"receipt-insights/internal/ocr"
	"receipt-insights/internal/repository"
	"receipt-insights/internal/service"
	"receipt-insights/pkg/config"
	"receipt-insights/pkg/logger"
	"receipt-insights/pkg/postgres"
)

// @title Receipt Insights API
// @version 1.0
// @description Upload receipts, extract and parse their text, then search and analyse the stored records.

// @host localhost:8080
// @BasePath /

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting receipt-insights", zap.String("ocr_provider", cfg.OCR.Provider))

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	receiptRepo := repository.NewReceiptRepository(db, appLogger)
	if err := receiptRepo.Initialize(ctx); err != nil {
		appLogger.Fatal("Failed to initialize receipt store", zap.Error(err))
	}

	fileStore, err := service.NewFileStore(cfg.Storage.UploadDir, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to prepare upload directory", zap.Error(err))
	}

	engine, err := ocr.NewEngine(cfg.OCR, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize OCR engine", zap.Error(err))
	}
	renderer := ocr.NewPDFRenderer(cfg.OCR.PDFDPI, appLogger)
	extractor := service.NewTextExtractor(engine, renderer, cfg.OCR.MaxConcurrency, appLogger)

	receiptService := service.NewReceiptService(
		receiptRepo,
		fileStore,
		extractor,
		cfg.Storage.MaxUploadSize,
		cfg.OCR.Timeout,
		appLogger,
	)
	reportService := service.NewReportService(receiptRepo, appLogger)

	app := api.SetupRouter(api.Handlers{
		Upload:    handlers.NewUploadHandler(receiptService, appLogger),
		Receipts:  handlers.NewReceiptHandler(receiptService, appLogger),
		Analytics: handlers.NewAnalyticsHandler(reportService, appLogger),
	}, cfg, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
