// Command import ingests every file of a directory the same way an upload
// through the API would.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"receipt-insights/internal/models"
	"receipt-insights/internal/ocr"
	"receipt-insights/internal/repository"
	"receipt-insights/internal/service"
	"receipt-insights/pkg/config"
	"receipt-insights/pkg/logger"
	"receipt-insights/pkg/postgres"
)

func main() {
	dir := flag.String("dir", "", "directory with receipt files to import")
	flag.Parse()

	if *dir == "" {
		log.Fatal("-dir is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

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
	extractor := service.NewTextExtractor(engine, ocr.NewPDFRenderer(cfg.OCR.PDFDPI, appLogger), cfg.OCR.MaxConcurrency, appLogger)

	receiptService := service.NewReceiptService(
		receiptRepo,
		fileStore,
		extractor,
		cfg.Storage.MaxUploadSize,
		cfg.OCR.Timeout,
		appLogger,
	)

	stats, err := importDir(ctx, *dir, receiptService, appLogger)
	if err != nil {
		appLogger.Fatal("Import failed", zap.Error(err))
	}

	appLogger.Info("Import completed",
		zap.Int("stored", stats.Stored),
		zap.Int("empty", stats.Empty),
		zap.Int("failed", stats.Failed),
		zap.Int("skipped", stats.Skipped),
	)
}

type ingester interface {
	Ingest(ctx context.Context, file models.UploadedFile) (*service.IngestResult, error)
}

type importStats struct {
	Stored  int
	Empty   int
	Failed  int
	Skipped int
}

// importDir ingests the regular files directly inside dir. Name collisions and
// rejected files are counted as skipped.
func importDir(ctx context.Context, dir string, svc ingester, logger *zap.Logger) (importStats, error) {
	var stats importStats

	entries, err := os.ReadDir(dir)
	if err != nil {
		return stats, err
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Failed to read file", zap.String("file", path), zap.Error(err))
			stats.Failed++
			continue
		}

		result, err := svc.Ingest(ctx, models.UploadedFile{
			Filename:    entry.Name(),
			ContentType: models.ContentTypeFromPath(entry.Name()),
			Size:        int64(len(data)),
			Data:        data,
		})

		var verr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrFileExists), errors.As(err, &verr):
			logger.Info("Skipping file", zap.String("file", path), zap.Error(err))
			stats.Skipped++
			continue
		case err != nil:
			logger.Warn("Failed to ingest file", zap.String("file", path), zap.Error(err))
			stats.Failed++
			continue
		}

		switch {
		case result.ExtractionOutcome == service.OutcomeEmpty:
			stats.Empty++
		case result.ExtractionOutcome == service.OutcomeFailed, result.StoreOutcome == service.OutcomeFailed:
			stats.Failed++
		default:
			stats.Stored++
		}
	}

	return stats, nil
}
