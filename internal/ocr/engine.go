// Package ocr holds the OCR engines and the PDF page renderer used by the
// text extractor.
package ocr

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"receipt-insights/pkg/config"
)

type Engine interface {
	Name() string
	Recognize(ctx context.Context, image []byte) (string, error)
}

// NewEngine builds the engine selected by OCR_PROVIDER.
func NewEngine(cfg config.OCRConfig, logger *zap.Logger) (Engine, error) {
	logger = logger.With(zap.String("ocr_provider", cfg.Provider))

	switch cfg.Provider {
	case "tesseract", "":
		return NewTesseractEngine(cfg.Languages, logger), nil
	case "azure":
		return NewAzureEngine(cfg.Azure, logger), nil
	case "gigachat":
		return NewGigaChatEngine(cfg.GigaChat, logger), nil
	default:
		return nil, fmt.Errorf("unknown OCR provider %q", cfg.Provider)
	}
}
