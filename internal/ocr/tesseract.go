package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"
)

// TesseractEngine runs OCR locally through libtesseract.
type TesseractEngine struct {
	languages []string
	logger    *zap.Logger
}

func NewTesseractEngine(languages []string, logger *zap.Logger) *TesseractEngine {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &TesseractEngine{
		languages: languages,
		logger:    logger,
	}
}

func (e *TesseractEngine) Name() string { return "tesseract" }

// Recognize returns the text tesseract finds in an encoded image.
// A gosseract client is not safe for concurrent use, so each call gets its own.
// Tesseract cannot be interrupted, so the call blocks until recognition ends
// and the context is only checked before it starts.
func (e *TesseractEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := e.recognize(image)
	if err != nil {
		return "", err
	}

	e.logger.Debug("Tesseract recognition completed", zap.Int("text_length", len(text)))
	return text, nil
}

func (e *TesseractEngine) recognize(image []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.languages...); err != nil {
		return "", fmt.Errorf("failed to set tesseract languages: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract recognition failed: %w", err)
	}
	return text, nil
}
