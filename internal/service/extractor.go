package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"receipt-insights/internal/models"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrInvalidEncoding = errors.New("text file is not valid UTF-8")
)

type OCREngine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// PageRenderer rasterizes a PDF one page at a time, handing each encoded
// image to fn before the next page is rendered. Pages are numbered from 1.
type PageRenderer interface {
	RenderPages(ctx context.Context, path string, fn func(page int, image []byte) error) error
}

// Extraction is the result of turning one stored file into text.
type Extraction struct {
	Kind    models.FileKind
	Text    string
	Outcome Outcome
	Err     error
}

type TextExtractor struct {
	engine   OCREngine
	renderer PageRenderer
	sem      chan struct{}
	logger   *zap.Logger
}

func NewTextExtractor(engine OCREngine, renderer PageRenderer, maxConcurrency int, logger *zap.Logger) *TextExtractor {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	return &TextExtractor{
		engine:   engine,
		renderer: renderer,
		sem:      make(chan struct{}, maxConcurrency),
		logger:   logger,
	}
}

// Extract reads the file at path with the strategy for its kind. It never
// returns an error directly: failures are reported in the Extraction.
func (e *TextExtractor) Extract(ctx context.Context, path string) Extraction {
	kind := models.KindFromPath(path)

	var (
		text string
		err  error
	)
	switch kind {
	case models.KindPDF:
		text, err = e.extractPDF(ctx, path)
	case models.KindImage:
		text, err = e.extractImage(ctx, path)
	case models.KindPlainText:
		text, err = extractPlainText(path)
	case models.KindUnsupported:
		err = fmt.Errorf("%w: %s", ErrUnsupportedType, path)
	default:
		err = fmt.Errorf("%w: kind %q", ErrUnsupportedType, kind)
	}

	if err != nil {
		e.logger.Error("Text extraction failed",
			zap.String("file", path),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return Extraction{Kind: kind, Outcome: OutcomeFailed, Err: err}
	}

	if strings.TrimSpace(text) == "" {
		e.logger.Warn("No text extracted", zap.String("file", path), zap.String("kind", string(kind)))
		return Extraction{Kind: kind, Outcome: OutcomeEmpty}
	}

	e.logger.Info("Text extraction completed",
		zap.String("file", path),
		zap.String("kind", string(kind)),
		zap.Int("text_length", len(text)),
	)

	return Extraction{Kind: kind, Text: text, Outcome: OutcomeSuccess}
}

func (e *TextExtractor) extractPDF(ctx context.Context, path string) (string, error) {
	var texts []string
	err := e.renderer.RenderPages(ctx, path, func(page int, image []byte) error {
		text, err := e.recognize(ctx, image)
		if err != nil {
			return fmt.Errorf("page %d: %w", page, err)
		}
		texts = append(texts, text)
		return nil
	})
	if err != nil {
		return "", err
	}

	return strings.Join(texts, "\n"), nil
}

func (e *TextExtractor) extractImage(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	return e.recognize(ctx, data)
}

func extractPlainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	return string(data), nil
}

// recognize runs one OCR call under the concurrency limit. The slot belongs
// to the goroutine calling the engine, so a caller that gives up early does
// not free it while the engine is still working.
func (e *TextExtractor) recognize(ctx context.Context, image []byte) (string, error) {
	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		defer func() { <-e.sem }()
		text, err := e.engine.Recognize(ctx, image)
		done <- result{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("OCR failed: %w", res.err)
		}
		return sanitizeUTF8(res.text), nil
	}
}
