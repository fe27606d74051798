package ocr

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// PDFRenderer rasterises PDF pages with MuPDF so they can be OCR'd like images.
type PDFRenderer struct {
	dpi    float64
	logger *zap.Logger
}

func NewPDFRenderer(dpi float64, logger *zap.Logger) *PDFRenderer {
	return &PDFRenderer{
		dpi:    dpi,
		logger: logger,
	}
}

// RenderPages renders pages in order and hands each PNG to fn before the
// next one is drawn, so only one page image is alive at a time. An error from
// fn stops rendering and is returned as is.
func (r *PDFRenderer) RenderPages(ctx context.Context, path string, fn func(page int, png []byte) error) error {
	doc, err := fitz.New(path)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	total := doc.NumPage()
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		png, err := doc.ImagePNG(i, r.dpi)
		if err != nil {
			return fmt.Errorf("failed to render page %d: %w", i+1, err)
		}
		if err := fn(i+1, png); err != nil {
			return err
		}
	}

	r.logger.Debug("PDF rendered",
		zap.String("file", path),
		zap.Int("pages", total),
		zap.Float64("dpi", r.dpi),
	)

	return nil
}
