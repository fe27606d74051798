package handlers

import (
	"context"
	"errors"
	"io"
	"net/url"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"receipt-insights/internal/dto"
	"receipt-insights/internal/models"
	"receipt-insights/internal/service"
)

type Ingester interface {
	Ingest(ctx context.Context, file models.UploadedFile) (*service.IngestResult, error)
}

type UploadHandler struct {
	ingester Ingester
	logger   *zap.Logger
}

func NewUploadHandler(ingester Ingester, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		ingester: ingester,
		logger:   logger,
	}
}

// UploadReceipt godoc
// @Summary Upload a receipt
// @Description Store a receipt file, extract its text, parse vendor/date/amount and save the record.
// @Description 201 when stored, 200 when no text was found, 422 when extraction failed, 500 when the record could not be saved.
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Receipt file (jpg, png, pdf or txt, up to 5 MiB)"
// @Success 201 {object} dto.IngestResponse
// @Success 200 {object} dto.IngestResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} dto.IngestResponse
// @Failure 500 {object} dto.IngestResponse
// @Router /api/v1/receipts/upload [post]
func (h *UploadHandler) UploadReceipt(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		h.logger.Error("Failed to read upload", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read file",
		})
	}

	upload := models.UploadedFile{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Data:        data,
	}

	result, err := h.ingester.Ingest(c.Context(), upload)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": verr.Error(),
				"field": verr.Field,
			})
		case errors.Is(err, service.ErrInvalidFilename):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrFileExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A file with this name already exists",
			})
		default:
			h.logger.Error("Failed to ingest upload", zap.String("filename", upload.Filename), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to process upload",
			})
		}
	}

	fileURL := "/uploads/" + url.PathEscape(filepath.Base(result.Path))
	resp := dto.NewIngestResponse(result, fileURL)

	return c.Status(ingestStatus(result)).JSON(resp)
}

func ingestStatus(res *service.IngestResult) int {
	switch {
	case res.ExtractionOutcome == service.OutcomeFailed:
		return fiber.StatusUnprocessableEntity
	case res.ExtractionOutcome == service.OutcomeEmpty:
		return fiber.StatusOK
	case res.StoreOutcome == service.OutcomeFailed:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusCreated
	}
}
