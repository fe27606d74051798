package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"receipt-insights/internal/dto"
	"receipt-insights/internal/models"
	"receipt-insights/internal/repository"
)

type ReceiptLister interface {
	List(ctx context.Context) ([]*models.Receipt, error)
	Search(ctx context.Context, filter models.ReceiptFilter) ([]*models.Receipt, error)
	Sorted(ctx context.Context, field models.SortField, dir models.SortDirection) ([]*models.Receipt, error)
}

type ReceiptHandler struct {
	receipts ReceiptLister
	logger   *zap.Logger
}

func NewReceiptHandler(receipts ReceiptLister, logger *zap.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		receipts: receipts,
		logger:   logger,
	}
}

// ListReceipts godoc
// @Summary List receipts
// @Description Every stored receipt in insertion order
// @Tags receipts
// @Produce json
// @Success 200 {array} dto.ReceiptResponse
// @Failure 500 {object} map[string]string
// @Router /api/v1/receipts [get]
func (h *ReceiptHandler) ListReceipts(c *fiber.Ctx) error {
	receipts, err := h.receipts.List(c.Context())
	if err != nil {
		h.logger.Error("Failed to list receipts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list receipts",
		})
	}

	return c.JSON(dto.NewReceiptList(receipts))
}

// SearchReceipts godoc
// @Summary Search receipts
// @Description Filters are combined with AND; omitted filters are ignored
// @Tags receipts
// @Produce json
// @Param keyword query string false "Case-insensitive substring of vendor or category"
// @Param min_amount query string false "Inclusive lower amount bound"
// @Param max_amount query string false "Inclusive upper amount bound"
// @Param date query string false "Substring of the date"
// @Success 200 {array} dto.ReceiptResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/receipts/search [get]
func (h *ReceiptHandler) SearchReceipts(c *fiber.Ctx) error {
	filter := models.ReceiptFilter{
		Keyword:     strings.TrimSpace(c.Query("keyword")),
		DatePattern: strings.TrimSpace(c.Query("date")),
	}

	var err error
	if filter.MinAmount, err = queryDecimal(c, "min_amount"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "min_amount must be a number",
		})
	}
	if filter.MaxAmount, err = queryDecimal(c, "max_amount"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "max_amount must be a number",
		})
	}

	receipts, err := h.receipts.Search(c.Context(), filter)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidRange) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "min_amount must not be greater than max_amount",
			})
		}
		h.logger.Error("Failed to search receipts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search receipts",
		})
	}

	return c.JSON(dto.NewReceiptList(receipts))
}

// SortedReceipts godoc
// @Summary Sorted receipts
// @Description Every receipt ordered by one column; ties keep insertion order
// @Tags receipts
// @Produce json
// @Param field query string true "vendor, date, amount or category"
// @Param order query string false "asc or desc" default(asc)
// @Success 200 {array} dto.ReceiptResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/receipts/sorted [get]
func (h *ReceiptHandler) SortedReceipts(c *fiber.Ctx) error {
	field := models.SortField(strings.ToLower(c.Query("field")))
	dir := models.SortDirection(strings.ToLower(c.Query("order", string(models.Ascending))))

	receipts, err := h.receipts.Sorted(c.Context(), field, dir)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidSortField) || errors.Is(err, repository.ErrInvalidSortDirection) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Failed to sort receipts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to sort receipts",
		})
	}

	return c.JSON(dto.NewReceiptList(receipts))
}

func queryDecimal(c *fiber.Ctx, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
