package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"receipt-insights/internal/dto"
	"receipt-insights/internal/models"
)

type Reporter interface {
	Summary(ctx context.Context) (*models.Summary, error)
	VendorFrequency(ctx context.Context) ([]models.VendorCount, error)
	MonthlyTrend(ctx context.Context) ([]models.MonthTotal, error)
}

type AnalyticsHandler struct {
	reports Reporter
	logger  *zap.Logger
}

func NewAnalyticsHandler(reports Reporter, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		reports: reports,
		logger:  logger,
	}
}

// Summary godoc
// @Summary Amount statistics
// @Description Sum, mean, median and mode of all amounts, rounded to 2 places. Mode is "N/A" when no amount repeats.
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.SummaryResponse
// @Failure 500 {object} map[string]string
// @Router /api/v1/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.reports.Summary(c.Context())
	if err != nil {
		h.logger.Error("Failed to compute summary", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute summary",
		})
	}

	return c.JSON(dto.NewSummaryResponse(summary))
}

// Vendors godoc
// @Summary Vendor frequency
// @Description Receipt count per vendor, most frequent first
// @Tags analytics
// @Produce json
// @Success 200 {array} dto.VendorCountResponse
// @Failure 500 {object} map[string]string
// @Router /api/v1/analytics/vendors [get]
func (h *AnalyticsHandler) Vendors(c *fiber.Ctx) error {
	counts, err := h.reports.VendorFrequency(c.Context())
	if err != nil {
		h.logger.Error("Failed to compute vendor frequency", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute vendor frequency",
		})
	}

	return c.JSON(dto.NewVendorCounts(counts))
}

// Monthly godoc
// @Summary Monthly spending trend
// @Description Total amount per YYYY-MM, ascending. Receipts without a dashed date are left out.
// @Tags analytics
// @Produce json
// @Success 200 {array} dto.MonthTotalResponse
// @Failure 500 {object} map[string]string
// @Router /api/v1/analytics/monthly [get]
func (h *AnalyticsHandler) Monthly(c *fiber.Ctx) error {
	trend, err := h.reports.MonthlyTrend(c.Context())
	if err != nil {
		h.logger.Error("Failed to compute monthly trend", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute monthly trend",
		})
	}

	return c.JSON(dto.NewMonthTotals(trend))
}
