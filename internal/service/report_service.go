package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"receipt-insights/internal/models"
)

type ReportSource interface {
	Amounts(ctx context.Context) ([]decimal.Decimal, error)
	Vendors(ctx context.Context) ([]string, error)
	DatedAmounts(ctx context.Context) ([]models.DatedAmount, error)
}

// ReportService computes analytics from a fresh read of the table on every call.
type ReportService struct {
	source ReportSource
	logger *zap.Logger
}

func NewReportService(source ReportSource, logger *zap.Logger) *ReportService {
	return &ReportService{
		source: source,
		logger: logger,
	}
}

func (s *ReportService) Summary(ctx context.Context) (*models.Summary, error) {
	amounts, err := s.source.Amounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load amounts: %w", err)
	}
	summary := Summarize(amounts)
	return &summary, nil
}

func (s *ReportService) VendorFrequency(ctx context.Context) ([]models.VendorCount, error) {
	vendors, err := s.source.Vendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load vendors: %w", err)
	}
	return CountVendors(vendors), nil
}

func (s *ReportService) MonthlyTrend(ctx context.Context) ([]models.MonthTotal, error) {
	rows, err := s.source.DatedAmounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dated amounts: %w", err)
	}

	trend := GroupByMonth(rows)
	s.logger.Debug("Monthly trend computed",
		zap.Int("rows", len(rows)),
		zap.Int("months", len(trend)),
	)
	return trend, nil
}

// Summarize computes sum, mean, median and mode, each rounded to 2 places.
func Summarize(amounts []decimal.Decimal) models.Summary {
	if len(amounts) == 0 {
		return models.Summary{
			Sum:    decimal.Zero,
			Mean:   decimal.Zero,
			Median: decimal.Zero,
		}
	}

	sum := decimal.Sum(amounts[0], amounts[1:]...)
	mean := sum.Div(decimal.NewFromInt(int64(len(amounts))))

	summary := models.Summary{
		Count:  len(amounts),
		Sum:    sum.Round(2),
		Mean:   mean.Round(2),
		Median: median(amounts).Round(2),
	}
	if mode, ok := mode(amounts); ok {
		summary.Mode = decimal.NewNullDecimal(mode.Round(2))
	}

	return summary
}

func median(amounts []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(amounts))
	copy(sorted, amounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}

// mode returns the most frequent amount, preferring the earliest on ties.
// There is no mode when every amount is distinct.
func mode(amounts []decimal.Decimal) (decimal.Decimal, bool) {
	counts := make(map[string]int, len(amounts))
	for _, a := range amounts {
		// String drops trailing zeros, so 5 and 5.00 share a key
		counts[a.String()]++
	}

	best, bestCount := decimal.Zero, 1
	for _, a := range amounts {
		if c := counts[a.String()]; c > bestCount {
			best, bestCount = a, c
		}
	}

	return best, bestCount > 1
}

// CountVendors orders vendors by count descending, then name ascending.
func CountVendors(vendors []string) []models.VendorCount {
	counts := make(map[string]int)
	for _, v := range vendors {
		counts[v]++
	}

	result := make([]models.VendorCount, 0, len(counts))
	for v, c := range counts {
		result = append(result, models.VendorCount{Vendor: v, Count: c})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Vendor < result[j].Vendor
	})

	return result
}

// GroupByMonth totals amounts by the first two dash-separated parts of the
// date. Dates without a dash are skipped.
func GroupByMonth(rows []models.DatedAmount) []models.MonthTotal {
	totals := make(map[string]decimal.Decimal)
	for _, row := range rows {
		parts := strings.SplitN(row.Date, "-", 3)
		if len(parts) < 2 {
			continue
		}
		key := parts[0] + "-" + parts[1]
		totals[key] = totals[key].Add(row.Amount)
	}

	result := make([]models.MonthTotal, 0, len(totals))
	for month, total := range totals {
		result = append(result, models.MonthTotal{Month: month, Total: total})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })

	return result
}
