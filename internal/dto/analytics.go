package dto

import (
	"receipt-insights/internal/models"
)

// NotAvailable is reported for the mode when no amount repeats.
const NotAvailable = "N/A"

type SummaryResponse struct {
	Count  int    `json:"count"`
	Sum    string `json:"sum" example:"150.00"`
	Mean   string `json:"mean" example:"50.00"`
	Median string `json:"median" example:"45.00"`
	Mode   string `json:"mode" example:"N/A"`
}

type VendorCountResponse struct {
	Vendor string `json:"vendor"`
	Count  int    `json:"count"`
}

type MonthTotalResponse struct {
	Month string `json:"month" example:"2024-01"`
	Total string `json:"total" example:"15.00"`
}

func NewSummaryResponse(s *models.Summary) SummaryResponse {
	resp := SummaryResponse{
		Count:  s.Count,
		Sum:    s.Sum.StringFixed(2),
		Mean:   s.Mean.StringFixed(2),
		Median: s.Median.StringFixed(2),
		Mode:   NotAvailable,
	}
	if s.Mode.Valid {
		resp.Mode = s.Mode.Decimal.StringFixed(2)
	}
	return resp
}

func NewVendorCounts(counts []models.VendorCount) []VendorCountResponse {
	out := make([]VendorCountResponse, 0, len(counts))
	for _, c := range counts {
		out = append(out, VendorCountResponse{Vendor: c.Vendor, Count: c.Count})
	}
	return out
}

func NewMonthTotals(totals []models.MonthTotal) []MonthTotalResponse {
	out := make([]MonthTotalResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, MonthTotalResponse{Month: t.Month, Total: t.Total.StringFixed(2)})
	}
	return out
}
