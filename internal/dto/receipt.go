package dto

import (
	"github.com/shopspring/decimal"

	"receipt-insights/internal/models"
	"receipt-insights/internal/service"
)

type ReceiptResponse struct {
	ID       int64           `json:"id"`
	Vendor   string          `json:"vendor"`
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount" swaggertype:"string" example:"123.45"`
	Category string          `json:"category"`
}

type IngestResponse struct {
	Filename          string               `json:"filename"`
	FileURL           string               `json:"file_url"`
	Kind              string               `json:"kind"`
	ExtractionOutcome string               `json:"extraction_outcome"`
	ExtractionError   string               `json:"extraction_error,omitempty"`
	TextLength        int                  `json:"text_length"`
	Fields            *models.ParsedFields `json:"fields,omitempty"`
	ParseOutcome      string               `json:"parse_outcome,omitempty"`
	StoreOutcome      string               `json:"store_outcome,omitempty"`
	StoreError        string               `json:"store_error,omitempty"`
	Receipt           *ReceiptResponse     `json:"receipt,omitempty"`
}

func NewReceiptResponse(r *models.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ID:       r.ID,
		Vendor:   r.Vendor,
		Date:     r.Date,
		Amount:   r.Amount,
		Category: r.Category,
	}
}

func NewReceiptList(receipts []*models.Receipt) []ReceiptResponse {
	out := make([]ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		out = append(out, NewReceiptResponse(r))
	}
	return out
}

func NewIngestResponse(res *service.IngestResult, fileURL string) IngestResponse {
	resp := IngestResponse{
		Filename:          res.Filename,
		FileURL:           fileURL,
		Kind:              string(res.Kind),
		ExtractionOutcome: string(res.ExtractionOutcome),
		TextLength:        res.TextLength,
		ParseOutcome:      string(res.ParseOutcome),
		StoreOutcome:      string(res.StoreOutcome),
	}
	if res.ExtractionError != nil {
		resp.ExtractionError = res.ExtractionError.Error()
	}
	if res.ParseOutcome != "" {
		fields := res.Fields
		resp.Fields = &fields
	}
	if res.StoreError != nil {
		resp.StoreError = res.StoreError.Error()
	}
	if res.Receipt != nil {
		r := NewReceiptResponse(res.Receipt)
		resp.Receipt = &r
	}
	return resp
}
