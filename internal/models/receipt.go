package models

import (
	"github.com/shopspring/decimal"
)

// Sentinel values for fields the parser could not find.
const (
	DefaultVendor   = "Unknown"
	DefaultDate     = "Unknown"
	DefaultAmount   = "0.00"
	DefaultCategory = "Misc"
)

type Receipt struct {
	ID       int64           `db:"id"`
	Vendor   string          `db:"vendor"`
	Date     string          `db:"date"`
	Amount   decimal.Decimal `db:"amount"`
	Category string          `db:"category"`
}

// ParsedFields is what the field parser pulls out of OCR text. Amount is
// kept as the raw matched token; it becomes a decimal on insert.
type ParsedFields struct {
	Vendor   string `json:"vendor"`
	Date     string `json:"date"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
}

func DefaultFields() ParsedFields {
	return ParsedFields{
		Vendor:   DefaultVendor,
		Date:     DefaultDate,
		Amount:   DefaultAmount,
		Category: DefaultCategory,
	}
}

type SortField string

const (
	SortByVendor   SortField = "vendor"
	SortByDate     SortField = "date"
	SortByAmount   SortField = "amount"
	SortByCategory SortField = "category"
)

func (f SortField) Valid() bool {
	switch f {
	case SortByVendor, SortByDate, SortByAmount, SortByCategory:
		return true
	}
	return false
}

// IsText reports whether the column holds text (as opposed to a number).
func (f SortField) IsText() bool {
	return f != SortByAmount
}

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

func (d SortDirection) Valid() bool {
	return d == Ascending || d == Descending
}

// ReceiptFilter selects receipts. Zero-valued parts are ignored; the rest are
// combined with AND.
type ReceiptFilter struct {
	Keyword     string
	MinAmount   *decimal.Decimal
	MaxAmount   *decimal.Decimal
	DatePattern string
}

func (f ReceiptFilter) IsEmpty() bool {
	return f.Keyword == "" && f.MinAmount == nil && f.MaxAmount == nil && f.DatePattern == ""
}
