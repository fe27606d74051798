package models

import (
	"github.com/shopspring/decimal"
)

type Summary struct {
	Count  int
	Sum    decimal.Decimal
	Mean   decimal.Decimal
	Median decimal.Decimal
	// Mode is invalid when every amount is distinct (or there are none).
	Mode decimal.NullDecimal
}

type VendorCount struct {
	Vendor string
	Count  int
}

type MonthTotal struct {
	Month string
	Total decimal.Decimal
}

type DatedAmount struct {
	Date   string
	Amount decimal.Decimal
}
