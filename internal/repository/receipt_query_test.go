package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"receipt-insights/internal/models"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "123.45", want: "123.45"},
		{raw: "1,234.50", want: "1234.5"},
		{raw: " 0.00 ", want: "0"},
		{raw: "1,2,3", want: "123"},
		{raw: ".", wantErr: true},
		{raw: "1.2.3", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got.String())
		})
	}
}

func TestSearchQuery(t *testing.T) {
	lo := decimal.NewFromInt(10)
	hi := decimal.NewFromInt(50)

	query, err := searchQuery(models.ReceiptFilter{
		Keyword:     "50%_off",
		MinAmount:   &lo,
		MaxAmount:   &hi,
		DatePattern: "2024-01",
	})
	require.NoError(t, err)

	sql, args, err := query.ToSql()
	require.NoError(t, err)
	require.Contains(t, sql, "(vendor ILIKE $1 OR category ILIKE $2)")
	require.Contains(t, sql, "amount >= $3")
	require.Contains(t, sql, "amount <= $4")
	require.Contains(t, sql, "date ILIKE $5")
	require.Contains(t, sql, "ORDER BY id ASC")
	require.Equal(t, `%50\%\_off%`, args[0])
	require.Equal(t, "%2024-01%", args[4])
}

func TestSearchQuery_InvalidRange(t *testing.T) {
	lo := decimal.NewFromInt(50)
	hi := decimal.NewFromInt(10)

	_, err := searchQuery(models.ReceiptFilter{MinAmount: &lo, MaxAmount: &hi})
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestSortedQuery(t *testing.T) {
	query, err := sortedQuery(models.SortByVendor, models.Descending)
	require.NoError(t, err)
	sql, _, err := query.ToSql()
	require.NoError(t, err)
	require.Contains(t, sql, `ORDER BY vendor COLLATE "C" DESC, id ASC`)

	query, err = sortedQuery(models.SortByAmount, models.Ascending)
	require.NoError(t, err)
	sql, _, err = query.ToSql()
	require.NoError(t, err)
	require.Contains(t, sql, "ORDER BY amount ASC, id ASC")
}

func TestSortedQuery_RejectsUnknownInput(t *testing.T) {
	_, err := sortedQuery("id; DROP TABLE receipts", models.Ascending)
	require.ErrorIs(t, err, ErrInvalidSortField)

	_, err = sortedQuery(models.SortByDate, "sideways")
	require.ErrorIs(t, err, ErrInvalidSortDirection)
}
