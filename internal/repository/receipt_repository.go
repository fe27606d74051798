package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"receipt-insights/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidRange         = errors.New("invalid amount range")
	ErrInvalidSortField     = errors.New("invalid sort field")
	ErrInvalidSortDirection = errors.New("invalid sort direction")
)

const receiptsTable = "receipts"

const createReceiptsTable = `
CREATE TABLE IF NOT EXISTS receipts (
    id       BIGSERIAL PRIMARY KEY,
    vendor   TEXT NOT NULL,
    date     TEXT,
    amount   NUMERIC,
    category TEXT NOT NULL DEFAULT 'Misc'
)`

type ReceiptRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewReceiptRepository(db *pgxpool.Pool, logger *zap.Logger) *ReceiptRepository {
	return &ReceiptRepository{
		db:     db,
		logger: logger,
	}
}

// Initialize creates the receipts table if it is missing. Safe to call on
// every start.
func (r *ReceiptRepository) Initialize(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createReceiptsTable); err != nil {
		return fmt.Errorf("failed to create receipts table: %w", err)
	}
	r.logger.Info("Receipts table ready")
	return nil
}

// Insert stores one parsed receipt. The amount has its thousands separators
// stripped and must then be a plain decimal number.
func (r *ReceiptRepository) Insert(ctx context.Context, fields models.ParsedFields) (*models.Receipt, error) {
	amount, err := ParseAmount(fields.Amount)
	if err != nil {
		return nil, err
	}

	rec := &models.Receipt{
		Vendor:   fields.Vendor,
		Date:     fields.Date,
		Amount:   amount,
		Category: fields.Category,
	}

	sql, args, err := insertQuery(rec).ToSql()
	if err != nil {
		return nil, err
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&rec.ID); err != nil {
		return nil, fmt.Errorf("failed to insert receipt: %w", err)
	}

	r.logger.Info("Inserted receipt",
		zap.Int64("receipt_id", rec.ID),
		zap.String("vendor", rec.Vendor),
	)

	return rec, nil
}

func (r *ReceiptRepository) ListAll(ctx context.Context) ([]*models.Receipt, error) {
	query := selectReceipts().OrderBy("id ASC")
	return r.queryReceipts(ctx, query)
}

func (r *ReceiptRepository) Search(ctx context.Context, filter models.ReceiptFilter) ([]*models.Receipt, error) {
	query, err := searchQuery(filter)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Searching receipts",
		zap.String("keyword", filter.Keyword),
		zap.String("date_pattern", filter.DatePattern),
	)

	return r.queryReceipts(ctx, query)
}

func (r *ReceiptRepository) ListSorted(ctx context.Context, field models.SortField, dir models.SortDirection) ([]*models.Receipt, error) {
	query, err := sortedQuery(field, dir)
	if err != nil {
		return nil, err
	}
	return r.queryReceipts(ctx, query)
}

// Amounts returns every amount in table order.
func (r *ReceiptRepository) Amounts(ctx context.Context) ([]decimal.Decimal, error) {
	sql, args, err := squirrel.Select("amount").
		From(receiptsTable).
		Where(squirrel.NotEq{"amount": nil}).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query amounts: %w", err)
	}

	amounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (decimal.Decimal, error) {
		var amount decimal.Decimal
		err := row.Scan(&amount)
		return amount, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan amounts: %w", err)
	}

	return amounts, nil
}

// Vendors returns the vendor of every receipt in table order.
func (r *ReceiptRepository) Vendors(ctx context.Context) ([]string, error) {
	sql, args, err := squirrel.Select("vendor").
		From(receiptsTable).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendors: %w", err)
	}

	vendors, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan vendors: %w", err)
	}

	return vendors, nil
}

func (r *ReceiptRepository) DatedAmounts(ctx context.Context) ([]models.DatedAmount, error) {
	sql, args, err := squirrel.Select("COALESCE(date, '')", "amount").
		From(receiptsTable).
		Where(squirrel.NotEq{"amount": nil}).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dated amounts: %w", err)
	}

	dated, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.DatedAmount, error) {
		var d models.DatedAmount
		err := row.Scan(&d.Date, &d.Amount)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan dated amounts: %w", err)
	}

	return dated, nil
}

func (r *ReceiptRepository) queryReceipts(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Receipt, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts: %w", err)
	}
	defer rows.Close()

	receipts := make([]*models.Receipt, 0)
	for rows.Next() {
		var rec models.Receipt
		if err := rows.Scan(&rec.ID, &rec.Vendor, &rec.Date, &rec.Amount, &rec.Category); err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		receipts = append(receipts, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read receipts: %w", err)
	}

	return receipts, nil
}

// ParseAmount strips thousands separators and parses the rest as a decimal.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return amount, nil
}

func insertQuery(rec *models.Receipt) squirrel.InsertBuilder {
	return squirrel.Insert(receiptsTable).
		Columns("vendor", "date", "amount", "category").
		Values(rec.Vendor, rec.Date, rec.Amount, rec.Category).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)
}

func selectReceipts() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "vendor", "COALESCE(date, '')", "COALESCE(amount, 0)", "category",
	).
		From(receiptsTable).
		PlaceholderFormat(squirrel.Dollar)
}

func searchQuery(filter models.ReceiptFilter) (squirrel.SelectBuilder, error) {
	query := selectReceipts()

	if filter.Keyword != "" {
		pattern := "%" + escapeLike(filter.Keyword) + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"vendor": pattern},
			squirrel.ILike{"category": pattern},
		})
	}

	if filter.MinAmount != nil && filter.MaxAmount != nil && filter.MinAmount.GreaterThan(*filter.MaxAmount) {
		return query, fmt.Errorf("%w: min %s is greater than max %s", ErrInvalidRange, filter.MinAmount, filter.MaxAmount)
	}
	if filter.MinAmount != nil {
		query = query.Where(squirrel.GtOrEq{"amount": *filter.MinAmount})
	}
	if filter.MaxAmount != nil {
		query = query.Where(squirrel.LtOrEq{"amount": *filter.MaxAmount})
	}

	if filter.DatePattern != "" {
		query = query.Where(squirrel.ILike{"date": "%" + escapeLike(filter.DatePattern) + "%"})
	}

	return query.OrderBy("id ASC"), nil
}

func sortedQuery(field models.SortField, dir models.SortDirection) (squirrel.SelectBuilder, error) {
	if !field.Valid() {
		return squirrel.SelectBuilder{}, fmt.Errorf("%w: %q", ErrInvalidSortField, field)
	}
	if !dir.Valid() {
		return squirrel.SelectBuilder{}, fmt.Errorf("%w: %q", ErrInvalidSortDirection, dir)
	}

	// field and dir come from closed sets, so building the clause is safe
	column := string(field)
	if field.IsText() {
		column += ` COLLATE "C"`
	}
	order := column + " " + strings.ToUpper(string(dir))

	return selectReceipts().OrderBy(order, "id ASC"), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
