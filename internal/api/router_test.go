package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"receipt-insights/internal/api/handlers"
	"receipt-insights/internal/models"
	"receipt-insights/internal/repository"
	"receipt-insights/internal/service"
	"receipt-insights/pkg/config"
)

type fakeIngester struct {
	result *service.IngestResult
	err    error
	got    models.UploadedFile
}

func (f *fakeIngester) Ingest(ctx context.Context, file models.UploadedFile) (*service.IngestResult, error) {
	f.got = file
	return f.result, f.err
}

type fakeLister struct {
	receipts []*models.Receipt
	err      error
	filter   models.ReceiptFilter
	field    models.SortField
	dir      models.SortDirection
}

func (f *fakeLister) List(ctx context.Context) ([]*models.Receipt, error) {
	return f.receipts, f.err
}

func (f *fakeLister) Search(ctx context.Context, filter models.ReceiptFilter) ([]*models.Receipt, error) {
	f.filter = filter
	return f.receipts, f.err
}

func (f *fakeLister) Sorted(ctx context.Context, field models.SortField, dir models.SortDirection) ([]*models.Receipt, error) {
	f.field, f.dir = field, dir
	return f.receipts, f.err
}

type fakeReporter struct {
	summary *models.Summary
	vendors []models.VendorCount
	months  []models.MonthTotal
}

func (f *fakeReporter) Summary(ctx context.Context) (*models.Summary, error) {
	return f.summary, nil
}

func (f *fakeReporter) VendorFrequency(ctx context.Context) ([]models.VendorCount, error) {
	return f.vendors, nil
}

func (f *fakeReporter) MonthlyTrend(ctx context.Context) ([]models.MonthTotal, error) {
	return f.months, nil
}

type testApp struct {
	app      *fiber.App
	ingester *fakeIngester
	lister   *fakeLister
	reporter *fakeReporter
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{
		Storage: config.StorageConfig{UploadDir: t.TempDir(), MaxUploadSize: service.DefaultMaxUploadSize},
	}
	logger := zap.NewNop()

	ta := &testApp{
		ingester: &fakeIngester{},
		lister:   &fakeLister{},
		reporter: &fakeReporter{},
	}
	ta.app = SetupRouter(Handlers{
		Upload:    handlers.NewUploadHandler(ta.ingester, logger),
		Receipts:  handlers.NewReceiptHandler(ta.lister, logger),
		Analytics: handlers.NewAnalyticsHandler(ta.reporter, logger),
	}, cfg, logger)

	return ta
}

func uploadRequest(t *testing.T, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestUpload_Stored(t *testing.T) {
	ta := newTestApp(t)
	ta.ingester.result = &service.IngestResult{
		Filename:          "r 1.txt",
		Path:              "/data/uploads/r 1.txt",
		Kind:              models.KindPlainText,
		ExtractionOutcome: service.OutcomeSuccess,
		TextLength:        20,
		Fields:            models.ParsedFields{Vendor: "Acme", Date: "Unknown", Amount: "12.50", Category: "Misc"},
		ParseOutcome:      service.OutcomeSuccess,
		StoreOutcome:      service.OutcomeSuccess,
		Receipt:           &models.Receipt{ID: 7, Vendor: "Acme", Date: "Unknown", Amount: decimal.RequireFromString("12.50"), Category: "Misc"},
	}

	resp, err := ta.app.Test(uploadRequest(t, "r 1.txt", "text/plain", []byte("Vendor: Acme")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	require.Equal(t, "r 1.txt", ta.ingester.got.Filename)
	require.Equal(t, "text/plain", ta.ingester.got.ContentType)
	require.Equal(t, int64(12), ta.ingester.got.Size)
	require.Equal(t, "Vendor: Acme", string(ta.ingester.got.Data))

	var body map[string]any
	decode(t, resp, &body)
	require.Equal(t, "/uploads/r%201.txt", body["file_url"])
	require.Equal(t, "success", body["store_outcome"])
	receipt := body["receipt"].(map[string]any)
	require.EqualValues(t, 7, receipt["id"])
	require.Equal(t, "12.5", receipt["amount"])
}

func TestUpload_StatusByOutcome(t *testing.T) {
	tests := []struct {
		name   string
		result *service.IngestResult
		want   int
	}{
		{
			name:   "nothing extracted",
			result: &service.IngestResult{Path: "x.png", ExtractionOutcome: service.OutcomeEmpty},
			want:   fiber.StatusOK,
		},
		{
			name:   "extraction failed",
			result: &service.IngestResult{Path: "x.png", ExtractionOutcome: service.OutcomeFailed, ExtractionError: errors.New("ocr down")},
			want:   fiber.StatusUnprocessableEntity,
		},
		{
			name: "store failed",
			result: &service.IngestResult{
				Path:              "x.png",
				ExtractionOutcome: service.OutcomeSuccess,
				ParseOutcome:      service.OutcomeSuccess,
				StoreOutcome:      service.OutcomeFailed,
				StoreError:        repository.ErrInvalidAmount,
			},
			want: fiber.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t)
			ta.ingester.result = tt.result

			resp, err := ta.app.Test(uploadRequest(t, "x.png", "image/png", []byte("png")))
			require.NoError(t, err)
			require.Equal(t, tt.want, resp.StatusCode)

			var body map[string]any
			decode(t, resp, &body)
			require.Equal(t, string(tt.result.ExtractionOutcome), body["extraction_outcome"])
		})
	}
}

func TestUpload_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &service.ValidationError{Field: "content_type", Constraint: "not allowed"}, fiber.StatusBadRequest},
		{"collision", fmt.Errorf("%w: x.png", service.ErrFileExists), fiber.StatusConflict},
		{"unexpected", errors.New("disk full"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t)
			ta.ingester.err = tt.err

			resp, err := ta.app.Test(uploadRequest(t, "x.png", "image/png", []byte("png")))
			require.NoError(t, err)
			require.Equal(t, tt.want, resp.StatusCode)

			var body map[string]any
			decode(t, resp, &body)
			require.NotEmpty(t, body["error"])
		})
	}
}

func TestUpload_MissingFile(t *testing.T) {
	ta := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/upload", nil)
	resp, err := ta.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSearch_ParsesFilter(t *testing.T) {
	ta := newTestApp(t)
	ta.lister.receipts = []*models.Receipt{{ID: 1, Vendor: "Acme", Amount: decimal.NewFromInt(20), Category: "Misc"}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/receipts/search?keyword=acme&min_amount=10&max_amount=30.5&date=2024", nil)
	resp, err := ta.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Equal(t, "acme", ta.lister.filter.Keyword)
	require.Equal(t, "2024", ta.lister.filter.DatePattern)
	require.True(t, ta.lister.filter.MinAmount.Equal(decimal.NewFromInt(10)))
	require.True(t, ta.lister.filter.MaxAmount.Equal(decimal.RequireFromString("30.5")))

	var body []map[string]any
	decode(t, resp, &body)
	require.Len(t, body, 1)
	require.Equal(t, "Acme", body[0]["vendor"])
}

func TestSearch_BadInput(t *testing.T) {
	ta := newTestApp(t)

	resp, err := ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/receipts/search?min_amount=ten", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	ta.lister.err = fmt.Errorf("%w: min 5 is greater than max 1", repository.ErrInvalidRange)
	resp, err = ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/receipts/search?min_amount=5&max_amount=1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSorted(t *testing.T) {
	ta := newTestApp(t)

	resp, err := ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/receipts/sorted?field=Amount&order=DESC", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, models.SortByAmount, ta.lister.field)
	require.Equal(t, models.Descending, ta.lister.dir)

	resp, err = ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/receipts/sorted?field=vendor", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, models.Ascending, ta.lister.dir)

	ta.lister.err = fmt.Errorf("%w: %q", repository.ErrInvalidSortField, "id")
	resp, err = ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/receipts/sorted?field=id", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListReceipts_StoreError(t *testing.T) {
	ta := newTestApp(t)
	ta.lister.err = errors.New("connection reset")

	resp, err := ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/receipts", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestAnalytics(t *testing.T) {
	ta := newTestApp(t)
	ta.reporter.summary = &models.Summary{
		Count:  3,
		Sum:    decimal.RequireFromString("6"),
		Mean:   decimal.RequireFromString("2"),
		Median: decimal.RequireFromString("2"),
	}
	ta.reporter.vendors = []models.VendorCount{{Vendor: "Acme", Count: 2}}
	ta.reporter.months = []models.MonthTotal{{Month: "2024-01", Total: decimal.RequireFromString("15")}}

	resp, err := ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/analytics/summary", nil))
	require.NoError(t, err)
	var summary map[string]any
	decode(t, resp, &summary)
	require.Equal(t, "6.00", summary["sum"])
	require.Equal(t, "N/A", summary["mode"])

	resp, err = ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/analytics/vendors", nil))
	require.NoError(t, err)
	var vendors []map[string]any
	decode(t, resp, &vendors)
	require.Equal(t, "Acme", vendors[0]["vendor"])

	resp, err = ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/analytics/monthly", nil))
	require.NoError(t, err)
	var months []map[string]any
	decode(t, resp, &months)
	require.Equal(t, "2024-01", months[0]["month"])
	require.Equal(t, "15.00", months[0]["total"])
}

func TestDashboardAndHealth(t *testing.T) {
	ta := newTestApp(t)

	resp, err := ta.app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(page), "Receipt Insights")

	resp, err = ta.app.Test(httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = ta.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}
