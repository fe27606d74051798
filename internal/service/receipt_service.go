package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"receipt-insights/internal/models"
)

type ReceiptStore interface {
	Insert(ctx context.Context, fields models.ParsedFields) (*models.Receipt, error)
	ListAll(ctx context.Context) ([]*models.Receipt, error)
	Search(ctx context.Context, filter models.ReceiptFilter) ([]*models.Receipt, error)
	ListSorted(ctx context.Context, field models.SortField, dir models.SortDirection) ([]*models.Receipt, error)
}

type Extractor interface {
	Extract(ctx context.Context, path string) Extraction
}

type FileSaver interface {
	Save(filename string, data []byte) (string, error)
}

// IngestResult reports how far an upload got. Stages after the file was saved
// report through outcomes rather than errors.
type IngestResult struct {
	Filename          string
	Path              string
	Kind              models.FileKind
	ExtractionOutcome Outcome
	ExtractionError   error
	TextLength        int
	Fields            models.ParsedFields
	ParseOutcome      Outcome
	StoreOutcome      Outcome
	StoreError        error
	Receipt           *models.Receipt
}

type ReceiptService struct {
	store         ReceiptStore
	files         FileSaver
	extractor     Extractor
	maxUploadSize int64
	ocrTimeout    time.Duration
	logger        *zap.Logger
}

func NewReceiptService(
	store ReceiptStore,
	files FileSaver,
	extractor Extractor,
	maxUploadSize int64,
	ocrTimeout time.Duration,
	logger *zap.Logger,
) *ReceiptService {
	if maxUploadSize <= 0 || maxUploadSize > DefaultMaxUploadSize {
		maxUploadSize = DefaultMaxUploadSize
	}
	return &ReceiptService{
		store:         store,
		files:         files,
		extractor:     extractor,
		maxUploadSize: maxUploadSize,
		ocrTimeout:    ocrTimeout,
		logger:        logger,
	}
}

// Ingest validates, saves, extracts, parses and stores one uploaded file.
// Only a ValidationError or ErrFileExists is returned as an error; both leave
// no state behind.
func (s *ReceiptService) Ingest(ctx context.Context, file models.UploadedFile) (*IngestResult, error) {
	if err := ValidateUpload(file, s.maxUploadSize); err != nil {
		s.logger.Info("Upload rejected", zap.String("filename", file.Filename), zap.Error(err))
		return nil, err
	}

	path, err := s.files.Save(file.Filename, file.Data)
	if err != nil {
		s.logger.Warn("Failed to save upload", zap.String("filename", file.Filename), zap.Error(err))
		return nil, err
	}

	result := &IngestResult{
		Filename: file.Filename,
		Path:     path,
	}

	extractCtx := ctx
	if s.ocrTimeout > 0 {
		var cancel context.CancelFunc
		extractCtx, cancel = context.WithTimeout(ctx, s.ocrTimeout)
		defer cancel()
	}

	extraction := s.extractor.Extract(extractCtx, path)
	result.Kind = extraction.Kind
	result.ExtractionOutcome = extraction.Outcome
	result.ExtractionError = extraction.Err
	result.TextLength = len(extraction.Text)
	if extraction.Outcome != OutcomeSuccess {
		return result, nil
	}

	result.Fields, result.ParseOutcome = ParseFields(extraction.Text)

	receipt, err := s.store.Insert(ctx, result.Fields)
	if err != nil {
		s.logger.Error("Failed to store receipt",
			zap.String("filename", file.Filename),
			zap.String("amount", result.Fields.Amount),
			zap.Error(err),
		)
		result.StoreOutcome = OutcomeFailed
		result.StoreError = err
		return result, nil
	}

	result.StoreOutcome = OutcomeSuccess
	result.Receipt = receipt

	s.logger.Info("Receipt ingested",
		zap.String("filename", file.Filename),
		zap.Int64("receipt_id", receipt.ID),
		zap.String("parse_outcome", string(result.ParseOutcome)),
	)

	return result, nil
}

func (s *ReceiptService) List(ctx context.Context) ([]*models.Receipt, error) {
	return s.store.ListAll(ctx)
}

func (s *ReceiptService) Search(ctx context.Context, filter models.ReceiptFilter) ([]*models.Receipt, error) {
	if filter.IsEmpty() {
		return s.store.ListAll(ctx)
	}
	return s.store.Search(ctx, filter)
}

func (s *ReceiptService) Sorted(ctx context.Context, field models.SortField, dir models.SortDirection) ([]*models.Receipt, error) {
	return s.store.ListSorted(ctx, field, dir)
}
