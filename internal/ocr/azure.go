package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/Azure/go-autorest/autorest"
	"go.uber.org/zap"

	"receipt-insights/pkg/config"
)

// AzureEngine sends images to the Azure Computer Vision printed-text OCR endpoint.
type AzureEngine struct {
	client computervision.BaseClient
	logger *zap.Logger
}

func NewAzureEngine(cfg config.AzureConfig, logger *zap.Logger) *AzureEngine {
	client := computervision.New(cfg.Endpoint)
	client.Authorizer = autorest.NewCognitiveServicesAuthorizer(cfg.APIKey)

	return &AzureEngine{
		client: client,
		logger: logger,
	}
}

func (e *AzureEngine) Name() string { return "azure" }

func (e *AzureEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	result, err := e.client.RecognizePrintedTextInStream(
		ctx,
		true,
		io.NopCloser(bytes.NewReader(image)),
		computervision.OcrLanguages(computervision.En),
	)
	if err != nil {
		return "", fmt.Errorf("azure OCR request failed: %w", err)
	}

	text := flattenOCRResult(result)
	e.logger.Debug("Azure recognition completed", zap.Int("text_length", len(text)))

	return text, nil
}

// flattenOCRResult joins words with spaces and lines with newlines, in region order.
func flattenOCRResult(result computervision.OcrResult) string {
	if result.Regions == nil {
		return ""
	}

	var lines []string
	for _, region := range *result.Regions {
		if region.Lines == nil {
			continue
		}
		for _, line := range *region.Lines {
			if line.Words == nil {
				continue
			}
			words := make([]string, 0, len(*line.Words))
			for _, word := range *line.Words {
				if word.Text != nil {
					words = append(words, *word.Text)
				}
			}
			lines = append(lines, strings.Join(words, " "))
		}
	}

	return strings.Join(lines, "\n")
}
