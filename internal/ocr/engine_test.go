package ocr

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"receipt-insights/pkg/config"
)

func TestNewEngine(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"tesseract", "tesseract"},
		{"azure", "azure"},
		{"gigachat", "gigachat"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := config.OCRConfig{
				Provider:  tt.provider,
				Languages: []string{"eng"},
				Azure:     config.AzureConfig{Endpoint: "https://example.cognitiveservices.azure.com", APIKey: "k"},
				GigaChat:  config.GigaChatConfig{APIKey: "k"},
			}

			engine, err := NewEngine(cfg, zap.NewNop())
			require.NoError(t, err)
			require.Equal(t, tt.want, engine.Name())
		})
	}
}

func TestNewEngine_Unknown(t *testing.T) {
	_, err := NewEngine(config.OCRConfig{Provider: "paper"}, zap.NewNop())
	require.ErrorContains(t, err, "unknown OCR provider")
}
