package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, "data/uploads", cfg.Storage.UploadDir)
	require.Equal(t, int64(5*1024*1024), cfg.Storage.MaxUploadSize)
	require.Equal(t, "tesseract", cfg.OCR.Provider)
	require.Equal(t, []string{"eng"}, cfg.OCR.Languages)
	require.Equal(t, 2*time.Minute, cfg.OCR.Timeout)
	require.Equal(t, "info", cfg.Logger.Level)
}

func TestParse_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("OCR_LANGUAGES", "eng,rus")
	t.Setenv("OCR_TIMEOUT", "45s")
	t.Setenv("DB_MAX_CONNS", "8")

	cfg, err := Parse()
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, []string{"eng", "rus"}, cfg.OCR.Languages)
	require.Equal(t, 45*time.Second, cfg.OCR.Timeout)
	require.Equal(t, int32(8), cfg.Database.MaxConns)
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{
			name:    "unknown provider",
			env:     map[string]string{"OCR_PROVIDER": "magic"},
			wantErr: true,
		},
		{
			name:    "azure without credentials",
			env:     map[string]string{"OCR_PROVIDER": "azure"},
			wantErr: true,
		},
		{
			name: "azure with credentials",
			env: map[string]string{
				"OCR_PROVIDER":   "azure",
				"AZURE_ENDPOINT": "https://example.cognitiveservices.azure.com/",
				"AZURE_API_KEY":  "key",
			},
		},
		{
			name:    "gigachat without key",
			env:     map[string]string{"OCR_PROVIDER": "gigachat"},
			wantErr: true,
		},
		{
			name:    "upload size above 5 MiB",
			env:     map[string]string{"MAX_UPLOAD_SIZE": "5242881"},
			wantErr: true,
		},
		{
			name: "lower upload size",
			env:  map[string]string{"MAX_UPLOAD_SIZE": "1048576"},
		},
		{
			name:    "non positive concurrency",
			env:     map[string]string{"OCR_MAX_CONCURRENCY": "0"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Parse()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
