package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	OCR      OCRConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	// File receives a copy of every log line; empty disables the file sink.
	File string `env:"LOG_FILE" envDefault:"logs/app.log"`
}

type ServerConfig struct {
	Port         string        `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName   string `env:"DB_NAME" envDefault:"receipts"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxConns int32  `env:"DB_MAX_CONNS" envDefault:"4"`
}

// MaxUploadLimit is the largest accepted upload, 5 MiB. MAX_UPLOAD_SIZE may
// only lower it.
const MaxUploadLimit int64 = 5 << 20

type StorageConfig struct {
	UploadDir     string `env:"UPLOAD_DIR" envDefault:"data/uploads"`
	MaxUploadSize int64  `env:"MAX_UPLOAD_SIZE" envDefault:"5242880"`
}

type OCRConfig struct {
	Provider       string        `env:"OCR_PROVIDER" envDefault:"tesseract"`
	Languages      []string      `env:"OCR_LANGUAGES" envDefault:"eng" envSeparator:","`
	PDFDPI         float64       `env:"OCR_PDF_DPI" envDefault:"300"`
	Timeout        time.Duration `env:"OCR_TIMEOUT" envDefault:"2m"`
	MaxConcurrency int           `env:"OCR_MAX_CONCURRENCY" envDefault:"2"`
	Azure          AzureConfig
	GigaChat       GigaChatConfig
}

type AzureConfig struct {
	Endpoint string `env:"AZURE_ENDPOINT"`
	APIKey   string `env:"AZURE_API_KEY"`
}

type GigaChatConfig struct {
	APIKey             string `env:"GIGACHAT_API_KEY"`
	Scope              string `env:"GIGACHAT_SCOPE" envDefault:"GIGACHAT_API_PERS"`
	InsecureSkipVerify bool   `env:"GIGACHAT_INSECURE_SKIP_VERIFY" envDefault:"false"`
	BaseURL            string `env:"GIGACHAT_BASE_URL" envDefault:"https://gigachat.devices.sberbank.ru/api/v1"`
	OAuthURL           string `env:"GIGACHAT_OAUTH_URL" envDefault:"https://ngw.devices.sberbank.ru:9443/api/v2/oauth"`
	Model              string `env:"GIGACHAT_MODEL" envDefault:"GigaChat"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// .env is optional; plain environment variables work the same way (Docker/K8s)
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Storage.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	if c.Storage.MaxUploadSize <= 0 || c.Storage.MaxUploadSize > MaxUploadLimit {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be between 1 and %d, got %d", MaxUploadLimit, c.Storage.MaxUploadSize)
	}
	if c.OCR.MaxConcurrency <= 0 {
		return fmt.Errorf("OCR_MAX_CONCURRENCY must be positive, got %d", c.OCR.MaxConcurrency)
	}
	if c.OCR.PDFDPI <= 0 {
		return fmt.Errorf("OCR_PDF_DPI must be positive, got %v", c.OCR.PDFDPI)
	}
	switch c.OCR.Provider {
	case "tesseract":
	case "azure":
		if c.OCR.Azure.Endpoint == "" || c.OCR.Azure.APIKey == "" {
			return fmt.Errorf("OCR_PROVIDER=azure requires AZURE_ENDPOINT and AZURE_API_KEY")
		}
	case "gigachat":
		if c.OCR.GigaChat.APIKey == "" {
			return fmt.Errorf("OCR_PROVIDER=gigachat requires GIGACHAT_API_KEY")
		}
	default:
		return fmt.Errorf("unknown OCR_PROVIDER %q (supported: tesseract, azure, gigachat)", c.OCR.Provider)
	}
	return nil
}
