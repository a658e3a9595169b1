package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Gateway struct {
	Env            string        `env:"APP_ENV" envDefault:"development"`
	LogLevel       string        `env:"LOG_LEVEL"`
	Port           string        `env:"SERVER_PORT" envDefault:"8080"`
	UpstreamURL    string        `env:"UPSTREAM_URL" envDefault:"https://resource.supersurvey.live/api/v1/files"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
	HealthInterval time.Duration `env:"HEALTH_INTERVAL" envDefault:"1m"`
	RateLimit      RateLimit
}

type RateLimit struct {
	ListLimit   int           `env:"RATE_LIMIT_LIST" envDefault:"60"`
	UploadLimit int           `env:"RATE_LIMIT_UPLOAD" envDefault:"10"`
	DeleteLimit int           `env:"RATE_LIMIT_DELETE" envDefault:"20"`
	Window      time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

type Gallery struct {
	Env                string `env:"APP_ENV" envDefault:"development"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"warn"`
	GatewayURL         string `env:"GALLERY_GATEWAY_URL" envDefault:"http://localhost:8080/api/files"`
	DownloadDir        string `env:"GALLERY_DOWNLOAD_DIR" envDefault:"."`
	PlaceholderWorkers int    `env:"GALLERY_PLACEHOLDER_WORKERS" envDefault:"8"`
}

type MinIO struct {
	Endpoint   string `env:"MINIO_ENDPOINT"`
	AccessKey  string `env:"MINIO_ACCESS_KEY"`
	SecretKey  string `env:"MINIO_SECRET_KEY"`
	UseSSL     bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	BucketName string `env:"MINIO_BUCKET_NAME" envDefault:"media-mirror"`
}

func LoadGateway() (Gateway, error) {
	var cfg Gateway
	if err := env.Parse(&cfg); err != nil {
		return Gateway{}, fmt.Errorf("failed to parse gateway config: %w", err)
	}
	if cfg.UpstreamURL == "" {
		return Gateway{}, fmt.Errorf("UPSTREAM_URL must not be empty")
	}
	return cfg, nil
}

func LoadGallery() (Gallery, error) {
	var cfg Gallery
	if err := env.Parse(&cfg); err != nil {
		return Gallery{}, fmt.Errorf("failed to parse gallery config: %w", err)
	}
	if cfg.PlaceholderWorkers <= 0 {
		cfg.PlaceholderWorkers = 1
	}
	return cfg, nil
}

func LoadMinIO() (MinIO, error) {
	var cfg MinIO
	if err := env.Parse(&cfg); err != nil {
		return MinIO{}, fmt.Errorf("failed to parse minio config: %w", err)
	}
	if cfg.Endpoint == "" {
		return MinIO{}, fmt.Errorf("MINIO_ENDPOINT environment variable is not set")
	}
	return cfg, nil
}
