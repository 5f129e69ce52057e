package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the air quality impact tool
type Config struct {
	// Input dataset
	CSVPath string `env:"CSV_PATH,default=data/city_day.csv"`
	City    string `env:"CITY,default=Delhi"`
	Phase   string `env:"PHASE,default=Phase 1"`

	// Optional dataset download when the CSV is missing
	DatasetURL string `env:"DATASET_URL"`

	// Optional air quality advisory RSS feed listed in the report
	AdvisoryFeedURL string `env:"ADVISORY_FEED_URL"`

	// OpenAI configuration (narrative generation is skipped without a key)
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL,default=gpt-4.1"`

	// Report storage
	DeploymentMode  string `env:"DEPLOYMENT_MODE,default=local"`
	GCSBucket       string `env:"GCS_BUCKET"`
	LocalReportsDir string `env:"LOCAL_REPORTS_DIR,default=./reports"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
