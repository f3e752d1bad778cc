// Package config holds the explicit configuration object passed to every
// constructor. Values come from defaults, then an optional YAML file, then
// environment variables, in that order. There is no package-level state.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// VisionConfig configures the description-service client.
type VisionConfig struct {
	URL                 string `yaml:"url"`
	Model               string `yaml:"model"`
	TimeoutSeconds      int    `yaml:"timeout_seconds"`
	MaxAttempts         int    `yaml:"max_attempts"`
	InitialDelaySeconds int    `yaml:"initial_delay_seconds"`

	// APIKey comes from the environment only, never from the file.
	APIKey string `yaml:"-"`
}

// Config is the full runtime configuration.
type Config struct {
	// Record source: the spreadsheet is used when SpreadsheetID is set,
	// otherwise the local CSV file.
	CSVPath         string `yaml:"csv_path"`
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	SheetName       string `yaml:"sheet_name"`
	CredentialsFile string `yaml:"credentials_file"`

	ImagesDir    string `yaml:"images_dir"`
	DocumentPath string `yaml:"document_path"`
	Workers      int    `yaml:"workers"`

	Vision VisionConfig `yaml:"vision"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CSVPath:      "products.csv",
		SheetName:    "sale",
		ImagesDir:    "images",
		DocumentPath: "main.html",
		Workers:      4,
		Vision: VisionConfig{
			Model:               "llava-next-7b",
			TimeoutSeconds:      600,
			MaxAttempts:         6,
			InitialDelaySeconds: 3,
		},
	}
}

// Load builds the configuration: defaults, overlaid with the YAML file at
// path when it exists, overlaid with environment variables. A missing file
// is only an error when the path was given explicitly.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// Optional default config file, fine to run without it.
	default:
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.CSVPath, "PRODUCTS_CSV")
	setString(&c.SpreadsheetID, "GOOGLE_SHEET_ID")
	setString(&c.SheetName, "SHEET_NAME")
	setString(&c.CredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS")
	setString(&c.ImagesDir, "IMAGES_DIR")
	setString(&c.DocumentPath, "CATALOG_HTML")
	setInt(&c.Workers, "ENRICH_WORKERS")

	setString(&c.Vision.URL, "VISION_API_URL")
	setString(&c.Vision.Model, "VISION_MODEL")
	setString(&c.Vision.APIKey, "OPENROUTER_API_KEY")
	setInt(&c.Vision.TimeoutSeconds, "VISION_TIMEOUT_SECONDS")
	setInt(&c.Vision.MaxAttempts, "VISION_MAX_ATTEMPTS")
}

// Timeout returns the per-request timeout for description calls.
func (v VisionConfig) Timeout() time.Duration {
	return time.Duration(v.TimeoutSeconds) * time.Second
}

// InitialDelay returns the first retry backoff delay.
func (v VisionConfig) InitialDelay() time.Duration {
	return time.Duration(v.InitialDelaySeconds) * time.Second
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
