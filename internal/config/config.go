package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Analysis service connection
	AnalysisURL     string
	AnalysisAPIKey  string
	AnalysisTimeout time.Duration

	// Inbound auth (optional; empty disables)
	FormsightAPIKey string

	// Upload limits
	MaxUploadBytes int64

	// Classifier rules override
	RulesPath string

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		AnalysisURL:     os.Getenv("ANALYSIS_URL"),
		AnalysisAPIKey:  os.Getenv("ANALYSIS_API_KEY"),
		AnalysisTimeout: envDuration("ANALYSIS_TIMEOUT", 60*time.Second),

		FormsightAPIKey: os.Getenv("FORMSIGHT_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB, analysis services cap near this

		RulesPath: os.Getenv("RULES_PATH"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.AnalysisTimeout <= 0 {
		cfg.AnalysisTimeout = 60 * time.Second
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}

	return cfg
}

func (c Config) Validate() error {
	if c.AnalysisURL == "" {
		return fmt.Errorf("ANALYSIS_URL is required")
	}
	if c.AnalysisAPIKey == "" {
		return fmt.Errorf("ANALYSIS_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
