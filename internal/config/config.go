package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/libroready/libroready/internal/analyze"
)

type Config struct {
	Port string

	// Working directories
	UploadDir string
	OutputDir string

	// Upload limits
	MaxUploadBytes int64

	// Session state
	SessionTTL time.Duration

	// Analysis thresholds
	IndentThreshold  int
	SpacingThreshold int
	MinPageBreaks    int

	// Cover rendering
	CoverFontPath string
}

func Load() Config {
	defaults := analyze.DefaultThresholds()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		UploadDir: envOr("LR_UPLOAD_DIR", "uploads"),
		OutputDir: envOr("LR_OUTPUT_DIR", "outputs"),

		MaxUploadBytes: envInt64("LR_MAX_UPLOAD_BYTES", 52428800), // 50MB

		SessionTTL: envDuration("LR_SESSION_TTL", 1*time.Hour),

		IndentThreshold:  envInt("LR_INDENT_THRESHOLD", defaults.Indent),
		SpacingThreshold: envInt("LR_SPACING_THRESHOLD", defaults.Spacing),
		MinPageBreaks:    envInt("LR_MIN_PAGE_BREAKS", defaults.MinPageBreaks),

		CoverFontPath: os.Getenv("LR_COVER_FONT"),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 1 * time.Hour
	}
	if cfg.IndentThreshold <= 0 {
		cfg.IndentThreshold = defaults.Indent
	}
	if cfg.SpacingThreshold <= 0 {
		cfg.SpacingThreshold = defaults.Spacing
	}
	if cfg.MinPageBreaks <= 0 {
		cfg.MinPageBreaks = defaults.MinPageBreaks
	}

	return cfg
}

func (c Config) Validate() error {
	if c.UploadDir == "" {
		return fmt.Errorf("LR_UPLOAD_DIR must not be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("LR_OUTPUT_DIR must not be empty")
	}
	return nil
}

// Thresholds returns the analysis thresholds in the form the detector
// consumes.
func (c Config) Thresholds() analyze.Thresholds {
	return analyze.Thresholds{
		Indent:        c.IndentThreshold,
		Spacing:       c.SpacingThreshold,
		MinPageBreaks: c.MinPageBreaks,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
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

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
