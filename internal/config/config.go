package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/mdtoc/internal/splice"
	"github.com/dgallion1/mdtoc/internal/toc"
)

type Config struct {
	Port string

	// Auth (optional; empty disables auth on API routes)
	APIKey string

	// Worker pool
	WorkerCount int

	// Upload limits
	MaxUploadBytes int64

	// TOC rendering
	BeginMarker string
	EndMarker   string
	IndentWidth int

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("MDTOC_API_KEY"),

		WorkerCount: envInt("WORKER_COUNT", 4),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		BeginMarker: envOr("TOC_BEGIN_MARKER", splice.DefaultBeginMarker),
		EndMarker:   envOr("TOC_END_MARKER", splice.DefaultEndMarker),
		IndentWidth: envInt("TOC_INDENT", toc.DefaultIndent),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.IndentWidth <= 0 {
		cfg.IndentWidth = toc.DefaultIndent
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.BeginMarker == "" || c.EndMarker == "" {
		return fmt.Errorf("marker tokens must be non-empty")
	}
	if c.BeginMarker == c.EndMarker {
		return fmt.Errorf("begin and end markers must differ")
	}
	return nil
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
