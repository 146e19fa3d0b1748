package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds defaults read from the environment (and a .env file when
// present). Command-line flags override every field.
type Config struct {
	Lang             string
	MaxBytes         int64
	MaxDepth         int
	RejectDuplicates bool
}

// LoadConfig reads SKEMA_* variables. A missing .env file is not an error.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{Lang: firstNonEmpty(strings.TrimSpace(getenv("SKEMA_LANG")), "en")}
	var err error
	if cfg.MaxBytes, err = envInt64(getenv, "SKEMA_MAX_BYTES"); err != nil {
		return nil, err
	}
	maxDepth, err := envInt64(getenv, "SKEMA_MAX_DEPTH")
	if err != nil {
		return nil, err
	}
	cfg.MaxDepth = int(maxDepth)
	if raw := strings.TrimSpace(getenv("SKEMA_REJECT_DUPLICATES")); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("SKEMA_REJECT_DUPLICATES: %w", err)
		}
		cfg.RejectDuplicates = b
	}
	return cfg, nil
}

func envInt64(getenv func(string) string, name string) (int64, error) {
	raw := strings.TrimSpace(getenv(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: want a non-negative integer, got %q", name, raw)
	}
	return n, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
