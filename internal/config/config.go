// Package config centralises configuration parsing for the fit-tracker tools.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration values.
type Config struct {
	HTTPAddress    string
	AllowedOrigins []string
	WeightKG       float64 // athlete weight used for FIT imports
	HeightCM       float64 // athlete height used for FIT imports
	OutputFormat   string  // parquet|csv
	OutputDir      string
}

// Load reads environment variables into Config, applying defaults for local use.
// Variables found in the given .env files are loaded first without overriding
// the process environment; missing files are ignored.
func Load(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", file, err)
		}
	}

	cfg := Config{
		HTTPAddress:    getEnv("FTRACKER_HTTP_ADDRESS", ":8080"),
		AllowedOrigins: splitAndTrim(getEnv("FTRACKER_ALLOWED_ORIGINS", "*")),
		WeightKG:       getFloatEnv("FTRACKER_WEIGHT_KG", 75),
		HeightCM:       getFloatEnv("FTRACKER_HEIGHT_CM", 175),
		OutputFormat:   strings.ToLower(getEnv("FTRACKER_OUTPUT_FORMAT", "parquet")),
		OutputDir:      getEnv("FTRACKER_OUTPUT_DIR", "reports"),
	}
	if cfg.OutputFormat != "parquet" && cfg.OutputFormat != "csv" {
		return Config{}, fmt.Errorf("unsupported output format %q (expected parquet|csv)", cfg.OutputFormat)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
