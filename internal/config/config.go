package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"sheetnorm/internal"
)

type Config struct {
	DBPath    string
	OutputDir string

	SchemaPath string

	MatchThreshold      int
	MergeSeparator      string
	AddManufacturerReal bool
	ManufacturerValue   string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		SchemaPath: getEnv("SCHEMA_PATH", ""),

		MatchThreshold:      getEnvInt("MATCH_THRESHOLD", 70),
		MergeSeparator:      getEnv("MERGE_SEPARATOR", " | "),
		AddManufacturerReal: getEnvBool("ADD_MANUFACTURER_REAL", false),
		ManufacturerValue:   getEnv("MANUFACTURER_VALUE", ""),
	}

	if cfg.MatchThreshold < 0 || cfg.MatchThreshold > 100 {
		return Config{}, internal.Configf("MATCH_THRESHOLD must be in 0-100, got %d", cfg.MatchThreshold)
	}
	if cfg.MergeSeparator == "" {
		return Config{}, internal.Configf("MERGE_SEPARATOR must not be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
