package config

import (
	"errors"
	"testing"

	"sheetnorm/internal"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MatchThreshold != 70 {
		t.Fatalf("threshold = %d", cfg.MatchThreshold)
	}
	if cfg.MergeSeparator != " | " {
		t.Fatalf("separator = %q", cfg.MergeSeparator)
	}
	if cfg.AddManufacturerReal {
		t.Fatal("AddManufacturerReal should default off")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MATCH_THRESHOLD", "85")
	t.Setenv("MERGE_SEPARATOR", " / ")
	t.Setenv("ADD_MANUFACTURER_REAL", "true")
	t.Setenv("MANUFACTURER_VALUE", "TI")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MatchThreshold != 85 || cfg.MergeSeparator != " / " || !cfg.AddManufacturerReal || cfg.ManufacturerValue != "TI" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	t.Setenv("MATCH_THRESHOLD", "150")

	_, err := Load()
	var cfgErr *internal.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("want ConfigurationError, got %v", err)
	}
}
