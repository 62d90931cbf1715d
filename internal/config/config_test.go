package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"muxxy/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Errorf("Load reported a file at %s", path)
	}
	if cfg.Mux.ReleaseTag != "MySubs" {
		t.Errorf("release tag default = %q", cfg.Mux.ReleaseTag)
	}
	if cfg.Matching.ConfidenceThreshold != 0.7 {
		t.Errorf("confidence threshold default = %v", cfg.Matching.ConfidenceThreshold)
	}
	if cfg.Mux.Workers != 4 {
		t.Errorf("workers default = %d", cfg.Mux.Workers)
	}
	if !cfg.History.Enabled {
		t.Error("history should default to enabled")
	}
	if strings.HasPrefix(cfg.Paths.WorkDir, "~") {
		t.Errorf("work dir not expanded: %q", cfg.Paths.WorkDir)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "muxxy.toml")
	content := `
[paths]
work_dir = "` + filepath.Join(dir, "work") + `"

[matching]
confidence_threshold = 0.85
strict = true

[mux]
release_tag = "  Team  "
subtitle_language = "english"
workers = 0

[logging]
format = "JSON"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("Load resolved %q exists=%v", resolved, exists)
	}
	if cfg.Matching.ConfidenceThreshold != 0.85 || !cfg.Matching.Strict {
		t.Errorf("matching section = %+v", cfg.Matching)
	}
	if cfg.Mux.ReleaseTag != "Team" {
		t.Errorf("release tag not trimmed: %q", cfg.Mux.ReleaseTag)
	}
	if cfg.Mux.SubtitleLanguage != "eng" {
		t.Errorf("subtitle language not normalized to ISO 639-2: %q", cfg.Mux.SubtitleLanguage)
	}
	if cfg.Mux.Workers != 4 {
		t.Errorf("zero workers should fall back to default, got %d", cfg.Mux.Workers)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("log format = %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"threshold above one", "[matching]\nconfidence_threshold = 1.5\n"},
		{"resample conflict", "[subtitles]\nno_resample = true\nforce_resample = true\n"},
		{"absurd workers", "[mux]\nworkers = 500\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "muxxy.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Error("Load accepted invalid config")
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("sample config does not load: exists=%v err=%v", exists, err)
	}
}
