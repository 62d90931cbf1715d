// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"muxxy/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test so
// nothing ever touches the real home directory.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkDir = filepath.Join(base, "work")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.OutputDir = ""
	cfg.History.Path = filepath.Join(base, "history.db")
	return &cfg
}
