package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestConfig writes a config pointing every path at the test's temp
// space so commands never touch the real home directory.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	path := filepath.Join(base, "config.toml")
	content := `
[paths]
work_dir = "` + filepath.Join(base, "work") + `"
log_dir = "` + filepath.Join(base, "logs") + `"

[history]
path = "` + filepath.Join(base, "history.db") + `"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output missing %q:\n%s", needle, haystack)
	}
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Error("config init overwrote an existing file without --overwrite")
	}
	if _, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Errorf("config init --overwrite: %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCLI(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "release_tag")
	requireContains(t, out, "MySubs")
	requireContains(t, out, configPath)
}

func TestFilenamesCommand(t *testing.T) {
	configPath := writeTestConfig(t)
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "My Show - S01E05.mkv"))
	touch(t, filepath.Join(dir, "My Show - 05.ass"))

	out, err := runCLI(t, "--config", configPath, "filenames", "--dir", dir)
	if err != nil {
		t.Fatalf("filenames: %v", err)
	}
	requireContains(t, out, "My Show - S01E05.mkv (S01E05)")
	requireContains(t, out, "My Show - 05.ass (05)")
}

func TestMatchCommandPreview(t *testing.T) {
	configPath := writeTestConfig(t)
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "My Show - S01E05.mkv"))
	touch(t, filepath.Join(dir, "My Show - 05.ass"))

	out, err := runCLI(t, "--config", configPath, "match", "--dir", dir)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	requireContains(t, out, "Found 1 MKV files to process")
	requireContains(t, out, "My Show - 05.ass")
	requireContains(t, out, "High confidence matches: 1")
}

func TestHistoryListEmpty(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCLI(t, "--config", configPath, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No recorded runs")
}

func TestMuxCommandResampleConflict(t *testing.T) {
	configPath := writeTestConfig(t)

	_, err := runCLI(t, "--config", configPath, "mux", "--no-resample", "--force-resample")
	if err == nil {
		t.Error("mux accepted conflicting resample flags")
	}
}
