package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindVideosAndSubtitles(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "My Show - S01E05.mkv"))
	touch(t, filepath.Join(root, "nested", "My Show - S01E06.mkv"))
	touch(t, filepath.Join(root, "My Show - 05.ass"))
	touch(t, filepath.Join(root, "subs", "My Show - 06.SRT"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "clip.mp4"))

	videos, err := findVideos(root)
	if err != nil {
		t.Fatalf("findVideos: %v", err)
	}
	wantVideos := []string{
		filepath.Join(root, "My Show - S01E05.mkv"),
		filepath.Join(root, "nested", "My Show - S01E06.mkv"),
	}
	if !reflect.DeepEqual(videos, wantVideos) {
		t.Errorf("videos = %q, want %q", videos, wantVideos)
	}

	subtitles, err := findSubtitles(root)
	if err != nil {
		t.Fatalf("findSubtitles: %v", err)
	}
	wantSubtitles := []string{
		filepath.Join(root, "My Show - 05.ass"),
		filepath.Join(root, "subs", "My Show - 06.SRT"),
	}
	if !reflect.DeepEqual(subtitles, wantSubtitles) {
		t.Errorf("subtitles = %q, want %q", subtitles, wantSubtitles)
	}
}

func TestFindVideosMissingRoot(t *testing.T) {
	if _, err := findVideos(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("findVideos accepted a missing directory")
	}
}
