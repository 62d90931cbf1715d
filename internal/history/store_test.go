package history_test

import (
	"context"
	"path/filepath"
	"testing"

	"muxxy/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAddAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.Add(ctx, history.Record{
		VideoPath:    "/library/Show - S01E01.mkv",
		SubtitlePath: "/subs/Show - 01.ass",
		OutputPath:   "/out/[MySubs] Show - S01E01 [1080p].mkv",
		Confidence:   0.92,
		MatchKind:    "episode",
		Status:       history.StatusCompleted,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if first.ID == 0 {
		t.Error("Add did not assign an ID")
	}

	second, err := store.Add(ctx, history.Record{
		VideoPath: "/library/Show - S01E02.mkv",
		MatchKind: "none",
		Reason:    "no subtitle above threshold",
		Status:    history.StatusSkipped,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	records, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Recent returned %d records", len(records))
	}
	if records[0].ID != second.ID {
		t.Errorf("newest record first: got ID %d, want %d", records[0].ID, second.ID)
	}
	got := records[1]
	if got.SubtitlePath != first.SubtitlePath || got.Confidence != 0.92 || got.Status != history.StatusCompleted {
		t.Errorf("stored record = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at did not round-trip")
	}
	if records[0].SubtitlePath != "" || records[0].Reason != "no subtitle above threshold" {
		t.Errorf("skipped record = %+v", records[0])
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := store.Add(ctx, history.Record{
			VideoPath: "/library/video.mkv",
			MatchKind: "exact",
			Status:    history.StatusCompleted,
		}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	records, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Recent(2) returned %d records", len(records))
	}
}

func TestForVideo(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, history.Record{
		VideoPath: "/library/a.mkv", MatchKind: "exact", Status: history.StatusCompleted,
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.Add(ctx, history.Record{
		VideoPath: "/library/b.mkv", MatchKind: "exact", Status: history.StatusFailed, ErrorMessage: "mkvmerge exited 2",
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	records, err := store.ForVideo(ctx, "/library/b.mkv")
	if err != nil {
		t.Fatalf("ForVideo: %v", err)
	}
	if len(records) != 1 || records[0].ErrorMessage != "mkvmerge exited 2" {
		t.Errorf("ForVideo records = %+v", records)
	}
}

func TestStatusCountsAndClear(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for _, status := range []history.Status{
		history.StatusCompleted, history.StatusCompleted, history.StatusSkipped,
	} {
		if _, err := store.Add(ctx, history.Record{
			VideoPath: "/library/video.mkv", MatchKind: "fuzzy", Status: status,
		}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	counts, err := store.StatusCounts(ctx)
	if err != nil {
		t.Fatalf("StatusCounts: %v", err)
	}
	if counts[history.StatusCompleted] != 2 || counts[history.StatusSkipped] != 1 {
		t.Errorf("counts = %v", counts)
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 3 {
		t.Errorf("Clear removed %d rows", removed)
	}
	records, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent after clear: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("store not empty after clear: %d records", len(records))
	}
}

func TestReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Add(ctx, history.Record{
		VideoPath: "/library/a.mkv", MatchKind: "exact", Status: history.StatusCompleted,
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	records, err := reopened.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("reopened store has %d records", len(records))
	}
}
