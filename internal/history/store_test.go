package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"jobkit/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndListRuns(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	started := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if err := store.RecordStart(ctx, "run-1", "Ip Checker", started, false); err != nil {
		t.Fatalf("RecordStart: %v", err)
	}
	if err := store.RecordFinish(ctx, "run-1", started.Add(3*time.Second), 0); err != nil {
		t.Fatalf("RecordFinish: %v", err)
	}
	if err := store.RecordStart(ctx, "run-2", "Status Reporter", started.Add(time.Minute), true); err != nil {
		t.Fatalf("RecordStart: %v", err)
	}

	runs, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	// Newest first.
	if runs[0].RunID != "run-2" {
		t.Fatalf("expected run-2 first, got %s", runs[0].RunID)
	}
	if !runs[0].ReadOnly {
		t.Fatal("read_only flag lost")
	}
	if runs[0].FinishedAt != nil || runs[0].ExitCode != nil {
		t.Fatal("unfinished run should have nil finish fields")
	}
	if runs[1].ExitCode == nil || *runs[1].ExitCode != 0 {
		t.Fatalf("unexpected exit code: %v", runs[1].ExitCode)
	}
	if runs[1].FinishedAt == nil || !runs[1].FinishedAt.Equal(started.Add(3*time.Second)) {
		t.Fatalf("unexpected finish time: %v", runs[1].FinishedAt)
	}
}

func TestRecentLimitsResults(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		if err := store.RecordStart(ctx, id, "Test", base.Add(time.Duration(i)*time.Second), false); err != nil {
			t.Fatalf("RecordStart: %v", err)
		}
	}
	runs, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("limit not applied: %d", len(runs))
	}
}
