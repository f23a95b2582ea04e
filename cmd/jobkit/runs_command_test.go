package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"jobkit/internal/history"
	"jobkit/internal/testsupport"
)

func TestRunsWithEmptyHistory(t *testing.T) {
	testsupport.TempHome(t)

	output, err := executeCommand(t, "runs")
	if err != nil {
		t.Fatalf("runs failed: %v", err)
	}
	if !strings.Contains(output, "No runs recorded yet.") {
		t.Fatalf("output = %q", output)
	}
}

func TestRunsListsRecordedRuns(t *testing.T) {
	testsupport.TempHome(t)

	path, err := history.DefaultPath()
	if err != nil {
		t.Fatalf("history path: %v", err)
	}
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	started := time.Now()
	if err := store.RecordStart(context.Background(), "11112222-3333-4444-5555-666677778888", "Ip Checker", started, false); err != nil {
		t.Fatalf("record start: %v", err)
	}
	if err := store.RecordFinish(context.Background(), "11112222-3333-4444-5555-666677778888", started.Add(time.Second), 0); err != nil {
		t.Fatalf("record finish: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close history: %v", err)
	}

	output, err := executeCommand(t, "runs")
	if err != nil {
		t.Fatalf("runs failed: %v", err)
	}
	if !strings.Contains(output, "11112222") {
		t.Errorf("output missing short run id: %q", output)
	}
	if !strings.Contains(output, "Ip Checker") {
		t.Errorf("output missing job name: %q", output)
	}
}

func TestDepsReportsKnownBinaries(t *testing.T) {
	output, err := executeCommand(t, "deps")
	if err != nil {
		t.Fatalf("deps failed: %v", err)
	}
	if !strings.Contains(output, "mytop") {
		t.Errorf("output missing mytop row: %q", output)
	}
}
