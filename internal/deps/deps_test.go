package deps_test

import (
	"os"
	"path/filepath"
	"testing"

	"jobkit/internal/deps"
)

func TestCheckFindsBinaryOnPath(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "present-tool")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)

	results := deps.Check([]deps.Binary{
		{Name: "present", Command: "present-tool"},
		{Name: "absent", Command: "absent-tool"},
		{Name: "unset", Command: " "},
	})

	if len(results) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(results))
	}
	if !results[0].Available || results[0].Detail != fake {
		t.Fatalf("present binary not detected: %+v", results[0])
	}
	if results[1].Available {
		t.Fatalf("absent binary reported available: %+v", results[1])
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("blank command mishandled: %+v", results[2])
	}
}

func TestKnownListsMytopAsOptional(t *testing.T) {
	for _, binary := range deps.Known() {
		if binary.Name == "mytop" {
			if !binary.Optional {
				t.Fatal("mytop must be optional: its absence is a soft failure")
			}
			return
		}
	}
	t.Fatal("mytop missing from known binaries")
}
