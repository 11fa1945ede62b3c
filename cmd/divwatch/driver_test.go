package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/divwatch/divwatch/internal/journal"
)

func TestRunFullSequence(t *testing.T) {
	dir := t.TempDir()
	cfg := appConfig{
		JournalPath: filepath.Join(dir, "system.log"),
		PaceDelay:   0,
	}

	if err := run(cfg); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(cfg.JournalPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(data)

	// Probes (1 success, 2 failures) plus the batch (4/4) make 11/5/6.
	for _, want := range []string{
		"[INFO] System started",
		"Attempting to divide 10 / 0",
		"Total: 11 | Success: 5 | Failed: 6",
		"[INFO] System shut down",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("journal missing %q:\n%s", want, text)
		}
	}

	// The shutdown entry must be the last line.
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if !strings.Contains(lines[len(lines)-1], "System shut down") {
		t.Fatalf("last journal line = %q, want shutdown entry", lines[len(lines)-1])
	}
}

func TestRunWithHistory(t *testing.T) {
	dir := t.TempDir()
	cfg := appConfig{
		JournalPath: filepath.Join(dir, "system.log"),
		DBPath:      filepath.Join(dir, "history.duckdb"),
		PaceDelay:   0,
	}

	if err := run(cfg); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(cfg.DBPath); err != nil {
		t.Fatalf("history database not created: %v", err)
	}
}

func TestRunJournalOpenFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	if err := os.Mkdir(blocked, 0755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	err := run(appConfig{JournalPath: blocked, PaceDelay: 0})
	var oe *journal.OpenError
	if !errors.As(err, &oe) {
		t.Fatalf("run = %v, want *journal.OpenError", err)
	}
}
