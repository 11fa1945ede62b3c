package journal

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/divwatch/divwatch/internal/model"
)

var linePattern = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] \[[A-Z]+\] .+$`)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestOpenWritesStartupEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.log")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })

	lines := readLines(t, path)
	if len(lines) != 1 {
		t.Fatalf("after Open: %d lines, want 1", len(lines))
	}
	if !strings.Contains(lines[0], "[INFO] System started") {
		t.Fatalf("startup line = %q", lines[0])
	}
}

func TestLogDurableAndOrdered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.log")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })

	if err := j.Log(model.LevelDebug, "first"); err != nil {
		t.Fatalf("Log first: %v", err)
	}
	// Every Log call must be readable immediately after it returns.
	lines := readLines(t, path)
	if !strings.HasSuffix(lines[len(lines)-1], "first") {
		t.Fatalf("entry not durable after Log: last line %q", lines[len(lines)-1])
	}

	if err := j.Log(model.LevelWarning, "second"); err != nil {
		t.Fatalf("Log second: %v", err)
	}
	lines = readLines(t, path)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for _, line := range lines {
		if !linePattern.MatchString(line) {
			t.Fatalf("malformed line %q", line)
		}
	}
	if !strings.Contains(lines[1], "[DEBUG] first") || !strings.Contains(lines[2], "[WARNING] second") {
		t.Fatalf("entries out of order: %v", lines[1:])
	}
}

func TestLogNormalizesUnknownLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.log")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })

	if err := j.Log("noise", "hello"); err != nil {
		t.Fatalf("Log: %v", err)
	}
	lines := readLines(t, path)
	if !strings.Contains(lines[len(lines)-1], "[INFO] hello") {
		t.Fatalf("unknown level not normalized: %q", lines[len(lines)-1])
	}
}

func TestLogErrorAndMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.log")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })

	if err := j.LogError(errors.New("division by zero detected")); err != nil {
		t.Fatalf("LogError: %v", err)
	}
	if err := j.LogMetrics(8, 4, 4); err != nil {
		t.Fatalf("LogMetrics: %v", err)
	}
	if err := j.LogMetrics(0, 0, 0); err != nil {
		t.Fatalf("LogMetrics zero: %v", err)
	}

	lines := readLines(t, path)
	if !strings.Contains(lines[1], "[ERROR] Exception caught: division by zero detected") {
		t.Fatalf("error line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "Total: 8 | Success: 4 | Failed: 4 | Success rate: 50.00%") {
		t.Fatalf("metrics line = %q", lines[2])
	}
	if !strings.Contains(lines[3], "Success rate: 0.00%") {
		t.Fatalf("zero-total metrics line = %q", lines[3])
	}
}

func TestCloseWritesShutdownEntryOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.log")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want startup + shutdown", len(lines))
	}
	if !strings.Contains(lines[1], "[INFO] System shut down") {
		t.Fatalf("shutdown line = %q", lines[1])
	}
}

func TestOpenFailureIsOpenError(t *testing.T) {
	dir := t.TempDir()
	// A directory at the destination path cannot be opened for appending.
	blocked := filepath.Join(dir, "blocked")
	if err := os.Mkdir(blocked, 0755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	_, err := Open(blocked)
	var oe *OpenError
	if !errors.As(err, &oe) {
		t.Fatalf("Open on directory: got %v, want *OpenError", err)
	}
	if oe.Path != blocked {
		t.Fatalf("OpenError.Path = %q, want %q", oe.Path, blocked)
	}
}

func TestNormalizeLevel(t *testing.T) {
	cases := map[string]string{
		"info":     model.LevelInfo,
		"WARN":     model.LevelWarning,
		"warning":  model.LevelWarning,
		"err":      model.LevelError,
		"fatal":    model.LevelCritical,
		"CRITICAL": model.LevelCritical,
		"dbg":      model.LevelDebug,
		"":         model.LevelInfo,
		"garbage":  model.LevelInfo,
	}
	for in, want := range cases {
		if got := NormalizeLevel(in); got != want {
			t.Fatalf("NormalizeLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
