// Package journal provides the durable run log: leveled, timestamped
// text lines appended to a single file for the lifetime of the process.
package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/divwatch/divwatch/internal/model"
)

const (
	defaultFileMode = 0644
	defaultDirMode  = 0755

	timestampLayout = "2006-01-02 15:04:05"
)

// OpenError reports that the journal destination could not be opened
// for appending. It is the only error the program treats as fatal.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("journal: open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Journal is the single authoritative writer to the run log. Every
// entry is flushed before the call returns, so a crash mid-run loses
// nothing already logged. A mutex serializes appends; entries are never
// interleaved even with concurrent callers.
type Journal struct {
	mu   sync.Mutex
	path string
	file *os.File
	now  func() time.Time
}

// Open creates or opens the run log at path for appending and writes
// the startup entry. Failures are wrapped in *OpenError.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), defaultDirMode); err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, defaultFileMode)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	j := &Journal{
		path: path,
		file: f,
		now:  time.Now,
	}
	if err := j.Log(model.LevelInfo, "System started"); err != nil {
		_ = f.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	return j, nil
}

// Path returns the journal destination path.
func (j *Journal) Path() string { return j.path }

// Log appends one `[timestamp] [LEVEL] message` line and syncs the file
// before returning. Unknown levels are normalized to INFO.
func (j *Journal) Log(level, message string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.logLocked(level, message)
}

func (j *Journal) logLocked(level, message string) error {
	if j.file == nil {
		return fmt.Errorf("journal: closed")
	}
	line := fmt.Sprintf("[%s] [%s] %s\n",
		j.now().Format(timestampLayout), NormalizeLevel(level), message)
	if _, err := j.file.WriteString(line); err != nil {
		return fmt.Errorf("journal: write entry: %w", err)
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf("journal: sync entry: %w", err)
	}
	return nil
}

// LogError records a caught error at ERROR level.
func (j *Journal) LogError(err error) error {
	return j.Log(model.LevelError, "Exception caught: "+err.Error())
}

// LogMetrics records the counter triple and derived success rate at
// INFO level. The rate is 0 when total is 0.
func (j *Journal) LogMetrics(total, success, failed int) error {
	rate := 0.0
	if total > 0 {
		rate = float64(success) * 100.0 / float64(total)
	}
	msg := fmt.Sprintf("Metrics - Total: %d | Success: %d | Failed: %d | Success rate: %.2f%%",
		total, success, failed, rate)
	return j.Log(model.LevelInfo, msg)
}

// Close writes the shutdown entry and releases the file handle. It is
// safe to call on every exit path; only the first call does work.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.file == nil {
		return nil
	}
	// Best effort: the handle must be released even if the final entry
	// cannot be written.
	logErr := j.logLocked(model.LevelInfo, "System shut down")
	err := j.file.Close()
	j.file = nil
	if err != nil {
		return fmt.Errorf("journal: close: %w", err)
	}
	return logErr
}
