// Package metrics tallies attempt outcomes and renders the summary
// report for the console and the journal.
package metrics

import (
	"fmt"
	"io"
	"sync"

	"github.com/divwatch/divwatch/internal/journal"
	"github.com/divwatch/divwatch/internal/model"
)

// Monitor holds the process-local operation counters. Counters only
// move through RecordSuccess and RecordFailure, so Total always equals
// Success + Failure.
type Monitor struct {
	mu      sync.Mutex
	journal *journal.Journal
	total   int
	success int
	failure int
}

// NewMonitor creates a monitor that forwards summaries to j.
func NewMonitor(j *journal.Journal) *Monitor {
	return &Monitor{journal: j}
}

// RecordSuccess tallies one successful attempt.
func (m *Monitor) RecordSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total++
	m.success++
}

// RecordFailure tallies one failed attempt.
func (m *Monitor) RecordFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total++
	m.failure++
}

// Snapshot returns a read-only copy of the counters.
func (m *Monitor) Snapshot() model.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Monitor) snapshotLocked() model.Snapshot {
	s := model.Snapshot{
		Total:   m.total,
		Success: m.success,
		Failure: m.failure,
	}
	if s.Total > 0 {
		s.SuccessRate = float64(s.Success) * 100.0 / float64(s.Total)
	}
	return s
}

// ShowMetrics renders the summary section to w and forwards the same
// numbers to the journal. It does not reset the counters and may be
// called any number of times.
func (m *Monitor) ShowMetrics(w io.Writer) error {
	m.mu.Lock()
	s := m.snapshotLocked()
	m.mu.Unlock()

	fmt.Fprintln(w, renderSummary(s))

	if m.journal == nil {
		return nil
	}
	return m.journal.LogMetrics(s.Total, s.Success, s.Failure)
}
