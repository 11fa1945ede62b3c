package metrics

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/divwatch/divwatch/internal/journal"
)

func TestCountersInvariant(t *testing.T) {
	m := NewMonitor(nil)

	// Any interleaving of the two increments must keep the invariant.
	r := rand.New(rand.NewSource(1))
	wantSuccess, wantFailure := 0, 0
	for i := 0; i < 200; i++ {
		if r.Intn(2) == 0 {
			m.RecordSuccess()
			wantSuccess++
		} else {
			m.RecordFailure()
			wantFailure++
		}
		s := m.Snapshot()
		if s.Total != s.Success+s.Failure {
			t.Fatalf("invariant broken: total=%d success=%d failure=%d", s.Total, s.Success, s.Failure)
		}
	}

	s := m.Snapshot()
	if s.Success != wantSuccess || s.Failure != wantFailure {
		t.Fatalf("counters = %d/%d, want %d/%d", s.Success, s.Failure, wantSuccess, wantFailure)
	}
}

func TestSuccessRate(t *testing.T) {
	m := NewMonitor(nil)
	if got := m.Snapshot().SuccessRate; got != 0 {
		t.Fatalf("empty monitor rate = %v, want 0", got)
	}

	for i := 0; i < 4; i++ {
		m.RecordSuccess()
	}
	for i := 0; i < 4; i++ {
		m.RecordFailure()
	}
	if got := m.Snapshot().SuccessRate; got != 50 {
		t.Fatalf("rate = %v, want 50", got)
	}

	m.RecordSuccess()
	want := 5 * 100.0 / 9
	if got := m.Snapshot().SuccessRate; got != want {
		t.Fatalf("rate = %v, want %v", got, want)
	}
}

func TestShowMetricsWritesAndJournals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.log")
	j, err := journal.Open(path)
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })

	m := NewMonitor(j)
	m.RecordSuccess()
	m.RecordFailure()
	m.RecordFailure()

	var out strings.Builder
	if err := m.ShowMetrics(&out); err != nil {
		t.Fatalf("ShowMetrics: %v", err)
	}
	for _, want := range []string{"System Metrics", "Total operations", "Success rate"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("summary missing %q:\n%s", want, out.String())
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "Total: 3 | Success: 1 | Failed: 2") {
		t.Fatalf("journal missing metrics line:\n%s", data)
	}

	// ShowMetrics must not reset counters.
	if err := m.ShowMetrics(&out); err != nil {
		t.Fatalf("second ShowMetrics: %v", err)
	}
	if s := m.Snapshot(); s.Total != 3 {
		t.Fatalf("counters reset by ShowMetrics: %+v", s)
	}
}
