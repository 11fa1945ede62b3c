package model

import "time"

// Severity labels for journal entries. Closed set; the values carry no
// ordering semantics beyond their display text.
const (
	LevelInfo     = "INFO"
	LevelWarning  = "WARNING"
	LevelError    = "ERROR"
	LevelCritical = "CRITICAL"
	LevelDebug    = "DEBUG"
)

// Attempt represents a single evaluated division attempt.
// It is the canonical type for history storage, the HTTP API, and the
// watch dashboard. Immutable once evaluated.
type Attempt struct {
	Timestamp time.Time
	Dividend  float64
	Divisor   float64
	OK        bool
	Result    float64 // valid only when OK
	ErrorKind string  // "division_by_zero", "negative_operand", "unexpected"; empty when OK
	Source    string  // "probe", "batch"
}

// Snapshot is a read-only copy of the metrics counters plus the derived
// success rate. Invariant: Total == Success + Failure.
type Snapshot struct {
	Total       int
	Success     int
	Failure     int
	SuccessRate float64 // percent; 0 when Total is 0
}
