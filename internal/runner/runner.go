// Package runner drives ordered division attempts through the
// pipeline: arithmetic, console output, journal, metrics, and the
// optional history store and watch feed.
package runner

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/divwatch/divwatch/internal/journal"
	"github.com/divwatch/divwatch/internal/mathops"
	"github.com/divwatch/divwatch/internal/metrics"
	"github.com/divwatch/divwatch/internal/model"
)

var (
	checkMark = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("✓")
	crossMark = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Pair is one (dividend, divisor) batch entry.
type Pair struct {
	Dividend float64
	Divisor  float64
}

// AttemptStore is the narrow history contract the runner needs.
type AttemptStore interface {
	InsertAttempt(*model.Attempt) error
}

// Runner evaluates pairs in order and routes every outcome. A failed
// entry never aborts the batch.
type Runner struct {
	Out     io.Writer
	ErrW    io.Writer
	Journal *journal.Journal
	Monitor *metrics.Monitor
	History AttemptStore             // nil disables history
	Events  chan<- model.Attempt     // nil disables the watch feed
	Delay   time.Duration            // pacing between entries; 0 skips
	divide  func(a, b float64) (float64, error)
	now     func() time.Time
}

// New creates a runner over the given sinks.
func New(out, errW io.Writer, j *journal.Journal, m *metrics.Monitor) *Runner {
	return &Runner{
		Out:     out,
		ErrW:    errW,
		Journal: j,
		Monitor: m,
		divide:  mathops.Divide,
		now:     time.Now,
	}
}

// Attempt evaluates a single division and routes its outcome. The
// returned attempt is already tallied, journaled, and persisted.
func (r *Runner) Attempt(a, b float64, source string) model.Attempt {
	attempt := model.Attempt{
		Timestamp: r.now().UTC(),
		Dividend:  a,
		Divisor:   b,
		Source:    source,
	}

	result, err := r.divide(a, b)
	if err == nil {
		attempt.OK = true
		attempt.Result = result
		fmt.Fprintf(r.Out, "%s Result: %g\n", checkMark, result)
		r.logf(model.LevelInfo, "Operation succeeded: %g / %g = %g", a, b, result)
		r.Monitor.RecordSuccess()
	} else {
		attempt.ErrorKind = mathops.Kind(err)
		if mathops.IsDomainError(err) {
			fmt.Fprintf(r.ErrW, "%s %v\n", crossMark, err)
			r.logError(err)
		} else {
			fmt.Fprintf(r.ErrW, "%s Unexpected error: %v\n", crossMark, err)
			r.logf(model.LevelError, "Unexpected error: %v", err)
		}
		r.Monitor.RecordFailure()
	}

	r.record(&attempt)
	r.publish(attempt)
	return attempt
}

// Run processes every pair in order, pacing entries by Delay. It
// returns early only when ctx is cancelled; errors in individual
// entries are routed, tallied, and skipped past.
func (r *Runner) Run(ctx context.Context, pairs []Pair) error {
	r.logf(model.LevelInfo, "Starting batch of %d operations", len(pairs))

	for i, p := range pairs {
		fmt.Fprintf(r.Out, "\nOperation #%d: %s\n",
			i+1, dimStyle.Render(fmt.Sprintf("%g / %g", p.Dividend, p.Divisor)))
		r.logf(model.LevelDebug, "Processing operation: %g / %g", p.Dividend, p.Divisor)

		r.Attempt(p.Dividend, p.Divisor, "batch")

		if r.Delay > 0 && i < len(pairs)-1 {
			timer := time.NewTimer(r.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				r.logf(model.LevelWarning, "Batch cancelled after %d of %d operations", i+1, len(pairs))
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	r.logf(model.LevelInfo, "Batch processing complete")
	return nil
}

func (r *Runner) record(a *model.Attempt) {
	if r.History == nil {
		return
	}
	if err := r.History.InsertAttempt(a); err != nil {
		// History is advisory; the run itself must not fail on it.
		log.Printf("runner: history insert failed: %v", err)
	}
}

func (r *Runner) publish(a model.Attempt) {
	if r.Events == nil {
		return
	}
	select {
	case r.Events <- a:
	default:
		// The watch feed is cosmetic; never block the batch on it.
	}
}

func (r *Runner) logf(level, format string, args ...any) {
	if r.Journal == nil {
		return
	}
	if err := r.Journal.Log(level, fmt.Sprintf(format, args...)); err != nil {
		log.Printf("runner: journal write failed: %v", err)
	}
}

func (r *Runner) logError(err error) {
	if r.Journal == nil {
		return
	}
	if lerr := r.Journal.LogError(err); lerr != nil {
		log.Printf("runner: journal write failed: %v", lerr)
	}
}
