// Package tui implements the optional watch dashboard: a live view of
// the batch run fed by runner events. Cosmetic only; the run's
// journal, metrics, and history are identical with or without it.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/divwatch/divwatch/internal/model"
)

const feedCapacity = 12

// AttemptMsg carries one evaluated attempt into the dashboard.
type AttemptMsg model.Attempt

// RunDoneMsg signals that the driver finished the run and closed the
// event feed.
type RunDoneMsg struct{}

// WatchModel is the bubbletea model for the watch dashboard.
type WatchModel struct {
	events <-chan model.Attempt
	keys   KeyMap

	width   int
	height  int
	feed    []model.Attempt
	total   int
	success int
	failure int
	done    bool
}

// NewWatchModel creates a dashboard reading attempts from events. The
// feed ends when the channel is closed.
func NewWatchModel(events <-chan model.Attempt) WatchModel {
	return WatchModel{
		events: events,
		keys:   DefaultKeyMap(),
		width:  80,
		height: 24,
	}
}

func (m WatchModel) Init() tea.Cmd {
	return m.waitForAttempt()
}

func (m WatchModel) waitForAttempt() tea.Cmd {
	return func() tea.Msg {
		a, ok := <-m.events
		if !ok {
			return RunDoneMsg{}
		}
		return AttemptMsg(a)
	}
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.ForceQuit):
			return m, tea.Quit
		}
		return m, nil

	case AttemptMsg:
		a := model.Attempt(msg)
		m.feed = append(m.feed, a)
		if len(m.feed) > feedCapacity {
			m.feed = m.feed[len(m.feed)-feedCapacity:]
		}
		m.total++
		if a.OK {
			m.success++
		} else {
			m.failure++
		}
		return m, m.waitForAttempt()

	case RunDoneMsg:
		m.done = true
		return m, nil
	}

	return m, nil
}

var (
	watchTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	watchDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	watchOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	watchFailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	watchBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func (m WatchModel) View() string {
	var sections []string

	title := "divwatch — live run"
	if m.done {
		title = "divwatch — run complete"
	}
	sections = append(sections, watchTitleStyle.Render(title))
	sections = append(sections, "")

	feed := watchBoxStyle.Width(m.contentWidth()).Render(m.renderFeed())
	chart := watchBoxStyle.Width(m.contentWidth()).Render(m.renderOutcomeChart())
	sections = append(sections, feed, chart)

	rate := 0.0
	if m.total > 0 {
		rate = float64(m.success) * 100.0 / float64(m.total)
	}
	footer := fmt.Sprintf("total %d   success %s   failure %s   rate %.1f%%",
		m.total,
		watchOKStyle.Render(fmt.Sprintf("%d", m.success)),
		watchFailStyle.Render(fmt.Sprintf("%d", m.failure)),
		rate)
	sections = append(sections, footer)
	sections = append(sections, watchDimStyle.Render("q to quit"))

	return strings.Join(sections, "\n")
}

func (m WatchModel) contentWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	return w
}

func (m WatchModel) renderFeed() string {
	if len(m.feed) == 0 {
		return watchDimStyle.Render("waiting for operations…")
	}

	var lines []string
	for _, a := range m.feed {
		op := fmt.Sprintf("%g / %g", a.Dividend, a.Divisor)
		if a.OK {
			lines = append(lines, fmt.Sprintf("%s %-16s = %g",
				watchOKStyle.Render("✓"), op, a.Result))
		} else {
			lines = append(lines, fmt.Sprintf("%s %-16s %s",
				watchFailStyle.Render("✗"), op, watchDimStyle.Render(a.ErrorKind)))
		}
	}
	return strings.Join(lines, "\n")
}
