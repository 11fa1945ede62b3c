package tui

import (
	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
)

var (
	chartOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Background(lipgloss.Color("42"))
	chartFailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Background(lipgloss.Color("196"))
)

// renderOutcomeChart draws success vs failure counts as a bar chart.
func (m WatchModel) renderOutcomeChart() string {
	if m.total == 0 {
		return watchDimStyle.Render("no data yet")
	}

	width := m.contentWidth() - 4
	if width < 20 {
		width = 20
	}

	bc := barchart.New(width, 6,
		barchart.WithBarGap(2),
	)
	bc.Push(barchart.BarData{
		Label: "ok",
		Values: []barchart.BarValue{
			{Name: "success", Value: float64(m.success), Style: chartOKStyle},
		},
	})
	bc.Push(barchart.BarData{
		Label: "fail",
		Values: []barchart.BarValue{
			{Name: "failure", Value: float64(m.failure), Style: chartFailStyle},
		},
	})
	bc.Draw()
	return bc.View()
}
