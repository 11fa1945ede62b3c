package metrics

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/divwatch/divwatch/internal/model"
)

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	summaryKeyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	summaryValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	summaryRateGood   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	summaryRateBad    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	summaryBoxStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 2)
)

type summaryItem struct {
	Key   string
	Value string
}

// renderSummary formats the metrics section shown at the end of a run.
func renderSummary(s model.Snapshot) string {
	rateStyle := summaryRateGood
	if s.SuccessRate < 50 {
		rateStyle = summaryRateBad
	}

	items := []summaryItem{
		{"Total operations", summaryValueStyle.Render(fmt.Sprintf("%d", s.Total))},
		{"Successful", summaryValueStyle.Render(fmt.Sprintf("%d", s.Success))},
		{"Failed", summaryValueStyle.Render(fmt.Sprintf("%d", s.Failure))},
		{"Success rate", rateStyle.Render(fmt.Sprintf("%.2f%%", s.SuccessRate))},
	}

	maxKeyLen := 0
	for _, item := range items {
		if len(item.Key) > maxKeyLen {
			maxKeyLen = len(item.Key)
		}
	}
	maxKeyLen += 3

	var lines []string
	for _, item := range items {
		key := summaryKeyStyle.Width(maxKeyLen).Render(item.Key + ":")
		lines = append(lines, fmt.Sprintf("%s %s", key, item.Value))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		summaryTitleStyle.Render("System Metrics"),
		strings.Join(lines, "\n"))
	return summaryBoxStyle.Render(content)
}
