package callhistory

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/ui/components"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/ui/styles"
)

// View renders the call history tab.
func (m *Model) View() string {
	m.syncFromState()

	if m.loading {
		return m.renderMessage("Loading call history...")
	}
	if m.domain == "" {
		return m.renderMessage("Select a domain on the Domains tab to chart its call volume.")
	}

	sections := []string{
		m.renderHeader(),
		m.renderChart(),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderMessage(text string) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Call History"),
		"",
		styles.HelpStyle.Render(text),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("Call History: " + m.domain)

	rangeLabel := "last 12 months"
	if m.useRange {
		rangeLabel = m.histRange.String()
	}
	rangeStyle := lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary)
	rangeIndicator := rangeStyle.Render(fmt.Sprintf("[t] %s", rangeLabel))

	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", rangeIndicator)
}

func (m *Model) renderChart() string {
	cardWidth := max(m.width-6, 40)

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Calls per Month"), "")

	if len(m.buckets) == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No calls in the selected range."))
	} else {
		chartWidth := max(cardWidth-12, 30)
		chartHeight := max(min(m.height-12, 12), 4)

		chart := components.RenderMonthlyCallChart(m.buckets, chartWidth, chartHeight, "")
		rows = append(rows, chart)
		rows = append(rows, "")
		rows = append(rows, components.RenderMonthAxis(m.buckets, chartWidth))

		rows = append(rows, "", m.renderMonthCounts())

		total := 0
		for _, b := range m.buckets {
			total += b.Count
		}
		rows = append(rows, "", styles.HelpStyle.Render(
			fmt.Sprintf("%d calls across %d months", total, len(m.buckets))))
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderMonthCounts lists the per-month counts under the chart. Months
// without calls are absent from the series and from the list.
func (m *Model) renderMonthCounts() string {
	lines := make([]string, 0, len(m.buckets))
	for _, b := range m.buckets {
		lines = append(lines, fmt.Sprintf("  %s  %6d", b.Month, b.Count))
	}
	return styles.HelpStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
