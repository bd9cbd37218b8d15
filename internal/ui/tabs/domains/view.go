package domains

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/ui/styles"
)

// View renders the domains tab.
func (m *Model) View() string {
	m.syncFromState()

	var sections []string

	sections = append(sections, m.renderHeader())

	switch {
	case m.loading:
		sections = append(sections, styles.HelpStyle.Render("Aggregating domain summaries..."))

	case m.reseller == "":
		sections = append(sections, styles.HelpStyle.Render(
			"Select a reseller on the Resellers tab to aggregate its domains."))

	case len(m.summaries) == 0:
		sections = append(sections, styles.HelpStyle.Render("This reseller has no domains."))

	default:
		if m.filtering || m.filterInput.Value() != "" {
			sections = append(sections, m.renderFilter())
		}
		if len(m.filtered) == 0 {
			sections = append(sections, styles.HelpStyle.Render("No domains match the filter."))
		} else {
			sections = append(sections, m.table.View())
			sections = append(sections, m.renderFooter())
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader() string {
	title := "Domains"
	if m.reseller != "" {
		title = "Domains: " + m.reseller
	}
	return styles.TitleStyle.Render(title)
}

func (m *Model) renderFilter() string {
	if m.filtering {
		return styles.FocusedBorderStyle.Render(m.filterInput.View())
	}
	return styles.BlurredBorderStyle.Render(m.filterInput.View())
}

func (m *Model) renderFooter() string {
	incomplete := 0
	for _, s := range m.summaries {
		if !s.Complete() {
			incomplete++
		}
	}

	summary := fmt.Sprintf("%d of %d domains", len(m.filtered), len(m.summaries))
	if incomplete > 0 {
		warn := styles.UnavailableStyle.Render(
			fmt.Sprintf("%d with unavailable counts", incomplete))
		return styles.HelpStyle.Render(summary+" · ") + warn
	}
	return styles.HelpStyle.Render(summary)
}
