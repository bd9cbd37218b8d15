package resellers

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/ui/styles"
)

// View renders the resellers tab.
func (m *Model) View() string {
	m.syncFromState()

	var sections []string

	sections = append(sections, m.renderHeader())

	if m.filtering || m.filterInput.Value() != "" {
		sections = append(sections, m.renderFilter())
	}

	if len(m.resellers) == 0 {
		sections = append(sections, styles.HelpStyle.Render("No resellers loaded yet. Press r to refresh."))
	} else if len(m.filtered) == 0 {
		sections = append(sections, styles.HelpStyle.Render("No resellers match the filter."))
	} else {
		sections = append(sections, m.table.View())
		sections = append(sections, styles.HelpStyle.Render(
			fmt.Sprintf("%d of %d resellers", len(m.filtered), len(m.resellers))))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader() string {
	return styles.TitleStyle.Render("Resellers")
}

func (m *Model) renderFilter() string {
	if m.filtering {
		return styles.FocusedBorderStyle.Render(m.filterInput.View())
	}
	return styles.BlurredBorderStyle.Render(m.filterInput.View())
}
