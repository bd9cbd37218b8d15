package provision

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/ui/styles"
)

// View renders the provision tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, styles.TitleStyle.Render("Provision Reseller Credentials"))
	sections = append(sections, styles.HelpStyle.Render(
		"Creates a dashboard login and binds it to a reseller with its upstream token."))
	sections = append(sections, "")

	sections = append(sections,
		m.renderField("Email", m.emailInput.View(), m.focused == fieldEmail),
		m.renderField("Password", m.passwordInput.View(), m.focused == fieldPassword),
		m.renderField("Reseller ID", m.resellerInput.View(), m.focused == fieldReseller),
		m.renderField("Access Token", m.tokenInput.View(), m.focused == fieldToken),
		"",
		m.renderSubmit(),
	)

	if m.errorText != "" {
		sections = append(sections, "", styles.ErrorTextStyle.Render(m.errorText))
	}

	if m.lastResult != nil {
		sections = append(sections, "", m.renderResult())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderField(label, input string, focused bool) string {
	labelStyle := styles.BlurredStyle
	border := styles.BlurredBorderStyle
	if focused {
		labelStyle = styles.FocusedStyle
		border = styles.FocusedBorderStyle
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(label),
		border.Render(input),
	)
}

func (m *Model) renderSubmit() string {
	label := "Provision"
	if m.submitting {
		label = "Provisioning..."
	}

	if m.focused == fieldSubmit {
		return styles.ButtonActiveStyle.Render(label)
	}
	return styles.ButtonInactiveStyle.Render(label)
}

func (m *Model) renderResult() string {
	lines := []string{
		styles.SuccessTextStyle.Render("Credentials provisioned"),
		fmt.Sprintf("Login ID:  %s", m.lastResult.LoginID),
		fmt.Sprintf("Email:     %s", m.lastResult.Email),
		fmt.Sprintf("Reseller:  %s", m.lastResult.ResellerID),
	}
	return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
