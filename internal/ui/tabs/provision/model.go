// Package provision provides the credential provisioning tab.
package provision

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/app"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/provisioning"
)

// formField identifies the focused element of the provisioning form.
type formField int

const (
	fieldEmail formField = iota
	fieldPassword
	fieldReseller
	fieldToken
	fieldSubmit
)

const fieldCount = 5

// keyMap defines the key bindings specific to the provision tab.
type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Clear  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear form"),
		),
	}
}

// Model represents the provision tab state.
type Model struct {
	state  *app.State
	width  int
	height int
	keys   keyMap

	emailInput    textinput.Model
	passwordInput textinput.Model
	resellerInput textinput.Model
	tokenInput    textinput.Model
	focused       formField

	submitting bool
	lastResult *provisioning.Result
	errorText  string
}

// New creates a new provision tab model.
func New(state *app.State) *Model {
	email := textinput.New()
	email.Placeholder = "admin@example.com"
	email.CharLimit = 128
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 40
	password.EchoMode = textinput.EchoPassword

	reseller := textinput.New()
	reseller.Placeholder = "reseller ID"
	reseller.CharLimit = 64
	reseller.Width = 40

	token := textinput.New()
	token.Placeholder = "upstream access token"
	token.CharLimit = 256
	token.Width = 40
	token.EchoMode = textinput.EchoPassword

	return &Model{
		state:         state,
		keys:          defaultKeyMap(),
		emailInput:    email,
		passwordInput: password,
		resellerInput: reseller,
		tokenInput:    token,
	}
}

// Init initializes the provision tab.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the provision tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case app.ProvisionedMsg:
		m.submitting = false
		m.lastResult = msg.Result
		m.errorText = ""
		m.clearForm()

	case app.StopLoadingMsg:
		if msg.Resource == "provision" {
			m.submitting = false
		}

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next):
		m.focused = (m.focused + 1) % fieldCount
		return m, m.updateFocus()

	case key.Matches(msg, m.keys.Prev):
		m.focused = (m.focused - 1 + fieldCount) % fieldCount
		return m, m.updateFocus()

	case key.Matches(msg, m.keys.Clear):
		m.clearForm()
		m.lastResult = nil
		m.errorText = ""
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.focused == fieldSubmit {
			return m, m.submit()
		}
		m.focused = (m.focused + 1) % fieldCount
		return m, m.updateFocus()
	}

	var cmd tea.Cmd
	switch m.focused {
	case fieldEmail:
		m.emailInput, cmd = m.emailInput.Update(msg)
	case fieldPassword:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	case fieldReseller:
		m.resellerInput, cmd = m.resellerInput.Update(msg)
	case fieldToken:
		m.tokenInput, cmd = m.tokenInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateFocus() tea.Cmd {
	inputs := []*textinput.Model{
		&m.emailInput, &m.passwordInput, &m.resellerInput, &m.tokenInput,
	}
	for i, input := range inputs {
		if formField(i) == m.focused {
			input.Focus()
		} else {
			input.Blur()
		}
	}
	if m.focused != fieldSubmit {
		return textinput.Blink
	}
	return nil
}

// submit validates the form and requests the provisioning run.
func (m *Model) submit() tea.Cmd {
	email := strings.TrimSpace(m.emailInput.Value())
	password := m.passwordInput.Value()
	reseller := strings.TrimSpace(m.resellerInput.Value())
	token := m.tokenInput.Value()

	if email == "" || password == "" || reseller == "" || token == "" {
		m.errorText = "All fields are required."
		return nil
	}

	m.submitting = true
	m.errorText = ""
	return func() tea.Msg {
		return app.ProvisionRequestMsg{
			Email:       email,
			Password:    password,
			ResellerID:  reseller,
			AccessToken: token,
		}
	}
}

func (m *Model) clearForm() {
	m.emailInput.SetValue("")
	m.passwordInput.SetValue("")
	m.resellerInput.SetValue("")
	m.tokenInput.SetValue("")
	m.focused = fieldEmail
	m.updateFocus()
}

// SetSize sets the available size for the provision tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Next, m.keys.Submit, m.keys.Clear}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Next, m.keys.Prev},
		{m.keys.Submit, m.keys.Clear},
	}
}
