// Package resellers provides the reseller listing tab.
package resellers

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/app"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/models"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/ui/styles"
)

// keyMap defines the key bindings specific to the resellers tab.
type keyMap struct {
	Enter  key.Binding
	Filter key.Binding
	Escape key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "show domains"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
	}
}

// Model represents the resellers tab state.
type Model struct {
	state  *app.State
	width  int
	height int
	keys   keyMap

	table       table.Model
	filterInput textinput.Model
	filtering   bool

	resellers []models.Reseller
	filtered  []models.Reseller
	lastSync  time.Time
}

// New creates a new resellers tab model.
func New(state *app.State) *Model {
	filterInput := textinput.New()
	filterInput.Placeholder = "filter by name"
	filterInput.CharLimit = 64
	filterInput.Width = 30

	columns := []table.Column{
		{Title: "ID", Width: 12},
		{Title: "Reseller", Width: 30},
		{Title: "Description", Width: 32},
		{Title: "Domains", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = styles.TableHeaderStyle
	s.Selected = styles.TableSelectedStyle
	t.SetStyles(s)

	return &Model{
		state:       state,
		keys:        defaultKeyMap(),
		table:       t,
		filterInput: filterInput,
	}
}

// Init initializes the resellers tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the resellers tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	m.syncFromState()

	switch msg := msg.(type) {
	case app.ResellersLoadedMsg:
		m.resellers = msg.Resellers
		m.applyFilter()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// syncFromState pulls the reseller list from the shared state. Results
// that arrived while another tab was active land in the state only, so
// the tab cannot rely on routed messages alone.
func (m *Model) syncFromState() {
	updated := m.state.GetLastUpdated()
	if !updated.After(m.lastSync) {
		return
	}
	m.lastSync = updated
	m.resellers = m.state.GetResellers()
	m.applyFilter()
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	if m.filtering {
		switch {
		case key.Matches(msg, m.keys.Escape):
			m.filtering = false
			m.filterInput.Blur()
			m.filterInput.SetValue("")
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.Enter):
			m.filtering = false
			m.filterInput.Blur()
			return m, nil
		}

		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Enter):
		idx := m.table.Cursor()
		if idx >= 0 && idx < len(m.filtered) {
			reseller := m.filtered[idx].Name
			return m, func() tea.Msg {
				return app.SelectResellerMsg{Reseller: reseller}
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// applyFilter narrows the table to resellers whose name contains the
// filter text, case-insensitively. Order is preserved.
func (m *Model) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))

	if query == "" {
		m.filtered = m.resellers
	} else {
		m.filtered = make([]models.Reseller, 0, len(m.resellers))
		for _, r := range m.resellers {
			if strings.Contains(strings.ToLower(r.Name), query) {
				m.filtered = append(m.filtered, r)
			}
		}
	}

	rows := make([]table.Row, 0, len(m.filtered))
	for _, r := range m.filtered {
		rows = append(rows, table.Row{
			r.ID,
			r.Name,
			r.Description,
			strconv.Itoa(r.TotalDomains),
		})
	}
	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

// SetSize sets the available size for the resellers tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-8, 3))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Enter, m.keys.Filter}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Enter, m.keys.Filter, m.keys.Escape},
	}
}
