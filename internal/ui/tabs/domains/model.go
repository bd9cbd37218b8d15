// Package domains provides the per-domain summary tab.
package domains

import (
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

// keyMap defines the key bindings specific to the domains tab.
type keyMap struct {
	Enter   key.Binding
	Refresh key.Binding
	Filter  key.Binding
	Escape  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "call history"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "re-aggregate"),
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

// Model represents the domains tab state.
type Model struct {
	state  *app.State
	width  int
	height int
	keys   keyMap

	table       table.Model
	filterInput textinput.Model
	filtering   bool

	reseller  string
	summaries []models.DomainSummary
	filtered  []models.DomainSummary
	loading   bool
	lastSync  time.Time
}

// New creates a new domains tab model.
func New(state *app.State) *Model {
	filterInput := textinput.New()
	filterInput.Placeholder = "filter by domain"
	filterInput.CharLimit = 64
	filterInput.Width = 30

	columns := []table.Column{
		{Title: "Domain", Width: 26},
		{Title: "Type", Width: 10},
		{Title: "Users", Width: 7},
		{Title: "Devices", Width: 8},
		{Title: "Rooms", Width: 7},
		{Title: "Queues", Width: 7},
		{Title: "AAs", Width: 5},
		{Title: "STIR", Width: 5},
		{Title: "MoH", Width: 5},
		{Title: "VM Transcribe", Width: 13},
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

// Init initializes the domains tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the domains tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	m.syncFromState()

	switch msg := msg.(type) {
	case app.DomainsAggregatedMsg:
		m.reseller = msg.Reseller
		m.summaries = msg.Summaries
		m.loading = false
		m.applyFilter()

	case app.StartLoadingMsg:
		if msg.Resource == "domains" {
			m.loading = true
		}

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// syncFromState pulls the latest aggregation results from the shared
// state. Results that arrived while another tab was active land in the
// state only, so the tab cannot rely on routed messages alone.
func (m *Model) syncFromState() {
	updated := m.state.GetLastUpdated()
	if !updated.After(m.lastSync) {
		return
	}
	m.lastSync = updated
	if reseller := m.state.GetSelectedReseller(); reseller != "" {
		m.reseller = reseller
		m.summaries = m.state.GetSummaries()
		m.loading = false
		m.applyFilter()
	}
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
			domain := m.filtered[idx].Name
			return m, func() tea.Msg {
				return app.SelectDomainMsg{Domain: domain}
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.reseller != "" {
			return m, func() tea.Msg {
				return app.RefreshMsg{Resource: "domains"}
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// applyFilter narrows the table to domains whose name contains the
// filter text, case-insensitively, then rebuilds the rows. Counts render
// as "N/A" when the upstream fetch for that field failed.
func (m *Model) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))

	if query == "" {
		m.filtered = m.summaries
	} else {
		m.filtered = make([]models.DomainSummary, 0, len(m.summaries))
		for _, s := range m.summaries {
			if strings.Contains(strings.ToLower(s.Name), query) {
				m.filtered = append(m.filtered, s)
			}
		}
	}

	rows := make([]table.Row, 0, len(m.filtered))
	for _, s := range m.filtered {
		rows = append(rows, table.Row{
			s.Name,
			s.DomainType,
			s.PBXUserCount.String(),
			s.TotalDevices.String(),
			s.TotalMeetingRooms.String(),
			s.CallQueueCount.String(),
			s.AutoAttendantCount.String(),
			yesNo(s.HasStir()),
			yesNo(s.HasMusicOnHold()),
			s.VoicemailTranscription,
		})
	}
	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// SetSize sets the available size for the domains tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-8, 3))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Enter, m.keys.Refresh}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Enter, m.keys.Refresh},
	}
}
