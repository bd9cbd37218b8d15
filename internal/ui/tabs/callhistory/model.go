// Package callhistory provides the monthly call volume tab.
package callhistory

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/app"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/models"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/services"
)

// keyMap defines the key bindings specific to the call history tab.
type keyMap struct {
	ToggleRange key.Binding
	Refresh     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ToggleRange: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle time range"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

// Model represents the call history tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	width    int
	height   int
	keys     keyMap

	domain    string
	buckets   []models.CallHistoryBucket
	histRange models.HistoryRange
	useRange  bool
	loading   bool
	lastSync  time.Time
}

// New creates a new call history tab model.
func New(state *app.State, svc *services.Manager) *Model {
	return &Model{
		state:     state,
		services:  svc,
		keys:      defaultKeyMap(),
		histRange: models.HistoryRange12Months,
	}
}

// Init initializes the call history tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the call history tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	m.syncFromState()

	switch msg := msg.(type) {
	case app.CallHistoryLoadedMsg:
		m.domain = msg.Domain
		m.buckets = msg.Buckets
		m.loading = false

	case app.StartLoadingMsg:
		if msg.Resource == "history" {
			m.loading = true
		}

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// syncFromState pulls the latest monthly series from the shared state.
// Results that arrived while another tab was active land in the state
// only, so the tab cannot rely on routed messages alone.
func (m *Model) syncFromState() {
	updated := m.state.GetLastUpdated()
	if !updated.After(m.lastSync) {
		return
	}
	m.lastSync = updated
	if domain := m.state.GetSelectedDomain(); domain != "" {
		buckets := m.state.GetBuckets()
		if len(buckets) > 0 || m.domain != domain {
			m.domain = domain
			m.buckets = buckets
			m.loading = false
		}
	}
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleRange):
		if m.domain == "" {
			return m, nil
		}
		m.histRange = m.histRange.Next()
		m.useRange = true
		m.loading = true
		return m, m.loadCmd()

	case key.Matches(msg, m.keys.Refresh):
		if m.domain == "" {
			return m, nil
		}
		m.loading = true
		return m, m.loadCmd()
	}

	return m, nil
}

// loadCmd refetches the series for the current domain and range.
func (m *Model) loadCmd() tea.Cmd {
	domain := m.domain
	months := m.histRange.Months()
	useRange := m.useRange
	return func() tea.Msg {
		if useRange {
			return app.RefreshHistoryMsg{Domain: domain, Months: months}
		}
		return app.RefreshMsg{Resource: "history"}
	}
}

// SetSize sets the available size for the call history tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.ToggleRange, m.keys.Refresh}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.ToggleRange, m.keys.Refresh},
	}
}
