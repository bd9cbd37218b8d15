package app

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/models"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/services"
)

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestTabIDString(t *testing.T) {
	tests := []struct {
		tab  TabID
		want string
	}{
		{TabResellers, "Resellers"},
		{TabDomains, "Domains"},
		{TabCallHistory, "Call History"},
		{TabProvision, "Provision"},
		{TabID(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.tab.String(); got != tt.want {
			t.Errorf("TabID(%d).String() = %q, want %q", tt.tab, got, tt.want)
		}
	}
}

func TestNumberKeysSwitchTabs(t *testing.T) {
	m := NewModel(nil)

	tests := []struct {
		key  rune
		want TabID
	}{
		{'2', TabDomains},
		{'3', TabCallHistory},
		{'4', TabProvision},
		{'1', TabResellers},
	}

	for _, tt := range tests {
		m.Update(keyMsg(tt.key))
		if m.GetActiveTab() != tt.want {
			t.Errorf("key %q: expected tab %v, got %v", tt.key, tt.want, m.GetActiveTab())
		}
	}
}

func TestTabKeyCyclesForward(t *testing.T) {
	m := NewModel(nil)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.GetActiveTab() != TabDomains {
		t.Errorf("expected Domains after tab, got %v", m.GetActiveTab())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.GetActiveTab() != TabResellers {
		t.Errorf("expected Resellers after shift+tab, got %v", m.GetActiveTab())
	}
}

func TestTabKeyIgnoredOnProvisionTab(t *testing.T) {
	m := NewModel(nil)
	m.activeTab = TabProvision

	// The provision form uses tab to move between fields.
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.GetActiveTab() != TabProvision {
		t.Errorf("expected to stay on Provision, got %v", m.GetActiveTab())
	}
}

func TestHelpToggle(t *testing.T) {
	m := NewModel(nil)

	m.Update(keyMsg('?'))
	if !m.showHelp {
		t.Error("expected help shown after ?")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if m.showHelp {
		t.Error("expected help hidden after esc")
	}
}

func TestWindowSizeMakesModelReady(t *testing.T) {
	m := NewModel(nil)
	if m.IsReady() {
		t.Fatal("model must not be ready before a window size arrives")
	}

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if !m.IsReady() {
		t.Error("expected model ready after window size")
	}
}

func TestServiceEventsUpdateState(t *testing.T) {
	m := NewModel(nil)

	m.handleServiceEvent(services.ResellersLoadedEvent{
		Resellers: []models.Reseller{{ID: "r1", Name: "Acme"}},
	})
	if len(m.state.GetResellers()) != 1 {
		t.Error("expected resellers recorded in state")
	}

	m.handleServiceEvent(services.DomainsAggregatedEvent{
		Reseller:  "Acme",
		Summaries: []models.DomainSummary{{Domain: models.Domain{Name: "alpha.service"}}},
	})
	if m.state.GetSelectedReseller() != "Acme" {
		t.Error("expected selected reseller recorded in state")
	}

	m.handleServiceEvent(services.StatsEvent{ResellerCount: 1})
	if stats := m.state.GetStats(); stats == nil || stats.ResellerCount != 1 {
		t.Error("expected stats recorded in state")
	}
}

func TestIncompleteAggregationRaisesWarning(t *testing.T) {
	m := NewModel(nil)

	// A summary with no valid counters is incomplete.
	cmd := m.handleServiceEvent(services.DomainsAggregatedEvent{
		Reseller: "Acme",
		Summaries: []models.DomainSummary{
			{Domain: models.Domain{Name: "alpha.service"}},
		},
	})
	if cmd == nil {
		t.Fatal("expected commands from the aggregation event")
	}

	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected a batch with a warning, got %T", cmd())
	}

	var warning *AddNotificationMsg
	var data *DomainsAggregatedMsg
	for _, c := range batch {
		switch msg := c().(type) {
		case AddNotificationMsg:
			warning = &msg
		case DomainsAggregatedMsg:
			data = &msg
		}
	}
	if data == nil {
		t.Error("expected the aggregated data delivered alongside the warning")
	}
	if warning == nil {
		t.Fatal("expected a warning notification in the batch")
	}
	if warning.Type != NotificationWarning || !strings.Contains(warning.Message, "unavailable") {
		t.Errorf("unexpected notification: %+v", warning)
	}
}

func TestCompleteAggregationRaisesNoWarning(t *testing.T) {
	m := NewModel(nil)

	cmd := m.handleServiceEvent(services.DomainsAggregatedEvent{
		Reseller: "Acme",
		Summaries: []models.DomainSummary{{
			Domain:                 models.Domain{Name: "alpha.service"},
			PBXUserCount:           models.NewCount(1),
			TotalDevices:           models.NewCount(2),
			TotalMeetingRooms:      models.NewCount(1),
			CallQueueCount:         models.NewCount(0),
			AutoAttendantCount:     models.NewCount(0),
			VoicemailTranscription: "yes",
		}},
	})
	if cmd == nil {
		t.Fatal("expected a command from the aggregation event")
	}
	if _, ok := cmd().(DomainsAggregatedMsg); !ok {
		t.Fatalf("expected plain data delivery for complete summaries, got %T", cmd())
	}
}

func TestErrorEventBecomesNotification(t *testing.T) {
	m := NewModel(nil)

	cmd := m.handleServiceEvent(services.ErrorEvent{
		Service: "listing",
		Error:   errors.New("boom"),
	})
	if cmd == nil {
		t.Fatal("expected a notification command")
	}

	msg, ok := cmd().(AddNotificationMsg)
	if !ok {
		t.Fatalf("expected AddNotificationMsg, got %T", cmd())
	}
	if msg.Type != NotificationError || !strings.Contains(msg.Message, "boom") {
		t.Errorf("unexpected notification: %+v", msg)
	}
}

func TestViewRendersPlaceholderTabs(t *testing.T) {
	m := NewModel(nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	if !strings.Contains(view, "Resellers") {
		t.Error("expected navbar in view")
	}
	if !strings.Contains(view, "not yet implemented") {
		t.Error("expected placeholder for unset tabs")
	}
}
