package domains

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/app"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/models"
)

func testSummaries() []models.DomainSummary {
	return []models.DomainSummary{
		{
			Domain: models.Domain{
				Name:       "alpha.service",
				DomainType: "Standard",
				StirEnabled: "yes",
			},
			PBXUserCount:           models.NewCount(12),
			TotalDevices:           models.NewCount(24),
			TotalMeetingRooms:      models.NewCount(12),
			CallQueueCount:         models.NewCount(2),
			AutoAttendantCount:     models.NewCount(1),
			VoicemailTranscription: "yes",
		},
		{
			Domain: models.Domain{Name: "beta.service", DomainType: "Standard"},
			PBXUserCount:           models.NewCount(3),
			TotalDevices:           models.Count{},
			TotalMeetingRooms:      models.NewCount(3),
			CallQueueCount:         models.NewCount(0),
			AutoAttendantCount:     models.NewCount(0),
			VoicemailTranscription: "no",
		},
	}
}

func TestAggregatedSummariesPopulateTable(t *testing.T) {
	m := New(app.NewState())

	tab, _ := m.Update(app.DomainsAggregatedMsg{Reseller: "Acme Telecom", Summaries: testSummaries()})
	m = tab.(*Model)

	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "alpha.service" {
		t.Errorf("unexpected first row: %v", rows[0])
	}
	// A failed device fetch renders as the unavailable sentinel, not zero.
	if rows[1][3] != models.Unavailable {
		t.Errorf("expected %q for failed device count, got %q", models.Unavailable, rows[1][3])
	}
	// Sibling fields of the same domain keep their values.
	if rows[1][2] != "3" {
		t.Errorf("expected user count to survive device failure, got %q", rows[1][2])
	}
}

func TestFilterNarrowsByDomainName(t *testing.T) {
	m := New(app.NewState())
	tab, _ := m.Update(app.DomainsAggregatedMsg{Reseller: "Acme Telecom", Summaries: testSummaries()})
	m = tab.(*Model)

	tab, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = tab.(*Model)
	tab, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'B'}})
	m = tab.(*Model)

	rows := m.table.Rows()
	if len(rows) != 1 || rows[0][0] != "beta.service" {
		t.Fatalf("expected only beta.service, got %v", rows)
	}

	// Escape clears the filter and restores the full set.
	tab, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = tab.(*Model)
	if len(m.table.Rows()) != 2 {
		t.Error("expected filter cleared by escape")
	}
}

func TestEnterSelectsDomain(t *testing.T) {
	m := New(app.NewState())
	tab, _ := m.Update(app.DomainsAggregatedMsg{Reseller: "Acme Telecom", Summaries: testSummaries()})
	m = tab.(*Model)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command from enter")
	}

	msg, ok := cmd().(app.SelectDomainMsg)
	if !ok {
		t.Fatalf("expected SelectDomainMsg, got %T", cmd())
	}
	if msg.Domain != "alpha.service" {
		t.Errorf("unexpected domain %q", msg.Domain)
	}
}

func TestViewShowsIncompleteWarning(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(120, 30)
	tab, _ := m.Update(app.DomainsAggregatedMsg{Reseller: "Acme Telecom", Summaries: testSummaries()})
	m = tab.(*Model)

	view := m.View()
	if !strings.Contains(view, "unavailable") {
		t.Error("expected the view to call out unavailable counts")
	}
}

func TestViewPicksUpResultsFromSharedState(t *testing.T) {
	state := app.NewState()
	m := New(state)
	m.SetSize(120, 30)

	// Aggregation finished while another tab was active, so the results
	// land in the shared state without a DomainsAggregatedMsg reaching
	// this model.
	tab, _ := m.Update(app.StartLoadingMsg{Resource: "domains"})
	m = tab.(*Model)
	state.SetSummaries("Acme Telecom", testSummaries())

	view := m.View()
	if !strings.Contains(view, "alpha.service") {
		t.Error("expected summaries from the shared state in the view")
	}
	if strings.Contains(view, "Select a reseller") {
		t.Error("expected the selection hint replaced by state data")
	}
	if m.loading {
		t.Error("expected loading cleared once state data is synced")
	}
}

func TestViewWithoutSelection(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(120, 30)

	view := m.View()
	if !strings.Contains(view, "Select a reseller") {
		t.Errorf("expected selection hint, got %q", view)
	}
}
