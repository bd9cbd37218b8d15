package provision

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/app"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/provisioning"
)

func filledModel() *Model {
	m := New(app.NewState())
	m.emailInput.SetValue("admin@example.com")
	m.passwordInput.SetValue("hunter2")
	m.resellerInput.SetValue("reseller-9")
	m.tokenInput.SetValue("nss_token")
	m.focused = fieldSubmit
	return m
}

func TestSubmitEmitsProvisionRequest(t *testing.T) {
	m := filledModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command from submit")
	}

	msg, ok := cmd().(app.ProvisionRequestMsg)
	if !ok {
		t.Fatalf("expected ProvisionRequestMsg, got %T", cmd())
	}
	if msg.Email != "admin@example.com" || msg.ResellerID != "reseller-9" {
		t.Errorf("unexpected request payload: %+v", msg)
	}
	if !m.submitting {
		t.Error("expected submitting state after submit")
	}
}

func TestSubmitRejectsIncompleteForm(t *testing.T) {
	m := filledModel()
	m.tokenInput.SetValue("")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command for an incomplete form")
	}
	if m.errorText == "" {
		t.Error("expected a validation error")
	}
}

func TestEnterOnFieldAdvancesFocus(t *testing.T) {
	m := New(app.NewState())

	tab, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = tab.(*Model)

	if m.focused != fieldPassword {
		t.Errorf("expected focus on password, got %v", m.focused)
	}
}

func TestTabCyclesFocus(t *testing.T) {
	m := New(app.NewState())

	for i := 0; i < fieldCount; i++ {
		tab, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = tab.(*Model)
	}

	if m.focused != fieldEmail {
		t.Errorf("expected focus to wrap back to email, got %v", m.focused)
	}
}

func TestProvisionedResultClearsForm(t *testing.T) {
	m := filledModel()
	m.submitting = true

	tab, _ := m.Update(app.ProvisionedMsg{Result: &provisioning.Result{
		LoginID:    "uuid-1",
		Email:      "admin@example.com",
		ResellerID: "reseller-9",
	}})
	m = tab.(*Model)

	if m.submitting {
		t.Error("expected submitting to clear")
	}
	if m.emailInput.Value() != "" || m.tokenInput.Value() != "" {
		t.Error("expected form to clear after success")
	}

	m.SetSize(100, 30)
	if !strings.Contains(m.View(), "uuid-1") {
		t.Error("expected login ID in result card")
	}
}
