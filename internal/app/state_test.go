package app

import (
	"testing"
	"time"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/models"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState()

	if !s.Loading.Initial {
		t.Error("expected initial loading to start true")
	}
	if s.AnyLoading() != true {
		t.Error("AnyLoading should reflect initial loading")
	}
	if len(s.GetResellers()) != 0 {
		t.Error("expected empty reseller list")
	}
}

func TestSetLoading(t *testing.T) {
	s := NewState()
	s.SetLoading("initial", false)

	tests := []struct {
		resource string
	}{
		{"resellers"},
		{"domains"},
		{"history"},
		{"provision"},
	}

	for _, tt := range tests {
		t.Run(tt.resource, func(t *testing.T) {
			s.SetLoading(tt.resource, true)
			if !s.AnyLoading() {
				t.Errorf("expected loading after setting %s", tt.resource)
			}
			s.SetLoading(tt.resource, false)
			if s.AnyLoading() {
				t.Errorf("expected idle after clearing %s", tt.resource)
			}
		})
	}
}

func TestSetResellersCopiesOnRead(t *testing.T) {
	s := NewState()
	s.SetResellers([]models.Reseller{{ID: "r1", Name: "Acme"}})

	got := s.GetResellers()
	got[0].Name = "mutated"

	if s.GetResellers()[0].Name != "Acme" {
		t.Error("GetResellers must return a copy")
	}
	if s.GetLastUpdated().IsZero() {
		t.Error("expected LastUpdated to be set")
	}
}

func TestSummariesTrackSelectedReseller(t *testing.T) {
	s := NewState()
	s.SetSummaries("Acme Telecom", []models.DomainSummary{
		{Domain: models.Domain{Name: "alpha.service"}},
	})

	if s.GetSelectedReseller() != "Acme Telecom" {
		t.Errorf("unexpected selected reseller %q", s.GetSelectedReseller())
	}
	if len(s.GetSummaries()) != 1 {
		t.Error("expected one summary")
	}
}

func TestBucketsTrackSelectedDomain(t *testing.T) {
	s := NewState()
	s.SetBuckets("alpha.service", []models.CallHistoryBucket{{Month: "2024-01", Count: 3}})

	if s.GetSelectedDomain() != "alpha.service" {
		t.Errorf("unexpected selected domain %q", s.GetSelectedDomain())
	}
	if len(s.GetBuckets()) != 1 {
		t.Error("expected one bucket")
	}
}

func TestNotificationLifecycle(t *testing.T) {
	s := NewState()

	id := s.AddNotification(NotificationInfo, "hello", time.Minute)
	if id == "" {
		t.Fatal("expected a notification ID")
	}
	if len(s.GetNotifications()) != 1 {
		t.Fatal("expected one notification")
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Error("expected notification removed")
	}
}

func TestExpiredNotificationsAreHidden(t *testing.T) {
	s := NewState()
	s.AddNotification(NotificationSuccess, "done", time.Nanosecond)

	time.Sleep(5 * time.Millisecond)

	if len(s.GetNotifications()) != 0 {
		t.Error("expected expired notification to be hidden")
	}

	s.ClearExpiredNotifications()
	s.mu.RLock()
	remaining := len(s.notifications)
	s.mu.RUnlock()
	if remaining != 0 {
		t.Error("expected expired notification to be purged")
	}
}

func TestNotificationCap(t *testing.T) {
	s := NewState()
	for i := 0; i < 15; i++ {
		s.AddNotification(NotificationInfo, "n", 0)
	}

	if got := len(s.GetNotifications()); got != 10 {
		t.Errorf("expected notifications capped at 10, got %d", got)
	}
}

func TestLoadingNotification(t *testing.T) {
	s := NewState()

	s.SetLoadingNotification("Loading...")
	s.SetLoadingNotification("Still loading...")

	notifications := s.GetNotifications()
	if len(notifications) != 1 {
		t.Fatalf("expected a single loading notification, got %d", len(notifications))
	}
	if notifications[0].Message != "Still loading..." {
		t.Errorf("expected updated message, got %q", notifications[0].Message)
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("expected loading notification cleared")
	}
}

func TestNotificationTypeString(t *testing.T) {
	tests := []struct {
		typ  NotificationType
		want string
	}{
		{NotificationSuccess, "success"},
		{NotificationError, "error"},
		{NotificationWarning, "warning"},
		{NotificationInfo, "info"},
		{NotificationType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("NotificationType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
