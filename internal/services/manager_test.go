package services

import (
	"context"
	"testing"
	"time"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/models"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/services/callhistory"
)

func TestSubscribeReceivesBroadcast(t *testing.T) {
	m := &Manager{}

	ch, cmd := m.Subscribe()
	if cmd == nil {
		t.Fatal("Subscribe should return a wait command")
	}

	want := ResellersLoadedEvent{
		Resellers: []models.Reseller{{ID: "r1", Name: "Acme Telecom"}},
	}
	m.broadcast(want)

	select {
	case got := <-ch:
		event, ok := got.(ResellersLoadedEvent)
		if !ok {
			t.Fatalf("unexpected event type %T", got)
		}
		if len(event.Resellers) != 1 || event.Resellers[0].ID != "r1" {
			t.Errorf("unexpected event payload: %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestBroadcastSkipsFullSubscriber(t *testing.T) {
	m := &Manager{}

	ch, _ := m.Subscribe()
	for i := 0; i < cap(ch)+10; i++ {
		// Must not block even when the subscriber stops draining.
		m.broadcast(ErrorEvent{Service: "listing"})
	}

	if len(ch) != cap(ch) {
		t.Errorf("expected channel to be full at %d, got %d", cap(ch), len(ch))
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	m := &Manager{}

	ch, _ := m.Subscribe()
	m.Unsubscribe(ch)

	if _, open := <-ch; open {
		t.Error("expected channel to be closed after Unsubscribe")
	}

	// Broadcasting after unsubscribe must not panic on the closed channel.
	m.broadcast(ErrorEvent{Service: "listing"})
}

func TestGetStats(t *testing.T) {
	m := &Manager{
		resellerCount:     3,
		domainCount:       12,
		incompleteDomains: 2,
	}

	stats := m.GetStats()
	if stats.ResellerCount != 3 || stats.DomainCount != 12 || stats.IncompleteDomains != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

// fakeCDRAPI records the window it was queried with.
type fakeCDRAPI struct {
	start, end time.Time
}

func (f *fakeCDRAPI) CallHistory(_ context.Context, _ string, start, end time.Time) ([]models.CallRecord, error) {
	f.start, f.end = start, end
	return nil, nil
}

func TestLoadCallHistoryMonthsUsesCalendarWindow(t *testing.T) {
	api := &fakeCDRAPI{}
	m := &Manager{callhistory: callhistory.New(api)}
	ch, _ := m.Subscribe()

	m.LoadCallHistoryMonths(context.Background(), "alpha.service", 3)

	select {
	case got := <-ch:
		event, ok := got.(CallHistoryEvent)
		if !ok {
			t.Fatalf("unexpected event type %T", got)
		}
		if event.Domain != "alpha.service" {
			t.Errorf("unexpected domain %q", event.Domain)
		}
	default:
		t.Fatal("expected a CallHistoryEvent broadcast")
	}

	// Three calendar months back, not a fixed day count.
	if days := api.end.Sub(api.start).Hours() / 24; days < 85 || days > 95 {
		t.Errorf("expected roughly a three month window, got %.1f days", days)
	}
	if h, min, sec := api.start.Clock(); h != 0 || min != 0 || sec != 0 {
		t.Errorf("expected window start at midnight, got %v", api.start)
	}
	if h, min, sec := api.end.Clock(); h != 23 || min != 59 || sec != 59 {
		t.Errorf("expected window end at 23:59:59, got %v", api.end)
	}
}

func TestWaitForEventDeliversNext(t *testing.T) {
	ch := make(chan ServiceEvent, 1)
	ch <- StatsEvent{ResellerCount: 1}

	msg := WaitForEvent(ch)()
	stats, ok := msg.(StatsEvent)
	if !ok {
		t.Fatalf("unexpected message type %T", msg)
	}
	if stats.ResellerCount != 1 {
		t.Errorf("unexpected stats event: %+v", stats)
	}
}
