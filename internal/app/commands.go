package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadResellersCmd runs the reseller fetch; results arrive via the
// service event subscription.
func loadResellersCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		mgr.LoadResellers(context.Background())
		return StopLoadingMsg{Resource: "resellers"}
	}
}

// aggregateResellerCmd runs an aggregation pass over a reseller's domains.
func aggregateResellerCmd(mgr *services.Manager, reseller string) tea.Cmd {
	return func() tea.Msg {
		mgr.AggregateReseller(context.Background(), reseller)
		return StopLoadingMsg{Resource: "domains"}
	}
}

// loadCallHistoryCmd fetches and bucketizes a domain's call history over
// the default lookback window.
func loadCallHistoryCmd(mgr *services.Manager, domain string) tea.Cmd {
	return func() tea.Msg {
		mgr.LoadCallHistory(context.Background(), domain, time.Time{}, time.Time{})
		return StopLoadingMsg{Resource: "history"}
	}
}

// loadCallHistoryMonthsCmd fetches a domain's call history over the last
// n calendar months.
func loadCallHistoryMonthsCmd(mgr *services.Manager, domain string, months int) tea.Cmd {
	return func() tea.Msg {
		mgr.LoadCallHistoryMonths(context.Background(), domain, months)
		return StopLoadingMsg{Resource: "history"}
	}
}

// provisionCmd runs the credential provisioning flow.
func provisionCmd(mgr *services.Manager, email, password, resellerID, accessToken string) tea.Cmd {
	return func() tea.Msg {
		mgr.Provision(context.Background(), email, password, resellerID, accessToken)
		return StopLoadingMsg{Resource: "provision"}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationWarning,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}
