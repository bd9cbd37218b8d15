package app

import (
	"time"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/models"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/provisioning"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// ResellersLoadedMsg contains the fetched reseller list.
type ResellersLoadedMsg struct {
	Resellers []models.Reseller
}

// DomainsAggregatedMsg contains aggregated summaries for a reseller's domains.
type DomainsAggregatedMsg struct {
	Reseller  string
	Summaries []models.DomainSummary
}

// CallHistoryLoadedMsg contains a domain's monthly call series.
type CallHistoryLoadedMsg struct {
	Domain  string
	Buckets []models.CallHistoryBucket
}

// ProvisionedMsg contains the result of a completed provisioning run.
type ProvisionedMsg struct {
	Result *provisioning.Result
}

// StatsLoadedMsg contains loaded statistics.
type StatsLoadedMsg struct {
	Stats services.StatsEvent
}

// SelectResellerMsg requests aggregation of a reseller's domains.
type SelectResellerMsg struct {
	Reseller string
}

// SelectDomainMsg requests call history for a domain.
type SelectDomainMsg struct {
	Domain string
}

// ProvisionRequestMsg requests a credential provisioning run.
type ProvisionRequestMsg struct {
	Email       string
	Password    string
	ResellerID  string
	AccessToken string
}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct {
	Resource string // "all", "resellers", "domains", "history"
}

// RefreshHistoryMsg requests call history for a domain over the last
// Months calendar months.
type RefreshHistoryMsg struct {
	Domain string
	Months int
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
