// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/models"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/services"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial   bool
	Resellers bool
	Domains   bool
	History   bool
	Provision bool
}

// State holds the shared application state consumed by all tabs.
type State struct {
	mu sync.RWMutex

	Resellers        []models.Reseller
	Summaries        []models.DomainSummary
	Buckets          []models.CallHistoryBucket
	SelectedReseller string
	SelectedDomain   string
	Stats            *services.StatsEvent

	Loading LoadingState

	LastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty application state.
func NewState() *State {
	return &State{
		Resellers:     make([]models.Reseller, 0),
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case "initial":
		s.Loading.Initial = loading
	case "resellers":
		s.Loading.Resellers = loading
	case "domains":
		s.Loading.Domains = loading
	case "history":
		s.Loading.History = loading
	case "provision":
		s.Loading.Provision = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial ||
		s.Loading.Resellers ||
		s.Loading.Domains ||
		s.Loading.History ||
		s.Loading.Provision
}

// SetResellers updates the reseller list.
func (s *State) SetResellers(resellers []models.Reseller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Resellers = resellers
	s.LastUpdated = time.Now()
}

// GetResellers returns a copy of the reseller list.
func (s *State) GetResellers() []models.Reseller {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resellers := make([]models.Reseller, len(s.Resellers))
	copy(resellers, s.Resellers)
	return resellers
}

// SetSummaries replaces the domain summaries for the selected reseller.
func (s *State) SetSummaries(reseller string, summaries []models.DomainSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.SelectedReseller = reseller
	s.Summaries = summaries
	s.LastUpdated = time.Now()
}

// GetSummaries returns a copy of the domain summaries.
func (s *State) GetSummaries() []models.DomainSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]models.DomainSummary, len(s.Summaries))
	copy(summaries, s.Summaries)
	return summaries
}

// SetBuckets replaces the monthly call series for the selected domain.
func (s *State) SetBuckets(domain string, buckets []models.CallHistoryBucket) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.SelectedDomain = domain
	s.Buckets = buckets
	s.LastUpdated = time.Now()
}

// GetBuckets returns a copy of the monthly call series.
func (s *State) GetBuckets() []models.CallHistoryBucket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	buckets := make([]models.CallHistoryBucket, len(s.Buckets))
	copy(buckets, s.Buckets)
	return buckets
}

// GetSelectedReseller returns the reseller whose domains are displayed.
func (s *State) GetSelectedReseller() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.SelectedReseller
}

// GetSelectedDomain returns the domain whose call history is displayed.
func (s *State) GetSelectedDomain() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.SelectedDomain
}

// SetSelectedDomain records the domain chosen in the domains tab.
func (s *State) SetSelectedDomain(domain string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SelectedDomain = domain
}

// SetStats updates the statistics.
func (s *State) SetStats(stats services.StatsEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Stats = &stats
}

// GetStats returns the current statistics.
func (s *State) GetStats() *services.StatsEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Stats
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	notification := Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	}

	s.notifications = append(s.notifications, notification)

	// Keep only the last 10 notifications
	if len(s.notifications) > 10 {
		s.notifications = s.notifications[len(s.notifications)-10:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Clear expired inline when reading
	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}

	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  0,
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// GetLastUpdated returns the last time the state was updated.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastUpdated
}

// TimeSinceUpdate returns the duration since the last update.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.LastUpdated)
}
