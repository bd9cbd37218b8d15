// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/config"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/db"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/logger"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/models"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/netsapiens"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/provisioning"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/secrets"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/services/aggregate"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/services/callhistory"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/services/listing"
)

type (
	// ResellersLoadedEvent is emitted when the reseller list has been fetched.
	ResellersLoadedEvent struct {
		Resellers []models.Reseller
	}

	// DomainsAggregatedEvent is emitted when an aggregation run over a
	// reseller's domains completes. Summaries may carry unavailable fields.
	DomainsAggregatedEvent struct {
		Reseller  string
		Summaries []models.DomainSummary
	}

	// CallHistoryEvent is emitted when a domain's monthly call series is ready.
	CallHistoryEvent struct {
		Domain  string
		Buckets []models.CallHistoryBucket
	}

	// ProvisionedEvent is emitted when a credential provisioning run completes.
	ProvisionedEvent struct {
		Result *provisioning.Result
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}

	// StatsEvent is emitted when global statistics change.
	StatsEvent struct {
		ResellerCount     int
		DomainCount       int
		IncompleteDomains int
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (ResellersLoadedEvent) isServiceEvent()   {}
func (DomainsAggregatedEvent) isServiceEvent() {}
func (CallHistoryEvent) isServiceEvent()       {}
func (ProvisionedEvent) isServiceEvent()       {}
func (ErrorEvent) isServiceEvent()             {}
func (StatsEvent) isServiceEvent()             {}

// Manager orchestrates services and event routing.
type Manager struct {
	mu           sync.RWMutex
	client       *netsapiens.Client
	tokens       *secrets.Provider
	listing      *listing.Service
	aggregate    *aggregate.Service
	callhistory  *callhistory.Service
	provisioning *provisioning.Service
	database     *db.DB
	subscribers  []chan<- ServiceEvent

	resellerCount     int
	domainCount       int
	incompleteDomains int
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{}

	var err error
	if cfg.APITokenFile != "" {
		m.tokens, err = secrets.NewFromFile(cfg.APITokenFile)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize token source: %w", err)
		}
	} else {
		m.tokens = secrets.NewStatic(cfg.APIToken)
	}

	m.client = netsapiens.New(netsapiens.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
	}, m.tokens)

	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.listing = listing.New(m.client)
	m.aggregate = aggregate.New(m.client, cfg.MaxConcurrent)
	m.callhistory = callhistory.New(m.client)
	m.provisioning = provisioning.New(m.database)

	return m, nil
}

// LoadResellers fetches the reseller list and broadcasts the result.
func (m *Manager) LoadResellers(ctx context.Context) {
	resellers, err := m.listing.ListResellers(ctx)
	if err != nil {
		m.broadcast(ErrorEvent{Service: "listing", Error: err})
		return
	}

	m.mu.Lock()
	m.resellerCount = len(resellers)
	m.mu.Unlock()

	m.broadcast(ResellersLoadedEvent{Resellers: resellers})
	m.broadcast(m.GetStats())
}

// AggregateReseller lists a reseller's domains, aggregates summaries for
// each, and broadcasts the combined result. A run whose summaries carry
// unavailable fields raises a desktop notification.
func (m *Manager) AggregateReseller(ctx context.Context, reseller string) {
	domains, err := m.listing.ListDomains(ctx, reseller)
	if err != nil {
		m.broadcast(ErrorEvent{Service: "listing", Error: err})
		return
	}

	summaries := m.aggregate.AggregateAll(ctx, domains)

	incomplete := 0
	for _, s := range summaries {
		if !s.Complete() {
			incomplete++
		}
	}

	m.mu.Lock()
	m.domainCount = len(summaries)
	m.incompleteDomains = incomplete
	m.mu.Unlock()

	if incomplete > 0 {
		title := fmt.Sprintf("Partial data: %s", reseller)
		body := fmt.Sprintf("%d of %d domains have unavailable counts", incomplete, len(summaries))
		_ = beeep.Notify(title, body, "")
		logger.Warn("aggregation run finished with unavailable counts",
			"reseller", reseller, "incomplete", incomplete, "domains", len(summaries))
	}

	m.broadcast(DomainsAggregatedEvent{Reseller: reseller, Summaries: summaries})
	m.broadcast(m.GetStats())
}

// LoadCallHistory bucketizes a domain's calls over the given range and
// broadcasts the series. Zero start and end select the default lookback.
func (m *Manager) LoadCallHistory(ctx context.Context, domain string, start, end time.Time) {
	buckets, err := m.callhistory.Bucketize(ctx, domain, start, end)
	if err != nil {
		m.broadcast(ErrorEvent{Service: "callhistory", Error: err})
		return
	}
	m.broadcast(CallHistoryEvent{Domain: domain, Buckets: buckets})
}

// LoadCallHistoryMonths bucketizes a domain's calls over the last n
// calendar months and broadcasts the series.
func (m *Manager) LoadCallHistoryMonths(ctx context.Context, domain string, months int) {
	buckets, err := m.callhistory.BucketizeMonths(ctx, domain, months)
	if err != nil {
		m.broadcast(ErrorEvent{Service: "callhistory", Error: err})
		return
	}
	m.broadcast(CallHistoryEvent{Domain: domain, Buckets: buckets})
}

// Provision runs the credential flow and broadcasts the outcome.
func (m *Manager) Provision(ctx context.Context, email, password, resellerID, accessToken string) {
	result, err := m.provisioning.Provision(ctx, email, password, resellerID, accessToken)
	if err != nil {
		m.broadcast(ErrorEvent{Service: "provisioning", Error: err})
		return
	}
	m.broadcast(ProvisionedEvent{Result: result})
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// GetStats returns aggregated statistics.
func (m *Manager) GetStats() StatsEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return StatsEvent{
		ResellerCount:     m.resellerCount,
		DomainCount:       m.domainCount,
		IncompleteDomains: m.incompleteDomains,
	}
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if err := m.tokens.Close(); err != nil {
		errs = append(errs, err)
	}

	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
