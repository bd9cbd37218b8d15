// Package aggregate reduces per-domain detail calls into display-ready
// summary rows.
package aggregate

import (
	"context"
	"sync"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/logger"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/models"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/netsapiens"
)

// DefaultMaxConcurrent bounds how many domains are aggregated at once.
const DefaultMaxConcurrent = 5

// API is the slice of the upstream client the aggregator consumes.
type API interface {
	DomainInfo(ctx context.Context, domain string) (*models.Domain, error)
	UserCount(ctx context.Context, domain string) (int, error)
	Users(ctx context.Context, domain string) ([]netsapiens.User, error)
	CallQueues(ctx context.Context, domain string) ([]netsapiens.CallQueue, error)
	AutoAttendants(ctx context.Context, domain string) ([]netsapiens.AutoAttendant, error)
	DeviceCount(ctx context.Context, domain, user string) (int, error)
	MeetingCount(ctx context.Context, domain, user string) (int, error)
}

// Service aggregates upstream detail calls into DomainSummary records.
// Failures are contained at the smallest unit that still produces a usable
// row: a failed sub-request marks only its own counter unavailable.
type Service struct {
	api           API
	maxConcurrent int
}

// New creates an aggregation service.
func New(api API, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &Service{api: api, maxConcurrent: maxConcurrent}
}

// domainDetails holds the results of the first fan-out stage.
type domainDetails struct {
	info         *models.Domain
	infoErr      error
	users        []netsapiens.User
	usersErr     error
	count        int
	countErr     error
	queues       []netsapiens.CallQueue
	queueErr     error
	attendants   []netsapiens.AutoAttendant
	attendantErr error
}

// Aggregate produces the summary for one domain. It always returns a
// summary; counters whose source calls failed carry the unavailable
// sentinel instead of aborting the row.
func (s *Service) Aggregate(ctx context.Context, domain models.Domain) models.DomainSummary {
	details := s.fetchDetails(ctx, domain.Name)

	summary := models.DomainSummary{Domain: domain}

	if details.countErr == nil {
		summary.PBXUserCount = models.NewCount(details.count)
	} else {
		logger.Warn("user count unavailable", "domain", domain.Name, "error", details.countErr)
	}

	if details.queueErr == nil {
		summary.CallQueueCount = models.NewCount(len(details.queues))
	} else {
		logger.Warn("call queues unavailable", "domain", domain.Name, "error", details.queueErr)
	}

	if details.attendantErr == nil {
		summary.AutoAttendantCount = models.NewCount(len(details.attendants))
	} else {
		logger.Warn("auto attendants unavailable", "domain", domain.Name, "error", details.attendantErr)
	}

	if details.infoErr == nil {
		summary.VoicemailTranscription = details.info.VoicemailTranscription
		if summary.VoicemailTranscription == "" {
			summary.VoicemailTranscription = "no"
		}
	} else {
		summary.VoicemailTranscription = models.Unavailable
		logger.Warn("domain info unavailable", "domain", domain.Name, "error", details.infoErr)
	}

	if details.usersErr == nil {
		summary.TotalDevices, summary.TotalMeetingRooms = s.sumPerUser(ctx, domain.Name, details.users)
	} else {
		logger.Warn("user list unavailable", "domain", domain.Name, "error", details.usersErr)
	}

	return summary
}

// fetchDetails issues the five domain-level requests concurrently.
func (s *Service) fetchDetails(ctx context.Context, domain string) *domainDetails {
	d := &domainDetails{}

	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		d.info, d.infoErr = s.api.DomainInfo(ctx, domain)
	}()
	go func() {
		defer wg.Done()
		d.count, d.countErr = s.api.UserCount(ctx, domain)
	}()
	go func() {
		defer wg.Done()
		d.users, d.usersErr = s.api.Users(ctx, domain)
	}()
	go func() {
		defer wg.Done()
		d.queues, d.queueErr = s.api.CallQueues(ctx, domain)
	}()
	go func() {
		defer wg.Done()
		d.attendants, d.attendantErr = s.api.AutoAttendants(ctx, domain)
	}()

	wg.Wait()
	return d
}

// sumPerUser issues the device and meeting count requests for every user
// concurrently and reduces them by summation. If any single count fails
// the corresponding total is unavailable; the sibling total is unaffected.
func (s *Service) sumPerUser(ctx context.Context, domain string, users []netsapiens.User) (devices, meetings models.Count) {
	deviceCounts := make([]int, len(users))
	deviceErrs := make([]error, len(users))
	meetingCounts := make([]int, len(users))
	meetingErrs := make([]error, len(users))

	var wg sync.WaitGroup
	for i, u := range users {
		wg.Add(2)
		go func(i int, user string) {
			defer wg.Done()
			deviceCounts[i], deviceErrs[i] = s.api.DeviceCount(ctx, domain, user)
		}(i, u.ID)
		go func(i int, user string) {
			defer wg.Done()
			meetingCounts[i], meetingErrs[i] = s.api.MeetingCount(ctx, domain, user)
		}(i, u.ID)
	}
	wg.Wait()

	devices = sumIfComplete(deviceCounts, deviceErrs)
	if !devices.Valid {
		logger.Warn("device total unavailable", "domain", domain)
	}
	meetings = sumIfComplete(meetingCounts, meetingErrs)
	if !meetings.Valid {
		logger.Warn("meeting total unavailable", "domain", domain)
	}
	return devices, meetings
}

// sumIfComplete reduces counts by summation, but only when every source
// call succeeded; a partial sum would silently undercount.
func sumIfComplete(counts []int, errs []error) models.Count {
	total := 0
	for i, n := range counts {
		if errs[i] != nil {
			return models.Count{}
		}
		total += n
	}
	return models.NewCount(total)
}

// AggregateAll aggregates every domain concurrently, bounded by the
// service's concurrency limit. The result preserves the input order and
// one domain's failure never affects its siblings.
func (s *Service) AggregateAll(ctx context.Context, domains []models.Domain) []models.DomainSummary {
	summaries := make([]models.DomainSummary, len(domains))
	sem := make(chan struct{}, s.maxConcurrent)

	var wg sync.WaitGroup
	for i, d := range domains {
		wg.Add(1)
		go func(i int, d models.Domain) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			summaries[i] = s.Aggregate(ctx, d)
		}(i, d)
	}
	wg.Wait()

	return summaries
}
