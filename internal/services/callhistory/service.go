// Package callhistory groups call detail records into calendar-month
// buckets for charting.
package callhistory

import (
	"context"
	"sort"
	"time"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/logger"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/models"
)

// DefaultRangeDays is the lookback window used when the caller supplies
// no explicit range.
const DefaultRangeDays = 365

// API is the slice of the upstream client the bucketizer consumes.
type API interface {
	CallHistory(ctx context.Context, domain string, start, end time.Time) ([]models.CallRecord, error)
}

// Service fetches call history and reduces it to a monthly count series.
type Service struct {
	api API

	// now is swapped out in tests to pin the default range.
	now func() time.Time
}

// New creates a call history service.
func New(api API) *Service {
	return &Service{api: api, now: time.Now}
}

// DefaultRange returns the window used when no range is given: start is
// 365 days ago at 00:00:00, end is today at 23:59:59.
func (s *Service) DefaultRange() (start, end time.Time) {
	today := s.now()
	start = today.AddDate(0, 0, -DefaultRangeDays)
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	end = time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, today.Location())
	return start, end
}

// Bucketize fetches the call records for domain over [start, end] and
// groups them into per-month counts sorted ascending. Zero start and end
// select the default range. Records without a parseable timestamp are
// dropped and logged; months without calls are absent from the result.
func (s *Service) Bucketize(ctx context.Context, domain string, start, end time.Time) ([]models.CallHistoryBucket, error) {
	if start.IsZero() && end.IsZero() {
		start, end = s.DefaultRange()
	}

	records, err := s.api.CallHistory(ctx, domain, start, end)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	dropped := 0
	for _, r := range records {
		ts, err := r.Timestamp()
		if err != nil {
			dropped++
			continue
		}
		counts[ts.Format("2006-01")]++
	}
	if dropped > 0 {
		logger.Warn("dropped call records without usable timestamps",
			"domain", domain, "dropped", dropped, "total", len(records))
	}

	buckets := make([]models.CallHistoryBucket, 0, len(counts))
	for month, n := range counts {
		buckets = append(buckets, models.CallHistoryBucket{Month: month, Count: n})
	}
	// "2006-01" keys sort chronologically as strings.
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Month < buckets[j].Month
	})

	return buckets, nil
}

// BucketizeMonths is Bucketize over the last n calendar months ending now.
func (s *Service) BucketizeMonths(ctx context.Context, domain string, months int) ([]models.CallHistoryBucket, error) {
	today := s.now()
	start := today.AddDate(0, -months, 0)
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	end := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, today.Location())
	return s.Bucketize(ctx, domain, start, end)
}
