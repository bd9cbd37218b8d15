// Package listing provides the reseller and domain listing service.
package listing

import (
	"context"
	"strings"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/models"
)

// API is the slice of the upstream client the listing service consumes.
type API interface {
	Resellers(ctx context.Context) ([]models.Reseller, error)
	Domains(ctx context.Context) ([]models.Domain, error)
}

// Service lists resellers and filters domains by reseller. Filtering is
// client-side over the full collection; acceptable while upstream fleets
// stay small.
type Service struct {
	api API
}

// New creates a listing service on top of the upstream client.
func New(api API) *Service {
	return &Service{api: api}
}

// ListResellers fetches the full reseller list in upstream order.
func (s *Service) ListResellers(ctx context.Context) ([]models.Reseller, error) {
	return s.api.Resellers(ctx)
}

// ListDomains fetches the full domain collection and keeps the domains
// whose reseller field case-insensitively contains resellerName,
// preserving upstream ordering. An empty resellerName matches everything.
func (s *Service) ListDomains(ctx context.Context, resellerName string) ([]models.Domain, error) {
	domains, err := s.api.Domains(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(resellerName)
	filtered := make([]models.Domain, 0, len(domains))
	for _, d := range domains {
		if strings.Contains(strings.ToLower(d.Reseller), needle) {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}
