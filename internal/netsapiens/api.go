package netsapiens

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/models"
)

// User is a PBX user within a domain. Only the identifier is consumed;
// it keys the per-user device and meeting count calls.
type User struct {
	ID    string `json:"user"`
	Name  string `json:"name-full-name,omitempty"`
	Email string `json:"email-address,omitempty"`
}

// CallQueue is a call queue within a domain. Only the list length is used.
type CallQueue struct {
	Queue       string `json:"callqueue"`
	Description string `json:"description,omitempty"`
}

// AutoAttendant is an auto attendant within a domain.
type AutoAttendant struct {
	User        string `json:"user"`
	Description string `json:"description,omitempty"`
}

// countResponse is the shape of the */count endpoints.
type countResponse struct {
	Total int `json:"total"`
}

// getJSON issues a GET through the retry wrapper and decodes the body.
// Decode failures are malformed-response errors and are never retried.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	body, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("malformed response from %s: %w", path, err)
	}
	return nil
}

// Resellers fetches the full reseller list.
func (c *Client) Resellers(ctx context.Context) ([]models.Reseller, error) {
	var resellers []models.Reseller
	if err := c.getJSON(ctx, "/resellers", nil, &resellers); err != nil {
		return nil, err
	}
	return resellers, nil
}

// Domains fetches the full domain collection. No pagination exists
// upstream; the full collection is always fetched.
func (c *Client) Domains(ctx context.Context) ([]models.Domain, error) {
	var domains []models.Domain
	if err := c.getJSON(ctx, "/domains", nil, &domains); err != nil {
		return nil, err
	}
	return domains, nil
}

// DomainInfo fetches the detail record for one domain.
func (c *Client) DomainInfo(ctx context.Context, domain string) (*models.Domain, error) {
	var info models.Domain
	if err := c.getJSON(ctx, "/domains/"+url.PathEscape(domain), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// UserCount returns the number of PBX users in a domain.
func (c *Client) UserCount(ctx context.Context, domain string) (int, error) {
	var count countResponse
	path := "/domains/" + url.PathEscape(domain) + "/users/count"
	if err := c.getJSON(ctx, path, nil, &count); err != nil {
		return 0, err
	}
	return count.Total, nil
}

// Users lists the PBX users in a domain.
func (c *Client) Users(ctx context.Context, domain string) ([]User, error) {
	var users []User
	path := "/domains/" + url.PathEscape(domain) + "/users"
	if err := c.getJSON(ctx, path, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CallQueues lists the call queues in a domain.
func (c *Client) CallQueues(ctx context.Context, domain string) ([]CallQueue, error) {
	var queues []CallQueue
	path := "/domains/" + url.PathEscape(domain) + "/callqueues"
	if err := c.getJSON(ctx, path, nil, &queues); err != nil {
		return nil, err
	}
	return queues, nil
}

// AutoAttendants lists the auto attendants in a domain.
func (c *Client) AutoAttendants(ctx context.Context, domain string) ([]AutoAttendant, error) {
	var attendants []AutoAttendant
	path := "/domains/" + url.PathEscape(domain) + "/autoattendants"
	if err := c.getJSON(ctx, path, nil, &attendants); err != nil {
		return nil, err
	}
	return attendants, nil
}

// DeviceCount returns the number of devices registered to a user.
func (c *Client) DeviceCount(ctx context.Context, domain, user string) (int, error) {
	var count countResponse
	path := "/domains/" + url.PathEscape(domain) + "/users/" + url.PathEscape(user) + "/devices/count"
	if err := c.getJSON(ctx, path, nil, &count); err != nil {
		return 0, err
	}
	return count.Total, nil
}

// MeetingCount returns the number of meeting rooms owned by a user.
func (c *Client) MeetingCount(ctx context.Context, domain, user string) (int, error) {
	var count countResponse
	path := "/domains/" + url.PathEscape(domain) + "/users/" + url.PathEscape(user) + "/meetings/count"
	if err := c.getJSON(ctx, path, nil, &count); err != nil {
		return 0, err
	}
	return count.Total, nil
}

// CallHistory fetches the call detail records for a domain over the given
// range. A payload that is not a JSON sequence aborts the call; that is a
// malformed response, not a retryable condition.
func (c *Client) CallHistory(ctx context.Context, domain string, start, end time.Time) ([]models.CallRecord, error) {
	query := url.Values{}
	query.Set("datetime-start", start.Format(models.CDRTimeLayout))
	query.Set("datetime-end", end.Format(models.CDRTimeLayout))

	path := "/domains/" + url.PathEscape(domain) + "/cdrs"
	body, err := c.get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("unexpected call history payload for %s: not a sequence", domain)
	}

	var records []models.CallRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("malformed call history response for %s: %w", domain, err)
	}
	return records, nil
}
