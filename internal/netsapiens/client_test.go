package netsapiens

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

// MockRoundTripper implements http.RoundTripper for testing
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

// newTestClient returns a client whose sleeps are recorded instead of
// actually waiting.
func newTestClient(rt http.RoundTripper) (*Client, *[]time.Duration) {
	c := New(Config{BaseURL: "https://api.test/ns-api/v2"}, StaticToken("test-token"))
	c.httpClient = &http.Client{Transport: rt}

	var slept []time.Duration
	c.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return c, &slept
}

func TestClientRetriesThenSucceeds(t *testing.T) {
	for _, failures := range []int{0, 1, 2, 3} {
		attempts := 0
		c, slept := newTestClient(&MockRoundTripper{
			RoundTripFunc: func(_ *http.Request) (*http.Response, error) {
				attempts++
				if attempts <= failures {
					return nil, errors.New("connection reset")
				}
				return jsonResponse(http.StatusOK, `{"total":5}`), nil
			},
		})

		n, err := c.UserCount(context.Background(), "example.service")
		if err != nil {
			t.Fatalf("failures=%d: expected success, got %v", failures, err)
		}
		if n != 5 {
			t.Errorf("failures=%d: expected total 5, got %d", failures, n)
		}
		if attempts != failures+1 {
			t.Errorf("failures=%d: expected %d attempts, got %d", failures, failures+1, attempts)
		}

		want := []time.Duration{1 * time.Second, 2 * time.Second, 3 * time.Second}[:failures]
		if len(*slept) != len(want) {
			t.Fatalf("failures=%d: expected %d delays, got %v", failures, len(want), *slept)
		}
		for i, d := range want {
			if (*slept)[i] != d {
				t.Errorf("failures=%d: delay %d: expected %v, got %v", failures, i, d, (*slept)[i])
			}
		}
	}
}

func TestClientExhaustsAttempts(t *testing.T) {
	attempts := 0
	c, slept := newTestClient(&MockRoundTripper{
		RoundTripFunc: func(_ *http.Request) (*http.Response, error) {
			attempts++
			return jsonResponse(http.StatusNotFound, "no such domain"), nil
		},
	})

	_, err := c.UserCount(context.Background(), "missing.service")
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if attempts != 4 {
		t.Errorf("expected exactly 4 attempts, got %d", attempts)
	}

	// Final underlying error surfaces unchanged.
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", statusErr.StatusCode)
	}

	want := []time.Duration{1 * time.Second, 2 * time.Second, 3 * time.Second}
	if len(*slept) != len(want) {
		t.Fatalf("expected %d delays, got %v", len(want), *slept)
	}
	for i, d := range want {
		if (*slept)[i] != d {
			t.Errorf("delay %d: expected %v, got %v", i, d, (*slept)[i])
		}
	}
}

func TestRetryPolicyDelaySchedule(t *testing.T) {
	p := DefaultRetryPolicy()

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 1 * time.Second},
		{2, 2 * time.Second},
		{3, 3 * time.Second},
		{4, 5 * time.Second},
		// Schedule exhausted: last value repeats.
		{5, 5 * time.Second},
		{10, 5 * time.Second},
	}

	for _, tt := range tests {
		if got := p.Delay(tt.attempt); got != tt.want {
			t.Errorf("Delay(%d): expected %v, got %v", tt.attempt, tt.want, got)
		}
	}
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(&MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			gotAuth = req.Header.Get("Authorization")
			return jsonResponse(http.StatusOK, `[]`), nil
		},
	})

	if _, err := c.Resellers(context.Background()); err != nil {
		t.Fatalf("Resellers failed: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}

func TestClientRetryWaitIsContextAware(t *testing.T) {
	c := New(Config{BaseURL: "https://api.test"}, StaticToken("t"))
	c.httpClient = &http.Client{Transport: &MockRoundTripper{
		RoundTripFunc: func(_ *http.Request) (*http.Response, error) {
			return nil, errors.New("unreachable")
		},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.UserCount(ctx, "example.service")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled during backoff wait, got %v", err)
	}
}

func TestCallHistoryRejectsNonSequence(t *testing.T) {
	attempts := 0
	c, _ := newTestClient(&MockRoundTripper{
		RoundTripFunc: func(_ *http.Request) (*http.Response, error) {
			attempts++
			return jsonResponse(http.StatusOK, `{"error":"object not list"}`), nil
		},
	})

	_, err := c.CallHistory(context.Background(), "example.service",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC))
	if err == nil {
		t.Fatal("expected error for non-sequence payload")
	}
	if !strings.Contains(err.Error(), "not a sequence") {
		t.Errorf("unexpected error: %v", err)
	}
	// A malformed 200 response must not be retried.
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestCallHistoryQueryParameters(t *testing.T) {
	var gotURL string
	c, _ := newTestClient(&MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			gotURL = req.URL.String()
			return jsonResponse(http.StatusOK, `[{"start_time":"2024-01-05 10:00:00"}]`), nil
		},
	})

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)
	records, err := c.CallHistory(context.Background(), "example.service", start, end)
	if err != nil {
		t.Fatalf("CallHistory failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	q := "datetime-start=2024-01-01+00%3A00%3A00"
	if !strings.Contains(gotURL, q) {
		t.Errorf("expected %s in URL, got %s", q, gotURL)
	}
	if !strings.Contains(gotURL, "/domains/example.service/cdrs") {
		t.Errorf("unexpected path in %s", gotURL)
	}
}

func TestGetJSONMalformedBodyNotRetried(t *testing.T) {
	attempts := 0
	c, _ := newTestClient(&MockRoundTripper{
		RoundTripFunc: func(_ *http.Request) (*http.Response, error) {
			attempts++
			return jsonResponse(http.StatusOK, `{invalid json`), nil
		},
	})

	_, err := c.Domains(context.Background())
	if err == nil {
		t.Fatal("expected decode error")
	}
	if attempts != 1 {
		t.Errorf("malformed body must not be retried, got %d attempts", attempts)
	}
}
