// Package models defines data structures and domain types.
package models

import (
	"errors"
	"time"
)

// CDRTimeLayout is the timestamp layout used by the upstream call history
// endpoint, both in query parameters and in record fields.
const CDRTimeLayout = "2006-01-02 15:04:05"

// ErrNoTimestamp is returned when a call record carries no usable start
// timestamp under any of the known field names.
var ErrNoTimestamp = errors.New("call record has no parseable start timestamp")

// CallRecord is a single call detail record. Depending on the upstream
// response shape the start timestamp arrives under one of two field names;
// Timestamp resolves them in order of preference. Other CDR metadata is
// carried through but not consumed.
type CallRecord struct {
	StartTime          string `json:"start_time,omitempty"`
	CallAnswerDatetime string `json:"call-answer-datetime,omitempty"`
	OrigNumber         string `json:"orig-from-uri,omitempty"`
	TermNumber         string `json:"orig-to-uri,omitempty"`
	DurationSeconds    int    `json:"duration,omitempty"`
}

// Timestamp returns the record's start time, preferring start_time over
// call-answer-datetime. Records missing both, or carrying values in no
// known layout, yield ErrNoTimestamp.
func (r CallRecord) Timestamp() (time.Time, error) {
	for _, raw := range []string{r.StartTime, r.CallAnswerDatetime} {
		if raw == "" {
			continue
		}
		if t, err := parseCDRTime(raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrNoTimestamp
}

// parseCDRTime attempts the known upstream timestamp layouts.
func parseCDRTime(raw string) (time.Time, error) {
	layouts := []string{
		CDRTimeLayout,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}

	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// CallHistoryBucket is the call count for one calendar month. Month is
// keyed as "2006-01". Buckets form a series sorted ascending by month;
// months with zero calls are simply absent.
type CallHistoryBucket struct {
	Month string
	Count int
}

// HistoryRange selects how far back the call history chart reaches.
type HistoryRange int

const (
	// HistoryRange3Months covers the last 3 calendar months.
	HistoryRange3Months HistoryRange = iota
	// HistoryRange6Months covers the last 6 calendar months.
	HistoryRange6Months
	// HistoryRange12Months covers the last 12 months (the default window).
	HistoryRange12Months
)

// String returns the display name for a history range.
func (h HistoryRange) String() string {
	switch h {
	case HistoryRange3Months:
		return "3 Months"
	case HistoryRange6Months:
		return "6 Months"
	case HistoryRange12Months:
		return "12 Months"
	default:
		return "Unknown"
	}
}

// Months returns the number of months covered by the range.
func (h HistoryRange) Months() int {
	switch h {
	case HistoryRange3Months:
		return 3
	case HistoryRange6Months:
		return 6
	case HistoryRange12Months:
		return 12
	default:
		return 12
	}
}

// Next cycles to the next history range.
func (h HistoryRange) Next() HistoryRange {
	return (h + 1) % 3
}
