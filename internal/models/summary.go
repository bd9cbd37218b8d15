// Package models defines data structures and domain types.
package models

import "strconv"

// Unavailable is the sentinel rendered for counters whose source call
// failed. Partial success is a first-class outcome, never an error.
const Unavailable = "N/A"

// Count is a derived counter that is either a non-negative integer or
// explicitly unavailable. The zero value is unavailable.
type Count struct {
	Value int
	Valid bool
}

// NewCount returns a valid count.
func NewCount(v int) Count {
	return Count{Value: v, Valid: true}
}

// String renders the count for display, using the unavailable sentinel
// when the counter could not be derived.
func (c Count) String() string {
	if !c.Valid {
		return Unavailable
	}
	return strconv.Itoa(c.Value)
}

// DomainSummary is a Domain enriched with derived counters. Each counter is
// independently unavailable if its source call failed; one summary exists
// per domain per aggregation run and is recomputed on every refresh.
type DomainSummary struct {
	Domain

	PBXUserCount           Count
	TotalDevices           Count
	TotalMeetingRooms      Count
	CallQueueCount         Count
	AutoAttendantCount     Count
	VoicemailTranscription string
}

// Complete reports whether every derived counter was resolved.
func (s DomainSummary) Complete() bool {
	return s.PBXUserCount.Valid &&
		s.TotalDevices.Valid &&
		s.TotalMeetingRooms.Valid &&
		s.CallQueueCount.Valid &&
		s.AutoAttendantCount.Valid &&
		s.VoicemailTranscription != Unavailable
}
