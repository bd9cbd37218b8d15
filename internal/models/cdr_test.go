package models

import (
	"errors"
	"testing"
	"time"
)

func TestCallRecordTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		record  CallRecord
		want    time.Time
		wantErr bool
	}{
		{
			name:   "start_time preferred",
			record: CallRecord{StartTime: "2024-01-05 10:30:00", CallAnswerDatetime: "2024-02-01 00:00:00"},
			want:   time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC),
		},
		{
			name:   "falls back to call-answer-datetime",
			record: CallRecord{CallAnswerDatetime: "2024-02-01 08:15:30"},
			want:   time.Date(2024, 2, 1, 8, 15, 30, 0, time.UTC),
		},
		{
			name:   "falls through unparseable start_time",
			record: CallRecord{StartTime: "not-a-time", CallAnswerDatetime: "2024-03-10 12:00:00"},
			want:   time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		},
		{
			name:   "RFC3339 accepted",
			record: CallRecord{StartTime: "2024-04-01T09:00:00Z"},
			want:   time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name:    "missing both fields",
			record:  CallRecord{},
			wantErr: true,
		},
		{
			name:    "both unparseable",
			record:  CallRecord{StartTime: "garbage", CallAnswerDatetime: "also garbage"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.record.Timestamp()
			if tt.wantErr {
				if !errors.Is(err, ErrNoTimestamp) {
					t.Fatalf("expected ErrNoTimestamp, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Timestamp failed: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHistoryRange(t *testing.T) {
	if got := HistoryRange3Months.Months(); got != 3 {
		t.Errorf("expected 3 months, got %d", got)
	}
	if got := HistoryRange12Months.Months(); got != 12 {
		t.Errorf("expected 12 months, got %d", got)
	}

	r := HistoryRange12Months.Next()
	if r != HistoryRange3Months {
		t.Errorf("expected cycle back to 3 months, got %v", r)
	}
	if HistoryRange6Months.String() != "6 Months" {
		t.Errorf("unexpected display name %q", HistoryRange6Months.String())
	}
}
