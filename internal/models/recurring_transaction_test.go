package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRecurringTransactionNextDue(t *testing.T) {
	start := date(2024, time.January, 15)

	tests := []struct {
		name          string
		interval      string
		lastProcessed *time.Time
		want          time.Time
	}{
		{
			name:     "never processed is due at start date",
			interval: "FREQ=MONTHLY",
			want:     start,
		},
		{
			name:          "monthly advances one month",
			interval:      "FREQ=MONTHLY",
			lastProcessed: ptr(date(2024, time.January, 15)),
			want:          date(2024, time.February, 15),
		},
		{
			name:          "weekly advances one week",
			interval:      "FREQ=WEEKLY",
			lastProcessed: ptr(date(2024, time.January, 15)),
			want:          date(2024, time.January, 22),
		},
		{
			name:          "unparseable rule falls back to start date",
			interval:      "EVERY=FORTNIGHT",
			lastProcessed: ptr(date(2024, time.January, 15)),
			want:          start,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := RecurringTransaction{
				RecurringInterval: tt.interval,
				StartDate:         start,
				LastProcessedDate: tt.lastProcessed,
			}
			got := rt.NextDue()
			if !got.Equal(tt.want) {
				t.Errorf("NextDue() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRecurringTransactionIsDue(t *testing.T) {
	rt := RecurringTransaction{
		RecurringInterval: "FREQ=MONTHLY",
		StartDate:         date(2024, time.January, 15),
		IsActive:          true,
	}

	if !rt.IsDue(date(2024, time.January, 15)) {
		t.Error("transaction should be due on its start date")
	}
	if rt.IsDue(date(2024, time.January, 14)) {
		t.Error("transaction should not be due before its start date")
	}

	rt.IsActive = false
	if rt.IsDue(date(2024, time.February, 1)) {
		t.Error("inactive transaction should never be due")
	}
}

func ptr(t time.Time) *time.Time {
	return &t
}
