package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreditCardNextBillingDate(t *testing.T) {
	tests := []struct {
		name     string
		cycleDay int
		today    time.Time
		want     time.Time
	}{
		{
			name:     "before cycle day stays in current month",
			cycleDay: 15,
			today:    date(2025, time.March, 10),
			want:     date(2025, time.March, 15),
		},
		{
			name:     "on cycle day bills today",
			cycleDay: 15,
			today:    date(2025, time.March, 15),
			want:     date(2025, time.March, 15),
		},
		{
			name:     "after cycle day rolls to next month",
			cycleDay: 15,
			today:    date(2025, time.March, 20),
			want:     date(2025, time.April, 15),
		},
		{
			name:     "december rolls to january",
			cycleDay: 5,
			today:    date(2025, time.December, 20),
			want:     date(2026, time.January, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := CreditCard{BillingCycleDay: tt.cycleDay}
			got := card.NextBillingDate(tt.today)
			if !got.Equal(tt.want) {
				t.Errorf("NextBillingDate(%s) = %s, want %s", tt.today, got, tt.want)
			}
		})
	}
}

func TestCreditCardNextDueDate(t *testing.T) {
	card := CreditCard{BillingCycleDay: 10, DueDateDays: 20}
	got := card.NextDueDate(date(2025, time.March, 1))
	want := date(2025, time.March, 30)
	if !got.Equal(want) {
		t.Errorf("NextDueDate() = %s, want %s", got, want)
	}
}

func TestCreditCardLimits(t *testing.T) {
	card := CreditCard{
		CreditLimit:    amt("50000"),
		AvailableLimit: amt("32000"),
	}

	if used := card.UsedLimit(); !used.Equal(amt("18000")) {
		t.Errorf("UsedLimit() = %s, want 18000", used)
	}

	card.PayBill(amt("10000"))
	if !card.AvailableLimit.Equal(amt("42000")) {
		t.Errorf("AvailableLimit after payment = %s, want 42000", card.AvailableLimit)
	}

	// Overpaying never pushes the available limit past the credit limit.
	card.PayBill(amt("20000"))
	if !card.AvailableLimit.Equal(amt("50000")) {
		t.Errorf("AvailableLimit after overpayment = %s, want 50000", card.AvailableLimit)
	}
}
