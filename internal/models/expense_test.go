package models

import (
	"testing"
)

func TestExpenseCashbackAmount(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		hasCashback  bool
		cashbackType string
		value        string
		want         string
	}{
		{
			name:         "percentage cashback",
			amount:       "2000",
			hasCashback:  true,
			cashbackType: CashbackTypePercentage,
			value:        "5",
			want:         "100",
		},
		{
			name:         "percentage cashback rounds to paise",
			amount:       "333",
			hasCashback:  true,
			cashbackType: CashbackTypePercentage,
			value:        "1.5",
			want:         "5",
		},
		{
			name:         "fixed cashback",
			amount:       "2000",
			hasCashback:  true,
			cashbackType: CashbackTypeFixed,
			value:        "75",
			want:         "75",
		},
		{
			name:   "no cashback",
			amount: "2000",
			want:   "0",
		},
		{
			name:         "unknown cashback type yields zero",
			amount:       "2000",
			hasCashback:  true,
			cashbackType: "POINTS",
			value:        "10",
			want:         "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expense := Expense{
				Amount:       amt(tt.amount),
				HasCashback:  tt.hasCashback,
				CashbackType: tt.cashbackType,
			}
			if tt.value != "" {
				value := amt(tt.value)
				expense.CashbackValue = &value
			}
			got := expense.CashbackAmount()
			if !got.Equal(amt(tt.want)) {
				t.Errorf("CashbackAmount() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCategoryBeforeSaveTrimsName(t *testing.T) {
	category := Category{Name: "  Food  "}
	if err := category.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave() unexpected error: %v", err)
	}
	if category.Name != "Food" {
		t.Errorf("Name = %q, want %q", category.Name, "Food")
	}
}

func TestPaymentSourceBeforeSaveTrimsNames(t *testing.T) {
	source := PaymentSource{Name: " Axis Savings ", BankName: " Axis Bank "}
	if err := source.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave() unexpected error: %v", err)
	}
	if source.Name != "Axis Savings" || source.BankName != "Axis Bank" {
		t.Errorf("names not trimmed: %q, %q", source.Name, source.BankName)
	}
}
