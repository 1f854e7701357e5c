package handlers

import (
	"time"

	"finance_tracker_echo/internal/ledger"
)

const dateLayout = "2006-01-02"

// participantPayload is one entry of the split request. Share amounts arrive
// as decimal strings so no binary floating point touches a monetary value.
type participantPayload struct {
	Name        string `json:"name"`
	IsUser      bool   `json:"is_user"`
	ShareAmount string `json:"share_amount"`
}

// createSharedExpenseRequest is the typed command for recording a shared
// expense: the base expense fields plus the participant list and payer.
type createSharedExpenseRequest struct {
	Date         string               `json:"date"`
	Amount       string               `json:"amount"`
	Currency     string               `json:"currency"`
	Description  string               `json:"description"`
	Category     string               `json:"category"`
	Participants []participantPayload `json:"participants"`
	PayerName    string               `json:"payer_id"`
}

type createExpenseRequest struct {
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Category    string `json:"category"`

	PaymentMethod   string `json:"payment_method"`
	PaymentSourceID *uint  `json:"payment_source_id"`
	CreditCardID    *uint  `json:"credit_card_id"`

	HasCashback   bool   `json:"has_cashback"`
	CashbackType  string `json:"cashback_type"`
	CashbackValue string `json:"cashback_value"`
}

type paymentSourceRequest struct {
	Name        string `json:"name"`
	AccountType string `json:"account_type"`
	BankName    string `json:"bank_name"`
	Balance     string `json:"balance"`
}

type creditCardRequest struct {
	Name            string `json:"name"`
	BankName        string `json:"bank_name"`
	CreditLimit     string `json:"credit_limit"`
	BillingCycleDay int    `json:"billing_cycle_day"`
	DueDateDays     int    `json:"due_date_days"`
}

type cardPaymentRequest struct {
	Amount string `json:"amount"`
}

type categoryRequest struct {
	Name  string `json:"name"`
	Limit string `json:"limit"`
}

type incomeRequest struct {
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

type friendRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type settlementRequest struct {
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	PayerIsUser bool   `json:"payer_is_user"`
	Notes       string `json:"notes"`
}

type recurringRequest struct {
	TransactionType   string `json:"transaction_type"`
	Amount            string `json:"amount"`
	Currency          string `json:"currency"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	RecurringInterval string `json:"recurring_interval"`
	StartDate         string `json:"start_date"`
}

// parseDate parses a required YYYY-MM-DD form value.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, ledger.NewValidationError(field, "invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// parseOptionalDate parses an optional YYYY-MM-DD query value, returning nil
// when absent.
func parseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
