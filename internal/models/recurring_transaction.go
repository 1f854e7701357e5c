package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/teambition/rrule-go"
	"gorm.io/gorm"
)

// TransactionType distinguishes recurring expenses from recurring income.
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "EXPENSE"
	TransactionTypeIncome  TransactionType = "INCOME"
)

// RecurringTransaction is a template that the worker materializes into real
// Expense rows whenever its schedule comes due.
type RecurringTransaction struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID          uint            `gorm:"index" json:"user_id"`
	TransactionType TransactionType `gorm:"type:varchar(10);default:'EXPENSE'" json:"transaction_type"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Currency        string          `gorm:"type:varchar(5)" json:"currency"`
	Description     string          `gorm:"type:text" json:"description"`
	Category        string          `gorm:"type:varchar(255)" json:"category"`

	// RecurringInterval is an RFC 5545 RRULE string, e.g. "FREQ=MONTHLY".
	RecurringInterval string     `gorm:"type:text" json:"recurring_interval"`
	StartDate         time.Time  `gorm:"type:date" json:"start_date"`
	LastProcessedDate *time.Time `gorm:"type:date" json:"last_processed_date,omitempty"`
	IsActive          bool       `gorm:"default:true" json:"is_active"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// NextDue calculates the next date this transaction should be materialized.
func (rt RecurringTransaction) NextDue() time.Time {
	if rt.LastProcessedDate == nil {
		return rt.StartDate
	}

	if rt.RecurringInterval != "" {
		rule, err := rrule.StrToRRule(rt.RecurringInterval)
		if err == nil {
			rule.DTStart(rt.StartDate)
			next := rule.After(*rt.LastProcessedDate, false)
			if !next.IsZero() {
				return next
			}
		}
	}
	// Fallback to the start date if the rule cannot be parsed
	return rt.StartDate
}

// IsDue reports whether the transaction should be materialized at the given
// time.
func (rt RecurringTransaction) IsDue(now time.Time) bool {
	return rt.IsActive && !rt.NextDue().After(now)
}
