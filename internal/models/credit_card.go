package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreditCard tracks a card's limit and billing cycle. Paying an expense with
// a card reduces the available limit; a bill payment restores it.
type CreditCard struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID         uint            `gorm:"uniqueIndex:idx_credit_card_user_name" json:"user_id"`
	Name           string          `gorm:"type:varchar(100);uniqueIndex:idx_credit_card_user_name" json:"name"`
	BankName       string          `gorm:"type:varchar(100)" json:"bank_name"`
	CreditLimit    decimal.Decimal `gorm:"type:decimal(12,2)" json:"credit_limit"`
	AvailableLimit decimal.Decimal `gorm:"type:decimal(12,2)" json:"available_limit"`

	// Day of month the bill generates, restricted to 1-28 so every month
	// has the day.
	BillingCycleDay int  `json:"billing_cycle_day"`
	DueDateDays     int  `gorm:"default:20" json:"due_date_days"`
	IsActive        bool `gorm:"default:true" json:"is_active"`
}

// BeforeSave trims the card and bank names.
func (c *CreditCard) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.BankName = strings.TrimSpace(c.BankName)
	return nil
}

// UsedLimit is the amount of credit currently consumed.
func (c *CreditCard) UsedLimit() decimal.Decimal {
	return c.CreditLimit.Sub(c.AvailableLimit)
}

// NextBillingDate returns the first billing date on or after today.
func (c *CreditCard) NextBillingDate(today time.Time) time.Time {
	year, month, day := today.Date()
	if day <= c.BillingCycleDay {
		return time.Date(year, month, c.BillingCycleDay, 0, 0, 0, 0, today.Location())
	}
	return time.Date(year, month+1, c.BillingCycleDay, 0, 0, 0, 0, today.Location())
}

// NextDueDate returns the payment due date for the next bill.
func (c *CreditCard) NextDueDate(today time.Time) time.Time {
	return c.NextBillingDate(today).AddDate(0, 0, c.DueDateDays)
}

// PayBill restores available limit, capped at the credit limit.
func (c *CreditCard) PayBill(amount decimal.Decimal) {
	restored := c.AvailableLimit.Add(amount)
	if restored.GreaterThan(c.CreditLimit) {
		restored = c.CreditLimit
	}
	c.AvailableLimit = restored
}
