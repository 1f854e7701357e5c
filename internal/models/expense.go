package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is the base financial record. A shared expense is an Expense
// augmented with split data through its one-to-one SharedExpense relation,
// not a separate entity.
type Expense struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID      uint            `gorm:"index" json:"user_id"`
	Date        time.Time       `gorm:"type:date;index" json:"date"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Currency    string          `gorm:"type:varchar(5)" json:"currency"`
	Description string          `gorm:"type:text" json:"description"`
	Category    string          `gorm:"type:varchar(255);index" json:"category"`

	// BaseAmount is the amount converted into the user's home currency at
	// creation time, so aggregations across the user's records stay in one
	// currency context. Shares keep the expense's native amount.
	BaseAmount decimal.Decimal `gorm:"type:decimal(12,2)" json:"base_amount"`

	// How the expense was paid. A linked source has its balance deducted
	// at creation; a linked card has its available limit reduced.
	PaymentMethod   string `gorm:"type:varchar(50);default:Cash" json:"payment_method"`
	PaymentSourceID *uint  `gorm:"index" json:"payment_source_id,omitempty"`
	CreditCardID    *uint  `gorm:"index" json:"credit_card_id,omitempty"`

	HasCashback   bool             `json:"has_cashback"`
	CashbackType  string           `gorm:"type:varchar(10)" json:"cashback_type,omitempty"`
	CashbackValue *decimal.Decimal `gorm:"type:decimal(12,2)" json:"cashback_value,omitempty"`

	// Relationships
	User          User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PaymentSource *PaymentSource `gorm:"foreignKey:PaymentSourceID" json:"payment_source,omitempty"`
	CreditCard    *CreditCard    `gorm:"foreignKey:CreditCardID" json:"credit_card,omitempty"`
	SharedDetails *SharedExpense `gorm:"foreignKey:ExpenseID" json:"shared_details,omitempty"`
}

// Cashback types: a percentage of the expense amount or a fixed amount.
const (
	CashbackTypePercentage = "PERCENTAGE"
	CashbackTypeFixed      = "FIXED"
)

// BeforeSave trims the free-text category.
func (e *Expense) BeforeSave(tx *gorm.DB) error {
	e.Category = strings.TrimSpace(e.Category)
	return nil
}

// CashbackAmount computes the actual cashback earned on this expense.
func (e *Expense) CashbackAmount() decimal.Decimal {
	if !e.HasCashback || e.CashbackValue == nil {
		return decimal.Zero
	}
	switch e.CashbackType {
	case CashbackTypePercentage:
		return e.Amount.Mul(*e.CashbackValue).Div(decimal.NewFromInt(100)).Round(2)
	case CashbackTypeFixed:
		return *e.CashbackValue
	}
	return decimal.Zero
}

// Category is a per-user expense category with an optional spending limit.
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID uint             `gorm:"uniqueIndex:idx_category_user_name" json:"user_id"`
	Name   string           `gorm:"type:varchar(255);uniqueIndex:idx_category_user_name" json:"name"`
	Limit  *decimal.Decimal `gorm:"type:decimal(12,2)" json:"limit,omitempty"`
}

// BeforeSave trims the category name.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}
