package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account types a payment source can have. Credit cards are a separate model
// because their balance runs against a limit instead of a deposit.
const (
	AccountTypeSavings = "savings"
	AccountTypeCurrent = "current"
	AccountTypeWallet  = "wallet"
	AccountTypeCash    = "cash"
)

// ValidAccountType reports whether t is one of the known account types.
func ValidAccountType(t string) bool {
	switch t {
	case AccountTypeSavings, AccountTypeCurrent, AccountTypeWallet, AccountTypeCash:
		return true
	}
	return false
}

// PaymentSource is a bank account, digital wallet, or cash-in-hand balance.
// Paying an expense from a source deducts its balance immediately.
type PaymentSource struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID      uint            `gorm:"uniqueIndex:idx_payment_source_user_name" json:"user_id"`
	Name        string          `gorm:"type:varchar(100);uniqueIndex:idx_payment_source_user_name" json:"name"`
	AccountType string          `gorm:"type:varchar(20);index" json:"account_type"`
	BankName    string          `gorm:"type:varchar(100)" json:"bank_name,omitempty"`
	Balance     decimal.Decimal `gorm:"type:decimal(12,2)" json:"balance"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
}

// BeforeSave trims the source and bank names.
func (s *PaymentSource) BeforeSave(tx *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	s.BankName = strings.TrimSpace(s.BankName)
	return nil
}
