package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Income is a recorded income entry, e.g. salary or freelance payment.
type Income struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID      uint            `gorm:"index" json:"user_id"`
	Date        time.Time       `gorm:"type:date;index" json:"date"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Currency    string          `gorm:"type:varchar(5)" json:"currency"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Source      string          `gorm:"type:varchar(255)" json:"source"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeSave trims the income source.
func (i *Income) BeforeSave(tx *gorm.DB) error {
	i.Source = strings.TrimSpace(i.Source)
	return nil
}
