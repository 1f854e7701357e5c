package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Settlement records a cash transfer between the user and a friend, layered
// on top of the share-derived balances. Settlements never rewrite historical
// Share rows; how they combine with the shares-only net is a read-time policy
// (see ledger.SettlementPolicy).
type Settlement struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID   uint            `gorm:"index" json:"user_id"`
	FriendID uint            `gorm:"index" json:"friend_id"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Date     time.Time       `gorm:"type:date" json:"date"`

	// PayerIsUser is true when the user handed money to the friend.
	PayerIsUser bool   `gorm:"default:true" json:"payer_is_user"`
	Notes       string `gorm:"type:text" json:"notes,omitempty"`

	// Relationships
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Friend Friend `gorm:"foreignKey:FriendID" json:"friend,omitempty"`
}
