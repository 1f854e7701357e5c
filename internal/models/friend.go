package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Friend is a named counterparty the user can split expenses with. Friends
// form a per-user master list, reusable across many shared expenses, and are
// created lazily the first time a split names them.
type Friend struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID uint   `gorm:"uniqueIndex:idx_friend_user_name" json:"user_id"`
	Name   string `gorm:"type:varchar(255);uniqueIndex:idx_friend_user_name" json:"name"`
	Email  string `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone  string `gorm:"type:varchar(20)" json:"phone,omitempty"`

	// Relationships
	User           User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Participations []Participant `gorm:"foreignKey:FriendID" json:"participations,omitempty"`
	Settlements    []Settlement  `gorm:"foreignKey:FriendID" json:"settlements,omitempty"`
}

// BeforeSave trims the friend's name so (user, name) uniqueness works on
// canonical values.
func (f *Friend) BeforeSave(tx *gorm.DB) error {
	f.Name = strings.TrimSpace(f.Name)
	return nil
}
