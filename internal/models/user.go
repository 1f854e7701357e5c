package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the primary account. All other records belong to a user,
// transitively.
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name  string `gorm:"type:varchar(255)" json:"name"`
	Email string `gorm:"type:varchar(255);uniqueIndex" json:"email"`

	// Currency is the home currency every expense is normalized into.
	Currency string `gorm:"type:varchar(5);default:'$'" json:"currency"`

	// Relationships
	Friends  []Friend  `gorm:"foreignKey:UserID" json:"friends,omitempty"`
	Expenses []Expense `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
}
