package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SharedExpense marks an Expense as split among multiple participants and
// anchors its participant and share rows.
type SharedExpense struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ExpenseID uint `gorm:"uniqueIndex" json:"expense_id"`

	// Relationships
	Expense      Expense       `gorm:"foreignKey:ExpenseID" json:"expense,omitempty"`
	Participants []Participant `gorm:"foreignKey:SharedExpenseID" json:"participants,omitempty"`
	Shares       []Share       `gorm:"foreignKey:SharedExpenseID" json:"shares,omitempty"`
}

// Payer returns the participant flagged as the payer, or nil if the record is
// malformed.
func (se *SharedExpense) Payer() *Participant {
	for i := range se.Participants {
		if se.Participants[i].IsPayer {
			return &se.Participants[i]
		}
	}
	return nil
}

// UserParticipant returns the participant that is the owning user, or nil.
func (se *SharedExpense) UserParticipant() *Participant {
	for i := range se.Participants {
		if se.Participants[i].IsUser {
			return &se.Participants[i]
		}
	}
	return nil
}

// Participant links one party, the user or a friend, to a shared expense.
// Exactly one participant per shared expense has IsUser set and exactly one
// has IsPayer set; the payer may or may not be the user. FriendID is null
// only for the user's own row.
type Participant struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	SharedExpenseID uint  `gorm:"index" json:"shared_expense_id"`
	FriendID        *uint `gorm:"index" json:"friend_id,omitempty"`
	IsUser          bool  `gorm:"default:false" json:"is_user"`
	IsPayer         bool  `gorm:"default:false" json:"is_payer"`

	// Relationships
	SharedExpense SharedExpense `gorm:"foreignKey:SharedExpenseID" json:"shared_expense,omitempty"`
	Friend        *Friend       `gorm:"foreignKey:FriendID" json:"friend,omitempty"`
}

// DisplayName resolves to "You" for the user's own row, else the linked
// friend's name.
func (p *Participant) DisplayName() string {
	if p.IsUser {
		return "You"
	}
	if p.Friend != nil {
		return p.Friend.Name
	}
	return "Unknown"
}

// Share is one participant's monetary portion of a shared expense; the atomic
// unit balances are computed from. Share amounts are strictly positive and
// sum to the parent expense's amount, enforced at validation time.
type Share struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	SharedExpenseID uint            `gorm:"index" json:"shared_expense_id"`
	ParticipantID   uint            `gorm:"uniqueIndex" json:"participant_id"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`

	// Relationships
	SharedExpense SharedExpense `gorm:"foreignKey:SharedExpenseID" json:"shared_expense,omitempty"`
	Participant   Participant   `gorm:"foreignKey:ParticipantID" json:"participant,omitempty"`
}
