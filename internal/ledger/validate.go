// Package ledger implements the shared-expense ledger: split validation,
// per-friend balance calculation, and settlement reconciliation. It operates
// on plain value types so it stays independent of the storage layer.
package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Field names reported back to the split entry form.
const (
	FieldParticipants = "participants_json"
	FieldPayer        = "payer_id"
)

// UserDisplayName is the name the user's own participant row resolves to.
const UserDisplayName = "You"

// ValidationError is a user-correctable input error tied to a form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ParticipantInput is one entry of the split form: a participant name, whether
// that participant is the logged-in user, and their share of the total.
type ParticipantInput struct {
	Name        string          `json:"name"`
	IsUser      bool            `json:"is_user"`
	ShareAmount decimal.Decimal `json:"share_amount"`
}

// NormalizeParticipants trims participant names and checks the basic shape of
// the list: non-empty names and at most one user row. It returns the trimmed
// copy so later validators and the persistence layer see canonical names.
func NormalizeParticipants(participants []ParticipantInput) ([]ParticipantInput, error) {
	out := make([]ParticipantInput, len(participants))
	userSeen := false
	for i, p := range participants {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return nil, NewValidationError(FieldParticipants, "participant name cannot be empty")
		}
		if p.IsUser {
			if userSeen {
				return nil, NewValidationError(FieldParticipants, "only one participant can be the user")
			}
			userSeen = true
		}
		out[i] = p
	}
	return out, nil
}

// ValidateParticipantCount requires at least two participants to split with.
func ValidateParticipantCount(participants []ParticipantInput) error {
	if len(participants) < 2 {
		return NewValidationError(FieldParticipants, "a shared expense needs at least 2 participants")
	}
	return nil
}

// ValidatePositiveShares rejects zero or negative share amounts.
func ValidatePositiveShares(participants []ParticipantInput) error {
	for _, p := range participants {
		if !p.ShareAmount.IsPositive() {
			return NewValidationError(FieldParticipants, "share amount for %q must be greater than zero", p.Name)
		}
	}
	return nil
}

// ValidateUniqueNames rejects duplicate participant names within one split.
// Uniqueness is checked on the name each row resolves to: the user's row
// always resolves to "You", so a friend literally named "You" collides with
// it regardless of what the user row was entered as.
func ValidateUniqueNames(participants []ParticipantInput) error {
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		name := p.Name
		if p.IsUser {
			name = UserDisplayName
		}
		if seen[name] {
			return NewValidationError(FieldParticipants, "duplicate participant %q", name)
		}
		seen[name] = true
	}
	return nil
}

// ValidateShareSum requires the shares to sum exactly to the expense total.
// Decimal equality, no tolerance.
func ValidateShareSum(participants []ParticipantInput, total decimal.Decimal) error {
	sum := decimal.Zero
	for _, p := range participants {
		sum = sum.Add(p.ShareAmount)
	}
	if !sum.Equal(total) {
		return NewValidationError(FieldParticipants,
			"share amounts must sum to total: got %s, expected %s", sum.String(), total.String())
	}
	return nil
}

// ValidatePayerMembership requires the payer to be one of the participants.
func ValidatePayerMembership(participants []ParticipantInput, payerName string) error {
	payerName = strings.TrimSpace(payerName)
	if payerName == "" {
		return NewValidationError(FieldPayer, "payer is required")
	}
	for _, p := range participants {
		if p.Name == payerName {
			return nil
		}
	}
	return NewValidationError(FieldPayer, "payer %q is not one of the participants", payerName)
}

// ValidateSplit runs the full validation chain for a split in order: list
// shape, positive shares, name uniqueness, share sum, payer membership.
// On success it returns the normalized participant list.
func ValidateSplit(participants []ParticipantInput, total decimal.Decimal, payerName string) ([]ParticipantInput, error) {
	if err := ValidateParticipantCount(participants); err != nil {
		return nil, err
	}
	normalized, err := NormalizeParticipants(participants)
	if err != nil {
		return nil, err
	}
	if err := ValidatePositiveShares(normalized); err != nil {
		return nil, err
	}
	if err := ValidateUniqueNames(normalized); err != nil {
		return nil, err
	}
	if err := ValidateShareSum(normalized, total); err != nil {
		return nil, err
	}
	if err := ValidatePayerMembership(normalized, payerName); err != nil {
		return nil, err
	}
	return normalized, nil
}
