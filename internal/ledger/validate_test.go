package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestValidateSplit(t *testing.T) {
	tests := []struct {
		name         string
		participants []ParticipantInput
		total        string
		payer        string
		wantField    string // empty means the split is valid
	}{
		{
			name: "valid two-way split",
			participants: []ParticipantInput{
				{Name: "You", IsUser: true, ShareAmount: d("100")},
				{Name: "Alice", ShareAmount: d("200")},
			},
			total: "300",
			payer: "You",
		},
		{
			name: "single participant rejected",
			participants: []ParticipantInput{
				{Name: "You", IsUser: true, ShareAmount: d("100")},
			},
			total:     "100",
			payer:     "You",
			wantField: FieldParticipants,
		},
		{
			name: "empty name rejected",
			participants: []ParticipantInput{
				{Name: "You", IsUser: true, ShareAmount: d("50")},
				{Name: "   ", ShareAmount: d("50")},
			},
			total:     "100",
			payer:     "You",
			wantField: FieldParticipants,
		},
		{
			name: "two user rows rejected",
			participants: []ParticipantInput{
				{Name: "You", IsUser: true, ShareAmount: d("50")},
				{Name: "Me", IsUser: true, ShareAmount: d("50")},
			},
			total:     "100",
			payer:     "You",
			wantField: FieldParticipants,
		},
		{
			name: "zero share rejected",
			participants: []ParticipantInput{
				{Name: "You", IsUser: true, ShareAmount: d("100")},
				{Name: "Alice", ShareAmount: d("0")},
			},
			total:     "100",
			payer:     "You",
			wantField: FieldParticipants,
		},
		{
			name: "negative share rejected",
			participants: []ParticipantInput{
				{Name: "You", IsUser: true, ShareAmount: d("150")},
				{Name: "Alice", ShareAmount: d("-50")},
			},
			total:     "100",
			payer:     "You",
			wantField: FieldParticipants,
		},
		{
			name: "duplicate names rejected",
			participants: []ParticipantInput{
				{Name: "Alice", ShareAmount: d("50")},
				{Name: "Alice ", ShareAmount: d("50")},
			},
			total:     "100",
			payer:     "Alice",
			wantField: FieldParticipants,
		},
		{
			name: "friend named You collides with the user's resolved name",
			participants: []ParticipantInput{
				{Name: "Me", IsUser: true, ShareAmount: d("50")},
				{Name: "You", ShareAmount: d("50")},
			},
			total:     "100",
			payer:     "You",
			wantField: FieldParticipants,
		},
		{
			name: "shares not summing to total rejected",
			participants: []ParticipantInput{
				{Name: "You", IsUser: true, ShareAmount: d("50")},
				{Name: "Alice", ShareAmount: d("30")},
			},
			total:     "100",
			payer:     "You",
			wantField: FieldParticipants,
		},
		{
			name: "no rounding tolerance on share sum",
			participants: []ParticipantInput{
				{Name: "You", IsUser: true, ShareAmount: d("33.33")},
				{Name: "Alice", ShareAmount: d("33.33")},
				{Name: "Bob", ShareAmount: d("33.33")},
			},
			total:     "100",
			payer:     "You",
			wantField: FieldParticipants,
		},
		{
			name: "payer not in participant list rejected",
			participants: []ParticipantInput{
				{Name: "You", IsUser: true, ShareAmount: d("50")},
				{Name: "Alice", ShareAmount: d("50")},
			},
			total:     "100",
			payer:     "Bob",
			wantField: FieldPayer,
		},
		{
			name: "payer name is trimmed before matching",
			participants: []ParticipantInput{
				{Name: "You", IsUser: true, ShareAmount: d("50")},
				{Name: "Alice", ShareAmount: d("50")},
			},
			total: "100",
			payer: "  Alice  ",
		},
		{
			name: "friend can be the payer",
			participants: []ParticipantInput{
				{Name: "You", IsUser: true, ShareAmount: d("100")},
				{Name: "Alice", ShareAmount: d("100")},
			},
			total: "200",
			payer: "Alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateSplit(tt.participants, d(tt.total), tt.payer)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateSplit() unexpected error: %v", err)
				}
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("ValidateSplit() error = %v, want *ValidationError", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("ValidateSplit() field = %q, want %q", vErr.Field, tt.wantField)
			}
		})
	}
}

func TestValidateSplitNormalizesNames(t *testing.T) {
	participants := []ParticipantInput{
		{Name: "  You ", IsUser: true, ShareAmount: d("60")},
		{Name: " Alice", ShareAmount: d("40")},
	}
	normalized, err := ValidateSplit(participants, d("100"), "You")
	if err != nil {
		t.Fatalf("ValidateSplit() unexpected error: %v", err)
	}
	if normalized[0].Name != "You" || normalized[1].Name != "Alice" {
		t.Errorf("names not trimmed: %q, %q", normalized[0].Name, normalized[1].Name)
	}
}

func TestValidationOrderSumBeforePayer(t *testing.T) {
	// Both the sum and the payer are wrong; the sum check runs first.
	participants := []ParticipantInput{
		{Name: "You", IsUser: true, ShareAmount: d("50")},
		{Name: "Alice", ShareAmount: d("30")},
	}
	_, err := ValidateSplit(participants, d("100"), "Bob")

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("ValidateSplit() error = %v, want *ValidationError", err)
	}
	if vErr.Field != FieldParticipants {
		t.Errorf("field = %q, want %q (share sum validated before payer)", vErr.Field, FieldParticipants)
	}
}

func TestIndividualValidators(t *testing.T) {
	valid := []ParticipantInput{
		{Name: "You", IsUser: true, ShareAmount: d("50")},
		{Name: "Alice", ShareAmount: d("50")},
	}

	if err := ValidateParticipantCount(valid); err != nil {
		t.Errorf("ValidateParticipantCount() = %v, want nil", err)
	}
	if err := ValidatePositiveShares(valid); err != nil {
		t.Errorf("ValidatePositiveShares() = %v, want nil", err)
	}
	if err := ValidateUniqueNames(valid); err != nil {
		t.Errorf("ValidateUniqueNames() = %v, want nil", err)
	}
	resolvedCollision := []ParticipantInput{
		{Name: "Me", IsUser: true, ShareAmount: d("50")},
		{Name: "You", ShareAmount: d("50")},
	}
	if err := ValidateUniqueNames(resolvedCollision); err == nil {
		t.Error("ValidateUniqueNames() with friend named You = nil, want error")
	}
	if err := ValidateShareSum(valid, d("100")); err != nil {
		t.Errorf("ValidateShareSum() = %v, want nil", err)
	}
	if err := ValidatePayerMembership(valid, "Alice"); err != nil {
		t.Errorf("ValidatePayerMembership() = %v, want nil", err)
	}
	if err := ValidatePayerMembership(valid, ""); err == nil {
		t.Error("ValidatePayerMembership() with empty payer = nil, want error")
	}
}
