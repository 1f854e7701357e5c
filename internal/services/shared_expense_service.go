package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance_tracker_echo/internal/ledger"
	"finance_tracker_echo/internal/models"
)

// CreateSharedExpenseInput carries everything needed to record a shared
// expense: the base expense fields plus the split metadata.
type CreateSharedExpenseInput struct {
	Date         time.Time
	Amount       decimal.Decimal
	Currency     string
	Description  string
	Category     string
	Participants []ledger.ParticipantInput
	PayerName    string
}

// SharedExpenseService creates and queries shared expenses. Creation writes
// the Expense, SharedExpense, Participant, and Share rows in one transaction
// so a split can never be persisted with shares that do not sum to the total.
type SharedExpenseService struct {
	db      *gorm.DB
	friends *FriendService
	rates   *ExchangeRateService
}

func NewSharedExpenseService(db *gorm.DB, friends *FriendService, rates *ExchangeRateService) *SharedExpenseService {
	return &SharedExpenseService{db: db, friends: friends, rates: rates}
}

// CreateSharedExpense validates the split and persists it atomically.
// Any violated constraint aborts the whole creation with a ValidationError
// naming the offending field; no partial writes.
func (s *SharedExpenseService) CreateSharedExpense(ctx context.Context, user *models.User, input CreateSharedExpenseInput) (*models.SharedExpense, error) {
	if !input.Amount.IsPositive() {
		return nil, ledger.NewValidationError("amount", "expense amount must be greater than zero")
	}

	participants, err := ledger.ValidateSplit(input.Participants, input.Amount, input.PayerName)
	if err != nil {
		return nil, err
	}
	payerName := strings.TrimSpace(input.PayerName)

	baseAmount := input.Amount
	if s.rates != nil && input.Currency != "" && input.Currency != user.Currency {
		rate := s.rates.GetExchangeRate(ctx, input.Currency, user.Currency)
		baseAmount = input.Amount.Mul(rate).Round(2)
	}

	var shared models.SharedExpense
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := EnsureCategory(ctx, tx, user.ID, input.Category); err != nil {
			return err
		}
		expense := models.Expense{
			UserID:      user.ID,
			Date:        input.Date,
			Amount:      input.Amount,
			Currency:    input.Currency,
			Description: input.Description,
			Category:    input.Category,
			BaseAmount:  baseAmount,
		}
		if err := tx.Create(&expense).Error; err != nil {
			return fmt.Errorf("failed to create expense: %w", err)
		}

		shared = models.SharedExpense{ExpenseID: expense.ID}
		if err := tx.Create(&shared).Error; err != nil {
			return fmt.Errorf("failed to create shared expense: %w", err)
		}

		for _, p := range participants {
			var friendID *uint
			if !p.IsUser {
				friend, err := s.friends.GetOrCreate(tx, user.ID, p.Name)
				if err != nil {
					return err
				}
				friendID = &friend.ID
			}

			participant := models.Participant{
				SharedExpenseID: shared.ID,
				FriendID:        friendID,
				IsUser:          p.IsUser,
				IsPayer:         p.Name == payerName,
			}
			if err := tx.Create(&participant).Error; err != nil {
				return fmt.Errorf("failed to create participant: %w", err)
			}

			share := models.Share{
				SharedExpenseID: shared.ID,
				ParticipantID:   participant.ID,
				Amount:          p.ShareAmount,
			}
			if err := tx.Create(&share).Error; err != nil {
				return fmt.Errorf("failed to create share: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Shared expense created",
		"user_id", user.ID, "shared_expense_id", shared.ID,
		"amount", input.Amount.String(), "participants", len(participants))

	return s.Get(ctx, user.ID, shared.ID)
}

// Get loads one shared expense with its expense, participants, and shares.
// Records owned by other users are reported as not found.
func (s *SharedExpenseService) Get(ctx context.Context, userID, sharedExpenseID uint) (*models.SharedExpense, error) {
	var shared models.SharedExpense
	err := s.db.WithContext(ctx).
		Joins("JOIN expenses ON expenses.id = shared_expenses.expense_id").
		Where("shared_expenses.id = ? AND expenses.user_id = ?", sharedExpenseID, userID).
		Preload("Expense").
		Preload("Participants.Friend").
		Preload("Shares").
		First(&shared).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "shared expense"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shared expense: %w", err)
	}
	return &shared, nil
}

// List returns the user's shared expenses, optionally bounded by an
// inclusive date range on the expense date, newest first.
func (s *SharedExpenseService) List(ctx context.Context, userID uint, startDate, endDate *time.Time) ([]models.SharedExpense, error) {
	query := s.db.WithContext(ctx).
		Joins("JOIN expenses ON expenses.id = shared_expenses.expense_id").
		Where("expenses.user_id = ?", userID)
	if startDate != nil {
		query = query.Where("expenses.date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("expenses.date <= ?", *endDate)
	}

	var shared []models.SharedExpense
	err := query.
		Preload("Expense").
		Preload("Participants.Friend").
		Preload("Shares").
		Order("expenses.date DESC").
		Find(&shared).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list shared expenses: %w", err)
	}
	return shared, nil
}

// Delete removes a shared expense together with its base expense,
// participants, and shares.
func (s *SharedExpenseService) Delete(ctx context.Context, userID, sharedExpenseID uint) error {
	shared, err := s.Get(ctx, userID, sharedExpenseID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shared_expense_id = ?", shared.ID).Delete(&models.Share{}).Error; err != nil {
			return fmt.Errorf("failed to delete shares: %w", err)
		}
		if err := tx.Where("shared_expense_id = ?", shared.ID).Delete(&models.Participant{}).Error; err != nil {
			return fmt.Errorf("failed to delete participants: %w", err)
		}
		if err := tx.Delete(&models.SharedExpense{}, shared.ID).Error; err != nil {
			return fmt.Errorf("failed to delete shared expense: %w", err)
		}
		if err := tx.Delete(&models.Expense{}, shared.ExpenseID).Error; err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		return nil
	})
}

// ToLedgerRow flattens one loaded shared expense into the value record the
// balance engine consumes.
func ToLedgerRow(shared *models.SharedExpense) ledger.SharedExpenseRow {
	row := ledger.SharedExpenseRow{
		Date:        shared.Expense.Date,
		Description: shared.Expense.Description,
		Total:       shared.Expense.Amount,
	}

	participantsByID := make(map[uint]*models.Participant, len(shared.Participants))
	for i := range shared.Participants {
		participantsByID[shared.Participants[i].ID] = &shared.Participants[i]
	}

	for _, share := range shared.Shares {
		participant, ok := participantsByID[share.ParticipantID]
		if !ok {
			continue
		}
		row.Shares = append(row.Shares, ledger.ShareRow{
			FriendID: participant.FriendID,
			IsUser:   participant.IsUser,
			IsPayer:  participant.IsPayer,
			Amount:   share.Amount,
		})
	}
	return row
}
