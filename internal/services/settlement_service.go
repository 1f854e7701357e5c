package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance_tracker_echo/internal/ledger"
	"finance_tracker_echo/internal/models"
)

// SettlementService records cash settlements between the user and a friend.
// Settlements form an independent ledger of transfers; they never mutate the
// Share rows the balances are computed from.
type SettlementService struct {
	db      *gorm.DB
	friends *FriendService
}

func NewSettlementService(db *gorm.DB, friends *FriendService) *SettlementService {
	return &SettlementService{db: db, friends: friends}
}

// RecordSettlement appends a settlement row. PayerIsUser is true when the
// user handed money to the friend.
func (s *SettlementService) RecordSettlement(ctx context.Context, userID, friendID uint, amount decimal.Decimal, date time.Time, payerIsUser bool, notes string) (*models.Settlement, error) {
	if !amount.IsPositive() {
		return nil, ledger.NewValidationError("amount", "settlement amount must be greater than zero")
	}
	if date.IsZero() {
		return nil, ledger.NewValidationError("date", "settlement date is required")
	}

	friend, err := s.friends.Get(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}

	settlement := models.Settlement{
		UserID:      userID,
		FriendID:    friend.ID,
		Amount:      amount,
		Date:        date,
		PayerIsUser: payerIsUser,
		Notes:       notes,
	}
	if err := s.db.WithContext(ctx).Create(&settlement).Error; err != nil {
		return nil, fmt.Errorf("failed to record settlement: %w", err)
	}

	slog.Info("Settlement recorded",
		"user_id", userID, "friend_id", friend.ID,
		"amount", amount.String(), "payer_is_user", payerIsUser)
	return &settlement, nil
}

// ListForFriend returns the settlements between the user and one friend,
// newest first.
func (s *SettlementService) ListForFriend(ctx context.Context, userID, friendID uint) ([]models.Settlement, error) {
	if _, err := s.friends.Get(ctx, userID, friendID); err != nil {
		return nil, err
	}

	var settlements []models.Settlement
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Order("date DESC").
		Find(&settlements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	return settlements, nil
}
