package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"finance_tracker_echo/internal/models"
)

// RecurringService materializes due recurring transactions into real expense
// and income rows. The worker calls ProcessDue on a ticker.
type RecurringService struct {
	db *gorm.DB
}

func NewRecurringService(db *gorm.DB) *RecurringService {
	return &RecurringService{db: db}
}

// ProcessDue scans active recurring transactions and materializes every one
// whose next due date has passed, advancing last_processed_date. Each
// transaction materializes at most one occurrence per call; the worker's
// ticker catches up on the rest.
func (s *RecurringService) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	var recurring []models.RecurringTransaction
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&recurring).Error
	if err != nil {
		return 0, fmt.Errorf("failed to load recurring transactions: %w", err)
	}

	processed := 0
	for i := range recurring {
		rt := &recurring[i]
		if !rt.IsDue(now) {
			continue
		}
		if err := s.materialize(ctx, rt); err != nil {
			slog.Error("Failed to materialize recurring transaction",
				"recurring_id", rt.ID, "error", err)
			continue
		}
		processed++
	}
	return processed, nil
}

func (s *RecurringService) materialize(ctx context.Context, rt *models.RecurringTransaction) error {
	due := rt.NextDue()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch rt.TransactionType {
		case models.TransactionTypeIncome:
			income := models.Income{
				UserID:      rt.UserID,
				Date:        due,
				Amount:      rt.Amount,
				Currency:    rt.Currency,
				Description: rt.Description,
				Source:      rt.Category,
			}
			if err := tx.Create(&income).Error; err != nil {
				return fmt.Errorf("failed to create income: %w", err)
			}
		default:
			expense := models.Expense{
				UserID:      rt.UserID,
				Date:        due,
				Amount:      rt.Amount,
				Currency:    rt.Currency,
				Description: rt.Description,
				Category:    rt.Category,
				BaseAmount:  rt.Amount,
			}
			if err := tx.Create(&expense).Error; err != nil {
				return fmt.Errorf("failed to create expense: %w", err)
			}
		}

		rt.LastProcessedDate = &due
		if err := tx.Save(rt).Error; err != nil {
			return fmt.Errorf("failed to advance recurring transaction: %w", err)
		}

		slog.Info("Recurring transaction materialized",
			"recurring_id", rt.ID, "user_id", rt.UserID,
			"type", rt.TransactionType, "date", due.Format("2006-01-02"))
		return nil
	})
}
