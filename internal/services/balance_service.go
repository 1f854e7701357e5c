package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance_tracker_echo/internal/ledger"
	"finance_tracker_echo/internal/models"
)

// FriendBalanceRow is one row of the per-friend balance sheet as served to
// the web layer: the shares-derived figures plus the policy-applied
// outstanding amount and the friend's display data.
type FriendBalanceRow struct {
	FriendID         uint            `json:"friend_id"`
	Name             string          `json:"name"`
	Lent             decimal.Decimal `json:"lent"`
	Borrowed         decimal.Decimal `json:"borrowed"`
	Net              decimal.Decimal `json:"net"`
	NetAbs           decimal.Decimal `json:"net_abs"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	TransactionCount int             `json:"transactions_count"`
}

// BalanceService computes per-friend balances for a user by scanning their
// shared expenses and layering recorded settlements per the configured
// policy. Computation is read-only and idempotent.
type BalanceService struct {
	db       *gorm.DB
	expenses *SharedExpenseService
	policy   ledger.SettlementPolicy
}

func NewBalanceService(db *gorm.DB, expenses *SharedExpenseService, policy ledger.SettlementPolicy) *BalanceService {
	return &BalanceService{db: db, expenses: expenses, policy: policy}
}

// Policy returns the active settlement reconciliation policy.
func (s *BalanceService) Policy() ledger.SettlementPolicy {
	return s.policy
}

func (s *BalanceService) loadRows(ctx context.Context, userID uint, startDate, endDate *time.Time) ([]ledger.SharedExpenseRow, error) {
	shared, err := s.expenses.List(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	rows := make([]ledger.SharedExpenseRow, 0, len(shared))
	for i := range shared {
		rows = append(rows, ToLedgerRow(&shared[i]))
	}
	return rows, nil
}

// CalculateBalances returns the lent/borrowed/net position per friend,
// optionally restricted to an inclusive date range. Friends with no
// qualifying expense are absent; callers default them to zero.
func (s *BalanceService) CalculateBalances(ctx context.Context, userID uint, startDate, endDate *time.Time) (map[uint]ledger.Balance, error) {
	rows, err := s.loadRows(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return ledger.CalculateBalances(rows), nil
}

// GetFriendsSummary builds the full balance sheet: one row per friend who has
// ever participated, sorted by absolute net descending, with the
// policy-applied outstanding amount folded in.
func (s *BalanceService) GetFriendsSummary(ctx context.Context, userID uint) ([]FriendBalanceRow, error) {
	rows, err := s.loadRows(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}
	summaries := ledger.SummarizeByFriend(rows)

	adjustments, err := s.settlementAdjustments(ctx, userID)
	if err != nil {
		return nil, err
	}

	friendIDs := make([]uint, 0, len(summaries))
	for _, summary := range summaries {
		friendIDs = append(friendIDs, summary.FriendID)
	}
	names, err := s.friendNames(ctx, friendIDs)
	if err != nil {
		return nil, err
	}

	result := make([]FriendBalanceRow, 0, len(summaries))
	for _, summary := range summaries {
		adj, ok := adjustments[summary.FriendID]
		if !ok {
			adj = decimal.Zero
		}
		result = append(result, FriendBalanceRow{
			FriendID:         summary.FriendID,
			Name:             names[summary.FriendID],
			Lent:             summary.Lent,
			Borrowed:         summary.Borrowed,
			Net:              summary.Net,
			NetAbs:           summary.NetAbs,
			Outstanding:      ledger.Outstanding(summary.Net, adj, s.policy),
			TransactionCount: summary.TransactionCount,
		})
	}
	return result, nil
}

// GetTransactionsByFriend returns the transaction details backing each
// friend's balance, optionally date-bounded.
func (s *BalanceService) GetTransactionsByFriend(ctx context.Context, userID uint, startDate, endDate *time.Time) (map[uint][]ledger.TransactionDetail, error) {
	rows, err := s.loadRows(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return ledger.TransactionsByFriend(rows), nil
}

func (s *BalanceService) settlementAdjustments(ctx context.Context, userID uint) (map[uint]decimal.Decimal, error) {
	var settlements []models.Settlement
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&settlements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load settlements: %w", err)
	}

	rows := make([]ledger.SettlementRow, 0, len(settlements))
	for _, st := range settlements {
		rows = append(rows, ledger.SettlementRow{
			FriendID:    st.FriendID,
			Amount:      st.Amount,
			PayerIsUser: st.PayerIsUser,
		})
	}
	return ledger.SettlementAdjustments(rows), nil
}

func (s *BalanceService) friendNames(ctx context.Context, friendIDs []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(friendIDs))
	if len(friendIDs) == 0 {
		return names, nil
	}

	var friends []models.Friend
	if err := s.db.WithContext(ctx).Where("id IN ?", friendIDs).Find(&friends).Error; err != nil {
		return nil, fmt.Errorf("failed to load friend names: %w", err)
	}
	for _, f := range friends {
		names[f.ID] = f.Name
	}
	return names, nil
}
