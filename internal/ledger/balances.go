package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ShareRow is one participant's share of a shared expense, flattened for
// balance calculation. FriendID is nil when the participant is the owning
// user.
type ShareRow struct {
	FriendID *uint
	IsUser   bool
	IsPayer  bool
	Amount   decimal.Decimal
}

// SharedExpenseRow carries the minimal data the balance engine needs for one
// shared expense: the base expense fields plus all participant shares.
type SharedExpenseRow struct {
	Date        time.Time
	Description string
	Total       decimal.Decimal
	Shares      []ShareRow
}

// Balance is the running position with one friend. Positive Net means the
// friend owes the user; negative means the user owes the friend.
type Balance struct {
	Lent     decimal.Decimal `json:"lent"`
	Borrowed decimal.Decimal `json:"borrowed"`
	Net      decimal.Decimal `json:"net"`
}

func (r SharedExpenseRow) userShare() *ShareRow {
	for i := range r.Shares {
		if r.Shares[i].IsUser {
			return &r.Shares[i]
		}
	}
	return nil
}

func (r SharedExpenseRow) payerShare() *ShareRow {
	for i := range r.Shares {
		if r.Shares[i].IsPayer {
			return &r.Shares[i]
		}
	}
	return nil
}

// CalculateBalances walks the shared expenses of a user and produces the
// lent/borrowed/net position per friend.
//
// When the user paid, every other participant's share counts as lent to that
// friend; the user's own share is not a balance. When a friend paid, the
// user's own share counts as borrowed from the payer. A record without a user
// participant is skipped rather than failing the whole report.
//
// Only friends with at least one qualifying expense appear in the result;
// callers treat absent friends as zero.
func CalculateBalances(rows []SharedExpenseRow) map[uint]Balance {
	balances := make(map[uint]Balance)

	get := func(friendID uint) Balance {
		if b, ok := balances[friendID]; ok {
			return b
		}
		return Balance{Lent: decimal.Zero, Borrowed: decimal.Zero, Net: decimal.Zero}
	}

	for _, row := range rows {
		user := row.userShare()
		if user == nil {
			continue
		}

		if user.IsPayer {
			for _, share := range row.Shares {
				if share.IsUser || share.FriendID == nil {
					continue
				}
				b := get(*share.FriendID)
				b.Lent = b.Lent.Add(share.Amount)
				balances[*share.FriendID] = b
			}
		} else {
			payer := row.payerShare()
			if payer == nil || payer.FriendID == nil {
				continue
			}
			b := get(*payer.FriendID)
			b.Borrowed = b.Borrowed.Add(user.Amount)
			balances[*payer.FriendID] = b
		}
	}

	for friendID, b := range balances {
		b.Net = b.Lent.Sub(b.Borrowed)
		balances[friendID] = b
	}
	return balances
}

// FriendSummary is one row of the per-friend balance sheet.
type FriendSummary struct {
	FriendID         uint            `json:"friend_id"`
	Lent             decimal.Decimal `json:"lent"`
	Borrowed         decimal.Decimal `json:"borrowed"`
	Net              decimal.Decimal `json:"net"`
	NetAbs           decimal.Decimal `json:"net_abs"`
	TransactionCount int             `json:"transactions_count"`
}

// SummarizeByFriend builds one summary row per friend that has ever
// participated in a qualifying shared expense, sorted by the absolute net
// balance descending so the largest imbalances come first.
func SummarizeByFriend(rows []SharedExpenseRow) []FriendSummary {
	balances := CalculateBalances(rows)

	counts := make(map[uint]int)
	for _, row := range rows {
		if row.userShare() == nil {
			continue
		}
		for _, share := range row.Shares {
			if share.FriendID != nil {
				counts[*share.FriendID]++
			}
		}
	}

	summaries := make([]FriendSummary, 0, len(counts))
	for friendID, count := range counts {
		b, ok := balances[friendID]
		if !ok {
			b = Balance{Lent: decimal.Zero, Borrowed: decimal.Zero, Net: decimal.Zero}
		}
		summaries = append(summaries, FriendSummary{
			FriendID:         friendID,
			Lent:             b.Lent,
			Borrowed:         b.Borrowed,
			Net:              b.Net,
			NetAbs:           b.Net.Abs(),
			TransactionCount: count,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].NetAbs.Equal(summaries[j].NetAbs) {
			return summaries[i].NetAbs.GreaterThan(summaries[j].NetAbs)
		}
		return summaries[i].FriendID < summaries[j].FriendID
	})
	return summaries
}

// Transaction directions as seen from the owning user.
const (
	DirectionFriendOwes = "friend_owes" // user paid, friend owes their share
	DirectionYouOwe     = "you_owe"     // this friend paid, user owes their share
	DirectionNeutral    = "neutral"     // another participant paid
)

// TransactionDetail justifies one friend's balance contribution from a single
// shared expense.
type TransactionDetail struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Total       decimal.Decimal `json:"total"`
	UserShare   decimal.Decimal `json:"user_share"`
	FriendShare decimal.Decimal `json:"friend_share"`
	PaidByUser  bool            `json:"paid_by_user"`
	Direction   string          `json:"direction"`
}

// TransactionsByFriend expands the shared expenses into per-friend transaction
// histories, used to audit the figures a balance was built from.
func TransactionsByFriend(rows []SharedExpenseRow) map[uint][]TransactionDetail {
	result := make(map[uint][]TransactionDetail)

	for _, row := range rows {
		user := row.userShare()
		if user == nil {
			continue
		}
		payer := row.payerShare()

		for _, share := range row.Shares {
			if share.FriendID == nil {
				continue
			}
			detail := TransactionDetail{
				Date:        row.Date,
				Description: row.Description,
				Total:       row.Total,
				UserShare:   user.Amount,
				FriendShare: share.Amount,
				PaidByUser:  user.IsPayer,
			}
			switch {
			case user.IsPayer:
				detail.Direction = DirectionFriendOwes
			case payer != nil && payer.FriendID != nil && *payer.FriendID == *share.FriendID:
				detail.Direction = DirectionYouOwe
			default:
				detail.Direction = DirectionNeutral
			}
			result[*share.FriendID] = append(result[*share.FriendID], detail)
		}
	}
	return result
}
