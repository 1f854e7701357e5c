package ledger

import "github.com/shopspring/decimal"

// SettlementPolicy controls how recorded settlements combine with the
// share-derived net balance when a balance sheet is displayed.
type SettlementPolicy string

const (
	// SettlementPolicyNetted folds settlements into the displayed balance at
	// read time: outstanding = net from shares adjusted by cash transfers.
	SettlementPolicyNetted SettlementPolicy = "netted"

	// SettlementPolicyAudit keeps settlements as a pure audit trail; the
	// displayed balance is always the shares-only net.
	SettlementPolicyAudit SettlementPolicy = "audit"
)

// ParsePolicy maps a configuration string to a SettlementPolicy, defaulting
// to netted.
func ParsePolicy(s string) SettlementPolicy {
	if SettlementPolicy(s) == SettlementPolicyAudit {
		return SettlementPolicyAudit
	}
	return SettlementPolicyNetted
}

// SettlementRow is one recorded cash transfer between the user and a friend.
// PayerIsUser is true when the user handed money to the friend.
type SettlementRow struct {
	FriendID    uint
	Amount      decimal.Decimal
	PayerIsUser bool
}

// SettlementAdjustments sums settlements per friend into a signed adjustment.
// A transfer from the user raises the net in the user's favor (it pays down
// what the user owes, or adds to what the friend owes back); a transfer from
// the friend lowers it.
func SettlementAdjustments(settlements []SettlementRow) map[uint]decimal.Decimal {
	adjustments := make(map[uint]decimal.Decimal)
	for _, s := range settlements {
		adj, ok := adjustments[s.FriendID]
		if !ok {
			adj = decimal.Zero
		}
		if s.PayerIsUser {
			adj = adj.Add(s.Amount)
		} else {
			adj = adj.Sub(s.Amount)
		}
		adjustments[s.FriendID] = adj
	}
	return adjustments
}

// Outstanding applies the settlement policy to a shares-only net balance.
// Under the audit policy the adjustment is ignored and the net is returned
// unchanged.
func Outstanding(net, adjustment decimal.Decimal, policy SettlementPolicy) decimal.Decimal {
	if policy == SettlementPolicyAudit {
		return net
	}
	return net.Add(adjustment)
}
