package ledger

import "testing"

func TestSettlementAdjustments(t *testing.T) {
	settlements := []SettlementRow{
		{FriendID: alice, Amount: d("50"), PayerIsUser: true},
		{FriendID: alice, Amount: d("20"), PayerIsUser: false},
		{FriendID: bob, Amount: d("30"), PayerIsUser: false},
	}

	adjustments := SettlementAdjustments(settlements)

	// Alice: +50 (user paid) - 20 (friend paid) = +30.
	if !adjustments[alice].Equal(d("30")) {
		t.Errorf("alice adjustment = %s, want 30", adjustments[alice])
	}
	if !adjustments[bob].Equal(d("-30")) {
		t.Errorf("bob adjustment = %s, want -30", adjustments[bob])
	}
}

func TestOutstanding(t *testing.T) {
	tests := []struct {
		name       string
		net        string
		adjustment string
		policy     SettlementPolicy
		want       string
	}{
		{
			// Friend owed 100, friend paid 100 back: settled.
			name: "friend pays off debt", net: "100", adjustment: "-100",
			policy: SettlementPolicyNetted, want: "0",
		},
		{
			// User owed 50, user paid 50: settled.
			name: "user pays off debt", net: "-50", adjustment: "50",
			policy: SettlementPolicyNetted, want: "0",
		},
		{
			name: "partial settlement", net: "200", adjustment: "-80",
			policy: SettlementPolicyNetted, want: "120",
		},
		{
			name: "audit policy leaves net untouched", net: "100", adjustment: "-100",
			policy: SettlementPolicyAudit, want: "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Outstanding(d(tt.net), d(tt.adjustment), tt.policy)
			if !got.Equal(d(tt.want)) {
				t.Errorf("Outstanding(%s, %s, %s) = %s, want %s",
					tt.net, tt.adjustment, tt.policy, got, tt.want)
			}
		})
	}
}

func TestParsePolicy(t *testing.T) {
	if got := ParsePolicy("audit"); got != SettlementPolicyAudit {
		t.Errorf("ParsePolicy(audit) = %s", got)
	}
	if got := ParsePolicy("netted"); got != SettlementPolicyNetted {
		t.Errorf("ParsePolicy(netted) = %s", got)
	}
	if got := ParsePolicy(""); got != SettlementPolicyNetted {
		t.Errorf("ParsePolicy empty default = %s, want netted", got)
	}
}
