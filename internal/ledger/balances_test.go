package ledger

import (
	"testing"
	"time"
)

func friendID(id uint) *uint {
	return &id
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

const (
	alice = uint(1)
	bob   = uint(2)
)

// userPaid builds a row where the user paid the whole amount.
func userPaid(date string, total string, userShare string, friendShares map[uint]string) SharedExpenseRow {
	row := SharedExpenseRow{
		Date:  day(date),
		Total: d(total),
		Shares: []ShareRow{
			{IsUser: true, IsPayer: true, Amount: d(userShare)},
		},
	}
	for id, amount := range friendShares {
		row.Shares = append(row.Shares, ShareRow{FriendID: friendID(id), Amount: d(amount)})
	}
	return row
}

// friendPaid builds a row where the given friend paid the whole amount.
func friendPaid(date string, total string, payer uint, userShare string, friendShares map[uint]string) SharedExpenseRow {
	row := SharedExpenseRow{
		Date:  day(date),
		Total: d(total),
		Shares: []ShareRow{
			{IsUser: true, Amount: d(userShare)},
		},
	}
	for id, amount := range friendShares {
		row.Shares = append(row.Shares, ShareRow{
			FriendID: friendID(id),
			IsPayer:  id == payer,
			Amount:   d(amount),
		})
	}
	return row
}

func assertBalance(t *testing.T, balances map[uint]Balance, friend uint, lent, borrowed, net string) {
	t.Helper()
	b, ok := balances[friend]
	if !ok {
		t.Fatalf("no balance for friend %d", friend)
	}
	if !b.Lent.Equal(d(lent)) {
		t.Errorf("lent = %s, want %s", b.Lent, lent)
	}
	if !b.Borrowed.Equal(d(borrowed)) {
		t.Errorf("borrowed = %s, want %s", b.Borrowed, borrowed)
	}
	if !b.Net.Equal(d(net)) {
		t.Errorf("net = %s, want %s", b.Net, net)
	}
}

func TestCalculateBalancesUserIsPayer(t *testing.T) {
	// 300 split You=100/Alice=200, user paid: Alice owes 200.
	rows := []SharedExpenseRow{
		userPaid("2024-01-10", "300", "100", map[uint]string{alice: "200"}),
	}
	balances := CalculateBalances(rows)
	assertBalance(t, balances, alice, "200", "0", "200")
}

func TestCalculateBalancesFriendIsPayer(t *testing.T) {
	// 200 split You=100/Alice=100, Alice paid: user owes Alice 100.
	rows := []SharedExpenseRow{
		friendPaid("2024-01-10", "200", alice, "100", map[uint]string{alice: "100"}),
	}
	balances := CalculateBalances(rows)
	assertBalance(t, balances, alice, "0", "100", "-100")
}

func TestCalculateBalancesNet(t *testing.T) {
	// User pays 300 (Alice share 200), then Alice pays 150 (user share 75):
	// net = 200 - 75 = 125 in the user's favor.
	rows := []SharedExpenseRow{
		userPaid("2024-01-10", "300", "100", map[uint]string{alice: "200"}),
		friendPaid("2024-01-15", "150", alice, "75", map[uint]string{alice: "75"}),
	}
	balances := CalculateBalances(rows)
	assertBalance(t, balances, alice, "200", "75", "125")
}

func TestCalculateBalancesExcludesOwnShare(t *testing.T) {
	rows := []SharedExpenseRow{
		userPaid("2024-01-10", "300", "100", map[uint]string{alice: "150", bob: "50"}),
	}
	balances := CalculateBalances(rows)
	assertBalance(t, balances, alice, "150", "0", "150")
	assertBalance(t, balances, bob, "50", "0", "50")
}

func TestCalculateBalancesSkipsRowWithoutUser(t *testing.T) {
	// A malformed record must not fail the whole report.
	malformed := SharedExpenseRow{
		Date:  day("2024-01-10"),
		Total: d("100"),
		Shares: []ShareRow{
			{FriendID: friendID(alice), IsPayer: true, Amount: d("60")},
			{FriendID: friendID(bob), Amount: d("40")},
		},
	}
	rows := []SharedExpenseRow{
		malformed,
		userPaid("2024-01-11", "100", "40", map[uint]string{alice: "60"}),
	}
	balances := CalculateBalances(rows)
	assertBalance(t, balances, alice, "60", "0", "60")
	if _, ok := balances[bob]; ok {
		t.Error("malformed row contributed a balance for bob")
	}
}

func TestCalculateBalancesNoActivityAbsent(t *testing.T) {
	balances := CalculateBalances(nil)
	if len(balances) != 0 {
		t.Errorf("expected empty balance map, got %d entries", len(balances))
	}
}

func TestCalculateBalancesIdempotent(t *testing.T) {
	rows := []SharedExpenseRow{
		userPaid("2024-01-10", "300", "100", map[uint]string{alice: "200"}),
		friendPaid("2024-01-15", "150", alice, "75", map[uint]string{alice: "75"}),
	}
	first := CalculateBalances(rows)
	second := CalculateBalances(rows)
	if len(first) != len(second) {
		t.Fatalf("result sizes differ: %d vs %d", len(first), len(second))
	}
	for id, b := range first {
		other := second[id]
		if !b.Lent.Equal(other.Lent) || !b.Borrowed.Equal(other.Borrowed) || !b.Net.Equal(other.Net) {
			t.Errorf("friend %d: %+v != %+v", id, b, other)
		}
	}
}

func TestDateRangeMonotonicity(t *testing.T) {
	all := []SharedExpenseRow{
		userPaid("2024-01-10", "300", "100", map[uint]string{alice: "200"}),
		friendPaid("2024-02-15", "150", alice, "75", map[uint]string{alice: "75"}),
		userPaid("2024-03-01", "80", "30", map[uint]string{alice: "50"}),
	}

	// A sub-range never reports larger magnitudes than the superset.
	var subset []SharedExpenseRow
	for _, row := range all {
		if !row.Date.Before(day("2024-01-01")) && !row.Date.After(day("2024-02-28")) {
			subset = append(subset, row)
		}
	}

	full := CalculateBalances(all)
	partial := CalculateBalances(subset)
	for id, p := range partial {
		f := full[id]
		if p.Lent.GreaterThan(f.Lent) {
			t.Errorf("friend %d: restricted lent %s exceeds full %s", id, p.Lent, f.Lent)
		}
		if p.Borrowed.GreaterThan(f.Borrowed) {
			t.Errorf("friend %d: restricted borrowed %s exceeds full %s", id, p.Borrowed, f.Borrowed)
		}
	}
}

func TestDateFilterSelectsSingleExpense(t *testing.T) {
	first := userPaid("2024-01-10", "300", "100", map[uint]string{alice: "200"})
	second := friendPaid("2024-02-15", "150", alice, "75", map[uint]string{alice: "75"})

	// Restricting to January keeps only the first expense's contribution.
	var filtered []SharedExpenseRow
	for _, row := range []SharedExpenseRow{first, second} {
		if !row.Date.After(day("2024-01-31")) {
			filtered = append(filtered, row)
		}
	}
	balances := CalculateBalances(filtered)
	assertBalance(t, balances, alice, "200", "0", "200")
}

func TestSummarizeByFriend(t *testing.T) {
	rows := []SharedExpenseRow{
		userPaid("2024-01-10", "300", "100", map[uint]string{alice: "200"}),
		friendPaid("2024-01-15", "150", alice, "75", map[uint]string{alice: "75"}),
		userPaid("2024-01-20", "60", "20", map[uint]string{bob: "40"}),
	}

	summaries := SummarizeByFriend(rows)
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}

	// Alice has |net|=125, Bob |net|=40: Alice sorts first.
	if summaries[0].FriendID != alice {
		t.Errorf("first summary is friend %d, want %d", summaries[0].FriendID, alice)
	}
	if !summaries[0].NetAbs.Equal(d("125")) {
		t.Errorf("alice net_abs = %s, want 125", summaries[0].NetAbs)
	}
	if summaries[0].TransactionCount != 2 {
		t.Errorf("alice transactions = %d, want 2", summaries[0].TransactionCount)
	}
	if summaries[1].FriendID != bob || summaries[1].TransactionCount != 1 {
		t.Errorf("bob summary = %+v", summaries[1])
	}
}

func TestTransactionsByFriend(t *testing.T) {
	rows := []SharedExpenseRow{
		userPaid("2024-01-10", "300", "100", map[uint]string{alice: "200"}),
		friendPaid("2024-01-15", "150", alice, "75", map[uint]string{alice: "75"}),
		friendPaid("2024-01-20", "90", bob, "30", map[uint]string{alice: "30", bob: "30"}),
	}
	rows[0].Description = "Dinner"

	byFriend := TransactionsByFriend(rows)

	aliceTxns := byFriend[alice]
	if len(aliceTxns) != 3 {
		t.Fatalf("alice has %d transactions, want 3", len(aliceTxns))
	}
	if aliceTxns[0].Direction != DirectionFriendOwes || aliceTxns[0].Description != "Dinner" {
		t.Errorf("first alice transaction = %+v", aliceTxns[0])
	}
	if !aliceTxns[0].FriendShare.Equal(d("200")) || !aliceTxns[0].UserShare.Equal(d("100")) {
		t.Errorf("first alice shares = %s/%s", aliceTxns[0].FriendShare, aliceTxns[0].UserShare)
	}
	if aliceTxns[1].Direction != DirectionYouOwe {
		t.Errorf("second alice direction = %s, want %s", aliceTxns[1].Direction, DirectionYouOwe)
	}
	// Bob paid the third expense, so it is neutral from Alice's side.
	if aliceTxns[2].Direction != DirectionNeutral {
		t.Errorf("third alice direction = %s, want %s", aliceTxns[2].Direction, DirectionNeutral)
	}

	bobTxns := byFriend[bob]
	if len(bobTxns) != 1 {
		t.Fatalf("bob has %d transactions, want 1", len(bobTxns))
	}
	if bobTxns[0].Direction != DirectionYouOwe {
		t.Errorf("bob direction = %s, want %s", bobTxns[0].Direction, DirectionYouOwe)
	}
}
