package game

import (
	"context"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardroom/holdem/internal/randutil"
)

func newTestTable(t *testing.T, mock *quartz.Mock, opts ...TableOption) *Table {
	t.Helper()
	logger := log.New(io.Discard)
	base := []TableOption{WithRNG(func() *rand.Rand { return randutil.New(99) })}
	return NewTable("tbl_test", DefaultConfig(), mock, logger, append(base, opts...)...)
}

func startHeadsUp(t *testing.T, mock *quartz.Mock, table *Table) {
	t.Helper()
	ctx := context.Background()

	if _, err := table.AddPlayer("alice", "Alice", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := table.AddPlayer("bob", "Bob", ""); err != nil {
		t.Fatal(err)
	}
	mock.Advance(DefaultConfig().InterHandDelay).MustWait(ctx)

	if got := table.Stage(); got != StagePreflop {
		t.Fatalf("Expected preflop after inter-hand delay, got %s", got)
	}
}

func TestTableWaitsForSecondPlayer(t *testing.T) {
	mock := quartz.NewMock(t)
	table := newTestTable(t, mock)

	if _, err := table.AddPlayer("alice", "Alice", ""); err != nil {
		t.Fatal(err)
	}
	if got := table.Stage(); got != StageWaiting {
		t.Errorf("One player: expected waiting, got %s", got)
	}

	if _, err := table.AddPlayer("bob", "Bob", ""); err != nil {
		t.Fatal(err)
	}
	if got := table.Stage(); got != StageStartingHand {
		t.Errorf("Two players: expected starting_hand, got %s", got)
	}
}

func TestDuplicateAndOverflowJoins(t *testing.T) {
	mock := quartz.NewMock(t)
	table := newTestTable(t, mock)

	if _, err := table.AddPlayer("alice", "Alice", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := table.AddPlayer("alice", "Alice", ""); err != ErrAlreadySeated {
		t.Errorf("Expected ErrAlreadySeated, got %v", err)
	}

	for i := 0; i < 4; i++ {
		id := string(rune('b' + i))
		if _, err := table.AddPlayer(id, id, ""); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := table.AddPlayer("late", "Late", ""); err != ErrTableFull {
		t.Errorf("Expected ErrTableFull, got %v", err)
	}
}

// Heads-up: the dealer posts the small blind, the other player the big
// blind, and the dealer acts first preflop.
func TestHeadsUpBlindsAndFirstToAct(t *testing.T) {
	mock := quartz.NewMock(t)
	table := newTestTable(t, mock)
	startHeadsUp(t, mock, table)

	v := table.View("")
	if v.DealerSeat != 0 || v.SmallBlindSeat != 0 {
		t.Errorf("Heads-up dealer must post the small blind: dealer=%d sb=%d", v.DealerSeat, v.SmallBlindSeat)
	}
	if v.BigBlindSeat != 1 {
		t.Errorf("Expected big blind at seat 1, got %d", v.BigBlindSeat)
	}
	if v.CurrentSeat != 0 {
		t.Errorf("Heads-up dealer acts first preflop, got seat %d", v.CurrentSeat)
	}

	if v.Seats[0].Bet != 5 || v.Seats[1].Bet != 10 {
		t.Errorf("Blinds not posted: %d/%d", v.Seats[0].Bet, v.Seats[1].Bet)
	}
	if v.TotalPot != 15 {
		t.Errorf("Expected pot 15 after blinds, got %d", v.TotalPot)
	}
	if v.Seats[0].Chips != 995 || v.Seats[1].Chips != 990 {
		t.Errorf("Stacks wrong after blinds: %d/%d", v.Seats[0].Chips, v.Seats[1].Chips)
	}
}

func TestHeadsUpBigBlindActsFirstPostflop(t *testing.T) {
	mock := quartz.NewMock(t)
	table := newTestTable(t, mock)
	startHeadsUp(t, mock, table)

	if err := table.HandleAction("alice", ActionCall, 0); err != nil {
		t.Fatal(err)
	}
	if err := table.HandleAction("bob", ActionCheck, 0); err != nil {
		t.Fatal(err)
	}

	v := table.View("")
	if v.Stage != "flop" {
		t.Fatalf("Expected flop, got %s", v.Stage)
	}
	if len(v.Community) != 3 {
		t.Errorf("Expected 3 community cards, got %d", len(v.Community))
	}
	if v.CurrentSeat != 1 {
		t.Errorf("Big blind acts first postflop, got seat %d", v.CurrentSeat)
	}
}

func TestWrongTurnRejected(t *testing.T) {
	mock := quartz.NewMock(t)
	table := newTestTable(t, mock)
	startHeadsUp(t, mock, table)

	if err := table.HandleAction("bob", ActionCheck, 0); err != ErrNotYourTurn {
		t.Errorf("Expected ErrNotYourTurn, got %v", err)
	}
	if err := table.HandleAction("ghost", ActionFold, 0); err != ErrNotSeated {
		t.Errorf("Expected ErrNotSeated, got %v", err)
	}
}

func TestFoldEndsHandUncontested(t *testing.T) {
	mock := quartz.NewMock(t)
	table := newTestTable(t, mock)
	startHeadsUp(t, mock, table)

	if err := table.HandleAction("alice", ActionFold, 0); err != nil {
		t.Fatal(err)
	}

	v := table.View("")
	if v.Stage != "payouts" {
		t.Fatalf("Expected payouts after fold-out, got %s", v.Stage)
	}
	if len(v.Winners) != 1 {
		t.Fatalf("Expected one winner, got %d", len(v.Winners))
	}
	w := v.Winners[0]
	if w.PlayerID != "bob" || w.Amount != 15 {
		t.Errorf("Bob should take the blinds: %+v", w)
	}
	if w.HandDesc != "uncontested" {
		t.Errorf("Fold-only win must not reveal a rank, got %q", w.HandDesc)
	}
	if len(w.BestFive) != 0 {
		t.Error("Fold-only win must not fabricate a best five")
	}

	if v.Seats[1].Chips != 1005 || v.Seats[0].Chips != 995 {
		t.Errorf("Stacks wrong after payout: %d/%d", v.Seats[0].Chips, v.Seats[1].Chips)
	}
	if got := table.TotalChips(); got != 2000 {
		t.Errorf("Chips not conserved: %d", got)
	}
}

func TestNextHandStartsAfterPayouts(t *testing.T) {
	mock := quartz.NewMock(t)
	table := newTestTable(t, mock)
	startHeadsUp(t, mock, table)
	ctx := context.Background()
	cfg := DefaultConfig()

	if err := table.HandleAction("alice", ActionFold, 0); err != nil {
		t.Fatal(err)
	}

	mock.Advance(cfg.PayoutDisplay).MustWait(ctx)
	if got := table.Stage(); got != StageStartingHand {
		t.Fatalf("Expected next hand scheduled, got %s", got)
	}
	mock.Advance(cfg.InterHandDelay).MustWait(ctx)

	v := table.View("")
	if v.Stage != "preflop" || v.HandNum != 2 {
		t.Fatalf("Expected hand 2 preflop, got hand %d %s", v.HandNum, v.Stage)
	}
	// Dealer button rotated.
	if v.DealerSeat != 1 {
		t.Errorf("Dealer should rotate to seat 1, got %d", v.DealerSeat)
	}
}

func TestActionTimeoutAutoFolds(t *testing.T) {
	mock := quartz.NewMock(t)
	table := newTestTable(t, mock)
	startHeadsUp(t, mock, table)
	ctx := context.Background()

	mock.Advance(DefaultConfig().ActionTimeout).MustWait(ctx)

	v := table.View("")
	if v.Stage != "payouts" {
		t.Fatalf("Expected payouts after timeout fold, got %s", v.Stage)
	}
	if v.Seats[0].LastAction != "fold" {
		t.Errorf("Expected alice auto-folded, got %q", v.Seats[0].LastAction)
	}
	if len(v.Winners) != 1 || v.Winners[0].PlayerID != "bob" {
		t.Errorf("Bob should win by timeout fold: %+v", v.Winners)
	}
}

func TestTimerCancelledByAction(t *testing.T) {
	mock := quartz.NewMock(t)
	table := newTestTable(t, mock)
	startHeadsUp(t, mock, table)
	ctx := context.Background()
	cfg := DefaultConfig()

	// Alice acts just before the deadline; her timer must not fire at
	// bob, whose own clock starts fresh.
	mock.Advance(cfg.ActionTimeout - time.Second).MustWait(ctx)
	if err := table.HandleAction("alice", ActionCall, 0); err != nil {
		t.Fatal(err)
	}
	mock.Advance(time.Second).MustWait(ctx)

	v := table.View("")
	if v.Stage != "preflop" {
		t.Fatalf("Hand should still be live, got %s", v.Stage)
	}
	if v.CurrentSeat != 1 {
		t.Errorf("Bob should still be to act, got seat %d", v.CurrentSeat)
	}
	if v.Seats[1].Folded {
		t.Error("Stale timer must not fold the next player")
	}
}

func TestAllInFastForwardToShowdown(t *testing.T) {
	mock := quartz.NewMock(t)
	table := newTestTable(t, mock)
	startHeadsUp(t, mock, table)

	if err := table.HandleAction("alice", ActionAllIn, 0); err != nil {
		t.Fatal(err)
	}
	if err := table.HandleAction("bob", ActionCall, 0); err != nil {
		t.Fatal(err)
	}

	v := table.View("")
	if v.Stage != "payouts" {
		t.Fatalf("Expected fast-forward to payouts, got %s", v.Stage)
	}
	if len(v.Community) != 5 {
		t.Errorf("Board must be run out, got %d cards", len(v.Community))
	}
	if len(v.Winners) == 0 {
		t.Fatal("Expected showdown winners")
	}
	paid := 0
	for _, w := range v.Winners {
		paid += w.Amount
		if w.HandDesc == "" || w.HandDesc == "uncontested" {
			t.Errorf("Showdown winner needs a hand rank, got %q", w.HandDesc)
		}
		if len(w.BestFive) != 5 {
			t.Errorf("Showdown winner reveals best five, got %d", len(w.BestFive))
		}
	}
	if paid != 2000 {
		t.Errorf("Payouts must sum to the pot, got %d", paid)
	}
	if got := table.TotalChips(); got != 2000 {
		t.Errorf("Chips not conserved: %d", got)
	}
}

// A player leaving mid-hand folds their hand but their chips stay in the
// pot for whoever wins it.
func TestLeaveMidHandChipsStayInPot(t *testing.T) {
	mock := quartz.NewMock(t)
	table := newTestTable(t, mock)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := table.AddPlayer(id, id, ""); err != nil {
			t.Fatal(err)
		}
	}
	mock.Advance(DefaultConfig().InterHandDelay).MustWait(ctx)

	// Three-handed: dealer 0, SB 1 (b, posts 5), BB 2 (c, posts 10),
	// dealer acts first.
	if err := table.HandleAction("a", ActionCall, 0); err != nil {
		t.Fatal(err)
	}
	if err := table.RemovePlayer("b"); err != nil {
		t.Fatal(err)
	}

	v := table.View("")
	if v.TotalPot != 25 {
		t.Errorf("Departed SB's chips must stay in the pot, got %d", v.TotalPot)
	}
	if v.CurrentSeat != 2 {
		t.Errorf("Action moves to the big blind, got seat %d", v.CurrentSeat)
	}

	if err := table.HandleAction("c", ActionCheck, 0); err != nil {
		t.Fatal(err)
	}
	// Flop: c acts first with b gone.
	if err := table.HandleAction("c", ActionCheck, 0); err != nil {
		t.Fatal(err)
	}
	if err := table.HandleAction("a", ActionBet, 20); err != nil {
		t.Fatal(err)
	}
	if err := table.HandleAction("c", ActionFold, 0); err != nil {
		t.Fatal(err)
	}

	v = table.View("")
	if len(v.Winners) != 1 || v.Winners[0].PlayerID != "a" {
		t.Fatalf("Expected a to win uncontested: %+v", v.Winners)
	}
	if v.Winners[0].Amount != 45 {
		t.Errorf("Pot should include the departed blind: got %d", v.Winners[0].Amount)
	}
	if v.Seats[0].Chips != 1015 {
		t.Errorf("Expected a at 1015 chips, got %d", v.Seats[0].Chips)
	}
}

func TestLeaverBeforeHandJustVacates(t *testing.T) {
	mock := quartz.NewMock(t)
	table := newTestTable(t, mock)

	if _, err := table.AddPlayer("alice", "Alice", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := table.AddPlayer("bob", "Bob", ""); err != nil {
		t.Fatal(err)
	}
	if err := table.RemovePlayer("bob"); err != nil {
		t.Fatal(err)
	}

	if got := table.Stage(); got != StageWaiting {
		t.Errorf("Pending hand start must be cancelled, got %s", got)
	}
	if err := table.RemovePlayer("bob"); err != ErrNotSeated {
		t.Errorf("Expected ErrNotSeated, got %v", err)
	}
}

func TestViewSanitizedPerObserver(t *testing.T) {
	mock := quartz.NewMock(t)
	table := newTestTable(t, mock)
	startHeadsUp(t, mock, table)

	alice := table.View("alice")
	if len(alice.Seats[0].HoleCards) != 2 {
		t.Error("Alice sees her own hole cards")
	}
	if alice.Seats[1].HoleCards != nil {
		t.Error("Alice must not see bob's hole cards")
	}
	if !alice.Seats[1].HasCards {
		t.Error("Alice sees that bob holds cards")
	}

	spectator := table.View("")
	for i, pv := range spectator.Seats {
		if pv != nil && pv.HoleCards != nil {
			t.Errorf("Spectator sees hole cards at seat %d", i)
		}
	}
}

func TestChipConservationDuringBetting(t *testing.T) {
	mock := quartz.NewMock(t)
	table := newTestTable(t, mock)
	startHeadsUp(t, mock, table)

	if got := table.TotalChips(); got != 2000 {
		t.Fatalf("Expected 2000 total, got %d", got)
	}
	if err := table.HandleAction("alice", ActionRaise, 35); err != nil {
		t.Fatal(err)
	}
	if got := table.TotalChips(); got != 2000 {
		t.Errorf("Raise must not create or destroy chips: %d", got)
	}
}

// Once a hand is decided the pot has been paid out; nothing may still count
// as committed while the result is on display.
func TestPayoutSettlesCommitments(t *testing.T) {
	mock := quartz.NewMock(t)
	table := newTestTable(t, mock)
	startHeadsUp(t, mock, table)

	if err := table.HandleAction("alice", ActionFold, 0); err != nil {
		t.Fatal(err)
	}
	if got := table.Stage(); got != StagePayouts {
		t.Fatalf("Expected payouts, got %s", got)
	}

	if got := table.TotalChips(); got != 2000 {
		t.Errorf("Chips not conserved during payouts: %d", got)
	}
	v := table.View("")
	for _, pv := range v.Seats {
		if pv == nil {
			continue
		}
		if pv.Bet != 0 || pv.TotalBet != 0 {
			t.Errorf("Seat %d still shows committed chips: bet=%d total=%d", pv.Seat, pv.Bet, pv.TotalBet)
		}
	}
	if v.TotalPot != 0 {
		t.Errorf("Uncontested pot already paid out, view still shows %d", v.TotalPot)
	}
}
