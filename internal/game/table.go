package game

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/evaluator"
	"github.com/cardroom/holdem/internal/randutil"
)

// Config holds the table parameters.
type Config struct {
	MaxPlayers     int
	SmallBlind     int
	BigBlind       int
	StartingStack  int
	ActionTimeout  time.Duration
	PayoutDisplay  time.Duration
	InterHandDelay time.Duration
}

// DefaultConfig returns the standard five-seat table.
func DefaultConfig() Config {
	return Config{
		MaxPlayers:     5,
		SmallBlind:     5,
		BigBlind:       10,
		StartingStack:  1000,
		ActionTimeout:  20 * time.Second,
		PayoutDisplay:  3 * time.Second,
		InterHandDelay: 2 * time.Second,
	}
}

// ActionRequest is emitted whenever a new player becomes current to act.
type ActionRequest struct {
	PlayerID string `json:"playerId"`
	Seat     int    `json:"seat"`
	Options
	TimeLeftMs int64 `json:"timeLeftMs"`
}

// Callbacks are the table's only outbound channel. Both are invoked
// synchronously from the mutation that caused them, with the table lock
// held: they must not call back into the table. OnStateChange receives the
// full unsanitized snapshot; the transport runs Sanitize per observer
// before anything leaves the process.
type Callbacks struct {
	OnStateChange   func(TableView)
	OnActionRequest func(ActionRequest)
}

// TableOption configures a Table during creation.
type TableOption func(*Table)

// WithRNG overrides how the per-hand shuffle rng is constructed. The
// default draws a cryptographic seed for every hand.
func WithRNG(newRNG func() *rand.Rand) TableOption {
	return func(t *Table) { t.newRNG = newRNG }
}

// WithDeck pins the table to a prearranged deck, rewound at every hand
// start. Deterministic deals for tests; part of the testability contract.
func WithDeck(d *deck.Deck) TableOption {
	return func(t *Table) { t.deck = d; t.fixedDeck = true }
}

// WithCallbacks binds the outbound callbacks.
func WithCallbacks(cb Callbacks) TableOption {
	return func(t *Table) { t.cb = cb }
}

// Table is the authoritative state for one poker table. All entry points
// serialize on the table mutex; timer callbacks re-enter through the same
// lock and are generation-checked so a cancelled timer never acts.
type Table struct {
	mu     sync.Mutex
	id     string
	cfg    Config
	clock  quartz.Clock
	logger *log.Logger
	newRNG func() *rand.Rand
	cb     Callbacks

	seats     []*Player
	stage     Stage
	deck      *deck.Deck
	fixedDeck bool
	community []deck.Card
	pots      []Pot

	dealerSeat     int
	smallBlindSeat int
	bigBlindSeat   int
	currentSeat    int

	betting    *BettingRound
	handNum    int
	handActive bool
	winners    []WinnerView

	// Chips committed by players who left mid-hand stay in the pots but
	// are never eligible to win.
	departed []Contribution

	timerGen       int
	actionTimer    *quartz.Timer
	delayTimer     *quartz.Timer
	actionDeadline time.Time
}

// NewTable creates a table with no seated players.
func NewTable(id string, cfg Config, clock quartz.Clock, logger *log.Logger, opts ...TableOption) *Table {
	t := &Table{
		id:             id,
		cfg:            cfg,
		clock:          clock,
		logger:         logger.WithPrefix("table").With("table", id),
		newRNG:         func() *rand.Rand { return randutil.NewCrypto() },
		seats:          make([]*Player, cfg.MaxPlayers),
		stage:          StageWaiting,
		betting:        NewBettingRound(),
		dealerSeat:     -1,
		smallBlindSeat: -1,
		bigBlindSeat:   -1,
		currentSeat:    -1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ID returns the table identifier.
func (t *Table) ID() string { return t.id }

// Config returns the table parameters.
func (t *Table) Config() Config { return t.cfg }

// Stage returns the current state machine stage.
func (t *Table) Stage() Stage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stage
}

// PlayerCount returns the number of occupied seats.
func (t *Table) PlayerCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.countSeated()
}

// Empty reports whether the table has no seated players while waiting for
// players; the reaper removes such tables.
func (t *Table) Empty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.countSeated() == 0 && t.stage == StageWaiting
}

// TotalChips returns stacks plus committed chips; constant within a hand.
func (t *Table) TotalChips() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := 0
	for _, p := range t.seats {
		if p != nil {
			total += p.Chips + p.TotalBet
		}
	}
	for _, c := range t.departed {
		total += c.Amount
	}
	return total
}

// Close cancels all pending timers. The table must not be used afterwards.
func (t *Table) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelTimers()
}

// AddPlayer seats a new player with the starting stack. The player joins
// the next hand; a second join starts the first one.
func (t *Table) AddPlayer(id, name, avatarURL string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.findPlayer(id) != nil {
		return -1, ErrAlreadySeated
	}

	seat := -1
	for i, p := range t.seats {
		if p == nil {
			seat = i
			break
		}
	}
	if seat < 0 {
		return -1, ErrTableFull
	}

	t.seats[seat] = &Player{
		ID:        id,
		Name:      name,
		AvatarURL: avatarURL,
		Seat:      seat,
		Chips:     t.cfg.StartingStack,
	}
	t.logger.Info("player seated", "player", id, "name", name, "seat", seat)

	if t.stage == StageWaiting && t.countSeated() >= 2 {
		t.scheduleHandStart()
	}

	t.emitStateChange()
	return seat, nil
}

// RemovePlayer empties the player's seat. Mid-hand their committed chips
// stay in the pots with fold semantics, positional markers move on, and the
// hand continues.
func (t *Table) RemovePlayer(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := t.findPlayer(id)
	if p == nil {
		return ErrNotSeated
	}
	seat := p.Seat
	wasCurrent := seat == t.currentSeat

	t.seats[seat] = nil
	t.logger.Info("player left", "player", id, "seat", seat)

	if t.handActive && p.Active && t.stage.IsActionStage() {
		if p.TotalBet > 0 {
			t.departed = append(t.departed, Contribution{
				PlayerID: p.ID,
				Seat:     seat,
				Amount:   p.TotalBet,
				Folded:   true,
			})
		}
		t.reassignMarkers(seat)
		if t.betting.LastRaiser == seat {
			t.betting.LastRaiser = -1
		}
		if wasCurrent {
			t.cancelActionTimer()
		}
		t.proceed(wasCurrent, seat)
	} else if t.stage == StageStartingHand && t.countSeated() < 2 {
		t.cancelTimers()
		t.stage = StageWaiting
	}

	t.emitStateChange()
	return nil
}

// HandleAction validates and applies an action for the given player.
func (t *Table) HandleAction(playerID string, action ActionType, amount int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	defer t.recoverHand()

	p := t.findPlayer(playerID)
	if p == nil {
		return ErrNotSeated
	}
	if !t.handActive || !t.stage.IsActionStage() {
		return ErrNoActiveHand
	}
	if p.Seat != t.currentSeat {
		return ErrNotYourTurn
	}
	if (action == ActionBet || action == ActionRaise) && amount <= 0 {
		return ErrInvalidAmount
	}

	if err := t.betting.Apply(t.seats, p, action, amount, t.cfg.BigBlind, t.clock.Now()); err != nil {
		return err
	}

	t.logger.Debug("action applied",
		"player", playerID, "action", action.String(), "amount", amount,
		"currentBet", t.betting.CurrentBet)

	t.cancelActionTimer()
	t.proceed(true, p.Seat)
	t.emitStateChange()
	return nil
}

// View returns the table state sanitized for the given observer.
func (t *Table) View(observerID string) TableView {
	t.mu.Lock()
	v := t.buildView()
	t.mu.Unlock()
	return Sanitize(v, observerID)
}

// --- hand lifecycle (all called with the lock held) ---

func (t *Table) scheduleHandStart() {
	t.stage = StageStartingHand
	t.timerGen++
	gen := t.timerGen
	t.delayTimer = t.clock.AfterFunc(t.cfg.InterHandDelay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if gen != t.timerGen || t.stage != StageStartingHand {
			return
		}
		defer t.recoverHand()
		t.startHand()
		t.emitStateChange()
	})
}

func (t *Table) startHand() {
	if t.countSeated() < 2 {
		t.stage = StageWaiting
		return
	}

	t.handNum++
	t.handActive = true
	t.community = nil
	t.pots = nil
	t.winners = nil
	t.departed = nil
	t.betting = NewBettingRound()

	for _, p := range t.seats {
		if p == nil {
			continue
		}
		p.resetForHand()
		p.Active = p.Chips > 0
	}

	t.dealerSeat = t.nextActiveSeat(t.dealerSeat)
	active := t.activeCount()
	if active == 2 {
		// Heads-up: the dealer posts the small blind and acts first
		// preflop.
		t.smallBlindSeat = t.dealerSeat
		t.bigBlindSeat = t.nextActiveSeat(t.dealerSeat)
	} else {
		t.smallBlindSeat = t.nextActiveSeat(t.dealerSeat)
		t.bigBlindSeat = t.nextActiveSeat(t.smallBlindSeat)
	}
	t.seats[t.dealerSeat].IsDealer = true
	t.seats[t.smallBlindSeat].IsSmallBlind = true
	t.seats[t.bigBlindSeat].IsBigBlind = true

	if t.fixedDeck {
		t.deck.Reset()
	} else {
		t.deck = deck.New(t.newRNG())
	}

	// Two passes, starting left of the dealer.
	for pass := 0; pass < 2; pass++ {
		seat := t.dealerSeat
		for i := 0; i < t.activeCount(); i++ {
			seat = t.nextActiveSeat(seat)
			p := t.seats[seat]
			p.HoleCards = append(p.HoleCards, t.deck.DealOne())
		}
	}

	t.postBlind(t.seats[t.smallBlindSeat], t.cfg.SmallBlind)
	t.postBlind(t.seats[t.bigBlindSeat], t.cfg.BigBlind)
	t.betting.CurrentBet = t.cfg.BigBlind

	t.stage = StagePreflop
	var first int
	if active == 2 {
		first = t.dealerSeat
	} else {
		first = t.nextActiveSeat(t.bigBlindSeat)
	}
	t.logger.Info("hand started",
		"hand", t.handNum, "players", active,
		"dealer", t.dealerSeat, "sb", t.smallBlindSeat, "bb", t.bigBlindSeat)
	t.beginTurn(first)
}

// postBlind commits a forced bet, capped at the stack: a short-stacked
// blind is immediately all-in.
func (t *Table) postBlind(p *Player, amount int) {
	amount = min(amount, p.Chips)
	p.Chips -= amount
	p.CurrentBet += amount
	p.TotalBet += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
}

// proceed decides what follows an applied action (or an equivalent
// departure). advance tells it the acting seat was consumed.
func (t *Table) proceed(advance bool, fromSeat int) {
	if !t.stage.IsActionStage() {
		return
	}

	if t.liveCount() <= 1 {
		t.finishByFold()
		return
	}
	if t.actionableCount() == 0 {
		t.fastForward()
		return
	}
	if RoundComplete(t.seats, t.betting) {
		t.advanceStage()
		return
	}
	if advance {
		next := NextToAct(t.seats, fromSeat, t.betting)
		if next < 0 {
			t.advanceStage()
			return
		}
		t.beginTurn(next)
	}
}

func (t *Table) advanceStage() {
	t.cancelActionTimer()
	t.betting.ResetForStage(t.seats, false)

	switch t.stage {
	case StagePreflop:
		t.burnAndDeal(3)
		t.stage = StageFlop
	case StageFlop:
		t.burnAndDeal(1)
		t.stage = StageTurn
	case StageTurn:
		t.burnAndDeal(1)
		t.stage = StageRiver
	case StageRiver:
		t.finishShowdown()
		return
	default:
		return
	}

	first := NextToAct(t.seats, t.dealerSeat, t.betting)
	if first < 0 {
		// Everyone left in the hand is all-in; keep dealing.
		t.advanceStage()
		return
	}
	t.beginTurn(first)
}

func (t *Table) burnAndDeal(n int) {
	t.deck.DealOne() // burn
	t.community = append(t.community, t.deck.DealMany(n)...)
}

// fastForward runs the board out to the river with no further betting and
// goes straight to showdown.
func (t *Table) fastForward() {
	t.cancelActionTimer()
	t.currentSeat = -1
	for t.stage != StageRiver {
		switch t.stage {
		case StagePreflop:
			t.burnAndDeal(3)
			t.stage = StageFlop
		case StageFlop:
			t.burnAndDeal(1)
			t.stage = StageTurn
		case StageTurn:
			t.burnAndDeal(1)
			t.stage = StageRiver
		default:
			return
		}
	}
	t.finishShowdown()
}

func (t *Table) finishShowdown() {
	t.stage = StageShowdown
	t.currentSeat = -1

	values := make(map[string]evaluator.HandValue)
	type entry struct {
		id    string
		value int
	}
	var entries []entry
	for _, p := range t.seats {
		if p == nil || !p.InHand() {
			continue
		}
		hv := evaluator.Evaluate(append(append([]deck.Card{}, p.HoleCards...), t.community...))
		values[p.ID] = hv
		entries = append(entries, entry{p.ID, hv.Value})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].value > entries[j].value })

	ranking := make(map[string]int, len(entries))
	rank := 0
	for i, e := range entries {
		if i > 0 && e.value < entries[i-1].value {
			rank++
		}
		ranking[e.id] = rank
	}

	contribs := t.contributions()
	pots := BuildPots(contribs)
	if err := ValidatePots(contribs, pots); err != nil {
		panic(fmt.Sprintf("pot validation failed: %v", err))
	}
	payouts := DistributePots(pots, ranking)

	t.winners = nil
	for _, e := range entries {
		amount, ok := payouts[e.id]
		if !ok || amount == 0 {
			continue
		}
		hv := values[e.id]
		t.winners = append(t.winners, WinnerView{
			PlayerID: e.id,
			Amount:   amount,
			HandDesc: hv.Category.String(),
			BestFive: hv.BestFive,
		})
		if p := t.findPlayer(e.id); p != nil {
			p.Chips += amount
		}
	}
	t.pots = pots
	t.settleCommitments()

	t.logger.Info("showdown", "hand", t.handNum, "winners", len(t.winners))
	t.schedulePayouts()
}

// settleCommitments zeroes every outstanding commitment once the pot has
// been paid out, keeping total chips constant through the payouts stage.
// From here t.pots is display data only; the chips it shows already sit in
// the winners' stacks.
func (t *Table) settleCommitments() {
	for _, p := range t.seats {
		if p == nil {
			continue
		}
		p.TotalBet = 0
		p.CurrentBet = 0
	}
	t.departed = nil
}

// finishByFold ends the hand when at most one player is left contesting it.
// The whole committed amount, folded and departed contributions included,
// goes to the survivor without revealing a hand.
func (t *Table) finishByFold() {
	t.cancelActionTimer()
	t.currentSeat = -1

	var winner *Player
	for _, p := range t.seats {
		if p != nil && p.InHand() {
			winner = p
			break
		}
	}

	total := TotalCommitted(t.contributions())
	if winner != nil {
		winner.Chips += total
		t.winners = []WinnerView{{
			PlayerID: winner.ID,
			Amount:   total,
			HandDesc: "uncontested",
		}}
		t.logger.Info("hand won uncontested",
			"hand", t.handNum, "player", winner.ID, "amount", total)
	} else {
		// Everyone left mid-hand; nothing to pay out.
		t.winners = nil
		t.logger.Warn("hand abandoned with no live players", "hand", t.handNum, "forfeited", total)
	}
	t.settleCommitments()
	t.pots = nil

	t.schedulePayouts()
}

func (t *Table) schedulePayouts() {
	t.stage = StagePayouts
	t.timerGen++
	gen := t.timerGen
	t.delayTimer = t.clock.AfterFunc(t.cfg.PayoutDisplay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if gen != t.timerGen || t.stage != StagePayouts {
			return
		}
		t.cleanupHand()
		t.emitStateChange()
	})
}

func (t *Table) cleanupHand() {
	t.stage = StageCleanup
	t.handActive = false
	t.winners = nil
	t.community = nil
	t.pots = nil
	t.departed = nil
	t.currentSeat = -1

	for i, p := range t.seats {
		if p == nil {
			continue
		}
		p.resetForHand()
		if p.Chips == 0 {
			t.logger.Info("player busted", "player", p.ID, "seat", i)
			t.seats[i] = nil
		}
	}

	if t.countSeated() >= 2 {
		t.scheduleHandStart()
	} else {
		t.stage = StageWaiting
	}
}

// recoverHand converts a hand-level invariant violation into a terminated
// hand: every live player is refunded their commitment and the table moves
// on rather than continuing in an undefined state.
func (t *Table) recoverHand() {
	r := recover()
	if r == nil {
		return
	}
	t.logger.Error("invariant violation, terminating hand", "hand", t.handNum, "panic", r)

	t.cancelTimers()
	for _, p := range t.seats {
		if p == nil {
			continue
		}
		p.Chips += p.TotalBet
		p.TotalBet = 0
		p.CurrentBet = 0
	}
	t.winners = nil
	t.cleanupHand()
	t.emitStateChange()
}

// beginTurn hands the action to the given seat and arms the action timer.
func (t *Table) beginTurn(seat int) {
	t.currentSeat = seat
	t.timerGen++
	gen := t.timerGen
	t.actionDeadline = t.clock.Now().Add(t.cfg.ActionTimeout)
	t.actionTimer = t.clock.AfterFunc(t.cfg.ActionTimeout, func() {
		t.actionTimeout(gen, seat)
	})
	t.emitActionRequest(seat)
}

// actionTimeout folds the current player through the normal action path. A
// cancelled or superseded timer is a no-op.
func (t *Table) actionTimeout(gen, seat int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.timerGen || seat != t.currentSeat || !t.stage.IsActionStage() {
		return
	}
	p := t.seats[seat]
	if p == nil || !p.CanAct() {
		return
	}
	defer t.recoverHand()

	t.logger.Info("action timeout, auto-folding", "player", p.ID, "seat", seat)
	if err := t.betting.Apply(t.seats, p, ActionFold, 0, t.cfg.BigBlind, t.clock.Now()); err != nil {
		t.logger.Error("auto-fold failed", "player", p.ID, "error", err)
		return
	}
	t.actionTimer = nil
	t.proceed(true, seat)
	t.emitStateChange()
}

func (t *Table) cancelActionTimer() {
	if t.actionTimer != nil {
		t.actionTimer.Stop()
		t.actionTimer = nil
	}
	t.timerGen++
}

func (t *Table) cancelTimers() {
	t.cancelActionTimer()
	if t.delayTimer != nil {
		t.delayTimer.Stop()
		t.delayTimer = nil
	}
	t.timerGen++
}

// --- queries and plumbing (lock held) ---

func (t *Table) findPlayer(id string) *Player {
	for _, p := range t.seats {
		if p != nil && p.ID == id {
			return p
		}
	}
	return nil
}

func (t *Table) countSeated() int {
	n := 0
	for _, p := range t.seats {
		if p != nil {
			n++
		}
	}
	return n
}

func (t *Table) activeCount() int {
	n := 0
	for _, p := range t.seats {
		if p != nil && p.Active {
			n++
		}
	}
	return n
}

func (t *Table) liveCount() int {
	n := 0
	for _, p := range t.seats {
		if p != nil && p.InHand() {
			n++
		}
	}
	return n
}

func (t *Table) actionableCount() int {
	n := 0
	for _, p := range t.seats {
		if p != nil && p.CanAct() {
			n++
		}
	}
	return n
}

// nextActiveSeat returns the next seat clockwise from the given one holding
// an active player.
func (t *Table) nextActiveSeat(from int) int {
	n := len(t.seats)
	for i := 1; i <= n; i++ {
		seat := ((from + i) % n + n) % n
		if p := t.seats[seat]; p != nil && p.Active && !p.Folded {
			return seat
		}
	}
	return -1
}

// reassignMarkers moves any positional marker off a vacated seat; the
// current hand continues.
func (t *Table) reassignMarkers(seat int) {
	if t.dealerSeat == seat {
		t.dealerSeat = t.nextActiveSeat(seat)
		if t.dealerSeat >= 0 {
			t.seats[t.dealerSeat].IsDealer = true
		}
	}
	if t.smallBlindSeat == seat {
		t.smallBlindSeat = t.nextActiveSeat(seat)
		if t.smallBlindSeat >= 0 {
			t.seats[t.smallBlindSeat].IsSmallBlind = true
		}
	}
	if t.bigBlindSeat == seat {
		t.bigBlindSeat = t.nextActiveSeat(seat)
		if t.bigBlindSeat >= 0 {
			t.seats[t.bigBlindSeat].IsBigBlind = true
		}
	}
}

// contributions snapshots every commitment to the current hand, including
// chips from players who folded or already left.
func (t *Table) contributions() []Contribution {
	var contribs []Contribution
	for _, p := range t.seats {
		if p == nil || !p.Active || p.TotalBet == 0 {
			continue
		}
		contribs = append(contribs, Contribution{
			PlayerID: p.ID,
			Seat:     p.Seat,
			Amount:   p.TotalBet,
			Folded:   p.Folded,
		})
	}
	contribs = append(contribs, t.departed...)
	return contribs
}

func (t *Table) buildView() TableView {
	v := TableView{
		TableID:        t.id,
		Stage:          t.stage.String(),
		HandNum:        t.handNum,
		HandActive:     t.handActive,
		MaxPlayers:     t.cfg.MaxPlayers,
		SmallBlind:     t.cfg.SmallBlind,
		BigBlind:       t.cfg.BigBlind,
		Community:      append([]deck.Card{}, t.community...),
		DealerSeat:     t.dealerSeat,
		SmallBlindSeat: t.smallBlindSeat,
		BigBlindSeat:   t.bigBlindSeat,
		CurrentSeat:    t.currentSeat,
		CurrentBet:     t.betting.CurrentBet,
		MinRaise:       max(t.betting.LastRaiseAmount, t.cfg.BigBlind),
		Winners:        append([]WinnerView{}, t.winners...),
	}

	if len(t.betting.Actions) > 0 {
		last := t.betting.Actions[len(t.betting.Actions)-1]
		v.LastAction = &last
	}

	pots := t.pots
	if pots == nil && t.handActive {
		pots = BuildPots(t.contributions())
	}
	v.Pots = append([]Pot{}, pots...)
	for _, p := range pots {
		v.TotalPot += p.Amount
	}

	v.Seats = make([]*PlayerView, len(t.seats))
	for i, p := range t.seats {
		if p == nil {
			continue
		}
		pv := &PlayerView{
			ID:           p.ID,
			Name:         p.Name,
			AvatarURL:    p.AvatarURL,
			Seat:         p.Seat,
			Chips:        p.Chips,
			Bet:          p.CurrentBet,
			TotalBet:     p.TotalBet,
			Folded:       p.Folded,
			AllIn:        p.AllIn,
			Active:       p.Active,
			IsDealer:     p.IsDealer,
			IsSmallBlind: p.IsSmallBlind,
			IsBigBlind:   p.IsBigBlind,
			HasCards:     len(p.HoleCards) > 0 && !p.Folded,
			HoleCards:    append([]deck.Card{}, p.HoleCards...),
		}
		if p.LastAction != nil {
			pv.LastAction = p.LastAction.Action.String()
		}
		v.Seats[i] = pv
	}

	return v
}

func (t *Table) emitStateChange() {
	if t.cb.OnStateChange != nil {
		t.cb.OnStateChange(t.buildView())
	}
}

func (t *Table) emitActionRequest(seat int) {
	p := t.seats[seat]
	if p == nil {
		return
	}
	if t.cb.OnActionRequest == nil {
		return
	}
	req := ActionRequest{
		PlayerID:   p.ID,
		Seat:       seat,
		Options:    t.betting.OptionsFor(p, t.cfg.BigBlind),
		TimeLeftMs: t.actionDeadline.Sub(t.clock.Now()).Milliseconds(),
	}
	t.cb.OnActionRequest(req)
}
