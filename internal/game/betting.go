package game

import "time"

// BettingRound holds the per-stage betting scratch state.
type BettingRound struct {
	CurrentBet      int // highest individual bet this round
	LastRaiseAmount int // size of the last full raise; minimum raise increment
	LastRaiser      int // seat of the last full bet/raise, -1 if none
	Actions         []ActionRecord
}

// NewBettingRound creates an empty betting round.
func NewBettingRound() *BettingRound {
	return &BettingRound{LastRaiser: -1}
}

// Options describes the legal actions for one player at one moment. Amounts
// for bet and raise are deltas from the player's current round bet.
type Options struct {
	CanCheck bool `json:"canCheck"`
	CanCall  bool `json:"canCall"`
	CanBet   bool `json:"canBet"`
	CanRaise bool `json:"canRaise"`

	CallAmount int `json:"callAmount"`
	MinBet     int `json:"minBet"`
	MinRaise   int `json:"minRaise"`
	MaxBet     int `json:"maxBet"`
}

// OptionsFor computes the legal actions for a player. All-in and folded
// players have no options. A player who already acted since the last
// full-sized raise may not raise again: a short all-in does not restore
// raising rights (standard no-limit rule).
func (br *BettingRound) OptionsFor(p *Player, bigBlind int) Options {
	if !p.CanAct() {
		return Options{}
	}

	var o Options
	stack := p.Chips
	toCall := max(0, br.CurrentBet-p.CurrentBet)

	if br.CurrentBet == 0 {
		o.CanCheck = true
		o.CanBet = stack > 0
		o.MinBet = min(bigBlind, stack)
		o.MaxBet = stack
		return o
	}

	o.CanCheck = toCall == 0
	o.CanCall = toCall > 0 && stack > 0
	o.CallAmount = min(toCall, stack)

	fullRaise := max(br.LastRaiseAmount, bigBlind)
	if !p.HasActed && stack+p.CurrentBet >= br.CurrentBet+fullRaise {
		o.CanRaise = true
		o.MinRaise = min(br.CurrentBet-p.CurrentBet+fullRaise, stack)
	}
	o.MaxBet = stack

	return o
}

// Apply validates and applies one action for p. Bet and raise amounts are
// deltas from the player's current round bet. players is the full seat
// slice, needed to reopen the action after a full-sized bet or raise.
// Returns a user error and leaves all state untouched when the action is
// illegal.
func (br *BettingRound) Apply(players []*Player, p *Player, action ActionType, amount int, bigBlind int, now time.Time) error {
	if p.Folded {
		return ErrAlreadyFolded
	}
	opts := br.OptionsFor(p, bigBlind)

	switch action {
	case ActionFold:
		p.Folded = true

	case ActionCheck:
		if !opts.CanCheck {
			return ErrCannotCheck
		}

	case ActionCall:
		if !opts.CanCall {
			return ErrNothingToCall
		}
		br.commit(p, opts.CallAmount)
		amount = opts.CallAmount

	case ActionBet:
		if br.CurrentBet != 0 {
			return ErrCannotBet
		}
		if !opts.CanBet {
			return ErrNoChips
		}
		if amount < opts.MinBet {
			return ErrBetTooSmall
		}
		if amount > p.Chips {
			return ErrBetTooLarge
		}
		br.commit(p, amount)
		br.reopen(players, p, p.CurrentBet)

	case ActionRaise:
		if !opts.CanRaise {
			return ErrCannotRaise
		}
		if amount < opts.MinRaise {
			return ErrRaiseTooSmall
		}
		if amount > p.Chips {
			return ErrRaiseTooLarge
		}
		prior := br.CurrentBet
		br.commit(p, amount)
		if p.CurrentBet > prior {
			br.reopen(players, p, p.CurrentBet-prior)
		}

	case ActionAllIn:
		if p.Chips == 0 {
			return ErrNoChips
		}
		amount = p.Chips
		br.commit(p, amount)
		if p.CurrentBet > br.CurrentBet {
			raisedBy := p.CurrentBet - br.CurrentBet
			if raisedBy >= max(br.LastRaiseAmount, bigBlind) {
				br.reopen(players, p, raisedBy)
			} else {
				// Short all-in: the bet moves up but the action
				// does not reopen, so players who already acted
				// may only call or fold.
				br.CurrentBet = p.CurrentBet
			}
		}
	}

	record := ActionRecord{
		PlayerID: p.ID,
		Seat:     p.Seat,
		Action:   action,
		Amount:   amount,
		At:       now,
	}
	p.HasActed = true
	p.LastAction = &record
	br.Actions = append(br.Actions, record)
	return nil
}

// commit moves chips from the player's stack into their round bet, capped
// at the stack, flagging all-in when the stack empties.
func (br *BettingRound) commit(p *Player, amount int) {
	amount = min(amount, p.Chips)
	p.Chips -= amount
	p.CurrentBet += amount
	p.TotalBet += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
}

// reopen records a full bet or raise: the current bet moves up to the
// raiser's total and every other live player owes another action with
// raising rights restored.
func (br *BettingRound) reopen(players []*Player, raiser *Player, raisedBy int) {
	br.CurrentBet = raiser.CurrentBet
	br.LastRaiseAmount = raisedBy
	br.LastRaiser = raiser.Seat
	for _, p := range players {
		if p == nil || p == raiser || !p.CanAct() {
			continue
		}
		p.HasActed = false
	}
}

// RoundComplete reports whether the betting round is finished: at most one
// live player remains, or every player who can still act has acted and
// matched the current bet.
func RoundComplete(players []*Player, br *BettingRound) bool {
	live := 0
	for _, p := range players {
		if p != nil && p.InHand() {
			live++
		}
	}
	if live <= 1 {
		return true
	}

	for _, p := range players {
		if p == nil || !p.CanAct() {
			continue
		}
		if !p.HasActed || p.CurrentBet != br.CurrentBet {
			return false
		}
	}
	return true
}

// NextToAct walks the seats clockwise from fromIndex+1 and returns the seat
// of the next player owed an action, or -1 when no one is.
func NextToAct(players []*Player, fromIndex int, br *BettingRound) int {
	n := len(players)
	for i := 1; i <= n; i++ {
		seat := (fromIndex + i) % n
		p := players[seat]
		if p == nil || !p.CanAct() {
			continue
		}
		if !p.HasActed || p.CurrentBet < br.CurrentBet {
			return seat
		}
	}
	return -1
}

// ResetForStage prepares the round state for a new stage. Preflop keeps the
// posted blinds in place and only clears the log; later stages zero all
// round-local bets. Total hand bets are never touched here.
func (br *BettingRound) ResetForStage(players []*Player, preflop bool) {
	br.Actions = nil
	br.LastRaiser = -1
	for _, p := range players {
		if p == nil || !p.Active {
			continue
		}
		p.HasActed = false
		if !preflop {
			p.CurrentBet = 0
			p.LastAction = nil
		}
	}
	if !preflop {
		br.CurrentBet = 0
		br.LastRaiseAmount = 0
	}
}
