package game

import (
	"time"

	"github.com/cardroom/holdem/internal/deck"
)

// Player is a seat-resident participant. Created on join, mutated only by
// the betting engine and pot distribution, cleared at hand cleanup.
type Player struct {
	ID        string
	Name      string
	AvatarURL string
	Seat      int

	Chips     int
	HoleCards []deck.Card

	CurrentBet int // chips committed this betting round
	TotalBet   int // chips committed this hand

	Folded       bool
	AllIn        bool
	Active       bool // dealt into the current hand
	IsDealer     bool
	IsSmallBlind bool
	IsBigBlind   bool

	HasActed   bool // acted since the last full-sized raise this round
	LastAction *ActionRecord
}

// CanAct reports whether the player can take a betting action.
func (p *Player) CanAct() bool {
	return p.Active && !p.Folded && !p.AllIn
}

// InHand reports whether the player still contests the pot.
func (p *Player) InHand() bool {
	return p.Active && !p.Folded
}

// resetForHand clears all per-hand state ahead of a new deal.
func (p *Player) resetForHand() {
	p.HoleCards = nil
	p.CurrentBet = 0
	p.TotalBet = 0
	p.Folded = false
	p.AllIn = false
	p.Active = false
	p.IsDealer = false
	p.IsSmallBlind = false
	p.IsBigBlind = false
	p.HasActed = false
	p.LastAction = nil
}

// ActionRecord captures one applied action for the round log and the
// action_result broadcast.
type ActionRecord struct {
	PlayerID string
	Seat     int
	Action   ActionType
	Amount   int
	At       time.Time
}
