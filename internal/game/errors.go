package game

import "errors"

// User errors: the input violates the rules in the current state. They are
// surfaced to the originating caller and cause no state change.
var (
	ErrTableFull     = errors.New("table is full")
	ErrAlreadySeated = errors.New("player is already seated")
	ErrNotSeated     = errors.New("player is not seated at this table")
	ErrNoActiveHand  = errors.New("no hand in progress")
	ErrNotYourTurn   = errors.New("not your turn to act")
	ErrAlreadyFolded = errors.New("player has already folded")
	ErrCannotCheck   = errors.New("cannot check, there is a bet to match")
	ErrNothingToCall = errors.New("nothing to call")
	ErrCannotBet     = errors.New("cannot bet, there is already a bet this round")
	ErrBetTooSmall   = errors.New("bet below minimum")
	ErrBetTooLarge   = errors.New("bet exceeds stack")
	ErrCannotRaise   = errors.New("raise not available")
	ErrRaiseTooSmall = errors.New("raise below minimum")
	ErrRaiseTooLarge = errors.New("raise exceeds stack")
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrNoChips       = errors.New("player has no chips")
)
