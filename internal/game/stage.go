package game

// Stage is the table state machine's state.
type Stage int

const (
	StageWaiting Stage = iota
	StageStartingHand
	StagePreflop
	StageFlop
	StageTurn
	StageRiver
	StageShowdown
	StagePayouts
	StageCleanup
)

// String returns the wire name of the stage
func (s Stage) String() string {
	switch s {
	case StageWaiting:
		return "waiting_for_players"
	case StageStartingHand:
		return "starting_hand"
	case StagePreflop:
		return "preflop"
	case StageFlop:
		return "flop"
	case StageTurn:
		return "turn"
	case StageRiver:
		return "river"
	case StageShowdown:
		return "showdown"
	case StagePayouts:
		return "payouts"
	case StageCleanup:
		return "hand_cleanup"
	default:
		return "unknown"
	}
}

// IsActionStage reports whether players bet during this stage.
func (s Stage) IsActionStage() bool {
	return s >= StagePreflop && s <= StageRiver
}
