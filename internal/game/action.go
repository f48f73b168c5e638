package game

import "fmt"

// ActionType is the sum of legal player actions.
type ActionType int

const (
	ActionFold ActionType = iota
	ActionCheck
	ActionCall
	ActionBet
	ActionRaise
	ActionAllIn
)

// String returns the wire name of the action
func (a ActionType) String() string {
	switch a {
	case ActionFold:
		return "fold"
	case ActionCheck:
		return "check"
	case ActionCall:
		return "call"
	case ActionBet:
		return "bet"
	case ActionRaise:
		return "raise"
	case ActionAllIn:
		return "all-in"
	default:
		return "unknown"
	}
}

// ParseActionType parses a wire action name.
func ParseActionType(s string) (ActionType, error) {
	switch s {
	case "fold":
		return ActionFold, nil
	case "check":
		return ActionCheck, nil
	case "call":
		return ActionCall, nil
	case "bet":
		return ActionBet, nil
	case "raise":
		return ActionRaise, nil
	case "all-in", "allin":
		return ActionAllIn, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}
