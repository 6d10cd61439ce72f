package game

type ActionKind int

const (
	RevealAction ActionKind = iota
	FlagAction
)

func (kind ActionKind) String() string {
	if kind == FlagAction {
		return "flag"
	}
	return "reveal"
}

type Action struct {
	Kind       ActionKind
	Coordinate Coordinate
}

// A Director plays the game in place of a human
type Director interface {
	/**
	 * Choose the next action for the board, or report false if no action
	 * is possible
	 */
	Act(*Board) (Action, bool)
}
