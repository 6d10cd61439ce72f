package game

type CellState int
type BoardState int

const (
	Unrevealed CellState = iota - 1
	Empty
	Number1
	Number2
	Number3
	Number4
	Number5
	Number6
	Number7
	Number8
	Flag
	FlagWrong
	Mine
	MineUnrevealed
	MineLosing
)

var CellStates = []CellState{
	Unrevealed,
	Empty,
	Number1,
	Number2,
	Number3,
	Number4,
	Number5,
	Number6,
	Number7,
	Number8,
	Flag,
	FlagWrong,
	Mine,
	MineUnrevealed,
	MineLosing,
}

const (
	Lost BoardState = iota
	Won
	Ongoing
)

func (state BoardState) String() string {
	switch state {
	case Lost:
		return "lost"
	case Won:
		return "won"
	default:
		return "in progress"
	}
}

// Reference configuration for a new game
const (
	DefaultRows     = 9
	DefaultColumns  = 9
	DefaultNumMines = 10
)
