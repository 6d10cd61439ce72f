package game

import "fmt"

type Coordinate struct {
	Row, Column int
}

func (coord Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", coord.Row, coord.Column)
}

func (coord Coordinate) offset(rowOffset, columnOffset int) Coordinate {
	return Coordinate{Row: coord.Row + rowOffset, Column: coord.Column + columnOffset}
}

// Relative positions of the up-to-8 neighbours of a cell
var neighborOffsets = [8][2]int{
	{1, 1},
	{1, 0},
	{1, -1},
	{0, 1},
	{0, -1},
	{-1, 1},
	{-1, 0},
	{-1, -1},
}

type Cell struct {
	adjacentMines int

	isMine, isFlagged, isRevealed bool
}

func (cell Cell) AdjacentMines() int {
	return cell.adjacentMines
}

func (cell Cell) IsMine() bool {
	return cell.isMine
}

func (cell Cell) IsFlagged() bool {
	return cell.isFlagged
}

func (cell Cell) IsRevealed() bool {
	return cell.isRevealed
}

func (cell Cell) displayState(lost bool) CellState {
	if lost {
		switch {
		case cell.isMine && cell.isRevealed:
			return MineLosing
		case cell.isFlagged && !cell.isMine:
			return FlagWrong
		case cell.isMine && !cell.isFlagged:
			return MineUnrevealed
		}
	}

	switch {
	case cell.isFlagged:
		return Flag
	case !cell.isRevealed:
		return Unrevealed
	case cell.isMine:
		return Mine
	default:
		return CellState(cell.adjacentMines)
	}
}

func (cell Cell) serialize() string {
	switch {
	case cell.isMine:
		switch {
		case cell.isRevealed:
			return "*"
		case cell.isFlagged:
			return "F"
		default:
			return "O"
		}
	case cell.isFlagged:
		return "f"
	case cell.isRevealed:
		return "."
	default:
		return "#"
	}
}

// deserialize sets the mine, flag and reveal bits of the cell from a layout
// glyph. Adjacency is left for the board to recompute.
func (cell *Cell) deserialize(c rune, fresh bool) bool {
	switch c {
	case '*', 'F', 'O':
		cell.isMine = true

		switch c {
		case '*':
			cell.isRevealed = !fresh
		case 'F':
			cell.isFlagged = !fresh
		}
	case 'f':
		cell.isFlagged = !fresh
	case '.':
		cell.isRevealed = !fresh
	case '#':
	default:
		return false
	}

	return true
}
