package game

import (
	"math/rand"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Board is a rectangular grid of cells. Callers treat a Board as an
// immutable value: every transition returns a new Board and leaves the
// receiver untouched.
type Board struct {
	rows, columns int
	numMines      int
	seed          int64
	cells         [][]Cell
}

type BoardConfig struct {
	Rows, Columns int
	NumMines      int
	Seed          int64
}

func (board *Board) Rows() int {
	return board.rows
}

func (board *Board) Columns() int {
	return board.columns
}

func (board *Board) NumCells() int {
	return board.rows * board.columns
}

func (board *Board) NumMines() int {
	return board.numMines
}

// Seed returns the seed mines were placed with. Boards built from explicit
// mine positions report 0.
func (board *Board) Seed() int64 {
	return board.seed
}

func (board *Board) InBounds(coord Coordinate) bool {
	return coord.Row >= 0 && coord.Row < board.rows &&
		coord.Column >= 0 && coord.Column < board.columns
}

func (board *Board) CellAt(coord Coordinate) (Cell, bool) {
	if !board.InBounds(coord) {
		return Cell{}, false
	}
	return board.cells[coord.Row][coord.Column], true
}

func (board *Board) cellAt(coord Coordinate) *Cell {
	return &board.cells[coord.Row][coord.Column]
}

// Coordinates lists every coordinate of the board in row-major order
func (board *Board) Coordinates() []Coordinate {
	coords := make([]Coordinate, 0, board.NumCells())
	for row := 0; row < board.rows; row++ {
		for column := 0; column < board.columns; column++ {
			coords = append(coords, Coordinate{Row: row, Column: column})
		}
	}
	return coords
}

// Neighbors returns the in-bounds neighbours of coord
func (board *Board) Neighbors(coord Coordinate) []Coordinate {
	neighbors := make([]Coordinate, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		neighbor := coord.offset(offset[0], offset[1])
		if board.InBounds(neighbor) {
			neighbors = append(neighbors, neighbor)
		}
	}
	return neighbors
}

func (board *Board) checkBounds(coord Coordinate) error {
	if !board.InBounds(coord) {
		return errors.Wrapf(ErrInvalidArgument, "coordinate %v outside %dx%d board", coord, board.rows, board.columns)
	}
	return nil
}

func newEmptyBoard(rows, columns int) (*Board, error) {
	if rows < 1 || columns < 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "board dimensions %dx%d must be positive", rows, columns)
	}

	board := &Board{
		rows:    rows,
		columns: columns,
		cells:   make([][]Cell, rows),
	}
	for row := range board.cells {
		board.cells[row] = make([]Cell, columns)
	}
	return board, nil
}

// CreateInitialBoard builds a rows x columns board holding exactly numMines
// mines at random positions.
func CreateInitialBoard(rows, columns, numMines int) (*Board, error) {
	return NewBoard(BoardConfig{
		Rows:     rows,
		Columns:  columns,
		NumMines: numMines,
		Seed:     time.Now().UnixNano(),
	})
}

func NewBoard(config BoardConfig) (*Board, error) {
	board, err := newEmptyBoard(config.Rows, config.Columns)
	if err != nil {
		return nil, err
	}

	numCells := board.NumCells()
	if config.NumMines < 0 || config.NumMines >= numCells {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"mine count %d must be at least 0 and less than the %d cells of the board", config.NumMines, numCells)
	}
	board.seed = config.Seed

	// Shuffle the flattened cell indexes and mine the first numMines of them
	cellIndexes := make([]int, numCells)
	for i := range cellIndexes {
		cellIndexes[i] = i
	}

	rng := rand.New(rand.NewSource(config.Seed))
	rng.Shuffle(len(cellIndexes), func(i, j int) {
		cellIndexes[i], cellIndexes[j] = cellIndexes[j], cellIndexes[i]
	})
	for _, cellIdx := range cellIndexes[:config.NumMines] {
		board.placeMine(Coordinate{Row: cellIdx / board.columns, Column: cellIdx % board.columns})
	}

	return board, nil
}

// NewBoardWithMines builds a board with mines at exactly the given positions
func NewBoardWithMines(rows, columns int, mines []Coordinate) (*Board, error) {
	board, err := newEmptyBoard(rows, columns)
	if err != nil {
		return nil, err
	}

	for _, mine := range mines {
		if err := board.checkBounds(mine); err != nil {
			return nil, err
		}
		if board.cellAt(mine).isMine {
			return nil, errors.Wrapf(ErrInvalidArgument, "duplicate mine at %v", mine)
		}
		board.placeMine(mine)
	}

	return board, nil
}

func (board *Board) placeMine(coord Coordinate) {
	board.cellAt(coord).isMine = true
	board.numMines++

	for _, neighbor := range board.Neighbors(coord) {
		board.cellAt(neighbor).adjacentMines++
	}
}

// Clone returns a deep copy of the board
func (board *Board) Clone() *Board {
	clone := *board
	clone.cells = make([][]Cell, len(board.cells))
	for row, cells := range board.cells {
		clone.cells[row] = make([]Cell, len(cells))
		copy(clone.cells[row], cells)
	}
	return &clone
}

// Flag toggles the flag on an unrevealed cell. Flagging a revealed cell
// returns the receiver itself.
func (board *Board) Flag(coord Coordinate) (*Board, error) {
	if err := board.checkBounds(coord); err != nil {
		return nil, err
	}
	if board.cellAt(coord).isRevealed {
		return board, nil
	}

	next := board.Clone()
	cell := next.cellAt(coord)
	cell.isFlagged = !cell.isFlagged
	return next, nil
}

// Reveal uncovers a single cell. Flagged and already revealed cells are left
// alone and the receiver is returned with no candidates. Revealing a safe
// cell with no adjacent mines yields its unrevealed neighbours as candidates
// for a cascading reveal.
func (board *Board) Reveal(coord Coordinate) (*Board, []Coordinate, error) {
	if err := board.checkBounds(coord); err != nil {
		return nil, nil, err
	}
	if cell := board.cellAt(coord); cell.isRevealed || cell.isFlagged {
		return board, []Coordinate{}, nil
	}

	next := board.Clone()
	return next, next.reveal(coord), nil
}

// reveal mutates the receiver; it must only be used on a board that is not
// yet visible to callers.
func (board *Board) reveal(coord Coordinate) []Coordinate {
	cell := board.cellAt(coord)
	if cell.isRevealed || cell.isFlagged {
		return []Coordinate{}
	}

	cell.isRevealed = true
	candidates := []Coordinate{}

	if !cell.isMine && cell.adjacentMines == 0 {
		for _, neighbor := range board.Neighbors(coord) {
			if !board.cellAt(neighbor).isRevealed {
				candidates = append(candidates, neighbor)
			}
		}
	}

	return candidates
}

func (board *Board) NumFlags() int {
	numFlags := 0
	for _, row := range board.cells {
		for _, cell := range row {
			if cell.isFlagged {
				numFlags++
			}
		}
	}
	return numFlags
}

// BombsRemaining is the mine count minus the flag count. It goes negative
// when more cells are flagged than there are mines.
func (board *Board) BombsRemaining() int {
	return board.numMines - board.NumFlags()
}

func (board *Board) State() BoardState {
	won := true
	for _, row := range board.cells {
		for _, cell := range row {
			if cell.isMine && cell.isRevealed {
				return Lost
			}
			if !cell.isMine && !cell.isRevealed {
				won = false
			}
		}
	}

	if won {
		return Won
	}
	return Ongoing
}

// CellStateAt derives how the cell at coord should be displayed
func (board *Board) CellStateAt(coord Coordinate) CellState {
	cell, ok := board.CellAt(coord)
	if !ok {
		return Unrevealed
	}
	return cell.displayState(board.State() == Lost)
}

// View derives the display state of every cell, row by row
func (board *Board) View() [][]CellState {
	lost := board.State() == Lost

	view := make([][]CellState, board.rows)
	for row, cells := range board.cells {
		view[row] = make([]CellState, len(cells))
		for column, cell := range cells {
			view[row][column] = cell.displayState(lost)
		}
	}
	return view
}

func (board *Board) String() string {
	var out strings.Builder
	for row, cells := range board.cells {
		if row > 0 {
			out.WriteString("\n")
		}
		for _, cell := range cells {
			out.WriteString(cell.serialize())
		}
	}
	return out.String()
}
