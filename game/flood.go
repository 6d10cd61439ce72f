package game

import (
	"github.com/gammazero/deque"

	"github.com/they4kman/minefield/util/collections"
)

// Cascade reveals the cell at coord and keeps revealing the candidates each
// reveal produces until none remain. The revealed coordinates are grouped in
// waves: wave 0 holds coord itself, and wave n+1 holds the cells uncovered by
// revealing the candidates of wave n. A flagged or revealed target returns
// the receiver and no waves.
func (board *Board) Cascade(coord Coordinate) (*Board, [][]Coordinate, error) {
	if err := board.checkBounds(coord); err != nil {
		return nil, nil, err
	}
	if cell := board.cellAt(coord); cell.isRevealed || cell.isFlagged {
		return board, nil, nil
	}

	next := board.Clone()
	waves := flood(next, coord)
	return next, waves, nil
}

// RevealAll is Cascade with the waves flattened in reveal order
func (board *Board) RevealAll(coord Coordinate) (*Board, []Coordinate, error) {
	next, waves, err := board.Cascade(coord)
	if err != nil {
		return nil, nil, err
	}

	revealed := make([]Coordinate, 0)
	for _, wave := range waves {
		revealed = append(revealed, wave...)
	}
	return next, revealed, nil
}

// flood mutates board; the caller owns it exclusively
func flood(board *Board, start Coordinate) [][]Coordinate {
	var visitQueue deque.Deque
	queued := make(collections.Set[Coordinate])

	visitQueue.PushBack(start)
	queued.Add(start)

	waves := make([][]Coordinate, 0)

	for visitQueue.Len() > 0 {
		wave := make([]Coordinate, 0)

		// Only drain what was queued by the previous wave
		for waveLen := visitQueue.Len(); waveLen > 0; waveLen-- {
			coord := visitQueue.PopFront().(Coordinate)

			if cell := board.cellAt(coord); cell.isRevealed || cell.isFlagged {
				continue
			}

			for _, candidate := range board.reveal(coord) {
				if !queued.Contains(candidate) {
					queued.Add(candidate)
					visitQueue.PushBack(candidate)
				}
			}
			wave = append(wave, coord)
		}

		if len(wave) > 0 {
			waves = append(waves, wave)
		}
	}

	return waves
}
