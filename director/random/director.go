package random

import (
	"math/rand"
	"time"

	"github.com/they4kman/minefield/game"
)

// Director reveals hidden, unflagged cells at random
type Director struct {
	rand *rand.Rand
}

func New(seed int64) *Director {
	return &Director{rand: rand.New(rand.NewSource(seed))}
}

func (director *Director) Act(board *game.Board) (game.Action, bool) {
	if director.rand == nil {
		director.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	candidates := Candidates(board)
	if len(candidates) == 0 {
		return game.Action{}, false
	}

	return game.Action{
		Kind:       game.RevealAction,
		Coordinate: candidates[director.rand.Intn(len(candidates))],
	}, true
}

// Candidates lists the cells that can still be revealed, in row-major order
func Candidates(board *game.Board) []game.Coordinate {
	candidates := make([]game.Coordinate, 0)
	for _, coord := range board.Coordinates() {
		cell, _ := board.CellAt(coord)
		if !cell.IsRevealed() && !cell.IsFlagged() {
			candidates = append(candidates, coord)
		}
	}
	return candidates
}
