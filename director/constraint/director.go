package constraint

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/they4kman/minefield/director/random"
	"github.com/they4kman/minefield/game"
	"github.com/they4kman/minefield/util/collections"
)

const defaultSimplifyRounds = 4

// Director plays by deduction from the numbers on revealed cells. When no
// move is certain it picks the cell least likely to be a mine, and falls
// back to a random reveal when nothing is known at all.
type Director struct {
	rand   *rand.Rand
	random *random.Director

	// Rounds of observation simplification per action
	SimplifyRounds int
}

func New(seed int64) *Director {
	rng := rand.New(rand.NewSource(seed))
	return &Director{
		rand:           rng,
		random:         random.New(rng.Int63()),
		SimplifyRounds: defaultSimplifyRounds,
	}
}

// Observation states that exactly numMines of cells are mines
type Observation struct {
	origin   *game.Coordinate
	numMines int
	cells    collections.Set[game.Coordinate]
}

func (observation Observation) String() string {
	cells := sortedCells(observation.cells)
	cellsRepr := make([]string, len(cells))
	for i, cell := range cells {
		cellsRepr[i] = cell.String()
	}

	originRepr := "?"
	if observation.origin != nil {
		originRepr = observation.origin.String()
	}

	return fmt.Sprintf("Obs[%8s, %d ε %s]", originRepr, observation.numMines, strings.Join(cellsRepr, ", "))
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

func (observation Observation) isConsistent() bool {
	return len(observation.cells) > 0 && observation.numMines >= 0 && observation.numMines <= len(observation.cells)
}

func (director *Director) Act(board *game.Board) (game.Action, bool) {
	if director.rand == nil {
		rounds := director.SimplifyRounds
		*director = *New(board.Seed())
		if rounds > 0 {
			director.SimplifyRounds = rounds
		}
	}

	observations := Observe(board)
	for i := 0; i < director.SimplifyRounds; i++ {
		var changed bool
		if observations, changed = simplify(observations); !changed {
			break
		}
	}

	actors := []func([]*Observation) (game.Action, bool){
		actDeliberate,
		director.actLowestProbability,
	}
	for _, actor := range actors {
		if action, ok := actor(observations); ok {
			return action, true
		}
	}

	return director.random.Act(board)
}

// Observe builds one observation per revealed safe cell that still borders
// hidden, unflagged cells
func Observe(board *game.Board) []*Observation {
	observations := make([]*Observation, 0)

	for _, coord := range board.Coordinates() {
		cell, _ := board.CellAt(coord)
		if !cell.IsRevealed() || cell.IsMine() {
			continue
		}

		origin := coord
		observation := Observation{
			origin:   &origin,
			numMines: cell.AdjacentMines(),
			cells:    make(collections.Set[game.Coordinate]),
		}
		for _, neighbor := range board.Neighbors(coord) {
			neighborCell, _ := board.CellAt(neighbor)
			if neighborCell.IsRevealed() {
				continue
			}
			if neighborCell.IsFlagged() {
				observation.numMines--
			} else {
				observation.cells.Add(neighbor)
			}
		}

		// Wrong flags can make an observation contradict itself
		if observation.isConsistent() {
			observations = addObservation(observations, &observation)
		}
	}

	return observations
}

// simplify derives new observations from every pair sharing cells
func simplify(observations []*Observation) ([]*Observation, bool) {
	changed := false
	derived := observations

	for _, observation := range observations {
		for _, other := range observations {
			if other == observation {
				continue
			}

			otherOnly := other.cells.Difference(observation.cells)
			if otherOnly.Len() == 0 || otherOnly.Len() == other.cells.Len() {
				continue
			}

			var split Observation
			if observation.cells.IsSubset(other.cells) {
				// The mines of other not accounted for by observation lie in the rest
				split = Observation{
					numMines: other.numMines - observation.numMines,
					cells:    otherOnly,
				}
			} else if occludedMines := other.numMines - observation.numMines; occludedMines == otherOnly.Len() {
				// The shared cells hold at most observation.numMines mines, so
				// every cell only other sees must be a mine
				split = Observation{
					numMines: occludedMines,
					cells:    otherOnly,
				}
			} else {
				continue
			}

			if split.isConsistent() {
				before := len(derived)
				derived = addObservation(derived, &split)
				changed = changed || len(derived) != before
			}
		}
	}

	return derived, changed
}

func addObservation(observations []*Observation, observation *Observation) []*Observation {
	// Don't add duplicates
	for _, other := range observations {
		if other.cells.Equal(observation.cells) {
			return observations
		}
	}
	return append(observations, observation)
}

func actDeliberate(observations []*Observation) (game.Action, bool) {
	for _, observation := range observations {
		switch observation.numMines {
		case len(observation.cells):
			return game.Action{Kind: game.FlagAction, Coordinate: sortedCells(observation.cells)[0]}, true
		case 0:
			return game.Action{Kind: game.RevealAction, Coordinate: sortedCells(observation.cells)[0]}, true
		}
	}
	return game.Action{}, false
}

func (director *Director) actLowestProbability(observations []*Observation) (game.Action, bool) {
	// A cell is as risky as the most pessimistic observation covering it
	cellProbabilities := make(map[game.Coordinate]float64)
	for _, observation := range observations {
		probability := observation.MineProbability()
		for cell := range observation.cells {
			if pastProbability, ok := cellProbabilities[cell]; !ok || probability > pastProbability {
				cellProbabilities[cell] = probability
			}
		}
	}
	if len(cellProbabilities) == 0 {
		return game.Action{}, false
	}

	lowestProbability := math.Inf(1)
	for _, probability := range cellProbabilities {
		lowestProbability = math.Min(lowestProbability, probability)
	}

	lowestProbabilityCells := make(collections.Set[game.Coordinate])
	for cell, probability := range cellProbabilities {
		if probability <= lowestProbability {
			lowestProbabilityCells.Add(cell)
		}
	}

	cells := sortedCells(lowestProbabilityCells)
	return game.Action{
		Kind:       game.RevealAction,
		Coordinate: cells[director.rand.Intn(len(cells))],
	}, true
}

func sortedCells(cells collections.Set[game.Coordinate]) []game.Coordinate {
	sorted := cells.Slice()
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Column < sorted[j].Column
	})
	return sorted
}
