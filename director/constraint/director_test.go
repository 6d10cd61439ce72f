package constraint

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/they4kman/minefield/game"
)

func loadBoard(t *testing.T, layout string) *game.Board {
	t.Helper()
	board, err := (&game.BoardSnapshot{SerializedBoard: layout}).CreateBoard(false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return board
}

func TestActDeliberate(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		expected game.Action
	}{
		{
			name:     "AllMines",
			layout:   "..O",
			expected: game.Action{Kind: game.FlagAction, Coordinate: game.Coordinate{Row: 0, Column: 2}},
		},
		{
			name:     "FlagsSatisfied",
			layout:   "F#\n#.",
			expected: game.Action{Kind: game.RevealAction, Coordinate: game.Coordinate{Row: 0, Column: 1}},
		},
		{
			name:     "SubsetSplit",
			layout:   "O#O\n...",
			expected: game.Action{Kind: game.FlagAction, Coordinate: game.Coordinate{Row: 0, Column: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, ok := New(1).Act(loadBoard(t, tt.layout))
			if !ok {
				t.Fatal("expected an action")
			}
			if action != tt.expected {
				t.Fatalf("expected %v, got %v", tt.expected, action)
			}
		})
	}
}

func TestObserve(t *testing.T) {
	board := loadBoard(t, "O#O\n...")

	observations := Observe(board)
	if len(observations) != 3 {
		t.Fatalf("expected 3 observations, got %v", observations)
	}

	expected := []string{
		"Obs[  (1, 0), 1 ε (0, 0), (0, 1)]",
		"Obs[  (1, 1), 2 ε (0, 0), (0, 1), (0, 2)]",
		"Obs[  (1, 2), 1 ε (0, 1), (0, 2)]",
	}
	for i, observation := range observations {
		if observation.String() != expected[i] {
			t.Fatalf("expected %q, got %q", expected[i], observation.String())
		}
	}
	if p := observations[1].MineProbability(); p < 0.66 || p > 0.67 {
		t.Fatalf("expected probability 2/3, got %v", p)
	}
}

func TestActLowestProbability(t *testing.T) {
	// (0, 3) and (1, 3) are only seen by (1, 2), two mines in four cells.
	// Every other hidden cell is also seen by (1, 1), two mines in three.
	board := loadBoard(t, "O#OO\n...#")

	director := New(5)
	director.SimplifyRounds = 0
	for i := 0; i < 20; i++ {
		action, ok := director.Act(board)
		if !ok {
			t.Fatal("expected an action")
		}
		if action.Kind != game.RevealAction {
			t.Fatalf("expected a guess, got %v", action)
		}
		if action.Coordinate.Column != 3 {
			t.Fatalf("expected a guess among the least likely cells, got %v", action.Coordinate)
		}
	}
}

func TestDirectorPlaysToTheEnd(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		logger, _ := test.NewNullLogger()
		config := game.NewGameConfig()
		config.Rows, config.Columns, config.NumMines = 9, 9, 10
		config.Seed = seed
		config.Director = New(seed)
		config.Logger = logger

		g, err := game.NewGame(config)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for steps := 0; g.State() == game.Ongoing; steps++ {
			if steps > 2*g.Board().NumCells() {
				t.Fatalf("seed %d: expected the game to end", seed)
			}

			action, _, err := g.Step()
			if err != nil {
				t.Fatalf("seed %d: unexpected error: %v", seed, err)
			}
			if action.Kind == game.FlagAction {
				if cell, _ := g.Board().CellAt(action.Coordinate); !cell.IsMine() {
					t.Fatalf("seed %d: expected deduced flag %v to be a mine", seed, action.Coordinate)
				}
			}
		}
	}
}
