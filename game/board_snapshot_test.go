package game

import (
	"testing"

	"github.com/pkg/errors"
)

func TestSnapshotRoundTrip(t *testing.T) {
	board := mustBoardWithMines(t, 3, 4, Coordinate{0, 0}, Coordinate{1, 3}, Coordinate{2, 1})
	board, _ = board.Flag(Coordinate{1, 3})
	board, _ = board.Flag(Coordinate{2, 3})
	board, _, _ = board.Reveal(Coordinate{0, 2})
	board, _, _ = board.Reveal(Coordinate{2, 1})

	serialized, err := board.Snapshot().Serialize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snapshot, err := LoadSnapshot(serialized)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, err := snapshot.CreateBoard(false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if loaded.String() != board.String() {
		t.Fatalf("expected\n%s\ngot\n%s", board, loaded)
	}
	if loaded.NumMines() != 3 || loaded.State() != Lost {
		t.Fatalf("expected 3 mines on a lost board, got %d mines and %v", loaded.NumMines(), loaded.State())
	}
	checkAdjacency(t, loaded)
}

func TestLoadSnapshot(t *testing.T) {
	in := `seed: 7
board: |-
  O#f
  .*F
`
	snapshot, err := LoadSnapshot(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.Seed != 7 {
		t.Fatalf("expected seed 7, got %d", snapshot.Seed)
	}

	tests := []struct {
		name     string
		fresh    bool
		expected string
	}{
		{"AsIs", false, "O#f\n.*F"},
		{"Fresh", true, "O##\n#OO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := snapshot.CreateBoard(tt.fresh)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if board.String() != tt.expected {
				t.Fatalf("expected\n%s\ngot\n%s", tt.expected, board)
			}
			if board.Seed() != 7 {
				t.Fatalf("expected seed 7, got %d", board.Seed())
			}
			if cell, _ := board.CellAt(Coordinate{0, 1}); cell.AdjacentMines() != 3 {
				t.Fatalf("expected 3 mines around (0, 1), got %d", cell.AdjacentMines())
			}
		})
	}
}

func TestCreateBoardRejectsMalformedSnapshots(t *testing.T) {
	tests := []struct {
		name  string
		board string
	}{
		{"Empty", ""},
		{"Ragged", "###\n##"},
		{"UnknownGlyph", "#?#"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := &BoardSnapshot{SerializedBoard: tt.board}
			if _, err := snapshot.CreateBoard(true); errors.Cause(err) != ErrInvalidArgument {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}
