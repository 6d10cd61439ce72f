package game

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// BoardSnapshot is the textual layout of a board: one glyph per cell, one
// line per row.
type BoardSnapshot struct {
	Seed            int64  `yaml:"seed"`
	SerializedBoard string `yaml:"board,flow"`
}

func (board *Board) Snapshot() *BoardSnapshot {
	return &BoardSnapshot{
		Seed:            board.seed,
		SerializedBoard: board.String(),
	}
}

func (snapshot *BoardSnapshot) Serialize() (string, error) {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", errors.Wrap(err, "marshal board snapshot")
	}
	return string(out), nil
}

// CreateBoard rebuilds the board described by the snapshot. With fresh set,
// every flag and reveal is dropped and only the mines are kept.
func (snapshot *BoardSnapshot) CreateBoard(fresh bool) (*Board, error) {
	rows := strings.Split(strings.TrimRight(snapshot.SerializedBoard, "\n"), "\n")
	for i, row := range rows {
		rows[i] = strings.TrimRight(row, "\r")
	}

	columns := utf8.RuneCountInString(rows[0])
	board, err := newEmptyBoard(len(rows), columns)
	if err != nil {
		return nil, errors.Wrap(err, "empty board snapshot")
	}
	board.seed = snapshot.Seed

	mines := make([]Coordinate, 0)
	for y, row := range rows {
		if utf8.RuneCountInString(row) != columns {
			return nil, errors.Wrapf(ErrInvalidArgument, "row %d has %d cells, expected %d", y, utf8.RuneCountInString(row), columns)
		}

		x := 0
		for _, c := range row {
			coord := Coordinate{Row: y, Column: x}
			cell := board.cellAt(coord)
			if !cell.deserialize(c, fresh) {
				return nil, errors.Wrapf(ErrInvalidArgument, "unknown cell %q at %v", c, coord)
			}
			if cell.isMine {
				mines = append(mines, coord)
			}
			x++
		}
	}

	for _, mine := range mines {
		board.placeMine(mine)
	}

	return board, nil
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, errors.Wrap(err, "parse board snapshot")
	}
	return &snapshot, nil
}
