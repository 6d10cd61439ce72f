package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/they4kman/minefield/game"
)

var glyphs = map[game.CellState]string{
	game.Unrevealed:     "#",
	game.Empty:          ".",
	game.Number1:        "1",
	game.Number2:        "2",
	game.Number3:        "3",
	game.Number4:        "4",
	game.Number5:        "5",
	game.Number6:        "6",
	game.Number7:        "7",
	game.Number8:        "8",
	game.Flag:           "F",
	game.FlagWrong:      "X",
	game.Mine:           "*",
	game.MineUnrevealed: "o",
	game.MineLosing:     "@",
}

func renderBoard(out io.Writer, board *game.Board) error {
	var screen strings.Builder

	fmt.Fprintf(&screen, "%03d", board.BombsRemaining())
	switch board.State() {
	case game.Won:
		screen.WriteString("   WIN!")
	case game.Lost:
		screen.WriteString("   LOSE :(")
	}
	screen.WriteString("\n")

	header := make([]string, board.Columns())
	for column := range header {
		header[column] = fmt.Sprint(column % 10)
	}
	fmt.Fprintf(&screen, "   %s\n", strings.Join(header, " "))

	for row, states := range board.View() {
		cells := make([]string, len(states))
		for column, state := range states {
			cells[column] = glyphs[state]
		}
		fmt.Fprintf(&screen, "%2d %s\n", row, strings.Join(cells, " "))
	}

	_, err := io.WriteString(out, screen.String())
	return err
}

func outcomeMessage(state game.BoardState) string {
	switch state {
	case game.Lost:
		return "Sorry, you lost."
	case game.Won:
		return "Hurray, you won!"
	default:
		return "Best of luck!"
	}
}
