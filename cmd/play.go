package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/they4kman/minefield/game"
)

const usage = `commands:
  r ROW COL   reveal a cell
  f ROW COL   toggle a flag
  s           let the director make a move
  n           start a new game
  q           quit
`

// session drives a game from line-oriented input
type session struct {
	game *game.Game
	in   *bufio.Scanner
	out  io.Writer
	log  logrus.FieldLogger

	// Pause between reveal waves; zero shows only the final board
	cascadeDelay time.Duration
}

func newSession(g *game.Game, in io.Reader, out io.Writer, log logrus.FieldLogger, cascadeDelay time.Duration) *session {
	return &session{
		game:         g,
		in:           bufio.NewScanner(in),
		out:          out,
		log:          log,
		cascadeDelay: cascadeDelay,
	}
}

func (s *session) run(ctx context.Context) error {
	if err := s.render(); err != nil {
		return err
	}

	for s.in.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		quit, err := s.handle(ctx, strings.Fields(s.in.Text()))
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
	return s.in.Err()
}

// handle runs one command. Mistakes in the command itself are reported to
// the player; only output and cancellation errors are returned.
func (s *session) handle(ctx context.Context, fields []string) (bool, error) {
	if len(fields) == 0 {
		return false, s.render()
	}

	before := s.game.Board()
	var waves [][]game.Coordinate
	var err error

	switch fields[0] {
	case "q", "quit":
		return true, nil
	case "h", "help", "?":
		_, err := io.WriteString(s.out, usage)
		return false, err
	case "n", "new":
		err = s.game.Reset()
	case "s", "step":
		waves, err = s.step()
	case "r", "reveal", "f", "flag":
		var coord game.Coordinate
		if coord, err = parseCoordinate(fields[1:]); err != nil {
			break
		}
		if fields[0][0] == 'r' {
			waves, err = s.game.Reveal(coord)
		} else {
			err = s.game.Flag(coord)
		}
	default:
		err = errors.Errorf("unknown command %q", fields[0])
	}

	if err != nil {
		s.log.WithField("command", strings.Join(fields, " ")).WithError(err).Debug("command refused")
		_, err := fmt.Fprintf(s.out, "%v\n", err)
		return false, err
	}

	if err := s.animate(ctx, before, waves); err != nil {
		return false, err
	}
	return false, s.render()
}

// animate shows every reveal wave but the last, which render shows
func (s *session) animate(ctx context.Context, board *game.Board, waves [][]game.Coordinate) error {
	if s.cascadeDelay <= 0 || len(waves) < 2 {
		return nil
	}

	for _, wave := range waves[:len(waves)-1] {
		for _, coord := range wave {
			board, _, _ = board.Reveal(coord)
		}
		if err := renderBoard(s.out, board); err != nil {
			return err
		}

		timer := time.NewTimer(s.cascadeDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

func (s *session) step() ([][]game.Coordinate, error) {
	action, waves, err := s.game.Step()
	if err != nil {
		return nil, err
	}
	_, err = fmt.Fprintf(s.out, "director: %s %v\n", action.Kind, action.Coordinate)
	return waves, err
}

// autoplay lets the director play until the game ends
func (s *session) autoplay(ctx context.Context) error {
	if err := s.render(); err != nil {
		return err
	}

	for s.game.State() == game.Ongoing {
		if err := ctx.Err(); err != nil {
			return err
		}

		before := s.game.Board()
		waves, err := s.step()
		if err != nil {
			return errors.Wrap(err, "director step")
		}
		if err := s.animate(ctx, before, waves); err != nil {
			return err
		}
		if err := s.render(); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) render() error {
	board := s.game.Board()
	if err := renderBoard(s.out, board); err != nil {
		return err
	}
	_, err := fmt.Fprintln(s.out, outcomeMessage(board.State()))
	return err
}

func parseCoordinate(args []string) (game.Coordinate, error) {
	if len(args) != 2 {
		return game.Coordinate{}, errors.Errorf("expected ROW COL, got %d arguments", len(args))
	}

	row, err := strconv.Atoi(args[0])
	if err != nil {
		return game.Coordinate{}, errors.Wrapf(err, "bad row %q", args[0])
	}
	column, err := strconv.Atoi(args[1])
	if err != nil {
		return game.Coordinate{}, errors.Wrapf(err, "bad column %q", args[1])
	}

	return game.Coordinate{Row: row, Column: column}, nil
}
