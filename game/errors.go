package game

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is the cause of every error returned for out-of-range
	// coordinates, impossible mine counts and malformed layouts.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrGameOver is returned when a move is attempted on a finished game.
	ErrGameOver = errors.New("game is over")

	ErrNoDirector = errors.New("no director configured")
	ErrNoAction   = errors.New("director found no action")
)
