package game

import (
	"io/ioutil"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

type GameConfig struct {
	Rows     int   `yaml:"rows"`
	Columns  int   `yaml:"columns"`
	NumMines int   `yaml:"mines"`
	Seed     int64 `yaml:"seed"`

	// Snapshot to load board configuration from
	Snapshot *BoardSnapshot `yaml:"-"`
	// Whether to drop all flags and reveals when loading the Snapshot
	LoadSnapshotFresh bool `yaml:"load_snapshot_fresh"`

	Director Director `yaml:"-"`

	Logger logrus.FieldLogger `yaml:"-"`
	// Called once with the final board whenever a game is won or lost
	OnGameEnd func(*Board) `yaml:"-"`
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Rows:              DefaultRows,
		Columns:           DefaultColumns,
		NumMines:          DefaultNumMines,
		Seed:              time.Now().UnixNano(),
		LoadSnapshotFresh: true,
	}
}

// LoadGameConfig reads a YAML file over the default configuration. Keys
// missing from the file keep their default values.
func LoadGameConfig(path string) (GameConfig, error) {
	config := NewGameConfig()

	in, err := ioutil.ReadFile(path)
	if err != nil {
		return config, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(in, &config); err != nil {
		return config, errors.Wrapf(err, "parse config %s", path)
	}
	return config, nil
}

func (config GameConfig) createBoard(seed int64) (*Board, error) {
	if config.Snapshot == nil {
		return NewBoard(BoardConfig{
			Rows:     config.Rows,
			Columns:  config.Columns,
			NumMines: config.NumMines,
			Seed:     seed,
		})
	}
	return config.Snapshot.CreateBoard(config.LoadSnapshotFresh)
}

// Game is a play session: the current board plus the rules for moving from
// one board to the next.
type Game struct {
	config GameConfig
	log    logrus.FieldLogger
	rand   *rand.Rand

	board *Board
}

func NewGame(config GameConfig) (*Game, error) {
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}

	game := &Game{
		config: config,
		log:    config.Logger,
		rand:   rand.New(rand.NewSource(config.Seed)),
	}
	if err := game.start(config.Seed); err != nil {
		return nil, err
	}
	return game, nil
}

func (game *Game) start(seed int64) error {
	board, err := game.config.createBoard(seed)
	if err != nil {
		return errors.Wrap(err, "create board")
	}
	game.board = board

	game.log.WithFields(logrus.Fields{
		"rows":    board.Rows(),
		"columns": board.Columns(),
		"mines":   board.NumMines(),
		"seed":    board.Seed(),
	}).Debug("started game")
	return nil
}

// Reset starts a new game. Each new board draws its seed from the session,
// so a session seed reproduces every board of the session.
func (game *Game) Reset() error {
	return game.start(game.rand.Int63())
}

func (game *Game) Board() *Board {
	return game.board
}

func (game *Game) State() BoardState {
	return game.board.State()
}

func (game *Game) BombsRemaining() int {
	return game.board.BombsRemaining()
}

func (game *Game) canPlay() bool {
	return game.board.State() == Ongoing
}

// Reveal uncovers the cell at coord along with its whole cascade, returning
// the reveal waves.
func (game *Game) Reveal(coord Coordinate) ([][]Coordinate, error) {
	if !game.canPlay() {
		return nil, errors.Wrapf(ErrGameOver, "cannot reveal %v", coord)
	}

	next, waves, err := game.board.Cascade(coord)
	if err != nil {
		return nil, err
	}

	numRevealed := 0
	for _, wave := range waves {
		numRevealed += len(wave)
	}
	game.log.WithFields(logrus.Fields{
		"row":      coord.Row,
		"column":   coord.Column,
		"revealed": numRevealed,
	}).Debug("revealed cell")

	game.advance(next)
	return waves, nil
}

func (game *Game) Flag(coord Coordinate) error {
	if !game.canPlay() {
		return errors.Wrapf(ErrGameOver, "cannot flag %v", coord)
	}

	next, err := game.board.Flag(coord)
	if err != nil {
		return err
	}

	cell, _ := next.CellAt(coord)
	game.log.WithFields(logrus.Fields{
		"row":     coord.Row,
		"column":  coord.Column,
		"flagged": cell.IsFlagged(),
	}).Debug("flagged cell")

	game.advance(next)
	return nil
}

// Step asks the director for an action and applies it
func (game *Game) Step() (Action, [][]Coordinate, error) {
	if game.config.Director == nil {
		return Action{}, nil, ErrNoDirector
	}
	if !game.canPlay() {
		return Action{}, nil, errors.Wrap(ErrGameOver, "cannot step")
	}

	action, ok := game.config.Director.Act(game.board)
	if !ok {
		return Action{}, nil, ErrNoAction
	}

	switch action.Kind {
	case FlagAction:
		return action, nil, game.Flag(action.Coordinate)
	default:
		waves, err := game.Reveal(action.Coordinate)
		return action, waves, err
	}
}

func (game *Game) advance(next *Board) {
	game.board = next

	if state := next.State(); state != Ongoing {
		game.log.WithFields(logrus.Fields{
			"state":           state.String(),
			"seed":            next.Seed(),
			"bombs_remaining": next.BombsRemaining(),
		}).Info("game ended")

		if game.config.OnGameEnd != nil {
			game.config.OnGameEnd(next)
		}
	}
}
