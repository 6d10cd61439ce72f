package cmd

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/they4kman/minefield/director/constraint"
	"github.com/they4kman/minefield/director/random"
	"github.com/they4kman/minefield/game"
)

type options struct {
	gameConfig game.GameConfig
	director   directorValue

	configPath   string
	layoutPath   string
	cascadeDelay time.Duration
	auto         bool
	verbose      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{
		gameConfig: game.NewGameConfig(),
		director:   "none",
	}
	opts.gameConfig.Seed = 0

	cmd := &cobra.Command{
		Use:   "minefield",
		Short: "Play manual or computer-driven Minesweeper in the terminal",
		Long: `minefield is a Minesweeper game for the terminal which supports
human- or computer-driven playing.

Run with no arguments to play a 9x9 board with 10 mines
	minefield

Let the computer play a whole game for you
	minefield --director constraint --auto
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.gameConfig.Rows, "rows", "r", game.DefaultRows, "Number of rows of the game board")
	flags.IntVarP(&opts.gameConfig.Columns, "columns", "c", game.DefaultColumns, "Number of columns of the game board")
	flags.IntVarP(&opts.gameConfig.NumMines, "mines", "m", game.DefaultNumMines, "Number of mines to place in the game board")
	flags.Int64Var(&opts.gameConfig.Seed, "seed", 0, "Seed for mine placement (0 picks one from the clock)")
	flags.StringVar(&opts.configPath, "config", "", "YAML file with rows, columns, mines and seed")
	flags.StringVar(&opts.layoutPath, "layout", "", "YAML board snapshot to play instead of a random board")
	flags.BoolVar(&opts.gameConfig.LoadSnapshotFresh, "fresh", true, "Hide every cell of the --layout board before playing")
	flags.Var(&opts.director, "director", fmt.Sprintf("Computer player (%s)", strings.Join(directorNames(), "|")))
	flags.BoolVar(&opts.auto, "auto", false, "Let the director play the whole game")
	flags.DurationVar(&opts.cascadeDelay, "cascade-delay", 0, "Pause between waves of a cascading reveal")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	return cmd
}

func (opts *options) run(cmd *cobra.Command) error {
	log := newLogger(cmd.ErrOrStderr(), opts.verbose)

	config, err := opts.resolveConfig(cmd.Flags())
	if err != nil {
		return err
	}
	config.Logger = log
	config.Director = opts.director.build(config.Seed)
	config.OnGameEnd = func(board *game.Board) {
		log.WithField("board", board.String()).Debug("final board")
	}

	if opts.auto && config.Director == nil {
		return errors.New("--auto needs a --director")
	}

	g, err := game.NewGame(config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := newSession(g, cmd.InOrStdin(), cmd.OutOrStdout(), log, opts.cascadeDelay)
	if opts.auto {
		return s.autoplay(ctx)
	}
	return s.run(ctx)
}

// resolveConfig merges the config file and layout into the flag values.
// Flags given on the command line win over the file.
func (opts *options) resolveConfig(flags *pflag.FlagSet) (game.GameConfig, error) {
	config := opts.gameConfig

	if opts.configPath != "" {
		fileConfig, err := game.LoadGameConfig(opts.configPath)
		if err != nil {
			return config, err
		}
		if !flags.Changed("rows") {
			config.Rows = fileConfig.Rows
		}
		if !flags.Changed("columns") {
			config.Columns = fileConfig.Columns
		}
		if !flags.Changed("mines") {
			config.NumMines = fileConfig.NumMines
		}
		if !flags.Changed("seed") {
			config.Seed = fileConfig.Seed
		}
		if !flags.Changed("fresh") {
			config.LoadSnapshotFresh = fileConfig.LoadSnapshotFresh
		}
	}

	if opts.layoutPath != "" {
		in, err := ioutil.ReadFile(opts.layoutPath)
		if err != nil {
			return config, errors.Wrapf(err, "read layout %s", opts.layoutPath)
		}
		snapshot, err := game.LoadSnapshot(string(in))
		if err != nil {
			return config, err
		}
		config.Snapshot = snapshot
		if !flags.Changed("seed") && config.Seed == 0 {
			config.Seed = snapshot.Seed
		}
	}

	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}
	return config, nil
}

func newLogger(out io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.Out = out
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

type directorValue string

var _ pflag.Value = (*directorValue)(nil)

var directors = map[string]func(seed int64) game.Director{
	"none": nil,
	"random": func(seed int64) game.Director {
		return random.New(seed)
	},
	"constraint": func(seed int64) game.Director {
		return constraint.New(seed)
	},
}

func directorNames() []string {
	names := make([]string, 0, len(directors))
	for name := range directors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (value *directorValue) String() string {
	return string(*value)
}

func (value *directorValue) Set(name string) error {
	if _, isValid := directors[name]; !isValid {
		return fmt.Errorf("invalid director %q", name)
	}
	*value = directorValue(name)
	return nil
}

func (value *directorValue) Type() string {
	return "director"
}

func (value directorValue) build(seed int64) game.Director {
	if newDirector := directors[string(value)]; newDirector != nil {
		return newDirector(seed)
	}
	return nil
}
