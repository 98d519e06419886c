// Package knockout parses the knockout command configuration and plays a game.
package knockout

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/jason-s-yu/knockout/internal/config"
	"github.com/jason-s-yu/knockout/internal/game"
	"github.com/jason-s-yu/knockout/internal/models"
	"github.com/jason-s-yu/knockout/internal/random"
	"github.com/sirupsen/logrus"
)

// Output formats for the play-by-play written to stdout.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds knockout command configuration.
type Config struct {
	Players   int    `env:"KNOCKOUT_PLAYERS" envDefault:"5"`
	DieSides  int    `env:"KNOCKOUT_DIE_SIDES" envDefault:"6"`
	Source    string `env:"KNOCKOUT_SOURCE" envDefault:"1-10"`
	Seed      int64  `env:"KNOCKOUT_SEED"` // 0 => fresh seed per run
	MaxPasses int    `env:"KNOCKOUT_MAX_PASSES" envDefault:"0"`
	LogLevel  string `env:"KNOCKOUT_LOG_LEVEL" envDefault:"info"`
	Output    string `env:"KNOCKOUT_OUTPUT" envDefault:"text"`
}

// ParseConfig parses environment and flags into a Config. Flags win over the
// environment.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Players, "players", cfg.Players, "Number of players")
	fs.IntVar(&cfg.DieSides, "sides", cfg.DieSides, "Number of sides on the die")
	fs.StringVar(&cfg.Source, "source", cfg.Source, "Random source behind the die (1-10 or 1-100)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for the random sources (0 picks one)")
	fs.IntVar(&cfg.MaxPasses, "max-passes", cfg.MaxPasses, "Stop after this many passes (0 for no limit)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "Play-by-play format (text or json)")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Players < 1 {
		return fmt.Errorf("%w: players must be at least 1, got %d", ErrInvalidConfig, c.Players)
	}
	if c.DieSides < 1 {
		return fmt.Errorf("%w: sides must be at least 1, got %d", ErrInvalidConfig, c.DieSides)
	}
	if c.MaxPasses < 0 {
		return fmt.Errorf("%w: max passes must not be negative, got %d", ErrInvalidConfig, c.MaxPasses)
	}
	if _, err := random.ByName(c.Source, 0); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Output != OutputText && c.Output != OutputJSON {
		return fmt.Errorf("%w: unknown output %q", ErrInvalidConfig, c.Output)
	}
	return nil
}

// NewLogger builds the command logger writing to w at the configured level.
func NewLogger(cfg Config, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	if cfg.Output == OutputJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

// Run plays one game and writes the play-by-play to out.
func Run(cfg Config, out io.Writer, logger logrus.FieldLogger) (game.Result, error) {
	seed := cfg.Seed
	if seed == 0 {
		s, err := random.NewSeed()
		if err != nil {
			return game.Result{}, err
		}
		seed = s
	}

	rolls, err := random.ByName(cfg.Source, seed)
	if err != nil {
		return game.Result{}, err
	}
	knockOuts, err := random.NewRange(models.KnockOutMin, models.KnockOutMax, seed)
	if err != nil {
		return game.Result{}, err
	}

	g, err := game.NewKnockOut(cfg.Players, game.Setup{
		DieSides:  cfg.DieSides,
		Rolls:     rolls,
		KnockOuts: knockOuts,
	})
	if err != nil {
		return game.Result{}, err
	}
	g.Logger = logger
	g.MaxPasses = cfg.MaxPasses

	var printer game.Observer = game.NewTracker(out)
	if cfg.Output == OutputJSON {
		printer = game.NewJSONLinesObserver(out, logger)
	}
	g.Observer = game.Observers{printer, game.NewLogObserver(logger)}

	logger.WithFields(logrus.Fields{
		"game":    g.ID,
		"seed":    seed,
		"players": cfg.Players,
		"source":  cfg.Source,
	}).Debug("Playing Knock Out")

	return g.Play()
}
