// internal/game/game.go
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/knockout/internal/dice"
	"github.com/jason-s-yu/knockout/internal/models"
	"github.com/jason-s-yu/knockout/internal/random"
	"github.com/sirupsen/logrus"
)

const (
	// TargetScore ends the game as soon as any player reaches it.
	TargetScore = 100

	// DefaultDieSides is used when Setup.DieSides is zero.
	DefaultDieSides = 6
)

var (
	// ErrNoPlayers is returned when a game is created with fewer than one player.
	ErrNoPlayers = errors.New("a game needs at least one player")

	// ErrAlreadyPlayed is returned by Play on a game that has already been played.
	ErrAlreadyPlayed = errors.New("game has already been played")
)

// DiceGame is a game played with a single shared die.
type DiceGame interface {
	GameID() uuid.UUID
	Dice() *dice.Die
	Play() (Result, error)
}

// State tracks where a game is in its lifecycle.
type State int

const (
	StateNotStarted State = iota
	StatePlaying
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StatePlaying:
		return "playing"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Outcome names the terminal condition that ended a game.
type Outcome int

const (
	OutcomeNone Outcome = iota
	// OutcomeAllKnockedOut: the last remaining player rolled their knock-out number.
	OutcomeAllKnockedOut
	// OutcomeTargetReached: a player's score reached TargetScore.
	OutcomeTargetReached
	// OutcomePassLimit: MaxPasses was exhausted before either of the above.
	OutcomePassLimit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeAllKnockedOut:
		return "all_knocked_out"
	case OutcomeTargetReached:
		return "target_reached"
	case OutcomePassLimit:
		return "pass_limit"
	default:
		return "unknown"
	}
}

// Result summarises a finished game.
type Result struct {
	Outcome Outcome
	Winner  *models.Player // set only for OutcomeTargetReached
	Turns   int
	Passes  int
}

// Setup configures the die and the randomness of a new game. Zero values
// select the defaults: a six-sided die rolled from a 1-10 source, and
// knock-out numbers drawn uniformly from 6-9.
type Setup struct {
	DieSides  int
	Rolls     random.Source
	KnockOuts random.Source
}

// KnockOut is a game of Knock Out!
//
// Every pass, each player still in the game throws the die twice. Rolling your
// own knock-out number takes you out; anything else is added to your score.
// The game ends when everybody is out or somebody reaches TargetScore.
type KnockOut struct {
	ID      uuid.UUID
	Players []*models.Player

	// Observer receives game notifications. May be nil.
	Observer Observer

	// Logger receives knock-out and win messages. Defaults to the logrus
	// standard logger.
	Logger logrus.FieldLogger

	// MaxPasses caps the number of passes over the players (0 => no cap).
	MaxPasses int

	die    *dice.Die
	state  State
	result Result
}

// NewKnockOut builds a game with numberOfPlayers players numbered 1..N.
func NewKnockOut(numberOfPlayers int, setup Setup) (*KnockOut, error) {
	if numberOfPlayers < 1 {
		return nil, fmt.Errorf("new knockout with %d players: %w", numberOfPlayers, ErrNoPlayers)
	}

	sides := setup.DieSides
	if sides == 0 {
		sides = DefaultDieSides
	}
	rolls := setup.Rolls
	if rolls == nil {
		rolls = random.OneThroughTen(newSeed())
	}
	knockOuts := setup.KnockOuts
	if knockOuts == nil {
		knockOuts, _ = random.NewRange(models.KnockOutMin, models.KnockOutMax, newSeed())
	}

	die, err := dice.New(sides, rolls)
	if err != nil {
		return nil, fmt.Errorf("new knockout: %w", err)
	}

	g := &KnockOut{
		ID:      uuid.New(),
		Players: make([]*models.Player, 0, numberOfPlayers),
		Logger:  logrus.StandardLogger(),
		die:     die,
	}
	for i := 1; i <= numberOfPlayers; i++ {
		g.Players = append(g.Players, models.NewPlayer(i, knockOuts))
	}
	return g, nil
}

// newSeed falls back to the clock if crypto/rand is unavailable.
func newSeed() int64 {
	seed, err := random.NewSeed()
	if err != nil {
		return time.Now().UnixNano()
	}
	return seed
}

func (g *KnockOut) GameID() uuid.UUID { return g.ID }
func (g *KnockOut) Dice() *dice.Die   { return g.die }
func (g *KnockOut) State() State      { return g.state }

// Result returns the outcome of the game. It is the zero Result until the
// game has ended.
func (g *KnockOut) Result() Result { return g.result }

// ActivePlayers counts the players not yet knocked out.
func (g *KnockOut) ActivePlayers() int {
	n := 0
	for _, p := range g.Players {
		if !p.KnockedOut() {
			n++
		}
	}
	return n
}

// Play runs the game to completion. It may only be called once; later calls
// return the stored result and ErrAlreadyPlayed.
func (g *KnockOut) Play() (Result, error) {
	if g.state != StateNotStarted {
		return g.result, ErrAlreadyPlayed
	}

	obs := g.observer()
	g.state = StatePlaying
	obs.GameDidStart(g)

	g.result = g.run(obs)
	g.state = StateEnded

	// Single exit point so the end notification fires once for every outcome.
	obs.GameDidEnd(g)
	return g.result, nil
}

// run plays passes until a terminal condition is reached.
func (g *KnockOut) run(obs Observer) Result {
	var res Result
	log := g.logger().WithField("game", g.ID)

	for {
		if g.MaxPasses > 0 && res.Passes >= g.MaxPasses {
			res.Outcome = OutcomePassLimit
			log.WithField("passes", res.Passes).Warn("Pass limit reached before the game ended")
			return res
		}
		res.Passes++

		for _, player := range g.Players {
			if player.KnockedOut() {
				continue
			}

			diceRollSum := g.die.Roll() + g.die.Roll()
			res.Turns++
			obs.TurnTaken(g, player, diceRollSum)

			if diceRollSum == player.KnockOutNumber() {
				player.KnockOut()
				log.WithFields(logrus.Fields{
					"player": player.ID(),
					"roll":   diceRollSum,
				}).Info("Player knocked out")

				if g.ActivePlayers() == 0 {
					res.Outcome = OutcomeAllKnockedOut
					log.Info("All players have been knocked out")
					return res
				}
				continue
			}

			player.AddScore(diceRollSum)
			if player.Score() >= TargetScore {
				res.Outcome = OutcomeTargetReached
				res.Winner = player
				log.WithFields(logrus.Fields{
					"player": player.ID(),
					"score":  player.Score(),
				}).Info("Player won")
				return res
			}
		}
	}
}

func (g *KnockOut) observer() Observer {
	if g.Observer == nil {
		return nopObserver{}
	}
	return g.Observer
}

func (g *KnockOut) logger() logrus.FieldLogger {
	if g.Logger == nil {
		return logrus.StandardLogger()
	}
	return g.Logger
}
