// internal/game/tracker.go
package game

import (
	"fmt"
	"io"

	"github.com/jason-s-yu/knockout/internal/models"
)

// Tracker counts turns and prints a human readable play-by-play to Out.
type Tracker struct {
	Out           io.Writer
	NumberOfTurns int
}

// NewTracker returns a Tracker writing to out.
func NewTracker(out io.Writer) *Tracker {
	return &Tracker{Out: out}
}

func (t *Tracker) GameDidStart(game DiceGame) {
	t.NumberOfTurns = 0
	if _, ok := game.(*KnockOut); ok {
		fmt.Fprintln(t.Out, "Started a new game of Knock Out!")
	}
	fmt.Fprintf(t.Out, "The game is using a %d-sided die\n", game.Dice().Sides())
}

func (t *Tracker) TurnTaken(game DiceGame, player *models.Player, diceRoll int) {
	t.NumberOfTurns++
	fmt.Fprintf(t.Out, "Player #%d rolled a %d\n", player.ID(), diceRoll)
}

func (t *Tracker) GameDidEnd(game DiceGame) {
	if ko, ok := game.(*KnockOut); ok {
		res := ko.Result()
		switch res.Outcome {
		case OutcomeAllKnockedOut:
			fmt.Fprintln(t.Out, "All players have been knocked out!")
		case OutcomeTargetReached:
			fmt.Fprintf(t.Out, "Player #%d has won with a final score of %d\n", res.Winner.ID(), res.Winner.Score())
		case OutcomePassLimit:
			fmt.Fprintf(t.Out, "Nobody finished within %d passes\n", res.Passes)
		}
	}
	fmt.Fprintf(t.Out, "The game lasted for %d turns\n", t.NumberOfTurns)
}
