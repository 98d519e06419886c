// internal/game/log_observer.go
package game

import (
	"github.com/jason-s-yu/knockout/internal/models"
	"github.com/sirupsen/logrus"
)

// LogObserver writes each game notification as a structured logrus entry.
// Starts and ends are logged at info level, turns at debug level.
type LogObserver struct {
	Logger logrus.FieldLogger
}

// NewLogObserver returns a LogObserver writing to logger.
func NewLogObserver(logger logrus.FieldLogger) *LogObserver {
	return &LogObserver{Logger: logger}
}

func (l *LogObserver) GameDidStart(game DiceGame) {
	fields := logrus.Fields{
		"game":  game.GameID(),
		"sides": game.Dice().Sides(),
	}
	if ko, ok := game.(*KnockOut); ok {
		fields["players"] = len(ko.Players)
	}
	l.Logger.WithFields(fields).Info("Game started")
}

func (l *LogObserver) TurnTaken(game DiceGame, player *models.Player, diceRoll int) {
	l.Logger.WithFields(logrus.Fields{
		"game":     game.GameID(),
		"player":   player.ID(),
		"roll":     diceRoll,
		"score":    player.Score(),
		"knockOut": player.KnockOutNumber(),
	}).Debug("Player turn")
}

func (l *LogObserver) GameDidEnd(game DiceGame) {
	fields := logrus.Fields{
		"game": game.GameID(),
	}
	if ko, ok := game.(*KnockOut); ok {
		res := ko.Result()
		fields["outcome"] = res.Outcome.String()
		fields["turns"] = res.Turns
		fields["passes"] = res.Passes
		if res.Winner != nil {
			fields["winner"] = res.Winner.ID()
			fields["score"] = res.Winner.Score()
		}
	}
	l.Logger.WithFields(fields).Info("Game ended")
}
