// internal/game/observer.go
package game

import "github.com/jason-s-yu/knockout/internal/models"

// Observer is notified as a DiceGame progresses. Implementations observe only;
// nothing they do feeds back into the game.
type Observer interface {
	// GameDidStart fires once, before the first turn.
	GameDidStart(game DiceGame)

	// TurnTaken fires for every turn with the sum of the two dice, before the
	// roll is applied to the player. It fires for rolls that knock the player
	// out as well.
	TurnTaken(game DiceGame, player *models.Player, diceRoll int)

	// GameDidEnd fires exactly once per game, whichever terminal condition
	// ended it.
	GameDidEnd(game DiceGame)
}

// Observers fans every notification out to each member in order. Nil members
// are skipped.
type Observers []Observer

func (obs Observers) GameDidStart(game DiceGame) {
	for _, o := range obs {
		if o != nil {
			o.GameDidStart(game)
		}
	}
}

func (obs Observers) TurnTaken(game DiceGame, player *models.Player, diceRoll int) {
	for _, o := range obs {
		if o != nil {
			o.TurnTaken(game, player, diceRoll)
		}
	}
}

func (obs Observers) GameDidEnd(game DiceGame) {
	for _, o := range obs {
		if o != nil {
			o.GameDidEnd(game)
		}
	}
}

// ObserverFuncs adapts optional callbacks into an Observer. Unset callbacks
// are ignored.
type ObserverFuncs struct {
	OnStart func(game DiceGame)
	OnTurn  func(game DiceGame, player *models.Player, diceRoll int)
	OnEnd   func(game DiceGame)
}

func (f ObserverFuncs) GameDidStart(game DiceGame) {
	if f.OnStart != nil {
		f.OnStart(game)
	}
}

func (f ObserverFuncs) TurnTaken(game DiceGame, player *models.Player, diceRoll int) {
	if f.OnTurn != nil {
		f.OnTurn(game, player, diceRoll)
	}
}

func (f ObserverFuncs) GameDidEnd(game DiceGame) {
	if f.OnEnd != nil {
		f.OnEnd(game)
	}
}

// nopObserver stands in when no observer is attached.
type nopObserver struct{}

func (nopObserver) GameDidStart(DiceGame)                    {}
func (nopObserver) TurnTaken(DiceGame, *models.Player, int) {}
func (nopObserver) GameDidEnd(DiceGame)                      {}
