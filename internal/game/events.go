// internal/game/events.go
package game

import (
	"io"

	"github.com/google/uuid"
	"github.com/jason-s-yu/knockout/internal/models"
	"github.com/sirupsen/logrus"
)

// GameEventType is an enum-like type for game notifications.
type GameEventType string

const (
	EventGameStart  GameEventType = "game_start"
	EventPlayerTurn GameEventType = "player_turn"
	EventGameEnd    GameEventType = "game_end"
)

// EventPlayer is a snapshot of a player inside a GameEvent.
type EventPlayer struct {
	ID             int  `json:"id"`
	KnockOutNumber int  `json:"knockOutNumber"`
	Score          int  `json:"score"`
	KnockedOut     bool `json:"knockedOut"`
}

// GameEvent is the structured form of an observer notification.
type GameEvent struct {
	Type     GameEventType `json:"type"`
	GameID   uuid.UUID     `json:"gameId"`
	Turn     int           `json:"turn,omitempty"`
	Player   *EventPlayer  `json:"player,omitempty"` // snapshot taken before the roll is applied
	DiceRoll int           `json:"diceRoll,omitempty"`

	// Payload carries game-level details on start and end events.
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// EventObserver turns notifications into GameEvents and passes them to Emit.
type EventObserver struct {
	// Emit receives every event. If nil, events are dropped.
	Emit func(ev GameEvent)

	turn int
}

func (e *EventObserver) GameDidStart(game DiceGame) {
	e.turn = 0
	payload := map[string]interface{}{
		"sides": game.Dice().Sides(),
	}
	if ko, ok := game.(*KnockOut); ok {
		payload["players"] = len(ko.Players)
	}
	e.emit(GameEvent{
		Type:    EventGameStart,
		GameID:  game.GameID(),
		Payload: payload,
	})
}

func (e *EventObserver) TurnTaken(game DiceGame, player *models.Player, diceRoll int) {
	e.turn++
	e.emit(GameEvent{
		Type:   EventPlayerTurn,
		GameID: game.GameID(),
		Turn:   e.turn,
		Player: &EventPlayer{
			ID:             player.ID(),
			KnockOutNumber: player.KnockOutNumber(),
			Score:          player.Score(),
			KnockedOut:     player.KnockedOut(),
		},
		DiceRoll: diceRoll,
	})
}

func (e *EventObserver) GameDidEnd(game DiceGame) {
	payload := map[string]interface{}{
		"turns": e.turn,
	}
	if ko, ok := game.(*KnockOut); ok {
		res := ko.Result()
		payload["outcome"] = res.Outcome.String()
		payload["passes"] = res.Passes
		if res.Winner != nil {
			payload["winner"] = res.Winner.ID()
			payload["score"] = res.Winner.Score()
		}
	}
	e.emit(GameEvent{
		Type:    EventGameEnd,
		GameID:  game.GameID(),
		Payload: payload,
	})
}

func (e *EventObserver) emit(ev GameEvent) {
	if e.Emit != nil {
		e.Emit(ev)
	}
}

// NewJSONLinesObserver returns an EventObserver that writes each event to w as
// a single line of JSON. Write failures are logged to logger and otherwise
// ignored.
func NewJSONLinesObserver(w io.Writer, logger logrus.FieldLogger) *EventObserver {
	return &EventObserver{
		Emit: func(ev GameEvent) {
			data := append(convertEventToBytes(ev, logger), '\n')
			if _, err := w.Write(data); err != nil && logger != nil {
				logger.WithError(err).WithField("type", ev.Type).Warn("Failed to write game event")
			}
		},
	}
}
