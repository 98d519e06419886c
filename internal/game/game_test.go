// internal/game/game_test.go
package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jason-s-yu/knockout/internal/dice"
	"github.com/jason-s-yu/knockout/internal/models"
	"github.com/jason-s-yu/knockout/internal/random"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// turnRecord captures one TurnTaken notification.
type turnRecord struct {
	PlayerID    int
	DiceRoll    int
	ScoreBefore int
}

// mockObserver collects notifications instead of printing them.
type mockObserver struct {
	starts int
	turns  []turnRecord
	ends   int

	// resultAtEnd is what the game reported from inside GameDidEnd.
	resultAtEnd Result
	stateAtEnd  State
}

func (m *mockObserver) GameDidStart(game DiceGame) {
	m.starts++
}

func (m *mockObserver) TurnTaken(game DiceGame, player *models.Player, diceRoll int) {
	m.turns = append(m.turns, turnRecord{
		PlayerID:    player.ID(),
		DiceRoll:    diceRoll,
		ScoreBefore: player.Score(),
	})
}

func (m *mockObserver) GameDidEnd(game DiceGame) {
	m.ends++
	if ko, ok := game.(*KnockOut); ok {
		m.resultAtEnd = ko.Result()
		m.stateAtEnd = ko.State()
	}
}

// scripted returns the prefix values in order, then repeats `then` forever.
func scripted(prefix []int, then int) random.Func {
	i := 0
	return func() int {
		if i < len(prefix) {
			v := prefix[i]
			i++
			return v
		}
		return then
	}
}

// setupTestGame builds a six-sided game with a recording observer and a null logger.
func setupTestGame(t *testing.T, numPlayers int, rolls, knockOuts random.Source) (*KnockOut, *mockObserver, *logtest.Hook) {
	t.Helper()
	g, err := NewKnockOut(numPlayers, Setup{
		DieSides:  6,
		Rolls:     rolls,
		KnockOuts: knockOuts,
	})
	require.NoError(t, err)

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	g.Logger = logger

	obs := &mockObserver{}
	g.Observer = obs
	return g, obs, hook
}

// A lone player rolling double sixes wins after nine turns with 108.
func TestSinglePlayerWinsOnScore(t *testing.T) {
	g, obs, _ := setupTestGame(t, 1, random.NewSequence(5), random.NewSequence(6))

	res, err := g.Play()
	require.NoError(t, err)

	player := g.Players[0]
	assert.Equal(t, OutcomeTargetReached, res.Outcome)
	require.NotNil(t, res.Winner)
	assert.Same(t, player, res.Winner)
	assert.Equal(t, 108, player.Score())
	assert.False(t, player.KnockedOut())
	assert.Equal(t, 9, res.Turns)
	assert.Equal(t, 9, res.Passes)

	assert.Equal(t, 1, obs.starts)
	require.Len(t, obs.turns, 9)
	for i, turn := range obs.turns {
		assert.Equal(t, 12, turn.DiceRoll)
		assert.Equal(t, 12*i, turn.ScoreBefore, "turn %d", i+1)
	}
	assert.Equal(t, 1, obs.ends)
}

// A lone player rolling their own knock-out number ends the game at once.
func TestSinglePlayerKnockedOutOnFirstTurn(t *testing.T) {
	// 2%6+1 + 3%6+1 = 3 + 4 = 7
	g, obs, hook := setupTestGame(t, 1, random.NewSequence(2, 3), random.NewSequence(7))
	require.Equal(t, 7, g.Players[0].KnockOutNumber())

	res, err := g.Play()
	require.NoError(t, err)

	assert.Equal(t, OutcomeAllKnockedOut, res.Outcome)
	assert.Nil(t, res.Winner)
	assert.Equal(t, 1, res.Turns)
	assert.Equal(t, 1, res.Passes)
	assert.True(t, g.Players[0].KnockedOut())
	assert.Equal(t, 0, g.Players[0].Score())

	require.Len(t, obs.turns, 1)
	assert.Equal(t, turnRecord{PlayerID: 1, DiceRoll: 7, ScoreBefore: 0}, obs.turns[0])
	assert.Equal(t, 1, obs.ends)

	var messages []string
	for _, e := range hook.AllEntries() {
		messages = append(messages, e.Message)
	}
	assert.Contains(t, messages, "Player knocked out")
	assert.Contains(t, messages, "All players have been knocked out")
}

// The knocked-out player is skipped on every later pass and keeps score 0.
func TestKnockedOutPlayerIsSkipped(t *testing.T) {
	// player 1 rolls 3+4=7 (its knock-out), afterwards every die shows 6
	rolls := scripted([]int{2, 3}, 5)
	g, obs, _ := setupTestGame(t, 2, rolls, random.NewSequence(7, 9))
	require.Equal(t, 7, g.Players[0].KnockOutNumber())
	require.Equal(t, 9, g.Players[1].KnockOutNumber())

	res, err := g.Play()
	require.NoError(t, err)

	first, second := g.Players[0], g.Players[1]
	assert.Equal(t, OutcomeTargetReached, res.Outcome)
	assert.Same(t, second, res.Winner)
	assert.True(t, first.KnockedOut())
	assert.Equal(t, 0, first.Score())
	assert.Equal(t, 108, second.Score())
	assert.Equal(t, 9, res.Passes)
	assert.Equal(t, 10, res.Turns)

	require.Len(t, obs.turns, 10)
	assert.Equal(t, 1, obs.turns[0].PlayerID)
	for _, turn := range obs.turns[1:] {
		assert.Equal(t, 2, turn.PlayerID, "knocked out player must not take another turn")
	}
	assert.Equal(t, 1, obs.ends)
}

// Terminal conditions are checked after each turn, not after a full pass.
func TestGameEndsMidPass(t *testing.T) {
	g, obs, _ := setupTestGame(t, 3, random.NewSequence(5), random.NewSequence(6))

	res, err := g.Play()
	require.NoError(t, err)

	assert.Equal(t, OutcomeTargetReached, res.Outcome)
	assert.Equal(t, 1, res.Winner.ID())
	assert.Equal(t, 9, res.Passes)
	assert.Equal(t, 8*3+1, res.Turns)
	assert.Equal(t, 108, g.Players[0].Score())
	assert.Equal(t, 96, g.Players[1].Score())
	assert.Equal(t, 96, g.Players[2].Score())
	assert.Len(t, obs.turns, 25)
}

func TestAllPlayersKnockedOutAcrossPasses(t *testing.T) {
	// pass 1: p1 rolls 7 (out), p2 rolls 12; pass 2: p2 rolls 4+5=9 (out)
	rolls := random.NewSequence(2, 3, 5, 5, 3, 4)
	g, obs, _ := setupTestGame(t, 2, rolls, random.NewSequence(7, 9))

	res, err := g.Play()
	require.NoError(t, err)

	assert.Equal(t, OutcomeAllKnockedOut, res.Outcome)
	assert.Equal(t, 3, res.Turns)
	assert.Equal(t, 2, res.Passes)
	assert.Equal(t, 0, g.ActivePlayers())
	assert.Equal(t, 12, g.Players[1].Score())
	assert.Equal(t, 1, obs.ends)
}

func TestPassLimitStopsTheGame(t *testing.T) {
	// every die shows 1, so each turn scores 2 and never hits knock-out 6
	g, obs, hook := setupTestGame(t, 1, random.NewSequence(0), random.NewSequence(6))
	g.MaxPasses = 10

	res, err := g.Play()
	require.NoError(t, err)

	assert.Equal(t, OutcomePassLimit, res.Outcome)
	assert.Nil(t, res.Winner)
	assert.Equal(t, 10, res.Passes)
	assert.Equal(t, 10, res.Turns)
	assert.Equal(t, 20, g.Players[0].Score())
	assert.Equal(t, 1, obs.ends)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestResultAndStateVisibleToGameDidEnd(t *testing.T) {
	g, obs, _ := setupTestGame(t, 1, random.NewSequence(5), random.NewSequence(6))
	assert.Equal(t, StateNotStarted, g.State())

	var stateAtStart State
	g.Observer = Observers{obs, ObserverFuncs{OnStart: func(DiceGame) { stateAtStart = g.State() }}}

	res, err := g.Play()
	require.NoError(t, err)

	assert.Equal(t, StatePlaying, stateAtStart)
	assert.Equal(t, StateEnded, obs.stateAtEnd)
	assert.Equal(t, res, obs.resultAtEnd)
	assert.Equal(t, StateEnded, g.State())
}

func TestPlayTwiceReturnsErrAlreadyPlayed(t *testing.T) {
	g, obs, _ := setupTestGame(t, 1, random.NewSequence(5), random.NewSequence(6))

	first, err := g.Play()
	require.NoError(t, err)

	second, err := g.Play()
	assert.ErrorIs(t, err, ErrAlreadyPlayed)
	assert.Equal(t, first, second)
	assert.Equal(t, 108, g.Players[0].Score())
	assert.Equal(t, 1, obs.starts)
	assert.Equal(t, 1, obs.ends)
}

func TestPlayWithoutObserver(t *testing.T) {
	g, _, _ := setupTestGame(t, 2, random.NewSequence(5), random.NewSequence(6))
	g.Observer = nil
	g.Logger = nil

	res, err := g.Play()
	require.NoError(t, err)
	assert.Equal(t, OutcomeTargetReached, res.Outcome)
}

func TestNewKnockOutValidates(t *testing.T) {
	_, err := NewKnockOut(0, Setup{})
	assert.ErrorIs(t, err, ErrNoPlayers)

	_, err = NewKnockOut(-2, Setup{})
	assert.ErrorIs(t, err, ErrNoPlayers)

	_, err = NewKnockOut(2, Setup{DieSides: -1})
	assert.ErrorIs(t, err, dice.ErrInvalidSides)
}

func TestNewKnockOutDefaults(t *testing.T) {
	g, err := NewKnockOut(5, Setup{})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, g.ID)
	assert.Equal(t, DefaultDieSides, g.Dice().Sides())
	assert.Equal(t, StateNotStarted, g.State())
	assert.Equal(t, Result{}, g.Result())
	assert.Equal(t, 5, g.ActivePlayers())
	require.Len(t, g.Players, 5)
	for i, p := range g.Players {
		assert.Equal(t, i+1, p.ID())
		assert.GreaterOrEqual(t, p.KnockOutNumber(), models.KnockOutMin)
		assert.LessOrEqual(t, p.KnockOutNumber(), models.KnockOutMax)
	}
}

// Seeded random games always end within 50 passes: every turn either knocks a
// player out or adds at least 2 points.
func TestSeededGamesTerminate(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		knockOuts, err := random.NewRange(models.KnockOutMin, models.KnockOutMax, seed)
		require.NoError(t, err)
		g, obs, _ := setupTestGame(t, 4, random.OneThroughTen(seed), knockOuts)

		res, err := g.Play()
		require.NoError(t, err)

		assert.NotEqual(t, OutcomeNone, res.Outcome, "seed %d", seed)
		assert.LessOrEqual(t, res.Passes, 50, "seed %d", seed)
		assert.Equal(t, 1, obs.ends, "seed %d", seed)
		assert.Len(t, obs.turns, res.Turns, "seed %d", seed)

		// scores never drop, and a knocked-out player never plays again
		last := make(map[int]int)
		out := make(map[int]bool)
		for _, turn := range obs.turns {
			require.False(t, out[turn.PlayerID], "seed %d: player %d played after knock-out", seed, turn.PlayerID)
			require.GreaterOrEqual(t, turn.ScoreBefore, last[turn.PlayerID])
			require.GreaterOrEqual(t, turn.DiceRoll, 2)
			require.LessOrEqual(t, turn.DiceRoll, 12)
			last[turn.PlayerID] = turn.ScoreBefore
			if turn.DiceRoll == g.Players[turn.PlayerID-1].KnockOutNumber() {
				out[turn.PlayerID] = true
			}
		}
	}
}

func TestSameSeedSameGame(t *testing.T) {
	play := func() Result {
		knockOuts, err := random.NewRange(models.KnockOutMin, models.KnockOutMax, 99)
		require.NoError(t, err)
		g, _, _ := setupTestGame(t, 3, random.OneThroughOneHundred(99), knockOuts)
		res, err := g.Play()
		require.NoError(t, err)
		return res
	}

	a, b := play(), play()
	assert.Equal(t, a.Outcome, b.Outcome)
	assert.Equal(t, a.Turns, b.Turns)
	assert.Equal(t, a.Passes, b.Passes)
	if a.Winner != nil {
		require.NotNil(t, b.Winner)
		assert.Equal(t, a.Winner.ID(), b.Winner.ID())
		assert.Equal(t, a.Winner.Score(), b.Winner.Score())
	}
}
