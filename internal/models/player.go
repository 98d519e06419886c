package models

import "github.com/jason-s-yu/knockout/internal/random"

// Bounds of the knock-out number every player is dealt.
const (
	KnockOutMin = 6
	KnockOutMax = 9
)

// Player is a participant in a game of Knock Out. The id and knock-out number
// never change after construction; the score only grows until the player is
// knocked out, after which it is frozen.
type Player struct {
	id             int
	knockOutNumber int
	score          int
	knockedOut     bool
}

// NewPlayer creates a player with the given id and draws its knock-out number
// from knockOuts. Any value the source returns is folded into
// [KnockOutMin, KnockOutMax]; values already in that range are kept as is.
func NewPlayer(id int, knockOuts random.Source) *Player {
	span := KnockOutMax - KnockOutMin + 1
	return &Player{
		id:             id,
		knockOutNumber: KnockOutMin + random.Mod(knockOuts.Random()-KnockOutMin, span),
	}
}

func (p *Player) ID() int             { return p.id }
func (p *Player) KnockOutNumber() int { return p.knockOutNumber }
func (p *Player) Score() int          { return p.score }
func (p *Player) KnockedOut() bool    { return p.knockedOut }

// AddScore adds amount to the running score. It is a no-op once the player
// has been knocked out, or for a negative amount.
func (p *Player) AddScore(amount int) {
	if p.knockedOut || amount < 0 {
		return
	}
	p.score += amount
}

// KnockOut eliminates the player. There is no way back in.
func (p *Player) KnockOut() {
	p.knockedOut = true
}
