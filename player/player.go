// Package player holds the scripted opponents the agent is measured against.
package player

import (
	"uno/game"

	"golang.org/x/exp/rand"
)

// Player picks an action for seat, which is on turn in s and holds hand.
// The returned action is always legal.
type Player interface {
	Act(s game.State, seat int, hand []game.Card, rng *rand.Rand) game.Action
}

const challengeProbability = 0.5

// Bot plays like the computer players of the classic table game: it names the
// color it holds most of, challenges a draw four half of the time, declares
// uno whenever it may and plays its strongest card when the next seat is
// about to go out.
type Bot struct{}

func (Bot) Act(s game.State, seat int, hand []game.Card, rng *rand.Rand) game.Action {
	legal := game.LegalActionsFor(s, seat, hand)
	switch {
	case s.CommandPending:
		if len(hand) == 0 {
			return legal[rng.Intn(len(legal))]
		}
		return game.ChooseColor(game.PreferredColor(hand))
	case s.ChallengeOpen:
		return game.ChallengeDrawFour(rng.Float64() < challengeProbability)
	case len(legal) == 1:
		return legal[0]
	}

	if legal[len(legal)-1].Type == game.DeclareUnoAction {
		return game.DeclareUno()
	}

	plays := game.Playable(s, hand)
	if s.HandSize(s.NextSeat()) == 1 {
		// Block
		strongest := plays[0]
		for _, c := range plays[1:] {
			if blockOrder(c.Rank) > blockOrder(strongest.Rank) {
				strongest = c
			}
		}
		return game.PlayCard(strongest)
	}
	return game.PlayCard(plays[rng.Intn(len(plays))])
}

// blockOrder ranks cards by how much they hurt the next seat.
func blockOrder(r game.Rank) int {
	switch r {
	case game.WildCard:
		return 10
	case game.Skip:
		return 11
	case game.Reverse:
		return 12
	case game.DrawTwo:
		return 13
	case game.WildDrawFour:
		return 14
	}
	return int(r)
}

// Random picks uniformly among the legal actions.
type Random struct{}

func (Random) Act(s game.State, seat int, hand []game.Card, rng *rand.Rand) game.Action {
	legal := game.LegalActionsFor(s, seat, hand)
	return legal[rng.Intn(len(legal))]
}

// New returns the player registered under name, defaulting to Bot.
func New(name string) Player {
	if name == "random" {
		return Random{}
	}
	return Bot{}
}
