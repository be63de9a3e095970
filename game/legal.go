package game

import "uno/utils"

// LegalActions lists the actions seat may take. Opponent hands are unknown to
// the agent, so for them only actions that do not depend on the hand are returned.
func LegalActions(s State, seat int) []Action {
	var hand []Card
	if seat == Agent {
		hand = s.Hand
	}
	return LegalActionsFor(s, seat, hand)
}

// LegalActionsFor lists the actions seat may take holding hand, in a stable order.
func LegalActionsFor(s State, seat int, hand []Card) []Action {
	if s.Terminal() || seat != s.Turn {
		return nil
	}

	switch {
	case s.CommandPending:
		actions := make([]Action, 0, len(Colors))
		for _, color := range Colors {
			actions = append(actions, ChooseColor(color))
		}
		return actions
	case s.ChallengeOpen:
		return []Action{ChallengeDrawFour(false), ChallengeDrawFour(true)}
	case s.PendingDraw > 0:
		return []Action{DrawCard()}
	case s.HasForced:
		return []Action{PlayCard(s.Forced)}
	}

	plays := Playable(s, hand)
	if len(plays) == 0 {
		return []Action{DrawCard()}
	}

	actions := make([]Action, 0, len(plays)+1)
	for _, c := range plays {
		actions = append(actions, PlayCard(c))
	}
	if len(hand) == 2 && !s.declared(seat) {
		actions = append(actions, DeclareUno())
	}
	return actions
}

// Playable returns the distinct cards of hand that may be played now, in hand order.
func Playable(s State, hand []Card) []Card {
	var plays []Card
	for _, c := range hand {
		if !canPlay(s, hand, c) {
			continue
		}
		if utils.FindIndex(plays, c) < 0 {
			plays = append(plays, c)
		}
	}
	return plays
}

func canPlay(s State, hand []Card, c Card) bool {
	if !c.Matches(s.Top, s.ActiveColor) {
		return false
	}
	if c.Rank == WildDrawFour && holdsColor(hand, s.ActiveColor) {
		return false
	}
	return true
}
