package game

import (
	"fmt"
	"slices"

	"uno/utils"
)

// Hidden is the unobserved side of the table: the opponents' holdings and the order of the draw pile.
// A simulation backs it with a sampled particle, a round driver with the real cards.
type Hidden interface {
	// Hand returns the cards of an opponent seat, or nil when they are unknown.
	Hand(seat int) []Card
	// Deal removes a card from the draw pile and, for an opponent, adds it to their hand.
	Deal(seat int) (Card, bool)
	// Take removes a card an opponent played from their hand.
	Take(seat int, c Card)
	// Reshuffle returns cards from the discard pile to the draw pile.
	Reshuffle(cards []Card)
}

// Transition applies the action of seat to s and returns the resulting state with what the move revealed.
// s is left untouched. An action that is not allowed yields an *IllegalActionError.
func Transition(s State, a Action, seat int, h Hidden) (State, Observation, error) {
	obs := newObservation(s, seat, a)
	if s.Terminal() {
		return s, obs, illegal(seat, a, "%v", ErrRoundOver)
	}
	if seat != s.Turn {
		return s, obs, illegal(seat, a, "seat %d is on turn", s.Turn)
	}

	next := s.Clone()
	var err error
	switch a.Type {
	case PlayCardAction:
		err = next.playCard(seat, a, h)
	case ChooseColorAction:
		err = next.chooseColor(seat, a)
	case ChallengeAction:
		err = next.challenge(seat, a, h, &obs)
	case DrawCardAction:
		err = next.drawCard(seat, a, h, &obs)
	case DeclareUnoAction:
		err = next.declareUno(seat, a)
	default:
		err = illegal(seat, a, "unknown action type")
	}
	if err != nil {
		return s, obs, err
	}
	return next, obs, nil
}

func (s *State) handOf(seat int, h Hidden) []Card {
	if seat == Agent {
		return s.Hand
	}
	if h == nil {
		return nil
	}
	return h.Hand(seat)
}

func (s *State) blocked(seat int, a Action) error {
	switch {
	case s.CommandPending:
		return illegal(seat, a, "a color must be chosen first")
	case s.ChallengeOpen:
		return illegal(seat, a, "the draw four must be challenged or accepted first")
	}
	return nil
}

func (s *State) playCard(seat int, a Action, h Hidden) error {
	if err := s.blocked(seat, a); err != nil {
		return err
	}
	if s.PendingDraw > 0 {
		return illegal(seat, a, "%d penalty cards must be drawn", s.PendingDraw)
	}
	if s.HasForced && a.Card != s.Forced {
		return illegal(seat, a, "the drawn %s must be played", s.Forced)
	}

	c := a.Card
	if s.HandSize(seat) == 0 {
		return illegal(seat, a, "hand is empty")
	}
	hand := s.handOf(seat, h)
	if hand != nil && utils.FindIndex(hand, c) < 0 {
		return illegal(seat, a, "card is not in hand")
	}
	if !c.Matches(s.Top, s.ActiveColor) {
		return illegal(seat, a, "does not match %s with %s active", s.Top, s.ActiveColor)
	}
	if c.Rank == WildDrawFour && hand != nil && holdsColor(hand, s.ActiveColor) {
		return illegal(seat, a, "seat holds a %s card", s.ActiveColor)
	}

	if seat == Agent {
		s.Hand, _ = utils.RemoveFirst(s.Hand, c)
	} else {
		s.OpponentCounts[seat-1]--
		if h != nil {
			h.Take(seat, c)
		}
	}
	s.Discard = append(s.Discard, c)
	s.Top = c
	s.Forced = Card{}
	s.HasForced = false

	if s.HandSize(seat) == 0 {
		s.Winner = seat
		return nil
	}

	if c.IsWild() {
		s.PrevColor = s.ActiveColor
		s.CommandPending = true
		if c.Rank == WildDrawFour {
			s.PendingDraw += 4
			s.Offender = seat
		}
		return nil
	}

	s.ActiveColor = c.Color
	switch c.Rank {
	case Skip:
		s.PendingSkip = true
	case Reverse:
		s.Direction = -s.Direction
	case DrawTwo:
		s.PendingDraw += 2
	}
	s.advance()
	return nil
}

func (s *State) chooseColor(seat int, a Action) error {
	if !s.CommandPending {
		return illegal(seat, a, "no wild awaits a color")
	}
	if utils.FindIndex(Colors[:], a.Color) < 0 {
		return illegal(seat, a, "%s is not a playable color", a.Color)
	}

	s.ActiveColor = a.Color
	s.CommandPending = false
	if s.Top.Rank == WildDrawFour && s.PendingDraw > 0 {
		s.ChallengeOpen = true
	}
	s.advance()
	return nil
}

// A challenge shows the offender's hand. Holding the previous color makes the
// offender draw the four; otherwise the challenger's penalty grows to six.
func (s *State) challenge(seat int, a Action, h Hidden, obs *Observation) error {
	if !s.ChallengeOpen {
		return illegal(seat, a, "no draw four to challenge")
	}
	s.ChallengeOpen = false
	if !a.Challenge {
		return nil
	}

	hand := s.handOf(s.Offender, h)
	if hand != nil {
		obs.RevealSeat = s.Offender
		obs.Revealed = slices.Clone(hand)
	}
	if hand != nil && holdsColor(hand, s.PrevColor) {
		penalty := s.PendingDraw
		s.PendingDraw = 0
		return s.deal(s.Offender, penalty, h, obs)
	}
	s.PendingDraw += 2
	return nil
}

func (s *State) drawCard(seat int, a Action, h Hidden, obs *Observation) error {
	if err := s.blocked(seat, a); err != nil {
		return err
	}
	if s.HasForced {
		return illegal(seat, a, "the drawn %s must be played", s.Forced)
	}

	if s.PendingDraw > 0 {
		penalty := s.PendingDraw
		s.PendingDraw = 0
		if err := s.deal(seat, penalty, h, obs); err != nil {
			return err
		}
		s.advance()
		return nil
	}

	obs.NoPlayable = len(Playable(*s, s.handOf(seat, h))) == 0
	if err := s.deal(seat, 1, h, obs); err != nil {
		return err
	}
	if obs.DrawCount == 0 {
		s.advance()
		return nil
	}

	drawn := obs.Drawn[len(obs.Drawn)-1]
	if canPlay(*s, s.handOf(seat, h), drawn) {
		s.Forced = drawn
		s.HasForced = true
		return nil
	}
	s.advance()
	return nil
}

func (s *State) declareUno(seat int, a Action) error {
	if err := s.blocked(seat, a); err != nil {
		return err
	}
	if s.PendingDraw > 0 || s.HasForced {
		return illegal(seat, a, "a draw must be resolved first")
	}
	if s.HandSize(seat) != 2 {
		return illegal(seat, a, "uno is declared holding two cards")
	}
	if s.declared(seat) {
		return illegal(seat, a, "already declared")
	}
	if len(s.Declared) < s.Seats() {
		declared := make([]bool, s.Seats())
		copy(declared, s.Declared)
		s.Declared = declared
	}
	s.Declared[seat] = true
	return nil
}

// deal moves n cards from the draw pile to seat, refilling the pile from the
// discard pile whenever it runs out. It stops early once no card is left anywhere.
func (s *State) deal(seat, n int, h Hidden, obs *Observation) error {
	obs.DrawSeat = seat
	for i := 0; i < n; i++ {
		if s.DrawCount == 0 {
			if len(s.Discard) <= 1 {
				break
			}
			s.reshuffle(h, obs)
		}

		c, ok := h.Deal(seat)
		if !ok {
			return fmt.Errorf("dealing to seat %d with %d cards in the draw pile: %w", seat, s.DrawCount, ErrPoolExhausted)
		}
		s.DrawCount--
		if seat == Agent {
			s.Hand = append(s.Hand, c)
		} else {
			s.OpponentCounts[seat-1]++
		}
		obs.Drawn = append(obs.Drawn, c)
		obs.DrawCount++
	}
	if obs.DrawCount > 0 && s.declared(seat) {
		s.Declared[seat] = false
	}
	return nil
}

func (s *State) reshuffle(h Hidden, obs *Observation) {
	cards := slices.Clone(s.Discard[:len(s.Discard)-1])
	s.Discard = []Card{s.Top}
	s.DrawCount += len(cards)
	h.Reshuffle(cards)
	obs.Reshuffled = append(obs.Reshuffled, cards...)
}
