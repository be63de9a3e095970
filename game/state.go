package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"slices"
)

// Agent is the seat the decision engine plays for. Opponents occupy seats 1..N-1.
const Agent = 0

const NoWinner = -1

type StateHash uint64

// State is the table as seen by the agent: its own hand plus public information.
// Transitions never mutate a State in place, they return a new copy.
type State struct {
	ActiveColor Color
	Direction   int // +1 clockwise, -1 counterclockwise
	Top         Card
	PendingSkip bool
	PendingDraw int

	Hand           []Card
	OpponentCounts []int // OpponentCounts[i] is the hand size of seat i+1
	Turn           int

	// A wild was played and its owner still has to name a color
	CommandPending bool
	// The seat on turn may challenge the Wild Draw Four that was played on it
	ChallengeOpen bool
	Offender      int
	PrevColor     Color

	// The seat on turn drew a playable card and must play it
	Forced    Card
	HasForced bool

	Declared []bool

	Discard   []Card // Top is the last card
	DrawCount int

	Winner int
}

// Opening builds the first state of a round after the deal and applies the effect of the flipped card.
func Opening(top Card, dealer int, hand []Card, opponentCounts []int, drawCount int) (State, error) {
	if top.Rank == WildDrawFour {
		return State{}, ErrOpeningCard
	}
	seats := 1 + len(opponentCounts)
	s := State{
		ActiveColor:    top.Color,
		Direction:      1,
		Top:            top,
		Hand:           slices.Clone(hand),
		OpponentCounts: slices.Clone(opponentCounts),
		Turn:           dealer,
		Offender:       -1,
		Declared:       make([]bool, seats),
		Discard:        []Card{top},
		DrawCount:      drawCount,
		Winner:         NoWinner,
	}

	switch top.Rank {
	case Skip:
		s.PendingSkip = true
		s.advance()
	case Reverse:
		// Counterclockwise with the dealer leading
		s.Direction = -1
	case DrawTwo:
		s.PendingDraw = 2
		s.advance()
	case WildCard:
		s.ActiveColor = NoColor
		s.CommandPending = true
	default:
		s.advance()
	}

	return s, s.Validate()
}

func (s State) Clone() State {
	c := s
	c.Hand = slices.Clone(s.Hand)
	c.OpponentCounts = slices.Clone(s.OpponentCounts)
	c.Declared = slices.Clone(s.Declared)
	c.Discard = slices.Clone(s.Discard)
	return c
}

func (s State) Seats() int {
	return 1 + len(s.OpponentCounts)
}

func (s State) HandSize(seat int) int {
	if seat == Agent {
		return len(s.Hand)
	}
	return s.OpponentCounts[seat-1]
}

func (s State) Terminal() bool {
	return s.Winner != NoWinner
}

// NextSeat is the seat that follows the one on turn in the current direction.
func (s State) NextSeat() int {
	return s.seatAfter(s.Turn, s.Direction)
}

func (s State) seatAfter(seat, offset int) int {
	n := s.Seats()
	return ((seat+offset)%n + n) % n
}

func (s *State) advance() {
	step := 1
	if s.PendingSkip {
		step = 2
		s.PendingSkip = false
	}
	s.Turn = s.seatAfter(s.Turn, step*s.Direction)
}

// CardCount is the number of cards accounted for across hands and piles.
func (s State) CardCount() int {
	total := len(s.Hand) + s.DrawCount + len(s.Discard)
	for _, count := range s.OpponentCounts {
		total += count
	}
	return total
}

func (s State) Validate() error {
	if s.Direction != 1 && s.Direction != -1 {
		return fmt.Errorf("invalid direction %d", s.Direction)
	}
	if s.Turn < 0 || s.Turn >= s.Seats() {
		return fmt.Errorf("turn %d out of range for %d seats", s.Turn, s.Seats())
	}
	for i, count := range s.OpponentCounts {
		if count < 0 {
			return fmt.Errorf("seat %d holds %d cards", i+1, count)
		}
	}
	if s.DrawCount < 0 {
		return fmt.Errorf("draw pile holds %d cards", s.DrawCount)
	}
	if len(s.Discard) == 0 || s.Discard[len(s.Discard)-1] != s.Top {
		return fmt.Errorf("top card %s is not on the discard pile", s.Top)
	}
	if total := s.CardCount(); total != DeckSize {
		return fmt.Errorf("%w: %d cards instead of %d", ErrNotConserved, total, DeckSize)
	}
	return nil
}

func (s State) Hash() StateHash {
	hasher := fnv.New64a()

	write := func(v int) {
		binary.Write(hasher, binary.LittleEndian, int64(v))
	}
	writeCard := func(c Card) {
		write(int(c.Color))
		write(int(c.Rank))
	}
	writeBool := func(b bool) {
		if b {
			write(1)
		} else {
			write(0)
		}
	}

	write(int(s.ActiveColor))
	write(s.Direction)
	writeCard(s.Top)
	writeBool(s.PendingSkip)
	write(s.PendingDraw)
	write(s.Turn)
	writeBool(s.CommandPending)
	writeBool(s.ChallengeOpen)
	write(s.Offender)
	write(int(s.PrevColor))
	writeBool(s.HasForced)
	writeCard(s.Forced)
	for _, c := range s.Hand {
		writeCard(c)
	}
	for _, count := range s.OpponentCounts {
		write(count)
	}
	for _, d := range s.Declared {
		writeBool(d)
	}
	write(len(s.Discard))
	write(s.DrawCount)
	write(s.Winner)

	return StateHash(hasher.Sum64())
}

func (s State) declared(seat int) bool {
	return seat < len(s.Declared) && s.Declared[seat]
}
