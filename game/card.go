package game

import "fmt"

type Color int

const (
	NoColor Color = iota
	Red
	Yellow
	Green
	Blue
	Wild
)

// Colors lists the four colors a wild card can be declared as, in canonical order.
var Colors = [4]Color{Red, Yellow, Green, Blue}

func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Yellow:
		return "Yellow"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	case Wild:
		return "Wild"
	default:
		return "None"
	}
}

type Rank int

const (
	Zero Rank = iota
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Skip
	Reverse
	DrawTwo
	WildCard
	WildDrawFour
	NoRank
)

func (r Rank) String() string {
	switch {
	case r <= Nine:
		return fmt.Sprintf("%d", int(r))
	case r == Skip:
		return "Skip"
	case r == Reverse:
		return "Reverse"
	case r == DrawTwo:
		return "Draw Two"
	case r == WildCard:
		return "Wild"
	case r == WildDrawFour:
		return "Draw Four"
	default:
		return "?"
	}
}

const DeckSize = 108

type Card struct {
	Color Color
	Rank  Rank
}

// Unknown stands in for a card whose identity a simulation does not track.
// It never matches anything and is not part of the deck.
var Unknown = Card{Color: NoColor, Rank: NoRank}

func NewCard(color Color, rank Rank) Card {
	return Card{Color: color, Rank: rank}
}

func (c Card) IsWild() bool {
	return c.Color == Wild
}

func (c Card) IsAction() bool {
	return c.Rank == Skip || c.Rank == Reverse || c.Rank == DrawTwo
}

// Score is the card's value when counted against the hand holding it.
func (c Card) Score() int {
	switch {
	case c.IsWild():
		return 50
	case c.IsAction():
		return 20
	case c.Rank <= Nine:
		return int(c.Rank)
	default:
		return 0
	}
}

// Matches reports whether c may be played on top under the active color.
// The Wild Draw Four holding restriction is not considered here.
func (c Card) Matches(top Card, active Color) bool {
	if c == Unknown {
		return false
	}
	return c.IsWild() || c.Color == active || c.Rank == top.Rank
}

func (c Card) String() string {
	if c.IsWild() {
		return c.Rank.String()
	}
	if c == Unknown {
		return "Unknown"
	}
	return c.Color.String() + " " + c.Rank.String()
}

func HandScore(hand []Card) int {
	total := 0
	for _, c := range hand {
		total += c.Score()
	}
	return total
}

// FullDeck returns the 108 cards of a standard deck in a stable order.
func FullDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, color := range Colors {
		deck = append(deck, NewCard(color, Zero))
		for rank := One; rank <= DrawTwo; rank++ {
			deck = append(deck, NewCard(color, rank), NewCard(color, rank))
		}
	}
	for i := 0; i < 4; i++ {
		deck = append(deck, NewCard(Wild, WildCard), NewCard(Wild, WildDrawFour))
	}
	return deck
}

// Composition counts each distinct card of the full deck.
func Composition() map[Card]int {
	counts := make(map[Card]int, 54)
	for _, c := range FullDeck() {
		counts[c]++
	}
	return counts
}

func holdsColor(hand []Card, color Color) bool {
	for _, c := range hand {
		if c.Color == color {
			return true
		}
	}
	return false
}

// PreferredColor is the color held most often in hand, ties going to the later color in Colors.
func PreferredColor(hand []Card) Color {
	counts := map[Color]int{}
	for _, c := range hand {
		counts[c.Color]++
	}
	best := Colors[0]
	for _, color := range Colors {
		if counts[color] >= counts[best] {
			best = color
		}
	}
	return best
}
