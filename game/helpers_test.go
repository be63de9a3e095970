package game

import "uno/utils"

// table builds a conserved state with the agent on turn; cards not in hands or
// on the discard pile are in the draw pile.
func table(top Card, active Color, hand []Card, counts []int) State {
	s := State{
		ActiveColor:    active,
		Direction:      1,
		Top:            top,
		Hand:           hand,
		OpponentCounts: counts,
		Offender:       -1,
		Declared:       make([]bool, 1+len(counts)),
		Discard:        []Card{top},
		Winner:         NoWinner,
	}
	s.DrawCount = DeckSize - s.CardCount()
	return s
}

// restOfDeck returns the full deck minus one copy of each excluded card.
func restOfDeck(exclude ...Card) []Card {
	deck := FullDeck()
	for _, c := range exclude {
		deck, _ = utils.RemoveFirst(deck, c)
	}
	return deck
}

type stubHidden struct {
	hands      map[int][]Card
	pile       []Card // dealt from the end
	reshuffled []Card
}

func (h *stubHidden) Hand(seat int) []Card {
	return h.hands[seat]
}

func (h *stubHidden) Deal(seat int) (Card, bool) {
	if len(h.pile) == 0 {
		return Card{}, false
	}
	c := h.pile[len(h.pile)-1]
	h.pile = h.pile[:len(h.pile)-1]
	if hand, ok := h.hands[seat]; ok && seat != Agent {
		h.hands[seat] = append(hand, c)
	}
	return c, true
}

func (h *stubHidden) Take(seat int, c Card) {
	if hand, ok := h.hands[seat]; ok {
		h.hands[seat], _ = utils.RemoveFirst(hand, c)
	}
}

func (h *stubHidden) Reshuffle(cards []Card) {
	h.reshuffled = append(h.reshuffled, cards...)
	h.pile = append(h.pile, cards...)
}

func newStub(pile ...Card) *stubHidden {
	return &stubHidden{hands: map[int][]Card{}, pile: pile}
}
