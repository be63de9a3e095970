package belief

import (
	"fmt"
	"slices"

	"uno/game"
	"uno/utils"

	"golang.org/x/exp/rand"
)

// Particle is one complete guess at the hidden cards: every opponent's hand
// (Hands[i] belongs to seat i+1) and the contents of the draw pile.
type Particle struct {
	Hands [][]game.Card
	Pool  []game.Card
}

func (p Particle) Clone() Particle {
	c := Particle{
		Hands: make([][]game.Card, len(p.Hands)),
		Pool:  slices.Clone(p.Pool),
	}
	for i, hand := range p.Hands {
		c.Hands[i] = slices.Clone(hand)
	}
	return c
}

// Unseen lists the cards whose location the agent does not know, in deck order:
// the full deck minus the agent's hand and the discard pile.
func Unseen(s game.State) ([]game.Card, error) {
	counts := game.Composition()
	for _, c := range s.Hand {
		counts[c]--
	}
	for _, c := range s.Discard {
		counts[c]--
	}
	for c, n := range counts {
		if n < 0 {
			return nil, fmt.Errorf("%d copies of %s too many on the table", -n, c)
		}
	}

	unseen := make([]game.Card, 0, game.DeckSize)
	for _, c := range game.FullDeck() {
		if counts[c] > 0 {
			unseen = append(unseen, c)
			counts[c]--
		}
	}

	hidden := s.DrawCount
	for _, count := range s.OpponentCounts {
		hidden += count
	}
	if hidden != len(unseen) {
		return nil, fmt.Errorf("%w: %d unseen cards for %d hidden slots", game.ErrNotConserved, len(unseen), hidden)
	}
	return unseen, nil
}

// samplePartition deals the unseen cards uniformly at random into hands of the given sizes and the pool.
func samplePartition(unseen []game.Card, counts []int, rng *rand.Rand) Particle {
	cards := slices.Clone(unseen)
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	p := Particle{Hands: make([][]game.Card, len(counts))}
	offset := 0
	for i, n := range counts {
		p.Hands[i] = slices.Clone(cards[offset : offset+n])
		offset += n
	}
	p.Pool = slices.Clone(cards[offset:])
	return p
}

// check verifies p against the public state: hand sizes, pool size and the exact unseen multiset.
func (p Particle) check(s game.State, unseen map[game.Card]int) error {
	if len(p.Hands) != len(s.OpponentCounts) {
		return fmt.Errorf("%d hands for %d opponents", len(p.Hands), len(s.OpponentCounts))
	}
	for i, hand := range p.Hands {
		if len(hand) != s.OpponentCounts[i] {
			return fmt.Errorf("seat %d holds %d cards instead of %d", i+1, len(hand), s.OpponentCounts[i])
		}
	}
	if len(p.Pool) != s.DrawCount {
		return fmt.Errorf("pool holds %d cards instead of %d", len(p.Pool), s.DrawCount)
	}

	counts := make(map[game.Card]int, len(unseen))
	for _, hand := range p.Hands {
		for _, c := range hand {
			counts[c]++
		}
	}
	for _, c := range p.Pool {
		counts[c]++
	}
	for c, n := range unseen {
		if counts[c] != n {
			return fmt.Errorf("%d copies of %s instead of %d", counts[c], c, n)
		}
	}
	if len(counts) > len(unseen) {
		return fmt.Errorf("cards outside the unseen set")
	}
	return nil
}

// slot addresses a card position: a hand (seat >= 1) or the pool (seat 0).
type slot struct {
	seat  int
	index int
}

func (p *Particle) cards(seat int) []game.Card {
	if seat == game.Agent {
		return p.Pool
	}
	return p.Hands[seat-1]
}

// find picks uniformly among the positions outside the hand of seat holding a card accepted by want, pool first.
func (p *Particle) find(seat int, want func(game.Card) bool, rng *rand.Rand) (slot, bool) {
	for _, owner := range p.owners(seat) {
		var hits []int
		for i, c := range p.cards(owner) {
			if want(c) {
				hits = append(hits, i)
			}
		}
		if len(hits) > 0 {
			return slot{seat: owner, index: hits[rng.Intn(len(hits))]}, true
		}
	}
	return slot{}, false
}

// owners lists the pool and every hand except the one of seat.
func (p *Particle) owners(seat int) []int {
	owners := []int{game.Agent}
	for i := range p.Hands {
		if i+1 != seat {
			owners = append(owners, i+1)
		}
	}
	return owners
}

func (p *Particle) swap(seat, index int, other slot) {
	hand := p.Hands[seat-1]
	away := p.cards(other.seat)
	hand[index], away[other.index] = away[other.index], hand[index]
}

// ensure makes seat hold c, trading a random card of its hand for it.
func (p *Particle) ensure(seat int, c game.Card, rng *rand.Rand) error {
	hand := p.Hands[seat-1]
	if utils.FindIndex(hand, c) >= 0 {
		return nil
	}
	if len(hand) == 0 {
		return fmt.Errorf("seat %d played %s from an empty hand", seat, c)
	}
	at, ok := p.find(seat, func(x game.Card) bool { return x == c }, rng)
	if !ok {
		return fmt.Errorf("%s is nowhere to be found", c)
	}
	p.swap(seat, rng.Intn(len(hand)), at)
	return nil
}

// exclude trades every card of seat's hand rejected by bad for an acceptable card held elsewhere.
func (p *Particle) exclude(seat int, bad func(game.Card) bool, rng *rand.Rand) error {
	hand := p.Hands[seat-1]
	for i, c := range hand {
		if !bad(c) {
			continue
		}
		at, ok := p.find(seat, func(x game.Card) bool { return !bad(x) }, rng)
		if !ok {
			return fmt.Errorf("seat %d cannot avoid holding %s", seat, c)
		}
		p.swap(seat, i, at)
	}
	return nil
}

// extract takes c out of the particle. A copy found in a hand is replaced with a pool card.
func (p *Particle) extract(c game.Card, rng *rand.Rand) error {
	if i := utils.FindIndex(p.Pool, c); i >= 0 {
		p.Pool = utils.SwapRemove(p.Pool, i)
		return nil
	}
	for s := range p.Hands {
		hand := p.Hands[s]
		i := utils.FindIndex(hand, c)
		if i < 0 {
			continue
		}
		if len(p.Pool) == 0 {
			return fmt.Errorf("no pool card to replace %s held by seat %d", c, s+1)
		}
		j := rng.Intn(len(p.Pool))
		hand[i] = p.Pool[j]
		p.Pool = utils.SwapRemove(p.Pool, j)
		return nil
	}
	return fmt.Errorf("%s is nowhere to be found", c)
}

// reveal makes the hand of seat exactly cards, returning its other cards to where the revealed ones were.
func (p *Particle) reveal(seat int, cards []game.Card) error {
	hand := p.Hands[seat-1]
	if len(hand) != len(cards) {
		return fmt.Errorf("seat %d shows %d cards but holds %d", seat, len(cards), len(hand))
	}

	surplus := slices.Clone(hand)
	var missing []game.Card
	for _, c := range cards {
		var found bool
		if surplus, found = utils.RemoveFirst(surplus, c); !found {
			missing = append(missing, c)
		}
	}
	for i, c := range missing {
		var at slot
		found := false
		for _, owner := range p.owners(seat) {
			if j := utils.FindIndex(p.cards(owner), c); j >= 0 {
				at, found = slot{seat: owner, index: j}, true
				break
			}
		}
		if !found {
			return fmt.Errorf("%s is nowhere to be found", c)
		}
		p.cards(at.seat)[at.index] = surplus[i]
	}
	p.Hands[seat-1] = slices.Clone(cards)
	return nil
}

// draw moves n random pool cards into the hand of seat.
func (p *Particle) draw(seat, n int, rng *rand.Rand) error {
	if len(p.Pool) < n {
		return fmt.Errorf("seat %d draws %d from a pool of %d", seat, n, len(p.Pool))
	}
	for i := 0; i < n; i++ {
		j := rng.Intn(len(p.Pool))
		p.Hands[seat-1] = append(p.Hands[seat-1], p.Pool[j])
		p.Pool = utils.SwapRemove(p.Pool, j)
	}
	return nil
}
