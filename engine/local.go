package engine

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"uno/belief"
	"uno/experiments/metrics"
	"uno/game"
	"uno/meta"
	"uno/player"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Local deals and runs one round in process. The true table is a belief.World
// over the real hands and the real, ordered draw pile.
type Local struct {
	truth    *belief.World
	agent    Decider
	players  []player.Player // indexed by seat, players[0] is unused
	rng      *rand.Rand
	dealer   int
	maxSteps int
	History  []Update
}

type Option func(l *Local)

func WithMaxSteps(steps int) Option {
	return func(l *Local) {
		if steps > 0 {
			l.maxSteps = steps
		}
	}
}

// NewRound shuffles a full deck, deals seven cards to each of the seats and
// flips the opening card. A Wild Draw Four is never accepted as the opening
// card: it goes back into the deck, which is shuffled before flipping again.
func NewRound(agent Decider, opponents []player.Player, dealer int, rng *rand.Rand, options ...Option) (*Local, error) {
	seats := 1 + len(opponents)
	if seats < 2 {
		return nil, fmt.Errorf("need at least two seats, got %d", seats)
	}
	if dealer < 0 || dealer >= seats {
		return nil, fmt.Errorf("dealer %d out of range for %d seats", dealer, seats)
	}

	deck := game.FullDeck()
	shuffle(deck, rng)
	hands := make([][]game.Card, seats)
	for seat := range hands {
		hands[seat] = slices.Clone(deck[len(deck)-game.HandSize:])
		deck = deck[:len(deck)-game.HandSize]
	}

	var s game.State
	for {
		top := deck[len(deck)-1]
		pile := deck[:len(deck)-1]
		counts := make([]int, seats-1)
		for i := range counts {
			counts[i] = len(hands[i+1])
		}

		var err error
		s, err = game.Opening(top, dealer, hands[game.Agent], counts, len(pile))
		if errors.Is(err, game.ErrOpeningCard) {
			log.Debug().Msgf("flipped %s, shuffling it back", top)
			shuffle(deck, rng)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to open round: %w", err)
		}
		deck = slices.Clone(pile)
		break
	}

	truth := belief.Particle{Hands: hands[1:], Pool: deck}
	l := &Local{
		truth:    belief.NewWorld(s, truth, rng, belief.WithExactDraws(), belief.WithOrderedPool()),
		agent:    agent,
		players:  append([]player.Player{nil}, opponents...),
		rng:      rng,
		dealer:   dealer,
		maxSteps: meta.MAX_STEPS,
	}
	for _, option := range options {
		option(l)
	}
	return l, nil
}

// State is the table as seat 0 sees it.
func (l *Local) State() game.State {
	return l.truth.State.Clone()
}

// Hands returns every seat's hand, seat 0 first.
func (l *Local) Hands() [][]game.Card {
	hands := [][]game.Card{l.truth.State.Hand}
	return append(hands, l.truth.Particle().Hands...)
}

func (l *Local) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		Dealer:    l.dealer,
		Winner:    game.NoWinner,
		StartTime: time.Now(),
	}
	moveMetrics := []metrics.MoveMetric{}
	l.agent.Reset()

	log.Info().Msgf("seat %d deals, %s opens and seat %d is first to act", l.dealer, l.truth.State.Top, l.truth.State.Turn)

	step := 0
	for !l.truth.Terminal() && step < l.maxSteps {
		s := l.truth.State
		seat := s.Turn

		var action game.Action
		if seat == game.Agent {
			a, searchMetric, err := l.agent.Act(s.Clone())
			if err != nil {
				return gameMetric, moveMetrics, fmt.Errorf("step %d: %w", step, err)
			}
			action = a
			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Step:         step,
				Player:       seat,
				Action:       action.String(),
				SearchMetric: searchMetric,
			})
		} else {
			action = l.players[seat].Act(s, seat, l.truth.Hand(seat), l.rng)
		}

		obs, err := l.truth.Step(action)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("step %d: seat %d failed to play %s: %w", step, seat, action, err)
		}
		if err := l.truth.State.Validate(); err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("step %d: table broken after %s: %w", step, action, err)
		}
		l.History = append(l.History, Update{Seat: seat, Action: action, Hash: l.truth.State.Hash()})
		log.Debug().Msgf("step %d: seat %d plays %s", step, seat, action)

		l.agent.Observe(l.truth.State.Clone(), obs.MaskFor(game.Agent))
		step++
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step
	if l.truth.Terminal() {
		gameMetric.Winner = l.truth.State.Winner
		gameMetric.Points = game.Points(gameMetric.Winner, l.Hands())
		log.Info().Msgf("seat %d went out after %d steps for %d points", gameMetric.Winner, step, gameMetric.Points)
	} else {
		log.Warn().Msgf("round stopped after %d steps without a winner", step)
	}
	return gameMetric, moveMetrics, nil
}

func shuffle(cards []game.Card, rng *rand.Rand) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
