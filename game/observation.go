package game

import "slices"

// Observation records what a single transition revealed.
type Observation struct {
	Seat   int
	Action Action

	// Table before the action
	Top         Card
	ActiveColor Color

	// Cards dealt by the transition. Drawn holds their identities when the viewer may see them.
	DrawSeat  int
	DrawCount int
	Drawn     []Card
	// The draw happened because the seat had nothing playable
	NoPlayable bool

	Reshuffled []Card

	// Hand shown to the challenger of a Wild Draw Four
	RevealSeat int
	Revealed   []Card
}

func newObservation(s State, seat int, action Action) Observation {
	return Observation{
		Seat:        seat,
		Action:      action,
		Top:         s.Top,
		ActiveColor: s.ActiveColor,
		DrawSeat:    -1,
		RevealSeat:  -1,
	}
}

// MaskFor strips what viewer could not have seen.
func (o Observation) MaskFor(viewer int) Observation {
	masked := o
	masked.Reshuffled = slices.Clone(o.Reshuffled)
	if o.DrawSeat == viewer {
		masked.Drawn = slices.Clone(o.Drawn)
	} else {
		masked.Drawn = nil
	}
	if o.Seat == viewer && o.Revealed != nil {
		masked.Revealed = slices.Clone(o.Revealed)
	} else {
		masked.Revealed = nil
		masked.RevealSeat = -1
	}
	return masked
}
