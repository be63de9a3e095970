package game

import "fmt"

// ActionType represents the type of action a seat can perform.
type ActionType int

const (
	PlayCardAction ActionType = iota
	ChooseColorAction
	DrawCardAction
	DeclareUnoAction
	ChallengeAction
)

// Action represents one decision of the seat on turn. Only the field matching Type is meaningful.
type Action struct {
	Type      ActionType
	Card      Card  // PlayCardAction
	Color     Color // ChooseColorAction
	Challenge bool  // ChallengeAction
}

func PlayCard(card Card) Action {
	return Action{Type: PlayCardAction, Card: card}
}

func ChooseColor(color Color) Action {
	return Action{Type: ChooseColorAction, Color: color}
}

func DrawCard() Action {
	return Action{Type: DrawCardAction}
}

func DeclareUno() Action {
	return Action{Type: DeclareUnoAction}
}

func ChallengeDrawFour(challenge bool) Action {
	return Action{Type: ChallengeAction, Challenge: challenge}
}

// IsStochastic reports whether the outcome depends on hidden cards.
func (a Action) IsStochastic() bool {
	return a.Type == DrawCardAction || (a.Type == ChallengeAction && a.Challenge)
}

func (a Action) String() string {
	switch a.Type {
	case PlayCardAction:
		return "play " + a.Card.String()
	case ChooseColorAction:
		return "choose " + a.Color.String()
	case DrawCardAction:
		return "draw"
	case DeclareUnoAction:
		return "uno"
	case ChallengeAction:
		if a.Challenge {
			return "challenge"
		}
		return "accept"
	default:
		return fmt.Sprintf("action(%d)", int(a.Type))
	}
}
