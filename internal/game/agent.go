package game

import (
	"context"

	"github.com/lox/blackjack/internal/deck"
)

// BetRequest describes the bankroll when a bet is requested.
type BetRequest struct {
	Round   int
	Balance Money
	Default Money
	Min     Money
}

// Bettor supplies the human seat's wager. Returning zero means no bet can be
// placed and the round is abandoned before any card is dealt.
type Bettor interface {
	Bet(ctx context.Context, req BetRequest) (Money, error)
}

// FixedBettor always wagers the same amount, or nothing once the balance can
// no longer cover it.
type FixedBettor Money

// Bet implements Bettor
func (f FixedBettor) Bet(_ context.Context, req BetRequest) (Money, error) {
	if req.Balance < Money(f) {
		return 0, nil
	}
	return Money(f), nil
}

// HandView is the read-only state of one of the acting player's hands.
type HandView struct {
	Cards  []deck.Card
	Value  int
	Soft   bool
	Bet    Money
	Status HandStatus
}

// DecisionRequest is everything a human needs to choose an action.
type DecisionRequest struct {
	Player       string
	HandIndex    int
	Hands        []HandView
	DealerUpcard deck.Card
	Balance      Money
	CanDouble    bool
	CanSplit     bool
	Suggested    Action // the book play for this hand
}

// Decision is a choice for the current hand. Book hands the rest of the
// player's round to the strategy advisor; Action is ignored when it is set.
type Decision struct {
	Action Action
	Book   bool
}

// ActionSource decides for hands that are not played by the book. Sources are
// expected to offer only legal actions; the engine re-asks when they do not.
type ActionSource interface {
	Decide(ctx context.Context, req DecisionRequest) (Decision, error)
}

// BookAgent always takes the suggested play.
type BookAgent struct{}

// Decide implements ActionSource
func (BookAgent) Decide(_ context.Context, req DecisionRequest) (Decision, error) {
	return Decision{Action: req.Suggested}, nil
}

// allowed reports whether action is legal for the hand
func allowed(action Action, canDouble, canSplit bool) bool {
	switch action {
	case Hit, Stand:
		return true
	case Double:
		return canDouble
	case Split:
		return canSplit
	default:
		return false
	}
}
