package game

import (
	"errors"
	"fmt"

	"github.com/lox/blackjack/internal/deck"
)

// Rules are the static table parameters for a session.
type Rules struct {
	Decks             int
	ReshuffleRatio    float64
	Seats             int // including the human seat
	StartingBalance   Money
	DefaultBet        Money
	MinBet            Money
	PayoutNumerator   int64
	PayoutDenominator int64
}

// DefaultRules returns a six-deck, three-seat table paying 6:5 on naturals.
func DefaultRules() Rules {
	return Rules{
		Decks:             6,
		ReshuffleRatio:    deck.DefaultReshuffleRatio,
		Seats:             3,
		StartingBalance:   Dollars(1000),
		DefaultBet:        Dollars(25),
		MinBet:            Dollars(1),
		PayoutNumerator:   6,
		PayoutDenominator: 5,
	}
}

// Validate reports configuration that would make a round unplayable.
func (r Rules) Validate() error {
	var errs []error
	if r.Decks < 1 {
		errs = append(errs, fmt.Errorf("decks must be at least 1, got %d", r.Decks))
	}
	if r.ReshuffleRatio < 0 || r.ReshuffleRatio >= 1 {
		errs = append(errs, fmt.Errorf("reshuffle ratio must be in [0, 1), got %g", r.ReshuffleRatio))
	}
	if r.Seats < 1 {
		errs = append(errs, fmt.Errorf("seats must be at least 1, got %d", r.Seats))
	}
	if r.MinBet <= 0 {
		errs = append(errs, fmt.Errorf("minimum bet must be positive, got %s", r.MinBet))
	}
	if r.DefaultBet < r.MinBet {
		errs = append(errs, fmt.Errorf("default bet %s is below minimum bet %s", r.DefaultBet, r.MinBet))
	}
	if r.StartingBalance < r.MinBet {
		errs = append(errs, fmt.Errorf("starting balance %s is below minimum bet %s", r.StartingBalance, r.MinBet))
	}
	if r.PayoutNumerator <= 0 || r.PayoutDenominator <= 0 {
		errs = append(errs, fmt.Errorf("blackjack payout %d/%d must be positive", r.PayoutNumerator, r.PayoutDenominator))
	}
	return errors.Join(errs...)
}

// PayoutRatio returns the blackjack payout as "6/5".
func (r Rules) PayoutRatio() string {
	return fmt.Sprintf("%d/%d", r.PayoutNumerator, r.PayoutDenominator)
}
