package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRulesValid(t *testing.T) {
	t.Parallel()
	rules := DefaultRules()
	assert.NoError(t, rules.Validate())
	assert.Equal(t, "6/5", rules.PayoutRatio())
}

func TestRulesValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*Rules)
		errMsg string
	}{
		{"no decks", func(r *Rules) { r.Decks = 0 }, "decks"},
		{"ratio too high", func(r *Rules) { r.ReshuffleRatio = 1 }, "reshuffle ratio"},
		{"no seats", func(r *Rules) { r.Seats = 0 }, "seats"},
		{"zero min bet", func(r *Rules) { r.MinBet = 0 }, "minimum bet"},
		{"default below min", func(r *Rules) { r.DefaultBet = Dollars(0.5) }, "default bet"},
		{"broke", func(r *Rules) { r.StartingBalance = 0 }, "starting balance"},
		{"bad payout", func(r *Rules) { r.PayoutDenominator = 0 }, "payout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			tt.mutate(&rules)
			err := rules.Validate()
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}
