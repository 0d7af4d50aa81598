package game

import (
	"testing"

	"github.com/lox/blackjack/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandSnapshotDoesNotAlias(t *testing.T) {
	t.Parallel()
	h := NewHand(Dollars(25), deck.MustParseCards("Ah 6d")...)
	snap := h.snapshot()

	h.Add(deck.MustParseCards("9c")[0])
	assert.Len(t, snap, 2)
	assert.Equal(t, "A♥ 6♦", FormatCards(snap))
	assert.Equal(t, "A♥ 6♦ 9♣", FormatCards(h.Cards))
	assert.Equal(t, 16, h.Value())
	assert.False(t, h.IsSoft())
}

func TestHandStatusTerminal(t *testing.T) {
	t.Parallel()
	assert.False(t, Active.IsTerminal())
	for _, s := range []HandStatus{Stood, Busted, Doubled, Blackjack} {
		assert.True(t, s.IsTerminal(), s.String())
	}
}

func TestPlayerInsertHand(t *testing.T) {
	t.Parallel()
	p := newPlayer(0, HumanName, true, Dollars(10))
	first := p.Hands[0]
	second := NewHand(Dollars(10))
	third := NewHand(Dollars(10))

	p.insertHand(0, third)
	p.insertHand(0, second)

	require.Len(t, p.Hands, 3)
	assert.Same(t, first, p.Hands[0])
	assert.Same(t, second, p.Hands[1])
	assert.Same(t, third, p.Hands[2])
}

func TestDealerDrawsBelowSeventeen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cards string
		hit   bool
	}{
		{"Th 6d", true},
		{"Th 7d", false},
		{"Ah 6d", false}, // soft 17 stands
		{"Ah 5d", true},
		{"Ah 5d Tc", true}, // hard 16
	}
	for _, tt := range tests {
		d := &Dealer{Hand: NewHand(0, deck.MustParseCards(tt.cards)...)}
		assert.Equal(t, tt.hit, d.mustHit(), tt.cards)
	}

	d := &Dealer{Hand: NewHand(0)}
	assert.Zero(t, d.Upcard())
	d.Hand.Add(deck.MustParseCards("As")[0])
	assert.Equal(t, 11, d.Upcard())
}
