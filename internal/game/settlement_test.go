package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettle(t *testing.T) {
	t.Parallel()
	bet := Dollars(25)
	tests := []struct {
		name         string
		value        int
		status       HandStatus
		dealerValue  int
		dealerStatus HandStatus
		outcome      Outcome
		net          Money
	}{
		{"bust loses even when dealer busts", 23, Busted, 24, Busted, Loss, -bet},
		{"bust loses against standing dealer", 23, Busted, 18, Stood, Loss, -bet},
		{"dealer bust wins", 12, Stood, 22, Busted, Win, bet},
		{"higher total wins", 20, Stood, 19, Stood, Win, bet},
		{"lower total loses", 18, Stood, 20, Stood, Loss, -bet},
		{"equal totals push", 19, Stood, 19, Stood, Push, 0},
		{"doubled hand settles its own bet", 21, Doubled, 17, Stood, Win, bet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, net := Settle(tt.value, bet, tt.status, tt.dealerValue, tt.dealerStatus)
			assert.Equal(t, tt.outcome, outcome)
			assert.Equal(t, tt.net, net)
		})
	}
}

func TestBlackjackPayout(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Dollars(30), BlackjackPayout(Dollars(25), 6, 5))
	assert.Equal(t, Dollars(37.5), BlackjackPayout(Dollars(25), 3, 2))
	assert.Equal(t, Money(601), BlackjackPayout(Money(501), 6, 5))
}

func TestOutcomeIsWin(t *testing.T) {
	t.Parallel()
	assert.True(t, Win.IsWin())
	assert.True(t, BlackjackWin.IsWin())
	assert.False(t, Push.IsWin())
	assert.False(t, Loss.IsWin())
}
