package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "$25.00", Dollars(25).String())
	assert.Equal(t, "-$25.00", Dollars(-25).String())
	assert.Equal(t, "$0.05", Money(5).String())
	assert.Equal(t, "$1000.50", Dollars(1000.5).String())
}

func TestParseMoney(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want Money
	}{
		{"25", Dollars(25)},
		{"25.5", Money(2550)},
		{" $1,000.00 ", Dollars(1000)},
		{"0.01", Money(1)},
	}
	for _, tt := range tests {
		got, err := ParseMoney(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "abc", "$", "NaN", "Inf"} {
		_, err := ParseMoney(bad)
		assert.Error(t, err, bad)
	}
}

func TestMoneyScaleTruncates(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Money(1), Money(1).Scale(6, 5))
	assert.Equal(t, Money(0), Money(100).Scale(1, 0))
}
