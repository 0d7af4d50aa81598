package game

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in cents. Keeping wagers integral makes settlement exact;
// the only fractional step is the blackjack payout ratio, which truncates.
type Money int64

// Dollars converts a dollar amount to Money, rounding to the nearest cent.
func Dollars(d float64) Money {
	return Money(math.Round(d * 100))
}

// Dollars returns the amount as a float for reporting.
func (m Money) Dollars() float64 {
	return float64(m) / 100
}

// Scale returns m × num / den.
func (m Money) Scale(num, den int64) Money {
	if den == 0 {
		return 0
	}
	return m * Money(num) / Money(den)
}

// String formats the amount as "$25.00" or "-$25.00".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}

// ParseMoney parses user input such as "25", "25.5" or "$1,000.00".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return Dollars(f), nil
}
