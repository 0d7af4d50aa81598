package game

import "github.com/lox/blackjack/internal/deck"

// Value returns the best blackjack total for cards: every Ace starts at 11 and
// is reduced to 1, one at a time, while the total exceeds 21. The result is the
// best total not above 21 when one exists, otherwise the lowest bust total.
func Value(cards []deck.Card) int {
	total, aces := 0, 0
	for _, c := range cards {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// hardTotal counts every Ace as 1.
func hardTotal(cards []deck.Card) int {
	total := 0
	for _, c := range cards {
		if c.IsAce() {
			total++
			continue
		}
		total += c.Value()
	}
	return total
}

// IsSoft reports whether the hand holds an Ace still counted as 11.
func IsSoft(cards []deck.Card) bool {
	hasAce := false
	for _, c := range cards {
		if c.IsAce() {
			hasAce = true
			break
		}
	}
	return hasAce && Value(cards) != hardTotal(cards)
}

// IsPair reports whether the hand is exactly two cards of equal value. Any two
// ten-valued cards (K and 10, say) form a pair.
func IsPair(cards []deck.Card) bool {
	return len(cards) == 2 && cards[0].Value() == cards[1].Value()
}

// IsNatural reports a two-card 21.
func IsNatural(cards []deck.Card) bool {
	return len(cards) == 2 && Value(cards) == 21
}
