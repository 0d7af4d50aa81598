package game

import (
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// HandStatus is the state of a single hand. Every status except Active is
// terminal.
type HandStatus int

const (
	Active HandStatus = iota
	Stood
	Busted
	Doubled
	Blackjack
)

// String returns the string representation of a hand status
func (s HandStatus) String() string {
	switch s {
	case Active:
		return "active"
	case Stood:
		return "stood"
	case Busted:
		return "busted"
	case Doubled:
		return "doubled"
	case Blackjack:
		return "blackjack"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the hand can take no further action.
func (s HandStatus) IsTerminal() bool {
	return s != Active
}

// Hand is one set of cards played against the dealer.
type Hand struct {
	Cards     []deck.Card
	Bet       Money
	Status    HandStatus
	SplitAce  bool // produced by splitting Aces; may not be split again
	FromSplit bool
	Actions   []Action
}

// NewHand creates an active hand holding the given cards.
func NewHand(bet Money, cards ...deck.Card) *Hand {
	h := &Hand{Bet: bet, Status: Active}
	h.Cards = append(h.Cards, cards...)
	return h
}

// Add appends a card to the hand
func (h *Hand) Add(c deck.Card) {
	h.Cards = append(h.Cards, c)
}

// Value returns the best total for the hand
func (h *Hand) Value() int {
	return Value(h.Cards)
}

// IsSoft reports whether an Ace is still being counted as 11
func (h *Hand) IsSoft() bool {
	return IsSoft(h.Cards)
}

// record notes an action in the hand's log
func (h *Hand) record(a Action) {
	h.Actions = append(h.Actions, a)
}

// snapshot returns a copy of the cards so events and results never alias the
// live hand.
func (h *Hand) snapshot() []deck.Card {
	cards := make([]deck.Card, len(h.Cards))
	copy(cards, h.Cards)
	return cards
}

// FormatCards joins cards for logs, e.g. "A♠ 10♥".
func FormatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
