package game

import (
	rand "math/rand/v2"

	"github.com/google/uuid"
	"github.com/lox/blackjack/internal/deck"
)

// Session is the state carried from one round to the next. The engine holds
// no session state of its own; callers pass a Session to every PlayRound.
type Session struct {
	ID      string
	Balance Money
	Shoe    *deck.Shoe
	Book    bool // the human seat plays every hand by the book
	Rounds  int  // completed rounds
}

// NewSession opens a session with a freshly shuffled shoe.
func NewSession(rules Rules, rng *rand.Rand, book bool) *Session {
	return &Session{
		ID:      uuid.NewString(),
		Balance: rules.StartingBalance,
		Shoe:    deck.NewShoe(rules.Decks, rules.ReshuffleRatio, rng),
		Book:    book,
	}
}

// CanBet reports whether the balance covers amount.
func (s *Session) CanBet(amount Money) bool {
	return s.Balance >= amount
}
