package deck

import (
	"errors"
	rand "math/rand/v2"
)

// CardsPerDeck is the size of one standard set of cards.
const CardsPerDeck = 52

// DefaultReshuffleRatio is the penetration point at which a shoe is rebuilt.
const DefaultReshuffleRatio = 0.25

// ErrShoeExhausted is returned when a card is requested from an empty shoe.
var ErrShoeExhausted = errors.New("shoe exhausted")

// Shoe is the shuffled supply of cards dealt from during a session. Cards are
// taken from the front; deal order is shuffle order.
type Shoe struct {
	cards       []Card
	next        int
	decks       int
	ratio       float64
	initialSize int
	rng         *rand.Rand
}

// NewShoe builds a shoe of decks × 52 cards and shuffles it with rng.
func NewShoe(decks int, ratio float64, rng *rand.Rand) *Shoe {
	s := &Shoe{
		decks: decks,
		ratio: ratio,
		rng:   rng,
	}
	s.Build()
	return s
}

// NewStackedShoe returns a shoe that deals cards in exactly the given order.
// Once it runs dry a rebuild falls back to decks shuffled standard sets.
func NewStackedShoe(decks int, ratio float64, rng *rand.Rand, cards ...Card) *Shoe {
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	return &Shoe{
		cards:       stacked,
		decks:       decks,
		ratio:       ratio,
		initialSize: len(stacked),
		rng:         rng,
	}
}

// Build replaces the remaining supply with a fresh, shuffled set of cards and
// records the new initial size.
func (s *Shoe) Build() {
	s.cards = s.cards[:0]
	for range s.decks {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
	s.next = 0
	s.initialSize = len(s.cards)
	s.shuffle()
}

// shuffle uses Fisher-Yates over the undealt cards
func (s *Shoe) shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		var j int
		if s.rng != nil {
			j = s.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Deal removes and returns the next card.
func (s *Shoe) Deal() (Card, error) {
	if s.next >= len(s.cards) {
		return Card{}, ErrShoeExhausted
	}
	card := s.cards[s.next]
	s.next++
	return card, nil
}

// NeedsReshuffle reports whether fewer than ratio × initial size cards remain.
func (s *Shoe) NeedsReshuffle() bool {
	return float64(s.Remaining()) < s.ratio*float64(s.initialSize)
}

// Remaining returns the number of undealt cards
func (s *Shoe) Remaining() int {
	return len(s.cards) - s.next
}

// InitialSize returns the size of the shoe when it was last built.
func (s *Shoe) InitialSize() int {
	return s.initialSize
}

// Decks returns the number of 52-card sets per build.
func (s *Shoe) Decks() int {
	return s.decks
}
