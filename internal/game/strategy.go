package game

import "github.com/lox/blackjack/internal/deck"

// Action is a playing decision for one hand.
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// MaxHands is the most hands one player may hold after splitting.
const MaxHands = 4

// upcards is a set of dealer upcard values, 2 through 11 (Ace).
type upcards uint16

func between(lo, hi int) upcards {
	var u upcards
	for v := lo; v <= hi; v++ {
		u |= 1 << v
	}
	return u
}

func only(values ...int) upcards {
	var u upcards
	for _, v := range values {
		u |= 1 << v
	}
	return u
}

func (u upcards) has(v int) bool {
	return v >= 0 && v < 16 && u&(1<<v) != 0
}

var anyUpcard = between(2, 11)

// rule applies when the dealer shows one of up. A Double rule only applies to
// two-card hands; otherwise evaluation falls through to the next rule.
type rule struct {
	up     upcards
	action Action
}

// row is an ordered list of rules with Hit as the implicit default.
type row []rule

func (r row) decide(dealerUp int, twoCards bool) Action {
	for _, ru := range r {
		if !ru.up.has(dealerUp) {
			continue
		}
		if ru.action == Double && !twoCards {
			continue
		}
		return ru.action
	}
	return Hit
}

// pairSplits lists, per card value, the upcards against which a pair is split.
// Fives and ten-valued pairs are never split and play as hard totals.
var pairSplits = map[int]upcards{
	11: anyUpcard,
	8:  anyUpcard,
	9:  anyUpcard &^ only(7, 10, 11),
	7:  between(2, 7),
	6:  between(2, 6),
	4:  only(5, 6),
	3:  between(2, 7),
	2:  between(2, 7),
}

// softRows is indexed by soft total. Totals below 13 use the 13 row.
var softRows = map[int]row{
	21: {{anyUpcard, Stand}},
	20: {{anyUpcard, Stand}},
	19: {{anyUpcard, Stand}},
	18: {{between(2, 6), Double}, {only(2, 7, 8), Stand}},
	17: {{between(3, 6), Double}},
	16: {{between(4, 6), Double}},
	15: {{between(4, 6), Double}},
	14: {{between(5, 6), Double}},
	13: {{between(5, 6), Double}},
}

// hardRows is indexed by hard total. Totals of 17+ stand; 8 and below hit.
var hardRows = map[int]row{
	17: {{anyUpcard, Stand}},
	16: {{between(2, 6), Stand}},
	15: {{between(2, 6), Stand}},
	14: {{between(2, 6), Stand}},
	13: {{between(2, 6), Stand}},
	12: {{between(4, 6), Stand}},
	11: {{anyUpcard, Double}},
	10: {{between(2, 9), Double}},
	9:  {{between(2, 6), Double}},
}

// Recommend returns the book action for a hand given the dealer's upcard value
// (Ace = 11) and how many hands the player currently holds. canDouble and
// canSplit carry table and bankroll restrictions: a Double that is not allowed
// becomes Hit, and a Split that is not allowed is re-derived from the soft and
// hard tables.
func Recommend(cards []deck.Card, dealerUp int, hands int, canDouble, canSplit bool) Action {
	action := recommend(cards, dealerUp, hands < MaxHands)
	if action == Split && !canSplit {
		action = recommend(cards, dealerUp, false)
		if action == Split {
			action = Hit
		}
	}
	if action == Double && !canDouble {
		action = Hit
	}
	return action
}

func recommend(cards []deck.Card, dealerUp int, considerSplit bool) Action {
	if considerSplit && IsPair(cards) {
		if pairSplits[cards[0].Value()].has(dealerUp) {
			return Split
		}
	}

	total := Value(cards)
	twoCards := len(cards) == 2

	if IsSoft(cards) {
		if total >= 19 {
			return Stand
		}
		return softRows[max(total, 13)].decide(dealerUp, twoCards)
	}

	switch {
	case total >= 17:
		return Stand
	case total <= 8:
		return Hit
	}
	return hardRows[total].decide(dealerUp, twoCards)
}
