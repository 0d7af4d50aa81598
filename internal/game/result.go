package game

import "github.com/lox/blackjack/internal/deck"

// HandOutcome is the settled result of one of the human's hands.
type HandOutcome struct {
	Index     int
	Cards     []deck.Card
	Value     int
	Bet       Money
	Status    HandStatus
	Outcome   Outcome
	Net       Money
	FromSplit bool
	Doubled   bool
}

// SeatSummary is the final state of one seat's hands.
type SeatSummary struct {
	Name  string
	Human bool
	Hands []HandSummary
}

// HandSummary is a finished hand without money attached.
type HandSummary struct {
	Cards  []deck.Card
	Value  int
	Status HandStatus
}

// RoundResult contains everything observable about a completed round.
type RoundResult struct {
	RoundID       string
	Round         int
	Bet           Money
	BalanceBefore Money
	BalanceAfter  Money
	Net           Money

	Hands     []HandOutcome
	Blackjack bool // the human was dealt a natural

	// Splits and Doubles count choices made by the human this round;
	// the Involved flags are set when at least one was made.
	Splits         int
	Doubles        int
	SplitInvolved  bool
	DoubleInvolved bool
	BookPlay       bool

	Dealer          HandSummary
	DealerPlayed    bool
	ForcedReshuffle bool
	Seats           []SeatSummary
}

// Wins returns the number of winning hands, naturals included.
func (r *RoundResult) Wins() int {
	return r.count(func(o Outcome) bool { return o.IsWin() })
}

// Losses returns the number of losing hands
func (r *RoundResult) Losses() int {
	return r.count(func(o Outcome) bool { return o == Loss })
}

// Pushes returns the number of tied hands
func (r *RoundResult) Pushes() int {
	return r.count(func(o Outcome) bool { return o == Push })
}

func (r *RoundResult) count(match func(Outcome) bool) int {
	n := 0
	for _, h := range r.Hands {
		if match(h.Outcome) {
			n++
		}
	}
	return n
}

func summarize(h *Hand) HandSummary {
	return HandSummary{Cards: h.snapshot(), Value: h.Value(), Status: h.Status}
}

func doubled(h *Hand) bool {
	for _, a := range h.Actions {
		if a == Double {
			return true
		}
	}
	return false
}
