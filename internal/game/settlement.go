package game

// Outcome classifies a settled hand.
type Outcome int

const (
	Loss Outcome = iota
	Push
	Win
	BlackjackWin
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Loss:
		return "loss"
	case Push:
		return "push"
	case Win:
		return "win"
	case BlackjackWin:
		return "blackjack"
	default:
		return "unknown"
	}
}

// IsWin reports whether the outcome paid the player.
func (o Outcome) IsWin() bool {
	return o == Win || o == BlackjackWin
}

// Settle resolves one finished hand against the dealer. A busted hand loses
// even when the dealer also busts; otherwise a dealer bust wins, and remaining
// hands compare totals with equal totals pushing. Even-money throughout.
func Settle(value int, bet Money, status HandStatus, dealerValue int, dealerStatus HandStatus) (Outcome, Money) {
	switch {
	case status == Busted:
		return Loss, -bet
	case dealerStatus == Busted:
		return Win, bet
	case value > dealerValue:
		return Win, bet
	case value < dealerValue:
		return Loss, -bet
	default:
		return Push, 0
	}
}

// BlackjackPayout returns the winnings for a natural at num:den.
func BlackjackPayout(bet Money, num, den int64) Money {
	return bet.Scale(num, den)
}
