package statistics

import (
	"fmt"

	"github.com/lox/blackjack/internal/game"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Dollars formats m with thousands separators, e.g. "$1,250.00".
func Dollars(m game.Money) string {
	if m < 0 {
		return printer.Sprintf("-$%.2f", -m.Dollars())
	}
	return printer.Sprintf("$%.2f", m.Dollars())
}

// SignedDollars always carries a sign, e.g. "+$30.00".
func SignedDollars(m game.Money) string {
	if m < 0 {
		return Dollars(m)
	}
	return "+" + Dollars(m)
}

// Lines renders the session summary for the console and the results log.
func (s *Statistics) Lines() []string {
	lo, hi := s.ConfidenceInterval95()
	lines := []string{
		fmt.Sprintf("Run ID: %s", s.RunID),
		fmt.Sprintf("Mode: %s", s.Mode),
		fmt.Sprintf("Hands Played (Main): %d", s.Rounds),
		fmt.Sprintf("Starting Balance: %s", Dollars(s.StartingBalance)),
		fmt.Sprintf("Final Balance:    %s", Dollars(s.FinalBalance)),
		fmt.Sprintf("Highest Balance:  %s", Dollars(s.HighestBalance)),
		fmt.Sprintf("Lowest Balance:   %s", Dollars(s.LowestBalance)),
		fmt.Sprintf("Default Bet: %s", Dollars(s.DefaultBet)),
		fmt.Sprintf("Net Profit/Loss: %s", SignedDollars(s.Net())),
		fmt.Sprintf("Avg. P/L per Main Hand: %s", SignedDollars(s.AvgPerRound())),
		printer.Sprintf("Per-Round Net: mean %+.2f, median %+.2f, std dev %.2f, 95%% CI [%+.2f, %+.2f]", s.Mean(), s.Median(), s.StdDev(), lo, hi),
		fmt.Sprintf("Blackjacks: %d", s.Blackjacks),
		fmt.Sprintf("Times Split Chosen: %d", s.Splits),
		fmt.Sprintf("Main Hands Involving a Split: %d", s.SplitRounds),
		fmt.Sprintf("Total Hands from Splits: %d", s.HandsAfterSplits),
		fmt.Sprintf("Net P/L from Split Hand Parts: %s", SignedDollars(s.SplitNet)),
		fmt.Sprintf("Avg. P/L per Split Hand Part: %s (from %d parts)", SignedDollars(s.AvgPerSplitPart()), s.SplitParts),
		fmt.Sprintf("Times Double Down Chosen: %d", s.Doubles),
		fmt.Sprintf("Main Hands Involving a Double Down: %d", s.DoubleRounds),
		fmt.Sprintf("Net P/L from Doubled Hands: %s", SignedDollars(s.DoubledNet)),
		fmt.Sprintf("Avg. P/L per Doubled Hand: %s (from %d hands)", SignedDollars(s.AvgPerDoubledHand()), s.DoubledHands),
		fmt.Sprintf("Wins: %d, Losses: %d, Pushes: %d", s.Wins, s.Losses, s.Pushes),
	}
	if s.Runtime > 0 {
		lines = append(lines,
			fmt.Sprintf("Total Runtime: %.3f seconds", s.Runtime.Seconds()),
			fmt.Sprintf("Average Time per Main Hand: %.4f seconds", s.AvgTimePerRound().Seconds()),
		)
	}
	return lines
}
