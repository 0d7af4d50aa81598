// Package statistics aggregates the results of a blackjack session.
package statistics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lox/blackjack/internal/game"
)

// Statistics tracks the human seat's results across a session
type Statistics struct {
	RunID string
	Mode  string

	Rounds     int // main hands played
	Blackjacks int

	Splits           int // times split was chosen
	SplitRounds      int // main hands involving at least one split
	HandsAfterSplits int // hands held at the end of those rounds
	SplitNet         game.Money
	SplitParts       int

	Doubles      int // times double was chosen
	DoubleRounds int // main hands involving at least one double
	DoubledNet   game.Money
	DoubledHands int

	Wins, Losses, Pushes int

	StartingBalance game.Money
	FinalBalance    game.Money
	HighestBalance  game.Money
	LowestBalance   game.Money
	DefaultBet      game.Money

	Runtime time.Duration

	// History is the balance before the first round followed by the balance
	// after each round.
	History []game.Money

	sum, sumSq float64 // per-round net in dollars
	values     []float64
	netTotal   game.Money
}

// New starts statistics for a session opening with balance.
func New(runID, mode string, balance, defaultBet game.Money) *Statistics {
	return &Statistics{
		RunID:           runID,
		Mode:            mode,
		StartingBalance: balance,
		FinalBalance:    balance,
		HighestBalance:  balance,
		LowestBalance:   balance,
		DefaultBet:      defaultBet,
		History:         []game.Money{balance},
	}
}

// Add incorporates a completed round
func (s *Statistics) Add(r *game.RoundResult) {
	s.Rounds++
	if r.Blackjack {
		s.Blackjacks++
	}

	s.Splits += r.Splits
	if r.SplitInvolved {
		s.SplitRounds++
	}
	if len(r.Hands) > 1 {
		s.HandsAfterSplits += len(r.Hands)
	}
	s.Doubles += r.Doubles
	if r.DoubleInvolved {
		s.DoubleRounds++
	}

	for _, h := range r.Hands {
		switch {
		case h.Outcome.IsWin():
			s.Wins++
		case h.Outcome == game.Push:
			s.Pushes++
		default:
			s.Losses++
		}
		if h.FromSplit {
			s.SplitNet += h.Net
			s.SplitParts++
		}
		if h.Doubled {
			s.DoubledNet += h.Net
			s.DoubledHands++
		}
	}

	s.FinalBalance = r.BalanceAfter
	s.HighestBalance = max(s.HighestBalance, r.BalanceAfter)
	s.LowestBalance = min(s.LowestBalance, r.BalanceAfter)
	s.History = append(s.History, r.BalanceAfter)

	net := r.Net.Dollars()
	s.sum += net
	s.sumSq += net * net
	s.values = append(s.values, net)
	s.netTotal += r.Net
}

// Net returns the session profit or loss
func (s *Statistics) Net() game.Money {
	return s.FinalBalance - s.StartingBalance
}

// AvgPerRound returns the average net per main hand
func (s *Statistics) AvgPerRound() game.Money {
	return average(s.Net(), s.Rounds)
}

// AvgPerSplitPart returns the average net per hand that was part of a split
func (s *Statistics) AvgPerSplitPart() game.Money {
	return average(s.SplitNet, s.SplitParts)
}

// AvgPerDoubledHand returns the average net per doubled hand
func (s *Statistics) AvgPerDoubledHand() game.Money {
	return average(s.DoubledNet, s.DoubledHands)
}

// AvgTimePerRound returns the wall time spent per main hand
func (s *Statistics) AvgTimePerRound() time.Duration {
	if s.Rounds == 0 {
		return 0
	}
	return s.Runtime / time.Duration(s.Rounds)
}

func average(total game.Money, n int) game.Money {
	if n == 0 {
		return 0
	}
	return total / game.Money(n)
}

// Mean returns the mean net per round in dollars
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.sum / float64(s.Rounds)
}

// Variance returns the sample variance of per-round net
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.sumSq - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of per-round net
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median per-round net
func (s *Statistics) Median() float64 {
	if len(s.values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.values))
	copy(sorted, s.values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Validate checks that the accounting is consistent
func (s *Statistics) Validate() error {
	if s.StartingBalance+s.netTotal != s.FinalBalance {
		return fmt.Errorf("ledger mismatch: start %s + net %s != final %s", s.StartingBalance, s.netTotal, s.FinalBalance)
	}
	if len(s.History) != s.Rounds+1 {
		return fmt.Errorf("history length (%d) does not match rounds (%d)", len(s.History), s.Rounds)
	}
	if s.SplitRounds > s.Rounds || s.DoubleRounds > s.Rounds || s.Blackjacks > s.Rounds {
		return fmt.Errorf("per-round counters exceed rounds played (%d)", s.Rounds)
	}
	if s.HighestBalance < s.FinalBalance || s.LowestBalance > s.FinalBalance {
		return fmt.Errorf("final balance %s outside [%s, %s]", s.FinalBalance, s.LowestBalance, s.HighestBalance)
	}
	return nil
}
