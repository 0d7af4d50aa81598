// Package simulator plays unattended blackjack sessions. The human seat is
// played by an ActionSource, the book unless configured otherwise.
package simulator

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// DefaultRounds is the number of rounds a simulation plays when unset.
const DefaultRounds = 1000

// Recorder persists each completed round. Implementations used with RunBatch
// must be safe for concurrent use.
type Recorder interface {
	Record(ctx context.Context, runID string, result *game.RoundResult) error
}

// Config holds configuration for running simulations
type Config struct {
	Rules       game.Rules
	Rounds      int
	Seed        int64
	Logger      *log.Logger
	Clock       quartz.Clock
	Subscribers []game.EventSubscriber
	Recorder    Recorder
	Agent       game.ActionSource // plays the human seat; defaults to the book
}

// Report is the outcome of one simulated session
type Report struct {
	RunID      string
	Seed       int64
	Stats      *statistics.Statistics
	StopReason string // empty when every requested round was played
}

// Simulator runs one blackjack session
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Rounds <= 0 {
		config.Rounds = DefaultRounds
	}
	if config.Agent == nil {
		config.Agent = game.BookAgent{}
	}
	return &Simulator{config: config}
}

// Run plays up to Rounds rounds, stopping early when the balance can no
// longer cover the default bet before a round or the minimum bet after one.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	cfg := s.config
	rules := cfg.Rules
	runID := uuid.NewString()
	logger := cfg.Logger.With("run", runID[:8])

	sess := game.NewSession(rules, randutil.New(cfg.Seed), false)
	sess.ID = runID

	opts := []game.EngineOption{game.WithClock(cfg.Clock), game.WithActionSource(cfg.Agent)}
	for _, sub := range cfg.Subscribers {
		opts = append(opts, game.WithSubscriber(sub))
	}
	engine := game.NewEngine(rules, logger, opts...)

	stats := statistics.New(runID, "Simulation", sess.Balance, rules.DefaultBet)
	report := &Report{RunID: runID, Seed: cfg.Seed, Stats: stats}

	logger.Info("Starting simulation", "rounds", cfg.Rounds, "seed", cfg.Seed, "decks", rules.Decks, "seats", rules.Seats)
	start := cfg.Clock.Now()

	for i := range cfg.Rounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if sess.Balance < rules.DefaultBet {
			report.StopReason = fmt.Sprintf("balance %s below default bet %s", sess.Balance, rules.DefaultBet)
			logger.Warn("Stopping simulation", "reason", report.StopReason, "round", i+1)
			break
		}

		result, err := engine.PlayRound(ctx, sess)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i+1, err)
		}
		stats.Add(result)

		if cfg.Recorder != nil {
			if err := cfg.Recorder.Record(ctx, runID, result); err != nil {
				return nil, fmt.Errorf("record round %d: %w", i+1, err)
			}
		}
		if (i+1)%100 == 0 {
			logger.Info("Simulation progress", "round", i+1, "balance", sess.Balance)
		}

		if sess.Balance < rules.MinBet {
			report.StopReason = fmt.Sprintf("balance %s below minimum bet %s", sess.Balance, rules.MinBet)
			logger.Warn("Stopping simulation", "reason", report.StopReason, "round", i+1)
			break
		}
	}

	stats.Runtime = cfg.Clock.Now().Sub(start)
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	logger.Info("Simulation complete", "rounds", stats.Rounds, "final", sess.Balance, "net", stats.Net())
	return report, nil
}

// RunBatch runs sessions independent simulations concurrently. Session i uses
// seed cfg.Seed+i; reports are returned in seed order. The first failure
// cancels the remaining sessions.
func RunBatch(ctx context.Context, cfg Config, sessions int) ([]*Report, error) {
	if sessions < 1 {
		return nil, fmt.Errorf("sessions must be at least 1, got %d", sessions)
	}
	reports := make([]*Report, sessions)
	g, ctx := errgroup.WithContext(ctx)
	for i := range sessions {
		c := cfg
		c.Seed = cfg.Seed + int64(i)
		g.Go(func() error {
			report, err := New(c).Run(ctx)
			if err != nil {
				return fmt.Errorf("session %d (seed %d): %w", i+1, c.Seed, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
