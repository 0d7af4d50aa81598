package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/simulator"
	"github.com/lox/blackjack/internal/tui"
)

// SimulateCmd plays book-strategy sessions without prompting.
type SimulateCmd struct {
	Rounds   int  `help:"Rounds per session (defaults to the configured session rounds)"`
	Sessions int  `default:"1" help:"Independent sessions to run concurrently, seeded seed, seed+1, ..."`
	Verbose  bool `help:"Print every round (single session only)"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	if c.Verbose && c.Sessions > 1 {
		return fmt.Errorf("--verbose needs a single session")
	}

	a, err := newApp(g, os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rounds := c.Rounds
	if rounds <= 0 {
		rounds = a.cfg.Session.Rounds
	}

	logger := a.logger("simulate", os.Stderr)
	cfg := simulator.Config{
		Rules:  a.rules,
		Rounds: rounds,
		Seed:   a.seed,
		Logger: logger,
		Clock:  quartz.NewReal(),
	}
	if a.ledger != nil {
		cfg.Recorder = a.ledger
	}
	if c.Verbose {
		renderer := tui.NewRenderer(os.Stdout, logger, tui.WithLipglossRenderer(a.color))
		cfg.Subscribers = []game.EventSubscriber{renderer}
	}

	logger.Info("Running simulation", "sessions", c.Sessions, "rounds", rounds, "seed", a.seed)
	reports, err := simulator.RunBatch(ctx, cfg, c.Sessions)
	if err != nil {
		return err
	}

	for _, report := range reports {
		if err := a.report(ctx, os.Stdout, report.Stats); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Seed: %d\n", report.Seed)
		if report.StopReason != "" {
			fmt.Fprintf(os.Stdout, "Stopped early: %s\n", report.StopReason)
		}
	}
	return nil
}
