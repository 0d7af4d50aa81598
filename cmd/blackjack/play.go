package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/lox/blackjack/internal/tui"
)

// PlayCmd runs an interactive session.
type PlayCmd struct {
	Book  bool `help:"Play every hand by the book; you only choose bets"`
	Hints bool `help:"Show the book play with every decision"`
}

func (c *PlayCmd) Run(g *Globals) error {
	a, err := newApp(g, os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.NewString()
	logger := a.logger(runID, nil)
	clock := quartz.NewReal()

	renderer := tui.NewRenderer(os.Stdout, logger,
		tui.WithLipglossRenderer(a.color),
		tui.WithPacer(ctx, tui.NewPacer(clock, a.cfg.Session.Pace)),
	)
	styles := renderer.Styles()
	prompter := tui.NewTeaPrompter(os.Stdin, os.Stdout, styles, logger)

	engine := game.NewEngine(a.rules, logger,
		game.WithClock(clock),
		game.WithSubscriber(renderer),
		game.WithBettor(tui.NewHumanBettor(prompter, renderer, styles)),
		game.WithActionSource(tui.NewHumanAgent(prompter, renderer, styles, c.Hints)),
	)

	sess := game.NewSession(a.rules, randutil.New(a.seed), c.Book)
	sess.ID = runID
	stats := statistics.New(runID, "Interactive", sess.Balance, a.rules.DefaultBet)

	logger.Info("Starting interactive session", "seed", a.seed, "decks", a.rules.Decks, "seats", a.rules.Seats,
		"balance", sess.Balance, "payout", a.rules.PayoutRatio())
	renderer.Println(styles.Header.Render("Blackjack") + " " +
		styles.Info.Render("Blackjack pays "+a.rules.PayoutRatio()+". Dealer stands on all 17s."))

	start := clock.Now()
	err = playSession(ctx, engine, sess, prompter, renderer, stats, func(res *game.RoundResult) error {
		return a.record(ctx, runID, res)
	})
	stats.Runtime = clock.Now().Sub(start)
	if err != nil {
		logger.Error("Session ended with error", "error", err)
		return err
	}

	logger.Info("Session complete", "rounds", stats.Rounds, "final", sess.Balance)
	if stats.Rounds == 0 {
		return nil
	}
	return a.report(ctx, os.Stdout, stats)
}

// playSession plays rounds until the player stops, quits or runs out of money.
// Quitting or interrupting is not an error.
func playSession(ctx context.Context, engine *game.Engine, sess *game.Session, prompter tui.Prompter,
	out tui.Notifier, stats *statistics.Statistics, record func(*game.RoundResult) error) error {
	rules := engine.Rules()
	for {
		if !sess.CanBet(rules.MinBet) {
			out.Println("You do not have enough left for the minimum bet of " + statistics.Dollars(rules.MinBet) + ".")
			return nil
		}

		res, err := engine.PlayRound(ctx, sess)
		switch {
		case stopped(err), errors.Is(err, game.ErrNoBet):
			return nil
		case err != nil:
			return err
		}
		stats.Add(res)
		if err := record(res); err != nil {
			return err
		}

		if !sess.CanBet(rules.MinBet) {
			continue
		}
		again, err := tui.Confirm(ctx, prompter, "Play another hand?", true)
		if stopped(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func stopped(err error) bool {
	return errors.Is(err, tui.ErrQuit) || errors.Is(err, context.Canceled)
}
