package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/ledger"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/muesli/termenv"
)

// app is the state shared by the play and simulate commands.
type app struct {
	cfg     *config.Config
	rules   game.Rules
	seed    int64
	debug   bool
	console *log.Logger
	results *os.File
	ledger  *ledger.Store
	color   *lipgloss.Renderer
}

func newApp(g *Globals, out io.Writer) (*app, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		rules:   cfg.Rules(),
		seed:    randutil.ResolveSeed(g.Seed),
		debug:   g.Debug,
		console: newConsoleLogger(g.Debug),
		color:   lipgloss.NewRenderer(out),
	}
	if g.NoColor {
		a.color.SetColorProfile(termenv.Ascii)
	}

	a.results, err = openResultsLog(cfg.Session.LogDir)
	if err != nil {
		return nil, err
	}
	if cfg.Session.Ledger != "" {
		a.ledger, err = ledger.Open(cfg.Session.Ledger)
		if err != nil {
			_ = a.results.Close()
			return nil, err
		}
	}
	return a, nil
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig(g *Globals) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogDir != "" {
		cfg.Session.LogDir = g.LogDir
	}
	if g.Ledger != "" {
		cfg.Session.Ledger = g.Ledger
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (a *app) Close() {
	if a.ledger != nil {
		if err := a.ledger.Close(); err != nil {
			a.console.Error("Failed to close ledger", "error", err)
		}
	}
	if err := a.results.Close(); err != nil {
		a.console.Error("Failed to close results log", "error", err)
	}
}

// logger returns the results.log logger for runID, optionally mirrored to
// another writer.
func (a *app) logger(runID string, mirror io.Writer) *log.Logger {
	var w io.Writer = a.results
	if mirror != nil {
		w = io.MultiWriter(mirror, a.results)
	}
	return newFileLogger(w, runID, a.debug)
}

// record appends result to the ledger when one is configured.
func (a *app) record(ctx context.Context, runID string, result *game.RoundResult) error {
	if a.ledger == nil {
		return nil
	}
	return a.ledger.Record(ctx, runID, result)
}

// checkLedger compares what the ledger holds for the run with the session
// statistics.
func (a *app) checkLedger(ctx context.Context, stats *statistics.Statistics) error {
	if a.ledger == nil {
		return nil
	}
	rounds, net, err := a.ledger.Totals(ctx, stats.RunID)
	if err != nil {
		return err
	}
	if rounds != stats.Rounds || net != stats.Net() {
		return fmt.Errorf("ledger holds %d rounds netting %s, session played %d netting %s",
			rounds, net, stats.Rounds, stats.Net())
	}
	return nil
}

// report prints the session summary, appends it to results.log and writes
// the balance history next to it.
func (a *app) report(ctx context.Context, out io.Writer, stats *statistics.Statistics) error {
	// an interrupted session still gets its summary
	if err := a.checkLedger(context.WithoutCancel(ctx), stats); err != nil {
		return fmt.Errorf("ledger check: %w", err)
	}
	logger := newFileLogger(a.results, stats.RunID, a.debug)
	heading := a.color.NewStyle().Bold(true).Render(fmt.Sprintf("%s summary", stats.Mode))
	fmt.Fprintln(out)
	fmt.Fprintln(out, heading)
	for _, line := range stats.Lines() {
		fmt.Fprintln(out, line)
		logger.Info(line)
	}

	path := filepath.Join(a.cfg.Session.LogDir, stats.RunID+".csv")
	if err := stats.WriteHistory(path); err != nil {
		return fmt.Errorf("write balance history: %w", err)
	}
	fmt.Fprintf(out, "Balance history: %s\n", path)
	return nil
}
