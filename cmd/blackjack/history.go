package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lox/blackjack/internal/ledger"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/muesli/termenv"
)

// HistoryCmd lists the rounds a run appended to the ledger.
type HistoryCmd struct {
	RunID string `arg:"" help:"Run ID printed in the session summary"`
}

func (c *HistoryCmd) Run(g *Globals) error {
	if g.Ledger == "" {
		return errors.New("--ledger is required")
	}
	store, err := ledger.Open(g.Ledger)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Rounds(context.Background(), c.RunID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no rounds recorded for run %s", c.RunID)
	}
	r := lipgloss.NewRenderer(os.Stdout)
	if g.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	fmt.Fprintln(os.Stdout, renderHistory(r, entries))
	return nil
}

func historyRows(entries []ledger.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		outcomes := make([]string, len(e.Outcomes))
		for i, o := range e.Outcomes {
			outcomes[i] = o.String()
		}
		rows = append(rows, []string{
			strconv.Itoa(e.Round),
			statistics.Dollars(e.Bet),
			strings.Join(outcomes, ", "),
			statistics.SignedDollars(e.Net),
			statistics.Dollars(e.BalanceAfter),
		})
	}
	return rows
}

func renderHistory(r *lipgloss.Renderer, entries []ledger.Entry) string {
	base := r.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(lipgloss.Color("#626262"))).
		Headers("Round", "Bet", "Outcome", "Net", "Balance").
		Rows(historyRows(entries)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return base.Bold(true)
			}
			return base
		})
	return t.Render()
}
