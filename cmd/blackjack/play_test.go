package main

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/lox/blackjack/internal/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type answers []string

func (a *answers) Prompt(context.Context, string) (string, error) {
	if len(*a) == 0 {
		return "", tui.ErrQuit
	}
	next := (*a)[0]
	*a = (*a)[1:]
	return next, nil
}

type lines struct{ bytes.Buffer }

func (l *lines) Println(line string) {
	l.WriteString(line + "\n")
}

func newTestSession(t *testing.T, script ...string) (*game.Engine, *game.Session, *answers, *lines) {
	t.Helper()
	rules := game.DefaultRules()
	rules.Seats = 1

	prompter := answers(script)
	out := &lines{}
	styles := tui.NewStyles(tui.PlainRenderer(io.Discard))
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	engine := game.NewEngine(rules, logger, game.WithBettor(tui.NewHumanBettor(&prompter, out, styles)))

	sess := &game.Session{
		ID:      "test",
		Balance: rules.StartingBalance,
		Shoe:    deck.NewStackedShoe(rules.Decks, 0, randutil.New(1), deck.MustParseCards("Th 9d 7c 6s 5h")...),
		Book:    true,
	}
	return engine, sess, &prompter, out
}

func TestPlaySessionStopsWhenPlayerDeclines(t *testing.T) {
	t.Parallel()
	engine, sess, prompter, out := newTestSession(t, "", "n")
	stats := statistics.New(sess.ID, "Interactive", sess.Balance, engine.Rules().DefaultBet)

	var recorded []*game.RoundResult
	err := playSession(context.Background(), engine, sess, prompter, out, stats, func(r *game.RoundResult) error {
		recorded = append(recorded, r)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Rounds)
	require.Len(t, recorded, 1)
	assert.Equal(t, game.Dollars(-25), recorded[0].Net)
	assert.Equal(t, game.Dollars(975), sess.Balance)
	assert.Empty(t, *prompter)
}

func TestPlaySessionQuitAtBetIsNotAnError(t *testing.T) {
	t.Parallel()
	engine, sess, prompter, out := newTestSession(t)
	stats := statistics.New(sess.ID, "Interactive", sess.Balance, engine.Rules().DefaultBet)

	err := playSession(context.Background(), engine, sess, prompter, out, stats, func(*game.RoundResult) error { return nil })
	require.NoError(t, err)
	assert.Zero(t, stats.Rounds)
}

func TestPlaySessionStopsWhenBroke(t *testing.T) {
	t.Parallel()
	engine, sess, prompter, out := newTestSession(t, "")
	sess.Balance = 50 // below the $1 minimum
	stats := statistics.New(sess.ID, "Interactive", sess.Balance, engine.Rules().DefaultBet)

	err := playSession(context.Background(), engine, sess, prompter, out, stats, func(*game.RoundResult) error { return nil })
	require.NoError(t, err)
	assert.Zero(t, stats.Rounds)
	assert.Contains(t, out.String(), "You do not have enough left for the minimum bet of $1.00.")
}
