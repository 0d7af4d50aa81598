package tui

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter answers prompts from a fixed list
type scriptedPrompter struct {
	answers   []string
	questions []string
}

func (p *scriptedPrompter) Prompt(_ context.Context, question string) (string, error) {
	p.questions = append(p.questions, question)
	if len(p.answers) == 0 {
		return "", ErrQuit
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func plainStyles(buf *bytes.Buffer) Styles {
	return NewStyles(PlainRenderer(buf))
}

func TestHumanBettor(t *testing.T) {
	t.Parallel()

	req := game.BetRequest{
		Round:   3,
		Balance: game.Dollars(100),
		Default: game.Dollars(25),
		Min:     game.Dollars(1),
	}

	tests := []struct {
		name     string
		req      game.BetRequest
		answers  []string
		want     game.Money
		feedback []string
		err      error
	}{
		{name: "enter takes default", req: req, answers: []string{""}, want: game.Dollars(25)},
		{name: "typed amount", req: req, answers: []string{"$40.50"}, want: game.Dollars(40.50)},
		{
			name:     "re-prompts until valid",
			req:      req,
			answers:  []string{"lots", "0.5", "150", "100"},
			want:     game.Dollars(100),
			feedback: []string{`"lots" is not an amount.`, "The minimum bet is $1.00.", "You only have $100.00."},
		},
		{
			name:    "default capped at balance",
			req:     game.BetRequest{Round: 1, Balance: game.Dollars(10), Default: game.Dollars(25), Min: game.Dollars(1)},
			answers: []string{""},
			want:    game.Dollars(10),
		},
		{
			name: "below minimum places no bet",
			req:  game.BetRequest{Round: 1, Balance: 50, Default: game.Dollars(25), Min: game.Dollars(1)},
			want: 0,
		},
		{name: "quit", req: req, err: ErrQuit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			prompter := &scriptedPrompter{answers: tt.answers}
			bettor := NewHumanBettor(prompter, plainRenderer(&buf), plainStyles(&buf))

			got, err := bettor.Bet(context.Background(), tt.req)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for _, line := range tt.feedback {
				assert.Contains(t, buf.String(), line)
			}
		})
	}
}

func decisionRequest(canDouble, canSplit bool) game.DecisionRequest {
	cards := deck.MustParseCards("8h 8c")
	return game.DecisionRequest{
		Player:       game.HumanName,
		Hands:        []game.HandView{{Cards: cards, Value: 16, Bet: game.Dollars(25)}},
		DealerUpcard: deck.MustParseCards("Td")[0],
		Balance:      game.Dollars(1000),
		CanDouble:    canDouble,
		CanSplit:     canSplit,
		Suggested:    game.Split,
	}
}

func TestHumanAgentDecide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		canDouble bool
		canSplit  bool
		answers   []string
		want      game.Decision
		feedback  string
	}{
		{name: "hit", answers: []string{"h"}, want: game.Decision{Action: game.Hit}},
		{name: "stand word", answers: []string{"Stand"}, want: game.Decision{Action: game.Stand}},
		{name: "double", canDouble: true, answers: []string{"d"}, want: game.Decision{Action: game.Double}},
		{name: "split", canSplit: true, answers: []string{"p"}, want: game.Decision{Action: game.Split}},
		{name: "book", answers: []string{"b"}, want: game.Decision{Book: true}},
		{
			name:     "double not allowed re-prompts",
			answers:  []string{"d", "s"},
			want:     game.Decision{Action: game.Stand},
			feedback: "you cannot double this hand",
		},
		{
			name:     "unknown input re-prompts",
			canSplit: true,
			answers:  []string{"x", "p"},
			want:     game.Decision{Action: game.Split},
			feedback: `"x" is not an action`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			prompter := &scriptedPrompter{answers: tt.answers}
			agent := NewHumanAgent(prompter, plainRenderer(&buf), plainStyles(&buf), false)

			got, err := agent.Decide(context.Background(), decisionRequest(tt.canDouble, tt.canSplit))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, buf.String(), "Your hand: 8♥ 8♣ (16), bet $25.00. Dealer shows 10♦.")
			if tt.feedback != "" {
				assert.Contains(t, buf.String(), tt.feedback)
			}
		})
	}
}

func TestHumanAgentOffersOnlyLegalActions(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	prompter := &scriptedPrompter{answers: []string{"s", "s"}}
	agent := NewHumanAgent(prompter, plainRenderer(&buf), plainStyles(&buf), true)

	_, err := agent.Decide(context.Background(), decisionRequest(false, false))
	require.NoError(t, err)
	_, err = agent.Decide(context.Background(), decisionRequest(true, true))
	require.NoError(t, err)

	require.Len(t, prompter.questions, 2)
	assert.Equal(t, "(H)it (S)tand (B)ook? [book: split]", prompter.questions[0])
	assert.Equal(t, "(H)it (S)tand (D)ouble S(P)lit (B)ook? [book: split]", prompter.questions[1])
}

func TestHumanAgentDrivesEngine(t *testing.T) {
	t.Parallel()
	rules := game.DefaultRules()
	rules.Seats = 1

	var buf bytes.Buffer
	renderer := plainRenderer(&buf)
	prompter := &scriptedPrompter{answers: []string{"", "h", "s"}}
	engine := game.NewEngine(rules, quietLogger(),
		game.WithSubscriber(renderer),
		game.WithBettor(NewHumanBettor(prompter, renderer, renderer.Styles())),
		game.WithActionSource(NewHumanAgent(prompter, renderer, renderer.Styles(), false)),
	)
	sess := stackedSession(rules, "Th 9d 2c 6s 5h 5d")
	sess.Book = false

	res, err := engine.PlayRound(context.Background(), sess)
	require.NoError(t, err)

	// 10+2 hits to 17, dealer 9+6 draws 5 to 20
	assert.Equal(t, game.Dollars(-25), res.Net)
	assert.Contains(t, buf.String(), "You hit: 10♥ 2♣ 5♥ (17)")
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		answers []string
		def     bool
		want    bool
	}{
		{answers: []string{""}, def: true, want: true},
		{answers: []string{""}, def: false, want: false},
		{answers: []string{"maybe", "y"}, want: true},
		{answers: []string{"NO"}, def: true, want: false},
	}
	for _, tt := range tests {
		got, err := Confirm(context.Background(), &scriptedPrompter{answers: tt.answers}, "Play another hand?", tt.def)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "answers %v", tt.answers)
	}

	_, err := Confirm(context.Background(), &scriptedPrompter{}, "Play another hand?", true)
	assert.True(t, errors.Is(err, ErrQuit))
}
