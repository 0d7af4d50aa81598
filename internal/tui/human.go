package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/statistics"
)

// Notifier receives feedback lines for the player, such as a rejected bet.
type Notifier interface {
	Println(line string)
}

// HumanBettor asks the player for each wager.
type HumanBettor struct {
	prompter Prompter
	notify   Notifier
	styles   Styles
}

// NewHumanBettor creates a bettor that prompts through p
func NewHumanBettor(p Prompter, notify Notifier, styles Styles) *HumanBettor {
	return &HumanBettor{prompter: p, notify: notify, styles: styles}
}

// Bet implements game.Bettor. An empty answer takes the default bet; the
// amount must be at least the table minimum and no more than the balance.
func (b *HumanBettor) Bet(ctx context.Context, req game.BetRequest) (game.Money, error) {
	if req.Balance < req.Min {
		return 0, nil
	}
	def := min(req.Default, req.Balance)
	question := fmt.Sprintf("Bet for round %d? Balance %s, Enter for %s:",
		req.Round, statistics.Dollars(req.Balance), statistics.Dollars(def))

	for {
		answer, err := b.prompter.Prompt(ctx, question)
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return def, nil
		}
		amount, err := game.ParseMoney(answer)
		switch {
		case err != nil:
			b.notify.Println(b.styles.Error.Render(fmt.Sprintf("%q is not an amount.", answer)))
		case amount < req.Min:
			b.notify.Println(b.styles.Error.Render("The minimum bet is " + statistics.Dollars(req.Min) + "."))
		case amount > req.Balance:
			b.notify.Println(b.styles.Error.Render("You only have " + statistics.Dollars(req.Balance) + "."))
		default:
			return amount, nil
		}
	}
}

// HumanAgent asks the player for each playing decision.
type HumanAgent struct {
	prompter Prompter
	notify   Notifier
	styles   Styles
	hints    bool
}

// NewHumanAgent creates an action source that prompts through p. With hints
// set the book play is shown alongside each question.
func NewHumanAgent(p Prompter, notify Notifier, styles Styles, hints bool) *HumanAgent {
	return &HumanAgent{prompter: p, notify: notify, styles: styles, hints: hints}
}

// Decide implements game.ActionSource
func (a *HumanAgent) Decide(ctx context.Context, req game.DecisionRequest) (game.Decision, error) {
	a.notify.Println(a.describe(req))
	question := options(req)
	if a.hints {
		question += fmt.Sprintf(" [book: %s]", req.Suggested)
	}
	for {
		answer, err := a.prompter.Prompt(ctx, question)
		if err != nil {
			return game.Decision{}, err
		}
		decision, err := parseDecision(answer, req)
		if err != nil {
			a.notify.Println(a.styles.Error.Render(err.Error()))
			continue
		}
		return decision, nil
	}
}

func (a *HumanAgent) describe(req game.DecisionRequest) string {
	s := a.styles
	h := req.Hands[req.HandIndex]
	label := "Your hand"
	if len(req.Hands) > 1 {
		label = fmt.Sprintf("Your hand %d of %d", req.HandIndex+1, len(req.Hands))
	}
	value := fmt.Sprintf("%d", h.Value)
	if h.Soft {
		value = "soft " + value
	}
	return fmt.Sprintf("%s: %s (%s), bet %s. Dealer shows %s.",
		s.HandInfo.Render(label), s.Cards(h.Cards), value, statistics.Dollars(h.Bet), s.Card(req.DealerUpcard))
}

func options(req game.DecisionRequest) string {
	opts := []string{"(H)it", "(S)tand"}
	if req.CanDouble {
		opts = append(opts, "(D)ouble")
	}
	if req.CanSplit {
		opts = append(opts, "S(P)lit")
	}
	opts = append(opts, "(B)ook")
	return strings.Join(opts, " ") + "?"
}

func parseDecision(answer string, req game.DecisionRequest) (game.Decision, error) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "h", "hit":
		return game.Decision{Action: game.Hit}, nil
	case "s", "stand":
		return game.Decision{Action: game.Stand}, nil
	case "d", "double":
		if !req.CanDouble {
			return game.Decision{}, fmt.Errorf("you cannot double this hand")
		}
		return game.Decision{Action: game.Double}, nil
	case "p", "split":
		if !req.CanSplit {
			return game.Decision{}, fmt.Errorf("you cannot split this hand")
		}
		return game.Decision{Action: game.Split}, nil
	case "b", "book":
		return game.Decision{Book: true}, nil
	}
	return game.Decision{}, fmt.Errorf("%q is not an action", answer)
}
