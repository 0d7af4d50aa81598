package tui

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/statistics"
)

// Renderer writes a human-readable account of a round as events arrive. It
// only ever shows what the human could see at the table: the dealer's hole
// card stays hidden until the dealer's turn.
type Renderer struct {
	mu     sync.Mutex
	out    io.Writer
	styles Styles
	logger *log.Logger

	ctx   context.Context
	pacer *Pacer

	dealerUp deck.Card
	revealed bool
	split    map[string]bool // actors holding more than one hand this round
}

// RendererOption configures a Renderer
type RendererOption func(*Renderer)

// WithPacer pauses after each rendered line until the pacer allows the next.
// ctx bounds the pauses.
func WithPacer(ctx context.Context, p *Pacer) RendererOption {
	return func(r *Renderer) {
		r.ctx = ctx
		r.pacer = p
	}
}

// WithLipglossRenderer overrides the colour renderer, e.g. PlainRenderer for
// --no-color or tests.
func WithLipglossRenderer(lr *lipgloss.Renderer) RendererOption {
	return func(r *Renderer) {
		r.styles = NewStyles(lr)
	}
}

// NewRenderer creates a renderer writing to out
func NewRenderer(out io.Writer, logger *log.Logger, opts ...RendererOption) *Renderer {
	r := &Renderer{
		out:    out,
		logger: logger.WithPrefix("tui"),
		ctx:    context.Background(),
		split:  map[string]bool{},
		styles: NewStyles(lipgloss.NewRenderer(out)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Styles exposes the renderer's styles so prompts match the table output.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// OnEvent implements game.EventSubscriber
func (r *Renderer) OnEvent(event game.GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	line, ok := r.format(event)
	if !ok {
		return
	}
	fmt.Fprintln(r.out, line)
	if err := r.pacer.Wait(r.ctx); err != nil {
		r.logger.Debug("Pacing interrupted", "error", err)
	}
}

// Println writes a line outside the event stream, such as prompt feedback.
func (r *Renderer) Println(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, line)
}

func (r *Renderer) format(event game.GameEvent) (string, bool) {
	s := r.styles
	switch e := event.(type) {
	case game.RoundStartEvent:
		r.revealed = false
		r.dealerUp = deck.Card{}
		r.split = map[string]bool{}
		header := s.Header.Render(fmt.Sprintf("Round %d", e.Round))
		return fmt.Sprintf("\n%s  Bet %s  Balance %s", header,
			statistics.Dollars(e.Bet), statistics.Dollars(e.Balance)), true

	case game.ShoeReshuffleEvent:
		if e.Forced {
			return s.Warning.Render("The shoe ran out mid-round. Reshuffling."), true
		}
		return s.Info.Render(fmt.Sprintf("Reshuffling the shoe (%d of %d cards left).", e.Remaining, e.InitialSize)), true

	case game.CardDealtEvent:
		return r.formatDeal(e)

	case game.PlayerActionEvent:
		who := e.Actor
		if e.Human {
			who = s.HandInfo.Render(e.Actor)
		}
		if e.Action == game.Split {
			r.split[e.Actor] = true
		}
		verb := e.Action.String()
		if e.Book {
			verb += " (book)"
		}
		line := fmt.Sprintf("%s%s %s: %s (%d)", who, r.label(e.Actor, e.HandIndex), s.Actions.Render(verb), s.Cards(e.Cards), e.Value)
		if e.Status == game.Busted {
			line += " " + s.Error.Render("BUST")
		}
		return line, true

	case game.HandResolvedEvent:
		switch e.Status {
		case game.Blackjack:
			return fmt.Sprintf("%s: %s %s", e.Actor, s.Cards(e.Cards), s.Success.Render("BLACKJACK")), true
		case game.Busted:
			return fmt.Sprintf("%s%s: %s (%d) %s", e.Actor, r.label(e.Actor, e.HandIndex), s.Cards(e.Cards), e.Value, s.Error.Render("BUST")), true
		}
		return fmt.Sprintf("%s%s stands on %d", e.Actor, r.label(e.Actor, e.HandIndex), e.Value), true

	case game.DealerTurnEvent:
		if !e.Final {
			r.revealed = true
			return fmt.Sprintf("%s reveals: %s (%d)", s.Dealer.Render(game.DealerName), s.Cards(e.Cards), e.Value), true
		}
		if e.Status == game.Busted {
			return fmt.Sprintf("%s busts with %d", s.Dealer.Render(game.DealerName), e.Value), true
		}
		return fmt.Sprintf("%s stands on %d", s.Dealer.Render(game.DealerName), e.Value), true

	case game.SettlementEvent:
		var outcome string
		switch e.Outcome {
		case game.BlackjackWin:
			outcome = s.Success.Render("Blackjack pays " + statistics.SignedDollars(e.Net))
		case game.Win:
			outcome = s.Success.Render("Win " + statistics.SignedDollars(e.Net))
		case game.Push:
			outcome = s.Warning.Render("Push")
		default:
			outcome = s.Error.Render("Lose " + statistics.SignedDollars(e.Net))
		}
		return fmt.Sprintf("%s%s %d vs %d: %s. Balance %s", game.HumanName, r.label(game.HumanName, e.HandIndex), e.Value, e.DealerValue,
			outcome, statistics.Dollars(e.Balance)), true

	case game.RoundEndEvent:
		res := e.Result
		if res == nil {
			return "", false
		}
		net := s.Warning.Render(statistics.SignedDollars(res.Net))
		if res.Net > 0 {
			net = s.Success.Render(statistics.SignedDollars(res.Net))
		} else if res.Net < 0 {
			net = s.Error.Render(statistics.SignedDollars(res.Net))
		}
		return fmt.Sprintf("Round %d net %s. Balance %s", res.Round, net, statistics.Dollars(res.BalanceAfter)), true
	}
	return "", false
}

func (r *Renderer) formatDeal(e game.CardDealtEvent) (string, bool) {
	s := r.styles
	if e.Actor != game.DealerName {
		// each player's hand is shown once both cards are down
		if len(e.Cards) != 2 {
			return "", false
		}
		name := e.Actor
		if e.Actor == game.HumanName {
			name = s.HandInfo.Render(e.Actor)
		}
		return fmt.Sprintf("%s: %s (%d)", name, s.Cards(e.Cards), e.Value), true
	}

	dealer := s.Dealer.Render(game.DealerName)
	switch {
	case e.Hidden:
		return fmt.Sprintf("%s: %s %s", dealer, s.Card(r.dealerUp), s.Info.Render("[hidden]")), true
	case !r.revealed:
		r.dealerUp = e.Card
		return "", false
	default:
		return fmt.Sprintf("%s draws %s: %s (%d)", dealer, s.Card(e.Card), s.Cards(e.Cards), e.Value), true
	}
}

// label names a hand once its owner has split, e.g. " (hand 2)".
func (r *Renderer) label(actor string, i int) string {
	if !r.split[actor] {
		return ""
	}
	return fmt.Sprintf(" (hand %d)", i+1)
}
