package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/sanity-io/litter"
)

var (
	// ErrNoBet is returned when the bettor declines to wager. No cards are dealt.
	ErrNoBet = errors.New("no bet placed")
	// ErrInvalidBet is returned for a wager below the minimum or above the balance.
	ErrInvalidBet = errors.New("invalid bet")
	// ErrNoAgent is returned when a manual decision is needed and no ActionSource is set.
	ErrNoAgent = errors.New("no action source for manual play")
)

// maxDecisionAttempts bounds how often an illegal manual action is re-requested
// before the book play is used instead.
const maxDecisionAttempts = 5

// Engine plays rounds of blackjack. It is stateless between rounds apart from
// its collaborators: all mutable state lives in the Session passed to PlayRound.
type Engine struct {
	rules    Rules
	logger   *log.Logger
	eventBus EventBus
	clock    quartz.Clock
	bettor   Bettor
	human    ActionSource
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithBettor sets the source of the human seat's wager
func WithBettor(b Bettor) EngineOption {
	return func(e *Engine) { e.bettor = b }
}

// WithActionSource sets the source of manual decisions
func WithActionSource(a ActionSource) EngineOption {
	return func(e *Engine) { e.human = a }
}

// WithClock sets the clock used to timestamp events
func WithClock(c quartz.Clock) EngineOption {
	return func(e *Engine) { e.clock = c }
}

// WithSubscriber subscribes s to the engine's event bus
func WithSubscriber(s EventSubscriber) EngineOption {
	return func(e *Engine) { e.eventBus.Subscribe(s) }
}

// NewEngine creates an engine for rules. Without options the human seat bets
// the table default every round and a manual decision fails with ErrNoAgent.
func NewEngine(rules Rules, logger *log.Logger, opts ...EngineOption) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	e := &Engine{
		rules:    rules,
		logger:   logger.WithPrefix("engine"),
		eventBus: NewEventBus(),
		clock:    quartz.NewReal(),
		bettor:   FixedBettor(rules.DefaultBet),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EventBus returns the event bus for subscribing to round events
func (e *Engine) EventBus() EventBus {
	return e.eventBus
}

// Rules returns the table rules
func (e *Engine) Rules() Rules {
	return e.rules
}

// PlayRound runs one complete round against sess: reshuffle check, bet, deal,
// the human's natural, player turns, dealer turn and settlement. The session
// balance, shoe and round counter are updated in place.
func (e *Engine) PlayRound(ctx context.Context, sess *Session) (*RoundResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if sess.Shoe.NeedsReshuffle() {
		e.logger.Info("Reshuffling shoe", "remaining", sess.Shoe.Remaining(), "initial", sess.Shoe.InitialSize())
		sess.Shoe.Build()
		e.publish(ShoeReshuffleEvent{
			Remaining:   sess.Shoe.Remaining(),
			InitialSize: sess.Shoe.InitialSize(),
			timestamp:   e.clock.Now(),
		})
	}

	bet, err := e.bettor.Bet(ctx, BetRequest{
		Round:   sess.Rounds + 1,
		Balance: sess.Balance,
		Default: e.rules.DefaultBet,
		Min:     e.rules.MinBet,
	})
	if err != nil {
		return nil, fmt.Errorf("collect bet: %w", err)
	}
	if bet <= 0 {
		return nil, ErrNoBet
	}
	if bet < e.rules.MinBet || bet > sess.Balance {
		return nil, fmt.Errorf("%w: %s with balance %s", ErrInvalidBet, bet, sess.Balance)
	}

	r := newRound(uuid.NewString(), sess.Rounds+1, e.rules.Seats, bet, sess.Balance)
	e.logger.Debug("Starting round", "round", r.number, "id", r.id, "bet", bet, "balance", sess.Balance)
	e.publish(RoundStartEvent{
		RoundID:   r.id,
		Round:     r.number,
		Bet:       bet,
		Balance:   sess.Balance,
		Seats:     len(r.players),
		timestamp: e.clock.Now(),
	})

	if err := e.deal(r, sess); err != nil {
		return nil, err
	}
	e.resolveHumanNatural(r, sess)

	for _, p := range r.players {
		if err := e.playTurn(ctx, r, sess, p); err != nil {
			return nil, err
		}
	}

	if r.dealerNeeded() {
		if err := e.playDealer(r, sess); err != nil {
			return nil, err
		}
	} else {
		e.logger.Debug("Dealer does not play; no live player hands", "round", r.number)
	}

	e.settle(r, sess)
	sess.Rounds++

	result := r.result(sess.Balance)
	if e.logger.GetLevel() <= log.DebugLevel {
		e.logger.Debug("Round result", "dump", litter.Sdump(result))
	}
	e.publish(RoundEndEvent{Result: result, timestamp: e.clock.Now()})
	return result, nil
}

func (e *Engine) publish(event GameEvent) {
	e.eventBus.Publish(event)
}
