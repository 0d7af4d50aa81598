package game

import (
	"sync"
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// GameEvent represents anything that happens during a round
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// DealerName is the actor name used for the dealer in events.
const DealerName = "Dealer"

// RoundStartEvent is published once the bet is accepted, before any card is dealt
type RoundStartEvent struct {
	RoundID   string
	Round     int
	Bet       Money
	Balance   Money
	Seats     int
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// ShoeReshuffleEvent is published whenever the shoe is rebuilt. Forced is set
// when the shoe ran dry in the middle of a round.
type ShoeReshuffleEvent struct {
	Remaining   int
	InitialSize int
	Forced      bool
	timestamp   time.Time
}

func (e ShoeReshuffleEvent) EventType() EventType { return EventTypeShoeReshuffle }
func (e ShoeReshuffleEvent) Timestamp() time.Time { return e.timestamp }

// CardDealtEvent is published for every card dealt outside a player action:
// the initial deal and dealer draws. Hidden marks the dealer's hole card.
type CardDealtEvent struct {
	Actor     string
	HandIndex int
	Card      deck.Card
	Hidden    bool
	Cards     []deck.Card
	Value     int
	timestamp time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published after an action is applied to a hand
type PlayerActionEvent struct {
	Actor     string
	Human     bool
	HandIndex int
	Action    Action
	Book      bool // chosen by the strategy advisor
	Cards     []deck.Card
	Value     int
	Bet       Money
	Status    HandStatus
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// HandResolvedEvent is published when a hand ends without a Stand or Double:
// a natural or a bust. Split Aces report their Stood status on the split's
// PlayerActionEvent instead.
type HandResolvedEvent struct {
	Actor     string
	HandIndex int
	Status    HandStatus
	Cards     []deck.Card
	Value     int
	timestamp time.Time
}

func (e HandResolvedEvent) EventType() EventType { return EventTypeHandResolved }
func (e HandResolvedEvent) Timestamp() time.Time { return e.timestamp }

// DealerTurnEvent is published when the dealer reveals (Final false) and when
// the dealer finishes drawing (Final true).
type DealerTurnEvent struct {
	Cards     []deck.Card
	Value     int
	Status    HandStatus
	Final     bool
	timestamp time.Time
}

func (e DealerTurnEvent) EventType() EventType { return EventTypeDealerTurn }
func (e DealerTurnEvent) Timestamp() time.Time { return e.timestamp }

// SettlementEvent is published for each of the human's hands as it is paid
type SettlementEvent struct {
	HandIndex   int
	Cards       []deck.Card
	Value       int
	DealerValue int
	Bet         Money
	Outcome     Outcome
	Net         Money
	Balance     Money
	timestamp   time.Time
}

func (e SettlementEvent) EventType() EventType { return EventTypeSettlement }
func (e SettlementEvent) Timestamp() time.Time { return e.timestamp }

// RoundEndEvent carries the finished round
type RoundEndEvent struct {
	Result    *RoundResult
	timestamp time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a synchronous in-memory event bus. Subscribers run on the
// publishing goroutine in subscription order.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := make([]EventSubscriber, len(bus.subscribers))
	copy(subs, bus.subscribers)
	bus.mu.RUnlock()

	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}
