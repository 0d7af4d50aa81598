package game

// EventType represents a game event type with type safety
type EventType string

// EventType constants for round events
const (
	EventTypeRoundStart    EventType = "round_start"
	EventTypeRoundEnd      EventType = "round_end"
	EventTypeShoeReshuffle EventType = "shoe_reshuffle"
	EventTypeCardDealt     EventType = "card_dealt"
	EventTypePlayerAction  EventType = "player_action"
	EventTypeHandResolved  EventType = "hand_resolved"
	EventTypeDealerTurn    EventType = "dealer_turn"
	EventTypeSettlement    EventType = "settlement"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}
