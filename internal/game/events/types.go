package events

import (
	"time"
)

// Event is the base interface for everything published on the bus
type Event interface {
	// Type returns the event type used for filtering and logging
	Type() string
	// Timestamp returns when the event occurred
	Timestamp() time.Time
	// GameID returns the ID of the game the event belongs to
	GameID() string
}

// BaseEvent carries the fields every event shares
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Game      string    `json:"game_id"`
}

func newBase(eventType, gameID string) BaseEvent {
	return BaseEvent{EventType: eventType, Time: time.Now(), Game: gameID}
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) GameID() string       { return e.Game }

// EventHandler is a function that processes events
type EventHandler func(Event)

// Subscriber receives the events it declares interest in
type Subscriber interface {
	// ID returns a unique identifier for this subscriber
	ID() string
	// HandleEvent processes an event
	HandleEvent(Event)
	// InterestedIn reports whether the subscriber wants this event type
	InterestedIn(eventType string) bool
}

// EventMetadata is the move context attached to in-game events
type EventMetadata struct {
	// Side that was to move when the event happened
	Side string `json:"side,omitempty"`
	// Ply counts completed moves in the current game
	Ply int `json:"ply,omitempty"`
}

// Publisher is the interface for publishing events
type Publisher interface {
	// Publish sends an event to all interested subscribers
	Publish(Event)
}

// Bus is the publish/subscribe surface of the event bus
type Bus interface {
	Publisher
	Subscribe(Subscriber)
	Unsubscribe(subscriberID string)
	// SubscribeFunc registers a handler for one event type and returns its ID
	SubscribeFunc(eventType string, handler EventHandler) string
}
