package events

import (
	"testing"
	"time"

	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSubscriber records everything it is handed
type TestSubscriber struct {
	id              string
	interestedTypes map[string]bool
	receivedEvents  []Event
}

func (ts *TestSubscriber) ID() string {
	return ts.id
}

func (ts *TestSubscriber) HandleEvent(e Event) {
	ts.receivedEvents = append(ts.receivedEvents, e)
}

func (ts *TestSubscriber) InterestedIn(eventType string) bool {
	if ts.interestedTypes == nil {
		return true
	}
	return ts.interestedTypes[eventType]
}

type panickingSubscriber struct{}

func (panickingSubscriber) ID() string               { return "panics" }
func (panickingSubscriber) HandleEvent(Event)        { panic("boom") }
func (panickingSubscriber) InterestedIn(string) bool { return true }

func TestEventBus_SubscribeFunc(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	var received []Event
	id1 := bus.SubscribeFunc(TypeGameStarted, func(e Event) { received = append(received, e) })
	id2 := bus.SubscribeFunc(TypeGameStarted, func(e Event) { received = append(received, e) })
	assert.Equal(t, "game.started_func_1", id1)
	assert.Equal(t, "game.started_func_2", id2)
	assert.Equal(t, 2, bus.FuncHandlerCount(TypeGameStarted))

	bus.Publish(NewGameStartedEvent("game-1", 1, "fast"))
	bus.Publish(NewComputerPassedEvent("game-1", "empty pool"))

	require.Len(t, received, 2)
	assert.Equal(t, TypeGameStarted, received[0].Type())
	assert.Equal(t, "game-1", received[0].GameID())
	assert.WithinDuration(t, time.Now(), received[0].Timestamp(), time.Minute)
}

func TestEventBus_SubscriberFilterAndUnsubscribe(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())
	subscriber := &TestSubscriber{
		id: "test-subscriber",
		interestedTypes: map[string]bool{
			TypeGameStarted: true,
			TypeGameEnded:   true,
		},
	}
	bus.Subscribe(subscriber)
	assert.Equal(t, 1, bus.SubscriberCount())

	bus.Publish(NewGameStartedEvent("g", 1, "slow"))
	bus.Publish(NewMoveExecutedEvent("g", core.Human, 1, core.PawnH1, core.A1, core.A2, false))
	bus.Publish(NewGameEndedEvent("g", core.Human, "stalemate", "AI is in stalemate", 5, time.Second))

	require.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, TypeGameStarted, subscriber.receivedEvents[0].Type())
	assert.Equal(t, TypeGameEnded, subscriber.receivedEvents[1].Type())

	bus.Unsubscribe(subscriber.ID())
	assert.Equal(t, 0, bus.SubscriberCount())
	bus.Publish(NewGameStartedEvent("g", 2, "slow"))
	assert.Len(t, subscriber.receivedEvents, 2)
}

func TestEventBus_PanicDoesNotStopDelivery(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())
	bus.Subscribe(panickingSubscriber{})
	recorder := &TestSubscriber{id: "recorder"}
	bus.Subscribe(recorder)

	called := false
	bus.SubscribeFunc(TypeLibraryReset, func(Event) { panic("handler boom") })
	bus.SubscribeFunc(TypeLibraryReset, func(Event) { called = true })

	assert.NotPanics(t, func() { bus.Publish(NewLibraryResetEvent("g", "HEADER")) })
	assert.Len(t, recorder.receivedEvents, 1)
	assert.True(t, called)
}

func TestGameEvents_Constructors(t *testing.T) {
	ended := NewGameEndedEvent("g", core.Computer, "reached_other_side", "AI reached other side", 6, 2*time.Second)
	assert.Equal(t, TypeGameEnded, ended.Type())
	assert.Equal(t, "computer", ended.Winner)
	assert.Equal(t, 6, ended.Metadata.Ply)

	captured := NewPawnCapturedEvent("g", 3, core.PawnH2, core.PawnC1, core.B2)
	assert.Equal(t, "computer", captured.Metadata.Side)

	sel := NewSelectionChangedEvent("g", core.NoPawn, nil)
	assert.Equal(t, TypeSelectionChanged, sel.Type())
	assert.Empty(t, sel.Destinations)

	tr := NewStateTransitionEvent("g", "HumanTurn", "ComputerTurn", "move applied")
	assert.Equal(t, TypeStateTransition, tr.Type())
	assert.Equal(t, "move applied", tr.Reason)
}
