package experience

import (
	"context"
	"sync"

	"github.com/mitchelldurbincs/Hexatron/internal/game/events"
	"github.com/rs/zerolog"
)

var collectedTypes = map[string]bool{
	events.TypeGameStarted:     true,
	events.TypeMoveExecuted:    true,
	events.TypeComputerDecided: true,
	events.TypeGameEnded:       true,
	events.TypeLibraryUpdated:  true,
}

// Collector turns the event stream of a session into game records. It is an
// events.Subscriber; finished games land in its buffer and reach the
// persistence layer on Flush.
type Collector struct {
	id          string
	buffer      *Buffer
	persistence PersistenceLayer // nil keeps records in memory only

	mu      sync.Mutex
	current *GameRecord
	logger  zerolog.Logger
}

// NewCollector creates a collector. persistence may be nil.
func NewCollector(id string, buffer *Buffer, persistence PersistenceLayer, logger zerolog.Logger) *Collector {
	return &Collector{
		id:          id,
		buffer:      buffer,
		persistence: persistence,
		logger:      logger.With().Str("component", "record_collector").Logger(),
	}
}

func (c *Collector) ID() string {
	return c.id
}

func (c *Collector) InterestedIn(eventType string) bool {
	return collectedTypes[eventType]
}

// HandleEvent folds one event into the game being recorded
func (c *Collector) HandleEvent(event events.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch e := event.(type) {
	case *events.GameStartedEvent:
		if c.current != nil {
			c.logger.Debug().
				Str("game_id", c.current.GameID).
				Int("moves", len(c.current.Moves)).
				Msg("Discarding unfinished game")
		}
		c.current = &GameRecord{
			GameID:       e.GameID(),
			Number:       e.Number,
			LearningMode: e.LearningMode,
			StartedAt:    e.Timestamp(),
		}

	case *events.MoveExecutedEvent:
		if rec := c.recording(e); rec != nil {
			rec.Moves = append(rec.Moves, MoveRecord{
				Ply:     e.Metadata.Ply,
				Side:    e.Metadata.Side,
				Pawn:    e.Pawn.String(),
				From:    e.From.String(),
				To:      e.To.String(),
				Capture: e.Capture,
			})
		}

	case *events.ComputerDecidedEvent:
		if rec := c.recording(e); rec != nil {
			rec.Decisions = append(rec.Decisions, DecisionRecord{
				Situation:   e.Situation,
				Orientation: e.Orientation,
				Token:       e.Token,
			})
		}

	case *events.LibraryUpdatedEvent:
		update := UpdateRecord{
			Situation: e.Situation,
			Token:     e.Token,
			Action:    e.Action,
			Before:    e.Before,
			After:     e.After,
			Applied:   e.Applied,
		}
		// Automatic learning runs before the game is closed, confirmed
		// learning after
		if rec := c.recording(e); rec != nil {
			rec.Updates = append(rec.Updates, update)
			return
		}
		if !c.buffer.Amend(e.GameID(), func(rec *GameRecord) { rec.Updates = append(rec.Updates, update) }) {
			c.logger.Debug().Str("game_id", e.GameID()).Msg("Library update for unknown game")
		}

	case *events.GameEndedEvent:
		rec := c.recording(e)
		if rec == nil {
			return
		}
		rec.EndedAt = e.Timestamp()
		rec.Winner = e.Winner
		rec.Reason = e.Reason
		rec.Cause = e.Cause
		rec.Plies = e.Metadata.Ply
		c.current = nil

		if err := c.buffer.Add(rec); err != nil {
			c.logger.Warn().Err(err).Str("game_id", rec.GameID).Msg("Failed to buffer game record")
			return
		}
		c.logger.Debug().
			Str("game_id", rec.GameID).
			Str("winner", rec.Winner).
			Int("plies", rec.Plies).
			Msg("Recorded game")
	}
}

// recording returns the open record for the event's game, or nil
func (c *Collector) recording(e events.Event) *GameRecord {
	if c.current == nil || c.current.GameID != e.GameID() {
		return nil
	}
	return c.current
}

// Flush drains the buffer into the persistence layer and returns the number
// of records written. Without persistence the buffer is left untouched.
func (c *Collector) Flush(ctx context.Context) (int, error) {
	if c.persistence == nil {
		return 0, nil
	}

	records := c.buffer.Drain()
	if len(records) == 0 {
		return 0, nil
	}
	if err := c.persistence.Write(ctx, records); err != nil {
		return 0, err
	}

	c.logger.Info().Int("records", len(records)).Msg("Flushed game records")
	return len(records), nil
}

// Latest returns the n most recent finished games still in the buffer
func (c *Collector) Latest(n int) []*GameRecord {
	return c.buffer.Latest(n)
}
