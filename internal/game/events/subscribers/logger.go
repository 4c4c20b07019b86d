package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
	"github.com/mitchelldurbincs/Hexatron/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber writes every event it receives as one structured log line
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // nil logs everything
	devMode         bool            // attach the whole event as JSON
}

func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter limits logging to the given types. An empty list logs all.
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool, len(eventTypes))
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent logs the event with its type-specific fields
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.level()).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp())

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("game_number", e.Number).
			Str("learning_mode", e.LearningMode)

	case *events.GameEndedEvent:
		logEvent.
			Str("winner", e.Winner).
			Str("reason", e.Reason).
			Str("cause", e.Cause).
			Int("ply", e.Metadata.Ply).
			Dur("duration", e.Duration)

	case *events.SelectionChangedEvent:
		logEvent.
			Str("pawn", e.Pawn.String()).
			Strs("destinations", spaceLabels(e.Destinations))

	case *events.MoveExecutedEvent:
		logEvent.
			Str("side", e.Metadata.Side).
			Int("ply", e.Metadata.Ply).
			Str("pawn", e.Pawn.String()).
			Str("from", e.From.String()).
			Str("to", e.To.String()).
			Bool("capture", e.Capture)

	case *events.MoveRejectedEvent:
		logEvent.
			Str("pawn", e.Pawn.String()).
			Str("to", e.To.String()).
			Str("reason", e.Reason)

	case *events.PawnCapturedEvent:
		logEvent.
			Str("captured", e.Captured.String()).
			Str("by", e.By.String()).
			Str("space", e.Space.String())

	case *events.ComputerDecidedEvent:
		logEvent.
			Int("situation", e.Situation).
			Str("orientation", e.Orientation).
			Str("token", e.Token).
			Str("pawn", e.Pawn.String()).
			Str("to", e.To.String())

	case *events.ComputerPassedEvent:
		logEvent.Str("reason", e.Reason)

	case *events.LearningModeChangedEvent:
		logEvent.
			Str("from", e.From).
			Str("to", e.To)

	case *events.LibraryUpdatedEvent:
		logEvent.
			Int("situation", e.Situation).
			Str("token", e.Token).
			Str("action", e.Action).
			Str("before", e.Before).
			Str("after", e.After).
			Bool("applied", e.Applied)

	case *events.LibraryResetEvent:
		logEvent.Str("header", e.Header)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}

func (ls *LoggerSubscriber) level() zerolog.Level {
	switch ls.logLevel {
	case zerolog.DebugLevel, zerolog.InfoLevel, zerolog.WarnLevel, zerolog.ErrorLevel:
		return ls.logLevel
	default:
		return zerolog.InfoLevel
	}
}

func spaceLabels(spaces []core.Space) []string {
	out := make([]string, len(spaces))
	for i, s := range spaces {
		out[i] = s.String()
	}
	return out
}
