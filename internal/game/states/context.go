package states

import (
	"time"

	"github.com/rs/zerolog"
)

// GameContext is the per-game data the phase callbacks read and update
type GameContext struct {
	// GameID uniquely identifies the current game; a new one is issued on reset
	GameID string

	Logger zerolog.Logger

	// GameNumber counts games played in this session, starting at 1
	GameNumber int

	// Ply counts completed moves in the current game
	Ply int

	StartTime time.Time
	EndTime   time.Time

	// Winner is the winning side's name once the game is over
	Winner string

	// HasDecision is set once the computer has moved this game; learning
	// needs a decision to act on
	HasDecision bool
}

func NewGameContext(gameID string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID: gameID,
		Logger: logger,
	}
}

// Elapsed returns the game time so far, or the final duration once ended
func (gc *GameContext) Elapsed() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	if !gc.EndTime.IsZero() {
		return gc.EndTime.Sub(gc.StartTime)
	}
	return time.Since(gc.StartTime)
}

func (gc *GameContext) logger() zerolog.Logger {
	return gc.Logger.With().Str("game_id", gc.GameID).Logger()
}
