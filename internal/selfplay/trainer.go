// Package selfplay trains the computer by playing it against a human
// stand-in that picks uniformly among its legal moves.
package selfplay

import (
	"context"
	"fmt"

	"github.com/mitchelldurbincs/Hexatron/internal/game"
	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

const (
	// maxPlies bounds one game. Hexapawn cannot run longer than this, so
	// hitting it means the session stopped accepting moves.
	maxPlies = 16

	progressEvery = 100
)

// Trainer plays whole games on a session built without ManualComputerTurn
// and without ConfirmUpdates, so every human move is answered and every
// finished game is learned from immediately.
type Trainer struct {
	session *game.Session
	rng     *rand.Rand
	logger  zerolog.Logger
}

func NewTrainer(session *game.Session, src rand.Source, logger zerolog.Logger) *Trainer {
	return &Trainer{
		session: session,
		rng:     rand.New(src),
		logger:  logger.With().Str("component", "selfplay").Logger(),
	}
}

// PlayGame plays the session's current game to the end
func (t *Trainer) PlayGame(ctx context.Context) error {
	s := t.session
	for ply := 0; !s.Outcome().Terminal(); ply++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ply >= maxPlies {
			return fmt.Errorf("game %d did not finish after %d moves", s.GameNumber(), maxPlies)
		}

		moves := core.LegalMoves(s.Board(), core.Human)
		if len(moves) == 0 {
			// The session ends the game before the human can be stalemated
			return fmt.Errorf("game %d: human has no move", s.GameNumber())
		}
		m := moves[t.rng.Intn(len(moves))]

		if err := s.SelectPawn(m.Pawn); err != nil {
			return fmt.Errorf("select %s: %w", m.Pawn, err)
		}
		if err := s.ConfirmDestination(ctx, m.To); err != nil {
			return fmt.Errorf("move %s to %s: %w", m.Pawn, m.To, err)
		}
	}

	t.logger.Debug().
		Int("game", s.GameNumber()).
		Str("cause", s.Outcome().Cause()).
		Int("ply", s.Ply()).
		Msg("Game finished")
	return nil
}

// Run plays n games, starting a new one before each game after the first
// finished one, and returns the session's scoreboard
func (t *Trainer) Run(ctx context.Context, n int) (game.Scoreboard, error) {
	for i := 0; i < n; i++ {
		if t.session.Outcome().Terminal() {
			if err := t.session.NewGame(); err != nil {
				return t.session.Score(), err
			}
		}
		if err := t.PlayGame(ctx); err != nil {
			return t.session.Score(), err
		}

		if (i+1)%progressEvery == 0 {
			score := t.session.Score()
			t.logger.Info().
				Int("played", score.Played).
				Int("human_wins", score.HumanWins).
				Int("computer_wins", score.ComputerWins).
				Msg("Self-play progress")
		}
	}
	return t.session.Score(), nil
}
