package rules

import (
	"fmt"

	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
	"github.com/rs/zerolog"
)

// Reason says why a game ended.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonAllCaptured
	ReasonReachedOtherSide
	ReasonStalemate
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonAllCaptured:
		return "all_captured"
	case ReasonReachedOtherSide:
		return "reached_other_side"
	case ReasonStalemate:
		return "stalemate"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Outcome is a terminal result. The zero value means the game goes on.
type Outcome struct {
	Winner core.Side
	Reason Reason
}

func (o Outcome) Terminal() bool   { return o.Reason != ReasonNone }
func (o Outcome) Loser() core.Side { return o.Winner.Opponent() }
func (o Outcome) HumanWon() bool   { return o.Terminal() && o.Winner == core.Human }

// Cause is the line shown to the player on the result screen.
func (o Outcome) Cause() string {
	switch o.Reason {
	case ReasonAllCaptured:
		return "all pawns captured"
	case ReasonReachedOtherSide:
		if o.Winner == core.Human {
			return "you reached other side"
		}
		return "AI reached other side"
	case ReasonStalemate:
		if o.Loser() == core.Computer {
			return "AI is in stalemate"
		}
		return "you are in stalemate"
	default:
		return ""
	}
}

// Stalemated is the outcome when side has no move on its turn.
func Stalemated(side core.Side) Outcome {
	return Outcome{Winner: side.Opponent(), Reason: ReasonStalemate}
}

// OutcomeDetector evaluates the board after every applied move.
type OutcomeDetector struct {
	logger zerolog.Logger
}

// NewOutcomeDetector creates a new outcome detector
func NewOutcomeDetector(logger zerolog.Logger) *OutcomeDetector {
	return &OutcomeDetector{
		logger: logger.With().Str("component", "OutcomeDetector").Logger(),
	}
}

// Evaluate checks the position after mover's move, first match wins:
// opponent wiped out, mover on the opponent's home row, then the opponent
// (who moves next) having no legal move.
func (od *OutcomeDetector) Evaluate(board *core.Board, mover core.Side) Outcome {
	opponent := mover.Opponent()

	var outcome Outcome
	switch {
	case board.LiveCount(opponent) == 0:
		outcome = Outcome{Winner: mover, Reason: ReasonAllCaptured}
	case reachedRow(board, mover, opponent.HomeRow()):
		outcome = Outcome{Winner: mover, Reason: ReasonReachedOtherSide}
	case !core.HasLegalMove(board, opponent):
		outcome = Stalemated(opponent)
	}

	if outcome.Terminal() {
		od.logger.Info().
			Str("winner", outcome.Winner.String()).
			Str("reason", outcome.Reason.String()).
			Str("layout", board.Layout()).
			Msg("Terminal position reached")
	} else {
		od.logger.Debug().Str("mover", mover.String()).Msg("Game continues")
	}
	return outcome
}

func reachedRow(board *core.Board, side core.Side, row int) bool {
	for _, s := range board.Occupancy(side) {
		if s.Row() == row {
			return true
		}
	}
	return false
}
