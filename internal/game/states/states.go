package states

import (
	"errors"
	"time"
)

// InitializingState sets up the bookkeeping for a fresh board
type InitializingState struct{}

func NewInitializingState() State { return &InitializingState{} }

func (s *InitializingState) Phase() GamePhase { return PhaseInitializing }

func (s *InitializingState) Enter(ctx *GameContext) error {
	ctx.Ply = 0
	ctx.StartTime = time.Now()
	l := ctx.logger()
	l.Debug().Int("game_number", ctx.GameNumber).Msg("Board set up")
	return nil
}

func (s *InitializingState) Exit(ctx *GameContext) error { return nil }

func (s *InitializingState) Validate(ctx *GameContext) error {
	if ctx.GameID == "" {
		return errors.New("game needs an id")
	}
	return nil
}

// HumanTurnState waits for a pawn selection
type HumanTurnState struct{}

func NewHumanTurnState() State { return &HumanTurnState{} }

func (s *HumanTurnState) Phase() GamePhase { return PhaseHumanTurn }

func (s *HumanTurnState) Enter(ctx *GameContext) error {
	l := ctx.logger()
	l.Debug().Int("ply", ctx.Ply).Msg("Human to move")
	return nil
}

func (s *HumanTurnState) Exit(ctx *GameContext) error     { return nil }
func (s *HumanTurnState) Validate(ctx *GameContext) error { return nil }

// PawnSelectedState holds a pawn until a destination is confirmed or the
// selection is dropped
type PawnSelectedState struct{}

func NewPawnSelectedState() State { return &PawnSelectedState{} }

func (s *PawnSelectedState) Phase() GamePhase                { return PhasePawnSelected }
func (s *PawnSelectedState) Enter(ctx *GameContext) error    { return nil }
func (s *PawnSelectedState) Exit(ctx *GameContext) error     { return nil }
func (s *PawnSelectedState) Validate(ctx *GameContext) error { return nil }

// ComputerTurnState is entered after every non-final human move
type ComputerTurnState struct{}

func NewComputerTurnState() State { return &ComputerTurnState{} }

func (s *ComputerTurnState) Phase() GamePhase { return PhaseComputerTurn }

func (s *ComputerTurnState) Enter(ctx *GameContext) error {
	l := ctx.logger()
	l.Debug().Int("ply", ctx.Ply).Msg("Computer to move")
	return nil
}

func (s *ComputerTurnState) Exit(ctx *GameContext) error     { return nil }
func (s *ComputerTurnState) Validate(ctx *GameContext) error { return nil }

// AwaitingLearningState parks a finished game until the user decides whether
// the library may learn from it
type AwaitingLearningState struct{}

func NewAwaitingLearningState() State { return &AwaitingLearningState{} }

func (s *AwaitingLearningState) Phase() GamePhase { return PhaseAwaitingLearning }

func (s *AwaitingLearningState) Enter(ctx *GameContext) error {
	if ctx.EndTime.IsZero() {
		ctx.EndTime = time.Now()
	}
	l := ctx.logger()
	l.Info().Str("winner", ctx.Winner).Msg("Waiting for library update decision")
	return nil
}

func (s *AwaitingLearningState) Exit(ctx *GameContext) error { return nil }

func (s *AwaitingLearningState) Validate(ctx *GameContext) error {
	if ctx.Winner == "" {
		return errors.New("learning requires a finished game")
	}
	if !ctx.HasDecision {
		return errors.New("learning requires a computer decision")
	}
	return nil
}

// EndedState is a settled game
type EndedState struct{}

func NewEndedState() State { return &EndedState{} }

func (s *EndedState) Phase() GamePhase { return PhaseEnded }

func (s *EndedState) Enter(ctx *GameContext) error {
	if ctx.EndTime.IsZero() {
		ctx.EndTime = time.Now()
	}
	l := ctx.logger()
	l.Info().
		Str("winner", ctx.Winner).
		Int("ply", ctx.Ply).
		Dur("game_duration", ctx.Elapsed()).
		Msg("Game ended")
	return nil
}

func (s *EndedState) Exit(ctx *GameContext) error { return nil }

func (s *EndedState) Validate(ctx *GameContext) error {
	if ctx.Winner == "" {
		return errors.New("ended state requires a winner")
	}
	return nil
}

// ResetState clears the finished game
type ResetState struct{}

func NewResetState() State { return &ResetState{} }

func (s *ResetState) Phase() GamePhase { return PhaseReset }

func (s *ResetState) Enter(ctx *GameContext) error {
	l := ctx.logger()
	l.Debug().Msg("Resetting game")

	ctx.Ply = 0
	ctx.StartTime = time.Time{}
	ctx.EndTime = time.Time{}
	ctx.Winner = ""
	ctx.HasDecision = false
	return nil
}

func (s *ResetState) Exit(ctx *GameContext) error     { return nil }
func (s *ResetState) Validate(ctx *GameContext) error { return nil }
