package events

import (
	"time"

	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted         = "game.started"
	TypeGameEnded           = "game.ended"
	TypeSelectionChanged    = "selection.changed"
	TypeMoveExecuted        = "move.executed"
	TypeMoveRejected        = "move.rejected"
	TypePawnCaptured        = "pawn.captured"
	TypeComputerDecided     = "computer.decided"
	TypeComputerPassed      = "computer.passed"
	TypeLearningModeChanged = "learning.mode_changed"
	TypeLibraryUpdated      = "library.updated"
	TypeLibraryReset        = "library.reset"
	TypeStateTransition     = "state.transition"
)

// GameStartedEvent is published when a fresh board is set up
type GameStartedEvent struct {
	BaseEvent
	Number       int
	LearningMode string
}

func NewGameStartedEvent(gameID string, number int, mode string) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:    newBase(TypeGameStarted, gameID),
		Number:       number,
		LearningMode: mode,
	}
}

// GameEndedEvent is published once per game when an outcome is reached
type GameEndedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Winner   string
	Reason   string
	Cause    string
	Duration time.Duration
}

func NewGameEndedEvent(gameID string, winner core.Side, reason, cause string, ply int, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Metadata:  EventMetadata{Side: winner.String(), Ply: ply},
		Winner:    winner.String(),
		Reason:    reason,
		Cause:     cause,
		Duration:  duration,
	}
}

// SelectionChangedEvent is published when the human picks up or puts down a
// pawn. Pawn is core.NoPawn after a cancel.
type SelectionChangedEvent struct {
	BaseEvent
	Pawn         core.PawnID
	Destinations []core.Space
}

func NewSelectionChangedEvent(gameID string, pawn core.PawnID, destinations []core.Space) *SelectionChangedEvent {
	return &SelectionChangedEvent{
		BaseEvent:    newBase(TypeSelectionChanged, gameID),
		Pawn:         pawn,
		Destinations: destinations,
	}
}

// MoveExecutedEvent is published after a move has been applied to the board
type MoveExecutedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Pawn     core.PawnID
	From     core.Space
	To       core.Space
	Capture  bool
}

func NewMoveExecutedEvent(gameID string, side core.Side, ply int, pawn core.PawnID, from, to core.Space, capture bool) *MoveExecutedEvent {
	return &MoveExecutedEvent{
		BaseEvent: newBase(TypeMoveExecuted, gameID),
		Metadata:  EventMetadata{Side: side.String(), Ply: ply},
		Pawn:      pawn,
		From:      from,
		To:        to,
		Capture:   capture,
	}
}

// MoveRejectedEvent is published when a destination outside the legal set is
// confirmed
type MoveRejectedEvent struct {
	BaseEvent
	Pawn   core.PawnID
	To     core.Space
	Reason string
}

func NewMoveRejectedEvent(gameID string, pawn core.PawnID, to core.Space, reason string) *MoveRejectedEvent {
	return &MoveRejectedEvent{
		BaseEvent: newBase(TypeMoveRejected, gameID),
		Pawn:      pawn,
		To:        to,
		Reason:    reason,
	}
}

// PawnCapturedEvent is published for every capture
type PawnCapturedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Captured core.PawnID
	By       core.PawnID
	Space    core.Space
}

func NewPawnCapturedEvent(gameID string, ply int, captured, by core.PawnID, space core.Space) *PawnCapturedEvent {
	return &PawnCapturedEvent{
		BaseEvent: newBase(TypePawnCaptured, gameID),
		Metadata:  EventMetadata{Side: by.Side().String(), Ply: ply},
		Captured:  captured,
		By:        by,
		Space:     space,
	}
}

// ComputerDecidedEvent records which bead the computer drew
type ComputerDecidedEvent struct {
	BaseEvent
	Situation   int
	Orientation string
	Token       string
	Pawn        core.PawnID
	To          core.Space
}

func NewComputerDecidedEvent(gameID string, situation int, orientation, token string, pawn core.PawnID, to core.Space) *ComputerDecidedEvent {
	return &ComputerDecidedEvent{
		BaseEvent:   newBase(TypeComputerDecided, gameID),
		Situation:   situation,
		Orientation: orientation,
		Token:       token,
		Pawn:        pawn,
		To:          to,
	}
}

// ComputerPassedEvent is published when the computer has no move and loses
// by stalemate
type ComputerPassedEvent struct {
	BaseEvent
	Reason string
}

func NewComputerPassedEvent(gameID, reason string) *ComputerPassedEvent {
	return &ComputerPassedEvent{
		BaseEvent: newBase(TypeComputerPassed, gameID),
		Reason:    reason,
	}
}

// LearningModeChangedEvent is published when fast/slow learning is switched
type LearningModeChangedEvent struct {
	BaseEvent
	From string
	To   string
}

func NewLearningModeChangedEvent(gameID, from, to string) *LearningModeChangedEvent {
	return &LearningModeChangedEvent{
		BaseEvent: newBase(TypeLearningModeChanged, gameID),
		From:      from,
		To:        to,
	}
}

// LibraryUpdatedEvent is published after a learning step, applied or not
type LibraryUpdatedEvent struct {
	BaseEvent
	Situation int
	Token     string
	Action    string
	Before    string
	After     string
	Applied   bool
}

func NewLibraryUpdatedEvent(gameID string, situation int, token, action, before, after string, applied bool) *LibraryUpdatedEvent {
	return &LibraryUpdatedEvent{
		BaseEvent: newBase(TypeLibraryUpdated, gameID),
		Situation: situation,
		Token:     token,
		Action:    action,
		Before:    before,
		After:     after,
		Applied:   applied,
	}
}

// LibraryResetEvent is published when the library is replaced by its defaults
type LibraryResetEvent struct {
	BaseEvent
	Header string
}

func NewLibraryResetEvent(gameID, header string) *LibraryResetEvent {
	return &LibraryResetEvent{
		BaseEvent: newBase(TypeLibraryReset, gameID),
		Header:    header,
	}
}

// StateTransitionEvent is published when the game state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
