package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSpace       = errors.New("invalid space")
	ErrInvalidPawn        = errors.New("invalid pawn")
	ErrNotYourPawn        = errors.New("pawn not owned by side")
	ErrPawnCaptured       = errors.New("pawn is captured")
	ErrIllegalMove        = errors.New("destination is not a legal target")
	ErrGameOver           = errors.New("game is over")
	ErrNotYourTurn        = errors.New("not this side's turn")
	ErrIllegalDestination = errors.New("destination not in legal set")
)

// ActionError attaches the offending move to an underlying error.
type ActionError struct {
	Move *MoveAction
	Err  error
}

func (e *ActionError) Error() string {
	if e.Move == nil {
		return fmt.Sprintf("pawn action: %v", e.Err)
	}
	return fmt.Sprintf("%s: move %s to %s: %v", e.Move.Side, e.Move.Pawn, e.Move.To, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// WrapActionError returns nil for a nil err.
func WrapActionError(move *MoveAction, err error) error {
	if err == nil {
		return nil
	}
	return &ActionError{Move: move, Err: err}
}
