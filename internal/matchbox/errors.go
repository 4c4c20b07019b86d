package matchbox

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSituation is returned when a board matches no entry of the situation table
	ErrNoSituation = errors.New("no situation matches board")
	// ErrEmptyPool is returned when the pool for a decision point has no tokens left
	ErrEmptyPool = errors.New("pool is empty")
	// ErrUnresolvableToken is returned when no candidate for a token is legal on the board
	ErrUnresolvableToken = errors.New("token has no legal candidate")
	// ErrUnknownToken is returned when a token has no entry in a situation's reply table
	ErrUnknownToken = errors.New("token not in reply table")
	// ErrMalformedLibrary is returned when a library file cannot be parsed
	ErrMalformedLibrary = errors.New("malformed pattern library")
	// ErrTokenNotFound is returned when pruning a token the pool does not hold
	ErrTokenNotFound = errors.New("token not found in pool")
	// ErrPoolFull is returned when reinforcing a pool already at its cap
	ErrPoolFull = errors.New("pool is at capacity")
	// ErrIndexOutOfRange is returned for decision-point indices outside the library
	ErrIndexOutOfRange = errors.New("decision point index out of range")
)

// FallbackError reports that the stored library could not be used and the
// default library was loaded in its place. The game can continue.
type FallbackError struct {
	Path string
	Err  error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("library %s unusable, using default: %v", e.Path, e.Err)
}

func (e *FallbackError) Unwrap() error { return e.Err }
