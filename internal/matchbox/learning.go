package matchbox

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Mode selects how the computer learns from a finished game.
type Mode string

const (
	// ModeFast removes the losing bead, so bad replies disappear quickly
	ModeFast Mode = "fast"
	// ModeSlow adds a copy of the winning bead, so good replies gain weight
	ModeSlow Mode = "slow"
)

// ParseMode accepts "fast" or "slow" in any case.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeFast, ModeSlow:
		return m, nil
	}
	return "", fmt.Errorf("unknown learning mode %q", s)
}

// Toggle flips between fast and slow.
func (m Mode) Toggle() Mode {
	if m == ModeFast {
		return ModeSlow
	}
	return ModeFast
}

// Result is how a game ended, seen from the human player.
type Result string

const (
	ResultWin  Result = "win"
	ResultLose Result = "lose"
)

// Action is the change applied to the pool of the last decision.
type Action string

const (
	ActionNone      Action = "none"
	ActionPrune     Action = "prune"
	ActionReinforce Action = "reinforce"
)

func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionNone, ActionPrune, ActionReinforce:
		return a, nil
	case "":
		return ActionNone, nil
	}
	return "", fmt.Errorf("unknown learning action %q", s)
}

// Binding maps a learning mode and game result to a pool action. Pairs that
// are not listed do nothing.
type Binding map[Mode]map[Result]Action

// DefaultBinding prunes the last bead when the human beats a fast learner and
// reinforces it when the human loses to a slow one.
func DefaultBinding() Binding {
	return Binding{
		ModeFast: {ResultWin: ActionPrune, ResultLose: ActionNone},
		ModeSlow: {ResultWin: ActionNone, ResultLose: ActionReinforce},
	}
}

func (b Binding) ActionFor(mode Mode, result Result) Action {
	if a, ok := b[mode][result]; ok {
		return a
	}
	return ActionNone
}

// UpdateResult describes what a learning step did to the library.
type UpdateResult struct {
	Index   int
	Token   Token
	Action  Action
	Before  Pool
	After   Pool
	Applied bool
}

// Updater applies the learning step at the end of a game.
type Updater struct {
	memory  *Memory
	binding Binding
	maxPool int
	logger  zerolog.Logger
}

// NewUpdater builds an updater. A nil binding uses DefaultBinding and a
// non-positive maxPool uses DefaultMaxPool.
func NewUpdater(memory *Memory, binding Binding, maxPool int, logger zerolog.Logger) *Updater {
	if binding == nil {
		binding = DefaultBinding()
	}
	if maxPool <= 0 {
		maxPool = DefaultMaxPool
	}
	return &Updater{
		memory:  memory,
		binding: binding,
		maxPool: maxPool,
		logger:  logger.With().Str("component", "Updater").Logger(),
	}
}

func (u *Updater) Binding() Binding { return u.binding }

// Apply changes the pool of the last decision according to the binding and
// persists the library. A token that cannot be pruned or a pool already at its
// cap leaves the library unchanged and is not an error.
func (u *Updater) Apply(ctx context.Context, mode Mode, result Result, last Decision) (UpdateResult, error) {
	res := UpdateResult{Index: last.Index, Token: last.Token, Action: u.binding.ActionFor(mode, result)}

	var fn func(Pool) (Pool, error)
	switch res.Action {
	case ActionPrune:
		fn = func(p Pool) (Pool, error) { return p.Prune(last.Token) }
	case ActionReinforce:
		fn = func(p Pool) (Pool, error) { return p.Reinforce(last.Token, u.maxPool) }
	default:
		u.logger.Debug().
			Str("mode", string(mode)).
			Str("result", string(result)).
			Msg("No learning for this outcome")
		return res, nil
	}

	before, after, err := u.memory.Update(ctx, last.Index, fn)
	res.Before, res.After = before, after
	if errors.Is(err, ErrTokenNotFound) || errors.Is(err, ErrPoolFull) {
		u.logger.Info().Err(err).Int("index", last.Index).Msg("Pool left unchanged")
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("%s pool %d: %w", res.Action, last.Index, err)
	}

	res.Applied = true
	u.logger.Info().
		Int("index", res.Index).
		Str("token", res.Token.String()).
		Str("action", string(res.Action)).
		Str("before", before.String()).
		Str("after", after.String()).
		Msg("Library updated")
	return res, nil
}
