package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/Hexatron/internal/game/events"
)

// State is one phase's lifecycle callbacks
type State interface {
	Phase() GamePhase

	// Enter is called when transitioning into this state
	Enter(ctx *GameContext) error

	// Exit is called when transitioning out of this state
	Exit(ctx *GameContext) error

	// Validate checks that the context allows entering this state
	Validate(ctx *GameContext) error
}

// Transition is one entry of the machine's history
type Transition struct {
	From      GamePhase
	To        GamePhase
	Timestamp time.Time
	Reason    string
}

// StateMachine moves a game through its phases and keeps a bounded history
type StateMachine struct {
	mu             sync.RWMutex
	currentPhase   GamePhase
	states         map[GamePhase]State
	context        *GameContext
	history        []Transition
	maxHistorySize int
	publisher      events.Publisher
}

// NewStateMachine creates a machine in PhaseInitializing. The publisher may be
// nil.
func NewStateMachine(ctx *GameContext, publisher events.Publisher) *StateMachine {
	sm := &StateMachine{
		currentPhase:   PhaseInitializing,
		states:         make(map[GamePhase]State),
		context:        ctx,
		history:        make([]Transition, 0, 32),
		maxHistorySize: 256,
		publisher:      publisher,
	}

	sm.RegisterState(NewInitializingState())
	sm.RegisterState(NewHumanTurnState())
	sm.RegisterState(NewPawnSelectedState())
	sm.RegisterState(NewComputerTurnState())
	sm.RegisterState(NewAwaitingLearningState())
	sm.RegisterState(NewEndedState())
	sm.RegisterState(NewResetState())

	return sm
}

// RegisterState installs or replaces the implementation for a phase
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[state.Phase()] = state
}

func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase
}

// TransitionTo moves to targetPhase if the edge exists and the target state
// validates. A failed Enter rolls the phase back.
func (sm *StateMachine) TransitionTo(targetPhase GamePhase, reason string) error {
	sm.mu.Lock()
	tr, err := sm.transitionLocked(targetPhase, reason)
	sm.mu.Unlock()
	if err != nil {
		return err
	}

	// Published outside the lock so subscribers may query the machine.
	if sm.publisher != nil {
		sm.publisher.Publish(events.NewStateTransitionEvent(
			sm.context.GameID,
			tr.From.String(),
			tr.To.String(),
			reason,
		))
	}
	return nil
}

func (sm *StateMachine) transitionLocked(targetPhase GamePhase, reason string) (Transition, error) {
	if !sm.currentPhase.CanTransitionTo(targetPhase) {
		return Transition{}, fmt.Errorf("invalid transition from %s to %s", sm.currentPhase, targetPhase)
	}

	currentState, hasCurrentState := sm.states[sm.currentPhase]
	targetState, hasTargetState := sm.states[targetPhase]
	if !hasTargetState {
		return Transition{}, fmt.Errorf("no state implementation for phase %s", targetPhase)
	}
	if err := targetState.Validate(sm.context); err != nil {
		return Transition{}, fmt.Errorf("target state validation failed: %w", err)
	}

	if hasCurrentState {
		if err := currentState.Exit(sm.context); err != nil {
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", sm.currentPhase.String()).
				Str("to_phase", targetPhase.String()).
				Msg("Error exiting state")
		}
	}

	previousPhase := sm.currentPhase
	sm.currentPhase = targetPhase
	if err := targetState.Enter(sm.context); err != nil {
		sm.currentPhase = previousPhase
		return Transition{}, fmt.Errorf("failed to enter state %s: %w", targetPhase, err)
	}

	tr := Transition{
		From:      previousPhase,
		To:        targetPhase,
		Timestamp: time.Now(),
		Reason:    reason,
	}
	sm.addToHistory(tr)

	sm.context.Logger.Debug().
		Str("game_id", sm.context.GameID).
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Str("reason", reason).
		Msg("State transition completed")
	return tr, nil
}

func (sm *StateMachine) addToHistory(transition Transition) {
	sm.history = append(sm.history, transition)
	if len(sm.history) > sm.maxHistorySize {
		sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
	}
}

// GetHistory returns a copy of the transition history
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

func (sm *StateMachine) GetContext() *GameContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.context
}

func (sm *StateMachine) CanTransitionTo(targetPhase GamePhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase.CanTransitionTo(targetPhase)
}
