package states

import "fmt"

// GamePhase is where a session is in the life of one game
type GamePhase int

const (
	// PhaseInitializing - board set up, nobody has moved
	PhaseInitializing GamePhase = iota

	// PhaseHumanTurn - waiting for the human to pick up a pawn
	PhaseHumanTurn

	// PhasePawnSelected - a pawn is held and its destinations are highlighted
	PhasePawnSelected

	// PhaseComputerTurn - the computer is choosing its reply
	PhaseComputerTurn

	// PhaseAwaitingLearning - game over, waiting for the user to allow or refuse the library update
	PhaseAwaitingLearning

	// PhaseEnded - outcome decided, learning settled
	PhaseEnded

	// PhaseReset - tearing down the finished board before a new game
	PhaseReset
)

func (p GamePhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseHumanTurn:
		return "HumanTurn"
	case PhasePawnSelected:
		return "PawnSelected"
	case PhaseComputerTurn:
		return "ComputerTurn"
	case PhaseAwaitingLearning:
		return "AwaitingLearning"
	case PhaseEnded:
		return "Ended"
	case PhaseReset:
		return "Reset"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal reports whether the game in this phase has an outcome
func (p GamePhase) IsTerminal() bool {
	return p == PhaseAwaitingLearning || p == PhaseEnded
}

// CanReceiveMoves reports whether the human may select or move a pawn
func (p GamePhase) CanReceiveMoves() bool {
	return p == PhaseHumanTurn || p == PhasePawnSelected
}

// AllowedTransitions returns the phases reachable from p
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseInitializing:
		return []GamePhase{PhaseHumanTurn}
	case PhaseHumanTurn:
		return []GamePhase{PhasePawnSelected, PhaseReset}
	case PhasePawnSelected:
		return []GamePhase{PhaseHumanTurn, PhaseComputerTurn, PhaseAwaitingLearning, PhaseEnded, PhaseReset}
	case PhaseComputerTurn:
		return []GamePhase{PhaseHumanTurn, PhaseAwaitingLearning, PhaseEnded, PhaseReset}
	case PhaseAwaitingLearning:
		return []GamePhase{PhaseEnded}
	case PhaseEnded:
		return []GamePhase{PhaseReset}
	case PhaseReset:
		return []GamePhase{PhaseInitializing}
	default:
		return []GamePhase{}
	}
}

func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a phase name back to a GamePhase
func ParsePhase(s string) (GamePhase, error) {
	for p := PhaseInitializing; p <= PhaseReset; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return PhaseInitializing, fmt.Errorf("unknown phase %q", s)
}
