package rules

import "github.com/mitchelldurbincs/Hexatron/internal/game/core"

// LegalMoveCalculator computes the highlight set for a selected pawn.
type LegalMoveCalculator struct{}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator() *LegalMoveCalculator {
	return &LegalMoveCalculator{}
}

// GetLegalDestinationMask returns one flag per board space, indexed by
// core.Space, set where pawn may move. Captured or invalid pawns get an
// all-false mask.
func (lmc *LegalMoveCalculator) GetLegalDestinationMask(board *core.Board, pawn core.PawnID) [core.Rows * core.Columns]bool {
	var mask [core.Rows * core.Columns]bool
	for _, s := range core.LegalDestinations(board, pawn) {
		mask[s] = true
	}
	return mask
}

// CountLegalMoves returns how many moves side has available.
func (lmc *LegalMoveCalculator) CountLegalMoves(board *core.Board, side core.Side) int {
	return len(core.LegalMoves(board, side))
}
