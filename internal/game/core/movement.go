package core

// CaptureDetails describes the enemy pawn taken by a move.
type CaptureDetails struct {
	Captured PawnID
	Space    Space
	By       PawnID
}

// ApplyMoveAction validates and applies move to b. It returns the capture, if
// any; the board is untouched when an error is returned.
func ApplyMoveAction(b *Board, move *MoveAction) (*CaptureDetails, error) {
	kind, err := move.Validate(b)
	if err != nil {
		return nil, WrapActionError(move, err)
	}

	var details *CaptureDetails
	if kind == MoveCapture {
		victim, _ := b.PawnAt(move.To)
		b.Capture(victim)
		details = &CaptureDetails{Captured: victim, Space: move.To, By: move.Pawn}
	}
	b.Pawns[move.Pawn].Space = move.To
	return details, nil
}

// LegalDestinations lists every space pawn may move to, forward step first
// then captures left to right. Captured pawns have none.
func LegalDestinations(b *Board, pawn PawnID) []Space {
	if !pawn.Valid() || b.Pawns[pawn].Captured {
		return nil
	}
	side := pawn.Side()
	from := b.Pawns[pawn].Space

	var dests []Space
	if ahead := from.Offset(0, side.Forward()); ahead != NoSpace && !b.Occupied(ahead) {
		dests = append(dests, ahead)
	}
	for _, dc := range []int{-1, 1} {
		diag := from.Offset(dc, side.Forward())
		if diag != NoSpace && b.OccupiedBy(diag, side.Opponent()) {
			dests = append(dests, diag)
		}
	}
	return dests
}

// LegalMoves enumerates every legal move for side.
func LegalMoves(b *Board, side Side) []MoveAction {
	var moves []MoveAction
	for _, id := range b.LivePawns(side) {
		for _, to := range LegalDestinations(b, id) {
			moves = append(moves, MoveAction{Side: side, Pawn: id, To: to})
		}
	}
	return moves
}

// HasLegalMove reports whether any live pawn of side can move.
func HasLegalMove(b *Board, side Side) bool {
	for _, id := range b.LivePawns(side) {
		if len(LegalDestinations(b, id)) > 0 {
			return true
		}
	}
	return false
}
