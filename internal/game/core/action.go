package core

// MoveKind tells a forward step from a diagonal capture.
type MoveKind int

const (
	MoveForward MoveKind = iota
	MoveCapture
)

func (k MoveKind) String() string {
	if k == MoveCapture {
		return "capture"
	}
	return "forward"
}

// MoveAction moves one pawn a single row forward, either straight into an
// empty space or diagonally onto an uncaptured enemy pawn.
type MoveAction struct {
	Side Side
	Pawn PawnID
	To   Space
}

// Validate checks the move against b and reports which kind it is.
func (m *MoveAction) Validate(b *Board) (MoveKind, error) {
	if !m.Pawn.Valid() {
		return 0, ErrInvalidPawn
	}
	if !m.To.Valid() {
		return 0, ErrInvalidSpace
	}
	if m.Pawn.Side() != m.Side {
		return 0, ErrNotYourPawn
	}
	p := b.Pawns[m.Pawn]
	if p.Captured {
		return 0, ErrPawnCaptured
	}

	ahead := p.Space.Offset(0, m.Side.Forward())
	if m.To == ahead && !b.Occupied(m.To) {
		return MoveForward, nil
	}
	for _, dc := range []int{-1, 1} {
		if m.To == p.Space.Offset(dc, m.Side.Forward()) && b.OccupiedBy(m.To, m.Side.Opponent()) {
			return MoveCapture, nil
		}
	}
	return 0, ErrIllegalMove
}
