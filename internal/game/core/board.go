package core

import (
	"fmt"
	"sort"
	"strings"
)

// Side identifies who owns a pawn.
type Side int

const (
	Human Side = iota
	Computer
)

func (s Side) Opponent() Side {
	if s == Human {
		return Computer
	}
	return Human
}

// Forward is the row step a pawn of this side takes when advancing.
func (s Side) Forward() int {
	if s == Human {
		return 1
	}
	return -1
}

// HomeRow is the row index this side starts on.
func (s Side) HomeRow() int {
	if s == Human {
		return 0
	}
	return Rows - 1
}

func (s Side) String() string {
	switch s {
	case Human:
		return "human"
	case Computer:
		return "computer"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// PawnID identifies one of the six pawns. Identities are stable for the whole
// game, captured or not.
type PawnID int

const (
	PawnH1 PawnID = iota
	PawnH2
	PawnH3
	PawnC1
	PawnC2
	PawnC3
)

const (
	NoPawn       PawnID = -1
	PawnsPerSide        = 3
	pawnCount           = 2 * PawnsPerSide
)

// PawnOf returns the pawn with the given 1-based number on side.
func PawnOf(side Side, number int) PawnID {
	if number < 1 || number > PawnsPerSide {
		return NoPawn
	}
	return PawnID(int(side)*PawnsPerSide + number - 1)
}

// ParsePawn accepts labels such as "H2" or "c1".
func ParsePawn(label string) (PawnID, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if len(label) != 2 {
		return NoPawn, fmt.Errorf("%q: %w", label, ErrInvalidPawn)
	}
	var side Side
	switch label[0] {
	case 'H':
		side = Human
	case 'C':
		side = Computer
	default:
		return NoPawn, fmt.Errorf("%q: %w", label, ErrInvalidPawn)
	}
	id := PawnOf(side, int(label[1]-'0'))
	if id == NoPawn {
		return NoPawn, fmt.Errorf("%q: %w", label, ErrInvalidPawn)
	}
	return id, nil
}

func (p PawnID) Valid() bool { return p >= PawnH1 && p <= PawnC3 }
func (p PawnID) Side() Side  { return Side(int(p) / PawnsPerSide) }
func (p PawnID) Number() int { return int(p)%PawnsPerSide + 1 }

// Mirror swaps the outer pawns of a side (1 <-> 3), matching Space.Mirror.
func (p PawnID) Mirror() PawnID {
	if !p.Valid() {
		return NoPawn
	}
	return PawnOf(p.Side(), PawnsPerSide+1-p.Number())
}

func (p PawnID) String() string {
	if !p.Valid() {
		return "--"
	}
	prefix := "H"
	if p.Side() == Computer {
		prefix = "C"
	}
	return fmt.Sprintf("%s%d", prefix, p.Number())
}

// Pawn is the record kept for every pawn. A captured pawn keeps the space it
// was taken on so the capture stays inspectable.
type Pawn struct {
	ID       PawnID
	Space    Space
	Captured bool
}

// Board holds the six pawn records. Occupancy views are derived on demand
// and never include captured pawns.
type Board struct {
	Pawns [pawnCount]Pawn
}

// NewBoard returns the starting layout: humans on row 1, computer on row 3.
func NewBoard() *Board {
	b := &Board{}
	for i := 0; i < PawnsPerSide; i++ {
		b.Pawns[PawnH1+PawnID(i)] = Pawn{ID: PawnH1 + PawnID(i), Space: SpaceAt(i, Human.HomeRow())}
		b.Pawns[PawnC1+PawnID(i)] = Pawn{ID: PawnC1 + PawnID(i), Space: SpaceAt(i, Computer.HomeRow())}
	}
	return b
}

// ParseLayout builds a board from a diagram listing rows 3, 2 and 1 separated
// by '/', e.g. "C1 C2 C3 / . . . / H1 H2 H3". Pawns absent from the diagram
// are recorded as captured.
func ParseLayout(diagram string) (*Board, error) {
	rows := strings.Split(diagram, "/")
	if len(rows) != Rows {
		return nil, fmt.Errorf("layout needs %d rows, got %d", Rows, len(rows))
	}
	b := &Board{}
	for i := range b.Pawns {
		b.Pawns[i] = Pawn{ID: PawnID(i), Space: NoSpace, Captured: true}
	}
	for i, row := range rows {
		cells := strings.Fields(row)
		if len(cells) != Columns {
			return nil, fmt.Errorf("layout row %d needs %d cells, got %d", Rows-i, Columns, len(cells))
		}
		for col, cell := range cells {
			if cell == "." {
				continue
			}
			id, err := ParsePawn(cell)
			if err != nil {
				return nil, err
			}
			if !b.Pawns[id].Captured {
				return nil, fmt.Errorf("pawn %s placed twice", id)
			}
			b.Pawns[id] = Pawn{ID: id, Space: SpaceAt(col, Rows-1-i)}
		}
	}
	return b, nil
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

func (b *Board) Pawn(id PawnID) Pawn { return b.Pawns[id] }

// PawnAt returns the live pawn standing on s.
func (b *Board) PawnAt(s Space) (PawnID, bool) {
	for _, p := range b.Pawns {
		if !p.Captured && p.Space == s {
			return p.ID, true
		}
	}
	return NoPawn, false
}

func (b *Board) Occupied(s Space) bool {
	_, ok := b.PawnAt(s)
	return ok
}

// OccupiedBy reports whether a live pawn of side stands on s.
func (b *Board) OccupiedBy(s Space, side Side) bool {
	id, ok := b.PawnAt(s)
	return ok && id.Side() == side
}

// Occupancy lists the spaces held by side's live pawns in ascending order.
func (b *Board) Occupancy(side Side) []Space {
	var spaces []Space
	for _, id := range b.LivePawns(side) {
		spaces = append(spaces, b.Pawns[id].Space)
	}
	sort.Slice(spaces, func(i, j int) bool { return spaces[i] < spaces[j] })
	return spaces
}

// LivePawns lists side's uncaptured pawns in identity order.
func (b *Board) LivePawns(side Side) []PawnID {
	var ids []PawnID
	for n := 1; n <= PawnsPerSide; n++ {
		id := PawnOf(side, n)
		if !b.Pawns[id].Captured {
			ids = append(ids, id)
		}
	}
	return ids
}

func (b *Board) LiveCount(side Side) int { return len(b.LivePawns(side)) }

// Capture marks id captured. Capturing twice is a no-op.
func (b *Board) Capture(id PawnID) bool {
	if b.Pawns[id].Captured {
		return false
	}
	b.Pawns[id].Captured = true
	return true
}

// Layout renders the board in the ParseLayout diagram format.
func (b *Board) Layout() string {
	rows := make([]string, 0, Rows)
	for r := Rows - 1; r >= 0; r-- {
		cells := make([]string, 0, Columns)
		for c := 0; c < Columns; c++ {
			if id, ok := b.PawnAt(SpaceAt(c, r)); ok {
				cells = append(cells, id.String())
			} else {
				cells = append(cells, ".")
			}
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return strings.Join(rows, " / ")
}
