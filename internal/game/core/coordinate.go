package core

import (
	"fmt"
	"strings"
)

const (
	Columns = 3
	Rows    = 3
)

// Space is one of the nine board cells. Column a..c maps to 0..2 and row
// 1..3 maps to 0..2, stored row-major so a1 is 0 and c3 is 8.
type Space int

const (
	A1 Space = iota
	B1
	C1
	A2
	B2
	C2
	A3
	B3
	C3
)

// NoSpace marks the absence of a space.
const NoSpace Space = -1

// AllSpaces lists the spaces bottom row first.
var AllSpaces = []Space{A1, B1, C1, A2, B2, C2, A3, B3, C3}

// SpaceAt returns the space at the given column and row index, or NoSpace.
func SpaceAt(col, row int) Space {
	if col < 0 || col >= Columns || row < 0 || row >= Rows {
		return NoSpace
	}
	return Space(row*Columns + col)
}

// ParseSpace accepts labels such as "a1" or "C3".
func ParseSpace(label string) (Space, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if len(label) != 2 {
		return NoSpace, fmt.Errorf("%q: %w", label, ErrInvalidSpace)
	}
	s := SpaceAt(int(label[0]-'a'), int(label[1]-'1'))
	if s == NoSpace {
		return NoSpace, fmt.Errorf("%q: %w", label, ErrInvalidSpace)
	}
	return s, nil
}

func (s Space) Valid() bool { return s >= A1 && s <= C3 }
func (s Space) Col() int    { return int(s) % Columns }
func (s Space) Row() int    { return int(s) / Columns }

// Offset returns the space dc columns and dr rows away, or NoSpace.
func (s Space) Offset(dc, dr int) Space {
	if !s.Valid() {
		return NoSpace
	}
	return SpaceAt(s.Col()+dc, s.Row()+dr)
}

// Mirror reflects the space about the centre column.
func (s Space) Mirror() Space {
	if !s.Valid() {
		return NoSpace
	}
	return SpaceAt(Columns-1-s.Col(), s.Row())
}

func (s Space) String() string {
	if !s.Valid() {
		return "--"
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col(), s.Row()+1)
}
