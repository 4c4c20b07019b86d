package matchbox

import (
	"fmt"

	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
)

// Token is one bead in a pool. Each token names a candidate reply in the
// situation the pool belongs to.
type Token byte

const (
	TokenGreen  Token = 'G'
	TokenBlue   Token = 'B'
	TokenPurple Token = 'P'
	TokenRed    Token = 'R'
)

// Valid reports whether t is part of the token alphabet.
func (t Token) Valid() bool {
	switch t {
	case TokenGreen, TokenBlue, TokenPurple, TokenRed:
		return true
	}
	return false
}

func (t Token) String() string { return string(rune(t)) }

// Orientation says whether a situation matched as written or reflected about
// column b.
type Orientation int

const (
	Straight Orientation = iota
	Mirror
)

func (o Orientation) String() string {
	switch o {
	case Straight:
		return "straight"
	case Mirror:
		return "mirror"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// Pattern is a partial board description. Every listed space must hold a live
// pawn of the named side and every listed pawn must be captured; anything not
// listed is unconstrained.
type Pattern struct {
	Human    []core.Space
	Computer []core.Space
	Captured []core.PawnID
}

// Matches reports whether the board satisfies every constraint of p.
func (p Pattern) Matches(b *core.Board) bool {
	for _, s := range p.Human {
		if !b.OccupiedBy(s, core.Human) {
			return false
		}
	}
	for _, s := range p.Computer {
		if !b.OccupiedBy(s, core.Computer) {
			return false
		}
	}
	for _, id := range p.Captured {
		if !b.Pawn(id).Captured {
			return false
		}
	}
	return true
}

// Reflect mirrors the pattern about column b: spaces a<->c, pawns 1<->3.
func (p Pattern) Reflect() Pattern {
	out := Pattern{
		Human:    make([]core.Space, len(p.Human)),
		Computer: make([]core.Space, len(p.Computer)),
		Captured: make([]core.PawnID, len(p.Captured)),
	}
	for i, s := range p.Human {
		out.Human[i] = s.Mirror()
	}
	for i, s := range p.Computer {
		out.Computer[i] = s.Mirror()
	}
	for i, id := range p.Captured {
		out.Captured[i] = id.Mirror()
	}
	return out
}

// Candidate is one concrete computer move a token may stand for.
type Candidate struct {
	Pawn core.PawnID
	To   core.Space
}

func (c Candidate) reflect() Candidate {
	return Candidate{Pawn: c.Pawn.Mirror(), To: c.To.Mirror()}
}

// Reply binds a token to its candidates. The first candidate that is legal on
// the board is played.
type Reply struct {
	Token      Token
	Candidates []Candidate
}

// Situation is one decision point of the computer. Replies are listed in the
// order the default library seeds its pool.
type Situation struct {
	Index    int
	Label    string
	Patterns []Pattern
	Mirrored bool
	Replies  []Reply
}

// PatternsFor returns the patterns to test in the given orientation. A
// situation without mirror patterns has none in Mirror orientation.
func (s *Situation) PatternsFor(o Orientation) []Pattern {
	if o == Straight {
		return s.Patterns
	}
	if !s.Mirrored {
		return nil
	}
	out := make([]Pattern, len(s.Patterns))
	for i, p := range s.Patterns {
		out[i] = p.Reflect()
	}
	return out
}

// CandidatesFor looks up the candidates for tok in the given orientation.
func (s *Situation) CandidatesFor(o Orientation, tok Token) ([]Candidate, bool) {
	for _, r := range s.Replies {
		if r.Token != tok {
			continue
		}
		if o == Straight {
			return r.Candidates, true
		}
		out := make([]Candidate, len(r.Candidates))
		for i, c := range r.Candidates {
			out[i] = c.reflect()
		}
		return out, true
	}
	return nil, false
}

// DefaultPool is the pool the factory library holds for this situation: one
// token per reply, in table order.
func (s *Situation) DefaultPool() Pool {
	p := make(Pool, 0, len(s.Replies))
	for _, r := range s.Replies {
		p = append(p, r.Token)
	}
	return p
}

func spaces(s ...core.Space) []core.Space  { return s }
func pawns(p ...core.PawnID) []core.PawnID { return p }

// Situations returns the decision table in evaluation order. Entries are
// indexed 0..DecisionPoints-1 and the index doubles as the library line.
//
// Entries 12, 17, 21 and 23 never match a board reachable from the starting
// layout; they are kept so library line numbers stay stable.
func Situations() []Situation {
	return []Situation{
		{
			Index: 0,
			Label: "ply 2, case 1",
			Patterns: []Pattern{
				{Human: spaces(core.B1, core.C1, core.A2)},
			},
			Mirrored: true,
			Replies: []Reply{
				{Token: TokenGreen, Candidates: []Candidate{{core.PawnC2, core.A2}}},
				{Token: TokenBlue, Candidates: []Candidate{{core.PawnC2, core.B2}}},
				{Token: TokenPurple, Candidates: []Candidate{{core.PawnC3, core.C2}}},
			},
		},
		{
			Index: 1,
			Label: "ply 2, case 2",
			Patterns: []Pattern{
				{Human: spaces(core.A1, core.C1, core.B2)},
			},
			Replies: []Reply{
				{Token: TokenGreen, Candidates: []Candidate{{core.PawnC1, core.A2}}},
				{Token: TokenBlue, Candidates: []Candidate{{core.PawnC1, core.B2}}},
			},
		},
		{
			Index: 2,
			Label: "ply 4, case 1",
			Patterns: []Pattern{
				{Human: spaces(core.A1, core.B2, core.C2), Computer: spaces(core.A2, core.B3, core.C3)},
			},
			Replies: []Reply{
				{Token: TokenPurple, Candidates: []Candidate{{core.PawnC2, core.C2}}},
				{Token: TokenGreen, Candidates: []Candidate{{core.PawnC3, core.B2}}},
			},
		},
		{
			Index: 3,
			Label: "ply 4, case 2",
			Patterns: []Pattern{
				{Human: spaces(core.A1, core.C2), Computer: spaces(core.B2, core.B3, core.C3), Captured: pawns(core.PawnH2)},
			},
			Mirrored: true,
			Replies: []Reply{
				{Token: TokenGreen, Candidates: []Candidate{{core.PawnC2, core.C2}}},
				{Token: TokenBlue, Candidates: []Candidate{{core.PawnC1, core.A1}}},
				{Token: TokenPurple, Candidates: []Candidate{{core.PawnC1, core.B1}}},
			},
		},
		{
			Index: 4,
			Label: "ply 4, case 3",
			Patterns: []Pattern{
				{Human: spaces(core.C1, core.A2, core.C2), Computer: spaces(core.A3, core.B3), Captured: pawns(core.PawnC3)},
			},
			Mirrored: true,
			Replies: []Reply{
				{Token: TokenPurple, Candidates: []Candidate{{core.PawnC2, core.A2}}},
				{Token: TokenGreen, Candidates: []Candidate{{core.PawnC2, core.B2}}},
				{Token: TokenBlue, Candidates: []Candidate{{core.PawnC2, core.C2}}},
			},
		},
		{
			Index: 5,
			Label: "ply 4, case 4",
			Patterns: []Pattern{
				{Human: spaces(core.C1, core.A2), Computer: spaces(core.A3, core.C3), Captured: pawns(core.PawnC2)},
			},
			Mirrored: true,
			Replies: []Reply{
				{Token: TokenRed, Candidates: []Candidate{{core.PawnC3, core.C2}}},
			},
		},
		{
			Index: 6,
			Label: "ply 4, case 5",
			Patterns: []Pattern{
				{Human: spaces(core.C1, core.A2, core.B2), Computer: spaces(core.C2, core.A3, core.B3)},
			},
			Replies: []Reply{
				{Token: TokenBlue, Candidates: []Candidate{{core.PawnC2, core.A2}}},
				{Token: TokenPurple, Candidates: []Candidate{{core.PawnC1, core.B2}}},
			},
		},
		{
			Index: 7,
			Label: "ply 4, case 6",
			Patterns: []Pattern{
				{Human: spaces(core.B1, core.A2, core.B2), Computer: spaces(core.A3, core.C3)},
			},
			Mirrored: true,
			Replies: []Reply{
				{Token: TokenBlue, Candidates: []Candidate{{core.PawnC1, core.B2}}},
				{Token: TokenGreen, Candidates: []Candidate{{core.PawnC3, core.B2}}},
				{Token: TokenPurple, Candidates: []Candidate{{core.PawnC3, core.C2}}},
			},
		},
		{
			Index: 8,
			Label: "ply 4, case 7",
			Patterns: []Pattern{
				{Human: spaces(core.C1, core.A2), Computer: spaces(core.B2, core.B3, core.C3), Captured: pawns(core.PawnH2)},
			},
			Mirrored: true,
			Replies: []Reply{
				{Token: TokenBlue, Candidates: []Candidate{{core.PawnC1, core.B1}}},
				{Token: TokenRed, Candidates: []Candidate{{core.PawnC1, core.C1}}},
				{Token: TokenPurple, Candidates: []Candidate{{core.PawnC2, core.A2}}},
				{Token: TokenGreen, Candidates: []Candidate{{core.PawnC3, core.C2}}},
			},
		},
		{
			Index: 9,
			Label: "ply 4, case 8",
			Patterns: []Pattern{
				{Human: spaces(core.C1, core.B2), Computer: spaces(core.B3, core.C3), Captured: pawns(core.PawnC1)},
				{Human: spaces(core.A1, core.B2), Computer: spaces(core.B3, core.C3), Captured: pawns(core.PawnC1)},
			},
			Mirrored: true,
			Replies: []Reply{
				{Token: TokenPurple, Candidates: []Candidate{{core.PawnC3, core.B2}}},
				{Token: TokenGreen, Candidates: []Candidate{{core.PawnC3, core.C2}}},
			},
		},
		{
			Index: 10,
			Label: "ply 4, case 9",
			Patterns: []Pattern{
				{Human: spaces(core.C1, core.B2), Computer: spaces(core.A2, core.A3, core.C3), Captured: pawns(core.PawnH1)},
			},
			Mirrored: true,
			Replies: []Reply{
				{Token: TokenRed, Candidates: []Candidate{{core.PawnC2, core.A1}}},
				{Token: TokenGreen, Candidates: []Candidate{{core.PawnC1, core.B2}}},
				{Token: TokenBlue, Candidates: []Candidate{{core.PawnC3, core.B2}}},
				{Token: TokenPurple, Candidates: []Candidate{{core.PawnC3, core.C2}}},
			},
		},
		{
			Index: 11,
			Label: "ply 4, case 10",
			Patterns: []Pattern{
				{Human: spaces(core.B1, core.C2), Computer: spaces(core.A2, core.A3, core.C3), Captured: pawns(core.PawnH1)},
			},
			Mirrored: true,
			Replies: []Reply{
				{Token: TokenGreen, Candidates: []Candidate{{core.PawnC2, core.A1}}},
				{Token: TokenBlue, Candidates: []Candidate{{core.PawnC2, core.B1}}},
			},
		},
		{
			Index: 12,
			Label: "ply 4, case 11",
			Patterns: []Pattern{
				{Human: spaces(core.A1, core.B2), Computer: spaces(core.B3, core.C3), Captured: pawns(core.PawnC1, core.PawnH2)},
			},
			Mirrored: true,
			Replies: []Reply{
				{Token: TokenRed, Candidates: []Candidate{{core.PawnC3, core.B2}}},
				{Token: TokenPurple, Candidates: []Candidate{{core.PawnC3, core.C2}}},
			},
		},
		{
			Index: 13,
			Label: "ply 6, case 1",
			Patterns: []Pattern{
				{Human: spaces(core.B2, core.C2), Computer: spaces(core.A2, core.B3)},
			},
			Mirrored: true,
			Replies: []Reply{
				{Token: TokenRed, Candidates: []Candidate{{core.PawnC2, core.C2}}},
				{Token: TokenPurple, Candidates: []Candidate{{core.PawnC1, core.A1}}},
			},
		},
		{
			Index: 14,
			Label: "ply 6, case 2",
			Patterns: []Pattern{
				{Human: spaces(core.B2), Computer: spaces(core.A2, core.A3)},
			},
			Replies: []Reply{
				{Token: TokenPurple, Candidates: []Candidate{{core.PawnC1, core.B2}}},
				{Token: TokenRed, Candidates: []Candidate{{core.PawnC2, core.A1}}},
			},
		},
		{
			Index: 15,
			Label: "ply 6, case 3",
			Patterns: []Pattern{
				{Human: spaces(core.C2), Computer: spaces(core.A2, core.B2, core.A3)},
			},
			Mirrored: true,
			Replies: []Reply{
				{Token: TokenBlue, Candidates: []Candidate{{core.PawnC2, core.A1}}},
				{Token: TokenPurple, Candidates: []Candidate{{core.PawnC3, core.B1}}},
			},
		},
		{
			Index: 16,
			Label: "ply 6, case 4",
			Patterns: []Pattern{
				{Human: spaces(core.A2, core.B2, core.C2), Computer: spaces(core.A3), Captured: pawns(core.PawnC2, core.PawnC3)},
			},
			Mirrored: true,
			Replies: []Reply{
				{Token: TokenBlue, Candidates: []Candidate{{core.PawnC1, core.B2}}},
			},
		},
		{
			Index: 17,
			Label: "ply 6, case 5",
			Patterns: []Pattern{
				{Human: spaces(core.A2), Computer: spaces(core.B2, core.C2, core.C3)},
			},
			Mirrored: true,
			Replies: []Reply{
				{Token: TokenRed, Candidates: []Candidate{{core.PawnC1, core.B1}}},
				{Token: TokenGreen, Candidates: []Candidate{{core.PawnC2, core.C1}}},
			},
		},
		{
			Index: 18,
			Label: "ply 6, case 6",
			Patterns: []Pattern{
				{Human: spaces(core.A2), Computer: spaces(core.B2, core.B3), Captured: pawns(core.PawnH3)},
			},
			Mirrored: true,
			Replies: []Reply{
				{Token: TokenGreen, Candidates: []Candidate{{core.PawnC2, core.A2}}},
				{Token: TokenPurple, Candidates: []Candidate{{core.PawnC1, core.B1}, {core.PawnC3, core.B1}}},
			},
		},
		{
			Index: 19,
			Label: "ply 6, case 7",
			Patterns: []Pattern{
				{Human: spaces(core.B2), Computer: spaces(core.A2, core.C3)},
			},
			Mirrored: true,
			Replies: []Reply{
				{Token: TokenPurple, Candidates: []Candidate{{core.PawnC1, core.A1}, {core.PawnC2, core.A1}}},
				{Token: TokenRed, Candidates: []Candidate{{core.PawnC3, core.B2}}},
				{Token: TokenGreen, Candidates: []Candidate{{core.PawnC3, core.C2}}},
			},
		},
		{
			Index: 20,
			Label: "ply 6, case 8",
			Patterns: []Pattern{
				{Human: spaces(core.B2), Computer: spaces(core.C2, core.C3)},
			},
			Replies: []Reply{
				{Token: TokenGreen, Candidates: []Candidate{{core.PawnC3, core.B2}}},
				{Token: TokenBlue, Candidates: []Candidate{{core.PawnC2, core.C1}}},
			},
		},
		{
			Index: 21,
			Label: "ply 6, case 9",
			Patterns: []Pattern{
				{Human: spaces(core.A2, core.B2), Computer: spaces(core.C2, core.B3), Captured: pawns(core.PawnC1)},
			},
			Mirrored: true,
			Replies: []Reply{
				{Token: TokenRed, Candidates: []Candidate{{core.PawnC2, core.A2}}},
				{Token: TokenPurple, Candidates: []Candidate{{core.PawnC3, core.C1}}},
			},
		},
		{
			Index: 22,
			Label: "ply 6, case 10",
			Patterns: []Pattern{
				{Human: spaces(core.C2), Computer: spaces(core.A2, core.B2, core.C3), Captured: pawns(core.PawnH1)},
			},
			Mirrored: true,
			Replies: []Reply{
				{Token: TokenPurple, Candidates: []Candidate{{core.PawnC2, core.A1}}},
				{Token: TokenRed, Candidates: []Candidate{{core.PawnC1, core.B1}}},
			},
		},
		{
			Index: 23,
			Label: "ply 6, case 11",
			Patterns: []Pattern{
				{Human: spaces(core.C2), Computer: spaces(core.B2, core.B3), Captured: pawns(core.PawnH1)},
			},
			Mirrored: true,
			Replies: []Reply{
				{Token: TokenPurple, Candidates: []Candidate{{core.PawnC2, core.C2}}},
				{Token: TokenBlue, Candidates: []Candidate{{core.PawnC1, core.B1}, {core.PawnC3, core.B1}}},
			},
		},
	}
}
