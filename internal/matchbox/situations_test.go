package matchbox

import (
	"testing"

	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
	"github.com/mitchelldurbincs/Hexatron/internal/game/rules"
	"github.com/mitchelldurbincs/Hexatron/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSituations_TableShape(t *testing.T) {
	table := Situations()
	require.Len(t, table, DecisionPoints)

	for i, s := range table {
		assert.Equal(t, i, s.Index, "entry %d is out of order", i)
		assert.NotEmpty(t, s.Patterns, "situation %d", i)
		assert.NotEmpty(t, s.Replies, "situation %d", i)

		seen := map[Token]bool{}
		for _, r := range s.Replies {
			assert.True(t, r.Token.Valid(), "situation %d token %q", i, r.Token)
			assert.False(t, seen[r.Token], "situation %d repeats token %s", i, r.Token)
			seen[r.Token] = true
			for _, c := range r.Candidates {
				assert.Equal(t, core.Computer, c.Pawn.Side(), "situation %d token %s", i, r.Token)
				assert.True(t, c.To.Valid())
			}
		}
	}
}

func TestSituations_DefaultPoolsMatchEmbeddedLibrary(t *testing.T) {
	lib := DefaultLibrary()
	for _, s := range Situations() {
		assert.Equal(t, s.DefaultPool().String(), lib.Pools[s.Index].String(), "situation %d", s.Index)
	}
}

func TestPattern_Reflect(t *testing.T) {
	p := Pattern{
		Human:    []core.Space{core.A1, core.B2},
		Computer: []core.Space{core.C3},
		Captured: []core.PawnID{core.PawnH1, core.PawnC2},
	}
	r := p.Reflect()

	assert.Equal(t, []core.Space{core.C1, core.B2}, r.Human)
	assert.Equal(t, []core.Space{core.A3}, r.Computer)
	assert.Equal(t, []core.PawnID{core.PawnH3, core.PawnC2}, r.Captured)
	assert.Equal(t, p.Human, r.Reflect().Human)
}

func TestSituation_PatternsForUnmirrored(t *testing.T) {
	s := Situations()[1]
	require.False(t, s.Mirrored)
	assert.Nil(t, s.PatternsFor(Mirror))
	assert.Len(t, s.PatternsFor(Straight), 1)
}

func TestSituation_MirrorResolution(t *testing.T) {
	s := Situations()[0]

	straight, ok := s.CandidatesFor(Straight, TokenGreen)
	require.True(t, ok)
	assert.Equal(t, []Candidate{{core.PawnC2, core.A2}}, straight)

	mirrored, ok := s.CandidatesFor(Mirror, TokenGreen)
	require.True(t, ok)
	assert.Equal(t, []Candidate{{core.PawnC2, core.C2}}, mirrored)

	mirrored, ok = s.CandidatesFor(Mirror, TokenPurple)
	require.True(t, ok)
	assert.Equal(t, []Candidate{{core.PawnC1, core.A2}}, mirrored)

	_, ok = s.CandidatesFor(Straight, TokenRed)
	assert.False(t, ok)
}

// Every situation and orientation reachable from the starting layout, with
// the move each token resolves to on a representative board.
func TestClassifier_EntryByEntry(t *testing.T) {
	tests := []struct {
		index       int
		orientation Orientation
		diagram     string
		moves       map[Token]Candidate
	}{
		{0, Mirror, "C1 C2 C3 / . . H3 / H1 H2 .", map[Token]Candidate{'G': {core.PawnC2, core.C2}, 'B': {core.PawnC2, core.B2}, 'P': {core.PawnC1, core.A2}}},
		{0, Straight, "C1 C2 C3 / H1 . . / . H2 H3", map[Token]Candidate{'G': {core.PawnC2, core.A2}, 'B': {core.PawnC2, core.B2}, 'P': {core.PawnC3, core.C2}}},
		{1, Straight, "C1 C2 C3 / . H2 . / H1 . H3", map[Token]Candidate{'G': {core.PawnC1, core.A2}, 'B': {core.PawnC1, core.B2}}},
		{2, Straight, ". C2 C3 / C1 H2 H3 / H1 . .", map[Token]Candidate{'P': {core.PawnC2, core.C2}, 'G': {core.PawnC3, core.B2}}},
		{3, Straight, ". C2 C3 / . C1 H3 / H1 . .", map[Token]Candidate{'G': {core.PawnC2, core.C2}, 'B': {core.PawnC1, core.A1}, 'P': {core.PawnC1, core.B1}}},
		{4, Mirror, ". C2 C3 / H2 . H3 / H1 . .", map[Token]Candidate{'P': {core.PawnC2, core.C2}, 'G': {core.PawnC2, core.B2}, 'B': {core.PawnC2, core.A2}}},
		{4, Straight, "C1 C2 . / H1 . H2 / . . H3", map[Token]Candidate{'P': {core.PawnC2, core.A2}, 'G': {core.PawnC2, core.B2}, 'B': {core.PawnC2, core.C2}}},
		{5, Mirror, "C1 . C3 / . . H2 / H1 . .", map[Token]Candidate{'R': {core.PawnC1, core.A2}}},
		{5, Straight, "C1 . C3 / H2 . . / . . H3", map[Token]Candidate{'R': {core.PawnC3, core.C2}}},
		{6, Straight, "C1 C2 . / H1 H2 C3 / . . H3", map[Token]Candidate{'B': {core.PawnC2, core.A2}, 'P': {core.PawnC1, core.B2}}},
		{7, Mirror, "C1 . C3 / . H1 H3 / . H2 .", map[Token]Candidate{'B': {core.PawnC3, core.B2}, 'G': {core.PawnC1, core.B2}, 'P': {core.PawnC1, core.A2}}},
		{7, Straight, "C1 . C3 / H1 H3 . / . H2 .", map[Token]Candidate{'B': {core.PawnC1, core.B2}, 'G': {core.PawnC3, core.B2}, 'P': {core.PawnC3, core.C2}}},
		{8, Straight, ". C2 C3 / H1 C1 . / . . H3", map[Token]Candidate{'B': {core.PawnC1, core.B1}, 'R': {core.PawnC1, core.C1}, 'P': {core.PawnC2, core.A2}, 'G': {core.PawnC3, core.C2}}},
		{9, Straight, ". C2 C3 / . H3 . / H1 . .", map[Token]Candidate{'P': {core.PawnC3, core.B2}, 'G': {core.PawnC3, core.C2}}},
		{10, Mirror, "C1 . C3 / . H2 C2 / H1 . .", map[Token]Candidate{'R': {core.PawnC2, core.C1}, 'G': {core.PawnC3, core.B2}, 'B': {core.PawnC1, core.B2}, 'P': {core.PawnC1, core.A2}}},
		{10, Straight, "C1 . C3 / C2 H2 . / . . H3", map[Token]Candidate{'R': {core.PawnC2, core.A1}, 'G': {core.PawnC1, core.B2}, 'B': {core.PawnC3, core.B2}, 'P': {core.PawnC3, core.C2}}},
		{11, Mirror, "C1 . C3 / H1 . C2 / . H2 .", map[Token]Candidate{'G': {core.PawnC2, core.C1}, 'B': {core.PawnC2, core.B1}}},
		{11, Straight, "C1 . C3 / C2 . H3 / . H2 .", map[Token]Candidate{'G': {core.PawnC2, core.A1}, 'B': {core.PawnC2, core.B1}}},
		{13, Mirror, ". C2 . / H1 H3 C3 / . . .", map[Token]Candidate{'R': {core.PawnC2, core.A2}, 'P': {core.PawnC3, core.C1}}},
		{13, Straight, ". C2 . / C1 H1 H3 / . . .", map[Token]Candidate{'R': {core.PawnC2, core.C2}, 'P': {core.PawnC1, core.A1}}},
		{14, Straight, "C1 . . / C2 H3 . / . . .", map[Token]Candidate{'P': {core.PawnC1, core.B2}, 'R': {core.PawnC2, core.A1}}},
		{15, Mirror, ". . C3 / H1 C1 C2 / . . .", map[Token]Candidate{'B': {core.PawnC2, core.C1}, 'P': {core.PawnC1, core.B1}}},
		{15, Straight, "C1 . . / C2 C3 H3 / . . .", map[Token]Candidate{'B': {core.PawnC2, core.A1}, 'P': {core.PawnC3, core.B1}}},
		{16, Mirror, ". . C3 / H2 H1 H3 / . . .", map[Token]Candidate{'B': {core.PawnC3, core.B2}}},
		{16, Straight, "C1 . . / H1 H3 H2 / . . .", map[Token]Candidate{'B': {core.PawnC1, core.B2}}},
		{18, Mirror, ". C2 . / . C3 H3 / . . .", map[Token]Candidate{'G': {core.PawnC2, core.C2}, 'P': {core.PawnC3, core.B1}}},
		{18, Straight, ". C2 . / H1 C3 . / . . .", map[Token]Candidate{'G': {core.PawnC2, core.A2}, 'P': {core.PawnC3, core.B1}}},
		{19, Mirror, "C1 . . / . H1 C2 / . . .", map[Token]Candidate{'P': {core.PawnC2, core.C1}, 'R': {core.PawnC1, core.B2}, 'G': {core.PawnC1, core.A2}}},
		{19, Straight, ". . C3 / C2 H3 . / . . .", map[Token]Candidate{'P': {core.PawnC2, core.A1}, 'R': {core.PawnC3, core.B2}, 'G': {core.PawnC3, core.C2}}},
		{20, Straight, ". . C3 / . H1 C2 / . . .", map[Token]Candidate{'G': {core.PawnC3, core.B2}, 'B': {core.PawnC2, core.C1}}},
		{22, Mirror, "C1 . . / H1 C3 C2 / . . .", map[Token]Candidate{'P': {core.PawnC2, core.C1}, 'R': {core.PawnC3, core.B1}}},
		{22, Straight, ". . C3 / C2 C1 H3 / . . .", map[Token]Candidate{'P': {core.PawnC2, core.A1}, 'R': {core.PawnC1, core.B1}}},
	}

	c := NewClassifier(nil, testutil.NopLogger())
	for _, tt := range tests {
		t.Run(tt.diagram, func(t *testing.T) {
			b := testutil.MustLayout(t, tt.diagram)
			m, err := c.Classify(b)
			require.NoError(t, err)
			assert.Equal(t, tt.index, m.Index())
			assert.Equal(t, tt.orientation, m.Orientation)

			for tok, want := range tt.moves {
				move, err := m.Resolve(b, tok)
				require.NoError(t, err, "token %s", tok)
				assert.Equal(t, core.Computer, move.Side)
				assert.Equal(t, want.Pawn, move.Pawn, "token %s", tok)
				assert.Equal(t, want.To, move.To, "token %s", tok)
			}
		})
	}
}

func TestClassifier_NoSituation(t *testing.T) {
	c := NewClassifier(nil, testutil.NopLogger())
	_, err := c.Classify(core.NewBoard())
	assert.ErrorIs(t, err, ErrNoSituation)
}

func TestMatch_ResolveErrors(t *testing.T) {
	c := NewClassifier(nil, testutil.NopLogger())
	b := testutil.MustLayout(t, "C1 C2 C3 / H1 . . / . H2 H3")
	m, err := c.Classify(b)
	require.NoError(t, err)

	_, err = m.Resolve(b, TokenRed)
	assert.ErrorIs(t, err, ErrUnknownToken)

	table := []Situation{{
		Index:    0,
		Patterns: []Pattern{{Computer: spaces(core.A3)}},
		Replies:  []Reply{{Token: TokenRed, Candidates: []Candidate{{core.PawnC1, core.A1}}}},
	}}
	m, err = NewClassifier(table, testutil.NopLogger()).Classify(core.NewBoard())
	require.NoError(t, err)
	_, err = m.Resolve(core.NewBoard(), TokenRed)
	assert.ErrorIs(t, err, ErrUnresolvableToken)
}

// Walks every game the table can produce and checks that each computer turn
// classifies and that every bead in the default pool resolves to a legal move.
func TestClassifier_CoversEveryReachableBoard(t *testing.T) {
	c := NewClassifier(nil, testutil.NopLogger())
	detector := rules.NewOutcomeDetector(testutil.NopLogger())
	visited := map[string]bool{}
	games := 0

	var humanTurn func(b *core.Board)
	computerTurn := func(b *core.Board) {
		m, err := c.Classify(b)
		require.NoError(t, err, "board %s", b.Layout())
		key := b.Layout()
		if visited[key] {
			return
		}
		visited[key] = true

		for _, r := range m.Situation.Replies {
			move, err := m.Resolve(b, r.Token)
			require.NoError(t, err, "board %s token %s", b.Layout(), r.Token)
			next := b.Clone()
			_, err = core.ApplyMoveAction(next, &move)
			require.NoError(t, err)
			if detector.Evaluate(next, core.Computer).Terminal() {
				games++
				continue
			}
			humanTurn(next)
		}
	}
	humanTurn = func(b *core.Board) {
		for _, move := range core.LegalMoves(b, core.Human) {
			next := b.Clone()
			mv := move
			_, err := core.ApplyMoveAction(next, &mv)
			require.NoError(t, err)
			if detector.Evaluate(next, core.Human).Terminal() {
				games++
				continue
			}
			computerTurn(next)
		}
	}

	humanTurn(core.NewBoard())
	assert.NotEmpty(t, visited)
	assert.Positive(t, games)
}
