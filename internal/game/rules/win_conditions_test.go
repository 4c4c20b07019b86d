package rules

import (
	"testing"

	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layout(t *testing.T, diagram string) *core.Board {
	t.Helper()
	b, err := core.ParseLayout(diagram)
	require.NoError(t, err)
	return b
}

func TestOutcomeDetector_Evaluate(t *testing.T) {
	od := NewOutcomeDetector(zerolog.Nop())

	tests := []struct {
		name     string
		diagram  string
		mover    core.Side
		expected Outcome
		cause    string
	}{
		{
			name:     "opening position continues",
			diagram:  "C1 C2 C3 / . . . / H1 H2 H3",
			mover:    core.Human,
			expected: Outcome{},
		},
		{
			name:     "human captures last computer pawn",
			diagram:  ". . . / . H2 . / H1 . .",
			mover:    core.Human,
			expected: Outcome{Winner: core.Human, Reason: ReasonAllCaptured},
			cause:    "all pawns captured",
		},
		{
			name:     "human reaches row 3",
			diagram:  "H1 C2 C3 / . . . / . H2 H3",
			mover:    core.Human,
			expected: Outcome{Winner: core.Human, Reason: ReasonReachedOtherSide},
			cause:    "you reached other side",
		},
		{
			name:     "computer reaches row 1",
			diagram:  ". . C3 / H1 . . / . C2 H3",
			mover:    core.Computer,
			expected: Outcome{Winner: core.Computer, Reason: ReasonReachedOtherSide},
			cause:    "AI reached other side",
		},
		{
			name:     "human left without a move",
			diagram:  "C1 . C3 / H1 . H3 / . . .",
			mover:    core.Computer,
			expected: Outcome{Winner: core.Computer, Reason: ReasonStalemate},
			cause:    "you are in stalemate",
		},
		{
			name:     "computer left without a move",
			diagram:  "C1 . . / H1 . . / . . H3",
			mover:    core.Human,
			expected: Outcome{Winner: core.Human, Reason: ReasonStalemate},
			cause:    "AI is in stalemate",
		},
		{
			name:     "capture-count beats home row",
			diagram:  ". H2 . / . . . / H1 . .",
			mover:    core.Human,
			expected: Outcome{Winner: core.Human, Reason: ReasonAllCaptured},
			cause:    "all pawns captured",
		},
		{
			name:     "home row beats stalemate",
			diagram:  "H1 . . / . . C3 / . . H3",
			mover:    core.Human,
			expected: Outcome{Winner: core.Human, Reason: ReasonReachedOtherSide},
			cause:    "you reached other side",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := od.Evaluate(layout(t, tt.diagram), tt.mover)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.cause, got.Cause())
			assert.Equal(t, tt.expected.Reason != ReasonNone, got.Terminal())
		})
	}
}

func TestStalemated(t *testing.T) {
	o := Stalemated(core.Computer)
	assert.Equal(t, core.Human, o.Winner)
	assert.Equal(t, core.Computer, o.Loser())
	assert.True(t, o.HumanWon())
	assert.Equal(t, "AI is in stalemate", o.Cause())
}

func TestReason_String(t *testing.T) {
	assert.Equal(t, "stalemate", ReasonStalemate.String())
	assert.Equal(t, "Reason(42)", Reason(42).String())
}

func TestLegalMoveCalculator(t *testing.T) {
	lmc := NewLegalMoveCalculator()
	b := layout(t, "C1 C2 C3 / . H2 . / H1 . H3")

	mask := lmc.GetLegalDestinationMask(b, core.PawnH2)
	for _, s := range core.AllSpaces {
		expected := s == core.A3 || s == core.C3
		assert.Equal(t, expected, mask[s], "space %s", s)
	}

	b.Capture(core.PawnH1)
	empty := lmc.GetLegalDestinationMask(b, core.PawnH1)
	assert.NotContains(t, empty[:], true)

	assert.Equal(t, 3, lmc.CountLegalMoves(b, core.Human))
}
