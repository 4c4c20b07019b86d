package matchbox

import (
	"context"
	"testing"

	"github.com/mitchelldurbincs/Hexatron/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode(t *testing.T) {
	m, err := ParseMode(" Slow ")
	require.NoError(t, err)
	assert.Equal(t, ModeSlow, m)
	assert.Equal(t, ModeFast, m.Toggle())
	assert.Equal(t, ModeSlow, ModeFast.Toggle())

	_, err = ParseMode("medium")
	assert.Error(t, err)
}

func TestParseAction(t *testing.T) {
	for in, want := range map[string]Action{"prune": ActionPrune, "REINFORCE": ActionReinforce, "none": ActionNone, "": ActionNone} {
		got, err := ParseAction(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseAction("explode")
	assert.Error(t, err)
}

func TestDefaultBinding(t *testing.T) {
	b := DefaultBinding()
	assert.Equal(t, ActionPrune, b.ActionFor(ModeFast, ResultWin))
	assert.Equal(t, ActionNone, b.ActionFor(ModeFast, ResultLose))
	assert.Equal(t, ActionNone, b.ActionFor(ModeSlow, ResultWin))
	assert.Equal(t, ActionReinforce, b.ActionFor(ModeSlow, ResultLose))
	assert.Equal(t, ActionNone, Binding{}.ActionFor(ModeFast, ResultWin))
}

func TestUpdater_Apply(t *testing.T) {
	tests := []struct {
		name     string
		pool     string
		mode     Mode
		result   Result
		token    Token
		action   Action
		applied  bool
		expected string
	}{
		{"fast win prunes", "GB", ModeFast, ResultWin, TokenGreen, ActionPrune, true, "B"},
		{"fast win can empty the pool", "G", ModeFast, ResultWin, TokenGreen, ActionPrune, true, ""},
		{"fast win with token already gone", "B", ModeFast, ResultWin, TokenGreen, ActionPrune, false, "B"},
		{"fast loss leaves pool", "GB", ModeFast, ResultLose, TokenGreen, ActionNone, false, "GB"},
		{"slow loss reinforces", "GB", ModeSlow, ResultLose, TokenBlue, ActionReinforce, true, "GBB"},
		{"slow loss at cap", "GGGGGBBBBB", ModeSlow, ResultLose, TokenBlue, ActionReinforce, false, "GGGGGBBBBB"},
		{"slow win leaves pool", "GB", ModeSlow, ResultWin, TokenBlue, ActionNone, false, "GB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, path := newFileMemory(t, libraryText("HEADER", "", "", "", tt.pool))
			ctx := context.Background()
			require.NoError(t, m.Load(ctx))
			u := NewUpdater(m, nil, 0, testutil.NopLogger())

			res, err := u.Apply(ctx, tt.mode, tt.result, Decision{Index: 3, Token: tt.token})
			require.NoError(t, err)
			assert.Equal(t, tt.action, res.Action)
			assert.Equal(t, tt.applied, res.Applied)

			p, err := m.Pool(3)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.String())
			assert.Equal(t, libraryText("HEADER", "", "", "", tt.expected), testutil.ReadFile(t, path))
		})
	}
}

func TestUpdater_CustomBindingAndCap(t *testing.T) {
	m, _ := newFileMemory(t, libraryText("HEADER", "GB"))
	ctx := context.Background()
	require.NoError(t, m.Load(ctx))

	binding := Binding{ModeFast: {ResultLose: ActionReinforce}}
	u := NewUpdater(m, binding, 3, testutil.NopLogger())

	res, err := u.Apply(ctx, ModeFast, ResultLose, Decision{Index: 0, Token: TokenGreen})
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, "GB", res.Before.String())
	assert.Equal(t, "GBG", res.After.String())

	res, err = u.Apply(ctx, ModeFast, ResultLose, Decision{Index: 0, Token: TokenGreen})
	require.NoError(t, err)
	assert.False(t, res.Applied)

	res, err = u.Apply(ctx, ModeFast, ResultWin, Decision{Index: 0, Token: TokenGreen})
	require.NoError(t, err)
	assert.Equal(t, ActionNone, res.Action)
}

func TestUpdater_PersistFailure(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(&failingStore{lib: DefaultLibrary()}, nil, testutil.NopLogger())
	require.NoError(t, m.Load(ctx))

	_, err := NewUpdater(m, nil, 0, testutil.NopLogger()).Apply(ctx, ModeFast, ResultWin, Decision{Index: 0, Token: TokenGreen})
	assert.ErrorIs(t, err, errDiskFull)
}
