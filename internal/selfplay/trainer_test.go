package selfplay

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mitchelldurbincs/Hexatron/internal/game"
	"github.com/mitchelldurbincs/Hexatron/internal/matchbox"
	"github.com/mitchelldurbincs/Hexatron/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTrainer(t *testing.T, mode matchbox.Mode, seed uint64) (*Trainer, *matchbox.Memory) {
	t.Helper()
	logger := testutil.NopLogger()
	mem := matchbox.NewMemory(matchbox.NewFileStore(filepath.Join(t.TempDir(), "library.txt"), logger), nil, logger)
	require.NoError(t, mem.Load(context.Background()))

	s, err := game.NewSession(game.SessionConfig{
		Memory: mem,
		Source: testutil.NewTestSource(seed),
		Mode:   mode,
		Logger: logger,
	})
	require.NoError(t, err)
	return NewTrainer(s, testutil.NewTestSource(seed+1), logger), mem
}

func TestTrainer_PlayGame(t *testing.T) {
	tr, _ := newTestTrainer(t, matchbox.ModeFast, 1)

	require.NoError(t, tr.PlayGame(context.Background()))
	assert.True(t, tr.session.Outcome().Terminal())
	assert.Equal(t, 1, tr.session.Score().Played)
}

func TestTrainer_Run(t *testing.T) {
	tr, mem := newTestTrainer(t, matchbox.ModeFast, 7)

	score, err := tr.Run(context.Background(), 60)
	require.NoError(t, err)
	assert.Equal(t, 60, score.Played)
	assert.Equal(t, 60, score.HumanWins+score.ComputerWins)
	assert.Equal(t, 60, tr.session.GameNumber())

	total := 0
	for _, n := range score.ByCause {
		total += n
	}
	assert.Equal(t, 60, total)

	if score.HumanWins > 0 {
		assert.NotEqual(t, matchbox.DefaultLibrary().Format(), mem.Snapshot().Format(), "fast learning prunes after human wins")
	}
}

func TestTrainer_Deterministic(t *testing.T) {
	a, _ := newTestTrainer(t, matchbox.ModeSlow, 3)
	b, _ := newTestTrainer(t, matchbox.ModeSlow, 3)

	sa, err := a.Run(context.Background(), 25)
	require.NoError(t, err)
	sb, err := b.Run(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, sa, sb)
}

func TestTrainer_CancelledContext(t *testing.T) {
	tr, _ := newTestTrainer(t, matchbox.ModeFast, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tr.Run(ctx, 5)
	assert.ErrorIs(t, err, context.Canceled)
}
