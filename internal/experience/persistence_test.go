package experience

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchelldurbincs/Hexatron/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPersistence(t *testing.T, maxSize int64) (*FilePersistence, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "records")
	fp, err := NewFilePersistence(PersistenceConfig{BaseDir: dir, MaxFileSize: maxSize}, testutil.NopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = fp.Close() })
	return fp, dir
}

func TestFilePersistence_WriteRead(t *testing.T) {
	fp, _ := newTestPersistence(t, 0)
	ctx := context.Background()

	rec := record("g1")
	rec.Winner = "human"
	rec.Updates = []UpdateRecord{{Situation: 1, Token: "G", Action: "prune", Before: "G", After: "", Applied: true}}
	require.NoError(t, fp.Write(ctx, []*GameRecord{rec, record("g2")}))

	all, err := fp.Read(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, rec.Moves, all[0].Moves)
	assert.Equal(t, rec.Updates, all[0].Updates)
	assert.True(t, all[0].HumanWon())

	one, err := fp.Read(ctx, "g2", 0)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "g2", one[0].GameID)

	limited, err := fp.Read(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	stats := fp.Stats()
	assert.Equal(t, int64(2), stats.TotalWritten)
	assert.Positive(t, stats.BytesWritten)
}

func TestFilePersistence_Rotates(t *testing.T) {
	fp, dir := newTestPersistence(t, 1)
	ctx := context.Background()

	require.NoError(t, fp.Write(ctx, []*GameRecord{record("a"), record("b"), record("c")}))

	files, err := filepath.Glob(filepath.Join(dir, "games_*.jsonl"))
	require.NoError(t, err)
	assert.Len(t, files, 3)

	all, err := fp.Read(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].GameID)
	assert.Equal(t, "c", all[2].GameID)
}

func TestFilePersistence_SkipsCorruptFiles(t *testing.T) {
	fp, dir := newTestPersistence(t, 0)
	ctx := context.Background()
	require.NoError(t, fp.Write(ctx, []*GameRecord{record("good")}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "games_00000000_000000_999.jsonl"), []byte("{not json\n"), 0o644))

	all, err := fp.Read(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(1), fp.Stats().ReadErrors)
}

func TestFilePersistence_Closed(t *testing.T) {
	fp, _ := newTestPersistence(t, 0)
	require.NoError(t, fp.Close())
	require.NoError(t, fp.Close())
	assert.ErrorIs(t, fp.Write(context.Background(), []*GameRecord{record("x")}), ErrPersistenceClosed)
}

func TestFilePersistence_CancelledContext(t *testing.T) {
	fp, _ := newTestPersistence(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, fp.Write(ctx, []*GameRecord{record("x")}), context.Canceled)
}
