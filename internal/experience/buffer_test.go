package experience

import (
	"fmt"
	"testing"

	"github.com/mitchelldurbincs/Hexatron/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string) *GameRecord {
	return &GameRecord{GameID: id, Moves: []MoveRecord{{Ply: 1, Side: "human", Pawn: "H1", From: "a1", To: "a2"}}}
}

func TestBuffer_DropsOldestWhenFull(t *testing.T) {
	b := NewBuffer(3, testutil.NopLogger())
	for i := 0; i < 5; i++ {
		require.NoError(t, b.Add(record(fmt.Sprintf("g%d", i))))
	}

	stats := b.Stats()
	assert.Equal(t, 3, stats.Size)
	assert.Equal(t, int64(5), stats.TotalAdded)
	assert.Equal(t, int64(2), stats.TotalDropped)

	drained := b.Drain()
	require.Len(t, drained, 3)
	assert.Equal(t, "g2", drained[0].GameID)
	assert.Equal(t, "g4", drained[2].GameID)
	assert.Zero(t, b.Size())
}

func TestBuffer_DefaultCapacity(t *testing.T) {
	b := NewBuffer(0, testutil.NopLogger())
	assert.Equal(t, DefaultBufferCapacity, b.Stats().Capacity)
}

func TestBuffer_Latest(t *testing.T) {
	b := NewBuffer(4, testutil.NopLogger())
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, b.Add(record(id)))
	}

	latest := b.Latest(2)
	require.Len(t, latest, 2)
	assert.Equal(t, "b", latest[0].GameID)
	assert.Equal(t, "c", latest[1].GameID)
	assert.Len(t, b.Latest(10), 3)

	// Copies do not alias the buffered records
	latest[1].Moves[0].To = "zz"
	assert.Equal(t, "a2", b.Latest(1)[0].Moves[0].To)
	assert.Equal(t, 3, b.Size())
}

func TestBuffer_Amend(t *testing.T) {
	b := NewBuffer(4, testutil.NopLogger())
	require.NoError(t, b.Add(record("a")))
	require.NoError(t, b.Add(record("b")))

	ok := b.Amend("a", func(r *GameRecord) { r.Cause = "amended" })
	assert.True(t, ok)
	assert.Equal(t, "amended", b.Latest(2)[0].Cause)
	assert.False(t, b.Amend("missing", func(*GameRecord) {}))
}

func TestBuffer_Close(t *testing.T) {
	b := NewBuffer(2, testutil.NopLogger())
	require.NoError(t, b.Add(record("a")))
	b.Close()

	assert.ErrorIs(t, b.Add(record("b")), ErrBufferClosed)
	assert.Len(t, b.Drain(), 1)
}
