package experience

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

var (
	// ErrBufferClosed is returned when operations are attempted on a closed buffer
	ErrBufferClosed = errors.New("record buffer is closed")
)

// DefaultBufferCapacity is used when NewBuffer is given a non-positive capacity
const DefaultBufferCapacity = 1000

// Buffer is a thread-safe circular buffer of finished game records. When full
// the oldest record is dropped.
type Buffer struct {
	mu       sync.RWMutex
	records  []*GameRecord
	capacity int
	size     int
	head     int // Write position
	tail     int // Read position
	closed   bool

	// Statistics
	totalAdded   int64
	totalDropped int64

	logger zerolog.Logger
}

// BufferStats is a snapshot of the buffer counters
type BufferStats struct {
	Size         int
	Capacity     int
	TotalAdded   int64
	TotalDropped int64
}

// NewBuffer creates a new record buffer with the specified capacity
func NewBuffer(capacity int, logger zerolog.Logger) *Buffer {
	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}

	return &Buffer{
		records:  make([]*GameRecord, capacity),
		capacity: capacity,
		logger:   logger.With().Str("component", "record_buffer").Logger(),
	}
}

// Add appends a record, dropping the oldest one when the buffer is full
func (b *Buffer) Add(rec *GameRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBufferClosed
	}

	if b.size >= b.capacity {
		b.tail = (b.tail + 1) % b.capacity
		b.totalDropped++
		b.logger.Debug().
			Int64("dropped_total", b.totalDropped).
			Msg("Buffer full, dropping oldest record")
	} else {
		b.size++
	}

	b.records[b.head] = rec
	b.head = (b.head + 1) % b.capacity
	b.totalAdded++

	return nil
}

// Drain removes and returns every buffered record, oldest first
func (b *Buffer) Drain() []*GameRecord {
	b.mu.Lock()
	defer b.mu.Unlock()

	result := make([]*GameRecord, b.size)
	for i := range result {
		result[i] = b.records[b.tail]
		b.records[b.tail] = nil
		b.tail = (b.tail + 1) % b.capacity
	}
	b.size = 0

	return result
}

// Latest returns copies of the n most recent records, oldest first
func (b *Buffer) Latest(n int) []*GameRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n > b.size {
		n = b.size
	}

	result := make([]*GameRecord, n)
	start := b.size - n
	for i := 0; i < n; i++ {
		idx := (b.tail + start + i) % b.capacity
		result[i] = b.records[idx].clone()
	}

	return result
}

// Amend applies fn to the newest buffered record of gameID and reports whether
// one was found
func (b *Buffer) Amend(gameID string, fn func(*GameRecord)) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := b.size - 1; i >= 0; i-- {
		rec := b.records[(b.tail+i)%b.capacity]
		if rec.GameID == gameID {
			fn(rec)
			return true
		}
	}
	return false
}

// Size returns the current number of records in the buffer
func (b *Buffer) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

// Stats returns the buffer counters
func (b *Buffer) Stats() BufferStats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return BufferStats{
		Size:         b.size,
		Capacity:     b.capacity,
		TotalAdded:   b.totalAdded,
		TotalDropped: b.totalDropped,
	}
}

// Close rejects further records. Buffered records can still be drained.
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}
