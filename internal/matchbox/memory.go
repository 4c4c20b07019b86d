package matchbox

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// ErrNotLoaded is returned when the memory is read before Load succeeded
var ErrNotLoaded = errors.New("library not loaded")

// Memory is the process-wide library. Reads take a snapshot of one pool;
// updates change one pool and persist the whole library before the new state
// becomes visible.
type Memory struct {
	mu       sync.RWMutex
	lib      *Library
	store    Store
	defaults Loader
	logger   zerolog.Logger
}

// NewMemory wires a memory to its backing store. A nil defaults loader uses the
// embedded factory library.
func NewMemory(store Store, defaults Loader, logger zerolog.Logger) *Memory {
	if defaults == nil {
		defaults = EmbeddedDefaults{}
	}
	return &Memory{
		store:    store,
		defaults: defaults,
		logger:   logger.With().Str("component", "Memory").Logger(),
	}
}

// Load reads the stored library. A missing library is seeded from the
// defaults. A malformed one is replaced in memory by the defaults and reported
// as a *FallbackError; the file itself is only overwritten by the next update.
func (m *Memory) Load(ctx context.Context) error {
	lib, err := m.store.Load(ctx)
	switch {
	case err == nil:
		m.set(lib)
		m.logger.Info().Str("header", lib.Header).Msg("Library loaded")
		return nil

	case errors.Is(err, ErrLibraryNotFound):
		def, derr := m.defaults.Load(ctx)
		if derr != nil {
			return fmt.Errorf("load default library: %w", derr)
		}
		if serr := m.store.Save(ctx, def); serr != nil {
			return fmt.Errorf("seed library: %w", serr)
		}
		m.set(def)
		m.logger.Info().Msg("Library missing, seeded from defaults")
		return nil

	case errors.Is(err, ErrMalformedLibrary):
		def, derr := m.defaults.Load(ctx)
		if derr != nil {
			return fmt.Errorf("load default library: %w", derr)
		}
		m.set(def)
		m.logger.Warn().Err(err).Msg("Library malformed, using defaults")
		return &FallbackError{Path: storePath(m.store), Err: err}

	default:
		return fmt.Errorf("load library: %w", err)
	}
}

func (m *Memory) set(lib *Library) {
	m.mu.Lock()
	m.lib = lib
	m.mu.Unlock()
}

// Pool returns a copy of the pool for a decision point.
func (m *Memory) Pool(index int) (Pool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.lib == nil {
		return nil, ErrNotLoaded
	}
	p, err := m.lib.Pool(index)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// Snapshot returns a deep copy of the live library, or nil before Load.
func (m *Memory) Snapshot() *Library {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.lib == nil {
		return nil
	}
	return m.lib.Clone()
}

// Update applies fn to one pool and persists the result. If fn or the save
// fails the live library is left as it was.
func (m *Memory) Update(ctx context.Context, index int, fn func(Pool) (Pool, error)) (before, after Pool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lib == nil {
		return nil, nil, ErrNotLoaded
	}
	current, err := m.lib.Pool(index)
	if err != nil {
		return nil, nil, err
	}
	next, err := fn(current.Clone())
	if err != nil {
		return current.Clone(), current.Clone(), err
	}

	updated := m.lib.Clone()
	updated.Pools[index] = next
	if err := m.store.Save(ctx, updated); err != nil {
		return current.Clone(), current.Clone(), fmt.Errorf("persist pool %d: %w", index, err)
	}
	m.lib = updated

	m.logger.Debug().
		Int("index", index).
		Str("before", current.String()).
		Str("after", next.String()).
		Msg("Pool updated")
	return current.Clone(), next.Clone(), nil
}

// Reset replaces the live library with the defaults and persists it.
func (m *Memory) Reset(ctx context.Context) error {
	def, err := m.defaults.Load(ctx)
	if err != nil {
		return fmt.Errorf("load default library: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Save(ctx, def); err != nil {
		return fmt.Errorf("persist reset library: %w", err)
	}
	m.lib = def
	m.logger.Info().Msg("Library reset to defaults")
	return nil
}

func storePath(s Store) string {
	if p, ok := s.(interface{ Path() string }); ok {
		return p.Path()
	}
	return fmt.Sprintf("%T", s)
}
