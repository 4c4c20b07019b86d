package matchbox

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// ErrLibraryNotFound is returned by a store that holds no library yet
var ErrLibraryNotFound = errors.New("library not found")

// Loader reads a library from somewhere.
type Loader interface {
	Load(ctx context.Context) (*Library, error)
}

// Store is a Loader that can also persist a library.
type Store interface {
	Loader
	Save(ctx context.Context, lib *Library) error
}

// EmbeddedDefaults loads the factory library compiled into the binary.
type EmbeddedDefaults struct{}

func (EmbeddedDefaults) Load(ctx context.Context) (*Library, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return DefaultLibrary(), nil
}

// FileStore keeps a library in a single text file. Saves go through a temp
// file in the same directory and a rename, so a failed write leaves the old
// file untouched.
type FileStore struct {
	path   string
	logger zerolog.Logger
}

func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger.With().Str("component", "FileStore").Str("path", path).Logger(),
	}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(ctx context.Context) (*Library, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", s.path, ErrLibraryNotFound)
		}
		return nil, fmt.Errorf("open library: %w", err)
	}
	defer f.Close()

	lib, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	s.logger.Debug().Str("header", lib.Header).Msg("Library loaded")
	return lib, nil
}

func (s *FileStore) Save(ctx context.Context, lib *Library) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create library dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := lib.WriteTo(tmp); err != nil {
		cleanup()
		return fmt.Errorf("write library: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync library: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close library: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace library: %w", err)
	}

	s.logger.Debug().Int("bytes", len(lib.Format())).Msg("Library saved")
	return nil
}
