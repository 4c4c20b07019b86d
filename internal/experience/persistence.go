package experience

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrPersistenceClosed is returned when writing after Close
	ErrPersistenceClosed = errors.New("persistence layer closed")
)

// PersistenceConfig contains configuration for the file persistence layer
type PersistenceConfig struct {
	BaseDir     string
	MaxFileSize int64 // Max size per file in bytes, 0 for no rotation
}

// DefaultPersistenceConfig returns a default persistence configuration
func DefaultPersistenceConfig() PersistenceConfig {
	return PersistenceConfig{
		BaseDir:     "records",
		MaxFileSize: 10 * 1024 * 1024, // 10MB
	}
}

// PersistenceLayer stores finished game records
type PersistenceLayer interface {
	// Write persists a batch of records
	Write(ctx context.Context, records []*GameRecord) error

	// Read retrieves records, all games when gameID is empty. limit <= 0
	// means no limit.
	Read(ctx context.Context, gameID string, limit int) ([]*GameRecord, error)

	// Close cleanly shuts down the persistence layer
	Close() error

	// Stats returns persistence statistics
	Stats() PersistenceStats
}

// PersistenceStats contains statistics about persistence operations
type PersistenceStats struct {
	TotalWritten  int64
	TotalRead     int64
	BytesWritten  int64
	WriteErrors   int64
	ReadErrors    int64
	LastWriteTime time.Time
}

// FilePersistence writes records as JSON lines into rotating files
type FilePersistence struct {
	config PersistenceConfig
	logger zerolog.Logger

	mu    sync.Mutex
	stats PersistenceStats

	currentFile *os.File
	writer      *bufio.Writer
	currentSize int64
	fileIndex   int
	closed      bool
}

// NewFilePersistence creates the base directory and opens the first file
func NewFilePersistence(config PersistenceConfig, logger zerolog.Logger) (*FilePersistence, error) {
	if err := os.MkdirAll(config.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	fp := &FilePersistence{
		config: config,
		logger: logger.With().Str("component", "record_persistence").Logger(),
	}

	if err := fp.rotateFile(); err != nil {
		return nil, err
	}

	return fp, nil
}

// Write appends records to the current file, rotating when it grows past
// MaxFileSize
func (fp *FilePersistence) Write(ctx context.Context, records []*GameRecord) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	if fp.closed {
		return ErrPersistenceClosed
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}

		if fp.config.MaxFileSize > 0 && fp.currentSize >= fp.config.MaxFileSize {
			if err := fp.rotateFile(); err != nil {
				fp.stats.WriteErrors++
				return fmt.Errorf("failed to rotate file: %w", err)
			}
		}

		data, err := json.Marshal(rec)
		if err != nil {
			fp.stats.WriteErrors++
			return fmt.Errorf("failed to marshal record: %w", err)
		}

		n, err := fp.writer.Write(append(data, '\n'))
		if err != nil {
			fp.stats.WriteErrors++
			return fmt.Errorf("failed to write record: %w", err)
		}

		fp.currentSize += int64(n)
		fp.stats.TotalWritten++
		fp.stats.BytesWritten += int64(n)
	}

	if err := fp.writer.Flush(); err != nil {
		fp.stats.WriteErrors++
		return fmt.Errorf("failed to flush records: %w", err)
	}
	if err := fp.currentFile.Sync(); err != nil {
		fp.logger.Warn().Err(err).Msg("Failed to sync file")
	}

	fp.stats.LastWriteTime = time.Now()

	fp.logger.Debug().
		Int("batch_size", len(records)).
		Int64("file_size", fp.currentSize).
		Msg("Wrote record batch to file")

	return nil
}

// Read scans every record file in name order
func (fp *FilePersistence) Read(ctx context.Context, gameID string, limit int) ([]*GameRecord, error) {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	files, err := filepath.Glob(filepath.Join(fp.config.BaseDir, "games_*.jsonl"))
	if err != nil {
		fp.stats.ReadErrors++
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	sort.Strings(files)

	var records []*GameRecord
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if limit > 0 && len(records) >= limit {
			break
		}

		recs, err := readFile(file, gameID, limit-len(records))
		if err != nil {
			fp.stats.ReadErrors++
			fp.logger.Warn().
				Err(err).
				Str("file", file).
				Msg("Failed to read record file")
			continue
		}

		records = append(records, recs...)
	}

	fp.stats.TotalRead += int64(len(records))
	return records, nil
}

func readFile(filename, gameID string, limit int) ([]*GameRecord, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []*GameRecord
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if limit > 0 && len(records) >= limit {
			break
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec GameRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
		if gameID == "" || rec.GameID == gameID {
			records = append(records, &rec)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return records, nil
}

// rotateFile closes the current file and opens a new one
func (fp *FilePersistence) rotateFile() error {
	if err := fp.closeCurrent(); err != nil {
		fp.logger.Warn().Err(err).Msg("Failed to close previous file")
	}

	timestamp := time.Now().Format("20060102_150405")
	var filename string
	for {
		filename = filepath.Join(fp.config.BaseDir, fmt.Sprintf("games_%s_%03d.jsonl", timestamp, fp.fileIndex))
		fp.fileIndex++
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			break
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	fp.currentFile = file
	fp.writer = bufio.NewWriter(file)
	fp.currentSize = 0

	fp.logger.Info().Str("file", filename).Msg("Opened new record file")
	return nil
}

func (fp *FilePersistence) closeCurrent() error {
	if fp.currentFile == nil {
		return nil
	}
	flushErr := fp.writer.Flush()
	closeErr := fp.currentFile.Close()
	fp.currentFile, fp.writer = nil, nil
	return errors.Join(flushErr, closeErr)
}

// Close flushes and closes the current file
func (fp *FilePersistence) Close() error {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	if fp.closed {
		return nil
	}
	fp.closed = true
	return fp.closeCurrent()
}

// Stats returns persistence statistics
func (fp *FilePersistence) Stats() PersistenceStats {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.stats
}
