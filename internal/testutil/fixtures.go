package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
)

// MustLayout builds a board from a diagram such as "C1 . C3 / . C2 . / H1 H2 H3"
func MustLayout(t *testing.T, diagram string) *core.Board {
	t.Helper()
	b, err := core.ParseLayout(diagram)
	if err != nil {
		t.Fatalf("layout %q: %v", diagram, err)
	}
	return b
}

// MustMove applies a move and fails the test if it is rejected
func MustMove(t *testing.T, b *core.Board, side core.Side, pawn core.PawnID, to core.Space) {
	t.Helper()
	if _, err := core.ApplyMoveAction(b, &core.MoveAction{Side: side, Pawn: pawn, To: to}); err != nil {
		t.Fatalf("move %s to %s: %v", pawn, to, err)
	}
}

// WriteLibraryFile writes contents to a fresh library file under t.TempDir()
// and returns its path
func WriteLibraryFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write library: %v", err)
	}
	return path
}

// ReadFile returns the file contents as a string
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(raw)
}
