package testutil

import (
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// NewTestSource creates a deterministic random source for tests
func NewTestSource(seed uint64) rand.Source {
	return rand.NewSource(seed)
}

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// AssertPanic asserts that the given function panics
func AssertPanic(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic but none occurred: %v", msgAndArgs)
		}
	}()
	f()
}
