package common

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mitchelldurbincs/Hexatron/internal/config"
	"github.com/mitchelldurbincs/Hexatron/internal/game"
	"github.com/mitchelldurbincs/Hexatron/internal/game/events"
	"github.com/mitchelldurbincs/Hexatron/internal/matchbox"
	"github.com/mitchelldurbincs/Hexatron/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	actions := func(win, lose matchbox.Action) config.ResultActions {
		return config.ResultActions{Win: string(win), Lose: string(lose)}
	}
	return &config.Config{
		Library: config.LibraryConfig{Path: filepath.Join(t.TempDir(), "library.txt")},
		Learning: config.LearningConfig{
			Mode:           "slow",
			MaxPool:        7,
			ConfirmUpdates: true,
			Binding: config.BindingConfig{
				Fast: actions(matchbox.ActionPrune, matchbox.ActionNone),
				Slow: actions(matchbox.ActionNone, matchbox.ActionReinforce),
			},
		},
		Game: config.GameConfig{Seed: 42},
		Log:  config.LogConfig{Level: "info", Format: "console"},
	}
}

func TestOpenLibrary_SeedsFromEmbeddedDefaults(t *testing.T) {
	cfg := testConfig(t)

	mem, err := OpenLibrary(context.Background(), cfg, testutil.NopLogger())
	require.NoError(t, err)
	assert.Equal(t, matchbox.DefaultLibrary().Header, mem.Snapshot().Header)
	assert.Equal(t, string(matchbox.DefaultLibrary().Format()), testutil.ReadFile(t, cfg.Library.Path))
}

func TestOpenLibrary_CustomDefaults(t *testing.T) {
	cfg := testConfig(t)
	factory := matchbox.DefaultLibrary()
	factory.Header = "FACTORY"
	cfg.Library.DefaultPath = testutil.WriteLibraryFile(t, string(factory.Format()))

	mem, err := OpenLibrary(context.Background(), cfg, testutil.NopLogger())
	require.NoError(t, err)
	assert.Equal(t, "FACTORY", mem.Snapshot().Header)
}

func TestOpenLibrary_MalformedFallsBack(t *testing.T) {
	cfg := testConfig(t)
	cfg.Library.Path = testutil.WriteLibraryFile(t, "garbage\n")

	mem, err := OpenLibrary(context.Background(), cfg, testutil.NopLogger())
	require.NoError(t, err)
	assert.Equal(t, matchbox.DefaultLibrary().Header, mem.Snapshot().Header)
}

func TestOpenLibrary_MissingDefaults(t *testing.T) {
	cfg := testConfig(t)
	cfg.Library.DefaultPath = filepath.Join(t.TempDir(), "missing.txt")

	_, err := OpenLibrary(context.Background(), cfg, testutil.NopLogger())
	assert.Error(t, err)
}

func TestNewSessionConfig(t *testing.T) {
	cfg := testConfig(t)
	mem, err := OpenLibrary(context.Background(), cfg, testutil.NopLogger())
	require.NoError(t, err)
	bus := events.NewEventBus(testutil.NopLogger())

	sc, err := NewSessionConfig(cfg, mem, bus, testutil.NopLogger())
	require.NoError(t, err)
	assert.Same(t, mem, sc.Memory)
	assert.Equal(t, matchbox.ModeSlow, sc.Mode)
	assert.Equal(t, 7, sc.MaxPool)
	assert.True(t, sc.ConfirmUpdates)
	assert.NotNil(t, sc.Source)
	assert.Equal(t, matchbox.ActionReinforce, sc.Binding[matchbox.ModeSlow][matchbox.ResultLose])

	s, err := game.NewSession(sc)
	require.NoError(t, err)
	assert.Equal(t, matchbox.ModeSlow, s.LearningMode())
}

func TestNewSessionConfig_ClockSeed(t *testing.T) {
	cfg := testConfig(t)
	cfg.Game.Seed = 0

	sc, err := NewSessionConfig(cfg, nil, nil, testutil.NopLogger())
	require.NoError(t, err)
	assert.Nil(t, sc.Source)
}

func TestNewSessionConfig_BadMode(t *testing.T) {
	cfg := testConfig(t)
	cfg.Learning.Mode = "turbo"

	_, err := NewSessionConfig(cfg, nil, nil, testutil.NopLogger())
	assert.Error(t, err)
}
