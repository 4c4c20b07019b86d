package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/Hexatron/internal/config"
	"github.com/mitchelldurbincs/Hexatron/internal/game"
	"github.com/mitchelldurbincs/Hexatron/internal/game/events"
	"github.com/mitchelldurbincs/Hexatron/internal/matchbox"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// OpenLibrary loads the pattern library named by cfg. The defaults come from
// library.default_path, or the built-in copy when that is empty. A stored
// library that cannot be parsed is logged and play continues on the defaults.
func OpenLibrary(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*matchbox.Memory, error) {
	var defaults matchbox.Loader = matchbox.EmbeddedDefaults{}
	if cfg.Library.DefaultPath != "" {
		defaults = matchbox.NewFileStore(cfg.Library.DefaultPath, logger)
	}

	mem := matchbox.NewMemory(matchbox.NewFileStore(cfg.Library.Path, logger), defaults, logger)
	if err := mem.Load(ctx); err != nil {
		var fallback *matchbox.FallbackError
		if !errors.As(err, &fallback) {
			return nil, err
		}
		logger.Warn().
			Str("path", fallback.Path).
			Err(fallback.Err).
			Msg("Stored library unusable, playing with defaults")
	}
	return mem, nil
}

// NewSessionConfig translates the learning and game settings of cfg into a
// session configuration around mem. A zero game.seed leaves the random source
// for the session to seed from the clock.
func NewSessionConfig(cfg *config.Config, mem *matchbox.Memory, pub events.Publisher, logger zerolog.Logger) (game.SessionConfig, error) {
	mode, err := cfg.LearningMode()
	if err != nil {
		return game.SessionConfig{}, fmt.Errorf("learning.mode: %w", err)
	}
	binding, err := cfg.Binding()
	if err != nil {
		return game.SessionConfig{}, err
	}

	sc := game.SessionConfig{
		Memory:         mem,
		Binding:        binding,
		MaxPool:        cfg.Learning.MaxPool,
		Mode:           mode,
		ConfirmUpdates: cfg.Learning.ConfirmUpdates,
		Publisher:      pub,
		Logger:         logger,
	}
	if cfg.Game.Seed != 0 {
		sc.Source = rand.NewSource(cfg.Game.Seed)
	}
	return sc, nil
}
