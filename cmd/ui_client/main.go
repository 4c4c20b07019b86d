package main

import (
	"context"
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/Hexatron/internal/common"
	"github.com/mitchelldurbincs/Hexatron/internal/config"
	"github.com/mitchelldurbincs/Hexatron/internal/game"
	"github.com/mitchelldurbincs/Hexatron/internal/game/events"
	"github.com/mitchelldurbincs/Hexatron/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/Hexatron/internal/ui"
	"github.com/mitchelldurbincs/Hexatron/internal/ui/controller"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay, merges config.<env>.yaml")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	watch := flag.Bool("watch", true, "Reload the learning mode when the config file changes")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}
	cfg := config.Get()

	common.SetupLogging(common.LogLevel(*logLevel, cfg.Log.Level), cfg.Log.Format)
	logger := log.Logger

	ctx := context.Background()
	memory, err := common.OpenLibrary(ctx, cfg, logger)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Library.Path).Msg("Failed to open library")
	}

	bus := events.NewEventBus(logger)
	bus.Subscribe(subscribers.NewLoggerSubscriber("event_log", logger, zerolog.DebugLevel))

	sessionCfg, err := common.NewSessionConfig(cfg, memory, bus, logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid learning settings")
	}
	sessionCfg.ManualComputerTurn = true
	session, err := game.NewSession(sessionCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start session")
	}

	ctl := controller.New(session, cfg.UI.AIDelayFrames, logger)

	if *watch && config.ConfigFilePath() != "" {
		config.WatchConfig(func(c *config.Config, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Config change rejected, keeping previous settings")
				return
			}
			mode, err := c.LearningMode()
			if err != nil {
				return
			}
			ctl.RequestLearningMode(mode)
		})
		log.Info().Str("file", config.ConfigFilePath()).Msg("Watching config for learning mode changes")
	}

	uiGame := ui.NewUIGame(ctl, cfg.UI)

	ebiten.SetWindowSize(cfg.UI.Window.Width, cfg.UI.Window.Height)
	ebiten.SetWindowTitle(cfg.UI.Window.Title)

	log.Info().
		Str("library", cfg.Library.Path).
		Str("learning_mode", string(session.LearningMode())).
		Msg("Starting Hexatron UI")

	if err := ebiten.RunGame(uiGame); err != nil {
		log.Fatal().Err(err).Msg("UI exited with error")
	}
}
