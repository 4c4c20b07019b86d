package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/Hexatron/internal/common"
	"github.com/mitchelldurbincs/Hexatron/internal/config"
	"github.com/mitchelldurbincs/Hexatron/internal/experience"
	"github.com/mitchelldurbincs/Hexatron/internal/game"
	"github.com/mitchelldurbincs/Hexatron/internal/game/events"
	"github.com/mitchelldurbincs/Hexatron/internal/selfplay"
)

// recentWindow is how many of the last games the closing report looks at
const recentWindow = 20

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	games := flag.Int("games", -1, "Number of games to play (-1 to use config default)")
	mode := flag.String("mode", "", "Learning mode, fast or slow (empty to use config default)")
	seed := flag.Uint64("seed", 0, "Seed for both players (0 to use config default)")
	recordsDir := flag.String("records", "", "Directory for JSON game records (empty disables)")
	reset := flag.Bool("reset", false, "Reset the library to its defaults before training")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	// Flags override the file so validation covers them too
	if *mode != "" {
		if err := config.Set("learning.mode", *mode); err != nil {
			log.Fatal().Err(err).Msg("Invalid -mode")
		}
	}
	if *seed != 0 {
		if err := config.Set("game.seed", *seed); err != nil {
			log.Fatal().Err(err).Msg("Invalid -seed")
		}
	}
	cfg := config.Get()

	if *games == -1 {
		*games = cfg.Game.SelfPlayGames
	}
	common.SetupLogging(common.LogLevel(*logLevel, cfg.Log.Level), cfg.Log.Format)
	logger := log.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	memory, err := common.OpenLibrary(ctx, cfg, logger)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Library.Path).Msg("Failed to open library")
	}

	bus := events.NewEventBus(logger)

	var persistence experience.PersistenceLayer
	if *recordsDir != "" {
		pcfg := experience.DefaultPersistenceConfig()
		pcfg.BaseDir = *recordsDir
		fp, err := experience.NewFilePersistence(pcfg, logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open record directory")
		}
		defer fp.Close()
		persistence = fp
	}
	collector := experience.NewCollector("selfplay_records", experience.NewBuffer(*games, logger), persistence, logger)
	bus.Subscribe(collector)

	sessionCfg, err := common.NewSessionConfig(cfg, memory, bus, logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid learning settings")
	}
	// Every game is learned from without asking
	sessionCfg.ConfirmUpdates = false
	sessionCfg.ManualComputerTurn = false
	session, err := game.NewSession(sessionCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start session")
	}

	if *reset {
		if err := session.ResetLibrary(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to reset library")
		}
	}

	humanSeed := cfg.Game.Seed
	if humanSeed == 0 {
		humanSeed = uint64(time.Now().UnixNano())
	}
	trainer := selfplay.NewTrainer(session, rand.NewSource(humanSeed+1), logger)

	log.Info().
		Int("games", *games).
		Str("learning_mode", string(session.LearningMode())).
		Str("library", cfg.Library.Path).
		Msg("Starting self-play")

	start := time.Now()
	score, runErr := trainer.Run(ctx, *games)
	if runErr != nil {
		log.Error().Err(runErr).Int("played", score.Played).Msg("Self-play stopped early")
	}

	recent := collector.Latest(recentWindow)
	if n, err := collector.Flush(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to write game records")
	} else if n > 0 {
		log.Info().Int("records", n).Str("dir", *recordsDir).Msg("Game records written")
	}

	report(score, recent, time.Since(start))
	if runErr != nil {
		os.Exit(1)
	}
}

func report(score game.Scoreboard, recent []*experience.GameRecord, elapsed time.Duration) {
	fmt.Printf("Played %d games in %s\n", score.Played, elapsed.Round(time.Millisecond))
	fmt.Printf("Score: %s, human win rate %.1f%%\n", score, 100*score.HumanWinRate())

	if len(recent) > 0 {
		wins := 0
		for _, r := range recent {
			if r.HumanWon() {
				wins++
			}
		}
		fmt.Printf("Last %d games: human won %d\n", len(recent), wins)
	}

	causes := make([]string, 0, len(score.ByCause))
	for c := range score.ByCause {
		causes = append(causes, c)
	}
	sort.Strings(causes)
	for _, c := range causes {
		fmt.Printf("  %-28s %d\n", c, score.ByCause[c])
	}
}
