package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/Hexatron/internal/common"
	"github.com/mitchelldurbincs/Hexatron/internal/config"
	"github.com/mitchelldurbincs/Hexatron/internal/game"
	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
	"github.com/mitchelldurbincs/Hexatron/internal/game/events"
	"github.com/mitchelldurbincs/Hexatron/internal/game/states"
	"github.com/mitchelldurbincs/Hexatron/internal/matchbox"
)

const help = `Commands:
  <from> <to>   move your pawn, e.g. "b1 b2"
  y / n         accept or refuse the AI library update after a game
  new           start a new game
  mode [m]      toggle learning mode, or set it to fast or slow
  reset         reset the AI library to its defaults
  score         show the running score
  help          show this text
  quit          leave`

func main() {
	configPath := flag.String("config", "", "Path to config file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	color := flag.Bool("color", true, "Draw the board with ANSI colors")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()
	common.SetupLogging(common.LogLevel(*logLevel, cfg.Log.Level), cfg.Log.Format)
	logger := log.Logger

	ctx := context.Background()
	memory, err := common.OpenLibrary(ctx, cfg, logger)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Library.Path).Msg("Failed to open library")
	}

	sessionCfg, err := common.NewSessionConfig(cfg, memory, events.NewEventBus(logger), logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid learning settings")
	}
	session, err := game.NewSession(sessionCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start session")
	}

	if err := play(ctx, session, os.Stdin, os.Stdout, *color); err != nil {
		log.Fatal().Err(err).Msg("Input error")
	}
}

// play runs the command loop until quit or end of input
func play(ctx context.Context, s *game.Session, in io.Reader, out io.Writer, color bool) error {
	fmt.Fprintln(out, "Hexatron: reach the far row, take every AI pawn, or leave it without a move.")
	fmt.Fprintln(out, help)
	show(s, out, color)

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt(s))
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}

		fields := strings.Fields(strings.ToLower(sc.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit", "q":
			fmt.Fprintln(out, s.Score())
			return nil
		case "help", "?":
			fmt.Fprintln(out, help)
		case "score":
			fmt.Fprintln(out, s.Score())
		case "new":
			if err := s.NewGame(); err != nil {
				report(out, err)
				continue
			}
			show(s, out, color)
		case "y", "yes":
			if err := s.ConfirmLearning(ctx); err != nil {
				report(out, err)
				continue
			}
			fmt.Fprintln(out, "AI library updated.")
		case "n", "no":
			if err := s.DenyLearning(); err != nil {
				report(out, err)
				continue
			}
			fmt.Fprintln(out, "AI library left unchanged.")
		case "mode":
			setMode(s, out, fields[1:])
		case "reset":
			if err := s.ResetLibrary(ctx); err != nil {
				report(out, err)
				continue
			}
			fmt.Fprintln(out, "AI library reset to defaults.")
		default:
			move(ctx, s, out, fields, color)
		}
	}
}

func move(ctx context.Context, s *game.Session, out io.Writer, fields []string, color bool) {
	if len(fields) != 2 {
		fmt.Fprintln(out, `Unknown command, type "help".`)
		return
	}
	from, err := core.ParseSpace(fields[0])
	if err != nil {
		report(out, err)
		return
	}
	to, err := core.ParseSpace(fields[1])
	if err != nil {
		report(out, err)
		return
	}

	id, ok := s.Board().PawnAt(from)
	if !ok || id.Side() != core.Human {
		fmt.Fprintf(out, "You have no pawn on %s.\n", from)
		return
	}
	if err := s.SelectPawn(id); err != nil {
		report(out, err)
		return
	}
	ply := s.Ply()
	if err := s.ConfirmDestination(ctx, to); err != nil {
		report(out, err)
		return
	}

	// The computer has replied when more than one ply went by
	if d, ok := s.LastDecision(); ok && s.Ply() > ply+1 {
		fmt.Fprintf(out, "AI moves %s to %s (situation %d, bead %s)\n", d.Move.Pawn, d.Move.To, d.Index, d.Token)
	}
	show(s, out, color)
}

func setMode(s *game.Session, out io.Writer, args []string) {
	if len(args) == 0 {
		s.ToggleLearningMode()
	} else {
		mode, err := matchbox.ParseMode(args[0])
		if err != nil {
			report(out, err)
			return
		}
		s.SetLearningMode(mode)
	}
	fmt.Fprintf(out, "Learning mode: %s\n", s.LearningMode())
}

func show(s *game.Session, out io.Writer, color bool) {
	fmt.Fprintln(out)
	fmt.Fprint(out, s.Render(color))
	if o := s.Outcome(); o.Terminal() {
		fmt.Fprintf(out, "Game over: %s. %s\n", o.Cause(), s.Score())
	}
}

func prompt(s *game.Session) string {
	switch s.Phase() {
	case states.PhaseAwaitingLearning:
		return "Update AI library? (y/n) > "
	case states.PhaseEnded:
		return "Type new for another game > "
	default:
		return fmt.Sprintf("Game %d, your move > ", s.GameNumber())
	}
}

func report(out io.Writer, err error) {
	switch {
	case errors.Is(err, core.ErrIllegalDestination):
		fmt.Fprintln(out, "That pawn can't move there.")
	case errors.Is(err, core.ErrGameOver):
		fmt.Fprintln(out, `The game is over, type "new".`)
	case errors.Is(err, game.ErrLearningPending):
		fmt.Fprintln(out, "Answer y or n first.")
	case errors.Is(err, game.ErrNoPendingUpdate):
		fmt.Fprintln(out, "There is no library update to answer.")
	default:
		fmt.Fprintf(out, "Error: %v\n", err)
	}
}
