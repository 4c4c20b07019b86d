// Package controller drives a game session from UI intents, one frame at a
// time. It holds no graphics state so the window code stays a thin shell.
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/Hexatron/internal/game"
	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
	"github.com/mitchelldurbincs/Hexatron/internal/game/states"
	"github.com/mitchelldurbincs/Hexatron/internal/matchbox"
	"github.com/rs/zerolog"
)

// Command is one thing the player asked for
type Command int

const (
	CommandNone Command = iota
	CommandClick
	CommandCancel
	CommandNewGame
	CommandToggleLearning
	CommandConfirmLearning
	CommandDenyLearning
	CommandResetLibrary
)

func (c Command) String() string {
	switch c {
	case CommandClick:
		return "click"
	case CommandCancel:
		return "cancel"
	case CommandNewGame:
		return "new_game"
	case CommandToggleLearning:
		return "toggle_learning"
	case CommandConfirmLearning:
		return "confirm_learning"
	case CommandDenyLearning:
		return "deny_learning"
	case CommandResetLibrary:
		return "reset_library"
	default:
		return "none"
	}
}

// Intent is a command with the space it targets, if any
type Intent struct {
	Command Command
	Space   core.Space
}

// StatusFrames is how long a status message stays up, at 60 updates a second
const StatusFrames = 120

// Controller owns the UI side of a session. Apply and Tick must be called from
// the update loop; RequestLearningMode may be called from any goroutine.
type Controller struct {
	session *game.Session
	aiDelay int
	aiTimer int

	status       string
	statusFrames int

	modes  chan matchbox.Mode
	logger zerolog.Logger
}

// New wraps a session built with ManualComputerTurn. The computer replies
// aiDelayFrames ticks after the human move.
func New(session *game.Session, aiDelayFrames int, logger zerolog.Logger) *Controller {
	return &Controller{
		session: session,
		aiDelay: aiDelayFrames,
		modes:   make(chan matchbox.Mode, 1),
		logger:  logger.With().Str("component", "ui_controller").Logger(),
	}
}

func (c *Controller) Session() *game.Session { return c.session }

// RequestLearningMode queues a mode change for the next Tick. Only the latest
// request is kept.
func (c *Controller) RequestLearningMode(mode matchbox.Mode) {
	for {
		select {
		case c.modes <- mode:
			return
		default:
		}
		select {
		case <-c.modes:
		default:
		}
	}
}

// Apply carries out one intent. Refused intents become a status message.
func (c *Controller) Apply(ctx context.Context, in Intent) {
	var err error
	switch in.Command {
	case CommandClick:
		err = c.session.Click(ctx, in.Space)
	case CommandCancel:
		c.session.CancelSelection()
	case CommandNewGame:
		err = c.session.NewGame()
		if err == nil {
			c.aiTimer = 0
			c.clearStatus()
		}
	case CommandToggleLearning:
		mode := c.session.ToggleLearningMode()
		c.setStatus(fmt.Sprintf("learning mode: %s", mode))
	case CommandConfirmLearning:
		err = c.session.ConfirmLearning(ctx)
		if err == nil {
			c.setStatus("AI library updated")
		}
	case CommandDenyLearning:
		err = c.session.DenyLearning()
		if err == nil {
			c.setStatus("AI library left unchanged")
		}
	case CommandResetLibrary:
		err = c.session.ResetLibrary(ctx)
		if err == nil {
			c.setStatus("AI library reset to defaults")
		}
	default:
		return
	}

	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("command", in.Command.String()).
			Str("space", in.Space.String()).
			Msg("Intent refused")
		c.setStatus(refusal(err))
	}
}

// Tick advances one frame: pending mode changes, the computer's delayed
// reply and the status timer
func (c *Controller) Tick(ctx context.Context) {
	select {
	case mode := <-c.modes:
		if mode != c.session.LearningMode() {
			c.session.SetLearningMode(mode)
			c.setStatus(fmt.Sprintf("learning mode: %s (config)", mode))
		}
	default:
	}

	if c.session.Phase() == states.PhaseComputerTurn {
		c.aiTimer++
		if c.aiTimer >= c.aiDelay {
			c.aiTimer = 0
			if err := c.session.PlayComputer(ctx); err != nil {
				c.logger.Error().Err(err).Msg("Computer move failed")
				c.setStatus(refusal(err))
			}
		}
	} else {
		c.aiTimer = 0
	}

	if c.statusFrames > 0 {
		c.statusFrames--
		if c.statusFrames == 0 {
			c.status = ""
		}
	}
}

// Status is the transient message, empty when none is showing
func (c *Controller) Status() string { return c.status }

// Lines is the text shown above the board, top to bottom
func (c *Controller) Lines() []string {
	s := c.session
	lines := []string{
		fmt.Sprintf("Game %d   learning: %s   %s", s.GameNumber(), s.LearningMode(), s.Score()),
		c.prompt(),
	}
	if d, ok := s.LastDecision(); ok {
		lines = append(lines, fmt.Sprintf("AI drew %s for situation %d", d.Token, d.Index))
	}
	return lines
}

func (c *Controller) prompt() string {
	s := c.session
	switch s.Phase() {
	case states.PhaseHumanTurn:
		return "Your move: pick up a pawn"
	case states.PhasePawnSelected:
		return fmt.Sprintf("Move %s to a green square (Esc cancels)", s.Selected())
	case states.PhaseComputerTurn:
		return "AI is thinking..."
	case states.PhaseAwaitingLearning:
		return s.Outcome().Cause() + "  Update AI library? (Y/N)"
	case states.PhaseEnded:
		return s.Outcome().Cause() + "  Enter: new game"
	default:
		return ""
	}
}

func (c *Controller) setStatus(msg string) {
	c.status = msg
	c.statusFrames = StatusFrames
}

func (c *Controller) clearStatus() {
	c.status = ""
	c.statusFrames = 0
}

func refusal(err error) string {
	switch {
	case errors.Is(err, core.ErrIllegalDestination):
		return "that pawn can't move there"
	case errors.Is(err, core.ErrGameOver):
		return "game over, press Enter for a new game"
	case errors.Is(err, core.ErrNotYourTurn):
		return "wait for the AI to move"
	case errors.Is(err, game.ErrLearningPending):
		return "answer Y or N first"
	case errors.Is(err, game.ErrNoPendingUpdate):
		return "no library update to answer"
	default:
		return err.Error()
	}
}
