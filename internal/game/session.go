package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
	"github.com/mitchelldurbincs/Hexatron/internal/game/events"
	"github.com/mitchelldurbincs/Hexatron/internal/game/rules"
	"github.com/mitchelldurbincs/Hexatron/internal/game/states"
	"github.com/mitchelldurbincs/Hexatron/internal/matchbox"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

var (
	ErrNoSelection     = errors.New("no pawn selected")
	ErrLearningPending = errors.New("library update awaiting confirmation")
	ErrNoPendingUpdate = errors.New("no library update pending")
)

// SessionConfig wires a Session to its collaborators. Only Memory is required.
type SessionConfig struct {
	Memory *matchbox.Memory

	// Classifier defaults to the built-in situation table
	Classifier *matchbox.Classifier
	// Source drives the bead draws; nil seeds one from the clock
	Source rand.Source

	Binding matchbox.Binding
	MaxPool int
	Mode    matchbox.Mode

	// ConfirmUpdates parks a finished game until ConfirmLearning or
	// DenyLearning is called
	ConfirmUpdates bool
	// ManualComputerTurn stops ConfirmDestination after the human move; the
	// caller then runs the reply with PlayComputer
	ManualComputerTurn bool

	Publisher events.Publisher
	Logger    zerolog.Logger
}

// Session is one player's sitting at the board: the current game plus the
// learning settings and the running score. It is not safe for concurrent use.
type Session struct {
	board       *core.Board
	turn        core.Side
	selected    core.PawnID
	highlighted []core.Space
	outcome     rules.Outcome
	last        *matchbox.Decision

	mode           matchbox.Mode
	confirmUpdates bool
	manualComputer bool
	score          Scoreboard

	memory     *matchbox.Memory
	policy     *matchbox.Policy
	updater    *matchbox.Updater
	detector   *rules.OutcomeDetector
	legalMoves *rules.LegalMoveCalculator

	machine   *states.StateMachine
	gctx      *states.GameContext
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewSession creates a session with the first game ready for the human's
// move. The memory must already be loaded.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Memory == nil {
		return nil, errors.New("session needs a library memory")
	}
	logger := cfg.Logger.With().Str("component", "Session").Logger()

	if cfg.Classifier == nil {
		cfg.Classifier = matchbox.NewClassifier(nil, cfg.Logger)
	}
	if cfg.Source == nil {
		logger.Debug().Msg("No random source provided, seeding from clock")
		cfg.Source = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	if cfg.Mode == "" {
		cfg.Mode = matchbox.ModeFast
	}
	if cfg.Publisher == nil {
		cfg.Publisher = events.NewEventBus(cfg.Logger)
	}

	gctx := states.NewGameContext(uuid.NewString(), cfg.Logger)
	s := &Session{
		mode:           cfg.Mode,
		confirmUpdates: cfg.ConfirmUpdates,
		manualComputer: cfg.ManualComputerTurn,
		score:          newScoreboard(),
		memory:         cfg.Memory,
		policy:         matchbox.NewPolicy(cfg.Classifier, cfg.Source, cfg.Logger),
		updater:        matchbox.NewUpdater(cfg.Memory, cfg.Binding, cfg.MaxPool, cfg.Logger),
		detector:       rules.NewOutcomeDetector(cfg.Logger),
		legalMoves:     rules.NewLegalMoveCalculator(),
		machine:        states.NewStateMachine(gctx, cfg.Publisher),
		gctx:           gctx,
		publisher:      cfg.Publisher,
		logger:         logger,
	}

	// The machine starts in Initializing without running its Enter hook.
	gctx.StartTime = time.Now()
	if err := s.setupGame("session started"); err != nil {
		return nil, err
	}
	return s, nil
}

// setupGame lays out a fresh board and hands the move to the human. The
// machine must be in PhaseInitializing.
func (s *Session) setupGame(reason string) error {
	s.board = core.NewBoard()
	s.turn = core.Human
	s.selected = core.NoPawn
	s.highlighted = nil
	s.outcome = rules.Outcome{}
	s.last = nil
	s.gctx.GameNumber++

	if err := s.machine.TransitionTo(states.PhaseHumanTurn, reason); err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	s.publisher.Publish(events.NewGameStartedEvent(s.gctx.GameID, s.gctx.GameNumber, string(s.mode)))

	s.logger.Info().
		Str("game_id", s.gctx.GameID).
		Int("game_number", s.gctx.GameNumber).
		Str("learning_mode", string(s.mode)).
		Msg("Game started")
	return nil
}

// NewGame abandons or clears the current game and starts another. A finished
// game waiting on a learning decision must be confirmed or denied first.
func (s *Session) NewGame() error {
	if s.machine.CurrentPhase() == states.PhaseAwaitingLearning {
		return ErrLearningPending
	}
	if !s.outcome.Terminal() && s.gctx.Ply > 0 {
		s.logger.Info().Int("ply", s.gctx.Ply).Msg("Abandoning unfinished game")
	}

	if err := s.machine.TransitionTo(states.PhaseReset, "new game requested"); err != nil {
		return fmt.Errorf("new game: %w", err)
	}
	s.gctx.GameID = uuid.NewString()
	if err := s.machine.TransitionTo(states.PhaseInitializing, "board cleared"); err != nil {
		return fmt.Errorf("new game: %w", err)
	}
	return s.setupGame("board set up")
}

// checkHumanMove reports why the human may not act right now, if anything.
func (s *Session) checkHumanMove() error {
	if s.outcome.Terminal() {
		return core.ErrGameOver
	}
	if s.turn != core.Human || !s.machine.CurrentPhase().CanReceiveMoves() {
		return core.ErrNotYourTurn
	}
	return nil
}

// SelectPawn picks up one of the human's pawns and highlights where it may
// go. Selecting the pawn that is already selected drops it instead.
func (s *Session) SelectPawn(id core.PawnID) error {
	if err := s.checkHumanMove(); err != nil {
		return err
	}
	if !id.Valid() {
		return fmt.Errorf("select %d: %w", int(id), core.ErrInvalidPawn)
	}
	if id.Side() != core.Human {
		return fmt.Errorf("select %s: %w", id, core.ErrNotYourPawn)
	}
	if s.board.Pawn(id).Captured {
		return fmt.Errorf("select %s: %w", id, core.ErrPawnCaptured)
	}
	if id == s.selected {
		s.CancelSelection()
		return nil
	}

	s.selected = id
	s.highlighted = core.LegalDestinations(s.board, id)
	if s.machine.CurrentPhase() != states.PhasePawnSelected {
		if err := s.machine.TransitionTo(states.PhasePawnSelected, "pawn selected"); err != nil {
			return err
		}
	}
	s.publisher.Publish(events.NewSelectionChangedEvent(s.gctx.GameID, id, s.Highlighted()))
	return nil
}

// CancelSelection drops the selected pawn. Nothing else changes.
func (s *Session) CancelSelection() {
	if s.selected == core.NoPawn {
		return
	}
	s.clearSelection("selection cancelled")
	s.publisher.Publish(events.NewSelectionChangedEvent(s.gctx.GameID, core.NoPawn, nil))
}

func (s *Session) clearSelection(reason string) {
	s.selected = core.NoPawn
	s.highlighted = nil
	if s.machine.CurrentPhase() == states.PhasePawnSelected && !s.outcome.Terminal() {
		if err := s.machine.TransitionTo(states.PhaseHumanTurn, reason); err != nil {
			s.logger.Error().Err(err).Msg("Failed to return to human turn")
		}
	}
}

// ConfirmDestination moves the selected pawn to `to`. Unless the session was
// built with ManualComputerTurn, the computer's reply, the outcome check and
// any automatic learning all happen before it returns.
func (s *Session) ConfirmDestination(ctx context.Context, to core.Space) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.checkHumanMove(); err != nil {
		return err
	}
	if s.selected == core.NoPawn {
		return ErrNoSelection
	}

	move := &core.MoveAction{Side: core.Human, Pawn: s.selected, To: to}
	if !containsSpace(s.highlighted, to) {
		s.reject(move, core.ErrIllegalDestination)
		return core.WrapActionError(move, core.ErrIllegalDestination)
	}

	from := s.board.Pawn(move.Pawn).Space
	capture, err := core.ApplyMoveAction(s.board, move)
	if err != nil {
		s.reject(move, err)
		return err
	}
	s.selected = core.NoPawn
	s.highlighted = nil
	s.recordMove(core.Human, move, from, capture)

	if outcome := s.detector.Evaluate(s.board, core.Human); outcome.Terminal() {
		return s.finish(ctx, outcome, "human move ended the game")
	}

	s.turn = core.Computer
	if err := s.machine.TransitionTo(states.PhaseComputerTurn, "human moved"); err != nil {
		return err
	}
	if s.manualComputer {
		return nil
	}
	return s.computerMove(ctx)
}

func (s *Session) reject(move *core.MoveAction, err error) {
	s.logger.Debug().
		Str("pawn", move.Pawn.String()).
		Str("to", move.To.String()).
		Err(err).
		Msg("Move rejected")
	s.publisher.Publish(events.NewMoveRejectedEvent(s.gctx.GameID, move.Pawn, move.To, err.Error()))
	s.clearSelection("move rejected")
}

// Click is the hit-tested form of the two-step move: clicking one of the
// human's pawns selects (or deselects) it, and with a pawn selected any other
// space is taken as the destination. Other clicks are ignored.
func (s *Session) Click(ctx context.Context, space core.Space) error {
	if err := s.checkHumanMove(); err != nil {
		return err
	}
	if !space.Valid() {
		return fmt.Errorf("click: %w", core.ErrInvalidSpace)
	}
	if id, ok := s.board.PawnAt(space); ok && id.Side() == core.Human {
		return s.SelectPawn(id)
	}
	if s.selected == core.NoPawn {
		return nil
	}
	return s.ConfirmDestination(ctx, space)
}

// PlayComputer runs the computer's reply on a session built with
// ManualComputerTurn.
func (s *Session) PlayComputer(ctx context.Context) error {
	if s.outcome.Terminal() {
		return core.ErrGameOver
	}
	if s.machine.CurrentPhase() != states.PhaseComputerTurn {
		return core.ErrNotYourTurn
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.computerMove(ctx)
}

// computerMove asks the policy for a reply and plays it. Having no reply at
// all loses the game by stalemate.
func (s *Session) computerMove(ctx context.Context) error {
	logger := s.logger.With().Int("ply", s.gctx.Ply).Logger()
	logger.Debug().
		Int("legal_moves", s.legalMoves.CountLegalMoves(s.board, core.Computer)).
		Msg("Computer thinking")

	decision, err := s.policy.Decide(s.board, s.memory)
	if err != nil {
		logger.Warn().Err(err).Str("layout", s.board.Layout()).Msg("Computer has no move")
		s.publisher.Publish(events.NewComputerPassedEvent(s.gctx.GameID, err.Error()))
		return s.finish(ctx, rules.Stalemated(core.Computer), "computer has no move")
	}

	from := s.board.Pawn(decision.Move.Pawn).Space
	capture, err := core.ApplyMoveAction(s.board, &decision.Move)
	if err != nil {
		logger.Error().Err(err).Str("decision", decision.String()).Msg("Computer move failed to apply")
		s.publisher.Publish(events.NewComputerPassedEvent(s.gctx.GameID, err.Error()))
		return s.finish(ctx, rules.Stalemated(core.Computer), "computer move failed")
	}

	s.last = &decision
	s.gctx.HasDecision = true
	s.publisher.Publish(events.NewComputerDecidedEvent(
		s.gctx.GameID,
		decision.Index,
		decision.Orientation.String(),
		decision.Token.String(),
		decision.Move.Pawn,
		decision.Move.To,
	))
	s.recordMove(core.Computer, &decision.Move, from, capture)

	if outcome := s.detector.Evaluate(s.board, core.Computer); outcome.Terminal() {
		return s.finish(ctx, outcome, "computer move ended the game")
	}

	s.turn = core.Human
	return s.machine.TransitionTo(states.PhaseHumanTurn, "computer moved")
}

func (s *Session) recordMove(side core.Side, move *core.MoveAction, from core.Space, capture *core.CaptureDetails) {
	s.gctx.Ply++
	s.publisher.Publish(events.NewMoveExecutedEvent(
		s.gctx.GameID, side, s.gctx.Ply, move.Pawn, from, move.To, capture != nil,
	))
	if capture != nil {
		s.publisher.Publish(events.NewPawnCapturedEvent(
			s.gctx.GameID, s.gctx.Ply, capture.Captured, capture.By, capture.Space,
		))
	}
}

// finish settles the game: score, events and then learning, either at once or
// after the user confirms it.
func (s *Session) finish(ctx context.Context, outcome rules.Outcome, reason string) error {
	s.outcome = outcome
	s.selected = core.NoPawn
	s.highlighted = nil
	s.gctx.Winner = outcome.Winner.String()
	s.score.Record(outcome)

	learn := s.last != nil && s.pendingAction() != matchbox.ActionNone
	var learnErr error
	switch {
	case learn && s.confirmUpdates:
		if err := s.machine.TransitionTo(states.PhaseAwaitingLearning, reason); err != nil {
			return err
		}
	case learn:
		learnErr = s.learn(ctx)
		fallthrough
	default:
		if err := s.machine.TransitionTo(states.PhaseEnded, reason); err != nil {
			return err
		}
	}

	s.publisher.Publish(events.NewGameEndedEvent(
		s.gctx.GameID,
		outcome.Winner,
		outcome.Reason.String(),
		outcome.Cause(),
		s.gctx.Ply,
		s.gctx.Elapsed(),
	))
	s.logger.Info().
		Str("winner", outcome.Winner.String()).
		Str("cause", outcome.Cause()).
		Int("ply", s.gctx.Ply).
		Msg("Game over")
	return learnErr
}

func (s *Session) result() matchbox.Result {
	if s.outcome.HumanWon() {
		return matchbox.ResultWin
	}
	return matchbox.ResultLose
}

func (s *Session) pendingAction() matchbox.Action {
	return s.updater.Binding().ActionFor(s.mode, s.result())
}

// learn applies the update for the finished game under the current mode.
func (s *Session) learn(ctx context.Context) error {
	res, err := s.updater.Apply(ctx, s.mode, s.result(), *s.last)
	if err != nil {
		s.logger.Error().Err(err).Msg("Library update failed")
		return fmt.Errorf("learn from game: %w", err)
	}
	s.publisher.Publish(events.NewLibraryUpdatedEvent(
		s.gctx.GameID,
		res.Index,
		res.Token.String(),
		string(res.Action),
		res.Before.String(),
		res.After.String(),
		res.Applied,
	))
	return nil
}

// ConfirmLearning applies the pending library update and closes the game.
// The learning mode in force now, not at the end of the game, decides the
// update.
func (s *Session) ConfirmLearning(ctx context.Context) error {
	if s.machine.CurrentPhase() != states.PhaseAwaitingLearning {
		return ErrNoPendingUpdate
	}
	learnErr := s.learn(ctx)
	if err := s.machine.TransitionTo(states.PhaseEnded, "library update confirmed"); err != nil {
		return err
	}
	return learnErr
}

// DenyLearning closes the game without touching the library.
func (s *Session) DenyLearning() error {
	if s.machine.CurrentPhase() != states.PhaseAwaitingLearning {
		return ErrNoPendingUpdate
	}
	return s.machine.TransitionTo(states.PhaseEnded, "library update declined")
}

func (s *Session) SetLearningMode(mode matchbox.Mode) {
	if mode == s.mode {
		return
	}
	s.publisher.Publish(events.NewLearningModeChangedEvent(s.gctx.GameID, string(s.mode), string(mode)))
	s.logger.Info().Str("from", string(s.mode)).Str("to", string(mode)).Msg("Learning mode changed")
	s.mode = mode
}

// ToggleLearningMode switches between fast and slow and returns the new mode.
func (s *Session) ToggleLearningMode() matchbox.Mode {
	s.SetLearningMode(s.mode.Toggle())
	return s.mode
}

// ResetLibrary makes the computer forget everything it has learned.
func (s *Session) ResetLibrary(ctx context.Context) error {
	if err := s.memory.Reset(ctx); err != nil {
		return fmt.Errorf("reset library: %w", err)
	}
	header := ""
	if lib := s.memory.Snapshot(); lib != nil {
		header = lib.Header
	}
	s.publisher.Publish(events.NewLibraryResetEvent(s.gctx.GameID, header))
	return nil
}

// Board returns a copy of the current position.
func (s *Session) Board() *core.Board           { return s.board.Clone() }
func (s *Session) Turn() core.Side              { return s.turn }
func (s *Session) Phase() states.GamePhase      { return s.machine.CurrentPhase() }
func (s *Session) Selected() core.PawnID        { return s.selected }
func (s *Session) Outcome() rules.Outcome       { return s.outcome }
func (s *Session) LearningMode() matchbox.Mode  { return s.mode }
func (s *Session) GameID() string               { return s.gctx.GameID }
func (s *Session) GameNumber() int              { return s.gctx.GameNumber }
func (s *Session) Ply() int                     { return s.gctx.Ply }
func (s *Session) History() []states.Transition { return s.machine.GetHistory() }

// Highlighted lists the legal destinations of the selected pawn.
func (s *Session) Highlighted() []core.Space {
	if len(s.highlighted) == 0 {
		return nil
	}
	out := make([]core.Space, len(s.highlighted))
	copy(out, s.highlighted)
	return out
}

// HighlightMask is Highlighted as one flag per space.
func (s *Session) HighlightMask() [core.Rows * core.Columns]bool {
	return s.legalMoves.GetLegalDestinationMask(s.board, s.selected)
}

// LastDecision returns the computer's most recent move in this game.
func (s *Session) LastDecision() (matchbox.Decision, bool) {
	if s.last == nil {
		return matchbox.Decision{}, false
	}
	return *s.last, true
}

func (s *Session) Score() Scoreboard { return s.score.clone() }

func containsSpace(spaces []core.Space, target core.Space) bool {
	for _, s := range spaces {
		if s == target {
			return true
		}
	}
	return false
}
