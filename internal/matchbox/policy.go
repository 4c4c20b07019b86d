package matchbox

import (
	"fmt"

	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// PoolSource hands out the pool for a decision point. *Memory and *Library
// both satisfy it.
type PoolSource interface {
	Pool(index int) (Pool, error)
}

// Decision is one computer move together with the bead that chose it.
type Decision struct {
	Index       int
	Orientation Orientation
	Token       Token
	Move        core.MoveAction
}

func (d Decision) String() string {
	return fmt.Sprintf("situation %d (%s) token %s: %s to %s", d.Index, d.Orientation, d.Token, d.Move.Pawn, d.Move.To)
}

// Policy picks computer moves by drawing a bead from the pool of the matched
// situation.
type Policy struct {
	classifier *Classifier
	rng        *rand.Rand
	logger     zerolog.Logger
}

// NewPolicy builds a policy. The source makes every draw reproducible.
func NewPolicy(classifier *Classifier, src rand.Source, logger zerolog.Logger) *Policy {
	return &Policy{
		classifier: classifier,
		rng:        rand.New(src),
		logger:     logger.With().Str("component", "Policy").Logger(),
	}
}

// Decide classifies b, draws a token and resolves it to a legal move. Any
// error means the computer has no move this turn.
func (p *Policy) Decide(b *core.Board, pools PoolSource) (Decision, error) {
	match, err := p.classifier.Classify(b)
	if err != nil {
		return Decision{}, err
	}
	pool, err := pools.Pool(match.Index())
	if err != nil {
		return Decision{}, fmt.Errorf("situation %d: %w", match.Index(), err)
	}
	tok, err := pool.Pick(p.rng)
	if err != nil {
		return Decision{}, fmt.Errorf("situation %d: %w", match.Index(), err)
	}
	move, err := match.Resolve(b, tok)
	if err != nil {
		return Decision{}, err
	}

	d := Decision{Index: match.Index(), Orientation: match.Orientation, Token: tok, Move: move}
	p.logger.Debug().
		Int("situation", d.Index).
		Str("orientation", d.Orientation.String()).
		Str("token", tok.String()).
		Str("pool", pool.String()).
		Str("pawn", move.Pawn.String()).
		Str("to", move.To.String()).
		Msg("Computer decided")
	return d, nil
}
