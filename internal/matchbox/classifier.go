package matchbox

import (
	"fmt"

	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
	"github.com/rs/zerolog"
)

// Match is the result of classifying a board.
type Match struct {
	Situation   *Situation
	Orientation Orientation
}

// Index is the decision point the match refers to.
func (m Match) Index() int { return m.Situation.Index }

// Resolve turns a token into a legal computer move on b. Candidates are tried
// in order and the first legal one wins.
func (m Match) Resolve(b *core.Board, tok Token) (core.MoveAction, error) {
	candidates, ok := m.Situation.CandidatesFor(m.Orientation, tok)
	if !ok {
		return core.MoveAction{}, fmt.Errorf("situation %d token %s: %w", m.Index(), tok, ErrUnknownToken)
	}
	for _, c := range candidates {
		move := core.MoveAction{Side: core.Computer, Pawn: c.Pawn, To: c.To}
		if _, err := move.Validate(b); err == nil {
			return move, nil
		}
	}
	return core.MoveAction{}, fmt.Errorf("situation %d %s token %s: %w", m.Index(), m.Orientation, tok, ErrUnresolvableToken)
}

// Classifier maps a board to the first matching situation of its table.
type Classifier struct {
	table  []Situation
	logger zerolog.Logger
}

// NewClassifier creates a classifier over table. A nil table uses Situations().
func NewClassifier(table []Situation, logger zerolog.Logger) *Classifier {
	if table == nil {
		table = Situations()
	}
	return &Classifier{
		table:  table,
		logger: logger.With().Str("component", "Classifier").Logger(),
	}
}

// Table exposes the situations in evaluation order.
func (c *Classifier) Table() []Situation { return c.table }

// Classify walks the table in index order. Within a situation the straight
// patterns are tried before the mirrored ones.
func (c *Classifier) Classify(b *core.Board) (Match, error) {
	for i := range c.table {
		s := &c.table[i]
		for _, o := range []Orientation{Straight, Mirror} {
			for _, p := range s.PatternsFor(o) {
				if p.Matches(b) {
					c.logger.Debug().
						Int("situation", s.Index).
						Str("orientation", o.String()).
						Str("board", b.Layout()).
						Msg("Board classified")
					return Match{Situation: s, Orientation: o}, nil
				}
			}
		}
	}
	c.logger.Warn().Str("board", b.Layout()).Msg("No situation matches board")
	return Match{}, fmt.Errorf("board %s: %w", b.Layout(), ErrNoSituation)
}
