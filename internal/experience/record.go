package experience

import (
	"time"

	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
)

// GameRecord is the transcript of one finished game as seen on the event bus
type GameRecord struct {
	GameID       string           `json:"game_id"`
	Number       int              `json:"number"`
	LearningMode string           `json:"learning_mode"`
	StartedAt    time.Time        `json:"started_at"`
	EndedAt      time.Time        `json:"ended_at"`
	Moves        []MoveRecord     `json:"moves"`
	Decisions    []DecisionRecord `json:"decisions,omitempty"`
	Winner       string           `json:"winner"`
	Reason       string           `json:"reason"`
	Cause        string           `json:"cause"`
	Plies        int              `json:"plies"`
	Updates      []UpdateRecord   `json:"updates,omitempty"`
}

// MoveRecord is one applied move
type MoveRecord struct {
	Ply     int    `json:"ply"`
	Side    string `json:"side"`
	Pawn    string `json:"pawn"`
	From    string `json:"from"`
	To      string `json:"to"`
	Capture bool   `json:"capture,omitempty"`
}

// DecisionRecord is the bead the computer drew for one of its moves
type DecisionRecord struct {
	Situation   int    `json:"situation"`
	Orientation string `json:"orientation"`
	Token       string `json:"token"`
}

// UpdateRecord is a learning step applied after the game ended
type UpdateRecord struct {
	Situation int    `json:"situation"`
	Token     string `json:"token"`
	Action    string `json:"action"`
	Before    string `json:"before"`
	After     string `json:"after"`
	Applied   bool   `json:"applied"`
}

// HumanWon reports whether the human side won the game
func (r *GameRecord) HumanWon() bool {
	return r.Winner == core.Human.String()
}

func (r *GameRecord) clone() *GameRecord {
	c := *r
	c.Moves = append([]MoveRecord(nil), r.Moves...)
	c.Decisions = append([]DecisionRecord(nil), r.Decisions...)
	c.Updates = append([]UpdateRecord(nil), r.Updates...)
	return &c
}
