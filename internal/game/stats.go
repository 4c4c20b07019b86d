package game

import (
	"fmt"

	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
	"github.com/mitchelldurbincs/Hexatron/internal/game/rules"
)

// Scoreboard tallies finished games for the life of a session. Abandoned games
// are not counted.
type Scoreboard struct {
	Played       int
	HumanWins    int
	ComputerWins int
	// ByCause counts games by the line shown on the result screen
	ByCause map[string]int
}

func newScoreboard() Scoreboard {
	return Scoreboard{ByCause: make(map[string]int)}
}

// Record adds a finished game. Non-terminal outcomes are ignored.
func (sb *Scoreboard) Record(o rules.Outcome) {
	if !o.Terminal() {
		return
	}
	if sb.ByCause == nil {
		sb.ByCause = make(map[string]int)
	}
	sb.Played++
	if o.Winner == core.Human {
		sb.HumanWins++
	} else {
		sb.ComputerWins++
	}
	sb.ByCause[o.Cause()]++
}

// HumanWinRate is the share of finished games the human won, 0 before any.
func (sb Scoreboard) HumanWinRate() float64 {
	if sb.Played == 0 {
		return 0
	}
	return float64(sb.HumanWins) / float64(sb.Played)
}

func (sb Scoreboard) String() string {
	return fmt.Sprintf("you %d - %d AI (%d played)", sb.HumanWins, sb.ComputerWins, sb.Played)
}

func (sb Scoreboard) clone() Scoreboard {
	c := sb
	c.ByCause = make(map[string]int, len(sb.ByCause))
	for k, v := range sb.ByCause {
		c.ByCause[k] = v
	}
	return c
}
