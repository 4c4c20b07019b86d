package game

import (
	"testing"

	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
	"github.com/mitchelldurbincs/Hexatron/internal/game/rules"
	"github.com/stretchr/testify/assert"
)

func TestScoreboard_Record(t *testing.T) {
	sb := newScoreboard()
	assert.Equal(t, 0.0, sb.HumanWinRate())

	sb.Record(rules.Outcome{})
	assert.Equal(t, 0, sb.Played, "non-terminal outcomes are not games")

	sb.Record(rules.Outcome{Winner: core.Human, Reason: rules.ReasonAllCaptured})
	sb.Record(rules.Stalemated(core.Computer))
	sb.Record(rules.Outcome{Winner: core.Computer, Reason: rules.ReasonReachedOtherSide})
	sb.Record(rules.Stalemated(core.Human))

	assert.Equal(t, 4, sb.Played)
	assert.Equal(t, 2, sb.HumanWins)
	assert.Equal(t, 2, sb.ComputerWins)
	assert.Equal(t, 0.5, sb.HumanWinRate())
	assert.Equal(t, map[string]int{
		"all pawns captured":    1,
		"AI is in stalemate":    1,
		"AI reached other side": 1,
		"you are in stalemate":  1,
	}, sb.ByCause)
	assert.Equal(t, "you 2 - 2 AI (4 played)", sb.String())
}

func TestScoreboard_ZeroValue(t *testing.T) {
	var sb Scoreboard
	sb.Record(rules.Stalemated(core.Computer))
	assert.Equal(t, 1, sb.ByCause["AI is in stalemate"])
}

func TestScoreboard_CloneIsIndependent(t *testing.T) {
	sb := newScoreboard()
	sb.Record(rules.Stalemated(core.Computer))

	c := sb.clone()
	c.Record(rules.Stalemated(core.Computer))
	assert.Equal(t, 1, sb.ByCause["AI is in stalemate"])
	assert.Equal(t, 2, c.ByCause["AI is in stalemate"])
}
