package game

import (
	"strings"
	"testing"

	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
	"github.com/mitchelldurbincs/Hexatron/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRenderBoard_Plain(t *testing.T) {
	out := RenderBoard(core.NewBoard(), core.NoPawn, nil, false)

	assert.Equal(t, strings.Join([]string{
		"    a   b   c",
		"3   C1  C2  C3 ",
		"2   ·   ·   ·  ",
		"1   H1  H2  H3 ",
		"",
	}, "\n"), out)
}

func TestRenderBoard_SelectionAndTargets(t *testing.T) {
	b := testutil.MustLayout(t, "C1 . C3 / . C2 . / H1 H2 H3")
	out := RenderBoard(b, core.PawnH1, core.LegalDestinations(b, core.PawnH1), false)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "2   *  *C2  ·  ", lines[2])
	assert.Equal(t, "1  [H1] H2  H3 ", lines[3])
}

func TestRenderBoard_Color(t *testing.T) {
	out := RenderBoard(core.NewBoard(), core.PawnH2, []core.Space{core.B2}, true)

	assert.Contains(t, out, BgYellow+ColorBlue+" H2 "+ColorReset)
	assert.Contains(t, out, ColorRed+" C1 "+ColorReset)
	assert.Contains(t, out, ColorGreen+" *  "+ColorReset)
	assert.Contains(t, out, ColorGray+" ·  "+ColorReset)
}
