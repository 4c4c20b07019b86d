package game

import (
	"strings"

	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
)

// This file contains the terminal rendering of the board.

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorGray   = "\033[90m"

	BgYellow = "\033[43m"
)

var sideColors = [...]string{core.Human: ColorBlue, core.Computer: ColorRed}

// RenderBoard draws b with row 3 on top. The selected pawn gets a yellow
// background and highlighted spaces are marked in green: '*' when empty, or
// the pawn that would be captured. Without color the selection is bracketed
// instead.
func RenderBoard(b *core.Board, selected core.PawnID, highlighted []core.Space, color bool) string {
	const emptySymbol = "·"

	var sb strings.Builder
	sb.Grow((core.Columns*16 + 8) * (core.Rows + 2))

	sb.WriteString("    a   b   c\n")
	for r := core.Rows - 1; r >= 0; r-- {
		sb.WriteByte(byte('1' + r))
		sb.WriteString("  ")
		for c := 0; c < core.Columns; c++ {
			s := core.SpaceAt(c, r)
			id, occupied := b.PawnAt(s)
			target := containsSpace(highlighted, s)

			cell := " " + emptySymbol + "  "
			switch {
			case occupied && id == selected && !color:
				cell = "[" + id.String() + "]"
			case occupied && target && !color:
				cell = "*" + id.String() + " "
			case occupied:
				cell = " " + id.String() + " "
			case target:
				cell = " *  "
			}

			if !color {
				sb.WriteString(cell)
				continue
			}

			switch {
			case occupied && id == selected:
				sb.WriteString(BgYellow + sideColors[id.Side()])
			case target:
				sb.WriteString(ColorGreen)
			case occupied:
				sb.WriteString(sideColors[id.Side()])
			default:
				sb.WriteString(ColorGray)
			}
			sb.WriteString(cell)
			sb.WriteString(ColorReset)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Render draws the session's board with its selection.
func (s *Session) Render(color bool) string {
	return RenderBoard(s.board, s.selected, s.highlighted, color)
}
