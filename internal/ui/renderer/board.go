package renderer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/Hexatron/internal/common"
	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
	"github.com/mitchelldurbincs/Hexatron/internal/ui/layout"
)

// HoverHueShift lightens the tile under the cursor
const HoverHueShift = 25

// BoardView is everything the renderer needs to know about one frame
type BoardView struct {
	Board       *core.Board
	Selected    core.PawnID
	Highlighted []core.Space
	Hover       core.Space
}

type BoardRenderer struct {
	geometry    layout.Geometry
	defaultFont font.Face
}

// NewBoardRenderer returns a renderer ready to use.
func NewBoardRenderer(geometry layout.Geometry, f font.Face) *BoardRenderer {
	return &BoardRenderer{geometry: geometry, defaultFont: f}
}

// Draw renders the board on the supplied Ebiten screen.
func (br *BoardRenderer) Draw(screen *ebiten.Image, v BoardView) {
	if v.Board == nil {
		return
	}
	size := float32(br.geometry.TileSize)

	selectedAt := core.NoSpace
	if v.Selected != core.NoPawn {
		selectedAt = v.Board.Pawn(v.Selected).Space
	}

	for i := 0; i < core.Rows*core.Columns; i++ {
		s := core.Space(i)
		x, y := br.geometry.Origin(s)

		// Background pass
		fill := common.TileColor(s)
		switch {
		case s == selectedAt:
			fill = common.SelectedTileColor
		case isHighlighted(v.Highlighted, s):
			fill = common.HighlightTileColor
		}
		if s == v.Hover {
			fill = shiftColor(fill, HoverHueShift)
		}
		vector.DrawFilledRect(screen, float32(x), float32(y), size, size, fill, false)
		vector.StrokeRect(screen, float32(x), float32(y), size, size, 1, common.GridLineColor, false)

		// Pawn pass
		id, ok := v.Board.PawnAt(s)
		if !ok {
			continue
		}
		cx, cy := br.geometry.Center(s)
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), size*0.35, common.SideColors[id.Side()], true)

		if br.defaultFont != nil {
			label := id.String()
			b := text.BoundString(br.defaultFont, label)
			textW := b.Max.X - b.Min.X
			textH := b.Max.Y - b.Min.Y
			text.Draw(screen, label, br.defaultFont, cx-textW/2, cy+textH/2, common.PawnLabelColor)
		}
	}
}

func isHighlighted(spaces []core.Space, s core.Space) bool {
	for _, h := range spaces {
		if h == s {
			return true
		}
	}
	return false
}

// shiftColor returns a slightly lighter version of c.
func shiftColor(c color.Color, amount int) color.RGBA {
	r, g, b, a := c.RGBA()
	inc := uint32(amount) << 8 // amount*256

	r = clamp16(r + inc)
	g = clamp16(g + inc)
	b = clamp16(b + inc)
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func clamp16(v uint32) uint32 {
	const max = 0xFFFF
	if v > max {
		return max
	}
	return v
}
