// Package layout maps between screen pixels and board spaces.
package layout

import "github.com/mitchelldurbincs/Hexatron/internal/game/core"

// Geometry places the 3x3 board on screen with row 3 at the top
type Geometry struct {
	TileSize int
	OffsetX  int
	OffsetY  int
}

// Centered puts the board in the middle of the window horizontally, leaving
// headerHeight pixels above it for text
func Centered(width, tileSize, headerHeight int) Geometry {
	return Geometry{
		TileSize: tileSize,
		OffsetX:  (width - tileSize*core.Columns) / 2,
		OffsetY:  headerHeight,
	}
}

// SpaceAt returns the space under the pixel, or core.NoSpace
func (g Geometry) SpaceAt(x, y int) core.Space {
	if g.TileSize <= 0 || x < g.OffsetX || y < g.OffsetY {
		return core.NoSpace
	}
	col := (x - g.OffsetX) / g.TileSize
	fromTop := (y - g.OffsetY) / g.TileSize
	if col >= core.Columns || fromTop >= core.Rows {
		return core.NoSpace
	}
	return core.SpaceAt(col, core.Rows-1-fromTop)
}

// Origin returns the top-left pixel of a space's tile
func (g Geometry) Origin(s core.Space) (x, y int) {
	return g.OffsetX + s.Col()*g.TileSize, g.OffsetY + (core.Rows-1-s.Row())*g.TileSize
}

// Center returns the middle pixel of a space's tile
func (g Geometry) Center(s core.Space) (x, y int) {
	x, y = g.Origin(s)
	return x + g.TileSize/2, y + g.TileSize/2
}

// Bottom is the first pixel row below the board
func (g Geometry) Bottom() int {
	return g.OffsetY + core.Rows*g.TileSize
}
