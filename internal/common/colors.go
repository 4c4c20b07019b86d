package common

import (
	"image/color"

	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
)

// SideColors defines the pawn color for each side
var SideColors = map[core.Side]color.RGBA{
	core.Human:    {50, 100, 200, 255}, // Blue
	core.Computer: {200, 50, 50, 255},  // Red
}

// Tile colors
var (
	LightTileColor     = color.RGBA{200, 190, 170, 255}
	DarkTileColor      = color.RGBA{150, 130, 110, 255}
	SelectedTileColor  = color.RGBA{230, 200, 60, 255}
	HighlightTileColor = color.RGBA{90, 180, 90, 255}
	PawnLabelColor     = color.White
)

// UI colors
var (
	BackgroundColor = color.Black
	GridLineColor   = color.RGBA{50, 50, 50, 255}
	TextColor       = color.White
	PromptColor     = color.RGBA{230, 200, 60, 255}
)

// TileColor returns the checkerboard color of a space
func TileColor(s core.Space) color.RGBA {
	if (s.Col()+s.Row())%2 == 0 {
		return DarkTileColor
	}
	return LightTileColor
}
