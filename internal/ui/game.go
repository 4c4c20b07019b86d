package ui

import (
	"context"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/mitchelldurbincs/Hexatron/internal/common"
	"github.com/mitchelldurbincs/Hexatron/internal/config"
	"github.com/mitchelldurbincs/Hexatron/internal/ui/controller"
	"github.com/mitchelldurbincs/Hexatron/internal/ui/input"
	"github.com/mitchelldurbincs/Hexatron/internal/ui/layout"
	"github.com/mitchelldurbincs/Hexatron/internal/ui/renderer"
)

const (
	headerHeight = 70
	lineHeight   = 18
	textMargin   = 8
)

var helpLines = []string{
	"Click: pick up / move   Right click, Esc: put down",
	"Enter: new game   L: fast/slow learning   R: reset AI",
}

// UIGame adapts a controller to Ebitengine's game loop
type UIGame struct {
	ctl           *controller.Controller
	inputHandler  *input.Handler
	boardRenderer *renderer.BoardRenderer
	geometry      layout.Geometry
	defaultFont   font.Face

	width, height int
}

// NewUIGame lays the board out for the configured window.
func NewUIGame(ctl *controller.Controller, ui config.UIConfig) *UIGame {
	geometry := layout.Centered(ui.Window.Width, ui.TileSize, headerHeight)
	g := &UIGame{
		ctl:         ctl,
		geometry:    geometry,
		defaultFont: basicfont.Face7x13,
		width:       ui.Window.Width,
		height:      ui.Window.Height,
	}
	g.inputHandler = input.NewHandler(geometry)
	g.boardRenderer = renderer.NewBoardRenderer(geometry, g.defaultFont)
	return g
}

// Update proceeds the game state.
func (g *UIGame) Update() error {
	ctx := context.Background()

	g.inputHandler.Update()
	for _, in := range g.inputHandler.Drain() {
		g.ctl.Apply(ctx, in)
	}
	g.ctl.Tick(ctx)
	return nil
}

// Draw renders the game screen.
func (g *UIGame) Draw(screen *ebiten.Image) {
	screen.Fill(common.BackgroundColor)

	s := g.ctl.Session()
	g.boardRenderer.Draw(screen, renderer.BoardView{
		Board:       s.Board(),
		Selected:    s.Selected(),
		Highlighted: s.Highlighted(),
		Hover:       g.inputHandler.HoveredSpace(),
	})

	for i, line := range g.ctl.Lines() {
		text.Draw(screen, line, g.defaultFont, textMargin, lineHeight*(i+1), common.TextColor)
	}

	y := g.geometry.Bottom() + lineHeight
	if status := g.ctl.Status(); status != "" {
		text.Draw(screen, status, g.defaultFont, textMargin, y, common.PromptColor)
	}
	for i, line := range helpLines {
		text.Draw(screen, line, g.defaultFont, textMargin, y+lineHeight*(i+2), color.Gray{160})
	}
}

// Layout defines the Ebitengine screen size.
func (g *UIGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.width, g.height
}
