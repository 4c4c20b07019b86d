package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mitchelldurbincs/Hexatron/internal/game/core"
	"github.com/mitchelldurbincs/Hexatron/internal/ui/controller"
	"github.com/mitchelldurbincs/Hexatron/internal/ui/layout"
)

// keyCommands maps single key presses to commands
var keyCommands = map[ebiten.Key]controller.Command{
	ebiten.KeyEscape: controller.CommandCancel,
	ebiten.KeyEnter:  controller.CommandNewGame,
	ebiten.KeyL:      controller.CommandToggleLearning,
	ebiten.KeyY:      controller.CommandConfirmLearning,
	ebiten.KeyN:      controller.CommandDenyLearning,
	ebiten.KeyR:      controller.CommandResetLibrary,
}

// keyOrder fixes the order intents are emitted in when several keys go down
// in the same frame
var keyOrder = []ebiten.Key{
	ebiten.KeyEscape,
	ebiten.KeyY,
	ebiten.KeyN,
	ebiten.KeyEnter,
	ebiten.KeyL,
	ebiten.KeyR,
}

// Handler polls mouse and keyboard once per frame and queues intents
type Handler struct {
	// Mouse state
	mouseX, mouseY int

	geometry layout.Geometry
	intents  []controller.Intent
}

func NewHandler(geometry layout.Geometry) *Handler {
	return &Handler{geometry: geometry}
}

// Update polls one frame of input. A left click on the board becomes a click
// intent, a right click cancels the selection.
func (h *Handler) Update() {
	h.mouseX, h.mouseY = ebiten.CursorPosition()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.handleLeftClick()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		h.push(controller.Intent{Command: controller.CommandCancel})
	}

	for _, key := range keyOrder {
		if inpututil.IsKeyJustPressed(key) {
			h.push(controller.Intent{Command: keyCommands[key]})
		}
	}
}

func (h *Handler) handleLeftClick() {
	space := h.geometry.SpaceAt(h.mouseX, h.mouseY)
	if space == core.NoSpace {
		return
	}
	h.push(controller.Intent{Command: controller.CommandClick, Space: space})
}

func (h *Handler) push(in controller.Intent) {
	h.intents = append(h.intents, in)
}

// Drain returns the intents queued since the last call
func (h *Handler) Drain() []controller.Intent {
	out := h.intents
	h.intents = nil
	return out
}

// HoveredSpace is the space under the cursor, or core.NoSpace
func (h *Handler) HoveredSpace() core.Space {
	return h.geometry.SpaceAt(h.mouseX, h.mouseY)
}
