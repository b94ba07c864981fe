package cardstack

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// NewFPSWidget creates a node that displays the current FPS and TPS, redrawn
// roughly twice a second with ebitenutil.DebugPrint.
func NewFPSWidget() *Node {
	img := ebiten.NewImage(100, 32)

	node := NewSprite("fps_widget", img)
	node.RenderLayer = 255 // Draw on top

	var sinceRedraw float64
	node.OnUpdate = func(dt float64) {
		sinceRedraw += dt
		if sinceRedraw < 0.5 {
			return
		}
		sinceRedraw = 0

		img.Clear()
		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	return node
}
