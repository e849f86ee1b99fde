//go:build !headless
// +build !headless

package graphics

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"nesgo/internal/config"
	"nesgo/internal/console"
)

// EbitengineBackend drives the NES console from an Ebitengine window: it
// reads keyboard state into the two controller ports once per Update and
// copies the console's framebuffer into the screen once per Draw.
type EbitengineBackend struct {
	console *console.Console
	cfg     *config.Config

	frameImage *ebiten.Image
	keys1      []ebiten.Key // index-aligned with input.Button bit order
	keys2      []ebiten.Key
}

// NewEbitengineBackend builds a backend bound to the given console and
// the key mappings in cfg.
func NewEbitengineBackend(c *console.Console, cfg *config.Config) *EbitengineBackend {
	return &EbitengineBackend{
		console:    c,
		cfg:        cfg,
		frameImage: ebiten.NewImage(256, 240),
		keys1:      mappingToKeys(cfg.Input.Player1Keys),
		keys2:      mappingToKeys(cfg.Input.Player2Keys),
	}
}

// Run opens the window and blocks until it's closed.
func (b *EbitengineBackend) Run() error {
	w, h := b.cfg.WindowResolution()
	ebiten.SetWindowTitle("nesgo")
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(b.cfg.Video.VSync)
	if b.cfg.Video.Filter == "linear" {
		ebiten.SetScreenFilterEnabled(true)
	} else {
		ebiten.SetScreenFilterEnabled(false)
	}
	return ebiten.RunGame(b)
}

// Update implements ebiten.Game: samples keyboard state into both
// controller ports, then advances the console one frame.
func (b *EbitengineBackend) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return fmt.Errorf("quit requested")
	}

	b.console.SetController(0, readButtons(b.keys1))
	b.console.SetController(1, readButtons(b.keys2))
	b.console.StepFrame()
	return nil
}

// Draw implements ebiten.Game: copies the console's framebuffer into the
// screen, scaled and centered to fill the window.
func (b *EbitengineBackend) Draw(screen *ebiten.Image) {
	fb := b.console.Framebuffer()
	pix := make([]byte, 256*240*4)
	for i, p := range fb {
		pix[i*4+0] = byte(p >> 16)
		pix[i*4+1] = byte(p >> 8)
		pix[i*4+2] = byte(p)
		pix[i*4+3] = 0xFF
	}
	b.frameImage.WritePixels(pix)

	screen.Fill(color.RGBA{A: 255})
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	scaleX, scaleY := float64(sw)/256, float64(sh)/240
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((float64(sw)-256*scale)/2, (float64(sh)-240*scale)/2)
	screen.DrawImage(b.frameImage, op)
}

// Layout implements ebiten.Game.
func (b *EbitengineBackend) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// mappingToKeys resolves a config.KeyMapping's key names, in
// A/B/Select/Start/Up/Down/Left/Right bit order, into ebiten.Key values.
// An unrecognized name resolves to -1 and is simply never pressed.
func mappingToKeys(m config.KeyMapping) []ebiten.Key {
	names := []string{m.A, m.B, m.Select, m.Start, m.Up, m.Down, m.Left, m.Right}
	keys := make([]ebiten.Key, len(names))
	for i, name := range names {
		keys[i] = keyByName(name)
	}
	return keys
}

// readButtons packs each mapped key's pressed state into a button byte.
func readButtons(keys []ebiten.Key) uint8 {
	var buttons uint8
	for i, k := range keys {
		if k >= 0 && ebiten.IsKeyPressed(k) {
			buttons |= 1 << uint(i)
		}
	}
	return buttons
}

var keyNames = map[string]ebiten.Key{
	"Up": ebiten.KeyArrowUp, "Down": ebiten.KeyArrowDown,
	"Left": ebiten.KeyArrowLeft, "Right": ebiten.KeyArrowRight,
	"W": ebiten.KeyW, "A": ebiten.KeyA, "S": ebiten.KeyS, "D": ebiten.KeyD,
	"J": ebiten.KeyJ, "K": ebiten.KeyK, "N": ebiten.KeyN, "M": ebiten.KeyM,
	"Return": ebiten.KeyEnter, "Space": ebiten.KeySpace,
	"RShift": ebiten.KeyShiftRight, "RCtrl": ebiten.KeyControlRight,
	"LShift": ebiten.KeyShiftLeft, "LCtrl": ebiten.KeyControlLeft,
}

func keyByName(name string) ebiten.Key {
	if k, ok := keyNames[name]; ok {
		return k
	}
	return -1
}
