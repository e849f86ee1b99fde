package graphics

import (
	"fmt"
	"os"

	"nesgo/internal/console"
)

// HeadlessBackend runs the console for a fixed number of frames with no
// window, for batch runs (cmd/nesgo -nogui) and integration tests.
type HeadlessBackend struct {
	console *console.Console
	frames  int
	dumpDir string // if non-empty, PPM-dump the final frame here
}

// NewHeadlessBackend builds a backend that steps the console `frames`
// times then returns. dumpDir may be empty to skip the frame dump.
func NewHeadlessBackend(c *console.Console, frames int, dumpDir string) *HeadlessBackend {
	return &HeadlessBackend{console: c, frames: frames, dumpDir: dumpDir}
}

// Run steps the console the configured number of frames, optionally
// dumping the final frame as a PPM image for visual inspection.
func (b *HeadlessBackend) Run() error {
	for i := 0; i < b.frames; i++ {
		b.console.StepFrame()
	}
	if b.dumpDir == "" {
		return nil
	}
	return b.dumpFrame()
}

func (b *HeadlessBackend) dumpFrame() error {
	path := fmt.Sprintf("%s/frame_%04d.ppm", b.dumpDir, b.frames)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame dump: %w", err)
	}
	defer file.Close()

	fb := b.console.Framebuffer()
	fmt.Fprintf(file, "P3\n256 240\n255\n")
	for _, pixel := range fb {
		r := (pixel >> 16) & 0xFF
		g := (pixel >> 8) & 0xFF
		bl := pixel & 0xFF
		fmt.Fprintf(file, "%d %d %d ", r, g, bl)
	}
	return nil
}
