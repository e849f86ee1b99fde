// Package graphics adapts a console.Console to a window: an Ebitengine
// backend for interactive play and a headless backend for batch/test runs.
package graphics

// Backend is the minimal surface cmd/nesgo needs from either graphics
// implementation: run the emulator until it's done, however "done" is
// defined for that backend.
type Backend interface {
	Run() error
}
