// Package console owns every NES component and drives the system clock:
// it is the single scheduler spec.md's Console role describes, stepping
// the CPU and fanning each instruction's cycles out to the PPU. The APU is
// a register sink only and is never clocked.
package console

import (
	"nesgo/internal/apu"
	"nesgo/internal/cartridge"
	"nesgo/internal/cpu"
	"nesgo/internal/input"
	"nesgo/internal/memory"
	"nesgo/internal/ppu"
)

// Console wires the CPU, PPU, APU, buses, and controller ports together
// and advances them in lockstep: one CPU instruction, then three PPU dots
// per CPU cycle.
type Console struct {
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	APU    *apu.APU
	Bus    *memory.Bus
	PPUBus *memory.PPUBus
	Input  *input.Ports

	cart *cartridge.Cartridge

	cpuCycles  uint64
	frameCount uint64

	dmaInProgress    bool
	dmaSuspendCycles uint64
	nmiPending       bool
}

// New creates a Console with no cartridge loaded. Load must be called
// before StepFrame/StepInstruction produce meaningful output.
func New() *Console {
	c := &Console{
		PPU:   ppu.New(),
		APU:   apu.New(),
		Input: input.NewPorts(),
	}

	c.Bus = memory.NewBus(c.PPU, c.APU, c.Input, nil)
	c.CPU = cpu.New(c.Bus)

	c.PPU.SetNMICallback(c.triggerNMI)
	c.PPU.SetFrameCompleteCallback(c.handleFrameComplete)
	c.PPU.SetScanlineCallback(c.clockMapperIRQ)
	c.Bus.SetDMACallback(c.TriggerOAMDMA)

	c.Reset()
	return c
}

// Load parses an iNES image, installs its mapper on both buses, and
// resets the system so PC starts at the cartridge's reset vector.
func (c *Console) Load(image []byte) error {
	cart, err := cartridge.LoadBytes(image)
	if err != nil {
		return err
	}

	c.cart = cart
	c.Bus.SetMapper(cart.Mapper())
	c.PPUBus = memory.NewPPUBus(cart.Mapper())
	c.PPU.SetBus(c.PPUBus)

	c.Reset()
	return nil
}

// Reset resets every component and the Console's own timing state.
func (c *Console) Reset() {
	c.CPU.Reset()
	c.PPU.Reset()
	c.APU.Reset()
	c.Bus.Reset()
	c.Input.Reset()

	c.cpuCycles = 0
	c.frameCount = 0
	c.dmaInProgress = false
	c.dmaSuspendCycles = 0
	c.nmiPending = false
}

func (c *Console) triggerNMI() {
	c.nmiPending = true
}

func (c *Console) handleFrameComplete() {
	c.frameCount = c.PPU.FrameCount()
}

// clockMapperIRQ is the PPU's per-scanline hook: it clocks the mapper's
// scanline IRQ counter (MMC3) and reflects the result onto the CPU's
// level-sensitive IRQ line.
func (c *Console) clockMapperIRQ() {
	if c.cart == nil {
		return
	}
	mapper := c.cart.Mapper()
	mapper.ClockScanline()
	c.CPU.SetIRQ(mapper.IRQPending())
}

// StepInstruction executes exactly one CPU instruction, advancing the
// PPU three dots per CPU cycle consumed, and
// returns the cycle count the instruction took (DMA stall cycles count
// as 1 each, matching real hardware).
func (c *Console) StepInstruction() uint8 {
	var cycles uint64

	if c.dmaSuspendCycles > 0 {
		cycles = 1
		c.dmaSuspendCycles--
		if c.dmaSuspendCycles == 0 {
			c.dmaInProgress = false
		}
	} else {
		if c.nmiPending {
			c.CPU.TriggerNMI()
			c.nmiPending = false
		}
		cycles = c.CPU.Step()
	}

	for i := uint64(0); i < cycles*3; i++ {
		c.PPU.Step()
	}

	c.cpuCycles += cycles
	return uint8(cycles)
}

// StepFrame runs instructions until the PPU completes one full frame.
func (c *Console) StepFrame() {
	target := c.frameCount + 1
	for c.frameCount < target {
		c.StepInstruction()
	}
}

// TriggerOAMDMA performs a $4014 OAM DMA transfer: 256 bytes copied from
// `page<<8` into PPU OAM, stalling the CPU 513 cycles (514 if the
// transfer starts on an odd CPU cycle).
func (c *Console) TriggerOAMDMA(page uint8) {
	if c.dmaInProgress {
		return
	}

	dmaCycles := uint64(513)
	if c.cpuCycles%2 == 1 {
		dmaCycles = 514
	}
	c.dmaInProgress = true
	c.dmaSuspendCycles = dmaCycles

	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		c.PPU.WriteOAM(uint8(i), c.Bus.Read(base+uint16(i)))
	}
}

// SetController replaces a controller port's eight button states, packed
// A/B/Select/Start/Up/Down/Left/Right from bit 0.
func (c *Console) SetController(port int, buttons uint8) {
	var ctrl *input.Controller
	switch port {
	case 0:
		ctrl = c.Input.Controller1
	case 1:
		ctrl = c.Input.Controller2
	default:
		return
	}
	var bits [8]bool
	for i := range bits {
		bits[i] = buttons&(1<<uint(i)) != 0
	}
	ctrl.SetButtons(bits)
}

// Framebuffer returns the current 256x240 frame, row-major 0x00RRGGBB
// (the alpha byte is left zero).
func (c *Console) Framebuffer() []uint32 {
	fb := c.PPU.FrameBuffer()
	return fb[:]
}

// CPUState returns a snapshot of the CPU's registers and flags.
func (c *Console) CPUState() cpu.State {
	return c.CPU.Snapshot()
}

// PPUState returns a snapshot of the PPU's registers and scanline timing.
func (c *Console) PPUState() ppu.State {
	return c.PPU.Snapshot()
}

// Peek reads a CPU-visible byte with no side effects, for debuggers and
// memory viewers: PPU register reads that would otherwise clear
// VBlank/sprite-0-hit ($2002) or advance the PPUDATA read buffer/address
// ($2007) go through PPU.PeekRegister instead of the normal register path.
func (c *Console) Peek(addr uint16) uint8 {
	if addr >= 0x2000 && addr < 0x4000 {
		return c.PPU.PeekRegister(0x2000 + addr&7)
	}
	return c.Bus.Read(addr)
}
