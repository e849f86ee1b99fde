package ppu

import "testing"

// fakeBus is a flat 16KB PPU address space for driving the PPU in
// isolation, the way the teacher's PPU tests exercise register semantics
// without a full nametable/mirroring bus behind them.
type fakeBus struct {
	data [0x4000]uint8
}

func (b *fakeBus) Read(addr uint16) uint8  { return b.data[addr&0x3FFF] }
func (b *fakeBus) Write(addr uint16, v uint8) { b.data[addr&0x3FFF] = v }

func advanceTo(t *testing.T, p *PPU, scanline, cycle int) {
	t.Helper()
	for i := 0; i < 200000; i++ {
		s := p.Snapshot()
		if s.Scanline == scanline && s.Cycle == cycle {
			return
		}
		p.Step()
	}
	t.Fatalf("never reached scanline=%d cycle=%d", scanline, cycle)
}

func TestResetSetsVBlankAndClearsLatches(t *testing.T) {
	p := New()
	p.Reset()
	if !p.IsVBlank() {
		t.Fatalf("expected VBlank set after Reset")
	}
	if p.Snapshot().WriteLatch {
		t.Fatalf("expected write latch clear after Reset")
	}
}

func TestPPUSTATUSReadClearsVBlankAndLatch(t *testing.T) {
	p := New()
	p.Reset()
	p.WriteRegister(0x2006, 0x3F) // start a $2006 write sequence
	status := p.ReadRegister(0x2002)
	if status&0x80 == 0 {
		t.Fatalf("expected VBL bit set in the read value")
	}
	if p.IsVBlank() {
		t.Fatalf("VBlank flag should be cleared by the PPUSTATUS read")
	}
	if p.Snapshot().WriteLatch {
		t.Fatalf("PPUSTATUS read should clear the write latch")
	}
}

func TestRegisterMirroringEvery8Bytes(t *testing.T) {
	p := New()
	p.Reset()
	p.WriteRegister(0x2003, 0x10) // OAMADDR via base address
	p.WriteRegister(0x200C, 0x42) // OAMDATA via mirror ($200C & 7 == 4)
	// $200B mirrors OAMADDR ($2003): 0x200B & 7 == 3
	p.WriteRegister(0x200B, 0x20)
	p.WriteRegister(0x2004, 0x99) // OAMDATA at the mirrored OAMADDR
	if got := p.oam[0x20]; got != 0x99 {
		t.Fatalf("mirrored OAMADDR write not honored: oam[0x20]=%#02x", got)
	}
}

func TestPPUScrollDoubleWriteLatchesCoarseAndFineXY(t *testing.T) {
	p := New()
	p.Reset()
	p.WriteRegister(0x2005, 0x7D) // X: coarse=15 (0x0F), fine=5 (0b101)
	p.WriteRegister(0x2005, 0x5E) // Y: coarse=11, fine=6
	if p.x != 5 {
		t.Fatalf("fine X = %d, want 5", p.x)
	}
	// t = fineY(6)<<12 | coarseY(11)<<5 | coarseX(15)
	if p.t != 0x616F {
		t.Fatalf("t = %#04x, want 0x616F (coarse X 15, coarse Y 11, fine Y 6)", p.t)
	}
	if p.Snapshot().WriteLatch {
		t.Fatalf("write latch should toggle back to false after second write")
	}
}

func TestPPUAddrSetsVOnSecondWrite(t *testing.T) {
	p := New()
	p.Reset()
	p.WriteRegister(0x2006, 0x21)
	p.WriteRegister(0x2006, 0x05)
	if p.v != 0x2105 {
		t.Fatalf("v = %#04x, want 0x2105", p.v)
	}
}

func TestPPUDataReadIsBufferedExceptPalette(t *testing.T) {
	p := New()
	bus := &fakeBus{}
	p.SetBus(bus)
	p.Reset()
	bus.data[0x2100] = 0xAB
	bus.data[0x2101] = 0xCD

	p.WriteRegister(0x2006, 0x21)
	p.WriteRegister(0x2006, 0x00)
	first := p.ReadRegister(0x2007)
	if first != 0 {
		t.Fatalf("first PPUDATA read should return the stale buffer (0), got %#02x", first)
	}
	second := p.ReadRegister(0x2007)
	if second != 0xAB {
		t.Fatalf("second PPUDATA read = %#02x, want 0xAB (buffered from first read)", second)
	}

	bus.data[0x3F05] = 0x17
	p.WriteRegister(0x2006, 0x3F)
	p.WriteRegister(0x2006, 0x05)
	paletteRead := p.ReadRegister(0x2007)
	if paletteRead != 0x17 {
		t.Fatalf("palette reads bypass the buffer: got %#02x, want 0x17", paletteRead)
	}
}

func TestPPUDataAutoIncrementByCtrlBit2(t *testing.T) {
	p := New()
	bus := &fakeBus{}
	p.SetBus(bus)
	p.Reset()
	p.WriteRegister(0x2000, 0x04) // increment by 32
	p.WriteRegister(0x2006, 0x20)
	p.WriteRegister(0x2006, 0x00)
	p.WriteRegister(0x2007, 0x11)
	if p.v != 0x2020 {
		t.Fatalf("v after write = %#04x, want 0x2020 (increment 32)", p.v)
	}
}

func TestSpriteOverflowFlagSetAfterNineOnScanline(t *testing.T) {
	p := New()
	bus := &fakeBus{}
	p.SetBus(bus)
	p.Reset()
	p.WriteRegister(0x2001, 0x18) // background + sprites enabled

	for i := 0; i < 9; i++ {
		base := i * 4
		p.oam[base] = 4 // Y=4, visible on scanlines 5-12
		p.oam[base+3] = uint8(i * 10)
	}

	advanceTo(t, p, 5, 1) // the step that reaches cycle 1 runs sprite evaluation

	if !p.spriteOverflow {
		t.Fatalf("expected sprite overflow with 9 sprites on one scanline")
	}
	if p.spriteCount != 8 {
		t.Fatalf("secondary OAM should cap at 8 sprites, got %d", p.spriteCount)
	}
}

func TestSprite0HitOnOpaqueOverlap(t *testing.T) {
	p := New()
	bus := &fakeBus{}
	p.SetBus(bus)
	p.Reset()

	// Opaque pattern (colorIndex 1) for every row of tile 1, shared by the
	// background tile and sprite 0.
	for row := uint16(0); row < 8; row++ {
		bus.data[0x10+row] = 0xFF
		bus.data[0x18+row] = 0x00
	}
	bus.data[0x2000] = 1    // nametable tile (0,0) = tile 1
	bus.data[0x23C0] = 0    // attribute byte: palette 0
	bus.data[0x3F01] = 5    // background palette color
	bus.data[0x3F11] = 10   // sprite palette color

	p.oam[0] = 0 // Y=0 -> visible on scanlines 1-8
	p.oam[1] = 1 // tile 1
	p.oam[2] = 0 // attributes: no flip, front priority, palette 0
	p.oam[3] = 0 // X=0

	// Enable background+sprites and disable the leftmost-8-pixel clip for
	// both layers so X=0 is eligible for the hit test.
	p.WriteRegister(0x2001, 0x1E)

	advanceTo(t, p, 1, 2) // scanline 1, pixel 0: renders during the step that reaches it

	if !p.Snapshot().Sprite0Hit {
		t.Fatalf("expected sprite 0 hit at (0,1)")
	}
	if p.status&0x40 == 0 {
		t.Fatalf("expected PPUSTATUS bit 6 (sprite 0 hit) set")
	}
}

func TestSprite0HitExcludesPixel255(t *testing.T) {
	p := New()
	bus := &fakeBus{}
	p.SetBus(bus)
	p.Reset()
	p.backgroundEnabled = true
	p.spritesEnabled = true
	p.mask = 0x1E

	p.checkSprite0Hit(255, 10)
	if p.sprite0Hit {
		t.Fatalf("pixel 255 must never register a sprite 0 hit")
	}
}

func TestVBlankSetAtScanline241Cycle1AndNMIFires(t *testing.T) {
	p := New()
	p.Reset()
	fired := false
	p.SetNMICallback(func() { fired = true })
	p.WriteRegister(0x2000, 0x80) // NMI enable

	advanceTo(t, p, 240, 340)
	p.Step() // wraps into scanline 241, cycle 0
	p.Step() // cycle 1: VBlank start, NMI fires

	if !p.IsVBlank() {
		t.Fatalf("expected VBlank set at scanline 241 cycle 1")
	}
	if !fired {
		t.Fatalf("expected NMI callback invoked at VBlank start")
	}
}

func TestFrameCompleteCallbackFiresOnWraparound(t *testing.T) {
	p := New()
	p.Reset()
	frames := 0
	p.SetFrameCompleteCallback(func() { frames++ })

	advanceTo(t, p, 260, 340)
	p.Step() // wraps scanline 260 -> -1, completing the frame

	if frames != 1 {
		t.Fatalf("frame complete callback fired %d times, want 1", frames)
	}
	if p.FrameCount() != 1 {
		t.Fatalf("FrameCount = %d, want 1", p.FrameCount())
	}
}

func TestScanlineCallbackDrivesMapperIRQHook(t *testing.T) {
	p := New()
	bus := &fakeBus{}
	p.SetBus(bus)
	p.Reset()
	p.WriteRegister(0x2001, 0x18) // rendering enabled

	ticks := 0
	p.SetScanlineCallback(func() { ticks++ })

	// One tick at dot 260 of the pre-render line (-1) and one at dot 260 of
	// scanline 0; the extra Step past dot 260 must not add a third.
	advanceTo(t, p, 0, 260)
	p.Step()

	if ticks != 2 {
		t.Fatalf("scanline callback fired %d times, want 2", ticks)
	}
}

func TestNESColorToRGBOutOfRangeIsBlack(t *testing.T) {
	if got := NESColorToRGB(64); got != 0 {
		t.Fatalf("NESColorToRGB(64) = %#06x, want 0", got)
	}
}
