package memory

import (
	"testing"

	"nesgo/internal/cartridge"
)

type fakePPUMapper struct {
	chr       [0x2000]uint8
	mirroring cartridge.Mirror
}

func (f *fakePPUMapper) PPURead(addr uint16) uint8        { return f.chr[addr&0x1FFF] }
func (f *fakePPUMapper) PPUWrite(addr uint16, value uint8) { f.chr[addr&0x1FFF] = value }
func (f *fakePPUMapper) Mirroring() cartridge.Mirror       { return f.mirroring }

func TestPatternTableForwardsToMapper(t *testing.T) {
	mapper := &fakePPUMapper{}
	b := NewPPUBus(mapper)

	b.Write(0x0010, 0x55)
	if got := b.Read(0x0010); got != 0x55 {
		t.Fatalf("pattern table round-trip = %#02x, want 0x55", got)
	}
}

func TestHorizontalMirroring(t *testing.T) {
	mapper := &fakePPUMapper{mirroring: cartridge.MirrorHorizontal}
	b := NewPPUBus(mapper)

	b.Write(0x2000, 0x11) // nametable 0
	if got := b.Read(0x2400); got != 0x11 { // nametable 1 mirrors nametable 0
		t.Fatalf("horizontal mirror $2400 = %#02x, want 0x11", got)
	}
	b.Write(0x2800, 0x22) // nametable 2
	if got := b.Read(0x2C00); got != 0x22 {
		t.Fatalf("horizontal mirror $2C00 = %#02x, want 0x22", got)
	}
}

func TestVerticalMirroring(t *testing.T) {
	mapper := &fakePPUMapper{mirroring: cartridge.MirrorVertical}
	b := NewPPUBus(mapper)

	b.Write(0x2000, 0x33)
	if got := b.Read(0x2800); got != 0x33 { // nametable 2 mirrors nametable 0
		t.Fatalf("vertical mirror $2800 = %#02x, want 0x33", got)
	}
	b.Write(0x2400, 0x44)
	if got := b.Read(0x2C00); got != 0x44 {
		t.Fatalf("vertical mirror $2C00 = %#02x, want 0x44", got)
	}
}

func TestNametableMirrorRangeAliasesDownByOneWindow(t *testing.T) {
	mapper := &fakePPUMapper{mirroring: cartridge.MirrorHorizontal}
	b := NewPPUBus(mapper)

	b.Write(0x2000, 0x66)
	if got := b.Read(0x3000); got != 0x66 {
		t.Fatalf("$3000 should mirror $2000, got %#02x", got)
	}
}

func TestPaletteBackgroundColorMirroring(t *testing.T) {
	mapper := &fakePPUMapper{}
	b := NewPPUBus(mapper)

	b.Write(0x3F00, 0x20)
	if got := b.Read(0x3F10); got != 0x20 {
		t.Fatalf("$3F10 should mirror $3F00, got %#02x", got)
	}
	if got := b.Read(0x3F14); !(b.paletteRAM[0x04] == got) {
		t.Fatalf("$3F14 should mirror $3F04")
	}
}

func TestPaletteDefaultsToBlackBackgroundSlots(t *testing.T) {
	mapper := &fakePPUMapper{}
	b := NewPPUBus(mapper)

	for i := 0; i < 32; i += 4 {
		if b.paletteRAM[i] != 0x0F {
			t.Fatalf("palette slot %d = %#02x, want 0x0F", i, b.paletteRAM[i])
		}
	}
}

func TestPaletteAddressMirroredEvery32Bytes(t *testing.T) {
	mapper := &fakePPUMapper{}
	b := NewPPUBus(mapper)

	b.Write(0x3F05, 0x09)
	if got := b.Read(0x3F25); got != 0x09 {
		t.Fatalf("$3F25 should mirror $3F05, got %#02x", got)
	}
}
