package memory

import "testing"

type fakePPUPorts struct {
	reads  map[uint16]uint8
	writes map[uint16]uint8
}

func newFakePPUPorts() *fakePPUPorts {
	return &fakePPUPorts{reads: map[uint16]uint8{}, writes: map[uint16]uint8{}}
}

func (f *fakePPUPorts) ReadRegister(address uint16) uint8 { return f.reads[address] }
func (f *fakePPUPorts) WriteRegister(address uint16, value uint8) {
	f.writes[address] = value
}

type fakeAPUPorts struct {
	writes       map[uint16]uint8
	frameCounter uint8
	status       uint8
}

func newFakeAPUPorts() *fakeAPUPorts {
	return &fakeAPUPorts{writes: map[uint16]uint8{}}
}

func (f *fakeAPUPorts) WriteRegister(address uint16, value uint8) { f.writes[address] = value }
func (f *fakeAPUPorts) WriteFrameCounter(value uint8)             { f.frameCounter = value }
func (f *fakeAPUPorts) ReadStatus() uint8                         { return f.status }

type fakeInputPorts struct {
	lastWrite uint8
}

func (f *fakeInputPorts) Read(address uint16) uint8 {
	if address == 0x4017 {
		return 0x40
	}
	return 1
}
func (f *fakeInputPorts) Write(address uint16, value uint8) { f.lastWrite = value }

type fakeMapper struct {
	reads  map[uint16]uint8
	writes map[uint16]uint8
}

func newFakeMapper() *fakeMapper {
	return &fakeMapper{reads: map[uint16]uint8{}, writes: map[uint16]uint8{}}
}

func (f *fakeMapper) CPURead(addr uint16) uint8  { return f.reads[addr] }
func (f *fakeMapper) CPUWrite(addr uint16, value uint8) { f.writes[addr] = value }

func TestRAMMirroredEvery0x800(t *testing.T) {
	ppu, apu, in, mapper := newFakePPUPorts(), newFakeAPUPorts(), &fakeInputPorts{}, newFakeMapper()
	b := NewBus(ppu, apu, in, mapper)

	b.Write(0x0000, 0x42)
	if got := b.Read(0x0800); got != 0x42 {
		t.Fatalf("mirror at $0800 = %#02x, want 0x42", got)
	}
	if got := b.Read(0x1800); got != 0x42 {
		t.Fatalf("mirror at $1800 = %#02x, want 0x42", got)
	}
}

func TestPPURegisterMirroredEvery8Bytes(t *testing.T) {
	ppu, apu, in, mapper := newFakePPUPorts(), newFakeAPUPorts(), &fakeInputPorts{}, newFakeMapper()
	b := NewBus(ppu, apu, in, mapper)

	b.Write(0x2003, 0x10) // OAMADDR
	b.Write(0x200B, 0x20) // mirror of $2003
	if ppu.writes[0x2003] != 0x20 {
		t.Fatalf("write to $200B should forward as $2003, got %#02x", ppu.writes[0x2003])
	}
}

func TestControllerPortsForwardToInput(t *testing.T) {
	ppu, apu, in, mapper := newFakePPUPorts(), newFakeAPUPorts(), &fakeInputPorts{}, newFakeMapper()
	b := NewBus(ppu, apu, in, mapper)

	b.Write(0x4016, 1)
	if in.lastWrite != 1 {
		t.Fatalf("strobe write not forwarded")
	}
	if got := b.Read(0x4017); got != 0x40 {
		t.Fatalf("$4017 read = %#02x, want 0x40", got)
	}
}

func TestAPUStatusAndFrameCounterRouting(t *testing.T) {
	ppu, apu, in, mapper := newFakePPUPorts(), newFakeAPUPorts(), &fakeInputPorts{}, newFakeMapper()
	b := NewBus(ppu, apu, in, mapper)

	b.Write(0x4000, 0x3F)
	if apu.writes[0x4000] != 0x3F {
		t.Fatalf("APU register write not routed")
	}
	b.Write(0x4017, 0x80)
	if apu.frameCounter != 0x80 {
		t.Fatalf("$4017 should route to WriteFrameCounter, not WriteRegister")
	}
	apu.status = 0x10
	if got := b.Read(0x4015); got != 0x10 {
		t.Fatalf("$4015 read = %#02x, want 0x10", got)
	}
}

func TestOAMDMACallbackFiresOn4014(t *testing.T) {
	ppu, apu, in, mapper := newFakePPUPorts(), newFakeAPUPorts(), &fakeInputPorts{}, newFakeMapper()
	b := NewBus(ppu, apu, in, mapper)

	var page uint8
	b.SetDMACallback(func(p uint8) { page = p })
	b.Write(0x4014, 0x03)
	if page != 0x03 {
		t.Fatalf("DMA callback page = %#02x, want 0x03", page)
	}
}

func TestMapperForwardingAboveDollar4020(t *testing.T) {
	ppu, apu, in, mapper := newFakePPUPorts(), newFakeAPUPorts(), &fakeInputPorts{}, newFakeMapper()
	b := NewBus(ppu, apu, in, mapper)

	b.Write(0x6000, 0x77)
	b.Write(0x8000, 0x99)
	if mapper.writes[0x6000] != 0x77 || mapper.writes[0x8000] != 0x99 {
		t.Fatalf("SRAM/PRG writes not forwarded to mapper: %+v", mapper.writes)
	}

	mapper.reads[0xC000] = 0xAB
	if got := b.Read(0xC000); got != 0xAB {
		t.Fatalf("PRG read = %#02x, want 0xAB", got)
	}
}

func TestUnmappedExpansionRangeReadsZero(t *testing.T) {
	ppu, apu, in, mapper := newFakePPUPorts(), newFakeAPUPorts(), &fakeInputPorts{}, newFakeMapper()
	b := NewBus(ppu, apu, in, mapper)

	if got := b.Read(0x5000); got != 0 {
		t.Fatalf("unmapped $4020-$5FFF read = %#02x, want 0", got)
	}
}
