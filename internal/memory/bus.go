// Package memory implements the NES CPU and PPU address buses: internal
// RAM, register mirroring, and the forward to the cartridge mapper.
package memory

// PPUPorts is the CPU-visible register interface the PPU exposes at
// $2000-$2007.
type PPUPorts interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// APUPorts is the CPU-visible register interface the APU stub exposes at
// $4000-$4015 and $4017.
type APUPorts interface {
	WriteRegister(address uint16, value uint8)
	WriteFrameCounter(value uint8)
	ReadStatus() uint8
}

// InputPorts is the CPU-visible controller-port interface at $4016/$4017.
type InputPorts interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Mapper is the subset of cartridge.Mapper the CPU bus forwards
// $4020-$FFFF accesses to.
type Mapper interface {
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, value uint8)
}

// Bus is the CPU-visible NES address space: 2KB internal RAM mirrored
// through $1FFF, the PPU's eight registers mirrored every 8 bytes through
// $3FFF, APU/controller ports at $4000-$4017, and everything from $4020
// up forwarded to the cartridge mapper.
type Bus struct {
	ram   [0x0800]uint8
	ppu   PPUPorts
	apu   APUPorts
	input InputPorts
	mapper Mapper

	dmaCallback func(uint8)
}

// NewBus wires a CPU bus to the components it decodes addresses into.
// The mapper may be nil until a cartridge is loaded; Read/Write treat a
// nil mapper's range as unmapped.
func NewBus(ppu PPUPorts, apu APUPorts, input InputPorts, mapper Mapper) *Bus {
	return &Bus{ppu: ppu, apu: apu, input: input, mapper: mapper}
}

// SetMapper swaps the cartridge mapper, used when a new image is loaded.
func (b *Bus) SetMapper(mapper Mapper) {
	b.mapper = mapper
}

// SetDMACallback installs the handler for $4014 OAMDMA writes. The Console
// owns the CPU-stall bookkeeping, so the bus only forwards the triggering
// write.
func (b *Bus) SetDMACallback(callback func(uint8)) {
	b.dmaCallback = callback
}

// Reset clears internal RAM to its zero power-up state.
func (b *Bus) Reset() {
	for i := range b.ram {
		b.ram[i] = 0
	}
}

// Read decodes a CPU-visible address.
func (b *Bus) Read(address uint16) uint8 {
	switch {
	case address < 0x2000:
		return b.ram[address&0x07FF]

	case address < 0x4000:
		return b.ppu.ReadRegister(0x2000 + address&7)

	case address == 0x4015:
		return b.apu.ReadStatus()

	case address == 0x4016 || address == 0x4017:
		if b.input != nil {
			return b.input.Read(address)
		}
		return 0

	case address < 0x4020:
		return 0

	default:
		if b.mapper != nil {
			return b.mapper.CPURead(address)
		}
		return 0
	}
}

// Write decodes a CPU-visible address.
func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		b.ram[address&0x07FF] = value

	case address < 0x4000:
		b.ppu.WriteRegister(0x2000+address&7, value)

	case address == 0x4014:
		if b.dmaCallback != nil {
			b.dmaCallback(value)
		}

	case address == 0x4016:
		if b.input != nil {
			b.input.Write(address, value)
		}

	case address == 0x4017:
		b.apu.WriteFrameCounter(value)

	case address >= 0x4000 && address <= 0x4015:
		b.apu.WriteRegister(address, value)

	case address < 0x4020:
		// Test-mode registers ($4018-$401F) are ignored.

	default:
		if b.mapper != nil {
			b.mapper.CPUWrite(address, value)
		}
	}
}
