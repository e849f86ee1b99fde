package cartridge

// uxrom implements mapper 2 (UxROM): a single bank-select register at
// $8000-$FFFF selects the 16KB bank visible at $8000-$BFFF; $C000-$FFFF is
// permanently fixed to the last bank. CHR is always 8KB RAM.
type uxrom struct {
	cart     *Cartridge
	prgBanks int
	selected uint8
}

func newUxROM(cart *Cartridge) *uxrom {
	return &uxrom{cart: cart, prgBanks: len(cart.PRG) / prgBankSize}
}

func (m *uxrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0xC000:
		bank := m.prgBanks - 1
		return m.cart.PRG[bank*prgBankSize+int(addr&0x3FFF)]
	case addr >= 0x8000:
		bank := int(m.selected) % m.prgBanks
		return m.cart.PRG[bank*prgBankSize+int(addr&0x3FFF)]
	case addr >= 0x6000:
		return m.cart.SRAM[addr-0x6000]
	default:
		return 0
	}
}

func (m *uxrom) CPUWrite(addr uint16, value uint8) {
	switch {
	case addr >= 0x8000:
		m.selected = value
	case addr >= 0x6000:
		m.cart.SRAM[addr-0x6000] = value
	}
}

func (m *uxrom) PPURead(addr uint16) uint8 {
	return m.cart.CHR[addr&0x1FFF]
}

func (m *uxrom) PPUWrite(addr uint16, value uint8) {
	m.cart.CHR[addr&0x1FFF] = value
}

func (m *uxrom) Mirroring() Mirror { return m.cart.mirror }
func (m *uxrom) IRQPending() bool  { return false }
func (m *uxrom) ClockScanline()    {}
