package cpu

// opcode describes one entry of the 256-slot dispatch table: its
// addressing mode, base cycle cost, whether a page-crossing indexed
// access adds a cycle, and the function that performs the operation.
// Unlike a mnemonic-keyed switch, this puts every fact about an opcode
// in one place and makes "which opcodes take a page-cross penalty" a
// field instead of a second parallel switch.
type opcode struct {
	name             string
	mode             AddressingMode
	cycles           uint8
	pageCrossPenalty bool
	exec             func(cpu *CPU, addr uint16, pageCrossed bool) uint8
}

// undefined is what opcodeTable entries default to before init fills in
// the real ones. The opcodes init leaves on it (ANC, ALR, ARR, XAA, LXA,
// SBX, SHA, SHX, SHY, TAS, LAS) run as a 2-cycle NOP that also skips the
// byte after the opcode.
var undefined = opcode{name: "???", mode: Implied, cycles: 2, exec: func(cpu *CPU, addr uint16, crossed bool) uint8 {
	cpu.PC++
	return 0
}}

var opcodeTable [256]opcode

func init() {
	for i := range opcodeTable {
		opcodeTable[i] = undefined
	}

	op := func(code uint8, name string, mode AddressingMode, cycles uint8, penalty bool, exec func(*CPU, uint16, bool) uint8) {
		opcodeTable[code] = opcode{name: name, mode: mode, cycles: cycles, pageCrossPenalty: penalty, exec: exec}
	}
	noCross := func(f func(*CPU, uint16) uint8) func(*CPU, uint16, bool) uint8 {
		return func(cpu *CPU, addr uint16, _ bool) uint8 { return f(cpu, addr) }
	}

	// Load/Store
	op(0xA9, "LDA", Immediate, 2, false, noCross((*CPU).lda))
	op(0xA5, "LDA", ZeroPage, 3, false, noCross((*CPU).lda))
	op(0xB5, "LDA", ZeroPageX, 4, false, noCross((*CPU).lda))
	op(0xAD, "LDA", Absolute, 4, false, noCross((*CPU).lda))
	op(0xBD, "LDA", AbsoluteX, 4, true, noCross((*CPU).lda))
	op(0xB9, "LDA", AbsoluteY, 4, true, noCross((*CPU).lda))
	op(0xA1, "LDA", IndexedIndirect, 6, false, noCross((*CPU).lda))
	op(0xB1, "LDA", IndirectIndexed, 5, true, noCross((*CPU).lda))

	op(0xA2, "LDX", Immediate, 2, false, noCross((*CPU).ldx))
	op(0xA6, "LDX", ZeroPage, 3, false, noCross((*CPU).ldx))
	op(0xB6, "LDX", ZeroPageY, 4, false, noCross((*CPU).ldx))
	op(0xAE, "LDX", Absolute, 4, false, noCross((*CPU).ldx))
	op(0xBE, "LDX", AbsoluteY, 4, true, noCross((*CPU).ldx))

	op(0xA0, "LDY", Immediate, 2, false, noCross((*CPU).ldy))
	op(0xA4, "LDY", ZeroPage, 3, false, noCross((*CPU).ldy))
	op(0xB4, "LDY", ZeroPageX, 4, false, noCross((*CPU).ldy))
	op(0xAC, "LDY", Absolute, 4, false, noCross((*CPU).ldy))
	op(0xBC, "LDY", AbsoluteX, 4, true, noCross((*CPU).ldy))

	op(0x85, "STA", ZeroPage, 3, false, noCross((*CPU).sta))
	op(0x95, "STA", ZeroPageX, 4, false, noCross((*CPU).sta))
	op(0x8D, "STA", Absolute, 4, false, noCross((*CPU).sta))
	op(0x9D, "STA", AbsoluteX, 5, false, noCross((*CPU).sta))
	op(0x99, "STA", AbsoluteY, 5, false, noCross((*CPU).sta))
	op(0x81, "STA", IndexedIndirect, 6, false, noCross((*CPU).sta))
	op(0x91, "STA", IndirectIndexed, 6, false, noCross((*CPU).sta))

	op(0x86, "STX", ZeroPage, 3, false, noCross((*CPU).stx))
	op(0x96, "STX", ZeroPageY, 4, false, noCross((*CPU).stx))
	op(0x8E, "STX", Absolute, 4, false, noCross((*CPU).stx))

	op(0x84, "STY", ZeroPage, 3, false, noCross((*CPU).sty))
	op(0x94, "STY", ZeroPageX, 4, false, noCross((*CPU).sty))
	op(0x8C, "STY", Absolute, 4, false, noCross((*CPU).sty))

	// Arithmetic
	op(0x69, "ADC", Immediate, 2, false, noCross((*CPU).adc))
	op(0x65, "ADC", ZeroPage, 3, false, noCross((*CPU).adc))
	op(0x75, "ADC", ZeroPageX, 4, false, noCross((*CPU).adc))
	op(0x6D, "ADC", Absolute, 4, false, noCross((*CPU).adc))
	op(0x7D, "ADC", AbsoluteX, 4, true, noCross((*CPU).adc))
	op(0x79, "ADC", AbsoluteY, 4, true, noCross((*CPU).adc))
	op(0x61, "ADC", IndexedIndirect, 6, false, noCross((*CPU).adc))
	op(0x71, "ADC", IndirectIndexed, 5, true, noCross((*CPU).adc))

	op(0xE9, "SBC", Immediate, 2, false, noCross((*CPU).sbc))
	op(0xEB, "SBC", Immediate, 2, false, noCross((*CPU).sbc)) // unofficial twin
	op(0xE5, "SBC", ZeroPage, 3, false, noCross((*CPU).sbc))
	op(0xF5, "SBC", ZeroPageX, 4, false, noCross((*CPU).sbc))
	op(0xED, "SBC", Absolute, 4, false, noCross((*CPU).sbc))
	op(0xFD, "SBC", AbsoluteX, 4, true, noCross((*CPU).sbc))
	op(0xF9, "SBC", AbsoluteY, 4, true, noCross((*CPU).sbc))
	op(0xE1, "SBC", IndexedIndirect, 6, false, noCross((*CPU).sbc))
	op(0xF1, "SBC", IndirectIndexed, 5, true, noCross((*CPU).sbc))

	// Logical
	op(0x29, "AND", Immediate, 2, false, noCross((*CPU).and))
	op(0x25, "AND", ZeroPage, 3, false, noCross((*CPU).and))
	op(0x35, "AND", ZeroPageX, 4, false, noCross((*CPU).and))
	op(0x2D, "AND", Absolute, 4, false, noCross((*CPU).and))
	op(0x3D, "AND", AbsoluteX, 4, true, noCross((*CPU).and))
	op(0x39, "AND", AbsoluteY, 4, true, noCross((*CPU).and))
	op(0x21, "AND", IndexedIndirect, 6, false, noCross((*CPU).and))
	op(0x31, "AND", IndirectIndexed, 5, true, noCross((*CPU).and))

	op(0x09, "ORA", Immediate, 2, false, noCross((*CPU).ora))
	op(0x05, "ORA", ZeroPage, 3, false, noCross((*CPU).ora))
	op(0x15, "ORA", ZeroPageX, 4, false, noCross((*CPU).ora))
	op(0x0D, "ORA", Absolute, 4, false, noCross((*CPU).ora))
	op(0x1D, "ORA", AbsoluteX, 4, true, noCross((*CPU).ora))
	op(0x19, "ORA", AbsoluteY, 4, true, noCross((*CPU).ora))
	op(0x01, "ORA", IndexedIndirect, 6, false, noCross((*CPU).ora))
	op(0x11, "ORA", IndirectIndexed, 5, true, noCross((*CPU).ora))

	op(0x49, "EOR", Immediate, 2, false, noCross((*CPU).eor))
	op(0x45, "EOR", ZeroPage, 3, false, noCross((*CPU).eor))
	op(0x55, "EOR", ZeroPageX, 4, false, noCross((*CPU).eor))
	op(0x4D, "EOR", Absolute, 4, false, noCross((*CPU).eor))
	op(0x5D, "EOR", AbsoluteX, 4, true, noCross((*CPU).eor))
	op(0x59, "EOR", AbsoluteY, 4, true, noCross((*CPU).eor))
	op(0x41, "EOR", IndexedIndirect, 6, false, noCross((*CPU).eor))
	op(0x51, "EOR", IndirectIndexed, 5, true, noCross((*CPU).eor))

	// Shift/rotate
	op(0x0A, "ASL", Accumulator, 2, false, noCross((*CPU).aslAcc))
	op(0x06, "ASL", ZeroPage, 5, false, noCross((*CPU).asl))
	op(0x16, "ASL", ZeroPageX, 6, false, noCross((*CPU).asl))
	op(0x0E, "ASL", Absolute, 6, false, noCross((*CPU).asl))
	op(0x1E, "ASL", AbsoluteX, 7, false, noCross((*CPU).asl))

	op(0x4A, "LSR", Accumulator, 2, false, noCross((*CPU).lsrAcc))
	op(0x46, "LSR", ZeroPage, 5, false, noCross((*CPU).lsr))
	op(0x56, "LSR", ZeroPageX, 6, false, noCross((*CPU).lsr))
	op(0x4E, "LSR", Absolute, 6, false, noCross((*CPU).lsr))
	op(0x5E, "LSR", AbsoluteX, 7, false, noCross((*CPU).lsr))

	op(0x2A, "ROL", Accumulator, 2, false, noCross((*CPU).rolAcc))
	op(0x26, "ROL", ZeroPage, 5, false, noCross((*CPU).rol))
	op(0x36, "ROL", ZeroPageX, 6, false, noCross((*CPU).rol))
	op(0x2E, "ROL", Absolute, 6, false, noCross((*CPU).rol))
	op(0x3E, "ROL", AbsoluteX, 7, false, noCross((*CPU).rol))

	op(0x6A, "ROR", Accumulator, 2, false, noCross((*CPU).rorAcc))
	op(0x66, "ROR", ZeroPage, 5, false, noCross((*CPU).ror))
	op(0x76, "ROR", ZeroPageX, 6, false, noCross((*CPU).ror))
	op(0x6E, "ROR", Absolute, 6, false, noCross((*CPU).ror))
	op(0x7E, "ROR", AbsoluteX, 7, false, noCross((*CPU).ror))

	// Comparison
	op(0xC9, "CMP", Immediate, 2, false, noCross((*CPU).cmp))
	op(0xC5, "CMP", ZeroPage, 3, false, noCross((*CPU).cmp))
	op(0xD5, "CMP", ZeroPageX, 4, false, noCross((*CPU).cmp))
	op(0xCD, "CMP", Absolute, 4, false, noCross((*CPU).cmp))
	op(0xDD, "CMP", AbsoluteX, 4, true, noCross((*CPU).cmp))
	op(0xD9, "CMP", AbsoluteY, 4, true, noCross((*CPU).cmp))
	op(0xC1, "CMP", IndexedIndirect, 6, false, noCross((*CPU).cmp))
	op(0xD1, "CMP", IndirectIndexed, 5, true, noCross((*CPU).cmp))

	op(0xE0, "CPX", Immediate, 2, false, noCross((*CPU).cpx))
	op(0xE4, "CPX", ZeroPage, 3, false, noCross((*CPU).cpx))
	op(0xEC, "CPX", Absolute, 4, false, noCross((*CPU).cpx))

	op(0xC0, "CPY", Immediate, 2, false, noCross((*CPU).cpy))
	op(0xC4, "CPY", ZeroPage, 3, false, noCross((*CPU).cpy))
	op(0xCC, "CPY", Absolute, 4, false, noCross((*CPU).cpy))

	// Increment/decrement
	op(0xE6, "INC", ZeroPage, 5, false, noCross((*CPU).inc))
	op(0xF6, "INC", ZeroPageX, 6, false, noCross((*CPU).inc))
	op(0xEE, "INC", Absolute, 6, false, noCross((*CPU).inc))
	op(0xFE, "INC", AbsoluteX, 7, false, noCross((*CPU).inc))

	op(0xC6, "DEC", ZeroPage, 5, false, noCross((*CPU).dec))
	op(0xD6, "DEC", ZeroPageX, 6, false, noCross((*CPU).dec))
	op(0xCE, "DEC", Absolute, 6, false, noCross((*CPU).dec))
	op(0xDE, "DEC", AbsoluteX, 7, false, noCross((*CPU).dec))

	op(0xE8, "INX", Implied, 2, false, noCross((*CPU).inx))
	op(0xCA, "DEX", Implied, 2, false, noCross((*CPU).dex))
	op(0xC8, "INY", Implied, 2, false, noCross((*CPU).iny))
	op(0x88, "DEY", Implied, 2, false, noCross((*CPU).dey))

	// Transfer
	op(0xAA, "TAX", Implied, 2, false, noCross((*CPU).tax))
	op(0x8A, "TXA", Implied, 2, false, noCross((*CPU).txa))
	op(0xA8, "TAY", Implied, 2, false, noCross((*CPU).tay))
	op(0x98, "TYA", Implied, 2, false, noCross((*CPU).tya))
	op(0xBA, "TSX", Implied, 2, false, noCross((*CPU).tsx))
	op(0x9A, "TXS", Implied, 2, false, noCross((*CPU).txs))

	// Stack
	op(0x48, "PHA", Implied, 3, false, noCross((*CPU).pha))
	op(0x68, "PLA", Implied, 4, false, noCross((*CPU).pla))
	op(0x08, "PHP", Implied, 3, false, noCross((*CPU).php))
	op(0x28, "PLP", Implied, 4, false, noCross((*CPU).plp))

	// Flags
	op(0x18, "CLC", Implied, 2, false, noCross((*CPU).clc))
	op(0x38, "SEC", Implied, 2, false, noCross((*CPU).sec))
	op(0x58, "CLI", Implied, 2, false, noCross((*CPU).cli))
	op(0x78, "SEI", Implied, 2, false, noCross((*CPU).sei))
	op(0xB8, "CLV", Implied, 2, false, noCross((*CPU).clv))
	op(0xD8, "CLD", Implied, 2, false, noCross((*CPU).cld))
	op(0xF8, "SED", Implied, 2, false, noCross((*CPU).sed))

	// Control flow
	op(0x4C, "JMP", Absolute, 3, false, noCross((*CPU).jmp))
	op(0x6C, "JMP", Indirect, 5, false, noCross((*CPU).jmp))
	op(0x20, "JSR", Absolute, 6, false, noCross((*CPU).jsr))
	op(0x60, "RTS", Implied, 6, false, noCross((*CPU).rts))
	op(0x40, "RTI", Implied, 6, false, noCross((*CPU).rti))

	// Branches: page-cross penalty handling is folded into the branch
	// helpers themselves since the extra cycle depends on the branch
	// being taken, not just on the address crossing a page.
	op(0x90, "BCC", Relative, 2, false, (*CPU).bcc)
	op(0xB0, "BCS", Relative, 2, false, (*CPU).bcs)
	op(0xD0, "BNE", Relative, 2, false, (*CPU).bne)
	op(0xF0, "BEQ", Relative, 2, false, (*CPU).beq)
	op(0x10, "BPL", Relative, 2, false, (*CPU).bpl)
	op(0x30, "BMI", Relative, 2, false, (*CPU).bmi)
	op(0x50, "BVC", Relative, 2, false, (*CPU).bvc)
	op(0x70, "BVS", Relative, 2, false, (*CPU).bvs)

	// Misc
	op(0x24, "BIT", ZeroPage, 3, false, noCross((*CPU).bit))
	op(0x2C, "BIT", Absolute, 4, false, noCross((*CPU).bit))
	op(0x00, "BRK", Implied, 7, false, noCross((*CPU).brk))

	// Unofficial NOPs: same timing rules as their mnemonic's addressing
	// mode family, the operand is fetched and discarded.
	for _, code := range []uint8{0xEA, 0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		op(code, "NOP", Implied, 2, false, noCross((*CPU).nop))
	}
	for _, code := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		op(code, "NOP", Immediate, 2, false, noCross((*CPU).nop))
	}
	for _, code := range []uint8{0x04, 0x44, 0x64} {
		op(code, "NOP", ZeroPage, 3, false, noCross((*CPU).nop))
	}
	for _, code := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		op(code, "NOP", ZeroPageX, 4, false, noCross((*CPU).nop))
	}
	op(0x0C, "NOP", Absolute, 4, false, noCross((*CPU).nop))
	for _, code := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		op(code, "NOP", AbsoluteX, 4, true, noCross((*CPU).nop))
	}

	// KIL/JAM: jams the instruction decoder. Real hardware locks the
	// address/data bus in a way that varies by opcode; emulated here as a
	// halted sub-state that only Reset clears.
	for _, code := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		op(code, "KIL", Implied, 2, false, noCross((*CPU).kil))
	}

	// Unofficial combined read-modify-write/load opcodes
	op(0xA7, "LAX", ZeroPage, 3, false, noCross((*CPU).lax))
	op(0xB7, "LAX", ZeroPageY, 4, false, noCross((*CPU).lax))
	op(0xAF, "LAX", Absolute, 4, false, noCross((*CPU).lax))
	op(0xBF, "LAX", AbsoluteY, 4, true, noCross((*CPU).lax))
	op(0xA3, "LAX", IndexedIndirect, 6, false, noCross((*CPU).lax))
	op(0xB3, "LAX", IndirectIndexed, 5, true, noCross((*CPU).lax))

	op(0x87, "SAX", ZeroPage, 3, false, noCross((*CPU).sax))
	op(0x97, "SAX", ZeroPageY, 4, false, noCross((*CPU).sax))
	op(0x8F, "SAX", Absolute, 4, false, noCross((*CPU).sax))
	op(0x83, "SAX", IndexedIndirect, 6, false, noCross((*CPU).sax))

	op(0xC7, "DCP", ZeroPage, 5, false, noCross((*CPU).dcp))
	op(0xD7, "DCP", ZeroPageX, 6, false, noCross((*CPU).dcp))
	op(0xCF, "DCP", Absolute, 6, false, noCross((*CPU).dcp))
	op(0xDF, "DCP", AbsoluteX, 7, false, noCross((*CPU).dcp))
	op(0xDB, "DCP", AbsoluteY, 7, false, noCross((*CPU).dcp))
	op(0xC3, "DCP", IndexedIndirect, 8, false, noCross((*CPU).dcp))
	op(0xD3, "DCP", IndirectIndexed, 8, false, noCross((*CPU).dcp))

	op(0xE7, "ISB", ZeroPage, 5, false, noCross((*CPU).isb))
	op(0xF7, "ISB", ZeroPageX, 6, false, noCross((*CPU).isb))
	op(0xEF, "ISB", Absolute, 6, false, noCross((*CPU).isb))
	op(0xFF, "ISB", AbsoluteX, 7, false, noCross((*CPU).isb))
	op(0xFB, "ISB", AbsoluteY, 7, false, noCross((*CPU).isb))
	op(0xE3, "ISB", IndexedIndirect, 8, false, noCross((*CPU).isb))
	op(0xF3, "ISB", IndirectIndexed, 8, false, noCross((*CPU).isb))

	op(0x07, "SLO", ZeroPage, 5, false, noCross((*CPU).slo))
	op(0x17, "SLO", ZeroPageX, 6, false, noCross((*CPU).slo))
	op(0x0F, "SLO", Absolute, 6, false, noCross((*CPU).slo))
	op(0x1F, "SLO", AbsoluteX, 7, false, noCross((*CPU).slo))
	op(0x1B, "SLO", AbsoluteY, 7, false, noCross((*CPU).slo))
	op(0x03, "SLO", IndexedIndirect, 8, false, noCross((*CPU).slo))
	op(0x13, "SLO", IndirectIndexed, 8, false, noCross((*CPU).slo))

	op(0x27, "RLA", ZeroPage, 5, false, noCross((*CPU).rla))
	op(0x37, "RLA", ZeroPageX, 6, false, noCross((*CPU).rla))
	op(0x2F, "RLA", Absolute, 6, false, noCross((*CPU).rla))
	op(0x3F, "RLA", AbsoluteX, 7, false, noCross((*CPU).rla))
	op(0x3B, "RLA", AbsoluteY, 7, false, noCross((*CPU).rla))
	op(0x23, "RLA", IndexedIndirect, 8, false, noCross((*CPU).rla))
	op(0x33, "RLA", IndirectIndexed, 8, false, noCross((*CPU).rla))

	op(0x47, "SRE", ZeroPage, 5, false, noCross((*CPU).sre))
	op(0x57, "SRE", ZeroPageX, 6, false, noCross((*CPU).sre))
	op(0x4F, "SRE", Absolute, 6, false, noCross((*CPU).sre))
	op(0x5F, "SRE", AbsoluteX, 7, false, noCross((*CPU).sre))
	op(0x5B, "SRE", AbsoluteY, 7, false, noCross((*CPU).sre))
	op(0x43, "SRE", IndexedIndirect, 8, false, noCross((*CPU).sre))
	op(0x53, "SRE", IndirectIndexed, 8, false, noCross((*CPU).sre))

	op(0x67, "RRA", ZeroPage, 5, false, noCross((*CPU).rra))
	op(0x77, "RRA", ZeroPageX, 6, false, noCross((*CPU).rra))
	op(0x6F, "RRA", Absolute, 6, false, noCross((*CPU).rra))
	op(0x7F, "RRA", AbsoluteX, 7, false, noCross((*CPU).rra))
	op(0x7B, "RRA", AbsoluteY, 7, false, noCross((*CPU).rra))
	op(0x63, "RRA", IndexedIndirect, 8, false, noCross((*CPU).rra))
	op(0x73, "RRA", IndirectIndexed, 8, false, noCross((*CPU).rra))
}

// --- Load/Store ---

func (cpu *CPU) lda(address uint16) uint8 {
	cpu.A = cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) ldx(address uint16) uint8 {
	cpu.X = cpu.memory.Read(address)
	cpu.setZN(cpu.X)
	return 0
}

func (cpu *CPU) ldy(address uint16) uint8 {
	cpu.Y = cpu.memory.Read(address)
	cpu.setZN(cpu.Y)
	return 0
}

func (cpu *CPU) sta(address uint16) uint8 {
	cpu.memory.Write(address, cpu.A)
	return 0
}

func (cpu *CPU) stx(address uint16) uint8 {
	cpu.memory.Write(address, cpu.X)
	return 0
}

func (cpu *CPU) sty(address uint16) uint8 {
	cpu.memory.Write(address, cpu.Y)
	return 0
}

// --- Arithmetic ---

func (cpu *CPU) adc(address uint16) uint8 {
	value := cpu.memory.Read(address)
	carry := uint16(0)
	if cpu.C {
		carry = 1
	}
	result := uint16(cpu.A) + uint16(value) + carry
	cpu.V = ((cpu.A^uint8(result))&0x80) != 0 && ((cpu.A^value)&0x80) == 0
	cpu.C = result > 0xFF
	cpu.A = uint8(result)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) sbc(address uint16) uint8 {
	value := cpu.memory.Read(address) ^ 0xFF
	carry := uint16(0)
	if cpu.C {
		carry = 1
	}
	result := uint16(cpu.A) + uint16(value) + carry
	cpu.V = ((cpu.A^uint8(result))&0x80) != 0 && ((cpu.A^value)&0x80) == 0
	cpu.C = result > 0xFF
	cpu.A = uint8(result)
	cpu.setZN(cpu.A)
	return 0
}

// --- Logical ---

func (cpu *CPU) and(address uint16) uint8 {
	cpu.A &= cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) ora(address uint16) uint8 {
	cpu.A |= cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) eor(address uint16) uint8 {
	cpu.A ^= cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

// --- Shift/rotate ---

func (cpu *CPU) aslAcc(address uint16) uint8 {
	cpu.C = cpu.A&0x80 != 0
	cpu.A <<= 1
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) asl(address uint16) uint8 {
	value := cpu.memory.Read(address)
	cpu.C = value&0x80 != 0
	value <<= 1
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) lsrAcc(address uint16) uint8 {
	cpu.C = cpu.A&0x01 != 0
	cpu.A >>= 1
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) lsr(address uint16) uint8 {
	value := cpu.memory.Read(address)
	cpu.C = value&0x01 != 0
	value >>= 1
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) rolAcc(address uint16) uint8 {
	oldCarry := cpu.C
	cpu.C = cpu.A&0x80 != 0
	cpu.A <<= 1
	if oldCarry {
		cpu.A |= 0x01
	}
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) rol(address uint16) uint8 {
	value := cpu.memory.Read(address)
	oldCarry := cpu.C
	cpu.C = value&0x80 != 0
	value <<= 1
	if oldCarry {
		value |= 0x01
	}
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) rorAcc(address uint16) uint8 {
	oldCarry := cpu.C
	cpu.C = cpu.A&0x01 != 0
	cpu.A >>= 1
	if oldCarry {
		cpu.A |= 0x80
	}
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) ror(address uint16) uint8 {
	value := cpu.memory.Read(address)
	oldCarry := cpu.C
	cpu.C = value&0x01 != 0
	value >>= 1
	if oldCarry {
		value |= 0x80
	}
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

// --- Comparison ---

func (cpu *CPU) cmp(address uint16) uint8 {
	value := cpu.memory.Read(address)
	cpu.C = cpu.A >= value
	cpu.setZN(cpu.A - value)
	return 0
}

func (cpu *CPU) cpx(address uint16) uint8 {
	value := cpu.memory.Read(address)
	cpu.C = cpu.X >= value
	cpu.setZN(cpu.X - value)
	return 0
}

func (cpu *CPU) cpy(address uint16) uint8 {
	value := cpu.memory.Read(address)
	cpu.C = cpu.Y >= value
	cpu.setZN(cpu.Y - value)
	return 0
}

// --- Increment/decrement ---

func (cpu *CPU) inc(address uint16) uint8 {
	value := cpu.memory.Read(address) + 1
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) dec(address uint16) uint8 {
	value := cpu.memory.Read(address) - 1
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) inx(address uint16) uint8 { cpu.X++; cpu.setZN(cpu.X); return 0 }
func (cpu *CPU) dex(address uint16) uint8 { cpu.X--; cpu.setZN(cpu.X); return 0 }
func (cpu *CPU) iny(address uint16) uint8 { cpu.Y++; cpu.setZN(cpu.Y); return 0 }
func (cpu *CPU) dey(address uint16) uint8 { cpu.Y--; cpu.setZN(cpu.Y); return 0 }

// --- Transfer ---

func (cpu *CPU) tax(address uint16) uint8 { cpu.X = cpu.A; cpu.setZN(cpu.X); return 0 }
func (cpu *CPU) txa(address uint16) uint8 { cpu.A = cpu.X; cpu.setZN(cpu.A); return 0 }
func (cpu *CPU) tay(address uint16) uint8 { cpu.Y = cpu.A; cpu.setZN(cpu.Y); return 0 }
func (cpu *CPU) tya(address uint16) uint8 { cpu.A = cpu.Y; cpu.setZN(cpu.A); return 0 }
func (cpu *CPU) tsx(address uint16) uint8 { cpu.X = cpu.SP; cpu.setZN(cpu.X); return 0 }
func (cpu *CPU) txs(address uint16) uint8 { cpu.SP = cpu.X; return 0 }

// --- Stack ---

func (cpu *CPU) pha(address uint16) uint8 { cpu.push(cpu.A); return 0 }
func (cpu *CPU) pla(address uint16) uint8 { cpu.A = cpu.pop(); cpu.setZN(cpu.A); return 0 }
func (cpu *CPU) php(address uint16) uint8 { cpu.push(cpu.GetStatusByte() | bFlagMask); return 0 }
func (cpu *CPU) plp(address uint16) uint8 { cpu.SetStatusByte(cpu.pop()); return 0 }

// --- Flags ---

func (cpu *CPU) clc(address uint16) uint8 { cpu.C = false; return 0 }
func (cpu *CPU) sec(address uint16) uint8 { cpu.C = true; return 0 }
func (cpu *CPU) cli(address uint16) uint8 { cpu.I = false; return 0 }
func (cpu *CPU) sei(address uint16) uint8 { cpu.I = true; return 0 }
func (cpu *CPU) clv(address uint16) uint8 { cpu.V = false; return 0 }
func (cpu *CPU) cld(address uint16) uint8 { cpu.D = false; return 0 }
func (cpu *CPU) sed(address uint16) uint8 { cpu.D = true; return 0 }

// --- Control flow ---

func (cpu *CPU) jmp(address uint16) uint8 { cpu.PC = address; return 0 }

func (cpu *CPU) jsr(address uint16) uint8 {
	cpu.pushWord(cpu.PC - 1)
	cpu.PC = address
	return 0
}

func (cpu *CPU) rts(address uint16) uint8 {
	cpu.PC = cpu.popWord() + 1
	return 0
}

func (cpu *CPU) rti(address uint16) uint8 {
	cpu.SetStatusByte(cpu.pop())
	cpu.PC = cpu.popWord()
	return 0
}

// --- Branches ---
// Each branch instruction already received its target address (and
// whether it crosses a page) from the Relative addressing mode; here
// they only decide whether to take the jump and report the resulting
// cycle penalty: +1 for a taken branch, +1 more if it crosses a page.

func branch(cpu *CPU, take bool, address uint16, pageCrossed bool) uint8 {
	if !take {
		return 0
	}
	cpu.PC = address
	if pageCrossed {
		return 2
	}
	return 1
}

func (cpu *CPU) bcc(address uint16, pageCrossed bool) uint8 { return branch(cpu, !cpu.C, address, pageCrossed) }
func (cpu *CPU) bcs(address uint16, pageCrossed bool) uint8 { return branch(cpu, cpu.C, address, pageCrossed) }
func (cpu *CPU) bne(address uint16, pageCrossed bool) uint8 { return branch(cpu, !cpu.Z, address, pageCrossed) }
func (cpu *CPU) beq(address uint16, pageCrossed bool) uint8 { return branch(cpu, cpu.Z, address, pageCrossed) }
func (cpu *CPU) bpl(address uint16, pageCrossed bool) uint8 { return branch(cpu, !cpu.N, address, pageCrossed) }
func (cpu *CPU) bmi(address uint16, pageCrossed bool) uint8 { return branch(cpu, cpu.N, address, pageCrossed) }
func (cpu *CPU) bvc(address uint16, pageCrossed bool) uint8 { return branch(cpu, !cpu.V, address, pageCrossed) }
func (cpu *CPU) bvs(address uint16, pageCrossed bool) uint8 { return branch(cpu, cpu.V, address, pageCrossed) }

// --- Misc ---

func (cpu *CPU) bit(address uint16) uint8 {
	value := cpu.memory.Read(address)
	cpu.N = value&nFlagMask != 0
	cpu.V = value&vFlagMask != 0
	cpu.Z = cpu.A&value == 0
	return 0
}

func (cpu *CPU) nop(address uint16) uint8 { return 0 }

// kil jams the decoder: PC is walked back onto the KIL opcode itself (the
// Implied addressing mode already advanced it past the opcode byte), so a
// debugger inspecting a halted CPU sees PC pointing at the instruction
// that jammed it, not the byte after.
func (cpu *CPU) kil(address uint16) uint8 {
	cpu.PC--
	cpu.halted = true
	return 0
}

func (cpu *CPU) brk(address uint16) uint8 {
	cpu.PC++ // BRK's operand byte is padding, skipped on return
	cpu.pushWord(cpu.PC)
	cpu.push(cpu.GetStatusByte() | bFlagMask)
	cpu.I = true
	low := uint16(cpu.memory.Read(irqVector))
	high := uint16(cpu.memory.Read(irqVector + 1))
	cpu.PC = (high << 8) | low
	return 0
}

// --- Unofficial opcodes ---

func (cpu *CPU) lax(address uint16) uint8 {
	cpu.A = cpu.memory.Read(address)
	cpu.X = cpu.A
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) sax(address uint16) uint8 {
	cpu.memory.Write(address, cpu.A&cpu.X)
	return 0
}

func (cpu *CPU) dcp(address uint16) uint8 {
	value := cpu.memory.Read(address) - 1
	cpu.memory.Write(address, value)
	cpu.C = cpu.A >= value
	cpu.setZN(cpu.A - value)
	return 0
}

func (cpu *CPU) isb(address uint16) uint8 {
	value := cpu.memory.Read(address) + 1
	cpu.memory.Write(address, value)
	cpu.sbc(address)
	return 0
}

func (cpu *CPU) slo(address uint16) uint8 {
	value := cpu.memory.Read(address)
	cpu.C = value&0x80 != 0
	value <<= 1
	cpu.memory.Write(address, value)
	cpu.A |= value
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) rla(address uint16) uint8 {
	value := cpu.memory.Read(address)
	oldCarry := cpu.C
	cpu.C = value&0x80 != 0
	value <<= 1
	if oldCarry {
		value |= 0x01
	}
	cpu.memory.Write(address, value)
	cpu.A &= value
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) sre(address uint16) uint8 {
	value := cpu.memory.Read(address)
	cpu.C = value&0x01 != 0
	value >>= 1
	cpu.memory.Write(address, value)
	cpu.A ^= value
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) rra(address uint16) uint8 {
	value := cpu.memory.Read(address)
	oldCarry := cpu.C
	cpu.C = value&0x01 != 0
	value >>= 1
	if oldCarry {
		value |= 0x80
	}
	cpu.memory.Write(address, value)
	cpu.adc(address)
	return 0
}
