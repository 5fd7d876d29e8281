// This file is part of Sidstreamer.
//
// Sidstreamer is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Sidstreamer is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Sidstreamer.  If not, see <https://www.gnu.org/licenses/>.

package cpu

// AddressingMode describes the method of memory addressing used by an
// instruction.
type AddressingMode int

// List of valid AddressingMode values.
const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	Relative
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (ind,X)
	IndirectIndexed // (ind),Y
)

func (m AddressingMode) String() string {
	switch m {
	case Implied:
		return "Implied"
	case Accumulator:
		return "Accumulator"
	case Immediate:
		return "Immediate"
	case Relative:
		return "Relative"
	case ZeroPage:
		return "ZeroPage"
	case ZeroPageX:
		return "ZeroPageX"
	case ZeroPageY:
		return "ZeroPageY"
	case Absolute:
		return "Absolute"
	case AbsoluteX:
		return "AbsoluteX"
	case AbsoluteY:
		return "AbsoluteY"
	case Indirect:
		return "Indirect"
	case IndexedIndirect:
		return "IndexedIndirect"
	case IndirectIndexed:
		return "IndirectIndexed"
	}
	return "unknown addressing mode"
}

// operation implements an instruction once the effective address has been
// resolved. the return value is the number of cycles in addition to the
// base cycles of the instruction (used by branches).
type operation func(mc *CPU, addr uint16) int

// Definition describes a single opcode.
type Definition struct {
	OpCode   uint8
	Mnemonic string
	Mode     AddressingMode
	Cycles   int

	// an additional cycle is used if the effective address crosses a page
	// boundary
	PageSensitive bool

	// undocumented opcodes are not listed in the MOS programming manual but are
	// used by some music routines
	Undocumented bool

	op operation
}

// definitions is indexed by opcode. opcodes that jam the processor have a
// nil entry.
var definitions [256]*Definition

// GetDefinition returns the definition of an opcode. Returns nil for opcodes
// that jam the processor.
func GetDefinition(opcode uint8) *Definition {
	return definitions[opcode]
}

func define(opcode uint8, mnemonic string, mode AddressingMode, cycles int, pageSensitive bool, op operation) {
	definitions[opcode] = &Definition{
		OpCode:        opcode,
		Mnemonic:      mnemonic,
		Mode:          mode,
		Cycles:        cycles,
		PageSensitive: pageSensitive,
		op:            op,
	}
}

func undocumented(opcode uint8, mnemonic string, mode AddressingMode, cycles int, pageSensitive bool, op operation) {
	define(opcode, mnemonic, mode, cycles, pageSensitive, op)
	definitions[opcode].Undocumented = true
}

// the eight addressing modes of the ALU group of instructions, in the order
// used by the alu() function
var aluModes = [8]AddressingMode{Immediate, ZeroPage, ZeroPageX, Absolute, AbsoluteX, AbsoluteY, IndexedIndirect, IndirectIndexed}
var aluCycles = [8]int{2, 3, 4, 4, 4, 4, 6, 5}

// alu defines an instruction in the ALU group. the opcodes are listed in the
// order of aluModes
func alu(mnemonic string, op operation, opcodes [8]uint8) {
	for i, oc := range opcodes {
		m := aluModes[i]
		define(oc, mnemonic, m, aluCycles[i], m == AbsoluteX || m == AbsoluteY || m == IndirectIndexed, op)
	}
}

// the read-modify-write group. documented instructions use the first four
// modes. undocumented instructions use all seven
var rmwModes = [7]AddressingMode{ZeroPage, ZeroPageX, Absolute, AbsoluteX, AbsoluteY, IndexedIndirect, IndirectIndexed}
var rmwCycles = [7]int{5, 6, 6, 7, 7, 8, 8}

func rmw(mnemonic string, op operation, opcodes ...uint8) {
	for i, oc := range opcodes {
		define(oc, mnemonic, rmwModes[i], rmwCycles[i], false, op)
	}
}

func rmwUndocumented(mnemonic string, op operation, opcodes ...uint8) {
	for i, oc := range opcodes {
		undocumented(oc, mnemonic, rmwModes[i], rmwCycles[i], false, op)
	}
}

func init() {
	// ALU group
	alu("ORA", ora, [8]uint8{0x09, 0x05, 0x15, 0x0d, 0x1d, 0x19, 0x01, 0x11})
	alu("AND", and, [8]uint8{0x29, 0x25, 0x35, 0x2d, 0x3d, 0x39, 0x21, 0x31})
	alu("EOR", eor, [8]uint8{0x49, 0x45, 0x55, 0x4d, 0x5d, 0x59, 0x41, 0x51})
	alu("ADC", adc, [8]uint8{0x69, 0x65, 0x75, 0x6d, 0x7d, 0x79, 0x61, 0x71})
	alu("LDA", lda, [8]uint8{0xa9, 0xa5, 0xb5, 0xad, 0xbd, 0xb9, 0xa1, 0xb1})
	alu("CMP", cmp, [8]uint8{0xc9, 0xc5, 0xd5, 0xcd, 0xdd, 0xd9, 0xc1, 0xd1})
	alu("SBC", sbc, [8]uint8{0xe9, 0xe5, 0xf5, 0xed, 0xfd, 0xf9, 0xe1, 0xf1})

	// stores never take the page crossing shortcut
	define(0x85, "STA", ZeroPage, 3, false, sta)
	define(0x95, "STA", ZeroPageX, 4, false, sta)
	define(0x8d, "STA", Absolute, 4, false, sta)
	define(0x9d, "STA", AbsoluteX, 5, false, sta)
	define(0x99, "STA", AbsoluteY, 5, false, sta)
	define(0x81, "STA", IndexedIndirect, 6, false, sta)
	define(0x91, "STA", IndirectIndexed, 6, false, sta)
	define(0x86, "STX", ZeroPage, 3, false, stx)
	define(0x96, "STX", ZeroPageY, 4, false, stx)
	define(0x8e, "STX", Absolute, 4, false, stx)
	define(0x84, "STY", ZeroPage, 3, false, sty)
	define(0x94, "STY", ZeroPageX, 4, false, sty)
	define(0x8c, "STY", Absolute, 4, false, sty)

	// register loads and compares
	define(0xa2, "LDX", Immediate, 2, false, ldx)
	define(0xa6, "LDX", ZeroPage, 3, false, ldx)
	define(0xb6, "LDX", ZeroPageY, 4, false, ldx)
	define(0xae, "LDX", Absolute, 4, false, ldx)
	define(0xbe, "LDX", AbsoluteY, 4, true, ldx)
	define(0xa0, "LDY", Immediate, 2, false, ldy)
	define(0xa4, "LDY", ZeroPage, 3, false, ldy)
	define(0xb4, "LDY", ZeroPageX, 4, false, ldy)
	define(0xac, "LDY", Absolute, 4, false, ldy)
	define(0xbc, "LDY", AbsoluteX, 4, true, ldy)
	define(0xe0, "CPX", Immediate, 2, false, cpx)
	define(0xe4, "CPX", ZeroPage, 3, false, cpx)
	define(0xec, "CPX", Absolute, 4, false, cpx)
	define(0xc0, "CPY", Immediate, 2, false, cpy)
	define(0xc4, "CPY", ZeroPage, 3, false, cpy)
	define(0xcc, "CPY", Absolute, 4, false, cpy)
	define(0x24, "BIT", ZeroPage, 3, false, bit)
	define(0x2c, "BIT", Absolute, 4, false, bit)

	// shifts, rotates, increments and decrements
	define(0x0a, "ASL", Accumulator, 2, false, aslA)
	define(0x4a, "LSR", Accumulator, 2, false, lsrA)
	define(0x2a, "ROL", Accumulator, 2, false, rolA)
	define(0x6a, "ROR", Accumulator, 2, false, rorA)
	rmw("ASL", asl, 0x06, 0x16, 0x0e, 0x1e)
	rmw("LSR", lsr, 0x46, 0x56, 0x4e, 0x5e)
	rmw("ROL", rol, 0x26, 0x36, 0x2e, 0x3e)
	rmw("ROR", ror, 0x66, 0x76, 0x6e, 0x7e)
	rmw("INC", inc, 0xe6, 0xf6, 0xee, 0xfe)
	rmw("DEC", dec, 0xc6, 0xd6, 0xce, 0xde)

	// implied
	define(0xe8, "INX", Implied, 2, false, inx)
	define(0xc8, "INY", Implied, 2, false, iny)
	define(0xca, "DEX", Implied, 2, false, dex)
	define(0x88, "DEY", Implied, 2, false, dey)
	define(0xaa, "TAX", Implied, 2, false, tax)
	define(0xa8, "TAY", Implied, 2, false, tay)
	define(0x8a, "TXA", Implied, 2, false, txa)
	define(0x98, "TYA", Implied, 2, false, tya)
	define(0xba, "TSX", Implied, 2, false, tsx)
	define(0x9a, "TXS", Implied, 2, false, txs)
	define(0x18, "CLC", Implied, 2, false, clc)
	define(0x38, "SEC", Implied, 2, false, sec)
	define(0x58, "CLI", Implied, 2, false, cli)
	define(0x78, "SEI", Implied, 2, false, sei)
	define(0xb8, "CLV", Implied, 2, false, clv)
	define(0xd8, "CLD", Implied, 2, false, cld)
	define(0xf8, "SED", Implied, 2, false, sed)
	define(0xea, "NOP", Implied, 2, false, nop)

	// stack
	define(0x48, "PHA", Implied, 3, false, pha)
	define(0x08, "PHP", Implied, 3, false, php)
	define(0x68, "PLA", Implied, 4, false, pla)
	define(0x28, "PLP", Implied, 4, false, plp)

	// flow control
	define(0x4c, "JMP", Absolute, 3, false, jmp)
	define(0x6c, "JMP", Indirect, 5, false, jmp)
	define(0x20, "JSR", Absolute, 6, false, jsr)
	define(0x60, "RTS", Implied, 6, false, rts)
	define(0x40, "RTI", Implied, 6, false, rti)
	define(0x00, "BRK", Implied, 7, false, brk)
	define(0x10, "BPL", Relative, 2, false, bpl)
	define(0x30, "BMI", Relative, 2, false, bmi)
	define(0x50, "BVC", Relative, 2, false, bvc)
	define(0x70, "BVS", Relative, 2, false, bvs)
	define(0x90, "BCC", Relative, 2, false, bcc)
	define(0xb0, "BCS", Relative, 2, false, bcs)
	define(0xd0, "BNE", Relative, 2, false, bne)
	define(0xf0, "BEQ", Relative, 2, false, beq)

	// undocumented read-modify-write combinations
	rmwUndocumented("SLO", slo, 0x07, 0x17, 0x0f, 0x1f, 0x1b, 0x03, 0x13)
	rmwUndocumented("RLA", rla, 0x27, 0x37, 0x2f, 0x3f, 0x3b, 0x23, 0x33)
	rmwUndocumented("SRE", sre, 0x47, 0x57, 0x4f, 0x5f, 0x5b, 0x43, 0x53)
	rmwUndocumented("RRA", rra, 0x67, 0x77, 0x6f, 0x7f, 0x7b, 0x63, 0x73)
	rmwUndocumented("DCP", dcp, 0xc7, 0xd7, 0xcf, 0xdf, 0xdb, 0xc3, 0xd3)
	rmwUndocumented("ISC", isc, 0xe7, 0xf7, 0xef, 0xff, 0xfb, 0xe3, 0xf3)

	// undocumented loads and stores
	undocumented(0xa7, "LAX", ZeroPage, 3, false, lax)
	undocumented(0xb7, "LAX", ZeroPageY, 4, false, lax)
	undocumented(0xaf, "LAX", Absolute, 4, false, lax)
	undocumented(0xbf, "LAX", AbsoluteY, 4, true, lax)
	undocumented(0xa3, "LAX", IndexedIndirect, 6, false, lax)
	undocumented(0xb3, "LAX", IndirectIndexed, 5, true, lax)
	undocumented(0xab, "LXA", Immediate, 2, false, lxa)
	undocumented(0x87, "SAX", ZeroPage, 3, false, sax)
	undocumented(0x97, "SAX", ZeroPageY, 4, false, sax)
	undocumented(0x8f, "SAX", Absolute, 4, false, sax)
	undocumented(0x83, "SAX", IndexedIndirect, 6, false, sax)
	undocumented(0xbb, "LAS", AbsoluteY, 4, true, las)
	undocumented(0x9f, "SHA", AbsoluteY, 5, false, sha)
	undocumented(0x93, "SHA", IndirectIndexed, 6, false, sha)
	undocumented(0x9e, "SHX", AbsoluteY, 5, false, shx)
	undocumented(0x9c, "SHY", AbsoluteX, 5, false, shy)
	undocumented(0x9b, "TAS", AbsoluteY, 5, false, tas)

	// undocumented immediate mode instructions
	undocumented(0x0b, "ANC", Immediate, 2, false, anc)
	undocumented(0x2b, "ANC", Immediate, 2, false, anc)
	undocumented(0x4b, "ALR", Immediate, 2, false, alr)
	undocumented(0x6b, "ARR", Immediate, 2, false, arr)
	undocumented(0x8b, "ANE", Immediate, 2, false, ane)
	undocumented(0xcb, "SBX", Immediate, 2, false, sbx)
	undocumented(0xeb, "SBC", Immediate, 2, false, sbc)

	// undocumented no-ops
	for _, oc := range []uint8{0x1a, 0x3a, 0x5a, 0x7a, 0xda, 0xfa} {
		undocumented(oc, "NOP", Implied, 2, false, nop)
	}
	for _, oc := range []uint8{0x80, 0x82, 0x89, 0xc2, 0xe2} {
		undocumented(oc, "NOP", Immediate, 2, false, nop)
	}
	for _, oc := range []uint8{0x04, 0x44, 0x64} {
		undocumented(oc, "NOP", ZeroPage, 3, false, nop)
	}
	for _, oc := range []uint8{0x14, 0x34, 0x54, 0x74, 0xd4, 0xf4} {
		undocumented(oc, "NOP", ZeroPageX, 4, false, nop)
	}
	undocumented(0x0c, "NOP", Absolute, 4, false, nop)
	for _, oc := range []uint8{0x1c, 0x3c, 0x5c, 0x7c, 0xdc, 0xfc} {
		undocumented(oc, "NOP", AbsoluteX, 4, true, nop)
	}

	// the remaining twelve opcodes ($02, $12, ... $f2) jam the processor and
	// are left undefined
}
