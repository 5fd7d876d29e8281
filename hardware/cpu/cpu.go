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

import (
	"fmt"

	"github.com/jetsetilly/sidstreamer/snapshot"
)

// Interrupt vectors.
const (
	NMIVector   = uint16(0xfffa)
	ResetVector = uint16(0xfffc)
	IRQVector   = uint16(0xfffe)
)

// the number of cycles taken to enter an interrupt handler.
const interruptCycles = 7

// Memory is the interface to the address space of the CPU. Accesses cannot
// fail. Unmapped addresses should return a suitable floating value.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// CPU implements the 6510 processor.
type CPU struct {
	mem Memory

	A      uint8
	X      uint8
	Y      uint8
	SP     uint8
	PC     uint16
	Status StatusRegister

	// the state of the interrupt lines. the IRQ line is level sensitive and
	// the NMI line is edge sensitive
	irq        bool
	nmi        bool
	nmiPending bool

	jammed bool

	// the address of the most recent instruction
	instrPC uint16

	// the most recent instruction was a JMP to itself
	idle bool
}

// NewCPU is the preferred method of initialisation for the CPU type.
func NewCPU(mem Memory) *CPU {
	mc := &CPU{mem: mem}
	mc.Reset()
	return mc
}

func (mc *CPU) String() string {
	return fmt.Sprintf("PC=%04x A=%02x X=%02x Y=%02x SP=%02x %s", mc.PC, mc.A, mc.X, mc.Y, mc.SP, mc.Status)
}

// Reset the CPU. The program counter is loaded from the reset vector.
func (mc *CPU) Reset() {
	mc.A = 0
	mc.X = 0
	mc.Y = 0
	mc.SP = 0xfd
	mc.Status = StatusRegister{InterruptDisable: true}
	mc.irq = false
	mc.nmi = false
	mc.nmiPending = false
	mc.jammed = false
	mc.idle = false
	mc.PC = mc.read16(ResetVector)
	mc.instrPC = mc.PC
}

// SetIRQ sets the state of the IRQ line. The line is level sensitive: an
// interrupt occurs at every instruction boundary while the line is asserted
// and the interrupt disable flag is clear.
func (mc *CPU) SetIRQ(state bool) {
	mc.irq = state
}

// SetNMI sets the state of the NMI line. An interrupt occurs only when the
// line changes from unasserted to asserted.
func (mc *CPU) SetNMI(state bool) {
	if state && !mc.nmi {
		mc.nmiPending = true
	}
	mc.nmi = state
}

// InterruptPending returns true if the next call to Step() will enter an
// interrupt handler.
func (mc *CPU) InterruptPending() bool {
	return !mc.jammed && (mc.nmiPending || mc.irq && !mc.Status.InterruptDisable)
}

// Jammed returns true if the CPU has executed a JAM opcode.
func (mc *CPU) Jammed() bool {
	return mc.jammed
}

// IdleLoop returns true if the most recent instruction was a JMP to its own
// address. Until an interrupt occurs the CPU will do nothing but execute the
// same instruction.
func (mc *CPU) IdleLoop() bool {
	return mc.idle && !mc.InterruptPending()
}

func (mc *CPU) fetch() uint8 {
	v := mc.mem.Read(mc.PC)
	mc.PC++
	return v
}

func (mc *CPU) fetch16() uint16 {
	lo := uint16(mc.fetch())
	hi := uint16(mc.fetch())
	return hi<<8 | lo
}

func (mc *CPU) read16(addr uint16) uint16 {
	lo := uint16(mc.mem.Read(addr))
	hi := uint16(mc.mem.Read(addr + 1))
	return hi<<8 | lo
}

// read16ZeroPage reads a pointer from the zero page. the high byte wraps
// around within the zero page
func (mc *CPU) read16ZeroPage(zp uint8) uint16 {
	lo := uint16(mc.mem.Read(uint16(zp)))
	hi := uint16(mc.mem.Read(uint16(zp + 1)))
	return hi<<8 | lo
}

func (mc *CPU) push(v uint8) {
	mc.mem.Write(0x0100|uint16(mc.SP), v)
	mc.SP--
}

func (mc *CPU) pull() uint8 {
	mc.SP++
	return mc.mem.Read(0x0100 | uint16(mc.SP))
}

func (mc *CPU) push16(v uint16) {
	mc.push(uint8(v >> 8))
	mc.push(uint8(v))
}

func (mc *CPU) pull16() uint16 {
	lo := uint16(mc.pull())
	hi := uint16(mc.pull())
	return hi<<8 | lo
}

// resolve the effective address for the addressing mode. the second return
// value is true if indexing crossed a page boundary
func (mc *CPU) resolve(mode AddressingMode) (uint16, bool) {
	switch mode {
	case Implied, Accumulator:
		return 0, false
	case Immediate:
		addr := mc.PC
		mc.PC++
		return addr, false
	case Relative:
		offset := int8(mc.fetch())
		return mc.PC + uint16(offset), false
	case ZeroPage:
		return uint16(mc.fetch()), false
	case ZeroPageX:
		return uint16(mc.fetch() + mc.X), false
	case ZeroPageY:
		return uint16(mc.fetch() + mc.Y), false
	case Absolute:
		return mc.fetch16(), false
	case AbsoluteX:
		base := mc.fetch16()
		addr := base + uint16(mc.X)
		return addr, base&0xff00 != addr&0xff00
	case AbsoluteY:
		base := mc.fetch16()
		addr := base + uint16(mc.Y)
		return addr, base&0xff00 != addr&0xff00
	case Indirect:
		// the high byte of the pointer does not carry into the next page
		ptr := mc.fetch16()
		lo := uint16(mc.mem.Read(ptr))
		hi := uint16(mc.mem.Read(ptr&0xff00 | uint16(uint8(ptr)+1)))
		return hi<<8 | lo, false
	case IndexedIndirect:
		return mc.read16ZeroPage(mc.fetch() + mc.X), false
	case IndirectIndexed:
		base := mc.read16ZeroPage(mc.fetch())
		addr := base + uint16(mc.Y)
		return addr, base&0xff00 != addr&0xff00
	}
	panic(fmt.Sprintf("cpu: unhandled addressing mode %s", mode))
}

// interrupt pushes the program counter and status register and jumps
// through the vector.
func (mc *CPU) interrupt(vector uint16) {
	mc.push16(mc.PC)
	mc.push(mc.Status.Value() &^ 0x10)
	mc.Status.InterruptDisable = true
	mc.PC = mc.read16(vector)
}

// Step executes the next instruction or enters a pending interrupt handler.
// Returns the number of cycles used. Returns zero if the CPU is jammed.
func (mc *CPU) Step() int {
	if mc.jammed {
		return 0
	}

	if mc.nmiPending {
		mc.nmiPending = false
		mc.idle = false
		mc.interrupt(NMIVector)
		return interruptCycles
	}

	if mc.irq && !mc.Status.InterruptDisable {
		mc.idle = false
		mc.interrupt(IRQVector)
		return interruptCycles
	}

	mc.instrPC = mc.PC
	mc.idle = false

	opcode := mc.fetch()
	defn := definitions[opcode]
	if defn == nil {
		mc.jammed = true
		mc.PC = mc.instrPC
		return 2
	}

	addr, crossed := mc.resolve(defn.Mode)
	cycles := defn.Cycles
	if crossed && defn.PageSensitive {
		cycles++
	}
	cycles += defn.op(mc, addr)

	return cycles
}

// Save the state of the CPU.
func (mc *CPU) Save(enc *snapshot.Encoder) {
	enc.Tag("CPU")
	enc.Uint8(mc.A)
	enc.Uint8(mc.X)
	enc.Uint8(mc.Y)
	enc.Uint8(mc.SP)
	enc.Uint16(mc.PC)
	enc.Uint8(mc.Status.Value())
	enc.Bool(mc.irq)
	enc.Bool(mc.nmi)
	enc.Bool(mc.nmiPending)
	enc.Bool(mc.jammed)
	enc.Uint16(mc.instrPC)
	enc.Bool(mc.idle)
}

// Restore the state written by Save().
func (mc *CPU) Restore(dec *snapshot.Decoder) {
	dec.ExpectTag("CPU")
	mc.A = dec.Uint8()
	mc.X = dec.Uint8()
	mc.Y = dec.Uint8()
	mc.SP = dec.Uint8()
	mc.PC = dec.Uint16()
	mc.Status.FromValue(dec.Uint8())
	mc.irq = dec.Bool()
	mc.nmi = dec.Bool()
	mc.nmiPending = dec.Bool()
	mc.jammed = dec.Bool()
	mc.instrPC = dec.Uint16()
	mc.idle = dec.Bool()
}
