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

package cpu_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/sidstreamer/hardware/cpu"
	"github.com/jetsetilly/sidstreamer/snapshot"
	"github.com/jetsetilly/sidstreamer/test"
)

type ram [0x10000]uint8

func (r *ram) Read(address uint16) uint8 {
	return r[address]
}

func (r *ram) Write(address uint16, data uint8) {
	r[address] = data
}

// newCPU places the program at $1000 and points the reset vector at it
func newCPU(program ...uint8) (*cpu.CPU, *ram) {
	mem := &ram{}
	copy(mem[0x1000:], program)
	mem[0xfffc] = 0x00
	mem[0xfffd] = 0x10
	return cpu.NewCPU(mem), mem
}

func TestReset(t *testing.T) {
	mc, _ := newCPU()
	test.ExpectEquality(t, mc.PC, uint16(0x1000))
	test.ExpectEquality(t, mc.SP, uint8(0xfd))
	test.ExpectSuccess(t, mc.Status.InterruptDisable)
}

func TestLoadStore(t *testing.T) {
	mc, mem := newCPU(
		0xa9, 0x80, // LDA #$80
		0x8d, 0x00, 0x20, // STA $2000
		0xa2, 0x00, // LDX #$00
	)

	test.ExpectEquality(t, mc.Step(), 2)
	test.ExpectEquality(t, mc.A, uint8(0x80))
	test.ExpectSuccess(t, mc.Status.Sign)

	test.ExpectEquality(t, mc.Step(), 4)
	test.ExpectEquality(t, mem[0x2000], uint8(0x80))

	mc.Step()
	test.ExpectSuccess(t, mc.Status.Zero)
	test.ExpectFailure(t, mc.Status.Sign)
}

func TestBinaryArithmetic(t *testing.T) {
	mc, _ := newCPU(
		0x18,       // CLC
		0xa9, 0x7f, // LDA #$7f
		0x69, 0x01, // ADC #$01
		0x38,       // SEC
		0xe9, 0x01, // SBC #$01
	)
	mc.Step()
	mc.Step()
	mc.Step()
	test.ExpectEquality(t, mc.A, uint8(0x80))
	test.ExpectSuccess(t, mc.Status.Overflow)
	test.ExpectFailure(t, mc.Status.Carry)

	mc.Step()
	mc.Step()
	test.ExpectEquality(t, mc.A, uint8(0x7f))
	test.ExpectSuccess(t, mc.Status.Overflow)
	test.ExpectSuccess(t, mc.Status.Carry)
}

func TestDecimalArithmetic(t *testing.T) {
	mc, _ := newCPU(
		0xf8,       // SED
		0x18,       // CLC
		0xa9, 0x15, // LDA #$15
		0x69, 0x27, // ADC #$27
		0x38,       // SEC
		0xe9, 0x15, // SBC #$15
		0x18,       // CLC
		0x69, 0x80, // ADC #$80
	)
	for range 4 {
		mc.Step()
	}
	test.ExpectEquality(t, mc.A, uint8(0x42))
	test.ExpectFailure(t, mc.Status.Carry)

	mc.Step()
	mc.Step()
	test.ExpectEquality(t, mc.A, uint8(0x27))
	test.ExpectSuccess(t, mc.Status.Carry)

	mc.Step()
	mc.Step()
	test.ExpectEquality(t, mc.A, uint8(0x07))
	test.ExpectSuccess(t, mc.Status.Carry)
}

func TestPageCrossing(t *testing.T) {
	mc, mem := newCPU(
		0xa2, 0x01, // LDX #$01
		0xbd, 0xff, 0x20, // LDA $20ff,X
		0x9d, 0xff, 0x20, // STA $20ff,X
	)
	mem[0x2100] = 0x55
	mc.Step()
	test.ExpectEquality(t, mc.Step(), 5)
	test.ExpectEquality(t, mc.A, uint8(0x55))

	// stores always take the extra cycle
	test.ExpectEquality(t, mc.Step(), 5)
}

func TestBranches(t *testing.T) {
	mc, _ := newCPU(
		0xa9, 0x00, // LDA #$00
		0xd0, 0x10, // BNE +16 (not taken)
		0xf0, 0x02, // BEQ +2 (taken)
		0xea, 0xea, // NOP NOP
		0xf0, 0xf6, // BEQ -10 (taken, back to $1000)
	)
	mc.Step()
	test.ExpectEquality(t, mc.Step(), 2)
	test.ExpectEquality(t, mc.PC, uint16(0x1004))
	test.ExpectEquality(t, mc.Step(), 3)
	test.ExpectEquality(t, mc.PC, uint16(0x1008))
	test.ExpectEquality(t, mc.Step(), 3)
	test.ExpectEquality(t, mc.PC, uint16(0x1000))
}

func TestBranchPageCrossing(t *testing.T) {
	mem := &ram{}
	mem[0xfffc] = 0xfb
	mem[0xfffd] = 0x10
	copy(mem[0x10fb:], []uint8{0xa9, 0x00, 0xf0, 0x02}) // LDA #$00; BEQ +2
	mc := cpu.NewCPU(mem)
	mc.Step()
	test.ExpectEquality(t, mc.Step(), 4)
	test.ExpectEquality(t, mc.PC, uint16(0x1101))
}

func TestSubroutine(t *testing.T) {
	mc, mem := newCPU(
		0x20, 0x00, 0x30, // JSR $3000
		0xea, // NOP
	)
	mem[0x3000] = 0x60 // RTS

	test.ExpectEquality(t, mc.Step(), 6)
	test.ExpectEquality(t, mc.PC, uint16(0x3000))
	test.ExpectEquality(t, mem[0x01fd], uint8(0x10))
	test.ExpectEquality(t, mem[0x01fc], uint8(0x02))

	test.ExpectEquality(t, mc.Step(), 6)
	test.ExpectEquality(t, mc.PC, uint16(0x1003))
	test.ExpectEquality(t, mc.SP, uint8(0xfd))
}

func TestJMPIndirectPageWrap(t *testing.T) {
	mc, mem := newCPU(0x6c, 0xff, 0x20) // JMP ($20ff)
	mem[0x20ff] = 0x34
	mem[0x2000] = 0x12
	mem[0x2100] = 0x56
	mc.Step()
	test.ExpectEquality(t, mc.PC, uint16(0x1234))
}

func TestIRQ(t *testing.T) {
	mc, mem := newCPU(
		0x58, // CLI
		0xea, // NOP
	)
	mem[0xfffe] = 0x00
	mem[0xffff] = 0x40
	mem[0x4000] = 0x40 // RTI

	// IRQ is ignored while interrupts are disabled
	mc.SetIRQ(true)
	test.ExpectFailure(t, mc.InterruptPending())
	test.ExpectEquality(t, mc.Step(), 2)
	test.ExpectSuccess(t, mc.InterruptPending())

	test.ExpectEquality(t, mc.Step(), 7)
	test.ExpectEquality(t, mc.PC, uint16(0x4000))
	test.ExpectSuccess(t, mc.Status.InterruptDisable)

	// break flag is clear in the pushed status
	test.ExpectEquality(t, mem[0x01fb]&0x10, uint8(0x00))

	mc.SetIRQ(false)
	test.ExpectEquality(t, mc.Step(), 6)
	test.ExpectEquality(t, mc.PC, uint16(0x1001))
	test.ExpectFailure(t, mc.Status.InterruptDisable)
}

func TestNMIEdge(t *testing.T) {
	mc, mem := newCPU(0xea, 0xea, 0xea)
	mem[0xfffa] = 0x00
	mem[0xfffb] = 0x50
	mem[0x5000] = 0x40 // RTI

	mc.SetNMI(true)
	test.ExpectEquality(t, mc.Step(), 7)
	test.ExpectEquality(t, mc.PC, uint16(0x5000))
	mc.Step()

	// line is still asserted but there is no new edge
	mc.SetNMI(true)
	test.ExpectFailure(t, mc.InterruptPending())
	test.ExpectEquality(t, mc.Step(), 2)
}

func TestJam(t *testing.T) {
	mc, _ := newCPU(0xea, 0x02)
	mc.Step()
	test.ExpectFailure(t, mc.Jammed())
	test.ExpectEquality(t, mc.Step(), 2)
	test.ExpectSuccess(t, mc.Jammed())
	test.ExpectEquality(t, mc.Step(), 0)
	test.ExpectEquality(t, mc.PC, uint16(0x1001))
	test.ExpectEquality(t, cpu.GetDefinition(0x02) == nil, true)
}

func TestIdleLoop(t *testing.T) {
	mc, _ := newCPU(
		0xea,             // NOP
		0x4c, 0x01, 0x10, // JMP $1001
	)
	mc.Step()
	test.ExpectFailure(t, mc.IdleLoop())
	test.ExpectEquality(t, mc.Step(), 3)
	test.ExpectSuccess(t, mc.IdleLoop())

	// a pending interrupt ends the idle loop
	mc.Status.InterruptDisable = false
	mc.SetIRQ(true)
	test.ExpectFailure(t, mc.IdleLoop())
}

func TestUndocumented(t *testing.T) {
	mc, mem := newCPU(
		0xa7, 0x10, // LAX $10
		0xc7, 0x11, // DCP $11
		0xe7, 0x12, // ISC $12
		0x87, 0x13, // SAX $13
		0xcb, 0x01, // SBX #$01
	)
	mem[0x10] = 0x42
	mem[0x11] = 0x43
	mem[0x12] = 0x01

	test.ExpectEquality(t, mc.Step(), 3)
	test.ExpectEquality(t, mc.A, uint8(0x42))
	test.ExpectEquality(t, mc.X, uint8(0x42))

	test.ExpectEquality(t, mc.Step(), 5)
	test.ExpectEquality(t, mem[0x11], uint8(0x42))
	test.ExpectSuccess(t, mc.Status.Zero)
	test.ExpectSuccess(t, mc.Status.Carry)

	mc.Step()
	test.ExpectEquality(t, mem[0x12], uint8(0x02))
	test.ExpectEquality(t, mc.A, uint8(0x40))

	mc.Step()
	test.ExpectEquality(t, mem[0x13], uint8(0x40))

	mc.Step()
	test.ExpectEquality(t, mc.X, uint8(0x3f))
}

func TestSaveRestore(t *testing.T) {
	program := []uint8{
		0xa9, 0x01, // LDA #$01
		0x0a,             // ASL A
		0x4c, 0x02, 0x10, // JMP $1002
	}
	a, _ := newCPU(program...)
	for range 7 {
		a.Step()
	}

	var b bytes.Buffer
	enc := snapshot.NewEncoder(&b)
	a.Save(enc)
	test.DemandSuccess(t, enc.Err())

	r, _ := newCPU()
	dec := snapshot.NewDecoder(&b)
	r.Restore(dec)
	test.DemandSuccess(t, dec.Err())

	test.ExpectEquality(t, r.String(), a.String())
}
