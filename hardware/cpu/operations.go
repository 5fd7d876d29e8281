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

// arithmetic helpers shared by documented and undocumented instructions

func (mc *CPU) adc(v uint8) {
	if mc.Status.DecimalMode {
		mc.adcDecimal(v)
		return
	}
	var c uint16
	if mc.Status.Carry {
		c = 1
	}
	t := uint16(mc.A) + uint16(v) + c
	r := uint8(t)
	mc.Status.Overflow = (mc.A^v)&0x80 == 0 && (mc.A^r)&0x80 != 0
	mc.Status.Carry = t > 0xff
	mc.A = r
	mc.Status.setNZ(r)
}

func (mc *CPU) sbc(v uint8) {
	if mc.Status.DecimalMode {
		mc.sbcDecimal(v)
		return
	}
	mc.adc(^v)
}

func (mc *CPU) compare(reg uint8, v uint8) {
	mc.Status.Carry = reg >= v
	mc.Status.setNZ(reg - v)
}

func (mc *CPU) shiftLeft(v uint8, carryIn bool) uint8 {
	mc.Status.Carry = v&0x80 == 0x80
	v <<= 1
	if carryIn {
		v |= 0x01
	}
	mc.Status.setNZ(v)
	return v
}

func (mc *CPU) shiftRight(v uint8, carryIn bool) uint8 {
	mc.Status.Carry = v&0x01 == 0x01
	v >>= 1
	if carryIn {
		v |= 0x80
	}
	mc.Status.setNZ(v)
	return v
}

func (mc *CPU) branch(cond bool, addr uint16) int {
	if !cond {
		return 0
	}
	extra := 1
	if mc.PC&0xff00 != addr&0xff00 {
		extra++
	}
	mc.PC = addr
	return extra
}

// the value written by the SHA, SHX, SHY and TAS instructions is ANDed with
// the high byte of the base address plus one
func highPlusOne(addr uint16, index uint8) uint8 {
	return uint8((addr-uint16(index))>>8) + 1
}

// load and store

func lda(mc *CPU, addr uint16) int {
	mc.A = mc.mem.Read(addr)
	mc.Status.setNZ(mc.A)
	return 0
}

func ldx(mc *CPU, addr uint16) int {
	mc.X = mc.mem.Read(addr)
	mc.Status.setNZ(mc.X)
	return 0
}

func ldy(mc *CPU, addr uint16) int {
	mc.Y = mc.mem.Read(addr)
	mc.Status.setNZ(mc.Y)
	return 0
}

func sta(mc *CPU, addr uint16) int {
	mc.mem.Write(addr, mc.A)
	return 0
}

func stx(mc *CPU, addr uint16) int {
	mc.mem.Write(addr, mc.X)
	return 0
}

func sty(mc *CPU, addr uint16) int {
	mc.mem.Write(addr, mc.Y)
	return 0
}

// ALU

func ora(mc *CPU, addr uint16) int {
	mc.A |= mc.mem.Read(addr)
	mc.Status.setNZ(mc.A)
	return 0
}

func and(mc *CPU, addr uint16) int {
	mc.A &= mc.mem.Read(addr)
	mc.Status.setNZ(mc.A)
	return 0
}

func eor(mc *CPU, addr uint16) int {
	mc.A ^= mc.mem.Read(addr)
	mc.Status.setNZ(mc.A)
	return 0
}

func adc(mc *CPU, addr uint16) int {
	mc.adc(mc.mem.Read(addr))
	return 0
}

func sbc(mc *CPU, addr uint16) int {
	mc.sbc(mc.mem.Read(addr))
	return 0
}

func cmp(mc *CPU, addr uint16) int {
	mc.compare(mc.A, mc.mem.Read(addr))
	return 0
}

func cpx(mc *CPU, addr uint16) int {
	mc.compare(mc.X, mc.mem.Read(addr))
	return 0
}

func cpy(mc *CPU, addr uint16) int {
	mc.compare(mc.Y, mc.mem.Read(addr))
	return 0
}

func bit(mc *CPU, addr uint16) int {
	v := mc.mem.Read(addr)
	mc.Status.Zero = mc.A&v == 0
	mc.Status.Sign = v&0x80 == 0x80
	mc.Status.Overflow = v&0x40 == 0x40
	return 0
}

// shifts and rotates

func aslA(mc *CPU, _ uint16) int {
	mc.A = mc.shiftLeft(mc.A, false)
	return 0
}

func lsrA(mc *CPU, _ uint16) int {
	mc.A = mc.shiftRight(mc.A, false)
	return 0
}

func rolA(mc *CPU, _ uint16) int {
	mc.A = mc.shiftLeft(mc.A, mc.Status.Carry)
	return 0
}

func rorA(mc *CPU, _ uint16) int {
	mc.A = mc.shiftRight(mc.A, mc.Status.Carry)
	return 0
}

func asl(mc *CPU, addr uint16) int {
	mc.mem.Write(addr, mc.shiftLeft(mc.mem.Read(addr), false))
	return 0
}

func lsr(mc *CPU, addr uint16) int {
	mc.mem.Write(addr, mc.shiftRight(mc.mem.Read(addr), false))
	return 0
}

func rol(mc *CPU, addr uint16) int {
	mc.mem.Write(addr, mc.shiftLeft(mc.mem.Read(addr), mc.Status.Carry))
	return 0
}

func ror(mc *CPU, addr uint16) int {
	mc.mem.Write(addr, mc.shiftRight(mc.mem.Read(addr), mc.Status.Carry))
	return 0
}

func inc(mc *CPU, addr uint16) int {
	v := mc.mem.Read(addr) + 1
	mc.mem.Write(addr, v)
	mc.Status.setNZ(v)
	return 0
}

func dec(mc *CPU, addr uint16) int {
	v := mc.mem.Read(addr) - 1
	mc.mem.Write(addr, v)
	mc.Status.setNZ(v)
	return 0
}

// register transfers and implied instructions

func inx(mc *CPU, _ uint16) int {
	mc.X++
	mc.Status.setNZ(mc.X)
	return 0
}

func iny(mc *CPU, _ uint16) int {
	mc.Y++
	mc.Status.setNZ(mc.Y)
	return 0
}

func dex(mc *CPU, _ uint16) int {
	mc.X--
	mc.Status.setNZ(mc.X)
	return 0
}

func dey(mc *CPU, _ uint16) int {
	mc.Y--
	mc.Status.setNZ(mc.Y)
	return 0
}

func tax(mc *CPU, _ uint16) int {
	mc.X = mc.A
	mc.Status.setNZ(mc.X)
	return 0
}

func tay(mc *CPU, _ uint16) int {
	mc.Y = mc.A
	mc.Status.setNZ(mc.Y)
	return 0
}

func txa(mc *CPU, _ uint16) int {
	mc.A = mc.X
	mc.Status.setNZ(mc.A)
	return 0
}

func tya(mc *CPU, _ uint16) int {
	mc.A = mc.Y
	mc.Status.setNZ(mc.A)
	return 0
}

func tsx(mc *CPU, _ uint16) int {
	mc.X = mc.SP
	mc.Status.setNZ(mc.X)
	return 0
}

func txs(mc *CPU, _ uint16) int {
	mc.SP = mc.X
	return 0
}

func clc(mc *CPU, _ uint16) int {
	mc.Status.Carry = false
	return 0
}

func sec(mc *CPU, _ uint16) int {
	mc.Status.Carry = true
	return 0
}

func cli(mc *CPU, _ uint16) int {
	mc.Status.InterruptDisable = false
	return 0
}

func sei(mc *CPU, _ uint16) int {
	mc.Status.InterruptDisable = true
	return 0
}

func clv(mc *CPU, _ uint16) int {
	mc.Status.Overflow = false
	return 0
}

func cld(mc *CPU, _ uint16) int {
	mc.Status.DecimalMode = false
	return 0
}

func sed(mc *CPU, _ uint16) int {
	mc.Status.DecimalMode = true
	return 0
}

func nop(_ *CPU, _ uint16) int {
	return 0
}

// stack

func pha(mc *CPU, _ uint16) int {
	mc.push(mc.A)
	return 0
}

func php(mc *CPU, _ uint16) int {
	mc.push(mc.Status.Value() | 0x10)
	return 0
}

func pla(mc *CPU, _ uint16) int {
	mc.A = mc.pull()
	mc.Status.setNZ(mc.A)
	return 0
}

func plp(mc *CPU, _ uint16) int {
	mc.Status.FromValue(mc.pull())
	mc.Status.Break = false
	return 0
}

// flow control

func jmp(mc *CPU, addr uint16) int {
	if addr == mc.instrPC {
		mc.idle = true
	}
	mc.PC = addr
	return 0
}

func jsr(mc *CPU, addr uint16) int {
	mc.push16(mc.PC - 1)
	mc.PC = addr
	return 0
}

func rts(mc *CPU, _ uint16) int {
	mc.PC = mc.pull16() + 1
	return 0
}

func rti(mc *CPU, _ uint16) int {
	mc.Status.FromValue(mc.pull())
	mc.Status.Break = false
	mc.PC = mc.pull16()
	return 0
}

func brk(mc *CPU, _ uint16) int {
	// BRK has a padding byte
	mc.push16(mc.PC + 1)
	mc.push(mc.Status.Value() | 0x10)
	mc.Status.InterruptDisable = true
	mc.PC = mc.read16(IRQVector)
	return 0
}

func bpl(mc *CPU, addr uint16) int { return mc.branch(!mc.Status.Sign, addr) }
func bmi(mc *CPU, addr uint16) int { return mc.branch(mc.Status.Sign, addr) }
func bvc(mc *CPU, addr uint16) int { return mc.branch(!mc.Status.Overflow, addr) }
func bvs(mc *CPU, addr uint16) int { return mc.branch(mc.Status.Overflow, addr) }
func bcc(mc *CPU, addr uint16) int { return mc.branch(!mc.Status.Carry, addr) }
func bcs(mc *CPU, addr uint16) int { return mc.branch(mc.Status.Carry, addr) }
func bne(mc *CPU, addr uint16) int { return mc.branch(!mc.Status.Zero, addr) }
func beq(mc *CPU, addr uint16) int { return mc.branch(mc.Status.Zero, addr) }

// undocumented

func slo(mc *CPU, addr uint16) int {
	v := mc.shiftLeft(mc.mem.Read(addr), false)
	mc.mem.Write(addr, v)
	mc.A |= v
	mc.Status.setNZ(mc.A)
	return 0
}

func rla(mc *CPU, addr uint16) int {
	v := mc.shiftLeft(mc.mem.Read(addr), mc.Status.Carry)
	mc.mem.Write(addr, v)
	mc.A &= v
	mc.Status.setNZ(mc.A)
	return 0
}

func sre(mc *CPU, addr uint16) int {
	v := mc.shiftRight(mc.mem.Read(addr), false)
	mc.mem.Write(addr, v)
	mc.A ^= v
	mc.Status.setNZ(mc.A)
	return 0
}

func rra(mc *CPU, addr uint16) int {
	v := mc.shiftRight(mc.mem.Read(addr), mc.Status.Carry)
	mc.mem.Write(addr, v)
	mc.adc(v)
	return 0
}

func dcp(mc *CPU, addr uint16) int {
	v := mc.mem.Read(addr) - 1
	mc.mem.Write(addr, v)
	mc.compare(mc.A, v)
	return 0
}

func isc(mc *CPU, addr uint16) int {
	v := mc.mem.Read(addr) + 1
	mc.mem.Write(addr, v)
	mc.sbc(v)
	return 0
}

func lax(mc *CPU, addr uint16) int {
	mc.A = mc.mem.Read(addr)
	mc.X = mc.A
	mc.Status.setNZ(mc.A)
	return 0
}

// the magic constant for the unstable LXA and ANE instructions varies
// between chips. $ee is a common value
const unstableMagic = 0xee

func lxa(mc *CPU, addr uint16) int {
	mc.A = (mc.A | unstableMagic) & mc.mem.Read(addr)
	mc.X = mc.A
	mc.Status.setNZ(mc.A)
	return 0
}

func ane(mc *CPU, addr uint16) int {
	mc.A = (mc.A | unstableMagic) & mc.X & mc.mem.Read(addr)
	mc.Status.setNZ(mc.A)
	return 0
}

func sax(mc *CPU, addr uint16) int {
	mc.mem.Write(addr, mc.A&mc.X)
	return 0
}

func las(mc *CPU, addr uint16) int {
	v := mc.mem.Read(addr) & mc.SP
	mc.A = v
	mc.X = v
	mc.SP = v
	mc.Status.setNZ(v)
	return 0
}

func sha(mc *CPU, addr uint16) int {
	mc.mem.Write(addr, mc.A&mc.X&highPlusOne(addr, mc.Y))
	return 0
}

func shx(mc *CPU, addr uint16) int {
	mc.mem.Write(addr, mc.X&highPlusOne(addr, mc.Y))
	return 0
}

func shy(mc *CPU, addr uint16) int {
	mc.mem.Write(addr, mc.Y&highPlusOne(addr, mc.X))
	return 0
}

func tas(mc *CPU, addr uint16) int {
	mc.SP = mc.A & mc.X
	mc.mem.Write(addr, mc.SP&highPlusOne(addr, mc.Y))
	return 0
}

func anc(mc *CPU, addr uint16) int {
	mc.A &= mc.mem.Read(addr)
	mc.Status.setNZ(mc.A)
	mc.Status.Carry = mc.Status.Sign
	return 0
}

func alr(mc *CPU, addr uint16) int {
	mc.A = mc.shiftRight(mc.A&mc.mem.Read(addr), false)
	return 0
}

func arr(mc *CPU, addr uint16) int {
	v := mc.A & mc.mem.Read(addr)
	mc.A = v >> 1
	if mc.Status.Carry {
		mc.A |= 0x80
	}
	mc.Status.setNZ(mc.A)
	mc.Status.Carry = mc.A&0x40 == 0x40
	mc.Status.Overflow = (mc.A&0x40)>>6 != (mc.A&0x20)>>5
	return 0
}

func sbx(mc *CPU, addr uint16) int {
	v := mc.mem.Read(addr)
	ax := mc.A & mc.X
	mc.Status.Carry = ax >= v
	mc.X = ax - v
	mc.Status.setNZ(mc.X)
	return 0
}
