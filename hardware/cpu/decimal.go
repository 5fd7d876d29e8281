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

// decimal mode arithmetic as performed by the NMOS 6502. the flags are set
// from intermediate values and so differ from what a BCD-correct
// implementation would produce for invalid BCD operands.

func (mc *CPU) adcDecimal(v uint8) {
	var c int
	if mc.Status.Carry {
		c = 1
	}
	a := int(mc.A)
	m := int(v)

	// the zero flag is set from the binary result
	mc.Status.Zero = (a+m+c)&0xff == 0

	t := (a & 0x0f) + (m & 0x0f) + c
	if t > 0x09 {
		t += 0x06
	}
	if t <= 0x0f {
		t = (t & 0x0f) + (a & 0xf0) + (m & 0xf0)
	} else {
		t = (t & 0x0f) + (a & 0xf0) + (m & 0xf0) + 0x10
	}

	// sign and overflow are set before the high nibble is adjusted
	mc.Status.Sign = t&0x80 == 0x80
	mc.Status.Overflow = (a^t)&0x80 != 0 && (a^m)&0x80 == 0

	if t&0x1f0 > 0x90 {
		t += 0x60
	}
	mc.Status.Carry = t&0xff0 > 0xf0
	mc.A = uint8(t)
}

func (mc *CPU) sbcDecimal(v uint8) {
	var borrow int
	if !mc.Status.Carry {
		borrow = 1
	}
	a := int(mc.A)
	m := int(v)

	// the flags are set from the binary result
	bin := a - m - borrow
	mc.Status.Carry = bin >= 0
	mc.Status.setNZ(uint8(bin))
	mc.Status.Overflow = (a^bin)&0x80 != 0 && (a^m)&0x80 != 0

	t := (a & 0x0f) - (m & 0x0f) - borrow
	if t&0x10 != 0 {
		t = ((t - 0x06) & 0x0f) | ((a & 0xf0) - (m & 0xf0) - 0x10)
	} else {
		t = (t & 0x0f) | ((a & 0xf0) - (m & 0xf0))
	}
	if t&0x100 != 0 {
		t -= 0x60
	}
	mc.A = uint8(t)
}
