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

package sid

// control register bits.
const (
	ctrlGate     = 0x01
	ctrlSync     = 0x02
	ctrlRingMod  = 0x04
	ctrlTest     = 0x08
	ctrlTriangle = 0x10
	ctrlSawtooth = 0x20
	ctrlPulse    = 0x40
	ctrlNoise    = 0x80
)

// the initial value of the noise shift register and the value it returns to
// when the test bit is set.
const noiseSeed = 0x7ffff8

// oscillator is the 24 bit phase accumulator and waveform generator of a
// single voice.
type oscillator struct {
	freq    uint16
	pw      uint16
	control uint8

	acc   uint32
	shift uint32

	// the MSB of the accumulator went from low to high in the most recent
	// cycle. used for hard sync of the next voice
	msbRising bool
}

func (o *oscillator) reset() {
	*o = oscillator{shift: noiseSeed}
}

func (o *oscillator) writeControl(v uint8) {
	if v&ctrlTest != 0 {
		o.acc = 0
		o.shift = noiseSeed
	}
	o.control = v
}

func (o *oscillator) clock() {
	if o.control&ctrlTest != 0 {
		return
	}

	prev := o.acc
	o.acc = (o.acc + uint32(o.freq)) & 0xffffff
	o.msbRising = prev&0x800000 == 0 && o.acc&0x800000 != 0

	// the noise register shifts when bit 19 of the accumulator goes high
	if prev&0x080000 == 0 && o.acc&0x080000 != 0 {
		bit0 := ((o.shift >> 22) ^ (o.shift >> 17)) & 0x01
		o.shift = ((o.shift << 1) | bit0) & 0x7fffff
	}
}

// synchronise resets the accumulator if hard sync is enabled and the sync
// source has just wrapped.
func (o *oscillator) synchronise(source *oscillator) {
	if o.control&ctrlSync != 0 && source.msbRising {
		o.acc = 0
	}
}

func (o *oscillator) triangle(source *oscillator) uint16 {
	msb := o.acc
	if o.control&ctrlRingMod != 0 {
		msb ^= source.acc
	}
	v := o.acc
	if msb&0x800000 != 0 {
		v = ^v
	}
	return uint16(v>>11) & 0xfff
}

func (o *oscillator) sawtooth() uint16 {
	return uint16(o.acc >> 12)
}

func (o *oscillator) pulse() uint16 {
	if o.control&ctrlTest != 0 || uint16(o.acc>>12) >= o.pw {
		return 0xfff
	}
	return 0x000
}

func (o *oscillator) noise() uint16 {
	s := o.shift
	return uint16((s&0x400000)>>11 |
		(s&0x100000)>>10 |
		(s&0x010000)>>7 |
		(s&0x002000)>>5 |
		(s&0x000800)>>4 |
		(s&0x000080)>>1 |
		(s&0x000010)<<1 |
		(s&0x000004)<<2)
}

// output is the 12 bit waveform selected by the control register.
func (o *oscillator) output(source *oscillator) uint16 {
	sel := o.control & 0xf0
	if sel == 0 {
		return 0
	}

	out := uint16(0xfff)
	if sel&ctrlTriangle != 0 {
		out &= o.triangle(source)
	}
	if sel&ctrlSawtooth != 0 {
		out &= o.sawtooth()
	}
	if sel&ctrlPulse != 0 {
		out &= o.pulse()
	}
	if sel&ctrlNoise != 0 {
		out &= o.noise()
	}
	return out
}
