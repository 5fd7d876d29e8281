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

import "math"

// the filter integrators are updated every cycle. w0 is the cutoff frequency
// in radians per microsecond scaled by 2^20. values above the ceiling would
// make the single cycle update unstable.
const w0Ceiling = 16000

// cutoff frequency as a function of the 11 bit FC register value, for each
// model.
var w0Table [2][2048]int

// 1024/Q for each of the sixteen resonance settings.
var resonanceTable [16]int

func init() {
	for fc := range 2048 {
		x := float64(fc) / 2047

		// the 8580 curve is close to linear. the 6581 curve is much steeper
		// at the top of the range and varies a lot between chips
		f8580 := 30 + 12000*x
		f6581 := 220 + 17800*x*x

		w0Table[MOS8580][fc] = min(int(2*math.Pi*f8580*1.048576), w0Ceiling)
		w0Table[MOS6581][fc] = min(int(2*math.Pi*f6581*1.048576), w0Ceiling)
	}
	for r := range 16 {
		resonanceTable[r] = int(1024 / (0.707 + float64(r)/15))
	}
}

// mode bits of the mode/volume register.
const (
	modeLowPass  = 0x10
	modeBandPass = 0x20
	modeHighPass = 0x40
	mode3Off     = 0x80
)

type filter struct {
	fc      uint16
	resFilt uint8
	modeVol uint8

	w0 int
	q  int

	// the DC level at the input of the volume stage. on the 6581 this is
	// what makes writes to the volume register audible
	mixerDC int

	vhp int
	vbp int
	vlp int
	vnf int
}

func (f *filter) reset(model Model) {
	*f = filter{}
	f.setModel(model)
	f.q = resonanceTable[0]
}

func (f *filter) setModel(model Model) {
	if model == MOS6581 {
		f.mixerDC = -0xfff * 0xff / 18 >> 7
	} else {
		f.mixerDC = 0
	}
	f.w0 = w0Table[model][f.fc]
}

func (f *filter) writeCutoffLo(model Model, v uint8) {
	f.fc = f.fc&0x7f8 | uint16(v&0x07)
	f.w0 = w0Table[model][f.fc]
}

func (f *filter) writeCutoffHi(model Model, v uint8) {
	f.fc = uint16(v)<<3 | f.fc&0x007
	f.w0 = w0Table[model][f.fc]
}

func (f *filter) writeResFilt(v uint8) {
	f.resFilt = v
	f.q = resonanceTable[v>>4]
}

// clock the filter with the output of the three voices.
func (f *filter) clock(voice [3]int) {
	if f.modeVol&mode3Off != 0 && f.resFilt&0x04 == 0 {
		voice[2] = 0
	}

	var vi int
	f.vnf = 0
	for i, v := range voice {
		if f.resFilt&(1<<i) != 0 {
			vi += v
		} else {
			f.vnf += v
		}
	}

	dVbp := f.w0 * f.vhp >> 20
	dVlp := f.w0 * f.vbp >> 20
	f.vbp -= dVbp
	f.vlp -= dVlp
	f.vhp = (f.vbp * f.q >> 10) - f.vlp - vi
}

func (f *filter) output() int {
	var vf int
	if f.modeVol&modeLowPass != 0 {
		vf += f.vlp
	}
	if f.modeVol&modeBandPass != 0 {
		vf += f.vbp
	}
	if f.modeVol&modeHighPass != 0 {
		vf += f.vhp
	}
	return (f.vnf + vf + f.mixerDC) * int(f.modeVol&0x0f)
}

// the low pass (about 16kHz) and high pass (about 16Hz) RC filter between the
// chip and the audio output.
type externalFilter struct {
	vlp int
	vhp int
	vo  int
}

const (
	w0lp = 104858
	w0hp = 105
)

func (e *externalFilter) clock(vi int) {
	dVlp := (w0lp >> 8) * (vi - e.vlp) >> 12
	dVhp := w0hp * (e.vlp - e.vhp) >> 20
	e.vo = e.vlp - e.vhp
	e.vlp += dVlp
	e.vhp += dVhp
}
