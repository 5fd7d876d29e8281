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

import (
	"fmt"

	"github.com/jetsetilly/sidstreamer/snapshot"
)

// Model of the SID chip.
type Model int

// List of valid Model values.
const (
	MOS6581 Model = iota
	MOS8580
)

func (m Model) String() string {
	switch m {
	case MOS6581:
		return "6581"
	case MOS8580:
		return "8580"
	}
	return "unknown model"
}

// Sampling method used by Output().
type Sampling int

// List of valid Sampling values.
const (
	Fast Sampling = iota
	Interpolate
)

func (s Sampling) String() string {
	switch s {
	case Fast:
		return "fast"
	case Interpolate:
		return "interpolate"
	}
	return "unknown sampling"
}

// Registers that are not part of a voice block.
const (
	FilterCutoffLo = 0x15
	FilterCutoffHi = 0x16
	ResonanceFilt  = 0x17
	ModeVolume     = 0x18
	PotX           = 0x19
	PotY           = 0x1a
	Osc3           = 0x1b
	Env3           = 0x1c

	// the register space is mirrored every NumRegisters bytes
	NumRegisters = 0x20
)

// each voice occupies seven registers from VoiceStride*n.
const VoiceStride = 7

// the output of the external filter is divided by this value to give a 16
// bit sample.
const outputDivisor = 11

type modelParams struct {
	// the waveform value that produces no output
	waveZero int

	// DC level of a voice regardless of waveform or envelope
	voiceDC int
}

var params = [2]modelParams{
	MOS6581: {waveZero: 0x380, voiceDC: 0x800 * 0xff},
	MOS8580: {waveZero: 0x800, voiceDC: 0},
}

// SID is a single sound chip.
type SID struct {
	model    Model
	sampling Sampling

	osc [3]oscillator
	env [3]envelope

	filter filter
	ext    externalFilter

	// the most recent value written to any register
	bus uint8

	// output accumulation for interpolated sampling
	sum   int
	count int
}

// NewSID is the preferred method of initialisation for the SID type.
func NewSID(model Model) *SID {
	s := &SID{model: model}
	s.Reset()
	return s
}

func (s *SID) String() string {
	return fmt.Sprintf("%s vol=%d fc=%03x res/filt=%02x", s.model, s.filter.modeVol&0x0f, s.filter.fc, s.filter.resFilt)
}

// Reset all registers and internal state. The model and sampling method are
// not changed.
func (s *SID) Reset() {
	for i := range s.osc {
		s.osc[i].reset()
		s.env[i].reset()
	}
	s.filter.reset(s.model)
	s.ext = externalFilter{}
	s.bus = 0
	s.sum = 0
	s.count = 0
}

// SetModel changes the chip model.
func (s *SID) SetModel(model Model) {
	s.model = model
	s.filter.setModel(model)
}

// Model returns the current chip model.
func (s *SID) Model() Model {
	return s.model
}

// SetSampling changes the sampling method used by Output().
func (s *SID) SetSampling(sampling Sampling) {
	s.sampling = sampling
	s.sum = 0
	s.count = 0
}

// Write a value to a register. The register number is masked to the size of
// the register space.
func (s *SID) Write(reg uint16, v uint8) {
	reg &= NumRegisters - 1
	s.bus = v

	if reg < 3*VoiceStride {
		n := reg / VoiceStride
		o := &s.osc[n]
		e := &s.env[n]
		switch reg % VoiceStride {
		case 0:
			o.freq = o.freq&0xff00 | uint16(v)
		case 1:
			o.freq = uint16(v)<<8 | o.freq&0x00ff
		case 2:
			o.pw = o.pw&0x0f00 | uint16(v)
		case 3:
			o.pw = uint16(v&0x0f)<<8 | o.pw&0x00ff
		case 4:
			o.writeControl(v)
			e.writeControl(v)
		case 5:
			e.writeAttackDecay(v)
		case 6:
			e.writeSustainRelease(v)
		}
		return
	}

	switch reg {
	case FilterCutoffLo:
		s.filter.writeCutoffLo(s.model, v)
	case FilterCutoffHi:
		s.filter.writeCutoffHi(s.model, v)
	case ResonanceFilt:
		s.filter.writeResFilt(v)
	case ModeVolume:
		s.filter.modeVol = v
	}
}

// Read a register. Only the paddle registers and the voice 3 oscillator and
// envelope registers are readable.
func (s *SID) Read(reg uint16) uint8 {
	switch reg & (NumRegisters - 1) {
	case PotX, PotY:
		return 0xff
	case Osc3:
		return uint8(s.osc[2].output(&s.osc[1]) >> 4)
	case Env3:
		return s.env[2].counter
	}
	return s.bus
}

func (s *SID) voice(n int) int {
	p := params[s.model]
	wave := int(s.osc[n].output(&s.osc[(n+2)%3]))
	return ((wave-p.waveZero)*int(s.env[n].counter) + p.voiceDC) >> 7
}

// Clock the chip for the number of cycles.
func (s *SID) Clock(cycles int) {
	for range cycles {
		for i := range s.osc {
			s.osc[i].clock()
		}

		// voice 1 is synced by voice 3, voice 2 by voice 1 and voice 3 by
		// voice 2
		for i := range s.osc {
			s.osc[i].synchronise(&s.osc[(i+2)%3])
		}

		for i := range s.env {
			s.env[i].clock()
		}

		s.filter.clock([3]int{s.voice(0), s.voice(1), s.voice(2)})
		s.ext.clock(s.filter.output())

		if s.sampling == Interpolate {
			s.sum += s.ext.vo
			s.count++
		}
	}
}

// Output returns the current sample. Interpolated output is the average of
// every cycle since the previous call to Output().
func (s *SID) Output() int16 {
	v := s.ext.vo
	if s.sampling == Interpolate && s.count > 0 {
		v = s.sum / s.count
		s.sum = 0
		s.count = 0
	}
	v /= outputDivisor
	return int16(max(min(v, 32767), -32768))
}

// Save the state of the SID.
func (s *SID) Save(enc *snapshot.Encoder) {
	enc.Tag("SID")
	enc.Uint8(uint8(s.model))
	enc.Uint8(uint8(s.sampling))
	enc.Uint8(s.bus)

	for i := range s.osc {
		o := &s.osc[i]
		enc.Uint16(o.freq)
		enc.Uint16(o.pw)
		enc.Uint8(o.control)
		enc.Uint32(o.acc)
		enc.Uint32(o.shift)
		enc.Bool(o.msbRising)

		e := &s.env[i]
		enc.Uint8(e.attackDecay)
		enc.Uint8(e.sustainRelease)
		enc.Bool(e.gate)
		enc.Uint8(uint8(e.state))
		enc.Uint8(e.counter)
		enc.Uint16(e.rateCounter)
		enc.Uint16(e.period)
		enc.Uint8(e.expCounter)
		enc.Uint8(e.expPeriod)
		enc.Bool(e.holdZero)
	}

	enc.Uint16(s.filter.fc)
	enc.Uint8(s.filter.resFilt)
	enc.Uint8(s.filter.modeVol)
	enc.Int64(int64(s.filter.vhp))
	enc.Int64(int64(s.filter.vbp))
	enc.Int64(int64(s.filter.vlp))
	enc.Int64(int64(s.filter.vnf))

	enc.Int64(int64(s.ext.vlp))
	enc.Int64(int64(s.ext.vhp))
	enc.Int64(int64(s.ext.vo))

	enc.Int64(int64(s.sum))
	enc.Uint32(uint32(s.count))
}

// Restore the state written by Save().
func (s *SID) Restore(dec *snapshot.Decoder) {
	dec.ExpectTag("SID")

	model := Model(dec.Uint8())
	if model != MOS6581 && model != MOS8580 {
		dec.Failf("sid model %d", model)
		return
	}
	sampling := Sampling(dec.Uint8())
	if sampling != Fast && sampling != Interpolate {
		dec.Failf("sid sampling %d", sampling)
		return
	}
	s.model = model
	s.sampling = sampling
	s.bus = dec.Uint8()

	for i := range s.osc {
		o := &s.osc[i]
		o.freq = dec.Uint16()
		o.pw = dec.Uint16() & 0x0fff
		o.control = dec.Uint8()
		o.acc = dec.Uint32() & 0xffffff
		o.shift = dec.Uint32() & 0x7fffff
		o.msbRising = dec.Bool()

		e := &s.env[i]
		e.attackDecay = dec.Uint8()
		e.sustainRelease = dec.Uint8()
		e.gate = dec.Bool()
		e.state = envelopeState(dec.Uint8())
		e.counter = dec.Uint8()
		e.rateCounter = dec.Uint16() & 0x7fff
		e.period = dec.Uint16()
		e.expCounter = dec.Uint8()
		e.expPeriod = dec.Uint8()
		e.holdZero = dec.Bool()
		if e.state > release {
			dec.Failf("envelope state %d", e.state)
			return
		}
	}

	s.filter.fc = dec.Uint16() & 0x07ff
	s.filter.writeResFilt(dec.Uint8())
	s.filter.modeVol = dec.Uint8()
	s.filter.setModel(s.model)
	s.filter.vhp = int(dec.Int64())
	s.filter.vbp = int(dec.Int64())
	s.filter.vlp = int(dec.Int64())
	s.filter.vnf = int(dec.Int64())

	s.ext.vlp = int(dec.Int64())
	s.ext.vhp = int(dec.Int64())
	s.ext.vo = int(dec.Int64())

	s.sum = int(dec.Int64())
	s.count = int(dec.Uint32())
}
