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

package sid_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/sidstreamer/hardware/sid"
	"github.com/jetsetilly/sidstreamer/snapshot"
	"github.com/jetsetilly/sidstreamer/test"
)

const voice3 = 2 * sid.VoiceStride

func TestSilentAfterReset(t *testing.T) {
	for _, m := range []sid.Model{sid.MOS6581, sid.MOS8580} {
		s := sid.NewSID(m)
		s.Clock(1000)
		test.ExpectEquality(t, s.Output(), int16(0), m)
	}
}

func TestOscillator3(t *testing.T) {
	s := sid.NewSID(sid.MOS8580)
	s.Write(voice3+0, 0x00)
	s.Write(voice3+1, 0x10)
	s.Write(voice3+4, 0x20) // sawtooth

	s.Clock(256)
	test.ExpectEquality(t, s.Read(sid.Osc3), uint8(0x10))

	// test bit resets the accumulator
	s.Write(voice3+4, 0x28)
	test.ExpectEquality(t, s.Read(sid.Osc3), uint8(0x00))
	s.Clock(100)
	test.ExpectEquality(t, s.Read(sid.Osc3), uint8(0x00))
}

func TestEnvelope3(t *testing.T) {
	s := sid.NewSID(sid.MOS8580)
	s.Write(voice3+5, 0x00) // fastest attack
	s.Write(voice3+6, 0xf0) // full sustain
	s.Write(voice3+4, 0x01) // gate

	s.Clock(90)
	test.ExpectEquality(t, s.Read(sid.Env3), uint8(10))

	// attack completes after 255 steps and the sustain level is held
	s.Clock(9 * 300)
	test.ExpectEquality(t, s.Read(sid.Env3), uint8(0xff))

	// release with the fastest rate reaches zero and stays there
	s.Write(voice3+6, 0xf0)
	s.Write(voice3+4, 0x00)
	s.Clock(100000)
	test.ExpectEquality(t, s.Read(sid.Env3), uint8(0x00))
}

func TestReadableRegisters(t *testing.T) {
	s := sid.NewSID(sid.MOS6581)
	test.ExpectEquality(t, s.Read(sid.PotX), uint8(0xff))
	test.ExpectEquality(t, s.Read(sid.PotY), uint8(0xff))

	// write-only registers return the last value written
	s.Write(0x00, 0x5a)
	test.ExpectEquality(t, s.Read(0x00), uint8(0x5a))
	test.ExpectEquality(t, s.Read(sid.ModeVolume), uint8(0x5a))

	// register space is mirrored
	test.ExpectEquality(t, s.Read(sid.NumRegisters+sid.PotX), uint8(0xff))
}

// writing to the volume register produces a click on the 6581 but not on
// the 8580. this is how sample playback works in many tunes
func TestVolumeDigi(t *testing.T) {
	a := sid.NewSID(sid.MOS6581)
	a.Write(sid.ModeVolume, 0x0f)
	a.Clock(100)
	test.ExpectInequality(t, a.Output(), int16(0))

	b := sid.NewSID(sid.MOS8580)
	b.Write(sid.ModeVolume, 0x0f)
	b.Clock(100)
	test.ExpectEquality(t, b.Output(), int16(0))
}

func TestTone(t *testing.T) {
	for _, sampling := range []sid.Sampling{sid.Fast, sid.Interpolate} {
		s := sid.NewSID(sid.MOS8580)
		s.SetSampling(sampling)
		s.Write(sid.ModeVolume, 0x0f)
		s.Write(0x01, 0x20) // frequency
		s.Write(0x05, 0x00)
		s.Write(0x06, 0xf0)
		s.Write(0x04, 0x11) // triangle and gate

		var lo, hi int16
		for range 1000 {
			s.Clock(45)
			v := s.Output()
			lo = min(lo, v)
			hi = max(hi, v)
		}
		test.ExpectSuccess(t, lo < 0, sampling)
		test.ExpectSuccess(t, hi > 0, sampling)
	}
}

func configure(s *sid.SID) {
	s.Write(sid.ModeVolume, 0x1f)
	s.Write(sid.FilterCutoffHi, 0x40)
	s.Write(sid.ResonanceFilt, 0xf1)
	s.Write(0x01, 0x11)
	s.Write(0x03, 0x08)
	s.Write(0x04, 0x41)
	s.Write(voice3+1, 0x30)
	s.Write(voice3+4, 0x81)
}

func TestSaveRestore(t *testing.T) {
	a := sid.NewSID(sid.MOS6581)
	a.SetSampling(sid.Interpolate)
	configure(a)
	a.Clock(12345)

	var b bytes.Buffer
	enc := snapshot.NewEncoder(&b)
	a.Save(enc)
	test.DemandSuccess(t, enc.Err())

	r := sid.NewSID(sid.MOS8580)
	dec := snapshot.NewDecoder(&b)
	r.Restore(dec)
	test.DemandSuccess(t, dec.Err())
	test.ExpectEquality(t, r.Model(), sid.MOS6581)

	for i := range 500 {
		a.Clock(44)
		r.Clock(44)
		test.ExpectEquality(t, r.Output(), a.Output(), i)
	}
	test.ExpectEquality(t, r.Read(sid.Osc3), a.Read(sid.Osc3))
	test.ExpectEquality(t, r.Read(sid.Env3), a.Read(sid.Env3))
}

func TestRestoreTruncated(t *testing.T) {
	a := sid.NewSID(sid.MOS6581)
	var b bytes.Buffer
	enc := snapshot.NewEncoder(&b)
	a.Save(enc)

	data := b.Bytes()
	dec := snapshot.NewDecoder(bytes.NewReader(data[:len(data)/2]))
	sid.NewSID(sid.MOS6581).Restore(dec)
	test.ExpectFailure(t, dec.Err())
}
