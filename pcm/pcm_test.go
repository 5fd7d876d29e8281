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

package pcm_test

import (
	"math"
	"slices"
	"testing"

	"github.com/jetsetilly/sidstreamer/pcm"
	"github.com/jetsetilly/sidstreamer/test"
)

func TestFold(t *testing.T) {
	test.ExpectEquality(t, pcm.Fold(0, 0), int16(0))
	test.ExpectEquality(t, pcm.Fold(100, -50), int16(50))
	test.ExpectEquality(t, pcm.Fold(-1000, -1000), int16(-2000))

	// saturation
	test.ExpectEquality(t, pcm.Fold(math.MaxInt16, math.MaxInt16), int16(math.MaxInt16))
	test.ExpectEquality(t, pcm.Fold(math.MinInt16, math.MinInt16), int16(math.MinInt16))
	test.ExpectEquality(t, pcm.Fold(math.MaxInt16, math.MinInt16), int16(-1))
}

// the folded magnitude is bounded by the attenuation law.
// the folded sample is never louder than the attenuated sum of the two
// channels. it can be louder than either channel on its own
func TestFoldWithinAttenuatedSum(t *testing.T) {
	for l := math.MinInt16; l <= math.MaxInt16; l += 997 {
		for r := math.MinInt16; r <= math.MaxInt16; r += 1009 {
			f := int(pcm.Fold(int16(l), int16(r)))
			bound := (abs(l) + abs(r)) * pcm.FoldGain >> pcm.FoldShift
			if !test.ExpectSuccess(t, abs(f) <= bound, l, r) {
				return
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestFoldLouderThanChannel(t *testing.T) {
	test.ExpectEquality(t, pcm.Fold(-1000, -1000), int16(-2000))
	test.ExpectEquality(t, pcm.Fold(math.MaxInt16, math.MaxInt16), int16(math.MaxInt16))
	test.ExpectEquality(t, pcm.Fold(math.MinInt16, math.MinInt16), int16(math.MinInt16))
}

func TestFoldStereo(t *testing.T) {
	src := []int16{1, 2, 30, -10, 5}
	dst := pcm.FoldStereo(make([]int16, len(src)), src)

	// the unpaired sample is dropped
	test.ExpectSuccess(t, slices.Equal(dst, []int16{3, 3, 20, 20}))
}

func TestDuplicate(t *testing.T) {
	dst := pcm.Duplicate(make([]int16, 6), []int16{1, -2, 3})
	test.ExpectSuccess(t, slices.Equal(dst, []int16{1, 1, -2, -2, 3, 3}))
}

func TestPutFrame(t *testing.T) {
	b := make([]byte, pcm.BytesPerFrame)
	pcm.PutFrame(b, 0x1234, -2)
	test.ExpectEquality(t, string(b), "\x34\x12\xfe\xff")
}

func TestEncode(t *testing.T) {
	src := []int16{0x1234, -1}
	dst := make([]byte, 4)

	test.ExpectEquality(t, string(pcm.Encode(dst, src, pcm.S16LE)), "\x34\x12\xff\xff")
	test.ExpectEquality(t, string(pcm.Encode(dst, src, pcm.S16BE)), "\x12\x34\xff\xff")
	test.ExpectEquality(t, string(pcm.Encode(dst, src, pcm.U16LE)), "\x34\x92\xff\x7f")
	test.ExpectEquality(t, string(pcm.Encode(dst, src, pcm.U16BE)), "\x92\x34\x7f\xff")
}

func TestConvert(t *testing.T) {
	src := []int16{0x1234, -1, math.MinInt16}
	le := pcm.Encode(make([]byte, 6), src, pcm.S16LE)

	for _, f := range []pcm.Format{pcm.S16LE, pcm.S16BE, pcm.U16LE, pcm.U16BE} {
		b := slices.Clone(le)
		pcm.Convert(b, f)
		test.ExpectEquality(t, string(b), string(pcm.Encode(make([]byte, 6), src, f)), f)
	}
}

func TestScale(t *testing.T) {
	data := make([]byte, 8)
	pcm.PutFrame(data, 1000, -1000)
	pcm.PutFrame(data[4:], math.MaxInt16, math.MinInt16)
	orig := slices.Clone(data)

	b := slices.Clone(orig)
	pcm.Scale(b, 1.0)
	test.ExpectEquality(t, string(b), string(orig))

	b = slices.Clone(orig)
	pcm.Scale(b, 2.0)
	test.ExpectEquality(t, string(b), string(orig))

	b = slices.Clone(orig)
	pcm.Scale(b, 0.5)
	e := make([]byte, 8)
	pcm.PutFrame(e, 500, -500)
	pcm.PutFrame(e[4:], 16383, -16384)
	test.ExpectEquality(t, string(b), string(e))

	b = slices.Clone(orig)
	pcm.Scale(b, 0.0)
	test.ExpectEquality(t, string(b), string(make([]byte, 8)))
}
