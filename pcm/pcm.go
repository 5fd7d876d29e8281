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

package pcm

import (
	"encoding/binary"
	"math"
)

// The stereo fold multiplies the sum of the two channels by FoldGain and
// shifts the result right by FoldShift.
const (
	FoldShift = 4
	FoldGain  = 1 << FoldShift
)

// BytesPerFrame is the size of one frame of two 16 bit channels.
const BytesPerFrame = 4

func clip(v int) int16 {
	return int16(max(min(v, math.MaxInt16), math.MinInt16))
}

// Fold downmixes a stereo pair into a single sample.
func Fold(l, r int16) int16 {
	return clip(((int(l) + int(r)) * FoldGain) >> FoldShift)
}

// FoldStereo folds interleaved stereo samples in src and writes each folded
// sample twice to dst. Returns the slice of dst that was written. The
// capacity of dst must be at least the length of src.
func FoldStereo(dst, src []int16) []int16 {
	n := len(src) &^ 1
	dst = dst[:n]
	for i := 0; i < n; i += 2 {
		f := Fold(src[i], src[i+1])
		dst[i] = f
		dst[i+1] = f
	}
	return dst
}

// Duplicate writes each mono sample in src twice to dst. Returns the slice
// of dst that was written. The capacity of dst must be at least twice the
// length of src.
func Duplicate(dst, src []int16) []int16 {
	dst = dst[:len(src)*2]
	for i, s := range src {
		dst[i*2] = s
		dst[i*2+1] = s
	}
	return dst
}

// PutFrame writes the pair of samples to b as little-endian 16 bit values.
func PutFrame(b []byte, l, r int16) {
	binary.LittleEndian.PutUint16(b, uint16(l))
	binary.LittleEndian.PutUint16(b[2:], uint16(r))
}

// Format of encoded sample data.
type Format int

// List of valid Format values.
const (
	S16LE Format = iota
	U16LE
	S16BE
	U16BE
)

func (f Format) String() string {
	switch f {
	case S16LE:
		return "s16le"
	case U16LE:
		return "u16le"
	case S16BE:
		return "s16be"
	case U16BE:
		return "u16be"
	}
	return "unknown format"
}

// byte order and bias of the format
func layout(f Format) (binary.ByteOrder, uint16) {
	var order binary.ByteOrder = binary.LittleEndian
	if f == S16BE || f == U16BE {
		order = binary.BigEndian
	}

	var bias uint16
	if f == U16LE || f == U16BE {
		bias = 0x8000
	}

	return order, bias
}

// Encode the samples in src to dst in the specified format. Returns the
// slice of dst that was written. The capacity of dst must be at least twice
// the length of src.
func Encode(dst []byte, src []int16, f Format) []byte {
	dst = dst[:len(src)*2]
	order, bias := layout(f)
	for i, s := range src {
		order.PutUint16(dst[i*2:], uint16(s)^bias)
	}
	return dst
}

// Convert the s16le samples in b to the specified format in place.
func Convert(b []byte, f Format) {
	if f == S16LE {
		return
	}
	order, bias := layout(f)
	for i := 0; i+1 < len(b); i += 2 {
		order.PutUint16(b[i:], binary.LittleEndian.Uint16(b[i:])^bias)
	}
}

// Scale the s16le samples in b by the volume. A volume of zero silences the
// data and a volume of one leaves it unchanged. The volume is clamped to
// the range 0 to 1.
func Scale(b []byte, volume float32) {
	volume = max(min(volume, 1.0), 0.0)
	if volume == 1.0 {
		return
	}
	for i := 0; i+1 < len(b); i += 2 {
		s := int16(binary.LittleEndian.Uint16(b[i:]))
		s = int16(float32(s) * volume)
		binary.LittleEndian.PutUint16(b[i:], uint16(s))
	}
}
