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

// Package clocks defines the constant values that define the speed of the
// main clock in the C64 and the dimensions of the video frame that the clock
// drives.
//
// The frame dimensions are used for the VBI play speed of a tune and for
// the raster position read from the VIC.
package clocks

// Clock identifies the television standard of the machine.
type Clock int

// List of valid Clock values.
const (
	PAL Clock = iota
	NTSC
)

func (c Clock) String() string {
	switch c {
	case PAL:
		return "PAL"
	case NTSC:
		return "NTSC"
	}
	return "unknown clock"
}

// Clock rates in Hz.
const (
	PALRate  = 985248
	NTSCRate = 1022727
)

// Frame dimensions in lines and in cycles per line.
const (
	PALLines          = 312
	PALCyclesPerLine  = 63
	NTSCLines         = 263
	NTSCCyclesPerLine = 65
)

// Rate returns the CPU clock rate in Hz.
func (c Clock) Rate() int {
	if c == NTSC {
		return NTSCRate
	}
	return PALRate
}

// Lines returns the number of raster lines in a frame.
func (c Clock) Lines() int {
	if c == NTSC {
		return NTSCLines
	}
	return PALLines
}

// CyclesPerLine returns the number of CPU cycles in a raster line.
func (c Clock) CyclesPerLine() int {
	if c == NTSC {
		return NTSCCyclesPerLine
	}
	return PALCyclesPerLine
}

// CyclesPerFrame returns the number of CPU cycles in a video frame. This is
// also the period of the VBI interrupt.
func (c Clock) CyclesPerFrame() int {
	return c.Lines() * c.CyclesPerLine()
}
