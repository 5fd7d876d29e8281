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

package vic

import (
	"fmt"

	"github.com/jetsetilly/sidstreamer/hardware/clocks"
	"github.com/jetsetilly/sidstreamer/hardware/scheduler"
	"github.com/jetsetilly/sidstreamer/snapshot"
)

// Register addresses with special behaviour.
const (
	ControlY   = 0x11
	Raster     = 0x12
	LightPenX  = 0x13
	LightPenY  = 0x14
	IRQStatus  = 0x19
	IRQEnable  = 0x1a
	SpriteColl = 0x1e
	DataColl   = 0x1f

	// the first of the colour registers. only the low nibble of the colour
	// registers is stored
	BorderColour = 0x20

	// registers above this address are unconnected
	LastRegister = 0x2e

	// the register space is mirrored every NumRegisters bytes
	NumRegisters = 0x40
)

// VIC is the video chip.
type VIC struct {
	sched *scheduler.Scheduler
	clock clocks.Clock

	regs [NumRegisters]uint8

	lightPenX uint8
	lightPenY uint8
}

// NewVIC is the preferred method of initialisation for the VIC type.
func NewVIC(sched *scheduler.Scheduler) *VIC {
	v := &VIC{sched: sched}
	v.Reset()
	return v
}

func (v *VIC) String() string {
	line, cyc := v.position()
	return fmt.Sprintf("%s line=%d cycle=%d", v.clock, line, cyc)
}

// Reset the register values. The clock is not changed.
func (v *VIC) Reset() {
	clear(v.regs[:])
	v.regs[ControlY] = 0x1b
	v.lightPenX = 0
	v.lightPenY = 0
}

// SetClock selects the frame geometry.
func (v *VIC) SetClock(clock clocks.Clock) {
	v.clock = clock
}

// position returns the raster line and the cycle within the line.
func (v *VIC) position() (int, int) {
	cpl := uint64(v.clock.CyclesPerLine())
	lines := uint64(v.clock.Lines())
	now := v.sched.Cycle()
	return int((now / cpl) % lines), int(now % cpl)
}

// RasterLine returns the current raster line.
func (v *VIC) RasterLine() int {
	line, _ := v.position()
	return line
}

// LightPen latches the current beam position in the light-pen registers.
func (v *VIC) LightPen() {
	line, cyc := v.position()

	// the X register has a resolution of two pixels and there are eight
	// pixels per cycle
	v.lightPenX = uint8(cyc * 4)
	v.lightPenY = uint8(line)
}

// Read a register.
func (v *VIC) Read(reg uint16) uint8 {
	reg &= NumRegisters - 1

	switch {
	case reg == ControlY:
		line, _ := v.position()
		return v.regs[ControlY]&0x7f | uint8((line&0x100)>>1)
	case reg == Raster:
		line, _ := v.position()
		return uint8(line)
	case reg == LightPenX:
		return v.lightPenX
	case reg == LightPenY:
		return v.lightPenY
	case reg == IRQStatus:
		return v.regs[IRQStatus] | 0x70
	case reg == IRQEnable:
		return v.regs[IRQEnable] | 0xf0
	case reg == SpriteColl || reg == DataColl:
		return 0
	case reg > LastRegister:
		return 0xff
	case reg >= BorderColour:
		return v.regs[reg] | 0xf0
	}
	return v.regs[reg]
}

// Write a register. Writing to the interrupt status register acknowledges the
// bits that are set in the value.
func (v *VIC) Write(reg uint16, val uint8) {
	reg &= NumRegisters - 1

	switch {
	case reg == IRQStatus:
		v.regs[IRQStatus] &^= val & 0x0f
	case reg == LightPenX || reg == LightPenY:
	case reg == SpriteColl || reg == DataColl:
	case reg > LastRegister:
	case reg >= BorderColour:
		v.regs[reg] = val & 0x0f
	default:
		v.regs[reg] = val
	}
}

// Save the state of the VIC.
func (v *VIC) Save(enc *snapshot.Encoder) {
	enc.Tag("VIC")
	enc.Uint8(uint8(v.clock))
	enc.Bytes(v.regs[:])
	enc.Uint8(v.lightPenX)
	enc.Uint8(v.lightPenY)
}

// Restore the state written by Save().
func (v *VIC) Restore(dec *snapshot.Decoder) {
	dec.ExpectTag("VIC")
	clock := clocks.Clock(dec.Uint8())
	if clock != clocks.PAL && clock != clocks.NTSC {
		dec.Failf("vic clock %d", clock)
		return
	}
	v.clock = clock
	regs := dec.Bytes()
	if dec.Err() == nil && len(regs) != NumRegisters {
		dec.Failf("vic register count %d", len(regs))
		return
	}
	copy(v.regs[:], regs)
	v.lightPenX = dec.Uint8()
	v.lightPenY = dec.Uint8()
}
