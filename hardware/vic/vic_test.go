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

package vic_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/sidstreamer/hardware/clocks"
	"github.com/jetsetilly/sidstreamer/hardware/scheduler"
	"github.com/jetsetilly/sidstreamer/hardware/vic"
	"github.com/jetsetilly/sidstreamer/snapshot"
	"github.com/jetsetilly/sidstreamer/test"
)

// advance the scheduler to the cycle by scheduling and firing a CPU event
func advance(sched *scheduler.Scheduler, cycle uint64) {
	ev := sched.Bind(scheduler.CPU, func() {})
	sched.Schedule(ev, cycle)
	sched.AdvanceOne()
}

func TestRaster(t *testing.T) {
	sched := scheduler.NewScheduler()
	v := vic.NewVIC(sched)
	v.SetClock(clocks.PAL)

	test.ExpectEquality(t, v.Read(vic.Raster), uint8(0))

	advance(sched, 63*100+10)
	test.ExpectEquality(t, v.Read(vic.Raster), uint8(100))
	test.ExpectEquality(t, v.Read(vic.ControlY)&0x80, uint8(0x00))

	// line 300 sets the high bit in the control register
	advance(sched, 63*300)
	test.ExpectEquality(t, v.Read(vic.Raster), uint8(300&0xff))
	test.ExpectEquality(t, v.Read(vic.ControlY)&0x80, uint8(0x80))

	// wraps at the end of the frame
	advance(sched, uint64(clocks.PAL.CyclesPerFrame())+63*5)
	test.ExpectEquality(t, v.RasterLine(), 5)
}

func TestNTSCRaster(t *testing.T) {
	sched := scheduler.NewScheduler()
	v := vic.NewVIC(sched)
	v.SetClock(clocks.NTSC)
	advance(sched, 65*263+65*2)
	test.ExpectEquality(t, v.RasterLine(), 2)
}

func TestLightPen(t *testing.T) {
	sched := scheduler.NewScheduler()
	v := vic.NewVIC(sched)
	v.SetClock(clocks.PAL)

	advance(sched, 63*50+20)
	v.LightPen()
	test.ExpectEquality(t, v.Read(vic.LightPenX), uint8(80))
	test.ExpectEquality(t, v.Read(vic.LightPenY), uint8(50))

	// registers are read-only
	v.Write(vic.LightPenX, 0)
	test.ExpectEquality(t, v.Read(vic.LightPenX), uint8(80))
}

func TestRegisters(t *testing.T) {
	sched := scheduler.NewScheduler()
	v := vic.NewVIC(sched)

	v.Write(vic.BorderColour, 0xfe)
	test.ExpectEquality(t, v.Read(vic.BorderColour), uint8(0xfe))
	v.Write(vic.BorderColour, 0x01)
	test.ExpectEquality(t, v.Read(vic.BorderColour), uint8(0xf1))

	test.ExpectEquality(t, v.Read(0x3f), uint8(0xff))
	test.ExpectEquality(t, v.Read(vic.SpriteColl), uint8(0x00))

	// mirrored every 64 bytes
	v.Write(0x40+0x15, 0xaa)
	test.ExpectEquality(t, v.Read(0x15), uint8(0xaa))
}

func TestSaveRestore(t *testing.T) {
	sched := scheduler.NewScheduler()
	v := vic.NewVIC(sched)
	v.SetClock(clocks.NTSC)
	advance(sched, 1000)
	v.LightPen()
	v.Write(0x15, 0x03)

	var b bytes.Buffer
	enc := snapshot.NewEncoder(&b)
	v.Save(enc)
	test.DemandSuccess(t, enc.Err())

	r := vic.NewVIC(sched)
	dec := snapshot.NewDecoder(&b)
	r.Restore(dec)
	test.DemandSuccess(t, dec.Err())

	test.ExpectEquality(t, r.String(), v.String())
	test.ExpectEquality(t, r.Read(vic.LightPenX), v.Read(vic.LightPenX))
	test.ExpectEquality(t, r.Read(vic.LightPenY), v.Read(vic.LightPenY))
	test.ExpectEquality(t, r.Read(0x15), uint8(0x03))
}
