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

package cia_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/sidstreamer/hardware/cia"
	"github.com/jetsetilly/sidstreamer/hardware/scheduler"
	"github.com/jetsetilly/sidstreamer/snapshot"
	"github.com/jetsetilly/sidstreamer/test"
)

type harness struct {
	sched *scheduler.Scheduler
	cia   *cia.CIA

	// every change of the interrupt line. true for asserted
	lines []bool

	// cycles at which the interrupt line was asserted
	raised []uint64

	edges int
}

func newHarness() *harness {
	h := &harness{
		sched: scheduler.NewScheduler(),
	}
	h.sched.Bind(scheduler.CPU, func() {})
	h.cia = cia.NewCIA("CIA1", h.sched, scheduler.CIA1TimerA, scheduler.CIA1TimerB, cia.Wiring{
		Interrupt: func(state bool) {
			h.lines = append(h.lines, state)
			if state {
				h.raised = append(h.raised, h.sched.Cycle())
			}
		},
		Edge: func() {
			h.edges++
		},
		EdgeMask: 0x10,
	})
	return h
}

// runTo advances the scheduler to the cycle. events due on that cycle fire
// before runTo returns
func (h *harness) runTo(cycle uint64) {
	ev := h.sched.Event(scheduler.CPU)
	h.sched.Schedule(ev, cycle)
	for ev.Pending() {
		h.sched.AdvanceOne()
	}
}

func (h *harness) setLatchA(v uint16) {
	h.cia.Write(cia.TALO, uint8(v))
	h.cia.Write(cia.TAHI, uint8(v>>8))
}

func TestContinuousTimer(t *testing.T) {
	h := newHarness()

	h.setLatchA(99)
	h.cia.Write(cia.ICR, 0x81)
	h.cia.Write(cia.CRA, 0x01)

	h.runTo(350)
	test.DemandEquality(t, len(h.raised), 1)
	test.ExpectEquality(t, h.raised[0], uint64(100))

	// interrupt line stays asserted until ICR is read
	test.ExpectSuccess(t, h.cia.IRQ())
	test.ExpectEquality(t, h.cia.Read(cia.ICR), uint8(0x81))
	test.ExpectFailure(t, h.cia.IRQ())
	test.ExpectEquality(t, h.cia.Read(cia.ICR), uint8(0x00))

	// the next underflows happen every 100 cycles
	h.runTo(401)
	test.DemandEquality(t, len(h.raised), 2)
	test.ExpectEquality(t, h.raised[1], uint64(400))
}

func TestOneShotTimer(t *testing.T) {
	h := newHarness()

	h.setLatchA(10)
	h.cia.Write(cia.ICR, 0x81)
	h.cia.Write(cia.CRA, 0x09)

	h.runTo(100)
	test.DemandEquality(t, len(h.raised), 1)
	test.ExpectEquality(t, h.raised[0], uint64(11))

	// timer has stopped and the counter has been reloaded
	test.ExpectEquality(t, h.cia.Read(cia.CRA)&0x01, uint8(0))
	test.ExpectEquality(t, h.cia.Read(cia.TALO), uint8(10))
	test.ExpectFailure(t, h.sched.Event(scheduler.CIA1TimerA).Pending())
}

func TestCounterRead(t *testing.T) {
	h := newHarness()

	h.setLatchA(0x1000)
	h.cia.Write(cia.CRA, 0x01)

	h.runTo(0x10)
	test.ExpectEquality(t, h.cia.Read(cia.TAHI), uint8(0x0f))
	test.ExpectEquality(t, h.cia.Read(cia.TALO), uint8(0xf0))

	// stopping the timer freezes the counter
	h.cia.Write(cia.CRA, 0x00)
	h.runTo(0x100)
	test.ExpectEquality(t, h.cia.Read(cia.TALO), uint8(0xf0))

	// force load copies the latch to the counter. the force load bit is not
	// stored
	h.cia.Write(cia.CRA, 0x10)
	test.ExpectEquality(t, h.cia.Read(cia.TAHI), uint8(0x10))
	test.ExpectEquality(t, h.cia.Read(cia.CRA), uint8(0x00))
}

func TestMaskedInterrupt(t *testing.T) {
	h := newHarness()

	h.setLatchA(5)
	h.cia.Write(cia.CRA, 0x09)
	h.runTo(10)

	// the flag is set but the interrupt is masked
	test.ExpectEquality(t, len(h.lines), 0)
	test.ExpectEquality(t, h.cia.Peek(cia.ICR), uint8(0x01))

	// unmasking a pending flag raises the line immediately
	h.cia.Write(cia.ICR, 0x81)
	test.DemandEquality(t, len(h.lines), 1)
	test.ExpectSuccess(t, h.lines[0])

	// clearing the mask does not lower the line. reading the ICR does
	h.cia.Write(cia.ICR, 0x01)
	test.ExpectSuccess(t, h.cia.IRQ())
	h.cia.Read(cia.ICR)
	test.DemandEquality(t, len(h.lines), 2)
	test.ExpectFailure(t, h.lines[1])
}

func TestTimerBCountsTimerA(t *testing.T) {
	h := newHarness()

	h.setLatchA(9)
	h.cia.Write(cia.TBLO, 2)
	h.cia.Write(cia.TBHI, 0)
	h.cia.Write(cia.ICR, 0x82)
	h.cia.Write(cia.CRB, 0x41)
	h.cia.Write(cia.CRA, 0x01)

	// timer A underflows every 10 cycles. timer B underflows on the third
	// timer A underflow
	h.runTo(35)
	test.DemandEquality(t, len(h.raised), 1)
	test.ExpectEquality(t, h.raised[0], uint64(30))
	test.ExpectEquality(t, h.cia.Read(cia.ICR), uint8(0x83))
}

func TestLightPenEdge(t *testing.T) {
	h := newHarness()

	// nothing is reported on reset or when writing the floating level
	test.ExpectEquality(t, h.edges, 0)
	h.cia.Write(cia.PRB, 0xff)
	test.ExpectEquality(t, h.edges, 0)

	// driving the bit low is an edge
	h.cia.Write(cia.DDRB, 0x10)
	h.cia.Write(cia.PRB, 0x00)
	test.ExpectEquality(t, h.edges, 1)

	// repeated writes of the same level are not edges
	h.cia.Write(cia.PRB, 0x00)
	h.cia.Write(cia.PRB, 0x0f)
	test.ExpectEquality(t, h.edges, 1)

	// driving the bit high is an edge
	h.cia.Write(cia.PRB, 0x10)
	test.ExpectEquality(t, h.edges, 2)

	// and low again
	h.cia.Write(cia.PRB, 0x00)
	test.ExpectEquality(t, h.edges, 3)

	// switching the bit to input lets it float high
	h.cia.Write(cia.DDRB, 0x00)
	test.ExpectEquality(t, h.edges, 4)
	test.ExpectEquality(t, h.cia.Read(cia.PRB), uint8(0xff))
}

func TestSamplePortB(t *testing.T) {
	h := newHarness()

	// the monitored bit floats high
	test.ExpectEquality(t, h.cia.SamplePortB(), uint8(0x10))
	test.ExpectEquality(t, h.edges, 0)

	h.cia.Write(cia.DDRB, 0x10)
	h.cia.Write(cia.PRB, 0x00)
	test.ExpectEquality(t, h.edges, 1)

	// sampling again without a change is not an edge
	test.ExpectEquality(t, h.cia.SamplePortB(), uint8(0x00))
	test.ExpectEquality(t, h.cia.SamplePortB(), uint8(0x00))
	test.ExpectEquality(t, h.edges, 1)

	// unmonitored bits are not returned
	h.cia.Write(cia.DDRB, 0xff)
	h.cia.Write(cia.PRB, 0xef)
	test.ExpectEquality(t, h.cia.SamplePortB(), uint8(0x00))
	test.ExpectEquality(t, h.edges, 1)
}

func TestRegisterMasking(t *testing.T) {
	h := newHarness()

	// register index is taken from the low four bits of the address
	h.cia.Write(0xdc02, 0xff)
	test.ExpectEquality(t, h.cia.Read(0x0002), uint8(0xff))
	h.cia.Write(0x12, 0x3f)
	test.ExpectEquality(t, h.cia.Read(0xdc02), uint8(0x3f))

	h.cia.Write(cia.TODSEC, 0x59)
	test.ExpectEquality(t, h.cia.Read(cia.TODSEC), uint8(0x59))
}

func TestSaveRestore(t *testing.T) {
	a := newHarness()
	a.setLatchA(0x4025)
	a.cia.Write(cia.ICR, 0x81)
	a.cia.Write(cia.CRA, 0x11)
	a.cia.Write(cia.DDRB, 0x10)
	a.runTo(0x1234)

	var b bytes.Buffer
	enc := snapshot.NewEncoder(&b)
	a.sched.Save(enc)
	a.cia.Save(enc)
	test.DemandSuccess(t, enc.Err())

	r := newHarness()
	dec := snapshot.NewDecoder(&b)
	r.sched.Restore(dec)
	r.cia.Restore(dec)
	test.DemandSuccess(t, dec.Err())

	// continue both for several underflows
	a.raised = a.raised[:0]
	a.runTo(0x20000)
	r.runTo(0x20000)

	test.DemandEquality(t, len(r.raised), len(a.raised))
	for i := range a.raised {
		test.ExpectEquality(t, r.raised[i], a.raised[i], i)
	}
	for reg := uint16(0); reg < cia.NumRegisters; reg++ {
		test.ExpectEquality(t, r.cia.Peek(reg), a.cia.Peek(reg), reg)
	}

	// the light-pen bit was driven low before the save. writing the same
	// level is not an edge but driving it high is
	r.cia.Write(cia.PRB, 0x00)
	test.ExpectEquality(t, r.edges, 0)
	r.cia.Write(cia.PRB, 0x10)
	test.ExpectEquality(t, r.edges, 1)
}
