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

package scheduler_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/sidstreamer/hardware/scheduler"
	"github.com/jetsetilly/sidstreamer/snapshot"
	"github.com/jetsetilly/sidstreamer/test"
)

// recorder binds every event kind to a handler that notes the kind and the
// cycle it fired on
type recorder struct {
	s     *scheduler.Scheduler
	fired []scheduler.Kind
	at    []uint64
}

func newRecorder() *recorder {
	r := &recorder{s: scheduler.NewScheduler()}
	for k := scheduler.Kind(0); k < scheduler.NumKinds; k++ {
		r.s.Bind(k, func() {
			r.fired = append(r.fired, k)
			r.at = append(r.at, r.s.Cycle())
		})
	}
	return r
}

func (r *recorder) run() {
	for r.s.AdvanceOne() {
	}
}

func TestSameCycleOrder(t *testing.T) {
	r := newRecorder()
	s := r.s

	s.Schedule(s.Event(scheduler.Mixer), 100)
	s.Schedule(s.Event(scheduler.CIA1TimerA), 100)
	s.Schedule(s.Event(scheduler.CPU), 100)
	s.Schedule(s.Event(scheduler.CIA2TimerB), 50)
	r.run()

	test.DemandEquality(t, len(r.fired), 4)
	test.ExpectEquality(t, r.fired[0], scheduler.CIA2TimerB)
	test.ExpectEquality(t, r.fired[1], scheduler.Mixer)
	test.ExpectEquality(t, r.fired[2], scheduler.CIA1TimerA)
	test.ExpectEquality(t, r.fired[3], scheduler.CPU)
	test.ExpectEquality(t, r.at[0], uint64(50))
	test.ExpectEquality(t, r.at[3], uint64(100))
	test.ExpectEquality(t, s.Cycle(), uint64(100))
}

func TestRescheduleMovesEvent(t *testing.T) {
	r := newRecorder()
	s := r.s

	s.Schedule(s.Event(scheduler.Mixer), 10)
	s.Schedule(s.Event(scheduler.CPU), 10)

	// rescheduling on the same cycle puts the event behind the CPU event
	s.Schedule(s.Event(scheduler.Mixer), 10)
	r.run()

	test.DemandEquality(t, len(r.fired), 2)
	test.ExpectEquality(t, r.fired[0], scheduler.CPU)
	test.ExpectEquality(t, r.fired[1], scheduler.Mixer)
}

func TestPastCycleIsClamped(t *testing.T) {
	r := newRecorder()
	s := r.s

	s.Schedule(s.Event(scheduler.CPU), 20)
	test.ExpectSuccess(t, s.AdvanceOne())

	s.Schedule(s.Event(scheduler.Mixer), 5)
	test.ExpectEquality(t, s.Event(scheduler.Mixer).Cycle(), uint64(20))
	test.ExpectSuccess(t, s.AdvanceOne())
	test.ExpectEquality(t, s.Cycle(), uint64(20))
}

func TestCancel(t *testing.T) {
	r := newRecorder()
	s := r.s

	ev := s.Event(scheduler.CIA1TimerB)

	// cancelling an idle event does nothing
	s.Cancel(ev)
	test.ExpectFailure(t, ev.Pending())

	s.ScheduleIn(ev, 30)
	s.ScheduleIn(s.Event(scheduler.CPU), 40)
	test.ExpectSuccess(t, ev.Pending())
	s.Cancel(ev)
	test.ExpectFailure(t, ev.Pending())

	r.run()
	test.DemandEquality(t, len(r.fired), 1)
	test.ExpectEquality(t, r.fired[0], scheduler.CPU)

	test.ExpectFailure(t, s.AdvanceOne())
}

func TestHandlerSchedulesEvent(t *testing.T) {
	s := scheduler.NewScheduler()

	var count int
	var ev *scheduler.Event
	ev = s.Bind(scheduler.Mixer, func() {
		count++
		if count < 5 {
			s.ScheduleIn(ev, 22)
		}
	})
	s.ScheduleIn(ev, 22)

	for s.AdvanceOne() {
	}
	test.ExpectEquality(t, count, 5)
	test.ExpectEquality(t, s.Cycle(), uint64(110))
}

func TestSaveRestore(t *testing.T) {
	a := newRecorder()
	a.s.Schedule(a.s.Event(scheduler.CPU), 10)
	a.s.AdvanceOne()
	a.s.Schedule(a.s.Event(scheduler.Mixer), 40)
	a.s.Schedule(a.s.Event(scheduler.CIA1TimerA), 40)
	a.s.Schedule(a.s.Event(scheduler.CPU), 30)
	a.s.Schedule(a.s.Event(scheduler.CIA2TimerA), 40)

	var b bytes.Buffer
	enc := snapshot.NewEncoder(&b)
	a.s.Save(enc)
	test.DemandSuccess(t, enc.Err())

	r := newRecorder()
	dec := snapshot.NewDecoder(&b)
	r.s.Restore(dec)
	test.DemandSuccess(t, dec.Err())
	test.ExpectEquality(t, r.s.Cycle(), uint64(10))

	a.fired = a.fired[:0]
	a.at = a.at[:0]
	a.run()
	r.run()

	test.DemandEquality(t, len(r.fired), len(a.fired))
	for i := range a.fired {
		test.ExpectEquality(t, r.fired[i], a.fired[i], i)
		test.ExpectEquality(t, r.at[i], a.at[i], i)
	}
}

func TestRestoreUnboundKind(t *testing.T) {
	a := newRecorder()
	a.s.Schedule(a.s.Event(scheduler.CIA2TimerB), 10)

	var b bytes.Buffer
	enc := snapshot.NewEncoder(&b)
	a.s.Save(enc)

	// only the CPU is bound in the restoring scheduler
	s := scheduler.NewScheduler()
	s.Bind(scheduler.CPU, func() {})
	dec := snapshot.NewDecoder(&b)
	s.Restore(dec)
	test.ExpectFailure(t, dec.Err())
}

func TestRestoreTruncated(t *testing.T) {
	a := newRecorder()
	a.s.Schedule(a.s.Event(scheduler.CPU), 10)

	var b bytes.Buffer
	enc := snapshot.NewEncoder(&b)
	a.s.Save(enc)

	data := b.Bytes()[:b.Len()-1]
	dec := snapshot.NewDecoder(bytes.NewReader(data))
	newRecorder().s.Restore(dec)
	test.ExpectFailure(t, dec.Err())
}
