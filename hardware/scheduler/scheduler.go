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

package scheduler

import (
	"container/heap"
	"slices"

	"github.com/jetsetilly/sidstreamer/curated"
	"github.com/jetsetilly/sidstreamer/snapshot"
)

// Scheduler keeps the current cycle and the set of pending events.
type Scheduler struct {
	cycle uint64
	seq   uint64

	pending  eventHeap
	events   [NumKinds]Event
	handlers [NumKinds]func()
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type.
func NewScheduler() *Scheduler {
	s := &Scheduler{
		pending: make(eventHeap, 0, NumKinds),
	}
	for k := range s.events {
		s.events[k] = Event{kind: Kind(k), index: -1}
	}
	return s
}

// Bind the handler function to the event kind. The handler is called by
// AdvanceOne() when the event fires. Returns the Event for the kind.
func (s *Scheduler) Bind(kind Kind, handler func()) *Event {
	s.handlers[kind] = handler
	return &s.events[kind]
}

// Event returns the Event for the kind.
func (s *Scheduler) Event(kind Kind) *Event {
	return &s.events[kind]
}

// Cycle returns the current cycle.
func (s *Scheduler) Cycle() uint64 {
	return s.cycle
}

// Schedule the event to fire at the specified cycle. A cycle earlier than the
// current cycle is treated as the current cycle. If the event is already
// pending it is moved and its position among events due on the same cycle is
// as if it had been newly scheduled.
func (s *Scheduler) Schedule(ev *Event, cycle uint64) {
	if cycle < s.cycle {
		cycle = s.cycle
	}

	ev.cycle = cycle
	ev.seq = s.seq
	s.seq++

	if ev.Pending() {
		heap.Fix(&s.pending, ev.index)
	} else {
		heap.Push(&s.pending, ev)
	}
}

// ScheduleIn schedules the event to fire delay cycles from now.
func (s *Scheduler) ScheduleIn(ev *Event, delay uint64) {
	s.Schedule(ev, s.cycle+delay)
}

// Cancel a pending event. Does nothing if the event is not pending.
func (s *Scheduler) Cancel(ev *Event) {
	if !ev.Pending() {
		return
	}
	heap.Remove(&s.pending, ev.index)
}

// AdvanceOne fires the earliest pending event, advancing the current cycle to
// the cycle of that event. Returns false if there are no pending events.
func (s *Scheduler) AdvanceOne() bool {
	if len(s.pending) == 0 {
		return false
	}

	ev := heap.Pop(&s.pending).(*Event)
	s.cycle = ev.cycle

	if h := s.handlers[ev.kind]; h != nil {
		h()
	}

	return true
}

// NextCycle returns the cycle of the earliest pending event. The second
// return value is false if there are no pending events.
func (s *Scheduler) NextCycle() (uint64, bool) {
	if len(s.pending) == 0 {
		return 0, false
	}
	return s.pending[0].cycle, true
}

// Reset the current cycle to zero and forget all pending events. Handlers are
// not forgotten.
func (s *Scheduler) Reset() {
	for len(s.pending) > 0 {
		heap.Pop(&s.pending)
	}
	s.cycle = 0
	s.seq = 0
}

// inOrder returns the pending events in the order they will fire.
func (s *Scheduler) inOrder() []*Event {
	o := slices.Clone(s.pending)
	slices.SortFunc(o, func(a, b *Event) int {
		if a.cycle != b.cycle {
			if a.cycle < b.cycle {
				return -1
			}
			return 1
		}
		if a.seq < b.seq {
			return -1
		}
		return 1
	})
	return o
}

// Save the current cycle and the pending events. The pending events are
// written in the order they will fire so that the order of events due on
// the same cycle survives a Restore().
func (s *Scheduler) Save(enc *snapshot.Encoder) {
	enc.Tag("SCHD")
	enc.Uint64(s.cycle)

	o := s.inOrder()
	enc.Uint8(uint8(len(o)))
	for _, ev := range o {
		enc.Uint8(uint8(ev.kind))
		enc.Uint64(ev.cycle)
	}
}

// Restore the state written by Save(). Handlers must have been bound before
// calling Restore(). Fails if an event kind is unknown, has no handler, is
// listed twice or is due before the current cycle.
func (s *Scheduler) Restore(dec *snapshot.Decoder) {
	dec.ExpectTag("SCHD")
	s.Reset()
	s.cycle = dec.Uint64()

	n := int(dec.Uint8())
	if n > int(NumKinds) {
		dec.Fail(curated.Errorf("scheduler: too many pending events (%d)", n))
		return
	}

	for range n {
		k := Kind(dec.Uint8())
		c := dec.Uint64()
		if dec.Err() != nil {
			return
		}
		if k >= NumKinds {
			dec.Fail(curated.Errorf("scheduler: %v", k))
			return
		}
		if s.handlers[k] == nil {
			dec.Fail(curated.Errorf("scheduler: no handler for %v", k))
			return
		}
		if s.events[k].Pending() {
			dec.Fail(curated.Errorf("scheduler: %v is pending more than once", k))
			return
		}
		if c < s.cycle {
			dec.Fail(curated.Errorf("scheduler: %v is due in the past", k))
			return
		}
		s.Schedule(&s.events[k], c)
	}
}
