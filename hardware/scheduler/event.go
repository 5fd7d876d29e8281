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

import "fmt"

// Kind identifies the purpose of an Event.
type Kind uint8

// List of valid Kind values.
const (
	CPU Kind = iota
	CIA1TimerA
	CIA1TimerB
	CIA2TimerA
	CIA2TimerB
	Mixer

	NumKinds
)

func (k Kind) String() string {
	switch k {
	case CPU:
		return "CPU"
	case CIA1TimerA:
		return "CIA1 timer A"
	case CIA1TimerB:
		return "CIA1 timer B"
	case CIA2TimerA:
		return "CIA2 timer A"
	case CIA2TimerB:
		return "CIA2 timer B"
	case Mixer:
		return "mixer"
	}
	return fmt.Sprintf("unknown event kind (%d)", k)
}

// Event is a single schedulable occurrence.
type Event struct {
	kind  Kind
	cycle uint64

	// monotonic insertion order for tie-breaking events on the same cycle
	seq uint64

	// position in the pending heap. -1 if the event is not pending
	index int
}

// Kind returns the kind of event.
func (ev *Event) Kind() Kind {
	return ev.kind
}

// Cycle returns the cycle the event is due to fire. Only meaningful if the
// event is pending.
func (ev *Event) Cycle() uint64 {
	return ev.cycle
}

// Pending returns true if the event is waiting to fire.
func (ev *Event) Pending() bool {
	return ev.index >= 0
}

func (ev *Event) String() string {
	if ev.Pending() {
		return fmt.Sprintf("%s @ %d", ev.kind, ev.cycle)
	}
	return fmt.Sprintf("%s (idle)", ev.kind)
}

// eventHeap implements container/heap.Interface as a min-heap ordered by
// cycle, with ties broken by insertion order.
type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].cycle != h[j].cycle {
		return h[i].cycle < h[j].cycle
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *eventHeap) Push(x any) {
	ev := x.(*Event)
	ev.index = len(*h)
	*h = append(*h, ev)
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	ev.index = -1
	*h = old[:n-1]
	return ev
}
