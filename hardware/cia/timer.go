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

package cia

import (
	"fmt"

	"github.com/jetsetilly/sidstreamer/hardware/scheduler"
	"github.com/jetsetilly/sidstreamer/snapshot"
)

// control register bits shared by CRA and CRB.
const (
	crStart     = 0x01
	crOneShot   = 0x08
	crForceLoad = 0x10

	// CRA bit 5 selects the CNT pin as the timer A source. the CNT pin is not
	// connected in the C64 so timer A never counts in this mode
	craCountCNT = 0x20

	// CRB bits 5 and 6 select the timer B source
	crbSourceMask = 0x60
	crbSourceTA   = 0x40
)

type timer struct {
	ev *scheduler.Event

	latch   uint16
	counter uint16

	// the cycle at which counter was last correct
	synced uint64

	ctrl uint8

	// the bit in the ICR that is set on underflow
	flag uint8
}

func (t *timer) String() string {
	return fmt.Sprintf("latch=%#04x counter=%#04x ctrl=%#02x", t.latch, t.counter, t.ctrl)
}

func (t *timer) running() bool {
	return t.ctrl&crStart == crStart
}

// clocked returns true if the timer counts system clock cycles. for timer B,
// false means the timer counts timer A underflows (or CNT pulses)
func (t *timer) clocked() bool {
	if t.flag == icrTA {
		return t.ctrl&craCountCNT == 0
	}
	return t.ctrl&crbSourceMask == 0
}

// countsUnderflows is only meaningful for timer B
func (t *timer) countsUnderflows() bool {
	return t.flag == icrTB && t.ctrl&crbSourceTA == crbSourceTA
}

// sync brings the counter up to date with the current cycle.
func (t *timer) sync(now uint64) {
	if t.running() && t.clocked() && now > t.synced {
		elapsed := now - t.synced
		if elapsed > uint64(t.counter) {
			// the underflow event is due this cycle but has not fired yet
			t.counter = 0
		} else {
			t.counter -= uint16(elapsed)
		}
	}
	t.synced = now
}

// schedule or cancel the underflow event as appropriate for the current
// control state. the counter must be in sync.
func (t *timer) schedule(sched *scheduler.Scheduler) {
	if t.running() && t.clocked() {
		sched.Schedule(t.ev, t.synced+uint64(t.counter)+1)
	} else {
		sched.Cancel(t.ev)
	}
}

func (t *timer) save(enc *snapshot.Encoder) {
	enc.Uint16(t.latch)
	enc.Uint16(t.counter)
	enc.Uint64(t.synced)
	enc.Uint8(t.ctrl)
}

func (t *timer) restore(dec *snapshot.Decoder) {
	t.latch = dec.Uint16()
	t.counter = dec.Uint16()
	t.synced = dec.Uint64()
	t.ctrl = dec.Uint8()
}
