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

// Register offsets. The chip is selected by 16 consecutive addresses and
// the register index is the low four bits of the address.
const (
	PRA = iota
	PRB
	DDRA
	DDRB
	TALO
	TAHI
	TBLO
	TBHI
	TOD10THS
	TODSEC
	TODMIN
	TODHR
	SDR
	ICR
	CRA
	CRB

	NumRegisters
)

// interrupt control register bits.
const (
	icrTA  = 0x01
	icrTB  = 0x02
	icrAll = 0x1f
	icrIR  = 0x80
)

// Wiring describes how the chip is connected to the rest of the machine.
type Wiring struct {
	// Interrupt is called when the interrupt output changes state. True
	// indicates the line is asserted. May be nil
	Interrupt func(state bool)

	// Edge is called whenever the value of the port B bits selected by
	// EdgeMask changes. Bits are sampled when PRB or DDRB are written. A
	// zero EdgeMask disables sampling
	Edge     func()
	EdgeMask uint8
}

// CIA represents a single 6526 chip.
type CIA struct {
	label  string
	sched  *scheduler.Scheduler
	wiring Wiring

	pra  uint8
	prb  uint8
	ddra uint8
	ddrb uint8

	tod [4]uint8
	sdr uint8

	icrMask  uint8
	icrFlags uint8
	irq      bool

	ta timer
	tb timer

	// the most recently sampled value of the port B edge bits
	edge uint8
}

// NewCIA is the preferred method of initialisation for the CIA type. The two
// event kinds are bound to the timer underflow handlers.
func NewCIA(label string, sched *scheduler.Scheduler, kindA, kindB scheduler.Kind, wiring Wiring) *CIA {
	c := &CIA{
		label:  label,
		sched:  sched,
		wiring: wiring,
	}
	c.ta = timer{flag: icrTA}
	c.tb = timer{flag: icrTB}
	c.ta.ev = sched.Bind(kindA, c.underflowA)
	c.tb.ev = sched.Bind(kindB, c.underflowB)
	c.Reset()
	return c
}

func (c *CIA) String() string {
	return fmt.Sprintf("%s: TA[%s] TB[%s] ICR=%#02x/%#02x", c.label, &c.ta, &c.tb, c.icrFlags, c.icrMask)
}

// Label returns the name given to the chip.
func (c *CIA) Label() string {
	return c.label
}

// Reset the chip to its power-on state. Timers stop and have their latches
// and counters set to $ffff. Pending timer events are cancelled.
func (c *CIA) Reset() {
	c.pra = 0
	c.prb = 0
	c.ddra = 0
	c.ddrb = 0
	c.tod = [4]uint8{}
	c.sdr = 0
	c.icrMask = 0
	c.icrFlags = 0

	if c.irq {
		c.setIRQ(false)
	}

	for _, t := range []*timer{&c.ta, &c.tb} {
		t.latch = 0xffff
		t.counter = 0xffff
		t.ctrl = 0
		t.synced = c.sched.Cycle()
		c.sched.Cancel(t.ev)
	}

	// with DDRB clear all port B bits float high. no edge is reported
	c.edge = c.portB() & c.wiring.EdgeMask
}

// IRQ returns true if the interrupt output is asserted.
func (c *CIA) IRQ() bool {
	return c.irq
}

func (c *CIA) setIRQ(state bool) {
	c.irq = state
	if c.wiring.Interrupt != nil {
		c.wiring.Interrupt(state)
	}
}

// setFlag sets the ICR flag and raises the interrupt line if the flag is
// unmasked.
func (c *CIA) setFlag(flag uint8) {
	c.icrFlags |= flag
	c.trigger()
}

func (c *CIA) trigger() {
	if c.icrFlags&c.icrMask != 0 && !c.irq {
		c.setIRQ(true)
	}
}

func (c *CIA) portA() uint8 {
	return c.pra | ^c.ddra
}

func (c *CIA) portB() uint8 {
	return c.prb | ^c.ddrb
}

// SamplePortB returns the level of the monitored port B bits. The Edge
// function of the Wiring is called if the level differs from the previous
// sample. Port B is sampled automatically on writes to PRB and DDRB.
func (c *CIA) SamplePortB() uint8 {
	if c.wiring.EdgeMask == 0 {
		return 0
	}
	v := c.portB() & c.wiring.EdgeMask
	if v != c.edge {
		c.edge = v
		if c.wiring.Edge != nil {
			c.wiring.Edge()
		}
	}
	return v
}

// Read the value of the register. Only the low four bits of reg are used.
// Reading ICR acknowledges all pending interrupts.
func (c *CIA) Read(reg uint16) uint8 {
	now := c.sched.Cycle()

	switch reg & 0x0f {
	case PRA:
		return c.portA()
	case PRB:
		return c.portB()
	case DDRA:
		return c.ddra
	case DDRB:
		return c.ddrb
	case TALO:
		c.ta.sync(now)
		return uint8(c.ta.counter)
	case TAHI:
		c.ta.sync(now)
		return uint8(c.ta.counter >> 8)
	case TBLO:
		c.tb.sync(now)
		return uint8(c.tb.counter)
	case TBHI:
		c.tb.sync(now)
		return uint8(c.tb.counter >> 8)
	case TOD10THS, TODSEC, TODMIN, TODHR:
		return c.tod[reg&0x0f-TOD10THS]
	case SDR:
		return c.sdr
	case ICR:
		v := c.icrFlags
		if c.irq {
			v |= icrIR
		}
		c.icrFlags = 0
		if c.irq {
			c.setIRQ(false)
		}
		return v
	case CRA:
		return c.ta.ctrl
	case CRB:
		return c.tb.ctrl
	}

	return 0xff
}

// Peek returns the value of the register without side effects.
func (c *CIA) Peek(reg uint16) uint8 {
	switch reg & 0x0f {
	case ICR:
		v := c.icrFlags
		if c.irq {
			v |= icrIR
		}
		return v
	case TALO, TAHI, TBLO, TBHI:
		ta := c.ta
		tb := c.tb
		ta.sync(c.sched.Cycle())
		tb.sync(c.sched.Cycle())
		switch reg & 0x0f {
		case TALO:
			return uint8(ta.counter)
		case TAHI:
			return uint8(ta.counter >> 8)
		case TBLO:
			return uint8(tb.counter)
		}
		return uint8(tb.counter >> 8)
	}
	return c.Read(reg)
}

// Write the value to the register. Only the low four bits of reg are used.
func (c *CIA) Write(reg uint16, v uint8) {
	now := c.sched.Cycle()

	switch reg & 0x0f {
	case PRA:
		c.pra = v
	case PRB:
		c.prb = v
		c.SamplePortB()
	case DDRA:
		c.ddra = v
	case DDRB:
		c.ddrb = v
		c.SamplePortB()
	case TALO:
		c.ta.latch = c.ta.latch&0xff00 | uint16(v)
	case TAHI:
		c.writeLatchHi(&c.ta, v, now)
	case TBLO:
		c.tb.latch = c.tb.latch&0xff00 | uint16(v)
	case TBHI:
		c.writeLatchHi(&c.tb, v, now)
	case TOD10THS, TODSEC, TODMIN, TODHR:
		c.tod[reg&0x0f-TOD10THS] = v
	case SDR:
		c.sdr = v
	case ICR:
		if v&icrIR == icrIR {
			c.icrMask |= v & icrAll
		} else {
			c.icrMask &^= v & icrAll
		}
		c.trigger()
	case CRA:
		c.writeControl(&c.ta, v, now)
	case CRB:
		c.writeControl(&c.tb, v, now)
	}
}

// writing the high byte of the latch of a stopped timer also loads the
// counter
func (c *CIA) writeLatchHi(t *timer, v uint8, now uint64) {
	t.latch = t.latch&0x00ff | uint16(v)<<8
	if !t.running() {
		t.sync(now)
		t.counter = t.latch
	}
}

func (c *CIA) writeControl(t *timer, v uint8, now uint64) {
	t.sync(now)
	if v&crForceLoad == crForceLoad {
		t.counter = t.latch
	}
	t.ctrl = v &^ crForceLoad
	t.schedule(c.sched)
}

func (c *CIA) underflowA() {
	c.underflow(&c.ta)
	if c.tb.running() && c.tb.countsUnderflows() {
		if c.tb.counter == 0 {
			c.underflow(&c.tb)
		} else {
			c.tb.counter--
		}
	}
}

func (c *CIA) underflowB() {
	c.underflow(&c.tb)
}

func (c *CIA) underflow(t *timer) {
	t.counter = t.latch
	t.synced = c.sched.Cycle()
	if t.ctrl&crOneShot == crOneShot {
		t.ctrl &^= crStart
	}
	c.setFlag(t.flag)
	t.schedule(c.sched)
}

// Save the state of the chip. Pending timer events are saved by the
// scheduler.
func (c *CIA) Save(enc *snapshot.Encoder) {
	enc.Tag("CIA")
	enc.Uint8(c.pra)
	enc.Uint8(c.prb)
	enc.Uint8(c.ddra)
	enc.Uint8(c.ddrb)
	for _, v := range c.tod {
		enc.Uint8(v)
	}
	enc.Uint8(c.sdr)
	enc.Uint8(c.icrMask)
	enc.Uint8(c.icrFlags)
	enc.Bool(c.irq)
	c.ta.save(enc)
	c.tb.save(enc)
	enc.Uint8(c.edge)
}

// Restore the state written by Save(). The interrupt output is not signalled
// during restoration. The caller is responsible for restoring the state of
// whatever the output is connected to.
func (c *CIA) Restore(dec *snapshot.Decoder) {
	dec.ExpectTag("CIA")
	c.pra = dec.Uint8()
	c.prb = dec.Uint8()
	c.ddra = dec.Uint8()
	c.ddrb = dec.Uint8()
	for i := range c.tod {
		c.tod[i] = dec.Uint8()
	}
	c.sdr = dec.Uint8()
	c.icrMask = dec.Uint8()
	c.icrFlags = dec.Uint8()
	c.irq = dec.Bool()
	c.ta.restore(dec)
	c.tb.restore(dec)
	c.edge = dec.Uint8()

	if c.icrMask&^icrAll != 0 || c.icrFlags&^icrAll != 0 {
		dec.Failf("%s: interrupt register out of range", c.label)
	}
}
