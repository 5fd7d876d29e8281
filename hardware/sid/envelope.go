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

package sid

type envelopeState uint8

const (
	attack envelopeState = iota
	decaySustain
	release
)

// the number of cycles between steps of the envelope counter for each of the
// sixteen rate values.
var ratePeriod = [16]uint16{
	9, 32, 63, 95, 149, 220, 267, 313,
	392, 977, 1954, 3126, 3907, 11720, 19532, 31251,
}

// the envelope counter values at which the decay and release slopes change.
// together these give an approximation of an exponential curve.
func exponentialPeriod(counter uint8) (uint8, bool) {
	switch counter {
	case 0xff:
		return 1, true
	case 0x5d:
		return 2, true
	case 0x36:
		return 4, true
	case 0x1a:
		return 8, true
	case 0x0e:
		return 16, true
	case 0x06:
		return 30, true
	case 0x00:
		return 1, true
	}
	return 0, false
}

// envelope is the ADSR generator of a single voice.
type envelope struct {
	attackDecay    uint8
	sustainRelease uint8
	gate           bool

	state       envelopeState
	counter     uint8
	rateCounter uint16
	period      uint16
	expCounter  uint8
	expPeriod   uint8
	holdZero    bool
}

func (e *envelope) reset() {
	*e = envelope{
		state:     release,
		period:    ratePeriod[0],
		expPeriod: 1,
		holdZero:  true,
	}
}

func (e *envelope) writeControl(v uint8) {
	gate := v&ctrlGate != 0
	if gate == e.gate {
		return
	}
	e.gate = gate

	if gate {
		e.state = attack
		e.period = ratePeriod[e.attackDecay>>4]
		e.holdZero = false
	} else {
		e.state = release
		e.period = ratePeriod[e.sustainRelease&0x0f]
	}
}

func (e *envelope) writeAttackDecay(v uint8) {
	e.attackDecay = v
	switch e.state {
	case attack:
		e.period = ratePeriod[v>>4]
	case decaySustain:
		e.period = ratePeriod[v&0x0f]
	}
}

func (e *envelope) writeSustainRelease(v uint8) {
	e.sustainRelease = v
	if e.state == release {
		e.period = ratePeriod[v&0x0f]
	}
}

func (e *envelope) sustainLevel() uint8 {
	return (e.sustainRelease >> 4) * 0x11
}

func (e *envelope) clock() {
	// the rate counter is 15 bits. a period lower than the current count
	// means a wrap of the full counter before the next step (the ADSR bug)
	e.rateCounter++
	if e.rateCounter&0x8000 != 0 {
		e.rateCounter = (e.rateCounter + 1) & 0x7fff
	}
	if e.rateCounter != e.period {
		return
	}
	e.rateCounter = 0

	if e.state != attack {
		e.expCounter++
		if e.expCounter != e.expPeriod {
			return
		}
	}
	e.expCounter = 0

	if e.holdZero {
		return
	}

	switch e.state {
	case attack:
		e.counter++
		if e.counter == 0xff {
			e.state = decaySustain
			e.period = ratePeriod[e.attackDecay&0x0f]
		}
	case decaySustain:
		if e.counter != e.sustainLevel() {
			e.counter--
		}
	case release:
		e.counter--
	}

	if p, ok := exponentialPeriod(e.counter); ok {
		e.expPeriod = p
		if e.counter == 0x00 {
			e.holdZero = true
		}
	}
}
