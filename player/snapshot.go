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

package player

import (
	"io"

	"github.com/jetsetilly/sidstreamer/curated"
	"github.com/jetsetilly/sidstreamer/snapshot"
	"github.com/jetsetilly/sidstreamer/tune"
)

// Error patterns returned by Save() and Restore().
const (
	SaveError    = "player: save: %v"
	RestoreError = "player: restore: %v"
	BadVersion   = "player: unsupported snapshot version (%d)"
	SaveInPlay   = "player: cannot save while Play() is running"
)

const (
	snapshotTag     = "SIDSNAP"
	snapshotVersion = 1
)

func saveConfig(enc *snapshot.Encoder, cfg Config) {
	enc.Tag("CFG")
	enc.Uint32(uint32(cfg.Frequency))
	enc.Uint8(uint8(cfg.Playback))
	enc.Uint8(uint8(cfg.SIDModel))
	enc.Uint8(uint8(cfg.SIDDefault))
	enc.Uint8(uint8(cfg.ClockSpeed))
	enc.Uint8(uint8(cfg.ClockDefault))
	enc.Bool(cfg.ClockForced)
	enc.Uint8(uint8(cfg.Volume))
	enc.Uint8(uint8(cfg.SampleFormat))
	enc.Uint8(uint8(cfg.Precision))
	enc.Uint8(uint8(cfg.Optimisation))
}

func restoreConfig(dec *snapshot.Decoder) Config {
	dec.ExpectTag("CFG")
	return Config{
		Frequency:    int(dec.Uint32()),
		Playback:     Playback(dec.Uint8()),
		SIDModel:     SIDModel(dec.Uint8()),
		SIDDefault:   SIDModel(dec.Uint8()),
		ClockSpeed:   ClockSpeed(dec.Uint8()),
		ClockDefault: ClockSpeed(dec.Uint8()),
		ClockForced:  dec.Bool(),
		Volume:       int(dec.Uint8()),
		SampleFormat: SampleFormat(dec.Uint8()),
		Precision:    int(dec.Uint8()),
		Optimisation: int(dec.Uint8()),
	}
}

// Save the complete state of the machine. The Player can be in any state
// but a tune must be loaded and Play() must not be running. The state is
// not changed by saving.
func (p *Player) Save(w io.Writer) error {
	if p.InPlay() {
		return curated.Errorf(SaveInPlay)
	}
	if !p.loaded {
		return curated.Errorf(NotLoaded)
	}

	enc := snapshot.NewEncoder(w)
	enc.Tag(snapshotTag)
	enc.Uint16(snapshotVersion)

	saveConfig(enc, p.cfg)
	p.tune.Save(enc)
	p.sched.Save(enc)

	p.cpu.Save(enc)
	enc.Bool(p.sleeping)
	enc.Uint64(p.sleepFrom)

	p.mem.Save(enc)
	p.vic.Save(enc)
	p.cia1.Save(enc)
	p.cia2.Save(enc)

	enc.Uint8(uint8(len(p.sids)))
	for _, s := range p.sids {
		s.Save(enc)
	}

	enc.Tag("MIX")
	enc.Uint64(p.mixPeriod)
	enc.Uint64(p.mixFraction)
	enc.Uint64(p.lastClock)
	enc.Uint16(uint16(p.song))

	if err := enc.Err(); err != nil {
		return curated.Errorf(SaveError, err)
	}
	return nil
}

// Restore creates a Player from the output of Save(). The new Player is
// stopped but loaded, so that Start() continues from the moment the
// snapshot was taken. Output from the restored Player is identical to the
// output the original would have produced.
func Restore(r io.Reader) (*Player, error) {
	dec := snapshot.NewDecoder(r)
	dec.ExpectTag(snapshotTag)
	version := dec.Uint16()
	if dec.Err() != nil {
		return nil, curated.Errorf(RestoreError, dec.Err())
	}
	if version != snapshotVersion {
		return nil, curated.Errorf(BadVersion, version)
	}

	cfg := restoreConfig(dec)
	if dec.Err() != nil {
		return nil, curated.Errorf(RestoreError, dec.Err())
	}
	if err := cfg.Validate(); err != nil {
		return nil, curated.Errorf(RestoreError, err)
	}

	tn := tune.Restore(dec)
	if tn == nil {
		return nil, curated.Errorf(RestoreError, dec.Err())
	}

	p := NewPlayer()
	p.cfg = cfg
	p.tune = tn
	p.build(tn)

	// the scheduler is restored after build() because the handlers must be
	// bound first
	p.sched.Restore(dec)

	p.cpu.Restore(dec)
	p.sleeping = dec.Bool()
	p.sleepFrom = dec.Uint64()

	p.mem.Restore(dec)
	p.vic.Restore(dec)
	p.cia1.Restore(dec)
	p.cia2.Restore(dec)

	n := int(dec.Uint8())
	if dec.Err() == nil && n != len(p.sids) {
		dec.Failf("%d SIDs in snapshot but the tune requires %d", n, len(p.sids))
	}
	for _, s := range p.sids {
		s.Restore(dec)
	}

	dec.ExpectTag("MIX")
	period := dec.Uint64()
	p.mixFraction = dec.Uint64()
	p.lastClock = dec.Uint64()
	p.song = int(dec.Uint16())

	if dec.Err() == nil {
		switch {
		case period != p.mixPeriod:
			dec.Failf("mixer period does not match the configuration")
		case p.mixFraction > 0xffff:
			dec.Failf("mixer fraction out of range")
		case p.lastClock > p.sched.Cycle():
			dec.Failf("SIDs clocked beyond the current cycle")
		case p.song < 1 || p.song > tn.Songs():
			dec.Failf("song %d out of range", p.song)
		case !p.mixEvent.Pending():
			dec.Failf("mixer is not scheduled")
		case p.sleeping && p.cpuEvent.Pending():
			dec.Failf("sleeping CPU is scheduled")
		case !p.sleeping && !p.cpuEvent.Pending() && !p.cpu.Jammed():
			dec.Failf("CPU is not scheduled")
		}
	}

	if err := dec.Err(); err != nil {
		return nil, curated.Errorf(RestoreError, err)
	}

	p.loaded = true
	return p, nil
}
