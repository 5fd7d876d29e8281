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

// Package preferences collates the preference values of the application.
// Values can be overridden from the command line with the prefs command line
// stack. The override is consumed when the Preferences type is created.
package preferences

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/jetsetilly/sidstreamer/curated"
	"github.com/jetsetilly/sidstreamer/player"
	"github.com/jetsetilly/sidstreamer/prefs"
)

// Error pattern returned when a value is out of range.
const BadValue = "preferences: %s: %v"

// Preferences of the application.
type Preferences struct {
	// volume of the audio sink in the range 0 to 1
	Volume prefs.Float

	// the audio sink to use. "sdl" or "oto"
	Sink prefs.String

	// "correct" to use the model requested by the tune
	SIDModel prefs.String

	// "correct" to use the clock requested by the tune. ForceClock overrides
	// the tune's request
	Clock      prefs.String
	ForceClock prefs.Bool

	// 8 or 16
	Precision prefs.Int

	// 0 to player.MaxOptimisation
	Optimisation prefs.Int

	// one of the player.SampleFormat names
	Format prefs.String
}

type value interface {
	Set(prefs.Value) error
	String() string
}

// the key used on the command line for each value.
func (p *Preferences) values() map[string]value {
	return map[string]value{
		"player.volume":       &p.Volume,
		"player.sink":         &p.Sink,
		"player.sid":          &p.SIDModel,
		"player.clock":        &p.Clock,
		"player.forceclock":   &p.ForceClock,
		"player.precision":    &p.Precision,
		"player.optimisation": &p.Optimisation,
		"player.format":       &p.Format,
	}
}

// Sink names.
const (
	SinkSDL = "sdl"
	SinkOto = "oto"
)

var (
	sinks  = []string{SinkSDL, SinkOto}
	models = []string{"correct", "6581", "8580"}
	clocks = []string{"correct", "pal", "ntsc"}
)

func formats() []string {
	return []string{
		player.LittleSigned.String(),
		player.LittleUnsigned.String(),
		player.BigSigned.String(),
		player.BigUnsigned.String(),
	}
}

func oneOf(name string, options []string) func(prefs.Value) error {
	return func(v prefs.Value) error {
		if !slices.Contains(options, v.(string)) {
			return curated.Errorf(BadValue, name, fmt.Sprintf("%q is not one of %s", v, strings.Join(options, ", ")))
		}
		return nil
	}
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}

	p.Volume.SetHookPre(func(v prefs.Value) error {
		if f := v.(float64); f < 0.0 || f > 1.0 {
			return curated.Errorf(BadValue, "volume", f)
		}
		return nil
	})
	p.Sink.SetHookPre(oneOf("sink", sinks))
	p.SIDModel.SetHookPre(oneOf("sid", models))
	p.Clock.SetHookPre(oneOf("clock", clocks))
	p.Format.SetHookPre(oneOf("format", formats()))
	p.Precision.SetHookPre(func(v prefs.Value) error {
		if i := v.(int); i != 8 && i != 16 {
			return curated.Errorf(BadValue, "precision", i)
		}
		return nil
	})
	p.Optimisation.SetHookPre(func(v prefs.Value) error {
		if i := v.(int); i < 0 || i > player.MaxOptimisation {
			return curated.Errorf(BadValue, "optimisation", i)
		}
		return nil
	})

	if err := p.SetDefaults(); err != nil {
		return nil, err
	}

	for key, v := range p.values() {
		if ok, cl := prefs.GetCommandLinePref(key); ok {
			if err := v.Set(cl); err != nil {
				return nil, err
			}
		}
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() error {
	defaults := []struct {
		v   value
		def prefs.Value
	}{
		{&p.Volume, 0.5},
		{&p.Sink, SinkSDL},
		{&p.SIDModel, "correct"},
		{&p.Clock, "correct"},
		{&p.ForceClock, false},
		{&p.Precision, 16},
		{&p.Optimisation, 1},
		{&p.Format, player.LittleSigned.String()},
	}
	for _, d := range defaults {
		if err := d.v.Set(d.def); err != nil {
			return err
		}
	}
	return nil
}

func (p *Preferences) String() string {
	values := p.values()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var s strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&s, "%s: %s\n", k, values[k])
	}
	return s.String()
}

// Apply the preferences to a player configuration. Suitable for use with
// streamer.Configure().
func (p *Preferences) Apply(cfg *player.Config) {
	switch p.SIDModel.String() {
	case "6581":
		cfg.SIDModel = player.Model6581
	case "8580":
		cfg.SIDModel = player.Model8580
	default:
		cfg.SIDModel = player.ModelCorrect
	}

	switch p.Clock.String() {
	case "pal":
		cfg.ClockSpeed = player.ClockPAL
	case "ntsc":
		cfg.ClockSpeed = player.ClockNTSC
	default:
		cfg.ClockSpeed = player.ClockCorrect
	}
	cfg.ClockForced = p.ForceClock.Get().(bool)

	cfg.Precision = p.Precision.Get().(int)
	cfg.Optimisation = p.Optimisation.Get().(int)

	for i, f := range formats() {
		if f == p.Format.String() {
			cfg.SampleFormat = player.SampleFormat(i)
		}
	}
}
