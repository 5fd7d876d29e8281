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
	"fmt"

	"github.com/jetsetilly/sidstreamer/curated"
	"github.com/jetsetilly/sidstreamer/hardware/clocks"
	"github.com/jetsetilly/sidstreamer/hardware/sid"
	"github.com/jetsetilly/sidstreamer/tune"
)

// Playback is the channel layout of the samples produced by Play().
type Playback int

// List of valid Playback values.
const (
	Mono Playback = iota
	Stereo
)

func (p Playback) String() string {
	if p == Stereo {
		return "stereo"
	}
	return "mono"
}

// Channels returns the number of samples in each frame.
func (p Playback) Channels() int {
	if p == Stereo {
		return 2
	}
	return 1
}

// ClockSpeed selects the machine clock.
type ClockSpeed int

// List of valid ClockSpeed values. ClockCorrect uses the clock given by the
// tune.
const (
	ClockCorrect ClockSpeed = iota
	ClockPAL
	ClockNTSC
)

func (c ClockSpeed) String() string {
	switch c {
	case ClockCorrect:
		return "correct"
	case ClockPAL:
		return "PAL"
	case ClockNTSC:
		return "NTSC"
	}
	return "unknown clock"
}

// SIDModel selects the SID chip model.
type SIDModel int

// List of valid SIDModel values. ModelCorrect uses the model given by the
// tune.
const (
	ModelCorrect SIDModel = iota
	Model6581
	Model8580
)

func (m SIDModel) String() string {
	switch m {
	case ModelCorrect:
		return "correct"
	case Model6581:
		return "6581"
	case Model8580:
		return "8580"
	}
	return "unknown model"
}

// SampleFormat is the byte layout of samples when they are written unchanged,
// as in a raw recording. The Player always produces signed 16 bit values and
// audio devices are always given signed 16 bit little-endian data.
type SampleFormat int

// List of valid SampleFormat values.
const (
	LittleSigned SampleFormat = iota
	LittleUnsigned
	BigSigned
	BigUnsigned
)

func (f SampleFormat) String() string {
	switch f {
	case LittleSigned:
		return "s16le"
	case LittleUnsigned:
		return "u16le"
	case BigSigned:
		return "s16be"
	case BigUnsigned:
		return "u16be"
	}
	return "unknown format"
}

// Limits of the configuration values.
const (
	MinFrequency    = 4000
	MaxFrequency    = 96000
	MaxVolume       = 255
	MaxOptimisation = 2
)

// Config is the configuration of the Player. It can only be changed while
// the Player is stopped.
type Config struct {
	// sample rate in Hz
	Frequency int

	Playback Playback

	// the requested SID model. SIDDefault is used if SIDModel is
	// ModelCorrect and the tune does not specify a model
	SIDModel   SIDModel
	SIDDefault SIDModel

	// the requested clock. ClockDefault is used if ClockSpeed is
	// ClockCorrect and the tune does not specify a clock. if ClockForced is
	// true then ClockSpeed is used even if the tune specifies a clock
	ClockSpeed   ClockSpeed
	ClockDefault ClockSpeed
	ClockForced  bool

	// software volume. 255 is unattenuated
	Volume int

	SampleFormat SampleFormat

	// 8 or 16. with 8 bit precision the low byte of every sample is zero
	Precision int

	// zero gives the highest quality. one uses a cheaper SID sampling
	// method. two also stops executing the CPU while it is in an idle loop
	Optimisation int
}

// DefaultConfig returns the configuration used by a new Player.
func DefaultConfig() Config {
	return Config{
		Frequency:    44100,
		Playback:     Mono,
		SIDModel:     ModelCorrect,
		SIDDefault:   Model6581,
		ClockSpeed:   ClockCorrect,
		ClockDefault: ClockPAL,
		Volume:       MaxVolume,
		SampleFormat: LittleSigned,
		Precision:    16,
		Optimisation: 1,
	}
}

func (cfg Config) String() string {
	return fmt.Sprintf("%dHz %s sid=%s clock=%s vol=%d %s/%dbit opt=%d",
		cfg.Frequency, cfg.Playback, cfg.SIDModel, cfg.ClockSpeed,
		cfg.Volume, cfg.SampleFormat, cfg.Precision, cfg.Optimisation)
}

// Validate returns an error if any value is out of range.
func (cfg Config) Validate() error {
	switch {
	case cfg.Frequency < MinFrequency || cfg.Frequency > MaxFrequency:
		return curated.Errorf(InvalidConfig, fmt.Sprintf("frequency (%d)", cfg.Frequency))
	case cfg.Playback != Mono && cfg.Playback != Stereo:
		return curated.Errorf(InvalidConfig, "playback")
	case cfg.SIDModel < ModelCorrect || cfg.SIDModel > Model8580:
		return curated.Errorf(InvalidConfig, "sid model")
	case cfg.SIDDefault < ModelCorrect || cfg.SIDDefault > Model8580:
		return curated.Errorf(InvalidConfig, "sid default")
	case cfg.ClockSpeed < ClockCorrect || cfg.ClockSpeed > ClockNTSC:
		return curated.Errorf(InvalidConfig, "clock speed")
	case cfg.ClockDefault < ClockCorrect || cfg.ClockDefault > ClockNTSC:
		return curated.Errorf(InvalidConfig, "clock default")
	case cfg.Volume < 0 || cfg.Volume > MaxVolume:
		return curated.Errorf(InvalidConfig, fmt.Sprintf("volume (%d)", cfg.Volume))
	case cfg.SampleFormat < LittleSigned || cfg.SampleFormat > BigUnsigned:
		return curated.Errorf(InvalidConfig, "sample format")
	case cfg.Precision != 8 && cfg.Precision != 16:
		return curated.Errorf(InvalidConfig, fmt.Sprintf("precision (%d)", cfg.Precision))
	case cfg.Optimisation < 0 || cfg.Optimisation > MaxOptimisation:
		return curated.Errorf(InvalidConfig, fmt.Sprintf("optimisation (%d)", cfg.Optimisation))
	}
	return nil
}

// clock decides the machine clock for a tune.
func (cfg Config) clock(hint tune.Clock) clocks.Clock {
	if cfg.ClockForced && cfg.ClockSpeed != ClockCorrect {
		return cfg.ClockSpeed.clock()
	}
	switch hint {
	case tune.ClockPAL:
		return clocks.PAL
	case tune.ClockNTSC:
		return clocks.NTSC
	}
	if cfg.ClockSpeed != ClockCorrect {
		return cfg.ClockSpeed.clock()
	}
	return cfg.ClockDefault.clock()
}

func (c ClockSpeed) clock() clocks.Clock {
	if c == ClockNTSC {
		return clocks.NTSC
	}
	return clocks.PAL
}

// model decides the SID model for a tune.
func (cfg Config) model(hint tune.SIDModel) sid.Model {
	switch cfg.SIDModel {
	case Model6581:
		return sid.MOS6581
	case Model8580:
		return sid.MOS8580
	}
	switch hint {
	case tune.Model6581:
		return sid.MOS6581
	case tune.Model8580:
		return sid.MOS8580
	}
	if cfg.SIDDefault == Model8580 {
		return sid.MOS8580
	}
	return sid.MOS6581
}

// sampling decides the SID sampling method.
func (cfg Config) sampling() sid.Sampling {
	if cfg.Optimisation == 0 {
		return sid.Interpolate
	}
	return sid.Fast
}
