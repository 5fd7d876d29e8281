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

// Package sdlaudio implements an audio sink using an SDL audio device.
//
// Data is queued with SDL's QueueAudio() function rather than with a
// callback. The depth of the queue is measured in submitted blocks, which
// is what the streamer uses to pace itself.
package sdlaudio

import (
	"sync"

	"github.com/jetsetilly/sidstreamer/curated"
	"github.com/jetsetilly/sidstreamer/logger"
	"github.com/veandco/go-sdl2/sdl"
)

// the number of sample frames in SDL's own buffer. the precise value is not
// critical because pacing is done by the queue depth
const deviceSamples = 1024

const maxVolume = int(sdl.MIX_MAXVOLUME)

var (
	initOnce sync.Once
	initErr  error
)

// Sink is an SDL audio device. Data must be signed 16 bit little-endian.
type Sink struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	// size of the most recently submitted block. used to convert the number
	// of queued bytes to a number of blocks
	blockSize uint32

	// volume in SDL's range of 0 to sdl.MIX_MAXVOLUME
	crit   sync.Mutex
	volume int

	// submitted data is mixed into this buffer when the volume is not at
	// maximum
	mix []byte
}

// NewSink is the preferred method of initialisation for the Sink type. The
// device is opened paused.
func NewSink(sampleRate int, channels int) (*Sink, error) {
	initOnce.Do(func() {
		initErr = sdl.InitSubSystem(sdl.INIT_AUDIO)
	})
	if initErr != nil {
		return nil, curated.Errorf("sdlaudio: %v", initErr)
	}

	s := &Sink{
		volume: maxVolume,
	}

	spec := &sdl.AudioSpec{
		Freq:     int32(sampleRate),
		Format:   sdl.AUDIO_S16LSB,
		Channels: uint8(channels),
		Samples:  deviceSamples,
	}

	var err error
	s.id, err = sdl.OpenAudioDevice("", false, spec, &s.spec, 0)
	if err != nil {
		return nil, curated.Errorf("sdlaudio: %v", err)
	}

	logger.Logf(logger.Allow, "sdlaudio", "frequency: %d samples/sec", s.spec.Freq)
	logger.Logf(logger.Allow, "sdlaudio", "buffer size: %d samples", s.spec.Samples)

	return s, nil
}

// Queued implements the streamer.Sink interface.
func (s *Sink) Queued() int {
	if s.blockSize == 0 {
		return 0
	}
	q := sdl.GetQueuedAudioSize(s.id)
	return int((q + s.blockSize - 1) / s.blockSize)
}

// Submit implements the streamer.Sink interface.
func (s *Sink) Submit(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	s.blockSize = uint32(len(data))

	s.crit.Lock()
	volume := s.volume
	s.crit.Unlock()

	if volume < maxVolume {
		if cap(s.mix) < len(data) {
			s.mix = make([]byte, len(data))
		}
		s.mix = s.mix[:len(data)]
		clear(s.mix)
		if volume > 0 {
			sdl.MixAudioFormat(&s.mix[0], &data[0], s.spec.Format, uint32(len(data)), volume)
		}
		data = s.mix
	}

	if err := sdl.QueueAudio(s.id, data); err != nil {
		return curated.Errorf("sdlaudio: %v", err)
	}
	return nil
}

// Play implements the streamer.Sink interface.
func (s *Sink) Play() error {
	sdl.PauseAudioDevice(s.id, false)
	return nil
}

// Pause implements the streamer.Sink interface.
func (s *Sink) Pause() error {
	sdl.PauseAudioDevice(s.id, true)
	return nil
}

// Playing implements the streamer.Sink interface.
func (s *Sink) Playing() bool {
	return sdl.GetAudioDeviceStatus(s.id) == sdl.AUDIO_PLAYING
}

// SetVolume implements the streamer.Sink interface.
func (s *Sink) SetVolume(volume float32) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.volume = int(max(min(volume, 1.0), 0.0) * float32(maxVolume))
}

// Close implements the streamer.Sink interface.
func (s *Sink) Close() error {
	sdl.ClearQueuedAudio(s.id)
	sdl.CloseAudioDevice(s.id)
	return nil
}
