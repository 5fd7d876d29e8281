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

// Package otoaudio implements an audio sink using the oto library.
//
// oto allows only one context per process. The context is created by the
// first call to NewSink() and every later sink must use the same sample rate
// and number of channels.
package otoaudio

import (
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/jetsetilly/sidstreamer/curated"
	"github.com/jetsetilly/sidstreamer/logger"
)

var (
	ctxOnce     sync.Once
	ctx         *oto.Context
	ctxErr      error
	ctxRate     int
	ctxChannels int
)

func sharedContext(sampleRate int, channels int) (*oto.Context, error) {
	ctxOnce.Do(func() {
		var ready chan struct{}
		ctx, ready, ctxErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if ctxErr != nil {
			return
		}
		<-ready
		ctxRate = sampleRate
		ctxChannels = channels
		logger.Logf(logger.Allow, "otoaudio", "context created: %dHz %d channels", sampleRate, channels)
	})

	if ctxErr != nil {
		return nil, curated.Errorf("otoaudio: %v", ctxErr)
	}
	if sampleRate != ctxRate || channels != ctxChannels {
		return nil, curated.Errorf("otoaudio: context is %dHz with %d channels", ctxRate, ctxChannels)
	}
	return ctx, nil
}

// Sink is an oto player reading from a queue of submitted blocks. Data must
// be signed 16 bit little-endian.
type Sink struct {
	player *oto.Player
	queue  *queue
}

// NewSink is the preferred method of initialisation for the Sink type. The
// player is created paused.
func NewSink(sampleRate int, channels int) (*Sink, error) {
	c, err := sharedContext(sampleRate, channels)
	if err != nil {
		return nil, err
	}
	s := &Sink{
		queue: &queue{},
	}
	s.player = c.NewPlayer(s.queue)
	return s, nil
}

// Queued implements the streamer.Sink interface.
func (s *Sink) Queued() int {
	return s.queue.queued()
}

// Submit implements the streamer.Sink interface.
func (s *Sink) Submit(data []byte) error {
	s.queue.submit(data)
	return nil
}

// Play implements the streamer.Sink interface.
func (s *Sink) Play() error {
	s.player.Play()
	return nil
}

// Pause implements the streamer.Sink interface.
func (s *Sink) Pause() error {
	s.player.Pause()
	return nil
}

// Playing implements the streamer.Sink interface.
func (s *Sink) Playing() bool {
	return s.player.IsPlaying()
}

// SetVolume implements the streamer.Sink interface.
func (s *Sink) SetVolume(volume float32) {
	s.player.SetVolume(float64(max(min(volume, 1.0), 0.0)))
}

// Close implements the streamer.Sink interface.
func (s *Sink) Close() error {
	s.player.Pause()
	s.queue.clear()
	if err := s.player.Close(); err != nil {
		return curated.Errorf("otoaudio: %v", err)
	}
	return nil
}
