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

// Package wavwriter implements an audio sink that writes to disk rather than
// to an audio device. Note that for WAV files the audio data is buffered in
// memory in its entirety and written to disk when the sink is closed.
//
// Data is written as fast as it is submitted. There is no pacing.
package wavwriter

import (
	"encoding/binary"
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/sidstreamer/curated"
	"github.com/jetsetilly/sidstreamer/logger"
	"github.com/jetsetilly/sidstreamer/pcm"
)

// WavWriter writes submitted data to a file. Data must be signed 16 bit
// little-endian.
type WavWriter struct {
	filename   string
	sampleRate int
	channels   int

	// buffered samples for a WAV file
	buffer []int

	// the output file and sample format of a raw writer. raw is nil for a
	// WAV file
	raw    *os.File
	format pcm.Format

	crit    sync.Mutex
	volume  float32
	playing bool

	scratch []byte
}

// New is the preferred method of initialisation for a WavWriter that creates
// a WAV file. The file is created when the WavWriter is closed.
func New(filename string, sampleRate int, channels int) (*WavWriter, error) {
	return &WavWriter{
		filename:   filename,
		sampleRate: sampleRate,
		channels:   channels,
		volume:     1.0,
	}, nil
}

// NewRaw is the preferred method of initialisation for a WavWriter that
// writes submitted data to the file without a header. The data is written in
// the specified format. The file is created immediately.
func NewRaw(filename string, sampleRate int, channels int, format pcm.Format) (*WavWriter, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, curated.Errorf("wavwriter: %v", err)
	}
	logger.Logf(logger.Allow, "wavwriter", "writing raw %dHz %d channel %s audio to %s", sampleRate, channels, format, filename)
	return &WavWriter{
		filename:   filename,
		sampleRate: sampleRate,
		channels:   channels,
		raw:        f,
		format:     format,
		volume:     1.0,
	}, nil
}

// Queued implements the streamer.Sink interface. Submitted data is consumed
// immediately.
func (aw *WavWriter) Queued() int {
	return 0
}

// Submit implements the streamer.Sink interface.
func (aw *WavWriter) Submit(data []byte) error {
	aw.crit.Lock()
	volume := aw.volume
	aw.crit.Unlock()

	aw.scratch = append(aw.scratch[:0], data...)
	pcm.Scale(aw.scratch, volume)

	if aw.raw != nil {
		pcm.Convert(aw.scratch, aw.format)
		if _, err := aw.raw.Write(aw.scratch); err != nil {
			return curated.Errorf("wavwriter: %v", err)
		}
		return nil
	}

	for i := 0; i+1 < len(aw.scratch); i += 2 {
		aw.buffer = append(aw.buffer, int(int16(binary.LittleEndian.Uint16(aw.scratch[i:]))))
	}
	return nil
}

// Play implements the streamer.Sink interface.
func (aw *WavWriter) Play() error {
	aw.crit.Lock()
	defer aw.crit.Unlock()
	aw.playing = true
	return nil
}

// Pause implements the streamer.Sink interface.
func (aw *WavWriter) Pause() error {
	aw.crit.Lock()
	defer aw.crit.Unlock()
	aw.playing = false
	return nil
}

// Playing implements the streamer.Sink interface.
func (aw *WavWriter) Playing() bool {
	aw.crit.Lock()
	defer aw.crit.Unlock()
	return aw.playing
}

// SetVolume implements the streamer.Sink interface.
func (aw *WavWriter) SetVolume(volume float32) {
	aw.crit.Lock()
	defer aw.crit.Unlock()
	aw.volume = max(min(volume, 1.0), 0.0)
}

// Close implements the streamer.Sink interface. For a WAV file this is when
// the file is written.
func (aw *WavWriter) Close() (rerr error) {
	if aw.raw != nil {
		if err := aw.raw.Close(); err != nil {
			return curated.Errorf("wavwriter: %v", err)
		}
		return nil
	}

	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, aw.sampleRate, 16, aw.channels, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: aw.channels,
			SampleRate:  aw.sampleRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: 16,
	}

	logger.Logf(logger.Allow, "wavwriter", "writing audio to %s", aw.filename)

	if err := enc.Write(buf); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}
