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

package streamer

// Sink is the audio device that samples are submitted to. Data is always
// interleaved signed 16 bit little-endian samples with the number of channels
// given to the SinkCreator.
//
// SetVolume() may be called from a different goroutine to the other
// methods.
type Sink interface {
	// the number of submitted buffers that have not been consumed
	Queued() int

	// add data to the end of the queue. the data must be copied because the
	// slice is reused once Submit() returns
	Submit(data []byte) error

	// start or stop consuming queued data
	Play() error
	Pause() error
	Playing() bool

	// volume in the range 0 to 1
	SetVolume(volume float32)

	Close() error
}

// SinkCreator is called by the Streamer whenever a new session is started.
type SinkCreator func(sampleRate int, channels int) (Sink, error)
