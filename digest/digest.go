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

package digest

import (
	"crypto/sha1"
	"fmt"
	"sync"
)

// the length of each chunk that is hashed. includes the space for the
// previous digest value at the start of the chunk
const chunkLength = 1024 * 16

// Audio implements the streamer.Sink interface.
type Audio struct {
	crit sync.Mutex

	digest [sha1.Size]byte
	chunk  []byte

	// the number of bytes submitted since the last call to Reset()
	length int

	playing bool
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	dig := &Audio{
		chunk: make([]byte, 0, chunkLength),
	}
	dig.Reset()
	return dig
}

// Reset the digest to its initial state.
func (dig *Audio) Reset() {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	clear(dig.digest[:])
	dig.chunk = append(dig.chunk[:0], dig.digest[:]...)
	dig.length = 0
}

// Hash returns the digest of all data submitted so far as a hex string.
func (dig *Audio) Hash() string {
	dig.crit.Lock()
	defer dig.crit.Unlock()

	// the partial chunk is hashed without disturbing the chunk so that more
	// data can be submitted
	if len(dig.chunk) > sha1.Size {
		return fmt.Sprintf("%x", sha1.Sum(dig.chunk))
	}
	return fmt.Sprintf("%x", dig.digest)
}

// Length returns the number of bytes submitted since the last Reset().
func (dig *Audio) Length() int {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	return dig.length
}

func (dig *Audio) String() string {
	return dig.Hash()
}

// Queued implements the streamer.Sink interface. Submitted data is consumed
// immediately.
func (dig *Audio) Queued() int {
	return 0
}

// Submit implements the streamer.Sink interface.
func (dig *Audio) Submit(data []byte) error {
	dig.crit.Lock()
	defer dig.crit.Unlock()

	dig.length += len(data)

	for len(data) > 0 {
		n := min(len(data), chunkLength-len(dig.chunk))
		dig.chunk = append(dig.chunk, data[:n]...)
		data = data[n:]

		if len(dig.chunk) >= chunkLength {
			dig.digest = sha1.Sum(dig.chunk)
			dig.chunk = append(dig.chunk[:0], dig.digest[:]...)
		}
	}

	return nil
}

// Play implements the streamer.Sink interface.
func (dig *Audio) Play() error {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	dig.playing = true
	return nil
}

// Pause implements the streamer.Sink interface.
func (dig *Audio) Pause() error {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	dig.playing = false
	return nil
}

// Playing implements the streamer.Sink interface.
func (dig *Audio) Playing() bool {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	return dig.playing
}

// SetVolume implements the streamer.Sink interface. The volume does not
// affect the digest.
func (dig *Audio) SetVolume(_ float32) {
}

// Close implements the streamer.Sink interface.
func (dig *Audio) Close() error {
	return nil
}
