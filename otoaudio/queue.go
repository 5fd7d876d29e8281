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

package otoaudio

import "sync"

// queue of submitted blocks. implements io.Reader for the oto player.
type queue struct {
	crit sync.Mutex

	blocks [][]byte

	// the unread part of the block being read
	current []byte
}

func (q *queue) submit(data []byte) {
	if len(data) == 0 {
		return
	}
	q.crit.Lock()
	defer q.crit.Unlock()
	q.blocks = append(q.blocks, append([]byte{}, data...))
}

// queued returns the number of blocks that have not been completely read.
func (q *queue) queued() int {
	q.crit.Lock()
	defer q.crit.Unlock()
	n := len(q.blocks)
	if len(q.current) > 0 {
		n++
	}
	return n
}

func (q *queue) clear() {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.blocks = q.blocks[:0]
	q.current = nil
}

// Read implements the io.Reader interface. The buffer is always filled. If
// there is not enough queued data the remainder of the buffer is silence.
func (q *queue) Read(p []byte) (int, error) {
	q.crit.Lock()
	defer q.crit.Unlock()

	n := 0
	for n < len(p) {
		if len(q.current) == 0 {
			if len(q.blocks) == 0 {
				break // for loop
			}
			q.current = q.blocks[0]
			q.blocks = q.blocks[1:]
		}
		c := copy(p[n:], q.current)
		q.current = q.current[c:]
		n += c
	}

	clear(p[n:])
	return len(p), nil
}
