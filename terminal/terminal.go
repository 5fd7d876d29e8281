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

package terminal

import (
	"errors"
	"io"
	"time"

	"github.com/jetsetilly/sidstreamer/curated"
	"github.com/jetsetilly/sidstreamer/logger"
	"github.com/pkg/term"
)

const device = "/dev/tty"

// reads from the terminal time out so that Close() is never blocked by a
// pending read
const readTimeout = 100 * time.Millisecond

// Terminal delivers key presses from the controlling terminal.
type Terminal struct {
	tty  *term.Term
	keys chan byte
	done chan struct{}
	exit chan struct{}
}

// Open the controlling terminal in cbreak mode.
func Open() (*Terminal, error) {
	tty, err := term.Open(device, term.CBreakMode)
	if err != nil {
		return nil, curated.Errorf("terminal: %v", err)
	}
	if err := tty.SetReadTimeout(readTimeout); err != nil {
		_ = tty.Restore()
		_ = tty.Close()
		return nil, curated.Errorf("terminal: %v", err)
	}

	tm := &Terminal{
		tty:  tty,
		keys: make(chan byte, 16),
		done: make(chan struct{}),
		exit: make(chan struct{}),
	}
	go tm.read()

	return tm, nil
}

func (tm *Terminal) read() {
	defer close(tm.exit)

	b := make([]byte, 1)
	for {
		select {
		case <-tm.done:
			return
		default:
		}

		n, err := tm.tty.Read(b)
		if err != nil {
			// a read that times out is reported as the end of the file
			if errors.Is(err, io.EOF) {
				continue // for loop
			}
			logger.Log(logger.Allow, "terminal", err)
			return
		}

		if n == 1 {
			select {
			case tm.keys <- b[0]:
			case <-tm.done:
				return
			}
		}
	}
}

// Keys returns the channel on which key presses are delivered.
func (tm *Terminal) Keys() <-chan byte {
	return tm.keys
}

// Close restores the terminal to the state it was in before Open().
func (tm *Terminal) Close() error {
	close(tm.done)
	<-tm.exit

	if err := tm.tty.Restore(); err != nil {
		_ = tm.tty.Close()
		return curated.Errorf("terminal: %v", err)
	}
	if err := tm.tty.Close(); err != nil {
		return curated.Errorf("terminal: %v", err)
	}
	return nil
}
