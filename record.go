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

package main

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/jetsetilly/sidstreamer/pcm"
	"github.com/jetsetilly/sidstreamer/streamer"
	"github.com/jetsetilly/sidstreamer/wavwriter"
)

// recordingSink creates a WAV file sink unless the filename has the .raw
// extension. The format is only used for raw files.
func recordingSink(filename string, sampleRate int, channels int, format pcm.Format) (streamer.Sink, error) {
	if strings.EqualFold(filepath.Ext(filename), ".raw") {
		w, err := wavwriter.NewRaw(filename, sampleRate, channels, format)
		if err != nil {
			return nil, err
		}
		return w, nil
	}

	w, err := wavwriter.New(filename, sampleRate, channels)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// limitedSink passes no more than limit bytes to the underlying sink. the
// full channel is closed when the limit is reached.
type limitedSink struct {
	streamer.Sink

	limit   int
	written int
	full    chan struct{}
	once    sync.Once

	// the error returned by the Close() function of the underlying sink. the
	// streamer only logs the error but the recording has failed
	closeErr error
}

func newLimitedSink(s streamer.Sink, limit int) *limitedSink {
	return &limitedSink{
		Sink:  s,
		limit: limit,
		full:  make(chan struct{}),
	}
}

// Submit implements the streamer.Sink interface.
func (l *limitedSink) Submit(data []byte) error {
	n := min(len(data), l.limit-l.written)
	if n <= 0 {
		return nil
	}

	if err := l.Sink.Submit(data[:n]); err != nil {
		return err
	}
	l.written += n

	if l.written >= l.limit {
		l.once.Do(func() {
			close(l.full)
		})
	}

	return nil
}

// Close implements the streamer.Sink interface.
func (l *limitedSink) Close() error {
	l.closeErr = l.Sink.Close()
	return l.closeErr
}
