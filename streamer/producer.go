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

import (
	"time"

	"github.com/jetsetilly/sidstreamer/logger"
	"github.com/jetsetilly/sidstreamer/pcm"
	"github.com/jetsetilly/sidstreamer/player"
)

const (
	// how often the depth of the sink's queue is checked
	pollInterval = 5 * time.Millisecond

	// how long a paused producer waits before checking the state again
	pausedInterval = 50 * time.Millisecond
)

// Encoding returns the pcm.Format for the player's sample format. Data
// submitted to a sink is always s16le. The sample format is for consumers
// that write the data unchanged, such as a raw recording, and is applied with
// pcm.Convert().
func Encoding(f player.SampleFormat) pcm.Format {
	switch f {
	case player.LittleUnsigned:
		return pcm.U16LE
	case player.BigSigned:
		return pcm.S16BE
	case player.BigUnsigned:
		return pcm.U16BE
	}
	return pcm.S16LE
}

// the outcome of waitQueue()
type waitResult int

const (
	waitSubmit waitResult = iota
	waitPaused
	waitAbort
)

// waitQueue blocks until the sink has room for another block.
func waitQueue(p *player.Player, sink Sink, abort <-chan struct{}) waitResult {
	var tck *time.Ticker

	for {
		select {
		case <-abort:
			return waitAbort
		default:
		}

		if p.State() == player.Paused {
			return waitPaused
		}

		if sink.Queued() <= QueueThreshold {
			return waitSubmit
		}

		if tck == nil {
			tck = time.NewTicker(pollInterval)
			defer tck.Stop()
		}

		select {
		case <-abort:
			return waitAbort
		case <-tck.C:
		}
	}
}

// pauseSink is called when the producer notices that the Player is paused.
func (st *Streamer) pauseSink(sink Sink) {
	if !sink.Playing() {
		return
	}
	if err := sink.Pause(); err != nil {
		logger.Log(st, "streamer", err)
	}
}

// produce is the producer goroutine. It runs until the abort channel is
// closed or until the tune has ended.
func (st *Streamer) produce(p *player.Player, sink Sink, abort <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	cfg := p.Config()
	channels := cfg.Playback.Channels()

	samples := make([]int16, BlockFrames*channels)
	frames := make([]int16, BlockFrames*Channels)
	out := make([]byte, BlockFrames*pcm.BytesPerFrame)

	// a block that was produced but not yet submitted because the Player was
	// paused while waiting for the sink
	var pending []byte
	var ended bool

	for {
		select {
		case <-abort:
			return
		default:
		}

		if p.State() == player.Paused {
			st.pauseSink(sink)
			select {
			case <-abort:
				return
			case <-st.resume:
			case <-time.After(pausedInterval):
			}
			continue // for loop
		}

		if pending == nil {
			n := p.Play(samples, BlockFrames)
			if n == 0 && !p.Ended() {
				continue // for loop
			}

			var f []int16
			if channels == 2 {
				f = pcm.FoldStereo(frames, samples[:n*2])
			} else {
				f = pcm.Duplicate(frames, samples[:n])
			}
			pending = pcm.Encode(out, f, pcm.S16LE)
			ended = p.Ended()
		}

		if !sink.Playing() {
			if err := sink.Play(); err != nil {
				logger.Log(st, "streamer", err)
			}
		}

		switch waitQueue(p, sink, abort) {
		case waitAbort:
			return
		case waitPaused:
			st.pauseSink(sink)
			continue // for loop
		}

		if len(pending) > 0 {
			if err := sink.Submit(pending); err != nil {
				logger.Log(st, "streamer", err)
			}
		}
		pending = nil

		if ended {
			st.ended.Store(true)
			logger.Logf(st, "streamer", "tune ended at cycle %d", p.Cycle())
			return
		}
	}
}
