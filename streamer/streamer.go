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
	"io"
	"sync"
	"sync/atomic"

	"github.com/jetsetilly/sidstreamer/curated"
	"github.com/jetsetilly/sidstreamer/logger"
	"github.com/jetsetilly/sidstreamer/player"
	"github.com/jetsetilly/sidstreamer/tune"
)

// Error patterns returned by the Streamer.
const (
	SinkError  = "streamer: sink: %v"
	NotStarted = "streamer: nothing is playing"
	NoTune     = "streamer: nil tune"
)

// Values used for every session.
const (
	Frequency      = 22000
	Channels       = 2
	BlockFrames    = 2048
	QueueThreshold = 1
)

// Streamer is the real-time front end of a player.Player.
type Streamer struct {
	create    SinkCreator
	configure func(*player.Config)

	// serialises control operations
	crit sync.Mutex

	player *player.Player
	sink   Sink
	tune   *tune.Tune

	// volume is applied to the sink of every session
	volume float32

	// abort is closed to ask the producer to finish. done is closed by the
	// producer when it has finished
	abort chan struct{}
	done  chan struct{}

	stopping atomic.Bool
	ended    atomic.Bool
	quiet    atomic.Bool

	// nudges a paused producer
	resume chan struct{}
}

// NewStreamer is the preferred method of initialisation for the Streamer
// type.
func NewStreamer(create SinkCreator) *Streamer {
	return &Streamer{
		create: create,
		volume: 1.0,
		resume: make(chan struct{}, 1),
	}
}

// NewStreamerFromSnapshot creates a Streamer and restores a snapshot
// created with Save(). Playback starts immediately.
func NewStreamerFromSnapshot(create SinkCreator, r io.Reader) (*Streamer, error) {
	st := NewStreamer(create)
	if err := st.Restore(r); err != nil {
		return nil, err
	}
	return st, nil
}

// Configure sets a function that can change the configuration of the Player
// before every session started with Start(). The function is not called for
// a session started with Restore() because the configuration is part of the
// snapshot.
func (st *Streamer) Configure(fn func(*player.Config)) {
	st.crit.Lock()
	defer st.crit.Unlock()
	st.configure = fn
}

// SetLogging turns logging by the Streamer, and by the Player of every
// session, on or off. Logging is on by default.
func (st *Streamer) SetLogging(on bool) {
	st.quiet.Store(!on)
}

// AllowLogging implements the logger.Permission interface.
func (st *Streamer) AllowLogging() bool {
	return !st.quiet.Load()
}

// Stopping returns true while Stop() is waiting for the producer to finish.
func (st *Streamer) Stopping() bool {
	return st.stopping.Load()
}

// State of the Player. Stopped if there is no session or if the tune has
// ended.
func (st *Streamer) State() player.State {
	st.crit.Lock()
	defer st.crit.Unlock()
	if st.player == nil || st.ended.Load() {
		return player.Stopped
	}
	return st.player.State()
}

// Tune returns the tune of the current or most recent session.
func (st *Streamer) Tune() *tune.Tune {
	st.crit.Lock()
	defer st.crit.Unlock()
	return st.tune
}

// Song returns the song being played. Zero if there is no session.
func (st *Streamer) Song() int {
	st.crit.Lock()
	defer st.crit.Unlock()
	if st.player == nil {
		return 0
	}
	return st.player.Song()
}

// Volume returns the volume set by SetVolume().
func (st *Streamer) Volume() float32 {
	st.crit.Lock()
	defer st.crit.Unlock()
	return st.volume
}

// SetVolume sets the volume of the sink. Values are clamped to the range
// 0 to 1. The volume is remembered for future sessions.
func (st *Streamer) SetVolume(volume float32) {
	volume = max(min(volume, 1.0), 0.0)

	st.crit.Lock()
	defer st.crit.Unlock()
	st.volume = volume
	if st.sink != nil {
		st.sink.SetVolume(volume)
	}
}

func (st *Streamer) config(tn *tune.Tune) player.Config {
	cfg := player.DefaultConfig()
	cfg.Frequency = Frequency
	cfg.Playback = player.Mono
	if tn.Stereo() {
		cfg.Playback = player.Stereo
	}
	cfg.SIDModel = player.ModelCorrect
	cfg.ClockSpeed = player.ClockCorrect
	cfg.Volume = player.MaxVolume
	cfg.SampleFormat = player.LittleSigned
	cfg.Precision = 16
	if st.configure != nil {
		st.configure(&cfg)
	}
	return cfg
}

// Start playing the song from the tune. A song of zero is the tune's start
// song. Any existing session is stopped first. Does nothing if the Streamer
// is being stopped.
func (st *Streamer) Start(tn *tune.Tune, song int) error {
	if st.Stopping() {
		return nil
	}

	st.crit.Lock()
	defer st.crit.Unlock()
	return st.start(tn, song)
}

func (st *Streamer) start(tn *tune.Tune, song int) error {
	if tn == nil {
		return curated.Errorf(NoTune)
	}

	st.stop()

	tn.SelectSong(song)

	p := player.NewPlayer()
	p.SetLogging(st.AllowLogging())
	if err := p.SetConfig(st.config(tn)); err != nil {
		return err
	}
	if err := p.Load(tn); err != nil {
		return err
	}

	return st.launch(p)
}

// launch creates the sink and the producer for a loaded Player.
func (st *Streamer) launch(p *player.Player) error {
	p.SetLogging(st.AllowLogging())

	sink, err := st.create(p.Config().Frequency, Channels)
	if err != nil {
		return curated.Errorf(SinkError, err)
	}
	sink.SetVolume(st.volume)

	if err := p.Start(); err != nil {
		_ = sink.Close()
		return err
	}

	st.player = p
	st.sink = sink
	st.tune = p.Tune()
	st.abort = make(chan struct{})
	st.done = make(chan struct{})
	st.ended.Store(false)

	// drain any stale nudge from a previous session
	select {
	case <-st.resume:
	default:
	}

	logger.Logf(st, "streamer", "started %s", p)
	go st.produce(p, sink, st.abort, st.done)

	return nil
}

// Stop the current session. Blocks until the producer has finished. Does
// nothing if there is no session.
func (st *Streamer) Stop() {
	st.crit.Lock()
	defer st.crit.Unlock()
	st.stop()
}

func (st *Streamer) stop() {
	if st.player == nil {
		return
	}

	st.stopping.Store(true)
	defer st.stopping.Store(false)

	close(st.abort)
	<-st.done

	// errors from the sink are not interesting at this point
	if err := st.sink.Pause(); err != nil {
		logger.Log(st, "streamer", err)
	}
	if err := st.sink.Close(); err != nil {
		logger.Log(st, "streamer", err)
	}

	st.player.Stop()
	st.player = nil
	st.sink = nil
	st.abort = nil
	st.done = nil
}

// Pause the current session. Returns once the Player has finished any
// block it was producing.
func (st *Streamer) Pause() {
	if st.Stopping() {
		return
	}

	st.crit.Lock()
	defer st.crit.Unlock()
	if st.player == nil {
		return
	}
	st.player.Pause()
	st.player.WaitPlay()
}

// Resume a paused session.
func (st *Streamer) Resume() {
	if st.Stopping() {
		return
	}

	st.crit.Lock()
	defer st.crit.Unlock()
	if st.player == nil {
		return
	}
	st.player.Resume()

	select {
	case st.resume <- struct{}{}:
	default:
	}
}

// NextSong restarts the session with the next song of the tune. Does
// nothing if the last song is playing or if there is no session.
func (st *Streamer) NextSong() error {
	return st.changeSong((*tune.Tune).NextSong)
}

// PrevSong restarts the session with the previous song of the tune. Does
// nothing if the first song is playing or if there is no session.
func (st *Streamer) PrevSong() error {
	return st.changeSong((*tune.Tune).PrevSong)
}

func (st *Streamer) changeSong(change func(*tune.Tune) bool) error {
	if st.Stopping() {
		return nil
	}

	st.crit.Lock()
	defer st.crit.Unlock()
	if st.player == nil {
		return nil
	}

	tn := st.tune
	if !change(tn) {
		return nil
	}
	return st.start(tn, tn.CurrentSong())
}

// Save a snapshot of the session. The session is paused first and remains
// paused.
func (st *Streamer) Save(w io.Writer) error {
	st.crit.Lock()
	defer st.crit.Unlock()
	if st.player == nil {
		return curated.Errorf(NotStarted)
	}
	st.player.Pause()
	st.player.WaitPlay()
	return st.player.Save(w)
}

// Restore a snapshot created by Save() and start playing. Any existing
// session is stopped first, even if the snapshot can not be restored.
func (st *Streamer) Restore(r io.Reader) error {
	if st.Stopping() {
		return nil
	}

	st.crit.Lock()
	defer st.crit.Unlock()

	st.stop()

	p, err := player.Restore(r)
	if err != nil {
		return err
	}
	return st.launch(p)
}
