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

package player

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jetsetilly/sidstreamer/curated"
	"github.com/jetsetilly/sidstreamer/hardware/cia"
	"github.com/jetsetilly/sidstreamer/hardware/clocks"
	"github.com/jetsetilly/sidstreamer/hardware/cpu"
	"github.com/jetsetilly/sidstreamer/hardware/memory"
	"github.com/jetsetilly/sidstreamer/hardware/scheduler"
	"github.com/jetsetilly/sidstreamer/hardware/sid"
	"github.com/jetsetilly/sidstreamer/hardware/vic"
	"github.com/jetsetilly/sidstreamer/logger"
	"github.com/jetsetilly/sidstreamer/tune"
)

// Error patterns returned by the Player.
const (
	InvalidConfig = "player: invalid configuration: %s"
	NotStopped    = "player: %s is only possible when stopped"
	NotLoaded     = "player: no tune loaded"
	NoTune        = "player: nil tune"
)

// port B bit of the first CIA connected to the light-pen input of the VIC.
const lightPenMask = 0x10

// Player is the emulated machine.
type Player struct {
	cfg   Config
	state atomic.Int32

	tune   *tune.Tune
	song   int
	loaded bool

	clock clocks.Clock
	sched *scheduler.Scheduler
	cpu   *cpu.CPU
	mem   *memory.Memory
	vic   *vic.VIC
	cia1  *cia.CIA
	cia2  *cia.CIA
	sids  []*sid.SID

	cpuEvent *scheduler.Event
	mixEvent *scheduler.Event

	// the CPU is in an idle loop and is not being stepped. sleepFrom is the
	// cycle at which the next instruction of the loop would have started
	sleeping  bool
	sleepFrom uint64

	// the number of cycles between samples in 16.16 fixed point
	mixPeriod   uint64
	mixFraction uint64

	// the cycle up to which the SIDs have been clocked
	lastClock uint64

	// the buffer being filled by Play() and the number of values written
	buffer  []int16
	written int

	playMu   sync.Mutex
	playCond *sync.Cond
	inPlay   bool

	quiet atomic.Bool
}

// NewPlayer is the preferred method of initialisation for the Player type.
// The Player is stopped with no tune loaded.
func NewPlayer() *Player {
	p := &Player{
		cfg: DefaultConfig(),
	}
	p.playCond = sync.NewCond(&p.playMu)
	return p
}

func (p *Player) String() string {
	if !p.loaded {
		return fmt.Sprintf("%s (nothing loaded)", p.State())
	}
	return fmt.Sprintf("%s song %d/%d %s cycle=%d %s", p.State(), p.song, p.tune.Songs(), p.clock, p.sched.Cycle(), p.cpu)
}

// SetLogging turns logging by the Player on or off. Logging is on by
// default.
func (p *Player) SetLogging(on bool) {
	p.quiet.Store(!on)
}

// AllowLogging implements the logger.Permission interface.
func (p *Player) AllowLogging() bool {
	return !p.quiet.Load()
}

// State returns the current state. Safe to call from any goroutine.
func (p *Player) State() State {
	return State(p.state.Load())
}

// Config returns a copy of the current configuration.
func (p *Player) Config() Config {
	return p.cfg
}

// SetConfig changes the configuration. The Player must be stopped. The new
// configuration takes effect on the next call to Load().
func (p *Player) SetConfig(cfg Config) error {
	if p.State() != Stopped {
		return curated.Errorf(NotStopped, "configuration")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	p.cfg = cfg
	return nil
}

// syncedSID brings every SID up to date before the CPU accesses one of them.
type syncedSID struct {
	p   *Player
	sid *sid.SID
}

func (s syncedSID) Read(reg uint16) uint8 {
	s.p.clockSIDs()
	return s.sid.Read(reg)
}

func (s syncedSID) Write(reg uint16, v uint8) {
	s.p.clockSIDs()
	s.sid.Write(reg, v)
}

// build creates the machine for the tune. The scheduler handlers are bound
// but nothing is scheduled.
func (p *Player) build(tn *tune.Tune) {
	p.clock = p.cfg.clock(tn.Info.Clock)
	p.sched = scheduler.NewScheduler()

	p.vic = vic.NewVIC(p.sched)
	p.vic.SetClock(p.clock)

	p.cia1 = cia.NewCIA("CIA1", p.sched, scheduler.CIA1TimerA, scheduler.CIA1TimerB, cia.Wiring{
		Interrupt: p.interruptIRQ,
		Edge:      p.lightPen,
		EdgeMask:  lightPenMask,
	})
	p.cia2 = cia.NewCIA("CIA2", p.sched, scheduler.CIA2TimerA, scheduler.CIA2TimerB, cia.Wiring{
		Interrupt: p.interruptNMI,
	})

	p.sids = []*sid.SID{sid.NewSID(p.cfg.model(tn.Info.SIDModel))}
	if tn.Stereo() {
		p.sids = append(p.sids, sid.NewSID(p.cfg.model(tn.Info.SecondSIDModel)))
	}
	for _, s := range p.sids {
		s.SetSampling(p.cfg.sampling())
	}

	p.mem = memory.NewMemory(p.vic, syncedSID{p: p, sid: p.sids[0]}, p.cia1, p.cia2)
	if tn.Stereo() {
		p.mem.AttachSecondSID(tn.Info.SecondSID, syncedSID{p: p, sid: p.sids[1]})
	}

	p.cpu = cpu.NewCPU(p.mem)
	p.cpuEvent = p.sched.Bind(scheduler.CPU, p.stepCPU)
	p.mixEvent = p.sched.Bind(scheduler.Mixer, p.mix)

	p.mixPeriod = (uint64(p.clock.Rate()) << 16) / uint64(p.cfg.Frequency)
	p.mixFraction = 0
	p.lastClock = 0
	p.sleeping = false
	p.sleepFrom = 0
}

// Load the tune and prepare to play the tune's current song. The Player must
// be stopped. The tune's init routine is called once Start() is called.
func (p *Player) Load(tn *tune.Tune) error {
	if p.State() != Stopped {
		return curated.Errorf(NotStopped, "loading")
	}
	if tn == nil {
		return curated.Errorf(NoTune)
	}

	p.build(tn)
	p.tune = tn
	p.song = tn.CurrentSong()

	installDriver(p.mem, tn.Info.InitAddress, tn.Info.PlayAddress, p.song)
	p.mem.Load(tn.Info.LoadAddress, tn.Data)
	p.cpu.Reset()

	// the first CIA timer drives the play routine. a VBI tune is played once
	// per frame. a CIA tune uses the KERNAL's timer value, which the init
	// routine may change
	period := uint16(kernalTimer)
	speed := "CIA"
	if !tn.SpeedCIA(p.song) {
		period = uint16(p.clock.CyclesPerFrame() - 1)
		speed = "VBI"
	}
	p.cia1.Write(cia.TALO, lo(period))
	p.cia1.Write(cia.TAHI, hi(period))
	p.cia1.Write(cia.ICR, 0x81)
	p.cia1.Write(cia.CRA, 0x11)

	p.sched.Schedule(p.cpuEvent, 0)
	p.scheduleMix()
	p.loaded = true

	logger.Logf(p, "player", "loaded %s: song %d/%d %s %s sid %s",
		tn.Info.Name, p.song, tn.Songs(), p.clock, speed, p.sids[0].Model())

	return nil
}

// Start playback. A paused Player is resumed. Starting a Player that is
// already playing does nothing.
func (p *Player) Start() error {
	switch p.State() {
	case Playing:
		return nil
	case Paused:
		p.Resume()
		return nil
	}
	if !p.loaded {
		return curated.Errorf(NotLoaded)
	}
	p.state.Store(int32(Playing))
	return nil
}

// Pause playback. Does nothing if the Player is not playing. The state of
// the machine is preserved.
func (p *Player) Pause() {
	p.state.CompareAndSwap(int32(Playing), int32(Paused))
}

// Resume playback. Does nothing if the Player is not paused.
func (p *Player) Resume() {
	p.state.CompareAndSwap(int32(Paused), int32(Playing))
}

// Stop playback and discard the machine. A tune must be loaded again before
// the next Start(). Waits for any call to Play() to finish.
func (p *Player) Stop() {
	p.state.Store(int32(Stopped))
	p.WaitPlay()

	p.loaded = false
	p.sched = nil
	p.cpu = nil
	p.mem = nil
	p.vic = nil
	p.cia1 = nil
	p.cia2 = nil
	p.sids = nil
	p.cpuEvent = nil
	p.mixEvent = nil
}

func (p *Player) setInPlay(v bool) {
	p.playMu.Lock()
	defer p.playMu.Unlock()
	p.inPlay = v
	if !v {
		p.playCond.Broadcast()
	}
}

// InPlay returns true if a call to Play() is in progress. Safe to call from
// any goroutine.
func (p *Player) InPlay() bool {
	p.playMu.Lock()
	defer p.playMu.Unlock()
	return p.inPlay
}

// WaitPlay blocks until no call to Play() is in progress.
func (p *Player) WaitPlay() {
	p.playMu.Lock()
	defer p.playMu.Unlock()
	for p.inPlay {
		p.playCond.Wait()
	}
}

// Play runs the machine until n frames have been written to the buffer. A
// frame is one value for mono playback and two interleaved values for stereo
// playback. The number of frames is limited by the size of the buffer.
//
// Returns the number of frames written. Fewer than n frames are written if
// the Player stops playing during the call or if the tune has ended. Nothing
// is written if the Player is not playing.
func (p *Player) Play(buffer []int16, n int) int {
	p.setInPlay(true)
	defer p.setInPlay(false)

	if p.State() != Playing {
		return 0
	}

	ch := p.cfg.Playback.Channels()
	n = max(0, min(n, len(buffer)/ch))
	p.buffer = buffer[:n*ch]
	p.written = 0
	defer func() {
		p.buffer = nil
	}()

	for p.written < len(p.buffer) {
		if p.State() != Playing || p.cpu.Jammed() {
			break // for loop
		}
		if !p.sched.AdvanceOne() {
			break // for loop
		}
	}

	return p.written / ch
}

// Ended returns true if the tune has stopped the CPU with a JAM instruction.
// No more samples will be produced.
func (p *Player) Ended() bool {
	return p.loaded && p.cpu.Jammed()
}

// Tune returns the most recently loaded tune.
func (p *Player) Tune() *tune.Tune {
	return p.tune
}

// Song returns the song number being played.
func (p *Player) Song() int {
	return p.song
}

// Cycle returns the current cycle of the machine. Zero if nothing is loaded.
func (p *Player) Cycle() uint64 {
	if !p.loaded {
		return 0
	}
	return p.sched.Cycle()
}

// Clock returns the clock of the machine. Only meaningful once a tune is
// loaded.
func (p *Player) Clock() clocks.Clock {
	return p.clock
}

// SIDModels returns the model of each SID in the machine.
func (p *Player) SIDModels() []sid.Model {
	m := make([]sid.Model, 0, len(p.sids))
	for _, s := range p.sids {
		m = append(m, s.Model())
	}
	return m
}

// Peek returns the content of RAM at the address. Returns zero if nothing is
// loaded.
func (p *Player) Peek(address uint16) uint8 {
	if !p.loaded {
		return 0
	}
	return p.mem.Peek(address)
}

// Memory returns the address space of the machine. Nil if nothing is loaded.
func (p *Player) Memory() *memory.Memory {
	return p.mem
}

func (p *Player) interruptIRQ(state bool) {
	p.cpu.SetIRQ(state)
	if state {
		p.wake()
	}
}

func (p *Player) interruptNMI(state bool) {
	p.cpu.SetNMI(state)
	if state {
		p.wake()
	}
}

func (p *Player) lightPen() {
	p.vic.LightPen()
}

// stepCPU is the handler for the CPU event.
func (p *Player) stepCPU() {
	cycles := p.cpu.Step()

	if p.cpu.Jammed() {
		logger.Logf(p, "player", "CPU jammed at $%04x (cycle %d)", p.cpu.PC, p.sched.Cycle())
		return
	}

	if p.cfg.Optimisation >= 2 && p.cpu.IdleLoop() {
		p.sleeping = true
		p.sleepFrom = p.sched.Cycle() + uint64(cycles)
		return
	}

	p.sched.ScheduleIn(p.cpuEvent, uint64(cycles))
}

// the length of the JMP instruction that forms an idle loop.
const idleLoopCycles = 3

// wake a sleeping CPU. the CPU resumes at the first instruction boundary of
// the idle loop that is not before the current cycle.
func (p *Player) wake() {
	if !p.sleeping {
		return
	}
	p.sleeping = false

	at := p.sleepFrom
	if now := p.sched.Cycle(); now > at {
		at += (now - at + idleLoopCycles - 1) / idleLoopCycles * idleLoopCycles
	}
	p.sched.Schedule(p.cpuEvent, at)
}

// clockSIDs brings every SID up to the current cycle.
func (p *Player) clockSIDs() {
	now := p.sched.Cycle()
	if now <= p.lastClock {
		return
	}
	delta := int(now - p.lastClock)
	for _, s := range p.sids {
		s.Clock(delta)
	}
	p.lastClock = now
}

func (p *Player) scheduleMix() {
	p.mixFraction += p.mixPeriod
	delta := p.mixFraction >> 16
	p.mixFraction &= 0xffff
	p.sched.ScheduleIn(p.mixEvent, delta)
}

// scale applies the software volume and precision.
func (p *Player) scale(v int) int16 {
	v = v * p.cfg.Volume / MaxVolume
	v = max(min(v, 32767), -32768)
	if p.cfg.Precision == 8 {
		v &^= 0xff
	}
	return int16(v)
}

// mix is the handler for the mixer event. It takes one sample from each
// SID and writes a frame to the buffer.
func (p *Player) mix() {
	p.clockSIDs()

	left := int(p.sids[0].Output())
	right := left
	if len(p.sids) > 1 {
		right = int(p.sids[1].Output())
	}

	if p.written < len(p.buffer) {
		if p.cfg.Playback == Stereo {
			p.buffer[p.written] = p.scale(left)
			p.buffer[p.written+1] = p.scale(right)
			p.written += 2
		} else {
			p.buffer[p.written] = p.scale((left + right) >> 1)
			p.written++
		}
	}

	p.scheduleMix()
}
