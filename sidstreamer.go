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
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/davecgh/go-spew/spew"
	"github.com/jetsetilly/sidstreamer/digest"
	"github.com/jetsetilly/sidstreamer/logger"
	"github.com/jetsetilly/sidstreamer/modalflag"
	"github.com/jetsetilly/sidstreamer/otoaudio"
	"github.com/jetsetilly/sidstreamer/paths"
	"github.com/jetsetilly/sidstreamer/pcm"
	"github.com/jetsetilly/sidstreamer/player"
	"github.com/jetsetilly/sidstreamer/preferences"
	"github.com/jetsetilly/sidstreamer/prefs"
	"github.com/jetsetilly/sidstreamer/sdlaudio"
	"github.com/jetsetilly/sidstreamer/statsview"
	"github.com/jetsetilly/sidstreamer/streamer"
	"github.com/jetsetilly/sidstreamer/terminal"
	"github.com/jetsetilly/sidstreamer/tune"
	"github.com/jetsetilly/sidstreamer/version"
)

// communication between the main goroutine and the launch goroutine.
type mainSync struct {
	state chan stateRequest
}

// the stateRequest sent through the state channel in mainSync.
type stateReq int

// list of valid stateReq values.
const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = iota

	// reset interrupt signal handling. used when a mode wants to handle
	// ctrl-c itself.
	//
	// no arguments.
	reqNoIntSig
)

type stateRequest struct {
	req  stateReq
	args any
}

// the amount by which the volume changes with each key press.
const volumeStep = 0.05

func main() {
	sync := &mainSync{
		state: make(chan stateRequest),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// ctrl-c handling. the launch goroutine can ask for the interrupt to be
	// handled elsewhere with reqNoIntSig
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync, os.Args[1:])

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Print("\r")
			done = true

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
			}
		}
	}

	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate that the program should end.
func launch(sync *mainSync, args []string) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.AddSubModes("PLAY", "INFO", "RECORD", "RESUME", "DIGEST", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "PLAY":
		err = play(md, sync)
	case "INFO":
		err = info(md)
	case "RECORD":
		err = record(md, sync)
	case "RESUME":
		err = resume(md, sync)
	case "DIGEST":
		err = audioDigest(md, sync)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)

		// the log entries leading up to the error have not been seen
		if !echoLog {
			logger.Tail(os.Stdout, errorLogEntries)
		}

		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// the number of log entries shown when a mode ends with an error
const errorLogEntries = 10

// whether the log is being echoed to stderr
var echoLog bool

// setupLogging echoes the central logger to stderr if requested.
func setupLogging(echo bool) {
	echoLog = echo
	if echo {
		logger.SetEcho(os.Stderr)
	} else {
		logger.SetEcho(nil)
	}
}

// loadPreferences with the command line override string.
func loadPreferences(override string) (*preferences.Preferences, error) {
	prefs.PushCommandLineStack(override)
	defer prefs.PopCommandLineStack()
	return preferences.NewPreferences()
}

// sinkCreator returns the SinkCreator named in the preferences.
func sinkCreator(pr *preferences.Preferences) streamer.SinkCreator {
	switch pr.Sink.String() {
	case preferences.SinkOto:
		return func(sampleRate int, channels int) (streamer.Sink, error) {
			s, err := otoaudio.NewSink(sampleRate, channels)
			if err != nil {
				return nil, err
			}
			return s, nil
		}
	}
	return func(sampleRate int, channels int) (streamer.Sink, error) {
		s, err := sdlaudio.NewSink(sampleRate, channels)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func preferredVolume(pr *preferences.Preferences) float32 {
	if v, ok := pr.Volume.Get().(float64); ok {
		return float32(v)
	}
	return 1.0
}

func play(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	song := md.AddInt("song", 0, "song to play. zero for the tune's start song")
	prefsOverride := md.AddString("prefs", "", "preferences to override for this session. eg. player.sink::oto")
	log := md.AddBool("log", false, "echo debugging log to stderr")
	stats := md.AddBool("statsview", false, "run the runtime statistics server (if available)")
	snapshotDir := md.AddString("snapshots", ".", "directory for snapshots saved while playing")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setupLogging(*log)

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("a SID file is required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	tn, err := tune.Load(md.GetArg(0))
	if err != nil {
		return err
	}

	pr, err := loadPreferences(*prefsOverride)
	if err != nil {
		return err
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println("* statsview is not available in this build")
		}
	}

	st := streamer.NewStreamer(sinkCreator(pr))
	st.SetLogging(*log)
	st.Configure(pr.Apply)
	st.SetVolume(preferredVolume(pr))

	if err := st.Start(tn, *song); err != nil {
		return err
	}
	defer st.Stop()

	return control(st, sync, *snapshotDir)
}

func resume(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	prefsOverride := md.AddString("prefs", "", "preferences to override for this session. eg. player.sink::oto")
	log := md.AddBool("log", false, "echo debugging log to stderr")
	snapshotDir := md.AddString("snapshots", ".", "directory for snapshots saved while playing")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setupLogging(*log)

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("a snapshot file is required for %s mode", md)
	}

	pr, err := loadPreferences(*prefsOverride)
	if err != nil {
		return err
	}

	f, err := os.Open(md.GetArg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	// the volume is set before the session is restored so that the sink is
	// created with it
	st := streamer.NewStreamer(sinkCreator(pr))
	st.SetLogging(*log)
	st.SetVolume(preferredVolume(pr))
	if err := st.Restore(f); err != nil {
		return err
	}
	defer st.Stop()

	return control(st, sync, *snapshotDir)
}

// control the streamer with the keyboard until the user quits or the tune
// ends.
func control(st *streamer.Streamer, sync *mainSync, snapshotDir string) error {
	tm, err := terminal.Open()
	if err != nil {
		return err
	}
	defer tm.Close()

	// the terminal must be restored before the program ends so ctrl-c is
	// handled here rather than by main()
	sync.state <- stateRequest{req: reqNoIntSig}
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	fmt.Println(terminal.Help)

	tck := time.NewTicker(250 * time.Millisecond)
	defer tck.Stop()

	var message string

	for {
		select {
		case <-intChan:
			fmt.Println()
			return nil

		case k, ok := <-tm.Keys():
			if !ok {
				fmt.Println()
				return nil
			}

			message = ""

			switch terminal.Decode(k) {
			case terminal.TogglePause:
				if st.State() == player.Paused {
					st.Resume()
				} else {
					st.Pause()
				}
			case terminal.NextSong:
				if err := st.NextSong(); err != nil {
					message = err.Error()
				}
			case terminal.PrevSong:
				if err := st.PrevSong(); err != nil {
					message = err.Error()
				}
			case terminal.VolumeUp:
				st.SetVolume(st.Volume() + volumeStep)
			case terminal.VolumeDown:
				st.SetVolume(st.Volume() - volumeStep)
			case terminal.SaveSnapshot:
				paused := st.State() == player.Paused
				fn, err := saveSnapshot(st, snapshotDir)
				if err != nil {
					message = err.Error()
				} else {
					message = fmt.Sprintf("saved %s", fn)
				}
				if !paused {
					st.Resume()
				}
			case terminal.Quit:
				fmt.Println()
				return nil
			}

		case <-tck.C:
		}

		status := terminal.StatusLine(currentStatus(st))
		if message != "" {
			status = fmt.Sprintf("%s  %s", status, message)
		}

		// carriage return and erase to end of line
		fmt.Printf("\r%s\x1b[K", status)

		if st.State() == player.Stopped && !st.Stopping() {
			fmt.Println()
			return nil
		}
	}
}

func currentStatus(st *streamer.Streamer) terminal.Status {
	s := terminal.Status{
		Song:   st.Song(),
		State:  st.State().String(),
		Volume: st.Volume(),
	}
	if tn := st.Tune(); tn != nil {
		s.Title = tn.Info.Name
		s.Author = tn.Info.Author
		s.Songs = tn.Songs()
	}
	return s
}

// saveSnapshot to a new file in the directory. the streamer is left paused.
func saveSnapshot(st *streamer.Streamer, dir string) (string, error) {
	var name string
	if tn := st.Tune(); tn != nil {
		name = tn.Info.Name
	}
	fn := filepath.Join(dir, fmt.Sprintf("%s.snap", paths.UniqueFilename("snapshot", name)))

	f, err := os.Create(fn)
	if err != nil {
		return "", err
	}

	err = st.Save(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(fn)
		return "", err
	}

	return fn, nil
}

func info(md *modalflag.Modes) error {
	md.NewMode()

	prefsOverride := md.AddString("prefs", "", "preferences to override when deriving the player configuration")
	dump := md.AddBool("dump", false, "dump the tune information and player configuration")
	graph := md.AddString("memviz", "", "write a memviz graph of the tune information and player configuration to file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("at least one SID file is required for %s mode", md)
	}

	pr, err := loadPreferences(*prefsOverride)
	if err != nil {
		return err
	}

	for i, filename := range md.RemainingArgs() {
		if i > 0 {
			fmt.Println()
		}

		tn, err := tune.Load(filename)
		if err != nil {
			fmt.Printf("* %s: %v\n", filename, err)
			continue // for loop
		}

		cfg := player.DefaultConfig()
		cfg.Frequency = streamer.Frequency
		if tn.Stereo() {
			cfg.Playback = player.Stereo
		}
		pr.Apply(&cfg)

		ply := player.NewPlayer()
		ply.SetLogging(false)
		if err := ply.SetConfig(cfg); err != nil {
			return err
		}
		if err := ply.Load(tn); err != nil {
			fmt.Printf("* %s: %v\n", filename, err)
			continue // for loop
		}

		printInfo(os.Stdout, filename, tn, ply)

		if *dump {
			spew.Fdump(os.Stdout, tn.Info, cfg)
		}

		if *graph != "" {
			fn := *graph
			if len(md.RemainingArgs()) > 1 {
				ext := filepath.Ext(fn)
				fn = fmt.Sprintf("%s_%d%s", strings.TrimSuffix(fn, ext), i, ext)
			}
			if err := writeGraph(fn, tn, cfg); err != nil {
				return err
			}
		}
	}

	return nil
}

func printInfo(w io.Writer, filename string, tn *tune.Tune, ply *player.Player) {
	nfo := tn.Info
	fmt.Fprintf(w, "%s\n", filename)
	fmt.Fprintf(w, "  title:    %s\n", nfo.Name)
	fmt.Fprintf(w, "  author:   %s\n", nfo.Author)
	fmt.Fprintf(w, "  released: %s\n", nfo.Released)
	fmt.Fprintf(w, "  format:   %s v%d\n", nfo.Format, nfo.Version)
	fmt.Fprintf(w, "  load:     $%04x  init: $%04x  play: $%04x\n", nfo.LoadAddress, nfo.InitAddress, nfo.PlayAddress)
	fmt.Fprintf(w, "  songs:    %d (start %d)\n", nfo.Songs, nfo.StartSong)
	fmt.Fprintf(w, "  clock:    %s (playing at %s)\n", nfo.Clock, ply.Clock())
	fmt.Fprintf(w, "  sid:      %s (playing with %s)\n", nfo.SIDModel, ply.SIDModels())
	if nfo.SecondSID != 0 {
		fmt.Fprintf(w, "  2nd sid:  $%04x %s\n", nfo.SecondSID, nfo.SecondSIDModel)
	}
	fmt.Fprintf(w, "  sha1:     %s\n", nfo.Hash)
}

// the structure given to memviz. memviz follows pointers so the fields
// are pointers to the values of interest.
type infoGraph struct {
	Info   *tune.Info
	Config *player.Config
}

func writeGraph(filename string, tn *tune.Tune, cfg player.Config) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	memviz.Map(f, &infoGraph{Info: &tn.Info, Config: &cfg})
	return nil
}

func record(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	song := md.AddInt("song", 0, "song to record. zero for the tune's start song")
	seconds := md.AddInt("seconds", 60, "length of the recording in seconds")
	prefsOverride := md.AddString("prefs", "", "preferences to override for this session. eg. player.sid::8580")
	log := md.AddBool("log", false, "echo debugging log to stderr")

	md.AdditionalHelp("The recording is a WAV file unless the output filename ends with .raw,\nin which case the sample data is written without a header in the format\ngiven by the player.format preference.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setupLogging(*log)

	if len(md.RemainingArgs()) != 2 {
		return fmt.Errorf("a SID file and an output file are required for %s mode", md)
	}
	if *seconds <= 0 {
		return fmt.Errorf("recording length must be positive")
	}

	tn, err := tune.Load(md.GetArg(0))
	if err != nil {
		return err
	}

	pr, err := loadPreferences(*prefsOverride)
	if err != nil {
		return err
	}

	// the sample format preference applies to raw recordings
	cfg := player.DefaultConfig()
	pr.Apply(&cfg)
	format := streamer.Encoding(cfg.SampleFormat)

	output := md.GetArg(1)
	limit := *seconds * streamer.Frequency * pcm.BytesPerFrame
	var rec *limitedSink

	st := streamer.NewStreamer(func(sampleRate int, channels int) (streamer.Sink, error) {
		s, err := recordingSink(output, sampleRate, channels, format)
		if err != nil {
			return nil, err
		}
		rec = newLimitedSink(s, limit)
		return rec, nil
	})
	st.SetLogging(*log)
	st.Configure(pr.Apply)

	if err := st.Start(tn, *song); err != nil {
		return err
	}

	fmt.Printf("recording %s to %s\n", tn, output)
	interrupted := capture(st, rec, sync)

	if err := rec.closeErr; err != nil {
		return err
	}
	if interrupted {
		return errors.New("recording interrupted")
	}

	fmt.Printf("recorded %.1f seconds\n", float64(rec.written)/float64(streamer.Frequency*pcm.BytesPerFrame))

	return nil
}

// capture waits until the limited sink is full, the tune ends or the user
// interrupts. the streamer is stopped on return.
func capture(st *streamer.Streamer, rec *limitedSink, sync *mainSync) bool {
	sync.state <- stateRequest{req: reqNoIntSig}
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	tck := time.NewTicker(100 * time.Millisecond)
	defer tck.Stop()

	var interrupted bool

	done := false
	for !done {
		select {
		case <-rec.full:
			done = true
		case <-intChan:
			interrupted = true
			done = true
		case <-tck.C:
			done = st.State() == player.Stopped && !st.Stopping()
		}
	}

	// stopping the streamer closes the sink, which finalises any file
	st.Stop()

	return interrupted
}

func audioDigest(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	song := md.AddInt("song", 0, "song to digest. zero for the tune's start song")
	seconds := md.AddInt("seconds", 10, "length of audio to digest in seconds")
	prefsOverride := md.AddString("prefs", "", "preferences to override for this session. eg. player.optimisation::0")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("a SID file is required for %s mode", md)
	}
	if *seconds <= 0 {
		return fmt.Errorf("digest length must be positive")
	}

	tn, err := tune.Load(md.GetArg(0))
	if err != nil {
		return err
	}

	pr, err := loadPreferences(*prefsOverride)
	if err != nil {
		return err
	}

	dig := digest.NewAudio()
	rec := newLimitedSink(dig, *seconds*streamer.Frequency*pcm.BytesPerFrame)

	st := streamer.NewStreamer(func(_ int, _ int) (streamer.Sink, error) {
		return rec, nil
	})
	st.SetLogging(false)
	st.Configure(pr.Apply)

	if err := st.Start(tn, *song); err != nil {
		return err
	}

	if capture(st, rec, sync) {
		return errors.New("digest interrupted")
	}

	fmt.Printf("%s  %s song %d (%d bytes)\n", dig.Hash(), md.GetArg(0), tn.CurrentSong(), dig.Length())

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information from version control system (if available)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v, r, _ := version.Version()
	fmt.Printf("%s %s\n", version.ApplicationName, v)
	if *revision {
		fmt.Println(r)
	}

	return nil
}
