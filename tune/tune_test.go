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

package tune_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/sidstreamer/curated"
	"github.com/jetsetilly/sidstreamer/snapshot"
	"github.com/jetsetilly/sidstreamer/test"
	"github.com/jetsetilly/sidstreamer/tune"
)

type header struct {
	magic     string
	version   uint16
	load      uint16
	init      uint16
	play      uint16
	songs     uint16
	start     uint16
	speed     uint32
	flags     uint16
	secondSID uint8
}

// build a file with the header and program
func build(h header, program []byte) []byte {
	be := binary.BigEndian

	offset := 0x7c
	if h.version == 1 {
		offset = 0x76
	}
	data := make([]byte, offset)

	copy(data, h.magic)
	be.PutUint16(data[0x04:], h.version)
	be.PutUint16(data[0x06:], uint16(offset))
	be.PutUint16(data[0x08:], h.load)
	be.PutUint16(data[0x0a:], h.init)
	be.PutUint16(data[0x0c:], h.play)
	be.PutUint16(data[0x0e:], h.songs)
	be.PutUint16(data[0x10:], h.start)
	be.PutUint32(data[0x12:], h.speed)
	copy(data[0x16:], "Test Tune")
	copy(data[0x36:], "Tester")
	copy(data[0x56:], "2024 Nobody")
	if h.version >= 2 {
		be.PutUint16(data[0x76:], h.flags)
		data[0x7a] = h.secondSID
	}

	return append(data, program...)
}

var program = []byte{0x60, 0x60}

func twoSongs() header {
	return header{
		magic:   "PSID",
		version: 2,
		load:    0x1000,
		init:    0x1000,
		play:    0x1001,
		songs:   2,
		start:   1,
	}
}

func TestParse(t *testing.T) {
	h := twoSongs()
	h.flags = 0x0014 // PAL and 6581
	tn, err := tune.Parse(build(h, program))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, tn.Info.Format, tune.FormatPSID)
	test.ExpectEquality(t, tn.Info.Name, "Test Tune")
	test.ExpectEquality(t, tn.Info.Author, "Tester")
	test.ExpectEquality(t, tn.Info.Released, "2024 Nobody")
	test.ExpectEquality(t, tn.Info.LoadAddress, uint16(0x1000))
	test.ExpectEquality(t, tn.Info.PlayAddress, uint16(0x1001))
	test.ExpectEquality(t, tn.Info.Clock, tune.ClockPAL)
	test.ExpectEquality(t, tn.Info.SIDModel, tune.Model6581)
	test.ExpectEquality(t, string(tn.Data), string(program))
	test.ExpectEquality(t, tn.MemtopData(), uint16(0x1001))
	test.ExpectEquality(t, tn.CurrentSong(), 1)
	test.ExpectFailure(t, tn.Stereo())
	test.ExpectEquality(t, len(tn.Info.Hash), 40)
}

func TestVersion1(t *testing.T) {
	h := twoSongs()
	h.version = 1
	tn, err := tune.Parse(build(h, program))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tn.Info.Clock, tune.ClockUnknown)
}

func TestEmbeddedLoadAddress(t *testing.T) {
	h := twoSongs()
	h.load = 0
	h.init = 0
	tn, err := tune.Parse(build(h, []byte{0x00, 0xc0, 0x60}))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tn.Info.LoadAddress, uint16(0xc000))
	test.ExpectEquality(t, tn.Info.InitAddress, uint16(0xc000))
	test.ExpectEquality(t, string(tn.Data), "\x60")
}

func TestMalformed(t *testing.T) {
	_, err := tune.Parse([]byte("MThd"))
	test.ExpectSuccess(t, curated.Is(err, tune.NotSID))

	h := twoSongs()
	data := build(h, program)
	_, err = tune.Parse(data[:0x50])
	test.ExpectSuccess(t, curated.Is(err, tune.Malformed))

	_, err = tune.Parse(data[:0x7c])
	test.ExpectSuccess(t, curated.Is(err, tune.Malformed))

	h.songs = 0
	_, err = tune.Parse(build(h, program))
	test.ExpectSuccess(t, curated.Is(err, tune.Malformed))

	h = twoSongs()
	h.version = 5
	_, err = tune.Parse(build(h, program))
	test.ExpectSuccess(t, curated.Is(err, tune.Unsupported))

	h = twoSongs()
	h.load = 0xffff
	_, err = tune.Parse(build(h, program))
	test.ExpectSuccess(t, curated.Is(err, tune.Malformed))

	h = twoSongs()
	h.flags = 0x0001
	_, err = tune.Parse(build(h, program))
	test.ExpectSuccess(t, curated.Is(err, tune.Unsupported))

	// RSID must embed the load address
	h = twoSongs()
	h.magic = "RSID"
	_, err = tune.Parse(build(h, program))
	test.ExpectSuccess(t, curated.Is(err, tune.Malformed))
}

func TestSecondSID(t *testing.T) {
	h := twoSongs()
	h.version = 3
	h.flags = 0x0020 // 8580
	h.secondSID = 0x42
	tn, err := tune.Parse(build(h, program))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, tn.Stereo())
	test.ExpectEquality(t, tn.Info.SecondSID, uint16(0xd420))
	test.ExpectEquality(t, tn.Info.SecondSIDModel, tune.Model8580)

	h.secondSID = 0x43
	_, err = tune.Parse(build(h, program))
	test.ExpectSuccess(t, curated.Is(err, tune.Malformed))
}

func TestSongSelection(t *testing.T) {
	tn, err := tune.Parse(build(twoSongs(), program))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, tn.SelectSong(0), 1)
	test.ExpectEquality(t, tn.SelectSong(2), 2)
	test.ExpectEquality(t, tn.SelectSong(3), 2)
	test.ExpectEquality(t, tn.SelectSong(-1), 1)

	// navigation clamps without wrapping
	test.ExpectFailure(t, tn.PrevSong())
	test.ExpectEquality(t, tn.CurrentSong(), 1)
	test.ExpectSuccess(t, tn.NextSong())
	test.ExpectEquality(t, tn.CurrentSong(), 2)
	test.ExpectFailure(t, tn.NextSong())
	test.ExpectEquality(t, tn.CurrentSong(), 2)
}

func TestStartSong(t *testing.T) {
	h := twoSongs()
	h.start = 2
	tn, err := tune.Parse(build(h, program))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tn.CurrentSong(), 2)
	tn.SelectSong(1)
	test.ExpectEquality(t, tn.SelectSong(0), 2)

	// out of range start song is treated as song one
	h.start = 9
	tn, err = tune.Parse(build(h, program))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tn.Info.StartSong, 1)
}

func TestSpeed(t *testing.T) {
	h := twoSongs()
	h.songs = 40
	h.speed = 0x80000002
	tn, err := tune.Parse(build(h, program))
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, tn.SpeedCIA(1))
	test.ExpectSuccess(t, tn.SpeedCIA(2))
	test.ExpectSuccess(t, tn.SpeedCIA(32))
	test.ExpectSuccess(t, tn.SpeedCIA(40))
}

func TestLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.sid")
	test.DemandSuccess(t, os.WriteFile(filename, build(twoSongs(), program), 0o644))

	tn, err := tune.Load(filename)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tn.Songs(), 2)

	_, err = tune.Load(filepath.Join(t.TempDir(), "missing.sid"))
	test.ExpectSuccess(t, curated.Is(err, tune.FileError))
}

func TestSaveRestore(t *testing.T) {
	tn, err := tune.Parse(build(twoSongs(), program))
	test.DemandSuccess(t, err)
	tn.SelectSong(2)

	var b bytes.Buffer
	enc := snapshot.NewEncoder(&b)
	tn.Save(enc)
	test.DemandSuccess(t, enc.Err())

	dec := snapshot.NewDecoder(&b)
	r := tune.Restore(dec)
	test.DemandSuccess(t, dec.Err())
	test.ExpectEquality(t, r.Info, tn.Info)
	test.ExpectSuccess(t, bytes.Equal(r.Data, tn.Data))
	test.ExpectEquality(t, r.CurrentSong(), 2)
}
