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

package tune

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"github.com/jetsetilly/sidstreamer/curated"
)

// Error patterns returned by Parse() and Load().
const (
	NotSID      = "tune: not a SID file"
	Malformed   = "tune: malformed %s"
	Unsupported = "tune: unsupported %s"
	FileError   = "tune: %v"
)

// Format of the file.
const (
	FormatPSID = "PSID"
	FormatRSID = "RSID"
)

// header offsets. all multi-byte values are big-endian.
const (
	offsetMagic      = 0x00
	offsetVersion    = 0x04
	offsetDataOffset = 0x06
	offsetLoad       = 0x08
	offsetInit       = 0x0a
	offsetPlay       = 0x0c
	offsetSongs      = 0x0e
	offsetStartSong  = 0x10
	offsetSpeed      = 0x12
	offsetName       = 0x16
	offsetAuthor     = 0x36
	offsetReleased   = 0x56
	offsetFlags      = 0x76
	offsetSecondSID  = 0x7a

	stringLength = 32

	headerLengthV1 = 0x76
	headerLengthV2 = 0x7c
)

// flag bits in the version 2 header.
const (
	flagMUS         = 0x0001
	flagBASIC       = 0x0002
	flagClockShift  = 2
	flagModelShift  = 4
	flagModel2Shift = 6
)

// maximum number of songs in a file.
const MaxSongs = 256

// Clock hint in the header.
type Clock int

// List of valid Clock values.
const (
	ClockUnknown Clock = iota
	ClockPAL
	ClockNTSC
	ClockAny
)

func (c Clock) String() string {
	switch c {
	case ClockPAL:
		return "PAL"
	case ClockNTSC:
		return "NTSC"
	case ClockAny:
		return "PAL/NTSC"
	}
	return "unknown"
}

// SIDModel hint in the header.
type SIDModel int

// List of valid SIDModel values.
const (
	ModelUnknown SIDModel = iota
	Model6581
	Model8580
	ModelAny
)

func (m SIDModel) String() string {
	switch m {
	case Model6581:
		return "6581"
	case Model8580:
		return "8580"
	case ModelAny:
		return "6581/8580"
	}
	return "unknown"
}

// Info is the information in the header of the file.
type Info struct {
	Format  string
	Version int

	Name     string
	Author   string
	Released string

	// the load address is never zero. if the header value is zero the load
	// address is taken from the first two bytes of the data
	LoadAddress uint16
	InitAddress uint16
	PlayAddress uint16

	Songs     int
	StartSong int

	// one bit per song. a set bit means the song is played with the CIA
	// timer rather than at the frame rate. songs above 32 use bit 31
	Speed uint32

	Flags    uint16
	Clock    Clock
	SIDModel SIDModel

	// address of the second SID. zero if the tune is for a single SID
	SecondSID      uint16
	SecondSIDModel SIDModel

	// SHA1 of the file
	Hash string
}

// Tune is a parsed SID file.
type Tune struct {
	Info Info

	// the program. does not include the embedded load address
	Data []byte

	song int
}

func (tn *Tune) String() string {
	return fmt.Sprintf("%s by %s (%s)", tn.Info.Name, tn.Info.Author, tn.Info.Released)
}

// latin1 converts a NUL terminated ISO-8859-1 field to a string.
func latin1(b []byte) string {
	s := strings.Builder{}
	for _, c := range b {
		if c == 0 {
			break
		}
		s.WriteRune(rune(c))
	}
	return strings.TrimSpace(s.String())
}

// Load reads and parses the file.
func Load(filename string) (*Tune, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(FileError, err)
	}
	return Parse(data)
}

// Parse the contents of a SID file. The current song is the start song given
// in the header.
func Parse(data []byte) (*Tune, error) {
	if len(data) < 4 {
		return nil, curated.Errorf(NotSID)
	}

	var info Info

	info.Format = string(data[offsetMagic : offsetMagic+4])
	if info.Format != FormatPSID && info.Format != FormatRSID {
		return nil, curated.Errorf(NotSID)
	}

	if len(data) < headerLengthV1 {
		return nil, curated.Errorf(Malformed, "header")
	}

	be := binary.BigEndian
	info.Version = int(be.Uint16(data[offsetVersion:]))
	if info.Version < 1 || info.Version > 4 {
		return nil, curated.Errorf(Unsupported, fmt.Sprintf("version (%d)", info.Version))
	}
	if info.Format == FormatRSID && info.Version < 2 {
		return nil, curated.Errorf(Malformed, "RSID version")
	}

	dataOffset := int(be.Uint16(data[offsetDataOffset:]))
	expectedOffset := headerLengthV2
	if info.Version == 1 {
		expectedOffset = headerLengthV1
	}
	if dataOffset != expectedOffset {
		return nil, curated.Errorf(Malformed, fmt.Sprintf("data offset (%#04x)", dataOffset))
	}
	if len(data) <= dataOffset {
		return nil, curated.Errorf(Malformed, "data")
	}

	info.LoadAddress = be.Uint16(data[offsetLoad:])
	info.InitAddress = be.Uint16(data[offsetInit:])
	info.PlayAddress = be.Uint16(data[offsetPlay:])
	info.Songs = int(be.Uint16(data[offsetSongs:]))
	info.StartSong = int(be.Uint16(data[offsetStartSong:]))
	info.Speed = be.Uint32(data[offsetSpeed:])
	info.Name = latin1(data[offsetName : offsetName+stringLength])
	info.Author = latin1(data[offsetAuthor : offsetAuthor+stringLength])
	info.Released = latin1(data[offsetReleased : offsetReleased+stringLength])

	if info.Version >= 2 {
		info.Flags = be.Uint16(data[offsetFlags:])
		info.Clock = Clock((info.Flags >> flagClockShift) & 0x03)
		info.SIDModel = SIDModel((info.Flags >> flagModelShift) & 0x03)
		if info.Flags&flagMUS != 0 {
			return nil, curated.Errorf(Unsupported, "MUS data")
		}
		if info.Format == FormatRSID && info.Flags&flagBASIC != 0 {
			return nil, curated.Errorf(Unsupported, "BASIC program")
		}
	}

	if info.Version >= 3 {
		// the second SID address is encoded as the middle two digits of
		// the address. only even values in the I/O area are valid
		b := data[offsetSecondSID]
		if b != 0 {
			if b&0x01 != 0 || !(b >= 0x42 && b <= 0x7f || b >= 0xe0 && b <= 0xfe) {
				return nil, curated.Errorf(Malformed, fmt.Sprintf("second SID address ($d%02x0)", b))
			}
			info.SecondSID = 0xd000 | uint16(b)<<4
			info.SecondSIDModel = SIDModel((info.Flags >> flagModel2Shift) & 0x03)
			if info.SecondSIDModel == ModelUnknown {
				info.SecondSIDModel = info.SIDModel
			}
		}
	}

	if info.Songs < 1 || info.Songs > MaxSongs {
		return nil, curated.Errorf(Malformed, fmt.Sprintf("song count (%d)", info.Songs))
	}
	if info.StartSong < 1 || info.StartSong > info.Songs {
		info.StartSong = 1
	}

	program := data[dataOffset:]
	if info.LoadAddress == 0 {
		if len(program) < 3 {
			return nil, curated.Errorf(Malformed, "data")
		}
		info.LoadAddress = binary.LittleEndian.Uint16(program)
		program = program[2:]
	} else if info.Format == FormatRSID {
		return nil, curated.Errorf(Malformed, "RSID load address")
	}

	if int(info.LoadAddress)+len(program) > 0x10000 {
		return nil, curated.Errorf(Malformed, "data length")
	}

	if info.InitAddress == 0 {
		info.InitAddress = info.LoadAddress
	}

	info.Hash = fmt.Sprintf("%x", sha1.Sum(data))

	tn := &Tune{
		Info: info,
		Data: append([]byte{}, program...),
	}
	tn.song = info.StartSong

	return tn, nil
}

// SelectSong changes the current song. Song numbers start at one. Zero
// selects the start song given in the header. Other values are clamped to the
// number of songs. Returns the selected song.
func (tn *Tune) SelectSong(song int) int {
	if song == 0 {
		song = tn.Info.StartSong
	}
	tn.song = max(1, min(song, tn.Info.Songs))
	return tn.song
}

// CurrentSong returns the number of the current song.
func (tn *Tune) CurrentSong() int {
	return tn.song
}

// Songs returns the number of songs in the tune.
func (tn *Tune) Songs() int {
	return tn.Info.Songs
}

// Stereo returns true if the tune is for two SID chips.
func (tn *Tune) Stereo() bool {
	return tn.Info.SecondSID != 0
}

// NextSong selects the next song. Returns false if the current song is the
// last song, in which case the selection is not changed.
func (tn *Tune) NextSong() bool {
	if tn.song >= tn.Info.Songs {
		return false
	}
	tn.song++
	return true
}

// PrevSong selects the previous song. Returns false if the current song is
// the first song, in which case the selection is not changed.
func (tn *Tune) PrevSong() bool {
	if tn.song <= 1 {
		return false
	}
	tn.song--
	return true
}

// SpeedCIA returns true if the song should be played at the speed of the CIA
// timer rather than at the frame rate. RSID tunes always use the CIA.
func (tn *Tune) SpeedCIA(song int) bool {
	if tn.Info.Format == FormatRSID {
		return true
	}
	bit := max(0, min(song-1, 31))
	return tn.Info.Speed&(1<<bit) != 0
}

// MemtopData returns the address of the last byte of the program.
func (tn *Tune) MemtopData() uint16 {
	return tn.Info.LoadAddress + uint16(len(tn.Data)-1)
}
