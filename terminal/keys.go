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

// Command is the action requested by a key press.
type Command int

// List of valid Command values.
const (
	NoCommand Command = iota
	TogglePause
	NextSong
	PrevSong
	VolumeUp
	VolumeDown
	SaveSnapshot
	Quit
)

// ASCII codes for control keys.
const (
	KeyInterrupt = 3 // end-of-text character
	KeyEsc       = 27
)

// Decode the key press into a Command.
func Decode(key byte) Command {
	switch key {
	case ' ':
		return TogglePause
	case 'n', 'N', '>':
		return NextSong
	case 'p', 'P', '<':
		return PrevSong
	case '+', '=':
		return VolumeUp
	case '-', '_':
		return VolumeDown
	case 's', 'S':
		return SaveSnapshot
	case 'q', 'Q', KeyEsc, KeyInterrupt:
		return Quit
	}
	return NoCommand
}

// Help describes the keys understood by Decode().
const Help = "space: pause  n/p: next/previous song  +/-: volume  s: save  q: quit"
