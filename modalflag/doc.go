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

// Package modalflag wraps the flag package of the standard library so that a
// command line can be divided into modes, each with its own set of flags.
//
// Arguments are given with NewArgs() and parsed with Parse(). Flags are added
// before each call to Parse() in the same way as with flag.FlagSet:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("PLAY", "INFO")
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return nil
//	case modalflag.ParseError:
//		return err
//	}
//
// After Parse(), Mode() returns the selected sub-mode. The first sub-mode is
// the default and is selected when the first non-flag argument does not name
// a mode. Mode comparison is case insensitive.
//
// The flags for the selected mode are then added after a call to NewMode()
// and a second call to Parse() processes the arguments that followed the mode
// name:
//
//	md.NewMode()
//	song := md.AddInt("song", 0, "song to play")
//	md.Parse()
//	filename := md.GetArg(0)
//
// Path() returns all the modes selected so far, separated by a slash.
package modalflag
