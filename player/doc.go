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

// Package player drives an emulated C64 to play a SID tune. The Player type
// owns the scheduler and every chip of the machine. It loads a tune into
// memory along with a small driver that calls the tune's init and play
// routines, and it produces audio samples on request with Play().
//
// The Player is a state machine:
//
//	Stopped --Load+Start--> Playing --Pause--> Paused --Resume--> Playing
//	Playing/Paused --Stop--> Stopped
//
// The state can be queried from any goroutine. Play() must only be called
// from one goroutine at a time. Other goroutines can wait for an in-progress
// call to Play() to finish with WaitPlay().
//
// Save() writes the entire state of the machine. Restore() creates a new
// Player from that state. Playback of a restored Player produces exactly the
// same samples as the original Player would have produced.
package player
