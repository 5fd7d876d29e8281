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

// Package streamer plays a tune in real time. A Streamer owns a single
// player.Player and runs a producer goroutine that repeatedly asks the
// Player for a block of samples, prepares the block for an audio sink and
// submits it.
//
// The producer only submits a block when the sink has no more than
// QueueThreshold blocks queued. This keeps the latency between a control
// operation and the audible result to a few blocks and means that the sink
// is never flooded.
//
// Sinks always receive two channels of signed 16 bit little-endian samples
// unless the Player is configured otherwise with Configure(). A stereo
// Player is folded to a single channel, which is then duplicated.
//
// All methods of the Streamer are safe to call from any goroutine. Control
// operations are serialised.
package streamer
