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

// Package digest implements a streamer.Sink that produces a cryptographic hash
// of the audio data submitted to it. The hash can be used to compare the
// output of subsequent runs of a tune. If a new hash differs from a
// previously recorded value then something in the emulation has changed.
//
// The data is hashed in fixed length chunks and the hash of each chunk is
// included in the next, so the final hash does not depend on how the data
// was divided when it was submitted.
package digest
