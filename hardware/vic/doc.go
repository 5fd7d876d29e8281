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

// Package vic implements the parts of the MOS 6569/6567 VIC-II that are
// visible to a music player. Nothing is drawn. The raster line is derived
// from the current cycle so that tunes which wait for a particular line see
// it advance at the correct rate. The light-pen latch is supported because
// the light-pen input is wired to port B of the first CIA.
//
// Raster interrupts are not generated. Tunes that rely on them are driven by
// the CIA timer configured by the player instead.
package vic
