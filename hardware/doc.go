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

// Package hardware is the base package for the C64 emulation used to play SID
// tunes. Its sub-packages contain the parts of the machine that a tune can
// reach:
//
//	cpu        the 6510 processor
//	memory     the memory map, with RAM under the I/O area
//	sid        the sound chip
//	cia        the two complex interface adapters and their timers
//	vic        enough of the video chip to satisfy tunes that probe it
//	scheduler  the event queue that drives all of the above
//	clocks     the PAL and NTSC clock rates
//
// The machine is assembled and run by the player package.
package hardware
