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

// Package memory implements the address space of the C64 as seen by the CPU.
// There are 64KiB of RAM, the processor port at addresses $00 and $01 and the
// I/O area at $D000 to $DFFF.
//
// No ROM images are used. The BASIC, KERNAL and character ROM areas always
// read the RAM beneath them. The player places the few KERNAL routines that
// tunes depend on in that RAM.
//
// The I/O area is visible when the processor port selects it, following the
// rule that either of the two low bits must be set along with bit 2.
package memory
