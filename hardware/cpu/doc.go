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

// Package cpu emulates the 6510 processor of the Commodore 64. The 6510 is a
// 6502 with an additional I/O port, which is emulated by the memory package.
//
// The emulation works one instruction at a time. Step() executes the next
// instruction, or enters an interrupt handler if an interrupt is pending, and
// returns the number of cycles used. Memory accesses within an instruction
// are not individually timed.
//
// All documented opcodes are supported, including the NMOS behaviour of
// decimal mode arithmetic. The stable undocumented opcodes are supported, as
// are approximations of the unstable ones. The JAM opcodes halt the
// processor, after which Step() does nothing until Reset() is called.
package cpu
