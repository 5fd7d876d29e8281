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

// Package cia implements the MOS 6526 Complex Interface Adapter as found in
// the Commodore 64. Two instances are fitted to the machine. The first
// generates the CPU IRQ and, through port B, drives the light-pen input of
// the VIC-II. The second generates the CPU NMI.
//
// The two 16 bit interval timers are the part of the chip that matters for
// music playback. Timer counters are not decremented every cycle. Instead
// the cycle of the next underflow is calculated and an event is scheduled for
// that cycle. The counter is brought up to date only when the CPU reads or
// writes a timer register.
//
// The time-of-day clock registers are stored but do not count. Serial port
// shifts are not emulated.
package cia
