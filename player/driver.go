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

package player

import (
	"github.com/jetsetilly/sidstreamer/hardware/cpu"
	"github.com/jetsetilly/sidstreamer/hardware/memory"
)

// Addresses used by the driver. The IRQ entry point and the two exits are at
// the same addresses as in the KERNAL so that tunes that jump to them
// directly work as expected.
const (
	driverInit  = 0xff00
	driverPlay  = 0xff10
	driverIRQ   = 0xff48
	driverNMI   = 0xfe43
	kernalIRQ   = 0xea31
	kernalExit  = 0xea81
	vectorIRQ   = 0x0314
	vectorBRK   = 0x0316
	vectorNMI   = 0x0318
	idleAddress = driverInit + 7
)

// the CIA timer value set by the KERNAL. approximately 60Hz on a PAL machine.
const kernalTimer = 0x4025

// 6502 opcodes used by the driver.
const (
	opPHA    = 0x48
	opPLA    = 0x68
	opTAX    = 0xaa
	opTXA    = 0x8a
	opTAY    = 0xa8
	opTYA    = 0x98
	opSEI    = 0x78
	opCLI    = 0x58
	opLDAImm = 0xa9
	opLDAAbs = 0xad
	opJSR    = 0x20
	opJMP    = 0x4c
	opJMPInd = 0x6c
	opRTI    = 0x40
)

func lo(a uint16) uint8 { return uint8(a) }
func hi(a uint16) uint8 { return uint8(a >> 8) }

// installDriver writes the driver to RAM. The driver calls the init routine
// of the tune with the song number in the accumulator and then waits in an
// idle loop for interrupts. If the tune has a play address the IRQ vector
// calls it on every interrupt.
//
// The reset vector points to the init sequence so that a reset of the CPU
// starts the driver.
func installDriver(mem *memory.Memory, initAddress, playAddress uint16, song int) {
	poke := func(address uint16, data ...uint8) {
		mem.Load(address, data)
	}
	vector := func(address uint16, target uint16) {
		poke(address, lo(target), hi(target))
	}

	// init sequence ends with an idle loop
	poke(driverInit,
		opSEI,
		opLDAImm, uint8(song-1),
		opJSR, lo(initAddress), hi(initAddress),
		opCLI,
		opJMP, lo(idleAddress), hi(idleAddress),
	)

	poke(driverPlay,
		opJSR, lo(playAddress), hi(playAddress),
		opJMP, lo(kernalIRQ), hi(kernalIRQ),
	)

	// KERNAL IRQ entry point. the BRK test is omitted
	poke(driverIRQ,
		opPHA, opTXA, opPHA, opTYA, opPHA,
		opJMPInd, lo(vectorIRQ), hi(vectorIRQ),
	)

	// KERNAL IRQ exit. acknowledges the CIA interrupt
	poke(kernalIRQ,
		opLDAAbs, 0x0d, 0xdc,
		opJMP, lo(kernalExit), hi(kernalExit),
	)
	poke(kernalExit,
		opPLA, opTAY, opPLA, opTAX, opPLA, opRTI,
	)

	poke(driverNMI,
		opJMPInd, lo(vectorNMI), hi(vectorNMI),
		opRTI,
	)

	if playAddress != 0 {
		vector(vectorIRQ, driverPlay)
	} else {
		vector(vectorIRQ, kernalIRQ)
	}
	vector(vectorBRK, kernalExit)
	vector(vectorNMI, driverNMI+3)

	vector(cpu.NMIVector, driverNMI)
	vector(cpu.ResetVector, driverInit)
	vector(cpu.IRQVector, driverIRQ)
}
