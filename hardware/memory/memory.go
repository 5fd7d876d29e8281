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

package memory

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/sidstreamer/snapshot"
)

// Chip is implemented by every device in the I/O area. The register number
// is the offset from the base address of the chip and has not been masked.
type Chip interface {
	Read(reg uint16) uint8
	Write(reg uint16, v uint8)
}

// Memory is the CPU address space.
type Memory struct {
	RAM [0x10000]uint8

	direction uint8
	data      uint8

	vic  Chip
	sid  Chip
	cia1 Chip
	cia2 Chip

	// the optional second SID. the base address can be anywhere in the SID
	// or expansion areas
	sid2     Chip
	sid2Base uint16
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory(vic, sid, cia1, cia2 Chip) *Memory {
	mem := &Memory{
		vic:  vic,
		sid:  sid,
		cia1: cia1,
		cia2: cia2,
	}
	mem.Reset()
	return mem
}

// AttachSecondSID maps a second SID chip at the base address. A nil chip
// removes the second SID.
func (mem *Memory) AttachSecondSID(base uint16, sid Chip) {
	mem.sid2 = sid
	mem.sid2Base = base &^ maskSID
}

// Reset clears RAM and sets the processor port to its power-on state.
func (mem *Memory) Reset() {
	clear(mem.RAM[:])
	mem.direction = DefaultDirection
	mem.data = DefaultData
}

// IOVisible returns true if the processor port selects the I/O area.
func (mem *Memory) IOVisible() bool {
	v := mem.portValue()
	return v&0x03 != 0 && v&0x04 != 0
}

func (mem *Memory) portValue() uint8 {
	return mem.data&mem.direction | portPullUps&^mem.direction
}

func (mem *Memory) isSID2(address uint16) bool {
	return mem.sid2 != nil && address&^maskSID == mem.sid2Base
}

// Read implements the cpu.Memory interface.
func (mem *Memory) Read(address uint16) uint8 {
	switch address {
	case PortDirection:
		return mem.direction
	case PortData:
		return mem.portValue()
	}

	if address < OriginIO || address > MemtopIO || !mem.IOVisible() {
		return mem.RAM[address]
	}

	if mem.isSID2(address) {
		return mem.sid2.Read(address & maskSID)
	}

	switch {
	case address <= MemtopVIC:
		return mem.vic.Read(address & maskVIC)
	case address <= MemtopSID:
		return mem.sid.Read(address & maskSID)
	case address <= MemtopColour:
		// only the low nibble of colour RAM is connected
		return mem.RAM[address]&0x0f | 0xf0
	case address <= MemtopCIA1:
		return mem.cia1.Read(address & maskCIA)
	case address <= MemtopCIA2:
		return mem.cia2.Read(address & maskCIA)
	}

	// nothing is connected to the expansion port
	return 0xff
}

// Write implements the cpu.Memory interface.
func (mem *Memory) Write(address uint16, v uint8) {
	switch address {
	case PortDirection:
		mem.direction = v
		return
	case PortData:
		mem.data = v
		return
	}

	if address < OriginIO || address > MemtopIO || !mem.IOVisible() {
		mem.RAM[address] = v
		return
	}

	if mem.isSID2(address) {
		mem.sid2.Write(address&maskSID, v)
		return
	}

	switch {
	case address <= MemtopVIC:
		mem.vic.Write(address&maskVIC, v)
	case address <= MemtopSID:
		mem.sid.Write(address&maskSID, v)
	case address <= MemtopColour:
		mem.RAM[address] = v & 0x0f
	case address <= MemtopCIA1:
		mem.cia1.Write(address&maskCIA, v)
	case address <= MemtopCIA2:
		mem.cia2.Write(address&maskCIA, v)
	}
}

// Load copies data into RAM starting at the origin address. Data that would
// extend past the top of memory is discarded. Returns the number of bytes
// copied.
func (mem *Memory) Load(origin uint16, data []uint8) int {
	return copy(mem.RAM[origin:], data)
}

// Poke writes directly to RAM, ignoring the processor port and the I/O area.
func (mem *Memory) Poke(address uint16, v uint8) {
	mem.RAM[address] = v
}

// Peek reads directly from RAM, ignoring the processor port and the I/O
// area.
func (mem *Memory) Peek(address uint16) uint8 {
	return mem.RAM[address]
}

// Hexdump returns the RAM between the two addresses (inclusive) formatted in
// rows of sixteen bytes.
func (mem *Memory) Hexdump(origin uint16, memtop uint16) string {
	s := strings.Builder{}
	s.WriteString("       -0 -1 -2 -3 -4 -5 -6 -7 -8 -9 -A -B -C -D -E -F\n")
	s.WriteString("     ---- -- -- -- -- -- -- -- -- -- -- -- -- -- -- --\n")
	for row := int(origin) &^ 0x0f; row <= int(memtop); row += 16 {
		s.WriteString(fmt.Sprintf("%04X | ", row))
		for x := range 16 {
			a := row + x
			if a < int(origin) || a > int(memtop) {
				s.WriteString("   ")
			} else {
				s.WriteString(fmt.Sprintf(" %02x", mem.RAM[a]))
			}
		}
		s.WriteString("\n")
	}
	return strings.TrimRight(s.String(), "\n")
}

// Save the state of the memory. The state of the attached chips is saved
// separately.
func (mem *Memory) Save(enc *snapshot.Encoder) {
	enc.Tag("MEM")
	enc.Uint8(mem.direction)
	enc.Uint8(mem.data)
	enc.Bytes(mem.RAM[:])
}

// Restore the state written by Save().
func (mem *Memory) Restore(dec *snapshot.Decoder) {
	dec.ExpectTag("MEM")
	mem.direction = dec.Uint8()
	mem.data = dec.Uint8()
	ram := dec.Bytes()
	if dec.Err() != nil {
		return
	}
	if len(ram) != len(mem.RAM) {
		dec.Failf("memory size %d", len(ram))
		return
	}
	copy(mem.RAM[:], ram)
}
