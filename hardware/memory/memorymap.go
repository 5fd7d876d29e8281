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

// Address ranges of the I/O area.
const (
	OriginIO = 0xd000
	MemtopIO = 0xdfff

	OriginVIC = 0xd000
	MemtopVIC = 0xd3ff

	OriginSID = 0xd400
	MemtopSID = 0xd7ff

	OriginColour = 0xd800
	MemtopColour = 0xdbff

	OriginCIA1 = 0xdc00
	MemtopCIA1 = 0xdcff

	OriginCIA2 = 0xdd00
	MemtopCIA2 = 0xddff

	OriginExpansion = 0xde00
	MemtopExpansion = 0xdfff
)

// Register masks for the mirrored chips.
const (
	maskVIC = 0x3f
	maskSID = 0x1f
	maskCIA = 0x0f
)

// Processor port addresses and their values after reset.
const (
	PortDirection = 0x00
	PortData      = 0x01

	DefaultDirection = 0x2f
	DefaultData      = 0x37
)

// the bits of the processor port that float high when configured as inputs.
const portPullUps = 0x17
