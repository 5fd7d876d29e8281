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

package memory_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/sidstreamer/hardware/memory"
	"github.com/jetsetilly/sidstreamer/snapshot"
	"github.com/jetsetilly/sidstreamer/test"
)

// chip records the most recent access
type chip struct {
	id    uint8
	reg   uint16
	value uint8
}

func (c *chip) Read(reg uint16) uint8 {
	c.reg = reg
	return c.id
}

func (c *chip) Write(reg uint16, v uint8) {
	c.reg = reg
	c.value = v
}

func newMemory() (*memory.Memory, []*chip) {
	chips := []*chip{{id: 1}, {id: 2}, {id: 3}, {id: 4}}
	return memory.NewMemory(chips[0], chips[1], chips[2], chips[3]), chips
}

func TestProcessorPort(t *testing.T) {
	mem, _ := newMemory()
	test.ExpectEquality(t, mem.Read(memory.PortDirection), uint8(memory.DefaultDirection))
	test.ExpectEquality(t, mem.Read(memory.PortData), uint8(memory.DefaultData))
	test.ExpectSuccess(t, mem.IOVisible())

	// port writes do not reach RAM
	mem.Write(memory.PortData, 0x34)
	test.ExpectEquality(t, mem.Peek(memory.PortData), uint8(0x00))
	test.ExpectFailure(t, mem.IOVisible())

	mem.Write(memory.PortData, 0x35)
	test.ExpectSuccess(t, mem.IOVisible())

	// bits configured as inputs float high
	mem.Write(memory.PortDirection, 0x00)
	mem.Write(memory.PortData, 0x00)
	test.ExpectEquality(t, mem.Read(memory.PortData), uint8(0x17))
}

func TestIODispatch(t *testing.T) {
	mem, chips := newMemory()

	test.ExpectEquality(t, mem.Read(0xd012), uint8(1))
	test.ExpectEquality(t, chips[0].reg, uint16(0x12))

	// VIC is mirrored every 64 bytes
	mem.Read(0xd3d2)
	test.ExpectEquality(t, chips[0].reg, uint16(0x12))

	// SID is mirrored every 32 bytes
	mem.Write(0xd738, 0x0f)
	test.ExpectEquality(t, chips[1].reg, uint16(0x18))
	test.ExpectEquality(t, chips[1].value, uint8(0x0f))

	test.ExpectEquality(t, mem.Read(0xdc0d), uint8(3))
	test.ExpectEquality(t, chips[2].reg, uint16(0x0d))

	// CIA is mirrored every 16 bytes
	mem.Write(0xdd14, 0x55)
	test.ExpectEquality(t, chips[3].reg, uint16(0x04))
	test.ExpectEquality(t, chips[3].value, uint8(0x55))

	test.ExpectEquality(t, mem.Read(0xde00), uint8(0xff))

	// colour RAM stores a nibble
	mem.Write(0xd800, 0xab)
	test.ExpectEquality(t, mem.Read(0xd800), uint8(0xfb))

	// I/O writes do not reach RAM
	test.ExpectEquality(t, mem.Peek(0xd738), uint8(0x00))
}

func TestIOHidden(t *testing.T) {
	mem, chips := newMemory()
	mem.Write(memory.PortData, 0x30)

	mem.Write(0xd418, 0x0f)
	test.ExpectEquality(t, chips[1].value, uint8(0x00))
	test.ExpectEquality(t, mem.Read(0xd418), uint8(0x0f))
	test.ExpectEquality(t, mem.Peek(0xd418), uint8(0x0f))
}

func TestSecondSID(t *testing.T) {
	mem, _ := newMemory()
	sid2 := &chip{id: 5}
	mem.AttachSecondSID(0xd420, sid2)

	test.ExpectEquality(t, mem.Read(0xd438), uint8(5))
	test.ExpectEquality(t, sid2.reg, uint16(0x18))
	test.ExpectEquality(t, mem.Read(0xd418), uint8(2))

	// other mirrors still reach the first SID
	test.ExpectEquality(t, mem.Read(0xd440), uint8(2))

	// second SID in the expansion area
	mem.AttachSecondSID(0xde00, sid2)
	mem.Write(0xde04, 0x41)
	test.ExpectEquality(t, sid2.value, uint8(0x41))
	test.ExpectEquality(t, mem.Read(0xde20), uint8(0xff))

	mem.AttachSecondSID(0, nil)
	test.ExpectEquality(t, mem.Read(0xde00), uint8(0xff))
}

func TestLoad(t *testing.T) {
	mem, _ := newMemory()
	n := mem.Load(0xfffe, []uint8{1, 2, 3, 4})
	test.ExpectEquality(t, n, 2)
	test.ExpectEquality(t, mem.Read(0xffff), uint8(2))
}

func TestHexdump(t *testing.T) {
	mem, _ := newMemory()
	mem.Load(0x1000, []uint8{0xde, 0xad})
	s := mem.Hexdump(0x1000, 0x100f)
	test.ExpectSuccess(t, bytes.Contains([]byte(s), []byte("1000 |  de ad 00")))
}

func TestSaveRestore(t *testing.T) {
	mem, _ := newMemory()
	mem.Load(0x0801, []uint8{1, 2, 3})
	mem.Write(memory.PortData, 0x35)

	var b bytes.Buffer
	enc := snapshot.NewEncoder(&b)
	mem.Save(enc)
	test.DemandSuccess(t, enc.Err())

	r, _ := newMemory()
	dec := snapshot.NewDecoder(&b)
	r.Restore(dec)
	test.DemandSuccess(t, dec.Err())
	test.ExpectEquality(t, r.RAM, mem.RAM)
	test.ExpectEquality(t, r.Read(memory.PortData), mem.Read(memory.PortData))
}
