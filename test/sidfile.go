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

package test

import "encoding/binary"

// SIDHeader describes the header of a PSID or RSID file created by SIDFile().
type SIDHeader struct {
	Magic     string
	Version   uint16
	Load      uint16
	Init      uint16
	Play      uint16
	Songs     uint16
	Start     uint16
	Speed     uint32
	Flags     uint16
	SecondSID uint8
}

// SIDFile returns the bytes of a SID file with the header and program. The
// name, author and released fields are filled with placeholder text.
func SIDFile(h SIDHeader, program []byte) []byte {
	be := binary.BigEndian

	offset := 0x7c
	if h.Version == 1 {
		offset = 0x76
	}
	data := make([]byte, offset)

	copy(data, h.Magic)
	be.PutUint16(data[0x04:], h.Version)
	be.PutUint16(data[0x06:], uint16(offset))
	be.PutUint16(data[0x08:], h.Load)
	be.PutUint16(data[0x0a:], h.Init)
	be.PutUint16(data[0x0c:], h.Play)
	be.PutUint16(data[0x0e:], h.Songs)
	be.PutUint16(data[0x10:], h.Start)
	be.PutUint32(data[0x12:], h.Speed)
	copy(data[0x16:], "Test Tune")
	copy(data[0x36:], "Tester")
	copy(data[0x56:], "2024 Nobody")
	if h.Version >= 2 {
		be.PutUint16(data[0x76:], h.Flags)
		data[0x7a] = h.SecondSID
	}

	return append(data, program...)
}

// SIDProgram is a small tune for use with SIDFile(). It should be loaded at
// $1000 with the init routine at $1000 and the play routine at $1024.
//
// The init routine starts a sawtooth on the first voice of the SID at $d400
// and the SID at $d420, with the pitch depending on the song number. The
// play routine increments the byte at $0020 and writes it to the low byte
// of the first voice's frequency.
var SIDProgram = []byte{
	0x18,       // CLC
	0x69, 0x10, // ADC #$10
	0x8d, 0x01, 0xd4, // STA $D401
	0x69, 0x07, // ADC #$07
	0x8d, 0x21, 0xd4, // STA $D421
	0xa9, 0x0f, // LDA #$0F
	0x8d, 0x18, 0xd4, // STA $D418
	0x8d, 0x38, 0xd4, // STA $D438
	0xa9, 0xf0, // LDA #$F0
	0x8d, 0x06, 0xd4, // STA $D406
	0x8d, 0x26, 0xd4, // STA $D426
	0xa9, 0x21, // LDA #$21
	0x8d, 0x04, 0xd4, // STA $D404
	0x8d, 0x24, 0xd4, // STA $D424
	0x60, // RTS

	0xe6, 0x20, // INC $20
	0xa5, 0x20, // LDA $20
	0x8d, 0x00, 0xd4, // STA $D400
	0x60, // RTS
}

// SIDProgram addresses.
const (
	SIDProgramLoad = 0x1000
	SIDProgramInit = 0x1000
	SIDProgramPlay = 0x1024
)
