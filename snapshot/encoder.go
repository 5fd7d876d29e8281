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

package snapshot

import (
	"encoding/binary"
	"io"

	"github.com/jetsetilly/sidstreamer/curated"
)

// MaxBlob is the largest byte slice or string that can be encoded. The limit
// prevents a corrupt length field from causing a huge allocation.
const MaxBlob = 0x20000

// Encoder writes values to an io.Writer.
type Encoder struct {
	w   io.Writer
	err error
	buf [8]byte
}

// NewEncoder is the preferred method of initialisation for the Encoder type.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Err returns the first error encountered by the Encoder.
func (enc *Encoder) Err() error {
	return enc.err
}

func (enc *Encoder) write(b []byte) {
	if enc.err != nil {
		return
	}
	if _, err := enc.w.Write(b); err != nil {
		enc.err = curated.Errorf("snapshot: %v", err)
	}
}

// Uint8 writes a single byte.
func (enc *Encoder) Uint8(v uint8) {
	enc.buf[0] = v
	enc.write(enc.buf[:1])
}

// Bool writes a boolean as a single byte.
func (enc *Encoder) Bool(v bool) {
	if v {
		enc.Uint8(1)
	} else {
		enc.Uint8(0)
	}
}

// Uint16 writes a 16 bit value.
func (enc *Encoder) Uint16(v uint16) {
	binary.LittleEndian.PutUint16(enc.buf[:], v)
	enc.write(enc.buf[:2])
}

// Uint32 writes a 32 bit value.
func (enc *Encoder) Uint32(v uint32) {
	binary.LittleEndian.PutUint32(enc.buf[:], v)
	enc.write(enc.buf[:4])
}

// Uint64 writes a 64 bit value.
func (enc *Encoder) Uint64(v uint64) {
	binary.LittleEndian.PutUint64(enc.buf[:], v)
	enc.write(enc.buf[:8])
}

// Int32 writes a signed 32 bit value.
func (enc *Encoder) Int32(v int32) {
	enc.Uint32(uint32(v))
}

// Int64 writes a signed 64 bit value.
func (enc *Encoder) Int64(v int64) {
	enc.Uint64(uint64(v))
}

// Bytes writes a length prefixed byte slice.
func (enc *Encoder) Bytes(v []byte) {
	if len(v) > MaxBlob {
		if enc.err == nil {
			enc.err = curated.Errorf("snapshot: data too long (%d bytes)", len(v))
		}
		return
	}
	enc.Uint32(uint32(len(v)))
	enc.write(v)
}

// String writes a length prefixed string.
func (enc *Encoder) String(v string) {
	enc.Bytes([]byte(v))
}

// Tag writes a fixed string without a length prefix. Used to mark the start
// of a block so that a misaligned decode is detected early.
func (enc *Encoder) Tag(tag string) {
	enc.write([]byte(tag))
}
