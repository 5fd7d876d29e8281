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
	"errors"
	"fmt"
	"io"

	"github.com/jetsetilly/sidstreamer/curated"
)

// Error patterns returned by the Decoder. Test with curated.Is().
const (
	Truncated    = "snapshot: truncated"
	BadTag       = "snapshot: expected block %q"
	BadLength    = "snapshot: length out of range (%d)"
	Inconsistent = "snapshot: %s"
)

// Decoder reads values from an io.Reader.
type Decoder struct {
	r   io.Reader
	err error
	buf [8]byte
}

// NewDecoder is the preferred method of initialisation for the Decoder type.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Err returns the first error encountered by the Decoder.
func (dec *Decoder) Err() error {
	return dec.err
}

// Fail sets the sticky error if one has not already been set. Used by the
// restore functions of individual chips to report inconsistent values.
func (dec *Decoder) Fail(err error) {
	if dec.err == nil {
		dec.err = err
	}
}

// Failf is a convenience function that creates a curated error with the
// Inconsistent pattern. The detail is formatted with fmt.Sprintf().
func (dec *Decoder) Failf(format string, args ...any) {
	dec.Fail(curated.Errorf(Inconsistent, fmt.Sprintf(format, args...)))
}

func (dec *Decoder) read(b []byte) bool {
	if dec.err != nil {
		clear(b)
		return false
	}
	if _, err := io.ReadFull(dec.r, b); err != nil {
		clear(b)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			dec.err = curated.Errorf(Truncated)
		} else {
			dec.err = curated.Errorf("snapshot: %v", err)
		}
		return false
	}
	return true
}

// Uint8 reads a single byte.
func (dec *Decoder) Uint8() uint8 {
	dec.read(dec.buf[:1])
	return dec.buf[0]
}

// Bool reads a boolean. Any value other than zero or one is an error.
func (dec *Decoder) Bool() bool {
	v := dec.Uint8()
	if v > 1 {
		dec.Failf("boolean value out of range")
		return false
	}
	return v == 1
}

// Uint16 reads a 16 bit value.
func (dec *Decoder) Uint16() uint16 {
	dec.read(dec.buf[:2])
	return binary.LittleEndian.Uint16(dec.buf[:])
}

// Uint32 reads a 32 bit value.
func (dec *Decoder) Uint32() uint32 {
	dec.read(dec.buf[:4])
	return binary.LittleEndian.Uint32(dec.buf[:])
}

// Uint64 reads a 64 bit value.
func (dec *Decoder) Uint64() uint64 {
	dec.read(dec.buf[:8])
	return binary.LittleEndian.Uint64(dec.buf[:])
}

// Int32 reads a signed 32 bit value.
func (dec *Decoder) Int32() int32 {
	return int32(dec.Uint32())
}

// Int64 reads a signed 64 bit value.
func (dec *Decoder) Int64() int64 {
	return int64(dec.Uint64())
}

// Bytes reads a length prefixed byte slice.
func (dec *Decoder) Bytes() []byte {
	n := dec.Uint32()
	if dec.err != nil {
		return nil
	}
	if n > MaxBlob {
		dec.Fail(curated.Errorf(BadLength, n))
		return nil
	}
	b := make([]byte, n)
	if !dec.read(b) {
		return nil
	}
	return b
}

// String reads a length prefixed string.
func (dec *Decoder) String() string {
	return string(dec.Bytes())
}

// ExpectTag reads a fixed string and fails if it does not match tag.
func (dec *Decoder) ExpectTag(tag string) {
	b := make([]byte, len(tag))
	if !dec.read(b) {
		return
	}
	if string(b) != tag {
		dec.Fail(curated.Errorf(BadTag, tag))
	}
}
