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

package digest_test

import (
	"testing"

	"github.com/jetsetilly/sidstreamer/digest"
	"github.com/jetsetilly/sidstreamer/streamer"
	"github.com/jetsetilly/sidstreamer/test"
)

// the digest is used as an audio sink
var _ streamer.Sink = (*digest.Audio)(nil)

func data(n int) []byte {
	d := make([]byte, n)
	for i := range d {
		d[i] = byte(i * 7)
	}
	return d
}

func TestEmpty(t *testing.T) {
	dig := digest.NewAudio()
	test.ExpectEquality(t, dig.Hash(), "0000000000000000000000000000000000000000")
	test.ExpectEquality(t, dig.Length(), 0)
}

func TestSubmissionSize(t *testing.T) {
	d := data(100000)

	whole := digest.NewAudio()
	test.ExpectSuccess(t, whole.Submit(d))

	// the same data in blocks of a different size
	blocks := digest.NewAudio()
	for i := 0; i < len(d); i += 8192 {
		test.ExpectSuccess(t, blocks.Submit(d[i:min(i+8192, len(d))]))
	}

	test.ExpectEquality(t, whole.Hash(), blocks.Hash())
	test.ExpectEquality(t, whole.Length(), len(d))
	test.ExpectEquality(t, blocks.Length(), len(d))
}

func TestDifference(t *testing.T) {
	a := digest.NewAudio()
	b := digest.NewAudio()

	d := data(50000)
	test.ExpectSuccess(t, a.Submit(d))
	d[40000]++
	test.ExpectSuccess(t, b.Submit(d))

	test.ExpectInequality(t, a.Hash(), b.Hash())
}

func TestHashContinues(t *testing.T) {
	a := digest.NewAudio()
	b := digest.NewAudio()

	d := data(30000)

	// asking for the hash part way through does not change the result
	test.ExpectSuccess(t, a.Submit(d[:100]))
	_ = a.Hash()
	test.ExpectSuccess(t, a.Submit(d[100:]))

	test.ExpectSuccess(t, b.Submit(d))
	test.ExpectEquality(t, a.Hash(), b.Hash())
}

func TestReset(t *testing.T) {
	dig := digest.NewAudio()
	fresh := dig.Hash()

	test.ExpectSuccess(t, dig.Submit(data(1000)))
	test.ExpectInequality(t, dig.Hash(), fresh)

	dig.Reset()
	test.ExpectEquality(t, dig.Hash(), fresh)
	test.ExpectEquality(t, dig.Length(), 0)
}
