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

package version

import (
	"testing"

	"github.com/jetsetilly/sidstreamer/test"
)

func TestDescribe(t *testing.T) {
	test.ExpectEquality(t, describe("", false), "no revision information")
	test.ExpectEquality(t, describe("", true), "no revision information")
	test.ExpectEquality(t, describe("abc123", false), "abc123")
	test.ExpectEquality(t, describe("abc123", true), "abc123+dirty")
}

func TestVersion(t *testing.T) {
	v, r, release := Version()
	test.ExpectInequality(t, v, "")
	test.ExpectInequality(t, r, "")
	test.ExpectEquality(t, release, false)
}
