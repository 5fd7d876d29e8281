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

// Package curated wraps the plain Go error type so that the pattern used to
// create an error can be tested for later.
//
// Errors are created with Errorf(), which takes a pattern and placeholder
// values in the same way as fmt.Errorf():
//
//	e := curated.Errorf("tune: unsupported format (%s)", magic)
//
//	if curated.Is(e, "tune: unsupported format (%s)") {
//		...
//	}
//
// Has() searches for a pattern anywhere in a chain of curated errors, which
// is useful when a low level error has been wrapped by a higher level:
//
//	f := curated.Errorf("player: %v", e)
//	curated.Has(f, "tune: unsupported format (%s)") // true
//	curated.Is(f, "tune: unsupported format (%s)")  // false
//
// IsAny() reports whether an error was created by this package at all. An
// uncurated error at the top level of the program usually indicates a
// failure that was not anticipated.
//
// When formatted, adjacent duplicate parts of the message are removed. This
// means a package can prefix its own name to an error without checking
// whether the error it is wrapping already carries the same prefix:
//
//	a := curated.Errorf("snapshot: truncated")
//	b := curated.Errorf("snapshot: %v", a)
//	b.Error() // "snapshot: truncated"
package curated
