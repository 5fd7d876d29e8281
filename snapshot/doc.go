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

// Package snapshot provides the sequential binary encoding used to save and
// restore an emulation. All values are little-endian.
//
// Both the Encoder and the Decoder carry a sticky error. Once an error has
// occurred every subsequent operation is a no-op (the Decoder returns zero
// values) and the error is returned by Err(). This allows a chip to write or
// read all of its fields before checking for an error once at the end.
package snapshot
