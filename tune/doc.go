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

// Package tune reads SID music files in the PSID and RSID formats. The
// format is defined by the High Voltage SID Collection in the document
// SID_file_format.txt.
//
// A file is parsed entirely by Parse() or Load(). Malformed data is rejected
// and no Tune is returned, so a Tune that exists is always playable. The
// only mutable part of a Tune is the current song selection.
package tune
