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

// Package paths prepares filenames for files created by the application.
//
// UniqueFilename() creates a name suitable for snapshots and recordings. For
// example, the following returns a name of the form
// snapshot_Commando_20260101_120000:
//
//	fn := paths.UniqueFilename("snapshot", "Commando")
//
// Characters in the name that are awkward in a filename are replaced.
package paths
