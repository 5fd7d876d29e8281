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

// Package prefs provides typed preference values that can be read and
// written safely from more than one goroutine. Each value can have a hook
// function called before and after the value is changed. A pre-hook that
// returns an error prevents the value from changing, which is how range
// checking is normally implemented.
//
// Preferences can be overridden from the command line with the command line
// stack. See PushCommandLineStack() for the format of the override string.
package prefs
