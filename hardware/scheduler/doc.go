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

// Package scheduler orders the activity of the emulated hardware by CPU
// cycle. Each piece of hardware that needs to act at a future cycle owns an
// Event and asks the Scheduler to fire it at that cycle. The Scheduler never
// advances time on its own: AdvanceOne() pops the earliest event, moves the
// current cycle forward to it and calls the handler bound to the event.
//
// Events that are due on the same cycle fire in the order they were
// scheduled.
//
// The set of event kinds is closed. There is exactly one Event for each kind
// and the handler for each kind is registered with Bind(). Because of this an
// event can never be pending more than once; scheduling a pending event moves
// it.
package scheduler
