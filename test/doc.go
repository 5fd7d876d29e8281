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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect*() functions report a test error and allow the test to continue.
// The Demand*() functions are fatal and should be used when the values being
// tested are needed for further tests. For example, testing that the lengths
// of two slices are equal before iterating over them in unison.
//
// The ExpectSuccess() and ExpectFailure() functions test for success and
// failure under generic conditions. The nil type is considered a success
// because that is how errors are conventionally interpreted.
//
// The CompareWriter type implements the io.Writer interface and should be
// used to capture output for comparison with predefined strings.
package test
