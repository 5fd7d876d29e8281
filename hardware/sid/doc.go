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

// Package sid implements the MOS 6581/8580 Sound Interface Device. The
// implementation follows the structure of reSID by Dag Lem: three voices,
// each with an oscillator and an envelope generator, feeding a two-integrator
// state variable filter and an external RC filter. All arithmetic is integer
// so the output is identical on every platform, which matters when a session
// is saved and later restored.
//
// The chip is clocked in bursts with Clock(), usually immediately before a
// sample is taken with Output(). With Fast sampling the output is the value
// at the most recent cycle. With Interpolate sampling the output is the
// average of every cycle since the previous call to Output().
//
// Some things are simplified. Combined waveforms are the logical AND of the
// selected waveforms. The filter cutoff curves are smooth approximations of
// the measured curves. Reads of write-only registers return the most recent
// value written to any register rather than a decaying bus value.
package sid
