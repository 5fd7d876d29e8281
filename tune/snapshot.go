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

package tune

import (
	"github.com/jetsetilly/sidstreamer/snapshot"
)

// Save the tune, including the program data and the current song.
func (tn *Tune) Save(enc *snapshot.Encoder) {
	enc.Tag("TUNE")
	enc.String(tn.Info.Format)
	enc.Uint8(uint8(tn.Info.Version))
	enc.String(tn.Info.Name)
	enc.String(tn.Info.Author)
	enc.String(tn.Info.Released)
	enc.Uint16(tn.Info.LoadAddress)
	enc.Uint16(tn.Info.InitAddress)
	enc.Uint16(tn.Info.PlayAddress)
	enc.Uint16(uint16(tn.Info.Songs))
	enc.Uint16(uint16(tn.Info.StartSong))
	enc.Uint32(tn.Info.Speed)
	enc.Uint16(tn.Info.Flags)
	enc.Uint8(uint8(tn.Info.Clock))
	enc.Uint8(uint8(tn.Info.SIDModel))
	enc.Uint16(tn.Info.SecondSID)
	enc.Uint8(uint8(tn.Info.SecondSIDModel))
	enc.String(tn.Info.Hash)
	enc.Bytes(tn.Data)
	enc.Uint16(uint16(tn.song))
}

// Restore a tune written by Save(). Returns nil if the decoder has failed.
func Restore(dec *snapshot.Decoder) *Tune {
	dec.ExpectTag("TUNE")

	var tn Tune
	tn.Info.Format = dec.String()
	tn.Info.Version = int(dec.Uint8())
	tn.Info.Name = dec.String()
	tn.Info.Author = dec.String()
	tn.Info.Released = dec.String()
	tn.Info.LoadAddress = dec.Uint16()
	tn.Info.InitAddress = dec.Uint16()
	tn.Info.PlayAddress = dec.Uint16()
	tn.Info.Songs = int(dec.Uint16())
	tn.Info.StartSong = int(dec.Uint16())
	tn.Info.Speed = dec.Uint32()
	tn.Info.Flags = dec.Uint16()
	tn.Info.Clock = Clock(dec.Uint8())
	tn.Info.SIDModel = SIDModel(dec.Uint8())
	tn.Info.SecondSID = dec.Uint16()
	tn.Info.SecondSIDModel = SIDModel(dec.Uint8())
	tn.Info.Hash = dec.String()
	tn.Data = dec.Bytes()
	tn.song = int(dec.Uint16())

	if dec.Err() != nil {
		return nil
	}

	switch {
	case tn.Info.Format != FormatPSID && tn.Info.Format != FormatRSID:
		dec.Failf("tune format %q", tn.Info.Format)
	case tn.Info.Songs < 1 || tn.Info.Songs > MaxSongs:
		dec.Failf("tune song count %d", tn.Info.Songs)
	case tn.song < 1 || tn.song > tn.Info.Songs:
		dec.Failf("tune song %d of %d", tn.song, tn.Info.Songs)
	case len(tn.Data) == 0 || int(tn.Info.LoadAddress)+len(tn.Data) > 0x10000:
		dec.Failf("tune data length %d", len(tn.Data))
	case tn.Info.Clock > ClockAny || tn.Info.SIDModel > ModelAny || tn.Info.SecondSIDModel > ModelAny:
		dec.Failf("tune hints")
	default:
		return &tn
	}

	return nil
}
