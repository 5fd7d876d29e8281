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

package prefs_test

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/sidstreamer/prefs"
	"github.com/jetsetilly/sidstreamer/test"
)

func TestBool(t *testing.T) {
	var v prefs.Bool
	test.ExpectEquality(t, v.String(), "false")

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectEquality(t, v.Get().(bool), true)
	test.ExpectSuccess(t, v.Set("foo"))
	test.ExpectEquality(t, v.Get().(bool), false)
	test.ExpectSuccess(t, v.Set("TRUE"))
	test.ExpectEquality(t, v.String(), "true")
	test.ExpectFailure(t, v.Set(10))
	test.ExpectSuccess(t, v.Reset())
	test.ExpectEquality(t, v.Get().(bool), false)
}

func TestInt(t *testing.T) {
	var v prefs.Int
	test.ExpectEquality(t, v.String(), "0")

	test.ExpectSuccess(t, v.Set(16))
	test.ExpectEquality(t, v.Get().(int), 16)
	test.ExpectSuccess(t, v.Set(" 8"))
	test.ExpectEquality(t, v.Get().(int), 8)
	test.ExpectFailure(t, v.Set("eight"))
	test.ExpectEquality(t, v.Get().(int), 8)
}

func TestFloat(t *testing.T) {
	var v prefs.Float
	test.ExpectEquality(t, v.String(), "0.000")

	test.ExpectSuccess(t, v.Set(0.5))
	test.ExpectEquality(t, v.Get().(float64), 0.5)
	test.ExpectSuccess(t, v.Set("0.25"))
	test.ExpectEquality(t, v.String(), "0.250")
	test.ExpectFailure(t, v.Set(true))
}

func TestString(t *testing.T) {
	var v prefs.String
	test.ExpectEquality(t, v.String(), "")
	test.ExpectSuccess(t, v.Set("oto"))
	test.ExpectEquality(t, v.Get().(string), "oto")
	test.ExpectSuccess(t, v.Reset())
	test.ExpectEquality(t, v.String(), "")
}

func TestHooks(t *testing.T) {
	var v prefs.Int
	var post int

	v.SetHookPre(func(nv prefs.Value) error {
		if nv.(int) < 0 || nv.(int) > 2 {
			return fmt.Errorf("out of range")
		}
		return nil
	})
	v.SetHookPost(func(nv prefs.Value) error {
		post = nv.(int)
		return nil
	})

	test.ExpectSuccess(t, v.Set(2))
	test.ExpectEquality(t, post, 2)

	// the pre hook prevents the value from changing
	test.ExpectFailure(t, v.Set(3))
	test.ExpectEquality(t, v.Get().(int), 2)
	test.ExpectEquality(t, post, 2)
}
