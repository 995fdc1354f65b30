// This file is part of CTREmu.
//
// CTREmu is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// CTREmu is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with CTREmu.  If not, see <https://www.gnu.org/licenses/>.

package prefs_test

import (
	"testing"

	"github.com/ctremu/ctremu/prefs"
	"github.com/ctremu/ctremu/test"
)

func TestBool(t *testing.T) {
	var b prefs.Bool

	// zero value reads as false
	test.Equate(t, b.Get().(bool), false)

	test.ExpectedSuccess(t, b.Set(true))
	test.Equate(t, b.Get().(bool), true)
	test.Equate(t, b.String(), "true")

	// string conversion
	test.ExpectedSuccess(t, b.Set("TRUE"))
	test.Equate(t, b.Get().(bool), true)
	test.ExpectedSuccess(t, b.Set("not a boolean"))
	test.Equate(t, b.Get().(bool), false)

	// unsupported type
	test.ExpectedFailure(t, b.Set(1.0))
}

func TestInt(t *testing.T) {
	var i prefs.Int

	test.Equate(t, i.Get().(int), 0)

	test.ExpectedSuccess(t, i.Set(60))
	test.Equate(t, i.Get().(int), 60)

	test.ExpectedSuccess(t, i.Set("30"))
	test.Equate(t, i.Get().(int), 30)

	test.ExpectedFailure(t, i.Set("sixty"))
	test.Equate(t, i.Get().(int), 30)

	test.ExpectedSuccess(t, i.Reset())
	test.Equate(t, i.Get().(int), 0)
}

func TestHooks(t *testing.T) {
	var b prefs.Bool

	pre := 0
	post := 0
	b.SetHookPre(func(v prefs.Value) error {
		pre++
		return nil
	})
	b.SetHookPost(func(v prefs.Value) error {
		post++
		return nil
	})

	test.ExpectedSuccess(t, b.Set(true))
	test.ExpectedSuccess(t, b.Set(true))
	test.Equate(t, pre, 2)
	test.Equate(t, post, 2)
}
