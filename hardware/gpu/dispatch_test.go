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

package gpu_test

import (
	"testing"

	"github.com/ctremu/ctremu/curated"
	"github.com/ctremu/ctremu/hardware/gpu"
	"github.com/ctremu/ctremu/test"
)

func TestRoundTrip(t *testing.T) {
	fx := newFixture(t)

	// every valid register index holds what was written to it. trigger
	// registers are written with the low bit clear so that no engine
	// fires during the sweep.
	for i := uint32(0); i < gpu.NumRegisters; i++ {
		v := (i << 4) | 0x2
		fx.write(t, i, v)
		test.Equate(t, fx.read(t, i), v)
	}
}

func TestUnsupportedWidth(t *testing.T) {
	fx := newFixture(t)

	fx.write(t, 0x000, 0x12345678)

	for _, w := range []gpu.Width{gpu.Width8, gpu.Width16, gpu.Width64} {
		before := fx.gpu.Diagnostics().Count(gpu.DiagUnsupportedAccess)

		v, err := fx.gpu.Read(gpu.BaseAddress, w)
		test.ExpectedSuccess(t, err)
		test.Equate(t, v, 0)

		err = fx.gpu.Write(gpu.BaseAddress, w, 0xffffffff)
		test.ExpectedSuccess(t, err)

		// exactly one diagnostic per failed call
		after := fx.gpu.Diagnostics().Count(gpu.DiagUnsupportedAccess)
		test.Equate(t, after, before+2)
	}

	// the register is untouched by any of the failed writes
	test.Equate(t, fx.read(t, 0x000), 0x12345678)
}

func TestOutOfRangeAccess(t *testing.T) {
	fx := newFixture(t)

	// one past the end of the window
	end := uint32(gpu.BaseAddress + gpu.NumRegisters*4)
	err := fx.gpu.Write(end, gpu.Width32, 0xffffffff)
	test.ExpectedSuccess(t, err)
	test.Equate(t, fx.gpu.Diagnostics().Count(gpu.DiagUnsupportedAccess), 1)

	// below the base of the window
	_, err = fx.gpu.Read(gpu.BaseAddress-4, gpu.Width32)
	test.ExpectedSuccess(t, err)
	test.Equate(t, fx.gpu.Diagnostics().Count(gpu.DiagUnsupportedAccess), 2)
}

func TestStrictMode(t *testing.T) {
	fx := newFixture(t)
	fx.gpu.Prefs.Strict.Set(true)

	err := fx.gpu.Write(gpu.BaseAddress, gpu.Width8, 0xff)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, gpu.UnsupportedAccess))

	_, err = fx.gpu.Read(gpu.BaseAddress+gpu.NumRegisters*4, gpu.Width32)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, gpu.UnsupportedAccess))
}

func TestTriggerDepthGuard(t *testing.T) {
	fx := newFixture(t)

	// a command list that retriggers itself forever. the size register
	// describes an 8 word buffer at 0x1000 (stored shifted right by 3).
	fx.write(t, 0x638, 1)
	fx.write(t, 0x63a, 0x1000>>3)

	fx.cmd.onProcess = func() {
		fx.write(t, 0x63c, 1)
	}

	fx.write(t, 0x63c, 1)

	// the engine ran once for each depth the guard allows and the chain
	// was then refused exactly once
	test.Equate(t, fx.cmd.calls, 8)
	test.Equate(t, fx.gpu.Diagnostics().Count(gpu.DiagTriggerDepthExceeded), 1)
}
