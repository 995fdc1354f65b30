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
	"encoding/binary"
	"testing"

	"github.com/ctremu/ctremu/hardware/gpu"
	"github.com/ctremu/ctremu/test"
)

// fill channel register indices. address registers hold the physical
// address shifted right by three.
const (
	psc0Start = 0x004
	psc0End   = 0x005
	psc0Size  = 0x006
	psc0Value = 0x007
	psc1Start = 0x008
	psc1End   = 0x009
	psc1Value = 0x00b
)

func TestMemoryFill(t *testing.T) {
	fx := newFixture(t)

	fx.write(t, psc0Start, 0x1000>>3)
	fx.write(t, psc0End, 0x1010>>3)

	// the size register plays no part in the fill
	fx.write(t, psc0Size, 0xdeadbeef)

	// the write of the fill value is the trigger
	fx.write(t, psc0Value, 0xaabbccdd)

	// every word in [0x1000, 0x1010) holds the byte-reversed fill value
	for off := 0x1000; off < 0x1010; off += 4 {
		test.Equate(t, binary.LittleEndian.Uint32(fx.mem.buf[off:]), 0xddccbbaa)
	}

	// memory either side of the range is untouched
	test.Equate(t, binary.LittleEndian.Uint32(fx.mem.buf[0x0ffc:]), 0)
	test.Equate(t, binary.LittleEndian.Uint32(fx.mem.buf[0x1010:]), 0)
}

func TestMemoryFillZeroStart(t *testing.T) {
	fx := newFixture(t)

	fx.write(t, psc0End, 0x1010>>3)
	fx.write(t, psc0Value, 0xaabbccdd)

	// a zero start address keeps the channel quiescent
	for off := 0; off < len(fx.mem.buf); off += 4 {
		if binary.LittleEndian.Uint32(fx.mem.buf[off:]) != 0 {
			t.Fatalf("memory modified at %#08x", off)
		}
	}
}

func TestMemoryFillSecondChannel(t *testing.T) {
	fx := newFixture(t)

	fx.write(t, psc1Start, 0x2000>>3)
	fx.write(t, psc1End, 0x2008>>3)
	fx.write(t, psc1Value, 0x01020304)

	test.Equate(t, binary.LittleEndian.Uint32(fx.mem.buf[0x2000:]), 0x04030201)
	test.Equate(t, binary.LittleEndian.Uint32(fx.mem.buf[0x2004:]), 0x04030201)
	test.Equate(t, binary.LittleEndian.Uint32(fx.mem.buf[0x2008:]), 0)

	// the channels are independent; channel 0 never ran
	test.Equate(t, binary.LittleEndian.Uint32(fx.mem.buf[0x1000:]), 0)
}

func TestMemoryFillPreference(t *testing.T) {
	fx := newFixture(t)
	fx.gpu.Prefs.FillOnValueWrite.Set(false)

	fx.write(t, psc0Start, 0x1000>>3)
	fx.write(t, psc0End, 0x1010>>3)
	fx.write(t, psc0Value, 0xaabbccdd)

	test.Equate(t, binary.LittleEndian.Uint32(fx.mem.buf[0x1000:]), 0)
}

func TestMemoryFillInvalidRegion(t *testing.T) {
	fx := newFixture(t)

	// start address beyond the mapped buffer
	fx.write(t, psc0Start, 0x80000>>3)
	fx.write(t, psc0End, 0x80010>>3)
	fx.write(t, psc0Value, 0xaabbccdd)

	test.Equate(t, fx.gpu.Diagnostics().Count(gpu.DiagInvalidMemoryRegion), 1)

	// end address beyond the mapped buffer aborts without partial writes
	fx.write(t, psc0Start, 0xff00>>3)
	fx.write(t, psc0End, 0x18000>>3)
	fx.write(t, psc0Value, 0xaabbccdd)

	test.Equate(t, fx.gpu.Diagnostics().Count(gpu.DiagInvalidMemoryRegion), 2)
	test.Equate(t, binary.LittleEndian.Uint32(fx.mem.buf[0xff00:]), 0)
}
