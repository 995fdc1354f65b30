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
	"bytes"
	"testing"

	"github.com/ctremu/ctremu/hardware/gpu"
	"github.com/ctremu/ctremu/test"
)

// display transfer register indices.
const (
	ppfInput      = 0x300
	ppfOutput     = 0x301
	ppfOutputSize = 0x302
	ppfInputSize  = 0x303
	ppfFlags      = 0x304
	ppfTrigger    = 0x306
)

const (
	srcAddr = 0x2000
	dstAddr = 0x3000
)

// setupTransfer programs a transfer of the given dimensions. formats are
// the flags register value (input format in bits 8:10, output in 12:14).
func setupTransfer(t *testing.T, fx *fixture, inW, inH, outW, outH int, flags uint32) {
	t.Helper()
	fx.write(t, ppfInput, srcAddr>>3)
	fx.write(t, ppfOutput, dstAddr>>3)
	fx.write(t, ppfInputSize, uint32(inW)|uint32(inH)<<16)
	fx.write(t, ppfOutputSize, uint32(outW)|uint32(outH)<<16)
	fx.write(t, ppfFlags, flags)
}

const flagsRGBA8toRGB8 = uint32(gpu.FormatRGBA8)<<8 | uint32(gpu.FormatRGB8)<<12

func TestDisplayTransfer(t *testing.T) {
	fx := newFixture(t)

	// 2x2 RGBA8 source, four distinct pixels
	copy(fx.mem.buf[srcAddr:], []byte{
		0x11, 0x12, 0x13, 0xff, 0x21, 0x22, 0x23, 0xee,
		0x31, 0x32, 0x33, 0xdd, 0x41, 0x42, 0x43, 0xcc,
	})

	setupTransfer(t, fx, 2, 2, 2, 2, flagsRGBA8toRGB8)
	fx.write(t, ppfTrigger, 1)

	// component order preserved, alpha discarded, rows packed at 3 bytes
	// per pixel
	want := []byte{
		0x11, 0x12, 0x13, 0x21, 0x22, 0x23,
		0x31, 0x32, 0x33, 0x41, 0x42, 0x43,
	}
	if !bytes.Equal(fx.mem.buf[dstAddr:dstAddr+12], want) {
		t.Errorf("transfer result %x - wanted %x", fx.mem.buf[dstAddr:dstAddr+12], want)
	}

	// one byte past the output is untouched
	test.Equate(t, int(fx.mem.buf[dstAddr+12]), 0)
	test.Equate(t, fx.gpu.Diagnostics().Count(gpu.DiagUnsupportedFormat), 0)
}

func TestDisplayTransferTriggerBit(t *testing.T) {
	fx := newFixture(t)

	copy(fx.mem.buf[srcAddr:], []byte{0x11, 0x12, 0x13, 0xff})
	setupTransfer(t, fx, 1, 1, 1, 1, flagsRGBA8toRGB8)

	// low bit clear: the write is stored but the engine does not fire
	fx.write(t, ppfTrigger, 2)
	test.Equate(t, int(fx.mem.buf[dstAddr]), 0)
	test.Equate(t, fx.read(t, ppfTrigger), 2)

	fx.write(t, ppfTrigger, 1)
	test.Equate(t, int(fx.mem.buf[dstAddr]), 0x11)
}

func TestDisplayTransferPitchMismatch(t *testing.T) {
	fx := newFixture(t)

	// the source row pitch follows input_width (4 pixels) even though only
	// output_width (2) pixels per row are copied. the second output row
	// therefore samples pixels 4 and 5 of the source, not 2 and 3.
	for i := 0; i < 8; i++ {
		px := byte(i + 1)
		copy(fx.mem.buf[srcAddr+i*4:], []byte{px, px, px, 0xff})
	}

	setupTransfer(t, fx, 4, 2, 2, 2, flagsRGBA8toRGB8)
	fx.write(t, ppfTrigger, 1)

	want := []byte{
		0x01, 0x01, 0x01, 0x02, 0x02, 0x02,
		0x05, 0x05, 0x05, 0x06, 0x06, 0x06,
	}
	if !bytes.Equal(fx.mem.buf[dstAddr:dstAddr+12], want) {
		t.Errorf("transfer result %x - wanted %x", fx.mem.buf[dstAddr:dstAddr+12], want)
	}
}

func TestDisplayTransferUnsupportedOutput(t *testing.T) {
	fx := newFixture(t)

	copy(fx.mem.buf[srcAddr:], []byte{
		0x11, 0x12, 0x13, 0xff, 0x21, 0x22, 0x23, 0xee,
		0x31, 0x32, 0x33, 0xdd, 0x41, 0x42, 0x43, 0xcc,
	})

	flags := uint32(gpu.FormatRGBA8)<<8 | uint32(gpu.FormatRGBA4)<<12
	setupTransfer(t, fx, 2, 2, 2, 2, flags)
	fx.write(t, ppfTrigger, 1)

	// the destination is unmodified and the failure is reported once for
	// the whole transfer, not once per pixel
	for i := 0; i < 16; i++ {
		if fx.mem.buf[dstAddr+i] != 0 {
			t.Fatalf("destination modified at offset %d", i)
		}
	}
	test.Equate(t, fx.gpu.Diagnostics().Count(gpu.DiagUnsupportedFormat), 1)
}

func TestDisplayTransferUnsupportedInput(t *testing.T) {
	fx := newFixture(t)

	flags := uint32(gpu.FormatRGB565)<<8 | uint32(gpu.FormatRGB8)<<12
	setupTransfer(t, fx, 2, 2, 2, 2, flags)
	fx.write(t, ppfTrigger, 1)

	for i := 0; i < 16; i++ {
		if fx.mem.buf[dstAddr+i] != 0 {
			t.Fatalf("destination modified at offset %d", i)
		}
	}
	test.Equate(t, fx.gpu.Diagnostics().Count(gpu.DiagUnsupportedFormat), 1)
}

func TestDisplayTransferInvalidRegion(t *testing.T) {
	fx := newFixture(t)

	// unmapped input address
	fx.write(t, ppfInput, 0x80000>>3)
	fx.write(t, ppfOutput, dstAddr>>3)
	fx.write(t, ppfInputSize, 2|2<<16)
	fx.write(t, ppfOutputSize, 2|2<<16)
	fx.write(t, ppfFlags, flagsRGBA8toRGB8)
	fx.write(t, ppfTrigger, 1)

	test.Equate(t, fx.gpu.Diagnostics().Count(gpu.DiagInvalidMemoryRegion), 1)
	test.Equate(t, int(fx.mem.buf[dstAddr]), 0)

	// mapped input but the sampled range runs off the end of the region
	fx.write(t, ppfInput, 0xfff8>>3)
	fx.write(t, ppfTrigger, 1)

	test.Equate(t, fx.gpu.Diagnostics().Count(gpu.DiagInvalidMemoryRegion), 2)
	test.Equate(t, int(fx.mem.buf[dstAddr]), 0)
}
