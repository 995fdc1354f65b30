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

package gpu

import (
	"fmt"

	"github.com/ctremu/ctremu/logger"
)

// displayTransfer runs the display transfer engine (PPF): a 1:1
// pixel-index copy with format conversion. No scaling is performed, so
// mismatched input and output dimensions skew the sampling.
//
// Iteration is row-major over output_height x output_width but the source
// row pitch is input_width, a mismatch that guest software relies on and
// which must not be corrected here.
func (g *GPU) displayTransfer() error {
	if g.regs[idxTransferTrigger]&1 != 1 {
		return nil
	}

	input := decodeAddress(g.regs[idxTransferInput])
	output := decodeAddress(g.regs[idxTransferOutput])
	outputWidth := int(g.regs[idxTransferOutputSize] & 0xffff)
	outputHeight := int(g.regs[idxTransferOutputSize] >> 16)
	inputWidth := int(g.regs[idxTransferInputSize] & 0xffff)
	inputFormat := PixelFormat((g.regs[idxTransferFlags] >> 8) & 0x7)
	outputFormat := PixelFormat((g.regs[idxTransferFlags] >> 12) & 0x7)

	src, ok := g.resolve(input)
	if !ok {
		return g.diagnose(DiagInvalidMemoryRegion, InvalidMemoryRegion,
			fmt.Sprintf("transfer input %#08x", input))
	}
	dst, ok := g.resolve(output)
	if !ok {
		return g.diagnose(DiagInvalidMemoryRegion, InvalidMemoryRegion,
			fmt.Sprintf("transfer output %#08x", output))
	}

	if outputWidth <= 0 || outputHeight <= 0 {
		return nil
	}

	// range checks are done once, up front, so that a malformed transfer
	// aborts cleanly instead of writing a partial result
	if inputFormat == FormatRGBA8 {
		need := (outputHeight-1)*inputWidth*4 + outputWidth*4
		if need > len(src) {
			return g.diagnose(DiagInvalidMemoryRegion, InvalidMemoryRegion,
				fmt.Sprintf("transfer input %#08x length %d", input, need))
		}
	}
	if outputFormat == FormatRGB8 {
		need := outputHeight * outputWidth * 3
		if need > len(dst) {
			return g.diagnose(DiagInvalidMemoryRegion, InvalidMemoryRegion,
				fmt.Sprintf("transfer output %#08x length %d", output, need))
		}
	}

	// an unsupported format is reported once per transfer per direction,
	// not once per pixel
	var badInput, badOutput bool

	for y := 0; y < outputHeight; y++ {
		for x := 0; x < outputWidth; x++ {
			var cr, cg, cb byte

			switch inputFormat {
			case FormatRGBA8:
				o := x*4 + y*inputWidth*4
				cr = src[o]
				cg = src[o+1]
				cb = src[o+2]
				// alpha in src[o+3] is discarded
			default:
				if !badInput {
					badInput = true
					if err := g.diagnose(DiagUnsupportedFormat, UnsupportedFormat,
						fmt.Sprintf("transfer input format %s", inputFormat)); err != nil {
						return err
					}
				}
				continue
			}

			switch outputFormat {
			case FormatRGB8:
				o := x*3 + y*outputWidth*3
				dst[o] = cr
				dst[o+1] = cg
				dst[o+2] = cb
			default:
				if !badOutput {
					badOutput = true
					if err := g.diagnose(DiagUnsupportedFormat, UnsupportedFormat,
						fmt.Sprintf("transfer output format %s", outputFormat)); err != nil {
						return err
					}
				}
			}
		}
	}

	logger.Logf("gpu", "display transfer %#08x (%dx%d %s) -> %#08x (%dx%d %s)",
		input, inputWidth, int(g.regs[idxTransferInputSize]>>16), inputFormat,
		output, outputWidth, outputHeight, outputFormat)

	return nil
}

// resolve translates a physical address through the memory bus and returns
// the backing bytes.
func (g *GPU) resolve(phys uint32) ([]byte, bool) {
	virt, ok := g.env.Mem.PhysicalToVirtual(phys)
	if !ok {
		return nil, false
	}
	return g.env.Mem.GetPointer(virt)
}
