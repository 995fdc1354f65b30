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

// BaseAddress is the physical address of the first GPU register. The
// register index of an address is (address - BaseAddress) / 4.
const BaseAddress = 0x1EF00000

// NumRegisters is the number of 32bit registers in the GPU window.
const NumRegisters = 0x1000

// Register indices. The values are a wire contract with guest software and
// must not move.
//
// Address registers of the fill, transfer and command engines hold the
// physical address shifted right by three bits. Framebuffer address
// registers hold full physical addresses.
const (
	idxFill0Start = 0x004
	idxFill0End   = 0x005
	idxFill0Size  = 0x006
	idxFill0Value = 0x007
	idxFill1Start = 0x008
	idxFill1End   = 0x009
	idxFill1Size  = 0x00a
	idxFill1Value = 0x00b

	idxFramebufferTop = 0x117
	idxFramebufferSub = 0x157

	idxTransferInput      = 0x300
	idxTransferOutput     = 0x301
	idxTransferOutputSize = 0x302
	idxTransferInputSize  = 0x303
	idxTransferFlags      = 0x304
	idxTransferTrigger    = 0x306

	idxCommandSize    = 0x638
	idxCommandAddress = 0x63a
	idxCommandTrigger = 0x63c
)

// word offsets into a framebuffer register block. the two display blocks
// (top and sub) have the same shape, 0x40 words apart.
const (
	fbSize   = 0x0 // width in bits 0:15, height in bits 16:31
	fbLeft1  = 0x3
	fbLeft2  = 0x4
	fbFormat = 0x5 // color format in bits 0:2
	fbSelect = 0x7 // active buffer in bit 0
	fbStride = 0xd
	fbRight1 = 0xe
	fbRight2 = 0xf
)

// Layout enumerates the named registers in the window. It exists for
// diagnostic output and for the register monitor; the emulation itself
// uses the index constants directly.
var Layout = map[uint32]string{
	idxFill0Start: "PSC0_START",
	idxFill0End:   "PSC0_END",
	idxFill0Size:  "PSC0_SIZE",
	idxFill0Value: "PSC0_VALUE",
	idxFill1Start: "PSC1_START",
	idxFill1End:   "PSC1_END",
	idxFill1Size:  "PSC1_SIZE",
	idxFill1Value: "PSC1_VALUE",

	idxFramebufferTop + fbSize:   "PDC0_FB_SIZE",
	idxFramebufferTop + fbLeft1:  "PDC0_FB_LEFT1",
	idxFramebufferTop + fbLeft2:  "PDC0_FB_LEFT2",
	idxFramebufferTop + fbFormat: "PDC0_FB_FORMAT",
	idxFramebufferTop + fbSelect: "PDC0_FB_SELECT",
	idxFramebufferTop + fbStride: "PDC0_FB_STRIDE",
	idxFramebufferTop + fbRight1: "PDC0_FB_RIGHT1",
	idxFramebufferTop + fbRight2: "PDC0_FB_RIGHT2",

	idxFramebufferSub + fbSize:   "PDC1_FB_SIZE",
	idxFramebufferSub + fbLeft1:  "PDC1_FB_LEFT1",
	idxFramebufferSub + fbLeft2:  "PDC1_FB_LEFT2",
	idxFramebufferSub + fbFormat: "PDC1_FB_FORMAT",
	idxFramebufferSub + fbSelect: "PDC1_FB_SELECT",
	idxFramebufferSub + fbStride: "PDC1_FB_STRIDE",
	idxFramebufferSub + fbRight1: "PDC1_FB_RIGHT1",
	idxFramebufferSub + fbRight2: "PDC1_FB_RIGHT2",

	idxTransferInput:      "PPF_INPUT_ADDR",
	idxTransferOutput:     "PPF_OUTPUT_ADDR",
	idxTransferOutputSize: "PPF_OUTPUT_SIZE",
	idxTransferInputSize:  "PPF_INPUT_SIZE",
	idxTransferFlags:      "PPF_FLAGS",
	idxTransferTrigger:    "PPF_TRIGGER",

	idxCommandSize:    "P3D_SIZE",
	idxCommandAddress: "P3D_ADDR",
	idxCommandTrigger: "P3D_TRIGGER",
}

// PixelFormat is the color format of a framebuffer or transfer surface.
type PixelFormat uint32

// List of valid PixelFormat values.
const (
	FormatRGBA8 PixelFormat = iota
	FormatRGB8
	FormatRGB565
	FormatRGB5A1
	FormatRGBA4
)

func (f PixelFormat) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatRGB8:
		return "RGB8"
	case FormatRGB565:
		return "RGB565"
	case FormatRGB5A1:
		return "RGB5A1"
	case FormatRGBA4:
		return "RGBA4"
	}
	return "unknown"
}

// decodeAddress converts an address register value to a physical address.
func decodeAddress(v uint32) uint32 {
	return v << 3
}

// Display identifies one of the two display framebuffer register blocks.
type Display int

// The two displays.
const (
	DisplayTop Display = iota
	DisplaySub
)

// FramebufferConfig is a decoded view of one display's framebuffer register
// block.
type FramebufferConfig struct {
	AddressLeft1  uint32
	AddressLeft2  uint32
	AddressRight1 uint32
	AddressRight2 uint32
	Width         uint32
	Height        uint32
	Stride        uint32
	Format        PixelFormat
	ActiveBuffer  uint32
}

// Framebuffer returns the decoded framebuffer configuration for the
// display. Reading the configuration has no side effects.
func (g *GPU) Framebuffer(display Display) FramebufferConfig {
	base := uint32(idxFramebufferTop)
	if display == DisplaySub {
		base = idxFramebufferSub
	}

	return FramebufferConfig{
		AddressLeft1:  g.regs[base+fbLeft1],
		AddressLeft2:  g.regs[base+fbLeft2],
		AddressRight1: g.regs[base+fbRight1],
		AddressRight2: g.regs[base+fbRight2],
		Width:         g.regs[base+fbSize] & 0xffff,
		Height:        g.regs[base+fbSize] >> 16,
		Stride:        g.regs[base+fbStride],
		Format:        PixelFormat(g.regs[base+fbFormat] & 0x7),
		ActiveBuffer:  g.regs[base+fbSelect] & 0x1,
	}
}

// Peek returns the value of the register at index without any of the side
// effects of a bus read. The boolean return is false if the index is out of
// range.
func (g *GPU) Peek(index uint32) (uint32, bool) {
	if index >= NumRegisters {
		return 0, false
	}
	return g.regs[index], true
}
