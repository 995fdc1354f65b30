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

package screen

import (
	"fmt"
	"image"
	"os"

	"github.com/ctremu/ctremu/hardware/gpu"
	"golang.org/x/image/bmp"
)

// Screenshot writes the GPU's active top framebuffer to a BMP file.
func Screenshot(g *gpu.GPU, mem gpu.MemoryBus, path string) error {
	fb := g.Framebuffer(gpu.DisplayTop)
	if fb.Width == 0 || fb.Height == 0 {
		return fmt.Errorf("screenshot: framebuffer has no dimensions")
	}

	addr := fb.AddressLeft1
	if fb.ActiveBuffer == 1 {
		addr = fb.AddressLeft2
	}

	virt, ok := mem.PhysicalToVirtual(addr)
	if !ok {
		return fmt.Errorf("screenshot: framebuffer not mapped: %#08x", addr)
	}
	src, ok := mem.GetPointer(virt)
	if !ok {
		return fmt.Errorf("screenshot: framebuffer not mapped: %#08x", addr)
	}

	count := int(fb.Width * fb.Height)
	pixels := make([]byte, count*4)
	if !stage(pixels, src, fb.Format, count) {
		return fmt.Errorf("screenshot: cannot convert format %s", fb.Format)
	}

	img := &image.NRGBA{
		Pix:    pixels,
		Stride: int(fb.Width) * 4,
		Rect:   image.Rect(0, 0, int(fb.Width), int(fb.Height)),
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("screenshot: %v", err)
	}
	defer f.Close()

	if err := bmp.Encode(f, img); err != nil {
		return fmt.Errorf("screenshot: %v", err)
	}

	return nil
}
