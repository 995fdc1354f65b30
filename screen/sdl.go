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

	"github.com/ctremu/ctremu/hardware/gpu"
	"github.com/ctremu/ctremu/logger"
	"github.com/veandco/go-sdl2/sdl"
)

// SDLScreen presents the emulated top display in an SDL window. It
// implements the GPU's Renderer interface: the GPU calls SwapBuffers()
// whenever its frame pacing decides a new frame is due.
type SDLScreen struct {
	g   *gpu.GPU
	mem gpu.MemoryBus

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// dimensions of the texture currently allocated. the framebuffer
	// registers can be reprogrammed at any time so these are checked on
	// every swap.
	width  int32
	height int32

	// RGBA staging buffer, width*height*4 bytes
	pixels []byte
}

// NewSDLScreen creates a window sized to the GPU's top framebuffer,
// multiplied by scale.
func NewSDLScreen(g *gpu.GPU, mem gpu.MemoryBus, scale float32) (*SDLScreen, error) {
	scr := &SDLScreen{g: g, mem: mem}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("screen: %v", err)
	}

	fb := g.Framebuffer(gpu.DisplayTop)
	scr.width = int32(fb.Width)
	scr.height = int32(fb.Height)
	if scr.width == 0 || scr.height == 0 {
		return nil, fmt.Errorf("screen: framebuffer has no dimensions")
	}

	var err error
	scr.window, err = sdl.CreateWindow("CTREmu",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(float32(scr.width)*scale), int32(float32(scr.height)*scale),
		sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("screen: %v", err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return nil, fmt.Errorf("screen: %v", err)
	}

	if err = scr.renderer.SetScale(scale, scale); err != nil {
		return nil, fmt.Errorf("screen: %v", err)
	}

	if err = scr.resize(scr.width, scr.height); err != nil {
		return nil, err
	}

	return scr, nil
}

func (scr *SDLScreen) resize(width, height int32) error {
	if scr.texture != nil {
		scr.texture.Destroy()
	}

	var err error
	scr.texture, err = scr.renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING, width, height)
	if err != nil {
		return fmt.Errorf("screen: %v", err)
	}

	scr.width = width
	scr.height = height
	scr.pixels = make([]byte, width*height*4)

	return nil
}

// SwapBuffers implements the GPU's Renderer interface.
func (scr *SDLScreen) SwapBuffers() {
	fb := scr.g.Framebuffer(gpu.DisplayTop)
	if fb.Width == 0 || fb.Height == 0 {
		return
	}

	if int32(fb.Width) != scr.width || int32(fb.Height) != scr.height {
		if err := scr.resize(int32(fb.Width), int32(fb.Height)); err != nil {
			logger.Log("screen", err.Error())
			return
		}
	}

	addr := fb.AddressLeft1
	if fb.ActiveBuffer == 1 {
		addr = fb.AddressLeft2
	}

	virt, ok := scr.mem.PhysicalToVirtual(addr)
	if !ok {
		logger.Logf("screen", "framebuffer not mapped: %#08x", addr)
		return
	}
	src, ok := scr.mem.GetPointer(virt)
	if !ok {
		logger.Logf("screen", "framebuffer not mapped: %#08x", addr)
		return
	}

	if !stage(scr.pixels, src, fb.Format, int(fb.Width*fb.Height)) {
		logger.Logf("screen", "cannot present format %s", fb.Format)
		return
	}

	if err := scr.texture.Update(nil, scr.pixels, int(scr.width*4)); err != nil {
		logger.Log("screen", err.Error())
		return
	}
	scr.renderer.Clear()
	scr.renderer.Copy(scr.texture, nil, nil)
	scr.renderer.Present()
}

// stage converts count pixels from the framebuffer format to RGBA. It
// returns false if the format cannot be presented or src is too short.
func stage(dst []byte, src []byte, format gpu.PixelFormat, count int) bool {
	switch format {
	case gpu.FormatRGB8:
		if count*3 > len(src) {
			return false
		}
		for i := 0; i < count; i++ {
			dst[i*4] = src[i*3]
			dst[i*4+1] = src[i*3+1]
			dst[i*4+2] = src[i*3+2]
			dst[i*4+3] = 0xff
		}

	case gpu.FormatRGBA8:
		if count*4 > len(src) {
			return false
		}
		copy(dst, src[:count*4])

	default:
		return false
	}

	return true
}

// Service processes window events. It must be called from the main thread,
// as part of the emulation loop. The return value is false when the window
// has been asked to close.
func (scr *SDLScreen) Service() bool {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN && ev.Keysym.Sym == sdl.K_ESCAPE {
				return false
			}
		}
	}
	return true
}

// Destroy releases the SDL resources.
func (scr *SDLScreen) Destroy() {
	if scr.texture != nil {
		scr.texture.Destroy()
	}
	if scr.renderer != nil {
		scr.renderer.Destroy()
	}
	if scr.window != nil {
		scr.window.Destroy()
	}
	sdl.Quit()
}
