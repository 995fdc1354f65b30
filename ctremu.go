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

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bradleyjkemp/memviz"

	"github.com/ctremu/ctremu/hardware/clocks"
	"github.com/ctremu/ctremu/hardware/gpu"
	"github.com/ctremu/ctremu/hardware/memory"
	"github.com/ctremu/ctremu/logger"
	"github.com/ctremu/ctremu/monitor"
	"github.com/ctremu/ctremu/screen"
	"github.com/ctremu/ctremu/statsview"
)

// register indices used by the demo guest.
const (
	regFillStart = 0x004
	regFillEnd   = 0x005
	regFillValue = 0x007

	regTransferInput      = 0x300
	regTransferOutput     = 0x301
	regTransferOutputSize = 0x302
	regTransferInputSize  = 0x303
	regTransferFlags      = 0x304
	regTransferTrigger    = 0x306
)

// interrupts counts the interrupts the GPU raises. A real GSP service
// would relay them to guest threads.
type interrupts struct {
	line  int
	frame int
}

func (i *interrupts) SignalInterrupt(id gpu.InterruptID) {
	switch id {
	case gpu.InterruptPDC0:
		i.line++
	case gpu.InterruptPDC1:
		i.frame++
	}
}

// commands discards command lists. The 3D command interpreter is not part
// of this program.
type commands struct{}

func (c *commands) ProcessCommandList(buffer []byte, words uint32) {
	logger.Logf("main", "discarding command list of %d words", words)
}

// reschedule is a permanently raised reschedule flag. Without a thread
// scheduler in the loop there is no better signal to offer.
type reschedule struct{}

func (r *reschedule) Rescheduled() bool {
	return true
}

// nullRenderer counts frame swaps. Used in place of the SDL screen when
// running headless.
type nullRenderer struct {
	swaps int
}

func (r *nullRenderer) SwapBuffers() {
	r.swaps++
}

func main() {
	fps := flag.Int("fps", 60, "refresh rate the GPU is initialised with")
	frames := flag.Int("frames", 0, "number of frames to run for (0 means until quit)")
	headless := flag.Bool("headless", false, "run without a window")
	scale := flag.Float64("scale", 2.0, "window scale")
	echoLog := flag.Bool("log", false, "echo the log to stderr")
	memvizFile := flag.String("memviz", "", "write a graphviz dump of the GPU state to this file on exit")
	shot := flag.String("screenshot", "", "write a BMP of the final frame to this file on exit")
	stats := flag.Bool("statsview", false, "launch the statsview server (requires the statsview build tag)")
	flag.Parse()

	if *echoLog {
		logger.SetEcho(os.Stderr)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Fprintln(os.Stderr, "statsview not available in this build")
		}
	}

	if err := run(*fps, *frames, *headless, float32(*scale), *memvizFile, *shot); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		logger.Tail(os.Stderr, 10)
		os.Exit(1)
	}
}

func run(fps int, frames int, headless bool, scale float32, memvizFile string, shot string) error {
	mem := memory.NewMemory()
	irq := &interrupts{}
	clk := clocks.NewWallClock()

	var scr *screen.SDLScreen
	null := &nullRenderer{}

	env := gpu.Environment{
		Mem:        mem,
		Interrupts: irq,
		Commands:   &commands{},
		Clock:      clk,
		Reschedule: &reschedule{},
		Renderer:   null,
	}

	g, err := gpu.NewGPU(env, nil)
	if err != nil {
		return err
	}
	if err := g.Init(fps); err != nil {
		return err
	}

	// the SDL screen reads the framebuffer registers so the GPU must exist
	// first. replacing the renderer means rebuilding the GPU with the same
	// register state, which Init() gives us.
	if !headless {
		scr, err = screen.NewSDLScreen(g, mem, scale)
		if err != nil {
			return err
		}
		defer scr.Destroy()

		env.Renderer = scr
		g, err = gpu.NewGPU(env, nil)
		if err != nil {
			return err
		}
		if err := g.Init(fps); err != nil {
			return err
		}
	}

	mon, err := monitor.NewMonitor()
	if err == nil {
		defer mon.Restore()
	} else {
		logger.Logf("main", "no terminal monitor: %v", err)
		mon = nil
	}

	defer g.Shutdown()

	fb := g.Framebuffer(gpu.DisplayTop)

	// the demo guest draws into FCRAM and display-transfers into the
	// bootstrap framebuffer in VRAM
	const srcPhysical = memory.FCRAMPhysical

	srcVirt, _ := mem.PhysicalToVirtual(srcPhysical)
	src, _ := mem.GetPointer(srcVirt)

	write := func(index uint32, value uint32) {
		g.Write(gpu.BaseAddress+index*4, gpu.Width32, value)
	}

	// clear the framebuffer with the fill engine before the first transfer
	fbBytes := fb.Width * fb.Height * 3
	write(regFillStart, fb.AddressLeft1>>3)
	write(regFillEnd, (fb.AddressLeft1+fbBytes)>>3)
	write(regFillValue, 0x00000000)

	// program the transfer once; only the trigger is rewritten per frame
	write(regTransferInput, srcPhysical>>3)
	write(regTransferOutput, fb.AddressLeft1>>3)
	write(regTransferInputSize, fb.Width|fb.Height<<16)
	write(regTransferOutputSize, fb.Width|fb.Height<<16)
	write(regTransferFlags, uint32(gpu.FormatRGBA8)<<8|uint32(gpu.FormatRGB8)<<12)

	paused := false
	quit := false
	frame := 0

	for !quit && (frames == 0 || frame < frames) {
		if scr != nil && !scr.Service() {
			break
		}

		if mon != nil {
			if k, ok := mon.Check(); ok {
				switch k {
				case 'q':
					quit = true
				case 'p':
					paused = !paused
				case 's':
					if err := screen.Screenshot(g, mem, fmt.Sprintf("ctremu_%d.bmp", frame)); err != nil {
						logger.Log("main", err.Error())
					}
				case 'r':
					fmt.Println(g.String())
					for index, name := range gpu.Layout {
						if v, ok := g.Peek(index); ok {
							fmt.Printf("  %s = %#08x\n", name, v)
						}
					}
				}
			}
		}

		if !paused {
			drawTestPattern(src, int(fb.Width), int(fb.Height), frame)
			write(regTransferTrigger, 1)
			frame++
		}

		g.Update()
		time.Sleep(time.Millisecond)
	}

	if shot != "" {
		if err := screen.Screenshot(g, mem, shot); err != nil {
			return err
		}
	}

	if memvizFile != "" {
		f, err := os.Create(memvizFile)
		if err != nil {
			return err
		}
		defer f.Close()
		memviz.Map(f, g)
	}

	fmt.Printf("%d frames drawn, %d line interrupts, %d frame interrupts\n",
		frame, irq.line, irq.frame)
	if headless {
		fmt.Printf("%d buffer swaps\n", null.swaps)
	}

	return nil
}

// drawTestPattern fills an RGBA8 buffer with a moving gradient.
func drawTestPattern(buf []byte, width, height, frame int) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			o := (y*width + x) * 4
			buf[o] = byte(x + frame)
			buf[o+1] = byte(y + frame)
			buf[o+2] = byte(frame)
			buf[o+3] = 0xff
		}
	}
}
