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

	"github.com/ctremu/ctremu/curated"
	"github.com/ctremu/ctremu/hardware/clocks"
	"github.com/ctremu/ctremu/logger"
	"github.com/ctremu/ctremu/prefs"
)

// NotInitialised is returned by New() when the environment is incomplete
// and by Init() when the refresh rate is unusable.
const NotInitialised = "gpu: not initialised: %v"

// Preferences controlling GPU behaviour. Values can be changed at any time.
type Preferences struct {
	// Strict surfaces taxonomy failures as errors from Read() and Write().
	// The default, permissive, behaviour degrades to a diagnostic and a
	// no-op or partial result, which is what loosely written guest software
	// expects.
	Strict prefs.Bool

	// FillOnValueWrite runs a memory fill channel when its fill value
	// register is written. Real hardware has not been verified on this
	// point; the behaviour matches what system software appears to rely on
	// but it remains an assumption. Disabling the preference disables the
	// fill channels entirely.
	FillOnValueWrite prefs.Bool
}

// NewPreferences returns Preferences with default values.
func NewPreferences() *Preferences {
	p := &Preferences{}
	p.Strict.Set(false)
	p.FillOnValueWrite.Set(true)
	return p
}

// GPU is the display controller register block. Create with NewGPU() and
// prepare with Init(). All exported methods are for the single goroutine
// that drives the emulation.
type GPU struct {
	env   Environment
	Prefs *Preferences

	regs [NumRegisters]uint32

	// timing state. mutated only by Update() and Init().
	line           uint32
	lastLineTicks  uint64
	lastFrameTicks uint64

	// per-frame budgets, computed once by Init() from the refresh rate.
	frameCycles uint64
	frameTicks  uint64

	diag Diagnostics

	// current depth of nested trigger dispatch. see trigger() in
	// dispatch.go.
	triggerDepth int
}

// NewGPU creates a GPU instance attached to the collaborators in env. A nil
// prefs argument selects default preferences. Call Init() before use.
func NewGPU(env Environment, p *Preferences) (*GPU, error) {
	if env.Mem == nil || env.Interrupts == nil || env.Renderer == nil ||
		env.Commands == nil || env.Clock == nil || env.Reschedule == nil {
		return nil, curated.Errorf(NotInitialised, "incomplete environment")
	}

	if p == nil {
		p = NewPreferences()
	}

	return &GPU{
		env:   env,
		Prefs: p,
	}, nil
}

// Init establishes default register state and the timing baseline. The
// per-frame tick budget is derived from the refresh rate and the fixed CPU
// clock. Calling Init() a second time produces the same state as the
// first call, whatever has happened in between.
func (g *GPU) Init(refreshRate int) error {
	if refreshRate <= 0 {
		return curated.Errorf(NotInitialised, fmt.Sprintf("refresh rate %d", refreshRate))
	}

	g.frameCycles = clocks.ARM11 / uint64(refreshRate)
	g.frameTicks = g.frameCycles / clocks.CyclesPerInstruction

	g.line = 0
	now := g.env.Clock.GetTicks()
	g.lastLineTicks = now
	g.lastFrameTicks = now

	g.diag = Diagnostics{}
	g.triggerDepth = 0

	g.regs = [NumRegisters]uint32{}

	// bootstrap framebuffer addresses, located in VRAM. these are the
	// buffers system applets use. guest software overwrites them freely;
	// nothing re-enforces the values after this point.
	g.regs[idxFramebufferTop+fbLeft1] = 0x181e6000
	g.regs[idxFramebufferTop+fbLeft2] = 0x1822c800
	g.regs[idxFramebufferTop+fbRight1] = 0x18273000
	g.regs[idxFramebufferTop+fbRight2] = 0x182b9800
	g.regs[idxFramebufferSub+fbLeft1] = 0x1848f000
	g.regs[idxFramebufferSub+fbRight1] = 0x184c7800

	g.regs[idxFramebufferTop+fbSize] = 240 | 400<<16
	g.regs[idxFramebufferTop+fbStride] = 3 * 240
	g.regs[idxFramebufferTop+fbFormat] = uint32(FormatRGB8)
	g.regs[idxFramebufferTop+fbSelect] = 0

	g.regs[idxFramebufferSub+fbSize] = 240 | 320<<16
	g.regs[idxFramebufferSub+fbStride] = 3 * 240
	g.regs[idxFramebufferSub+fbFormat] = uint32(FormatRGB8)
	g.regs[idxFramebufferSub+fbSelect] = 0

	logger.Log("gpu", "initialised OK")

	return nil
}

// Shutdown the GPU. There is nothing to tear down, the function exists for
// the audit record.
func (g *GPU) Shutdown() {
	logger.Log("gpu", "shutdown OK")
}

// Scanline returns the current scanline counter.
func (g *GPU) Scanline() uint32 {
	return g.line
}

// FrameTicks returns the per-frame tick budget computed by Init().
func (g *GPU) FrameTicks() uint64 {
	return g.frameTicks
}

func (g *GPU) String() string {
	return fmt.Sprintf("line=%d frameTicks=%d lastLine=%d lastFrame=%d",
		g.line, g.frameTicks, g.lastLineTicks, g.lastFrameTicks)
}
