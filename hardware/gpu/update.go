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

import "github.com/ctremu/ctremu/logger"

// Update advances the frame and scanline state from the elapsed CPU ticks.
// The external scheduler calls it at checkpoints of its own choosing.
//
// Frames are swapped on the assumption that the active framebuffer is
// always complete. Swapping before scanline synchronization, rather than
// after, is the ordering that works for both homebrew and retail software:
// primitive homebrew relies on a vertical blank happening regardless of a
// thread reschedule. Do not reorder.
func (g *GPU) Update() {
	current := g.env.Clock.GetTicks()

	if current-g.lastFrameTicks > g.frameTicks {
		g.env.Renderer.SwapBuffers()
		g.lastFrameTicks = current
	}

	// a true vertical blank cannot be predicted at checkpoint granularity
	// so it is simulated between thread reschedules. retail software has
	// been observed to behave better when the signal happens there.
	if !g.env.Reschedule.Rescheduled() {
		return
	}

	height := uint64(g.Framebuffer(DisplayTop).Height)
	if height == 0 {
		logger.Log("gpu", "scanline sync suspended: framebuffer height is zero")
		return
	}

	if current-g.lastLineTicks >= g.frameTicks/height {
		g.env.Interrupts.SignalInterrupt(InterruptPDC0)
		g.line++
		g.lastLineTicks = current
	}

	if uint64(g.line) >= height {
		g.line = 0
		g.env.Interrupts.SignalInterrupt(InterruptPDC1)
	}
}
