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

// Package clocks defines the constant values that describe the speed of
// the console's application CPU, and a wall-clock tick source for running
// the emulation without a CPU core.
package clocks

import "time"

const (
	// ARM11 is the rate of the application CPU clock in cycles per second.
	ARM11 = 268123480

	// CyclesPerInstruction approximates how many ARM11 cycles one emulated
	// instruction takes. Tick counts reported by the CPU core are in
	// instruction units, so per-frame cycle budgets are divided by this
	// value before being compared with tick deltas.
	CyclesPerInstruction = 3
)

// WallClock reports ticks derived from host time, scaled to the emulated
// instruction rate. It stands in for a CPU core's tick counter when the
// emulation is driven in real time.
type WallClock struct {
	origin time.Time
}

// NewWallClock creates a WallClock with the tick origin at the current
// host time.
func NewWallClock() *WallClock {
	return &WallClock{origin: time.Now()}
}

// GetTicks implements the GPU's ClockSource interface.
func (c *WallClock) GetTicks() uint64 {
	elapsed := time.Since(c.origin)
	return uint64(elapsed.Seconds() * (ARM11 / CyclesPerInstruction))
}
