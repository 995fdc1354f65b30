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

// Package gpu emulates the display controller register block of the
// console. Guest software sees a fixed window of 32bit registers at
// physical address 0x1EF00000. Writes to a handful of those registers
// trigger hardware engines: two memory fill channels (PSC0/PSC1), the
// display transfer engine (PPF) and the command list processor (P3D).
// Triggered engines run synchronously, to completion, before the
// triggering Write() call returns.
//
// The Update() function approximates scanline and vblank timing from the
// emulated CPU clock. It is pull-based: the external scheduler calls it at
// checkpoints of its own choosing and the GPU decides, from elapsed ticks,
// whether a frame swap or a line interrupt is due. This is deliberately
// not cycle accurate. Modelling every scanline transition on every
// emulated instruction costs too much; signalling at scheduler checkpoints
// has proven accurate enough for both homebrew and retail software.
//
// A GPU instance owns its register file and timing state. The type has no
// internal locking. Register access and Update() are assumed to be driven
// from the same cooperative execution context; if that does not hold for a
// host, mutual exclusion must be added around the whole instance, not
// inside individual operations.
package gpu
