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

import "fmt"

// Width is the bit width of a register access.
type Width int

// List of valid Width values. Only Width32 is supported by the hardware;
// the other widths exist so that guest accesses of those widths can be
// classified rather than mistranslated.
const (
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64
)

// maxTriggerDepth bounds nested trigger dispatch. A command list can write
// to trigger registers while it is being processed; triggers stay
// synchronous but a chain deeper than this is refused.
const maxTriggerDepth = 8

// Read the register at the physical address. Accesses other than 32 bits
// wide, and addresses outside the register window, are classified
// UnsupportedAccess: the returned value is zero and, in permissive mode,
// the error is nil.
func (g *GPU) Read(addr uint32, width Width) (uint32, error) {
	index := (addr - BaseAddress) / 4

	if width != Width32 || index >= NumRegisters {
		return 0, g.diagnose(DiagUnsupportedAccess, UnsupportedAccess,
			fmt.Sprintf("read%d @ %#08x", width, addr))
	}

	return g.regs[index], nil
}

// Write value to the register at the physical address. On success the
// register file is updated and, if the register is a trigger register, the
// corresponding engine runs to completion before Write returns. Accesses
// other than 32 bits wide, and addresses outside the register window, are
// classified UnsupportedAccess and nothing is stored.
func (g *GPU) Write(addr uint32, width Width, value uint32) error {
	index := (addr - BaseAddress) / 4

	if width != Width32 || index >= NumRegisters {
		return g.diagnose(DiagUnsupportedAccess, UnsupportedAccess,
			fmt.Sprintf("write%d %#08x @ %#08x", width, value, addr))
	}

	g.regs[index] = value

	return g.trigger(index)
}

// trigger runs the engine attached to the register index, if any. Engines
// can cause further register writes (the command processor in particular)
// so dispatch is guarded by a recursion depth limit.
func (g *GPU) trigger(index uint32) error {
	var run func() error

	switch index {
	case idxFill0Value:
		run = func() error { return g.memoryFill(0) }
	case idxFill1Value:
		run = func() error { return g.memoryFill(1) }
	case idxTransferTrigger:
		run = g.displayTransfer
	case idxCommandTrigger:
		run = g.processCommandList
	default:
		return nil
	}

	if g.triggerDepth >= maxTriggerDepth {
		return g.diagnose(DiagTriggerDepthExceeded, TriggerDepthExceeded,
			fmt.Sprintf("register %s", g.registerName(index)))
	}

	g.triggerDepth++
	defer func() {
		g.triggerDepth--
	}()

	return run()
}

// registerName returns the layout name for the index, or a hex rendering
// for unnamed registers.
func (g *GPU) registerName(index uint32) string {
	if name, ok := Layout[index]; ok {
		return name
	}
	return fmt.Sprintf("%#03x", index)
}
