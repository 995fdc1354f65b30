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

// processCommandList hands the configured buffer to the external command
// processor (P3D). The size register counts units of eight words. Nothing
// is returned to the trigger path; the command processor may write GPU
// registers while it runs.
func (g *GPU) processCommandList() error {
	if g.regs[idxCommandTrigger]&1 != 1 {
		return nil
	}

	addr := decodeAddress(g.regs[idxCommandAddress])
	words := g.regs[idxCommandSize] << 3

	buf, ok := g.resolve(addr)
	if !ok {
		return g.diagnose(DiagInvalidMemoryRegion, InvalidMemoryRegion,
			fmt.Sprintf("command list %#08x", addr))
	}

	if int(words)*4 > len(buf) {
		return g.diagnose(DiagInvalidMemoryRegion, InvalidMemoryRegion,
			fmt.Sprintf("command list %#08x length %d words", addr, words))
	}

	logger.Logf("gpu", "command list %#08x (%d words)", addr, words)
	g.env.Commands.ProcessCommandList(buf[:words*4], words)

	return nil
}
