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
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/ctremu/ctremu/logger"
)

// memoryFill runs one of the two fill channels (PSC0/PSC1). The channel is
// triggered by a write to its fill value register, an assumption controlled
// by the FillOnValueWrite preference. A channel with a zero start address
// is quiescent.
//
// The size register is never consulted. Only the decoded start and end
// addresses matter, which is how guest software has been observed to drive
// the channel.
func (g *GPU) memoryFill(channel int) error {
	if !g.Prefs.FillOnValueWrite.Get().(bool) {
		return nil
	}

	base := uint32(idxFill0Start + channel*4)

	if g.regs[base] == 0 {
		return nil
	}

	start := decodeAddress(g.regs[base])
	end := decodeAddress(g.regs[base+1])
	value := g.regs[base+3]

	if end <= start {
		return nil
	}

	buf, ok := g.resolve(start)
	if !ok {
		return g.diagnose(DiagInvalidMemoryRegion, InvalidMemoryRegion,
			fmt.Sprintf("fill%d start %#08x", channel, start))
	}

	length := int(end - start)
	if length > len(buf) {
		return g.diagnose(DiagInvalidMemoryRegion, InvalidMemoryRegion,
			fmt.Sprintf("fill%d end %#08x", channel, end))
	}

	// the byte order reversal stands in for per-format fill semantics that
	// are not modelled
	rev := bits.ReverseBytes32(value)
	for i := 0; i+4 <= length; i += 4 {
		binary.LittleEndian.PutUint32(buf[i:], rev)
	}

	logger.Logf("gpu", "memory fill from %#08x to %#08x", start, end)

	return nil
}
