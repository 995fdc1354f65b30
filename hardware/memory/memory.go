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

// Package memory emulates the physical memory regions the GPU works
// against: VRAM and FCRAM. It implements the GPU's MemoryBus contract.
// Address translation failures are reported through the boolean returns,
// never by panicking, whatever the guest supplies.
package memory

// Physical and virtual bases of the emulated memory regions. The virtual
// addresses are where the regions appear in the guest process address
// space (FCRAM through the linear heap).
const (
	VRAMPhysical = 0x18000000
	VRAMVirtual  = 0x1f000000
	VRAMSize     = 0x00600000

	FCRAMPhysical = 0x20000000
	FCRAMVirtual  = 0x14000000
	FCRAMSize     = 0x08000000
)

type region struct {
	label string
	phys  uint32
	virt  uint32
	data  []byte
}

// Memory is the emulated physical memory. Create with NewMemory().
type Memory struct {
	regions []region
}

// NewMemory allocates the emulated VRAM and FCRAM regions.
func NewMemory() *Memory {
	return &Memory{
		regions: []region{
			{label: "VRAM", phys: VRAMPhysical, virt: VRAMVirtual, data: make([]byte, VRAMSize)},
			{label: "FCRAM", phys: FCRAMPhysical, virt: FCRAMVirtual, data: make([]byte, FCRAMSize)},
		},
	}
}

// PhysicalToVirtual maps a physical address to its virtual address. The
// boolean return is false if the address is in no emulated region.
func (m *Memory) PhysicalToVirtual(phys uint32) (uint32, bool) {
	for _, r := range m.regions {
		if phys >= r.phys && phys-r.phys < uint32(len(r.data)) {
			return r.virt + (phys - r.phys), true
		}
	}
	return 0, false
}

// GetPointer returns the bytes from the virtual address to the end of its
// region. The boolean return is false if the address is in no emulated
// region.
func (m *Memory) GetPointer(virt uint32) ([]byte, bool) {
	for _, r := range m.regions {
		if virt >= r.virt && virt-r.virt < uint32(len(r.data)) {
			return r.data[virt-r.virt:], true
		}
	}
	return nil, false
}
