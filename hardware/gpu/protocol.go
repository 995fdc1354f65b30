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

// MemoryBus translates guest physical addresses and exposes the bytes that
// back them. Both operations report failure explicitly; the GPU never
// dereferences an unmapped address.
type MemoryBus interface {
	// PhysicalToVirtual maps a physical address to a virtual address. The
	// boolean return is false if the address is not mapped.
	PhysicalToVirtual(phys uint32) (uint32, bool)

	// GetPointer returns the bytes backing the virtual address, from that
	// address to the end of the containing region.
	GetPointer(virt uint32) ([]byte, bool)
}

// InterruptID identifies the interrupt being raised by the GPU.
type InterruptID int

// List of valid InterruptID values. The names follow the hardware display
// controller (PDC) interrupt sources.
const (
	// InterruptPDC0 is raised once per emulated scanline and marks the
	// start of vblank.
	InterruptPDC0 InterruptID = iota

	// InterruptPDC1 is raised once per emulated frame, when the scanline
	// counter wraps.
	InterruptPDC1
)

func (id InterruptID) String() string {
	switch id {
	case InterruptPDC0:
		return "PDC0"
	case InterruptPDC1:
		return "PDC1"
	}
	return "unknown"
}

// InterruptController receives interrupt signals from the GPU.
// Fire-and-forget, there is no return path.
type InterruptController interface {
	SignalInterrupt(id InterruptID)
}

// Renderer presents the active framebuffer. SwapBuffers is assumed to be
// non-blocking.
type Renderer interface {
	SwapBuffers()
}

// CommandProcessor consumes a 3D command list. The call is synchronous and
// may itself write to GPU registers, which is why trigger dispatch bounds
// its recursion depth.
type CommandProcessor interface {
	ProcessCommandList(buffer []byte, words uint32)
}

// ClockSource reports the emulated CPU tick count. Ticks increase
// monotonically.
type ClockSource interface {
	GetTicks() uint64
}

// RescheduleSignal reports whether the external scheduler is currently
// between thread reschedules. The flag is owned elsewhere; the GPU only
// reads it.
type RescheduleSignal interface {
	Rescheduled() bool
}

// Environment gathers the external collaborators a GPU instance needs.
// Every field is required.
type Environment struct {
	Mem        MemoryBus
	Interrupts InterruptController
	Renderer   Renderer
	Commands   CommandProcessor
	Clock      ClockSource
	Reschedule RescheduleSignal
}
