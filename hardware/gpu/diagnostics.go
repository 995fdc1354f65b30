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
	"github.com/ctremu/ctremu/curated"
	"github.com/ctremu/ctremu/logger"
)

// Error patterns raised by the gpu package. Test with curated.Is().
const (
	// UnsupportedAccess is an access to an unknown register index or with
	// an access width other than 32 bits. The access is a no-op.
	UnsupportedAccess = "gpu: unsupported access: %v"

	// UnsupportedFormat is a pixel format the display transfer engine does
	// not implement. The affected pixels are left unset.
	UnsupportedFormat = "gpu: unsupported format: %v"

	// InvalidMemoryRegion is a guest supplied address that the memory bus
	// cannot resolve, or a range that runs off the end of its region. The
	// memory operation is abandoned.
	InvalidMemoryRegion = "gpu: invalid memory region: %v"

	// TriggerDepthExceeded is a chain of nested triggers deeper than the
	// dispatch guard allows. The innermost trigger is skipped.
	TriggerDepthExceeded = "gpu: trigger depth exceeded: %v"
)

// DiagnosticKind indexes the counters in Diagnostics. Every entry in the
// error taxonomy has a counter.
type DiagnosticKind int

// List of valid DiagnosticKind values.
const (
	DiagUnsupportedAccess DiagnosticKind = iota
	DiagUnsupportedFormat
	DiagInvalidMemoryRegion
	DiagTriggerDepthExceeded
	numDiagnosticKinds
)

// Diagnostics records every degraded operation since Init. No failure in
// the GPU is fatal to the host; tests and monitors observe failures here
// rather than by scraping the log.
type Diagnostics struct {
	Counts    [numDiagnosticKinds]int
	LastError error
}

// Count returns the number of diagnostics of the specified kind.
func (d Diagnostics) Count(kind DiagnosticKind) int {
	return d.Counts[kind]
}

// Diagnostics returns a copy of the diagnostic record.
func (g *GPU) Diagnostics() Diagnostics {
	return g.diag
}

// diagnose records a degraded operation. The returned error is nil unless
// the strict preference is set, in which case the caller is expected to
// surface it. In either case the caller abandons the failed operation; the
// error value only decides whether the guest-visible call reports it.
func (g *GPU) diagnose(kind DiagnosticKind, pattern string, detail interface{}) error {
	err := curated.Errorf(pattern, detail)

	g.diag.Counts[kind]++
	g.diag.LastError = err
	logger.Log("gpu", err.Error())

	if g.Prefs.Strict.Get().(bool) {
		return err
	}
	return nil
}
