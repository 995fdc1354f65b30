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

// Package curated provides the error type used throughout the emulation.
// A curated error pairs a message pattern with the values used to fill
// that pattern. Because the pattern survives inside the error value,
// callers can test for a category of error without string comparison of
// the formatted message:
//
//	if curated.Is(err, gpu.UnsupportedAccess) {
//		...
//	}
//
// Packages declare their patterns as exported string constants. The
// pattern is also the format string, so declaration and presentation
// stay in one place.
package curated
