// This file is part of GopherAdvance.
//
// GopherAdvance is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherAdvance is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherAdvance.  If not, see <https://www.gnu.org/licenses/>.

// Package patch applies binary patches to ROM images. The memory subsystem
// always patches from the pristine copy of the ROM so a patch can be applied
// and reverted without accumulating changes.
package patch

// Patch is a binary patch in any supported format.
type Patch interface {
	// OutputSize returns the size of the patched image given the size of
	// the image being patched. A return value of zero indicates that the
	// patch cannot be applied
	OutputSize(currentSize uint32) uint32

	// Apply writes the patched image into output. The pristine slice is
	// the unpatched image and must not be modified
	Apply(pristine []byte, output []byte) error
}
