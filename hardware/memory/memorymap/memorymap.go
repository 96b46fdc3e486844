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

// Package memorymap records the memory geography of the console: the origin
// address and extent of every addressable region. It is a leaf package so
// that any other package can name an address or a size without importing
// the memory implementation.
package memorymap

// Region origin addresses.
const (
	OriginBios        = 0x00000000
	OriginWorkingRAM  = 0x02000000
	OriginInternalRAM = 0x03000000
	OriginIO          = 0x04000000
	OriginPalette     = 0x05000000
	OriginVRAM        = 0x06000000
	OriginOAM         = 0x07000000
	OriginCart        = 0x08000000
	OriginSaveRAM     = 0x0e000000
)

// Region sizes in bytes.
const (
	SizeBios        = 0x00004000
	SizeWorkingRAM  = 0x00040000
	SizeInternalRAM = 0x00008000
	SizeIO          = 0x00000400
	SizePalette     = 0x00000400
	SizeVRAM        = 0x00018000
	SizeOAM         = 0x00000400
	SizeCart        = 0x02000000
	SizeSaveRAM     = 0x00010000
)

// Stack pointer initialisation values for the privilege modes that matter
// at reset.
const (
	StackBaseSystem     = 0x03007f00
	StackBaseIRQ        = 0x03007fa0
	StackBaseSupervisor = 0x03007fe0
)

// NextPow2 returns the next power of two equal to or greater than size.
// A size of zero returns zero.
func NextPow2(size uint32) uint32 {
	if size == 0 {
		return 0
	}
	size--
	size |= size >> 1
	size |= size >> 2
	size |= size >> 4
	size |= size >> 8
	size |= size >> 16
	return size + 1
}
