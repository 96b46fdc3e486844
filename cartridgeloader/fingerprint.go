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

package cartridgeloader

import (
	"encoding/binary"

	"github.com/jetsetilly/gopheradvance/hardware/arm"
	"github.com/jetsetilly/gopheradvance/hardware/memory/memorymap"
)

// number of exception vectors checked by IsBIOS.
const biosVectorCount = 7

// offset of the joybus entry point branch used by IsMultiboot.
const multibootBranchOffset = 0xc0

// IsBIOS returns true if the loaded data looks like a BIOS image. The test
// is whether the first seven exception vectors are all unconditional ARM
// branches with a short target.
func (cl *Loader) IsBIOS() bool {
	if len(cl.Data) < biosVectorCount*4 {
		return false
	}
	for i := 0; i < biosVectorCount; i++ {
		if cl.Data[i*4+3] != 0xea || cl.Data[i*4+2] != 0x00 {
			return false
		}
	}
	return true
}

// IsROM returns true if the loaded data looks like a cartridge or multiboot
// image: the entry point at address zero must be an unconditional ARM
// branch. BIOS images satisfy that test too so they are explicitly
// excluded.
func (cl *Loader) IsROM() bool {
	if len(cl.Data) < 4 {
		return false
	}
	if cl.IsBIOS() {
		return false
	}
	return cl.Data[3] == 0xea
}

// IsMultiboot returns true if the loaded data looks like a multiboot
// program: a ROM small enough to fit in working RAM whose joybus entry
// point at offset 0xc0 branches past the multiboot header.
func (cl *Loader) IsMultiboot() bool {
	if !cl.IsROM() {
		return false
	}
	if cl.Size() > memorymap.SizeWorkingRAM {
		return false
	}
	if len(cl.Data) < multibootBranchOffset+4 {
		return false
	}

	opcode := binary.LittleEndian.Uint32(cl.Data[multibootBranchOffset:])
	offset, ok := arm.DecodeBranch(opcode)
	if !ok {
		return false
	}

	if offset <= 0 {
		return false
	}
	if offset == 28 {
		// an ancient toolchain emitted this branch as part of a busy
		// loop. known not to be a multiboot entry point
		return false
	}
	if offset == 24 {
		// libgba emits this branch at 0xc0 in ordinary cartridge images
		return false
	}

	return true
}
