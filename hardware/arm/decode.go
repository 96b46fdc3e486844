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

package arm

// DecodeBranch examines a 32bit ARM opcode and, if it is a B or BL
// instruction, returns the branch offset in bytes. The offset is the raw
// shifted immediate; it does not include the two-instruction prefetch
// adjustment.
//
// Used by image fingerprinting to inspect the entry-point branch of a
// candidate multiboot image.
func DecodeBranch(opcode uint32) (offset int32, ok bool) {
	if opcode&0x0e000000 != 0x0a000000 {
		return 0, false
	}
	return signExtend24(opcode&0x00ffffff) << 2, true
}
