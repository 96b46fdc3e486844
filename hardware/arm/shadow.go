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

// The shadow instruction table holds trap opcodes that the fetch path
// delivers in place of the instruction in memory. Keeping the traps out of
// the backing ROM/RAM buffers means a breakpoint can never leak into a
// checksum, a save state or a mapped file.

type shadowEntry struct {
	mode     ExecutionMode
	trap     uint32
	original uint32
}

// SetShadow installs a trap opcode for the address. The instruction
// currently in memory at that address is captured and returned for later
// restoration.
func (c *Core) SetShadow(addr uint32, mode ExecutionMode, trap uint32) uint32 {
	var original uint32
	if mode == ModeARM {
		op, _ := c.mem.FetchARM(addr)
		original = op
	} else {
		op, _ := c.mem.FetchThumb(addr)
		original = uint32(op)
	}

	c.shadow[addr] = shadowEntry{
		mode:     mode,
		trap:     trap,
		original: original,
	}

	return original
}

// ClearShadow removes the trap opcode for the address. The original opcode
// is the value returned by the corresponding SetShadow() call; it is
// accepted and discarded because the instruction in memory was never
// altered.
func (c *Core) ClearShadow(addr uint32, mode ExecutionMode, original uint32) {
	delete(c.shadow, addr)
}

// ClearAllShadows removes every trap opcode. Used on debugger detach.
func (c *Core) ClearAllShadows() {
	for k := range c.shadow {
		delete(c.shadow, k)
	}
}

// shadowLookup returns the trap opcode for the address, if one is installed
// for the current execution mode.
func (c *Core) shadowLookup(addr uint32, mode ExecutionMode) (uint32, bool) {
	e, ok := c.shadow[addr]
	if !ok || e.mode != mode {
		return 0, false
	}
	return e.trap, true
}
