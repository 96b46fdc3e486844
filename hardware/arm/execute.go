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

// The executor recognises the instructions the platform depends on for its
// own operation: branches (control flow and the multiboot entry), supervisor
// calls, BKPT traps, MRS (which triggers the platform's pending-interrupt
// test) and the architecturally undefined space. Every other defined opcode
// is accounted for in cycles but has no architectural effect.

// Step runs the core for one instruction boundary. If the consumed-cycle
// counter has reached the next-event cursor, or the core is halted, the
// platform's event scheduler runs instead.
func (c *Core) Step() {
	if c.Cycles >= c.NextEvent || c.Halted {
		if c.Handlers.ProcessEvents != nil {
			c.Handlers.ProcessEvents()
		}
		if c.Halted {
			return
		}
	}

	if c.fakeQueued {
		// a queued synthetic instruction executes in whichever mode the
		// core is in and advances the PC past the displaced instruction
		c.fakeQueued = false
		if c.ExecutionMode == ModeThumb {
			c.executeThumb(uint16(c.fakeOpcode), 0)
		} else {
			c.executeARM(c.fakeOpcode, 0, true)
		}
		return
	}

	if c.ExecutionMode == ModeThumb {
		addr := c.GPRs[PC]
		opcode, cost := c.mem.FetchThumb(addr)
		if trap, ok := c.shadowLookup(addr, ModeThumb); ok {
			opcode = uint16(trap)
		}
		c.executeThumb(opcode, cost)
		return
	}

	addr := c.GPRs[PC]
	opcode, cost := c.mem.FetchARM(addr)
	if trap, ok := c.shadowLookup(addr, ModeARM); ok {
		opcode = trap
	}
	c.executeARM(opcode, cost, true)
}

func signExtend24(v uint32) int32 {
	if v&0x00800000 != 0 {
		v |= 0xff000000
	}
	return int32(v)
}

func signExtend11(v uint32) int32 {
	if v&0x0400 != 0 {
		v |= 0xfffff800
	}
	return int32(v)
}

func (c *Core) executeARM(opcode uint32, cost int32, advance bool) {
	c.Cycles += cost

	switch {
	case opcode&0xfff000f0 == 0xe1200070:
		// BKPT. the immediate field carries the component tag of whoever
		// installed the trap
		imm := int(opcode&0xf | (opcode>>4)&0xfff0)
		if c.Handlers.Bkpt32 != nil {
			c.Handlers.Bkpt32(imm)
		}
		return

	case opcode&0x0f000000 == 0x0f000000:
		// SWI
		if advance {
			c.GPRs[PC] += WordSizeARM
		}
		if c.Handlers.SWI32 != nil {
			c.Handlers.SWI32(opcode & 0x00ffffff)
		}
		return

	case opcode&0x0e000000 == 0x0a000000:
		// B/BL. the branch target is relative to the fetch address plus the
		// two-instruction prefetch
		offset := signExtend24(opcode&0x00ffffff) << 2
		if opcode&0x01000000 != 0 {
			c.GPRs[LR] = c.GPRs[PC] + WordSizeARM
		}
		c.GPRs[PC] = uint32(int32(c.GPRs[PC]) + 2*WordSizeARM + offset)

		// pipeline refill
		c.Cycles += 2
		return

	case opcode&0x0fbf0fff == 0x010f0000:
		// MRS. reading the status register gives the platform the chance to
		// reevaluate pending interrupts
		if c.Handlers.ReadCPSR != nil {
			c.Handlers.ReadCPSR()
		}
		rd := (opcode >> 12) & 0xf
		c.GPRs[rd] = c.CPSR.Value()
		if advance {
			c.GPRs[PC] += WordSizeARM
		}
		return

	case opcode&0x0e000010 == 0x06000010:
		// architecturally undefined space
		if c.Handlers.HitIllegal != nil {
			c.Handlers.HitIllegal(opcode)
		}
		return

	case opcode&0x0c000000 == 0x0c000000:
		// coprocessor space. defined but outside the executor's coverage
		if advance {
			c.GPRs[PC] += WordSizeARM
		}
		if c.Handlers.HitStub != nil {
			c.Handlers.HitStub(opcode)
		}
		return
	}

	// remaining defined opcodes have no architectural effect here
	if advance {
		c.GPRs[PC] += WordSizeARM
	}
}

func (c *Core) executeThumb(opcode uint16, cost int32) {
	c.Cycles += cost

	switch {
	case opcode&0xff00 == 0xbe00:
		// BKPT
		if c.Handlers.Bkpt16 != nil {
			c.Handlers.Bkpt16(int(opcode & 0xff))
		}
		return

	case opcode&0xff00 == 0xdf00:
		// SWI
		c.GPRs[PC] += WordSizeThumb
		if c.Handlers.SWI16 != nil {
			c.Handlers.SWI16(uint8(opcode & 0xff))
		}
		return

	case opcode&0xf800 == 0xe000:
		// unconditional branch
		offset := signExtend11(uint32(opcode&0x07ff)) << 1
		c.GPRs[PC] = uint32(int32(c.GPRs[PC]) + 2*WordSizeThumb + offset)
		c.Cycles += 2
		return
	}

	c.GPRs[PC] += WordSizeThumb
}
