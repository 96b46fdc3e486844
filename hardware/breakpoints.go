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

package hardware

import (
	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/hardware/arm"
	"github.com/jetsetilly/gopheradvance/logger"
)

// Component tags identify who installed a breakpoint trap. The tag is
// encoded in the trap opcode's immediate field and recovered when the trap
// is hit.
const (
	TagDebugger = iota
	TagCheatDevice
	TagMax
)

// SetBreakpoint installs a trap at the address, on behalf of the component
// named by the tag. The opcode the trap displaces is returned; the caller
// needs it to clear the breakpoint again.
//
// The backing memory is never modified. The trap lives in the CPU's shadow
// instruction table and is seen only by instruction fetch.
func (g *GBA) SetBreakpoint(tag int, addr uint32, mode arm.ExecutionMode) (uint32, error) {
	if tag < 0 || tag >= TagMax {
		return 0, curated.Errorf("breakpoint: unknown component tag (%d)", tag)
	}

	var trap uint32
	if mode == arm.ModeARM {
		trap = 0xe1200070
		trap |= uint32(tag) & 0xf
		trap |= (uint32(tag) & 0xfff0) << 4
	} else {
		trap = 0xbe00
		trap |= uint32(tag) & 0xff
	}

	return g.CPU.SetShadow(addr, mode, trap), nil
}

// ClearBreakpoint removes the trap at the address. The opcode argument is
// the value returned by SetBreakpoint.
func (g *GBA) ClearBreakpoint(addr uint32, mode arm.ExecutionMode, opcode uint32) {
	g.CPU.ClearShadow(addr, mode, opcode)
}

// the CPU's breakpoint handler. the immediate recovered from the trap
// opcode says which component the trap belongs to.
func (g *GBA) breakpoint(imm int) {
	if imm >= TagMax {
		return
	}

	addr := g.CPU.GPRs[arm.PC]

	switch imm {
	case TagDebugger:
		if g.debugger != nil {
			g.debugger.HitBreakpoint(addr)
		}

	case TagCheatDevice:
		if g.cheats != nil {
			if patchedOpcode, ok := g.cheats.HookAt(addr); ok {
				g.CPU.RunFake(patchedOpcode)
			}
		}
	}
}

// the CPU's illegal-opcode handler. with a debugger attached the debugger
// decides what happens; without one the processor takes the undefined
// exception, as real hardware would. a yanked cartridge always ends up
// executing garbage so the log stays quiet in that case.
func (g *GBA) hitIllegal(opcode uint32) {
	if g.Mem.YankedRomSize == 0 {
		logger.Logf(g.env, "gba", "illegal opcode: %08x", opcode)
	}
	if g.debugger != nil {
		g.debugger.HitIllegal(g.CPU.GPRs[arm.PC], opcode)
		return
	}
	g.CPU.RaiseUndefined()
}

// the CPU's stub-opcode handler. the opcode is defined but outside the
// executor's coverage.
func (g *GBA) hitStub(opcode uint32) {
	logger.Logf(g.env, "gba", "stub opcode: %08x", opcode)
	if g.debugger != nil {
		g.debugger.HitIllegal(g.CPU.GPRs[arm.PC], opcode)
	}
}
