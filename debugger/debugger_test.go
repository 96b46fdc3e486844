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

package debugger_test

import (
	"math"
	"testing"

	"github.com/jetsetilly/gopheradvance/debugger"
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware"
	"github.com/jetsetilly/gopheradvance/hardware/arm"
	"github.com/jetsetilly/gopheradvance/hardware/memory/memorymap"
	"github.com/jetsetilly/gopheradvance/test"
)

func TestRunToBreakpoint(t *testing.T) {
	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	if err != nil {
		t.Fatal(err)
	}
	env.Normalise()

	g := hardware.NewGBA(env)
	g.Reset()

	dbg := debugger.NewDebugger(env, g)

	// straight-line code in working RAM ending in a breakpoint
	start := uint32(memorymap.OriginWorkingRAM + 0x1000)
	for i := uint32(0); i < 4; i++ {
		g.Mem.Write32(start+i*4, 0xe1a00000)
	}

	target := start + 3*4
	err = dbg.Break(target, arm.ModeARM)
	test.ExpectedSuccess(t, err)

	// a second breakpoint at the same address is refused
	err = dbg.Break(target, arm.ModeARM)
	test.ExpectedFailure(t, err)

	g.CPU.GPRs[arm.PC] = start
	g.CPU.NextEvent = math.MaxInt32

	err = dbg.Run()
	test.ExpectedSuccess(t, err)

	test.ExpectedSuccess(t, dbg.LastHalt == debugger.HaltBreakpoint)
	test.Equate(t, dbg.LastHaltAddr, target)
	test.Equate(t, g.CPU.GPRs[arm.PC], target)

	// clearing the breakpoint lets execution move on
	err = dbg.ClearBreak(target)
	test.ExpectedSuccess(t, err)
	dbg.Step()
	test.Equate(t, g.CPU.GPRs[arm.PC], target+4)

	dbg.Detach()
}
