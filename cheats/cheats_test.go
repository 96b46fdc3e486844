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

package cheats_test

import (
	"math"
	"testing"

	"github.com/jetsetilly/gopheradvance/cheats"
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware"
	"github.com/jetsetilly/gopheradvance/hardware/arm"
	"github.com/jetsetilly/gopheradvance/hardware/memory/memorymap"
	"github.com/jetsetilly/gopheradvance/test"
)

func newConsole(t *testing.T) *hardware.GBA {
	t.Helper()
	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	if err != nil {
		t.Fatal(err)
	}
	env.Normalise()
	g := hardware.NewGBA(env)
	g.Reset()
	return g
}

func TestParseCode(t *testing.T) {
	c, err := cheats.ParseCode("03001f00:63")
	test.ExpectedSuccess(t, err)
	test.Equate(t, c.Address, uint32(0x03001f00))
	test.Equate(t, c.Value, uint32(0x63))
	test.Equate(t, c.Width, 1)

	c, err = cheats.ParseCode("02000100:270f")
	test.ExpectedSuccess(t, err)
	test.Equate(t, c.Width, 2)

	c, err = cheats.ParseCode("02000100:0098967f")
	test.ExpectedSuccess(t, err)
	test.Equate(t, c.Width, 4)

	_, err = cheats.ParseCode("not a code")
	test.ExpectedFailure(t, err)
}

func TestHookFires(t *testing.T) {
	g := newConsole(t)

	env, err := environment.NewEnvironment(environment.MainEmulation, g.Prefs())
	test.ExpectedSuccess(t, err)
	dev := cheats.NewDevice(env, g)

	target := uint32(memorymap.OriginWorkingRAM + 0x500)
	set := &cheats.Set{
		Name:    "infinite health",
		Enabled: true,
		Codes: []cheats.Code{
			{Address: target, Value: 0x63, Width: 1},
		},
	}
	dev.AddSet(set)

	// hook the set to an instruction in working RAM
	hookAddr := uint32(memorymap.OriginWorkingRAM + 0x300)
	g.Mem.Write32(hookAddr, 0xe1a00000)
	err = dev.Hook(set, hookAddr, arm.ModeARM)
	test.ExpectedSuccess(t, err)

	// execution reaching the hook applies the codes and then runs the
	// displaced instruction
	g.CPU.GPRs[arm.PC] = hookAddr
	g.CPU.NextEvent = math.MaxInt32
	g.Step()

	test.Equate(t, g.Mem.Read8(target), uint8(0x63))

	// the trap queued the displaced instruction; the next step executes
	// it and moves past the hook address
	test.Equate(t, g.CPU.GPRs[arm.PC], hookAddr)
	g.Step()
	test.Equate(t, g.CPU.GPRs[arm.PC], hookAddr+4)

	err = dev.Unhook(set)
	test.ExpectedSuccess(t, err)
}
