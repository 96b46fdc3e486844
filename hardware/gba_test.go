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

package hardware_test

import (
	"math"
	"testing"

	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware"
	"github.com/jetsetilly/gopheradvance/hardware/arm"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/hardware/memory/memorymap"
	"github.com/jetsetilly/gopheradvance/hardware/preferences"
	"github.com/jetsetilly/gopheradvance/test"
)

func newTestGBA(t *testing.T) *hardware.GBA {
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

func TestInterruptDelivery(t *testing.T) {
	g := newTestGBA(t)

	g.Mem.WriteIO(memory.RegIME, 0x1)
	g.Mem.WriteIO(memory.RegIE, 1<<hardware.IRQGamePak)
	g.CPU.CPSR.IRQDisable = false
	g.CPU.GPRs[arm.PC] = memorymap.OriginWorkingRAM

	g.RaiseIRQ(hardware.IRQGamePak)

	// the request is recorded and the exception entered
	test.Equate(t, g.Mem.IF(), uint16(1<<hardware.IRQGamePak))
	test.Equate(t, g.CPU.GPRs[arm.PC], uint32(arm.BaseIRQ))
	test.ExpectedSuccess(t, g.CPU.CPSR.IRQDisable)
}

func TestInterruptMasked(t *testing.T) {
	g := newTestGBA(t)

	// enabled at the controller but masked in the processor: the request
	// is recorded and the CPU unhalted, but the exception is not entered
	g.Mem.WriteIO(memory.RegIME, 0x1)
	g.Mem.WriteIO(memory.RegIE, 1<<hardware.IRQVBlank)
	g.CPU.CPSR.IRQDisable = true
	g.CPU.Halted = true
	pc := g.CPU.GPRs[arm.PC]

	g.RaiseIRQ(hardware.IRQVBlank)

	test.Equate(t, g.Mem.IF(), uint16(1<<hardware.IRQVBlank))
	test.ExpectedFailure(t, g.CPU.Halted)
	test.Equate(t, g.CPU.GPRs[arm.PC], pc)
}

func TestRaiseWhileHaltedIMEClear(t *testing.T) {
	g := newTestGBA(t)

	// IME clear: an enabled interrupt still unhalts the CPU but is not
	// delivered
	g.Mem.WriteIO(memory.RegIME, 0x0)
	g.Mem.WriteIO(memory.RegIE, 1<<hardware.IRQTimer0)
	g.CPU.Halted = true
	pc := g.CPU.GPRs[arm.PC]

	g.RaiseIRQ(hardware.IRQTimer0)

	test.ExpectedFailure(t, g.CPU.Halted)
	test.Equate(t, g.CPU.GPRs[arm.PC], pc)

	// a disabled interrupt does not unhalt
	g.CPU.Halted = true
	g.RaiseIRQ(hardware.IRQTimer1)
	test.ExpectedSuccess(t, g.CPU.Halted)
}

func TestImmediateDeliveryOnEnable(t *testing.T) {
	g := newTestGBA(t)

	g.CPU.CPSR.IRQDisable = false
	g.CPU.GPRs[arm.PC] = memorymap.OriginWorkingRAM

	// request with nothing enabled
	g.RaiseIRQ(hardware.IRQVBlank)
	test.Equate(t, g.CPU.GPRs[arm.PC], uint32(memorymap.OriginWorkingRAM))

	// enabling the master switch with the request pending delivers it
	g.Mem.WriteIO(memory.RegIE, 1<<hardware.IRQVBlank)
	g.Mem.WriteIO(memory.RegIME, 0x1)
	test.Equate(t, g.CPU.GPRs[arm.PC], uint32(arm.BaseIRQ))
}

func TestSpringIRQ(t *testing.T) {
	g := newTestGBA(t)

	// a pending enabled request with the processor mask set. reading the
	// status register latches the request and forces a scheduler visit
	g.Mem.WriteIO(memory.RegIME, 0x1)
	g.Mem.WriteIO(memory.RegIE, 1<<hardware.IRQVBlank)
	g.CPU.CPSR.IRQDisable = true
	g.Mem.SetInterruptFlag(hardware.IRQVBlank)

	// mrs r0, cpsr in working RAM
	addr := uint32(memorymap.OriginWorkingRAM + 0x100)
	g.Mem.Write32(addr, 0xe10f0000)
	g.CPU.GPRs[arm.PC] = addr
	g.CPU.NextEvent = math.MaxInt32

	g.Step()

	// the scheduler has been summoned
	test.Equate(t, g.CPU.NextEvent, g.CPU.Cycles)

	// once the program unmasks, the next scheduler visit delivers the
	// latched request and execution resumes from the exception vector
	g.CPU.CPSR.IRQDisable = false
	g.Step()
	test.ExpectedSuccess(t, g.CPU.CPSR.Priv == arm.PrivIRQ)
	test.Equate(t, g.CPU.GPRs[arm.PC], uint32(arm.BaseIRQ+arm.WordSizeARM))
}

func TestHaltedDeadEnd(t *testing.T) {
	g := newTestGBA(t)

	// halted with interrupts disabled at the controller. the scheduler
	// must hand control back rather than spin forever
	g.Mem.WriteIO(memory.RegIME, 0x0)
	g.CPU.Halted = true

	g.Step()
	test.ExpectedSuccess(t, g.CPU.Halted)

	g.Step()
	test.ExpectedSuccess(t, g.CPU.Halted)
}

func TestHaltViaRegister(t *testing.T) {
	g := newTestGBA(t)

	test.ExpectedFailure(t, g.CPU.Halted)
	g.Mem.WriteIO8(memory.RegHaltCnt, 0x00)
	test.ExpectedSuccess(t, g.CPU.Halted)
}

type mockDebugger struct {
	breakpoints []uint32
	illegals    []uint32
}

func (d *mockDebugger) HitBreakpoint(addr uint32) {
	d.breakpoints = append(d.breakpoints, addr)
}

func (d *mockDebugger) HitIllegal(addr uint32, opcode uint32) {
	d.illegals = append(d.illegals, addr)
}

func TestBreakpointRoundTrip(t *testing.T) {
	g := newTestGBA(t)

	dbg := &mockDebugger{}
	g.AttachDebugger(dbg)

	// mov r0, r0 in working RAM
	addr := uint32(memorymap.OriginWorkingRAM + 0x200)
	g.Mem.Write32(addr, 0xe1a00000)

	original, err := g.SetBreakpoint(hardware.TagDebugger, addr, arm.ModeARM)
	test.ExpectedSuccess(t, err)
	test.Equate(t, original, uint32(0xe1a00000))

	// the backing memory is untouched
	test.Equate(t, g.Mem.Read32(addr), uint32(0xe1a00000))

	g.CPU.GPRs[arm.PC] = addr
	g.CPU.NextEvent = math.MaxInt32
	g.Step()

	test.Equate(t, len(dbg.breakpoints), 1)
	test.Equate(t, dbg.breakpoints[0], addr)

	// execution has not moved past the trap
	test.Equate(t, g.CPU.GPRs[arm.PC], addr)

	g.ClearBreakpoint(addr, arm.ModeARM, original)
	g.Step()
	test.Equate(t, g.CPU.GPRs[arm.PC], addr+4)
}

func TestYankRaisesGamePakIRQ(t *testing.T) {
	g := newTestGBA(t)

	g.YankCartridge()
	test.Equate(t, g.Mem.IF()&(1<<hardware.IRQGamePak), uint16(1<<hardware.IRQGamePak))
}

func TestSkipBIOS(t *testing.T) {
	g := newTestGBA(t)

	// SkipBIOS is only valid immediately after reset
	g.CPU.GPRs[arm.PC] = arm.BaseReset + arm.WordSizeARM
	g.SkipBIOS()

	// no cartridge: execution is aimed at working RAM
	test.Equate(t, g.CPU.GPRs[arm.PC], uint32(memorymap.OriginWorkingRAM))
	test.Equate(t, g.Mem.ReadIO(memory.RegVCount), uint16(0x7e))
	test.Equate(t, g.Mem.ReadIO(memory.RegPostFlg), uint16(0x1))
}

func TestIdleLoopPreference(t *testing.T) {
	g := newTestGBA(t)

	test.Equate(t, g.IdleLoop(), uint32(hardware.IdleLoopNone))

	g.SetIdleLoop(0x08000200)
	test.Equate(t, g.IdleLoop(), uint32(0x08000200))

	// with idle optimisation off, a known loop address is discarded
	g = newTestGBA(t)
	err := g.Prefs().IdleOptimisation.Set(preferences.IdleIgnore)
	test.ExpectedSuccess(t, err)

	g.SetIdleLoop(0x08000200)
	test.Equate(t, g.IdleLoop(), uint32(hardware.IdleLoopNone))
}

func TestRunForFrameCount(t *testing.T) {
	g := newTestGBA(t)

	err := g.RunForFrameCount(2)
	test.ExpectedSuccess(t, err)
	test.Equate(t, g.Video.FrameCounter, uint32(2))
}
