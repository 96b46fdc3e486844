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
	"math"

	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/logger"
)

// Interrupt numbers, in priority order. The number is the bit position in
// the IE and IF registers.
const (
	IRQVBlank = iota
	IRQHBlank
	IRQVCount
	IRQTimer0
	IRQTimer1
	IRQTimer2
	IRQTimer3
	IRQSIO
	IRQDMA0
	IRQDMA1
	IRQDMA2
	IRQDMA3
	IRQKeypad
	IRQGamePak
)

// RaiseIRQ records the interrupt request and, if the running program has
// enabled the interrupt, unhalts the CPU and delivers it.
func (g *GBA) RaiseIRQ(irq int) {
	g.Mem.SetInterruptFlag(irq)

	if g.Mem.IE()&(1<<irq) != 0 {
		g.CPU.Halted = false
		if g.Mem.IME() {
			g.CPU.RaiseIRQ()
		}
	}
}

// the CPU's ReadCPSR handler. a program reading the status register is
// about to make a decision about interrupts, so requests that became
// deliverable while the processor had them disabled are latched and the
// scheduler is forced to run at the next instruction boundary.
func (g *GBA) testIRQ() {
	if g.Mem.IME() && g.Mem.IE()&g.Mem.IF() != 0 {
		g.springIRQ = g.Mem.IE() & g.Mem.IF()
		g.CPU.NextEvent = g.CPU.Cycles
	}
}

// the CPU's ProcessEvents handler: the heart of the emulation. cycles
// consumed by the CPU are fed to the timeline and the serial port, and the
// next-event cursor is rewound to whichever comes due first.
func (g *GBA) processEvents() {
	cpu := g.CPU

	if g.springIRQ != 0 && !cpu.CPSR.IRQDisable {
		cpu.RaiseIRQ()
		g.springIRQ = 0
	}

	var nextEvent int32
	for {
		cycles := cpu.Cycles
		cpu.Cycles = 0
		cpu.NextEvent = math.MaxInt32

		if cycles < 0 {
			g.crash("negative cycles passed: %d", cycles)
		}

		nextEvent = cycles
		for {
			g.Timing.Tick(nextEvent)
			nextEvent = cpu.NextEvent
			if !g.cpuBlocked {
				break
			}
		}

		if testEvent := g.SIO.ProcessEvents(cycles); testEvent < nextEvent {
			nextEvent = testEvent
		}

		cpu.NextEvent = nextEvent

		if nextEvent == 0 {
			break
		}
		if cpu.Halted {
			// fast-forward to the next event. but a halted CPU with
			// interrupts disabled at the controller can never wake, so
			// give control back rather than spin
			cpu.Cycles = nextEvent
			if !g.Mem.IME() || g.Mem.IE() == 0 {
				break
			}
		} else if nextEvent < 0 {
			g.crash("negative cycles will pass: %d", nextEvent)
		}

		if cpu.Cycles < nextEvent {
			break
		}
	}
}

// an internal consistency violation. fatal when the HardCrash preference
// is set.
func (g *GBA) crash(format string, args ...interface{}) {
	if g.env.Prefs.HardCrash.Get().(bool) {
		logger.Logf(g.env, "gba", format, args...)
		panic("gba: scheduler consistency violation")
	}
	logger.Logf(g.env, "gba", format, args...)
}

// ioHooks connects register writes with system wide consequences back to
// the console. it implements the memory.IOHooks interface.
type ioHooks struct {
	g *GBA
}

// WriteIE implements the memory.IOHooks interface. Enabling an interrupt
// that is already requested delivers it immediately.
func (h *ioHooks) WriteIE(value uint16) {
	if value&(1<<IRQKeypad) != 0 {
		logger.Log(h.g.env, "gba", "keypad interrupts not implemented")
	}

	if h.g.Mem.IME() && value&h.g.Mem.IF() != 0 {
		h.g.CPU.RaiseIRQ()
	}
}

// WriteIME implements the memory.IOHooks interface. Setting the master
// enable with an enabled interrupt pending delivers it immediately.
func (h *ioHooks) WriteIME(value uint16) {
	if value != 0 && h.g.Mem.IE()&h.g.Mem.IF() != 0 {
		h.g.CPU.RaiseIRQ()
	}
}

// Halt implements the memory.IOHooks interface.
func (h *ioHooks) Halt() {
	h.g.CPU.NextEvent = h.g.CPU.Cycles
	h.g.CPU.Halted = true
}

// Stop implements the memory.IOHooks interface. With no stop callback
// installed the stop is ignored.
func (h *ioHooks) Stop() {
	if h.g.stopCallback == nil {
		return
	}
	h.g.CPU.NextEvent = h.g.CPU.Cycles
	h.g.stopCallback()
}

// assert the interface is satisfied
var _ memory.IOHooks = (*ioHooks)(nil)
