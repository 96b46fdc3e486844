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

// Exception vector addresses.
const (
	BaseReset     = 0x00000000
	BaseUndefined = 0x00000004
	BaseSWI       = 0x00000008
	BaseIRQ       = 0x00000018
)

// Bus is the memory interface the core fetches instructions through.
type Bus interface {
	// FetchARM returns the 32bit opcode at the address along with the
	// number of cycles the access took
	FetchARM(addr uint32) (uint32, int32)

	// FetchThumb returns the 16bit opcode at the address along with the
	// number of cycles the access took
	FetchThumb(addr uint32) (uint16, int32)
}

// Handlers is the table of callbacks the platform installs into the core.
// Handlers are closures over the platform; the core itself never holds a
// reference to the platform.
type Handlers struct {
	// called at the end of Reset()
	Reset func()

	// called whenever the consumed-cycle counter reaches the next-event
	// cursor. this is the platform's event scheduler entry point
	ProcessEvents func()

	// supervisor calls, one per instruction encoding
	SWI16 func(imm uint8)
	SWI32 func(imm uint32)

	// opcode in the architecturally undefined space
	HitIllegal func(opcode uint32)

	// opcode that is defined but not implemented by the executor
	HitStub func(opcode uint32)

	// called when the status register is read by an instruction. gives the
	// platform the chance to reevaluate pending interrupts
	ReadCPSR func()

	// breakpoint traps, one per instruction width. the immediate value
	// carries the tag of the component that installed the trap
	Bkpt16 func(imm int)
	Bkpt32 func(imm int)
}

// Core is the ARM7TDMI processor core.
type Core struct {
	GPRs [NumRegisters]uint32
	CPSR Status

	// cycles consumed since the last visit to the event scheduler, and the
	// cycle distance at which the scheduler must next run. the platform's
	// timeline shares these two counters
	Cycles    int32
	NextEvent int32

	// a halted core consumes no cycles until an interrupt unhalts it
	Halted bool

	ExecutionMode ExecutionMode

	Handlers Handlers

	mem Bus

	// banked stack pointer and link register for each privilege mode. user
	// and system mode share a bank
	banked map[PrivilegeMode][2]uint32

	// shadow instruction table. see shadow.go
	shadow map[uint32]shadowEntry

	// a synthetic instruction queued by RunFake()
	fakeOpcode uint32
	fakeQueued bool
}

// NewCore is the preferred method of initialisation for the Core type.
func NewCore(mem Bus) *Core {
	return &Core{
		mem:    mem,
		banked: make(map[PrivilegeMode][2]uint32),
		shadow: make(map[uint32]shadowEntry),
	}
}

func bankFor(priv PrivilegeMode) PrivilegeMode {
	if priv == PrivUser {
		return PrivSystem
	}
	return priv
}

// SetPrivilegeMode changes the processor privilege mode, banking the stack
// pointer and link register as the hardware does.
func (c *Core) SetPrivilegeMode(priv PrivilegeMode) {
	if bankFor(priv) == bankFor(c.CPSR.Priv) {
		c.CPSR.Priv = priv
		return
	}

	c.banked[bankFor(c.CPSR.Priv)] = [2]uint32{c.GPRs[SP], c.GPRs[LR]}

	b := c.banked[bankFor(priv)]
	c.GPRs[SP] = b[0]
	c.GPRs[LR] = b[1]

	c.CPSR.Priv = priv
}

// Reset returns the core to its power-on state and calls the platform's
// Reset handler, which is responsible for mode-specific stack pointers and
// any platform state.
func (c *Core) Reset() {
	for i := range c.GPRs {
		c.GPRs[i] = 0
	}
	for k := range c.banked {
		delete(c.banked, k)
	}

	c.CPSR = Status{
		IRQDisable: true,
		FIQDisable: true,
		Priv:       PrivSupervisor,
	}
	c.ExecutionMode = ModeARM

	c.Cycles = 0
	c.NextEvent = 0
	c.Halted = false
	c.fakeQueued = false

	if c.Handlers.Reset != nil {
		c.Handlers.Reset()
	}
}

// RaiseIRQ enters the interrupt exception. Delivery is edge triggered: the
// exception is entered once per call, and not at all if the core currently
// has interrupts disabled.
func (c *Core) RaiseIRQ() {
	if c.CPSR.IRQDisable {
		return
	}

	ret := c.GPRs[PC] + WordSizeARM
	if c.ExecutionMode == ModeThumb {
		ret = c.GPRs[PC] + WordSizeThumb*2
	}

	c.SetPrivilegeMode(PrivIRQ)
	c.GPRs[LR] = ret
	c.CPSR.IRQDisable = true
	c.CPSR.Thumb = false
	c.ExecutionMode = ModeARM
	c.GPRs[PC] = BaseIRQ
	c.Halted = false
}

// RaiseUndefined enters the undefined-instruction exception. The platform
// uses this to deliver a synthetic hardware fault when an illegal opcode is
// executed with no debugger attached.
func (c *Core) RaiseUndefined() {
	ret := c.GPRs[PC] + c.ExecutionMode.InstructionWidth()

	c.SetPrivilegeMode(PrivUndefined)
	c.GPRs[LR] = ret
	c.CPSR.IRQDisable = true
	c.CPSR.Thumb = false
	c.ExecutionMode = ModeARM
	c.GPRs[PC] = BaseUndefined
}

// RunFake queues a synthetic instruction to be executed in place of the next
// fetch. Used by the cheat-hook mechanism to execute the instruction that a
// hook has displaced, without the instruction ever being present in memory.
func (c *Core) RunFake(opcode uint32) {
	c.fakeOpcode = opcode
	c.fakeQueued = true
}
