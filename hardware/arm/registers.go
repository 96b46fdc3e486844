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

import "fmt"

// Indices into the general purpose register file for the registers with
// dedicated roles.
const (
	SP = 13
	LR = 14
	PC = 15
)

// NumRegisters is the size of the general purpose register file.
const NumRegisters = 16

// Instruction widths in bytes for the two execution modes.
const (
	WordSizeARM   = 4
	WordSizeThumb = 2
)

// ExecutionMode is the instruction encoding the core is currently fetching.
type ExecutionMode int

// Valid ExecutionMode values.
const (
	ModeARM ExecutionMode = iota
	ModeThumb
)

func (m ExecutionMode) String() string {
	if m == ModeThumb {
		return "Thumb"
	}
	return "ARM"
}

// InstructionWidth returns the width in bytes of an instruction in the
// execution mode.
func (m ExecutionMode) InstructionWidth() uint32 {
	if m == ModeThumb {
		return WordSizeThumb
	}
	return WordSizeARM
}

// PrivilegeMode is the processor privilege mode, as encoded in the low five
// bits of the CPSR.
type PrivilegeMode uint32

// Valid PrivilegeMode values.
const (
	PrivUser       PrivilegeMode = 0x10
	PrivFIQ        PrivilegeMode = 0x11
	PrivIRQ        PrivilegeMode = 0x12
	PrivSupervisor PrivilegeMode = 0x13
	PrivAbort      PrivilegeMode = 0x17
	PrivUndefined  PrivilegeMode = 0x1b
	PrivSystem     PrivilegeMode = 0x1f
)

func (m PrivilegeMode) String() string {
	switch m {
	case PrivUser:
		return "usr"
	case PrivFIQ:
		return "fiq"
	case PrivIRQ:
		return "irq"
	case PrivSupervisor:
		return "svc"
	case PrivAbort:
		return "abt"
	case PrivUndefined:
		return "und"
	case PrivSystem:
		return "sys"
	}
	return fmt.Sprintf("bad mode (%#02x)", uint32(m))
}

// Status is the processor status register (CPSR).
type Status struct {
	Negative bool
	Zero     bool
	Carry    bool
	Overflow bool

	// the I bit. interrupts reaching the core are ignored while set
	IRQDisable bool
	FIQDisable bool

	// the T bit. mirrored by the core's ExecutionMode
	Thumb bool

	Priv PrivilegeMode
}

// Value packs the status fields into CPSR register format.
func (sr Status) Value() uint32 {
	var v uint32
	if sr.Negative {
		v |= 0x80000000
	}
	if sr.Zero {
		v |= 0x40000000
	}
	if sr.Carry {
		v |= 0x20000000
	}
	if sr.Overflow {
		v |= 0x10000000
	}
	if sr.IRQDisable {
		v |= 0x00000080
	}
	if sr.FIQDisable {
		v |= 0x00000040
	}
	if sr.Thumb {
		v |= 0x00000020
	}
	v |= uint32(sr.Priv)
	return v
}

// SetValue unpacks a CPSR register value into the status fields.
func (sr *Status) SetValue(v uint32) {
	sr.Negative = v&0x80000000 != 0
	sr.Zero = v&0x40000000 != 0
	sr.Carry = v&0x20000000 != 0
	sr.Overflow = v&0x10000000 != 0
	sr.IRQDisable = v&0x00000080 != 0
	sr.FIQDisable = v&0x00000040 != 0
	sr.Thumb = v&0x00000020 != 0
	sr.Priv = PrivilegeMode(v & 0x1f)
}
