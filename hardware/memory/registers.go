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

package memory

// Hardware register offsets within the IO region.
const (
	RegVCount  = 0x006
	RegTM0CntL = 0x100
	RegTM3CntH = 0x10e
	RegIE      = 0x200
	RegIF      = 0x202
	RegIME     = 0x208
	RegPostFlg = 0x300
	RegHaltCnt = 0x301
)

// ReadIO returns the 16bit register at the (halfword aligned) offset.
func (mem *Memory) ReadIO(offset uint32) uint16 {
	offset &= 0x3fe
	return mem.IO[offset>>1]
}

// PokeIO writes the 16bit register at the (halfword aligned) offset without
// triggering any register side effects. Used during reset and by debugging
// tools.
func (mem *Memory) PokeIO(offset uint32, value uint16) {
	offset &= 0x3fe
	mem.IO[offset>>1] = value
}

// WriteIO writes the 16bit register at the (halfword aligned) offset,
// honouring register semantics. Interrupt control registers defer to the
// hooks installed by the platform.
func (mem *Memory) WriteIO(offset uint32, value uint16) {
	offset &= 0x3fe

	switch offset {
	case RegIF:
		// acknowledge: writing a one clears the flag
		mem.IO[RegIF>>1] &^= value
		return

	case RegIE:
		mem.IO[RegIE>>1] = value
		if mem.hooks != nil {
			mem.hooks.WriteIE(value)
		}
		return

	case RegIME:
		mem.IO[RegIME>>1] = value & 0x1
		if mem.hooks != nil {
			mem.hooks.WriteIME(value & 0x1)
		}
		return

	case RegTM0CntL, RegTM0CntL + 0x4, RegTM0CntL + 0x8, RegTM0CntL + 0xc:
		// the reload value. reads of the same register return the live
		// counter so the written value is not stored here
		if mem.timerHooks != nil {
			mem.timerHooks.WriteReload(int(offset-RegTM0CntL)>>2, value)
		}
		return

	case RegTM0CntL + 0x2, RegTM0CntL + 0x6, RegTM0CntL + 0xa, RegTM0CntL + 0xe:
		mem.IO[offset>>1] = value
		if mem.timerHooks != nil {
			mem.timerHooks.WriteControl(int(offset-RegTM0CntL-0x2)>>2, value)
		}
		return

	case RegPostFlg:
		// the upper byte of this halfword is HALTCNT. a halfword write
		// to POSTFLG commits the processor to halt or stop
		mem.IO[RegPostFlg>>1] = value & 0x1
		mem.writeHaltCnt(uint8(value >> 8))
		return
	}

	mem.IO[offset>>1] = value
}

// WriteIO8 writes a single byte into the IO region. Most registers behave
// as the corresponding halfword write; HALTCNT is the byte register that
// makes the distinction matter.
func (mem *Memory) WriteIO8(offset uint32, value uint8) {
	offset &= 0x3ff

	if offset == RegHaltCnt {
		mem.writeHaltCnt(value)
		return
	}

	cur := mem.ReadIO(offset &^ 0x1)
	if offset&0x1 == 0x1 {
		mem.WriteIO(offset&^0x1, cur&0x00ff|uint16(value)<<8)
	} else {
		mem.WriteIO(offset, cur&0xff00|uint16(value))
	}
}

func (mem *Memory) writeHaltCnt(value uint8) {
	if mem.hooks == nil {
		return
	}
	if value&0x80 == 0x80 {
		mem.hooks.Stop()
	} else {
		mem.hooks.Halt()
	}
}

// SetInterruptFlag sets the bit for the numbered interrupt in the IF
// register. Delivery decisions belong to the platform; this only records
// the request.
func (mem *Memory) SetInterruptFlag(irq int) {
	mem.IO[RegIF>>1] |= 1 << irq
}

// IE returns the value of the interrupt enable register.
func (mem *Memory) IE() uint16 {
	return mem.IO[RegIE>>1]
}

// IF returns the value of the interrupt request register.
func (mem *Memory) IF() uint16 {
	return mem.IO[RegIF>>1]
}

// IME returns true if the interrupt master enable register is set.
func (mem *Memory) IME() bool {
	return mem.IO[RegIME>>1] != 0
}
