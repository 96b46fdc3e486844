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

import (
	"encoding/binary"

	"github.com/jetsetilly/gopheradvance/cartridgeloader"
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware/memory/memorymap"
	"github.com/jetsetilly/gopheradvance/hardware/savedata"
)

// IOHooks is how register writes with system wide consequences reach the
// platform. The platform installs the hooks as closures; the memory
// subsystem never holds a reference to the platform itself.
type IOHooks interface {
	// interrupt enable and master enable writes can cause immediate
	// interrupt delivery
	WriteIE(value uint16)
	WriteIME(value uint16)

	// HALTCNT writes
	Halt()
	Stop()
}

// Memory implements the console address space.
type Memory struct {
	env *environment.Environment

	Bios  []byte
	WRAM  []byte
	IWRAM []byte
	IO    [memorymap.SizeIO >> 1]uint16

	// the active ROM image. after a patch this is a copy; otherwise it
	// aliases the pristine image
	Rom     []byte
	RomSize uint32
	RomMask uint32

	// the image as it came off the disk
	pristineRom     []byte
	pristineRomSize uint32

	// the ROM size at the time of the last yank. nonzero means the
	// cartridge is currently yanked; the next reset restores it
	YankedRomSize uint32

	RomCrc32     uint32
	BiosChecksum uint32

	// true if the loaded image is a multiboot program. multiboot images
	// execute from working RAM and are copied there at reset
	Multiboot bool

	Header Header
	GPIO   GPIO
	VFame  bool

	Savedata *savedata.Savedata

	loader     *cartridgeloader.Loader
	biosLoader *cartridgeloader.Loader

	hooks      IOHooks
	timerHooks TimerHooks

	// when false all accesses cost a single cycle
	realisticTiming bool
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory(env *environment.Environment) *Memory {
	mem := &Memory{
		env:      env,
		Bios:     make([]byte, memorymap.SizeBios),
		WRAM:     make([]byte, memorymap.SizeWorkingRAM),
		IWRAM:    make([]byte, memorymap.SizeInternalRAM),
		Savedata: savedata.NewSavedata(env),
	}
	mem.realisticTiming = env.Prefs.RealisticTiming.Get().(bool)
	return mem
}

// TimerHooks is how timer register writes reach the timer subsystem.
type TimerHooks interface {
	WriteReload(timer int, value uint16)
	WriteControl(timer int, value uint16)
}

// SetHooks installs the platform's IO hooks.
func (mem *Memory) SetHooks(hooks IOHooks) {
	mem.hooks = hooks
}

// SetTimerHooks installs the timer subsystem's register hooks.
func (mem *Memory) SetTimerHooks(hooks TimerHooks) {
	mem.timerHooks = hooks
}

// Reset the RAM banks and the IO register file. A yanked cartridge is
// restored and a multiboot image is copied back into working RAM.
func (mem *Memory) Reset() {
	for i := range mem.WRAM {
		mem.WRAM[i] = 0
	}
	for i := range mem.IWRAM {
		mem.IWRAM[i] = 0
	}
	for i := range mem.IO {
		mem.IO[i] = 0
	}

	if mem.YankedRomSize != 0 {
		mem.RomSize = mem.YankedRomSize
		mem.RomMask = memorymap.NextPow2(mem.RomSize) - 1
		mem.YankedRomSize = 0
	}

	if mem.Multiboot {
		copy(mem.WRAM, mem.pristineRom[:mem.pristineRomSize])
	}

	mem.realisticTiming = mem.env.Prefs.RealisticTiming.Get().(bool)
}

// region returns the backing slice and the offset into it for an address.
// a nil slice means the address is unmapped or is in the IO region, which
// is not byte addressable through this path.
func (mem *Memory) region(addr uint32) ([]byte, uint32) {
	switch addr >> 24 {
	case 0x00:
		if addr < memorymap.SizeBios {
			return mem.Bios, addr
		}
	case 0x02:
		return mem.WRAM, addr & (memorymap.SizeWorkingRAM - 1)
	case 0x03:
		return mem.IWRAM, addr & (memorymap.SizeInternalRAM - 1)
	case 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d:
		if mem.RomSize == 0 {
			return nil, 0
		}
		idx := (addr - memorymap.OriginCart) & mem.RomMask
		if idx < mem.RomSize {
			return mem.Rom, idx
		}
	}
	return nil, 0
}

// Read8 returns the byte at the address. Unmapped addresses read as zero.
func (mem *Memory) Read8(addr uint32) uint8 {
	if addr>>24 == 0x0e {
		return mem.Savedata.Read8(addr & (memorymap.SizeSaveRAM - 1))
	}
	if addr>>24 == 0x04 {
		v := mem.ReadIO(addr & 0x3fe)
		if addr&0x1 == 0x1 {
			return uint8(v >> 8)
		}
		return uint8(v)
	}
	if b, idx := mem.region(addr); b != nil && int(idx) < len(b) {
		return b[idx]
	}
	return 0
}

// Read16 returns the halfword at the (aligned) address.
func (mem *Memory) Read16(addr uint32) uint16 {
	addr &= ^uint32(0x1)
	if addr>>24 == 0x04 {
		return mem.ReadIO(addr & 0x3fe)
	}
	if b, idx := mem.region(addr); b != nil && int(idx)+2 <= len(b) {
		return binary.LittleEndian.Uint16(b[idx:])
	}
	return 0
}

// Read32 returns the word at the (aligned) address.
func (mem *Memory) Read32(addr uint32) uint32 {
	addr &= ^uint32(0x3)
	if addr>>24 == 0x04 {
		lo := mem.ReadIO(addr & 0x3fe)
		hi := mem.ReadIO((addr + 2) & 0x3fe)
		return uint32(lo) | uint32(hi)<<16
	}
	if b, idx := mem.region(addr); b != nil && int(idx)+4 <= len(b) {
		return binary.LittleEndian.Uint32(b[idx:])
	}
	return 0
}

// Write8 writes the byte at the address. ROM and BIOS writes are ignored.
func (mem *Memory) Write8(addr uint32, value uint8) {
	switch addr >> 24 {
	case 0x02:
		mem.WRAM[addr&(memorymap.SizeWorkingRAM-1)] = value
	case 0x03:
		mem.IWRAM[addr&(memorymap.SizeInternalRAM-1)] = value
	case 0x04:
		mem.WriteIO8(addr&0x3ff, value)
	case 0x0e:
		mem.Savedata.Write8(addr&(memorymap.SizeSaveRAM-1), value)
	}
}

// Write16 writes the halfword at the (aligned) address.
func (mem *Memory) Write16(addr uint32, value uint16) {
	addr &= ^uint32(0x1)
	switch addr >> 24 {
	case 0x02:
		binary.LittleEndian.PutUint16(mem.WRAM[addr&(memorymap.SizeWorkingRAM-1):], value)
	case 0x03:
		binary.LittleEndian.PutUint16(mem.IWRAM[addr&(memorymap.SizeInternalRAM-1):], value)
	case 0x04:
		mem.WriteIO(addr&0x3fe, value)
	}
}

// Write32 writes the word at the (aligned) address.
func (mem *Memory) Write32(addr uint32, value uint32) {
	addr &= ^uint32(0x3)
	switch addr >> 24 {
	case 0x02:
		binary.LittleEndian.PutUint32(mem.WRAM[addr&(memorymap.SizeWorkingRAM-1):], value)
	case 0x03:
		binary.LittleEndian.PutUint32(mem.IWRAM[addr&(memorymap.SizeInternalRAM-1):], value)
	case 0x04:
		mem.WriteIO(addr&0x3fe, uint16(value))
		mem.WriteIO((addr+2)&0x3fe, uint16(value>>16))
	}
}

// fetch cycle cost for the region of the address. width is the instruction
// width in bytes.
func (mem *Memory) fetchCost(addr uint32, width uint32) int32 {
	if !mem.realisticTiming {
		return 1
	}

	switch addr >> 24 {
	case 0x00, 0x03, 0x04:
		// 32bit bus, no wait states
		return 1
	case 0x02:
		// 16bit bus with two wait states
		if width == 4 {
			return 6
		}
		return 3
	case 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d:
		// 16bit bus with the default cartridge wait states
		if width == 4 {
			return 8
		}
		return 5
	}
	return 1
}

// FetchARM implements the arm.Bus interface.
func (mem *Memory) FetchARM(addr uint32) (uint32, int32) {
	return mem.Read32(addr), mem.fetchCost(addr, 4)
}

// FetchThumb implements the arm.Bus interface.
func (mem *Memory) FetchThumb(addr uint32) (uint16, int32) {
	return mem.Read16(addr), mem.fetchCost(addr, 2)
}
