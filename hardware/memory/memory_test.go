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

package memory_test

import (
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/jetsetilly/gopheradvance/cartridgeloader"
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/hardware/memory/memorymap"
	"github.com/jetsetilly/gopheradvance/test"
)

func newMemory(t *testing.T) *memory.Memory {
	t.Helper()
	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	if err != nil {
		t.Fatal(err)
	}
	env.Normalise()
	return memory.NewMemory(env)
}

// a cartridge image with a branch at the entry point and header fields.
func cartImage(size int) []byte {
	data := make([]byte, size)
	binary.LittleEndian.PutUint32(data, 0xea000010)
	copy(data[0xa0:], "GOPHER TEST")
	copy(data[0xac:], "ATSE")
	copy(data[0xb0:], "01")
	return data
}

func TestLoadROM(t *testing.T) {
	mem := newMemory(t)

	data := cartImage(0x180000)
	cl := cartridgeloader.NewLoaderFromData("test.gba", data)
	err := mem.LoadROM(&cl)
	test.ExpectedSuccess(t, err)

	test.Equate(t, mem.RomSize, 0x180000)

	// mask rounds up to the next power of two
	test.Equate(t, mem.RomMask, 0x1fffff)

	// the checksum covers the whole image
	test.Equate(t, mem.RomCrc32, crc32.ChecksumIEEE(data))

	test.Equate(t, mem.Header.Title, "GOPHER TEST")
	test.Equate(t, mem.Header.GameCode, "ATSE")
	test.Equate(t, mem.Header.FullGameCode(), "AGB-ATSE")

	test.Equate(t, mem.Read32(memorymap.OriginCart), uint32(0xea000010))

	// addresses beyond the image but inside the mask read as unmapped
	test.Equate(t, mem.Read32(memorymap.OriginCart+0x190000), 0)
}

func TestFailedLoadKeepsAttachedCartridge(t *testing.T) {
	mem := newMemory(t)

	cl := cartridgeloader.NewLoaderFromData("test.gba", cartImage(0x1000))
	err := mem.LoadROM(&cl)
	test.ExpectedSuccess(t, err)

	crc := mem.RomCrc32

	// a load from an absent source fails without disturbing the attached
	// cartridge
	bad := cartridgeloader.NewLoader("/nonexistent/no-such-file.gba")
	err = mem.LoadROM(&bad)
	test.ExpectedFailure(t, err)

	test.Equate(t, mem.RomSize, 0x1000)
	test.Equate(t, mem.RomCrc32, crc)
	test.Equate(t, mem.Read32(memorymap.OriginCart), uint32(0xea000010))

	// same for the multiboot path
	bad = cartridgeloader.NewLoader("/nonexistent/no-such-file.gba")
	err = mem.LoadMultiboot(&bad)
	test.ExpectedFailure(t, err)

	test.Equate(t, mem.RomSize, 0x1000)
	test.Equate(t, mem.RomCrc32, crc)
	test.Equate(t, mem.Read32(memorymap.OriginCart), uint32(0xea000010))
}

func TestUnloadBIOSReleasesSource(t *testing.T) {
	mem := newMemory(t)

	cl := cartridgeloader.NewLoaderFromData("bios.bin", make([]byte, memorymap.SizeBios))
	err := mem.LoadBIOS(&cl)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, mem.HasBIOS())

	mem.UnloadBIOS()
	test.ExpectedFailure(t, mem.HasBIOS())

	// unloading again is a no-op
	mem.UnloadBIOS()
	test.ExpectedFailure(t, mem.HasBIOS())
}

func TestRomMaskPow2(t *testing.T) {
	mem := newMemory(t)

	for _, size := range []int{0x1000, 0x1001, 0x100000, 0x200000, 0x2000000} {
		cl := cartridgeloader.NewLoaderFromData("test.gba", cartImage(size))
		err := mem.LoadROM(&cl)
		test.ExpectedSuccess(t, err)

		mask := mem.RomMask
		test.ExpectedSuccess(t, (mask+1)&mask == 0)
		test.ExpectedSuccess(t, mask+1 >= mem.RomSize)
	}
}

func TestYankRestoredOnReset(t *testing.T) {
	mem := newMemory(t)

	cl := cartridgeloader.NewLoaderFromData("test.gba", cartImage(0x1000))
	err := mem.LoadROM(&cl)
	test.ExpectedSuccess(t, err)

	size := mem.RomSize
	mask := mem.RomMask

	mem.Yank()
	test.Equate(t, mem.RomSize, 0)
	test.Equate(t, mem.RomMask, 0)
	test.Equate(t, mem.YankedRomSize, size)

	// yanked cartridge reads as unmapped
	test.Equate(t, mem.Read32(memorymap.OriginCart), 0)

	mem.Reset()
	test.Equate(t, mem.RomSize, size)
	test.Equate(t, mem.RomMask, mask)
	test.Equate(t, mem.YankedRomSize, 0)
	test.Equate(t, mem.Read32(memorymap.OriginCart), uint32(0xea000010))
}

type failingPatch struct{}

func (p failingPatch) OutputSize(currentSize uint32) uint32 {
	return currentSize
}

func (p failingPatch) Apply(pristine []byte, output []byte) error {
	copy(output, pristine)
	output[0] = 0xff
	return testError
}

var testError = errTest{}

type errTest struct{}

func (e errTest) Error() string { return "test error" }

func TestPatchFailureReverts(t *testing.T) {
	mem := newMemory(t)

	cl := cartridgeloader.NewLoaderFromData("test.gba", cartImage(0x1000))
	err := mem.LoadROM(&cl)
	test.ExpectedSuccess(t, err)

	crc := mem.RomCrc32
	size := mem.RomSize
	mask := mem.RomMask

	err = mem.ApplyPatch(failingPatch{})
	test.ExpectedFailure(t, err)

	// the active image is the pristine image again
	test.Equate(t, mem.RomCrc32, crc)
	test.Equate(t, mem.RomSize, size)
	test.Equate(t, mem.RomMask, mask)
	test.Equate(t, mem.Read32(memorymap.OriginCart), uint32(0xea000010))
}

func TestRAMReadWrite(t *testing.T) {
	mem := newMemory(t)

	mem.Write32(memorymap.OriginWorkingRAM+0x100, 0xdeadbeef)
	test.Equate(t, mem.Read32(memorymap.OriginWorkingRAM+0x100), uint32(0xdeadbeef))
	test.Equate(t, mem.Read16(memorymap.OriginWorkingRAM+0x100), uint16(0xbeef))
	test.Equate(t, mem.Read8(memorymap.OriginWorkingRAM+0x103), uint8(0xde))

	mem.Write16(memorymap.OriginInternalRAM+0x10, 0x1234)
	test.Equate(t, mem.Read16(memorymap.OriginInternalRAM+0x10), uint16(0x1234))

	// working RAM mirrors
	test.Equate(t, mem.Read32(memorymap.OriginWorkingRAM+memorymap.SizeWorkingRAM+0x100), uint32(0xdeadbeef))
}

func TestInterruptFlagAcknowledge(t *testing.T) {
	mem := newMemory(t)

	mem.SetInterruptFlag(0)
	mem.SetInterruptFlag(3)
	test.Equate(t, mem.IF(), uint16(0x0009))

	// writing a one acknowledges; writing a zero leaves the flag alone
	mem.WriteIO(memory.RegIF, 0x0001)
	test.Equate(t, mem.IF(), uint16(0x0008))

	mem.WriteIO(memory.RegIF, 0xfffe)
	test.Equate(t, mem.IF(), uint16(0x0000))
}

type recordingHooks struct {
	ie      uint16
	ime     uint16
	halted  int
	stopped int
}

func (h *recordingHooks) WriteIE(value uint16)  { h.ie = value }
func (h *recordingHooks) WriteIME(value uint16) { h.ime = value }
func (h *recordingHooks) Halt()                 { h.halted++ }
func (h *recordingHooks) Stop()                 { h.stopped++ }

func TestIOHooks(t *testing.T) {
	mem := newMemory(t)
	hooks := &recordingHooks{}
	mem.SetHooks(hooks)

	mem.WriteIO(memory.RegIE, 0x4001)
	test.Equate(t, mem.IE(), uint16(0x4001))
	test.Equate(t, hooks.ie, uint16(0x4001))

	mem.WriteIO(memory.RegIME, 0x0001)
	test.ExpectedSuccess(t, mem.IME())
	test.Equate(t, hooks.ime, uint16(0x0001))

	// byte write to HALTCNT. bit 7 selects stop over halt
	mem.WriteIO8(memory.RegHaltCnt, 0x00)
	test.Equate(t, hooks.halted, 1)
	test.Equate(t, hooks.stopped, 0)

	mem.WriteIO8(memory.RegHaltCnt, 0x80)
	test.Equate(t, hooks.stopped, 1)
}

func TestMultibootCopiedAtReset(t *testing.T) {
	mem := newMemory(t)

	data := cartImage(0x2000)
	cl := cartridgeloader.NewLoaderFromData("mb.gba", data)
	err := mem.LoadMultiboot(&cl)
	test.ExpectedSuccess(t, err)

	// a multiboot image is not mapped into the cartridge space
	test.Equate(t, mem.RomSize, 0)
	test.Equate(t, mem.Read32(memorymap.OriginCart), 0)

	mem.Reset()
	test.Equate(t, mem.Read32(memorymap.OriginWorkingRAM), uint32(0xea000010))
}
