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
	"hash/crc32"

	"github.com/jetsetilly/gopheradvance/cartridgeloader"
	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/hardware/memory/memorymap"
	"github.com/jetsetilly/gopheradvance/logger"
	"github.com/jetsetilly/gopheradvance/patch"
)

// LoadROM attaches a cartridge image. Any previously attached image is
// unloaded first. Images larger than the cartridge address space are
// clamped to fit.
func (mem *Memory) LoadROM(loader *cartridgeloader.Loader) error {
	// an absent source must leave any attached cartridge in place
	if err := loader.Load(); err != nil {
		return curated.Errorf("rom: %v", err)
	}

	// reattaching the current loader must not release the data just loaded
	if mem.loader == loader {
		mem.loader = nil
	}
	mem.UnloadROM()
	mem.loader = loader

	size := loader.Size()
	if size > memorymap.SizeCart {
		size = memorymap.SizeCart
	}

	data, err := loader.Map(size)
	if err != nil {
		return curated.Errorf("rom: %v", err)
	}

	mem.pristineRom = data
	mem.pristineRomSize = uint32(size)
	mem.YankedRomSize = 0

	mem.Rom = mem.pristineRom
	mem.RomSize = mem.pristineRomSize
	mem.RomMask = memorymap.NextPow2(mem.RomSize) - 1
	mem.RomCrc32 = crc32.ChecksumIEEE(mem.Rom[:mem.RomSize])
	mem.Multiboot = false

	mem.Header = ParseHeader(mem.Rom)
	mem.GPIO = ProbeGPIO(mem.Rom, mem.Header)
	mem.VFame = DetectVFame(mem.Rom, mem.Header)

	if err := mem.Savedata.Init(loader.ShortName()); err != nil {
		logger.Logf(mem.env, "rom", "%v", err)
	}

	logger.Logf(mem.env, "rom", "%s (%s) crc32=%08x", mem.Header.Title, mem.Header.GameCode, mem.RomCrc32)

	return nil
}

// LoadMultiboot attaches a multiboot program. The image is not mapped into
// the cartridge address space; it is copied into working RAM at reset.
func (mem *Memory) LoadMultiboot(loader *cartridgeloader.Loader) error {
	// an absent source must leave any attached cartridge in place
	if err := loader.Load(); err != nil {
		return curated.Errorf("multiboot: %v", err)
	}

	// reattaching the current loader must not release the data just loaded
	if mem.loader == loader {
		mem.loader = nil
	}
	mem.UnloadROM()
	mem.loader = loader

	size := loader.Size()
	if size > memorymap.SizeWorkingRAM {
		size = memorymap.SizeWorkingRAM
	}

	data, err := loader.Map(size)
	if err != nil {
		return curated.Errorf("multiboot: %v", err)
	}

	mem.pristineRom = data
	mem.pristineRomSize = uint32(size)
	mem.YankedRomSize = 0

	mem.Rom = nil
	mem.RomSize = 0
	mem.RomMask = 0
	mem.RomCrc32 = crc32.ChecksumIEEE(mem.pristineRom[:mem.pristineRomSize])
	mem.Multiboot = true

	mem.Header = ParseHeader(mem.pristineRom)

	logger.Logf(mem.env, "multiboot", "%s crc32=%08x", mem.Header.Title, mem.RomCrc32)

	return nil
}

// UnloadROM detaches the cartridge. Save data is flushed and the backing
// source released. Unloading when nothing is loaded is a no-op.
func (mem *Memory) UnloadROM() {
	// the active image is only a separate allocation after a patch
	mem.Rom = nil
	mem.RomSize = 0
	mem.RomMask = 0
	mem.YankedRomSize = 0

	if mem.loader != nil {
		_ = mem.loader.Close()
		mem.loader = nil
	}
	mem.pristineRom = nil
	mem.pristineRomSize = 0

	mem.Savedata.Deinit()

	mem.Multiboot = false
	mem.Header = Header{}
	mem.GPIO = GPIO{}
	mem.VFame = false
}

// ApplyPatch patches the attached cartridge image. The patch is always
// applied to the pristine image, never to a previously patched image; and
// on failure the active image reverts to the pristine image.
func (mem *Memory) ApplyPatch(p patch.Patch) error {
	if mem.pristineRom == nil {
		return curated.Errorf("patch: no cartridge attached")
	}

	patchedSize := p.OutputSize(mem.RomSize)
	if patchedSize == 0 || patchedSize > memorymap.SizeCart {
		return curated.Errorf("patch: unusable output size (%d)", patchedSize)
	}

	output := make([]byte, memorymap.SizeCart)
	if err := p.Apply(mem.pristineRom[:mem.pristineRomSize], output[:patchedSize]); err != nil {
		mem.Rom = mem.pristineRom
		mem.RomSize = mem.pristineRomSize
		mem.RomMask = memorymap.NextPow2(mem.RomSize) - 1
		return curated.Errorf("patch: %v", err)
	}

	mem.Rom = output
	mem.RomSize = patchedSize

	// a patched image can be any size so the whole cartridge address
	// space is left addressable
	mem.RomMask = memorymap.SizeCart - 1

	mem.RomCrc32 = crc32.ChecksumIEEE(mem.Rom[:mem.RomSize])

	logger.Logf(mem.env, "patch", "applied. new size %d crc32=%08x", mem.RomSize, mem.RomCrc32)

	return nil
}

// Yank simulates the cartridge being pulled from a running console. The
// image stays attached but reads as unmapped until the next reset. The
// caller is responsible for raising the game pak interrupt.
func (mem *Memory) Yank() {
	if mem.RomSize == 0 {
		return
	}
	mem.YankedRomSize = mem.RomSize
	mem.RomSize = 0
	mem.RomMask = 0
}
