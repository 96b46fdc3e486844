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
)

// checksums of the BIOS images known to have shipped in real hardware.
const (
	BiosChecksumGBA = 0xbaae187f
	BiosChecksumDS  = 0xbaae1880
)

// LoadBIOS attaches a BIOS image. The checksum is compared against the
// known official images; a mismatch is logged but is not an error.
func (mem *Memory) LoadBIOS(loader *cartridgeloader.Loader) error {
	if err := loader.Load(); err != nil {
		return curated.Errorf("bios: %v", err)
	}

	if loader.Size() < memorymap.SizeBios {
		return curated.Errorf("bios: image too small (%d bytes)", loader.Size())
	}

	data, err := loader.Map(memorymap.SizeBios)
	if err != nil {
		return curated.Errorf("bios: %v", err)
	}

	if mem.biosLoader != nil {
		_ = mem.biosLoader.Close()
	}
	mem.biosLoader = loader

	copy(mem.Bios, data)

	mem.BiosChecksum = crc32.ChecksumIEEE(mem.Bios)
	switch mem.BiosChecksum {
	case BiosChecksumGBA:
		logger.Log(mem.env, "bios", "official GBA BIOS detected")
	case BiosChecksumDS:
		logger.Log(mem.env, "bios", "official GBA (DS) BIOS detected")
	default:
		logger.Logf(mem.env, "bios", "unrecognised BIOS (checksum %08x)", mem.BiosChecksum)
	}

	return nil
}

// UnloadBIOS detaches the BIOS image and releases its backing source.
// Unloading when nothing is attached is a no-op.
func (mem *Memory) UnloadBIOS() {
	if mem.biosLoader == nil {
		return
	}
	_ = mem.biosLoader.Close()
	mem.biosLoader = nil

	for i := range mem.Bios {
		mem.Bios[i] = 0
	}
	mem.BiosChecksum = 0
}

// HasBIOS returns true if a BIOS image has been attached.
func (mem *Memory) HasBIOS() bool {
	return mem.biosLoader != nil
}
