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
)

// the compressed logo occupies this range of the cartridge header. every
// licensed cartridge carries the same bytes; the unlicensed Vast Fame
// cartridges ship a modified logo alongside their address scrambling
// hardware.
const (
	logoOffset = 0x04
	logoLength = 0x9c
)

// crc32 of the logo bytes in a licensed cartridge.
const licensedLogoCrc32 = 0xd0beb55e

// game codes of known Vast Fame releases.
var vfameGameCodes = map[string]bool{
	"ZDBJ": true,
	"ZSNJ": true,
	"ZSQC": true,
}

// DetectVFame returns true if the image looks like an unlicensed Vast Fame
// cartridge. These cartridges scramble save storage addresses and need
// special handling.
func DetectVFame(data []byte, hdr Header) bool {
	if vfameGameCodes[hdr.GameCode] {
		return true
	}
	if len(data) < logoOffset+logoLength {
		return false
	}

	// a modified logo is a necessary but not sufficient signal. require
	// the maker code these cartridges ship with as well
	if crc32.ChecksumIEEE(data[logoOffset:logoOffset+logoLength]) == licensedLogoCrc32 {
		return false
	}
	return hdr.MakerCode == ""
}
