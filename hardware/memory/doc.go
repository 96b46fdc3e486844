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

// Package memory implements the address space of the console: BIOS, the
// two RAM banks, the IO register file, cartridge ROM and battery backed
// save storage.
//
// The cartridge lifecycle (load, unload, patch, yank) lives here too. The
// pristine ROM image is kept separate from the active image so that a
// binary patch can always be applied from, and reverted to, the bytes that
// came off the disk.
package memory
