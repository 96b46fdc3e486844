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

// Package cartridgeloader is the loading mechanism for ROM, multiboot and
// BIOS images. A Loader holds the image data once loaded and acts as the
// backing source for the memory subsystem: it is sized, seekable, readable
// and mappable.
//
// Loaders can name local files or HTTP URLs. The fingerprint.go file
// provides the image classification functions (IsROM, IsMultiboot, IsBIOS)
// used by load-dispatch logic to decide what kind of image a loader holds.
package cartridgeloader
