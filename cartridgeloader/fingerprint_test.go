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

package cartridgeloader_test

import (
	"encoding/binary"
	"testing"

	"github.com/jetsetilly/gopheradvance/cartridgeloader"
	"github.com/jetsetilly/gopheradvance/hardware/memory/memorymap"
	"github.com/jetsetilly/gopheradvance/test"
)

// image with an unconditional ARM branch at the entry point.
func romImage(size int) []byte {
	data := make([]byte, size)
	binary.LittleEndian.PutUint32(data, 0xea000010)
	return data
}

// image with a plausible vector table in the first 0x20 bytes.
func biosImage() []byte {
	data := make([]byte, 0x100)
	for i := 0; i < 7; i++ {
		binary.LittleEndian.PutUint32(data[i*4:], 0xea000012)
	}
	return data
}

func TestFingerprintROM(t *testing.T) {
	cl := cartridgeloader.NewLoaderFromData("test.gba", romImage(0x1000))
	test.ExpectedSuccess(t, cl.IsROM())
	test.ExpectedFailure(t, cl.IsBIOS())

	// entry point that is not a branch
	data := romImage(0x1000)
	data[3] = 0x00
	cl = cartridgeloader.NewLoaderFromData("test.gba", data)
	test.ExpectedFailure(t, cl.IsROM())

	// too short to classify
	cl = cartridgeloader.NewLoaderFromData("test.gba", []byte{0xea})
	test.ExpectedFailure(t, cl.IsROM())
}

func TestFingerprintBIOS(t *testing.T) {
	cl := cartridgeloader.NewLoaderFromData("bios.bin", biosImage())
	test.ExpectedSuccess(t, cl.IsBIOS())

	// a BIOS image is never a ROM even though its entry point is a branch
	test.ExpectedFailure(t, cl.IsROM())

	// one corrupt vector is enough to fail the test
	data := biosImage()
	data[4*4+3] = 0x00
	cl = cartridgeloader.NewLoaderFromData("bios.bin", data)
	test.ExpectedFailure(t, cl.IsBIOS())
}

func TestFingerprintMultiboot(t *testing.T) {
	withBranch := func(size int, opcode uint32) cartridgeloader.Loader {
		data := romImage(size)
		binary.LittleEndian.PutUint32(data[0xc0:], opcode)
		return cartridgeloader.NewLoaderFromData("mb.gba", data)
	}

	// branch past the multiboot header
	cl := withBranch(0x1000, 0xea000010)
	test.ExpectedSuccess(t, cl.IsMultiboot())

	// too large to fit in working RAM
	cl = withBranch(memorymap.SizeWorkingRAM+1, 0xea000010)
	test.ExpectedFailure(t, cl.IsMultiboot())

	// exactly the size of working RAM is fine
	cl = withBranch(memorymap.SizeWorkingRAM, 0xea000010)
	test.ExpectedSuccess(t, cl.IsMultiboot())

	// not a branch at the joybus entry point
	cl = withBranch(0x1000, 0x00000000)
	test.ExpectedFailure(t, cl.IsMultiboot())

	// branch with a zero or backward target
	cl = withBranch(0x1000, 0xea000000)
	test.ExpectedFailure(t, cl.IsMultiboot())
	cl = withBranch(0x1000, 0xeaffffff)
	test.ExpectedFailure(t, cl.IsMultiboot())

	// the two known false positives. offsets of 28 and 24 bytes
	cl = withBranch(0x1000, 0xea000007)
	test.ExpectedFailure(t, cl.IsMultiboot())
	cl = withBranch(0x1000, 0xea000006)
	test.ExpectedFailure(t, cl.IsMultiboot())
}

func TestLoaderSeekRead(t *testing.T) {
	cl := cartridgeloader.NewLoaderFromData("test.gba", romImage(0x100))
	test.Equate(t, cl.Size(), int64(0x100))

	p := make([]byte, 4)
	n, err := cl.Read(p)
	test.ExpectedSuccess(t, err)
	test.Equate(t, n, 4)

	pos, err := cl.Seek(0x80, 0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, pos, int64(0x80))

	_, err = cl.Seek(-1, 0)
	test.ExpectedFailure(t, err)
}
