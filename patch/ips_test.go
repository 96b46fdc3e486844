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

package patch_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/patch"
	"github.com/jetsetilly/gopheradvance/test"
)

// assembles an IPS patch from records. each record is offset, payload and an
// rle flag (payload of one byte repeated rleLen times).
type ipsRecord struct {
	offset  int
	payload []byte
	rleLen  int
}

func assembleIPS(records ...ipsRecord) []byte {
	data := []byte("PATCH")
	for _, r := range records {
		data = append(data, byte(r.offset>>16), byte(r.offset>>8), byte(r.offset))
		if r.rleLen > 0 {
			data = append(data, 0, 0)
			data = append(data, byte(r.rleLen>>8), byte(r.rleLen))
			data = append(data, r.payload[0])
		} else {
			data = append(data, byte(len(r.payload)>>8), byte(len(r.payload)))
			data = append(data, r.payload...)
		}
	}
	return append(data, 'E', 'O', 'F')
}

func TestIPSApply(t *testing.T) {
	p, err := patch.NewIPS(assembleIPS(
		ipsRecord{offset: 0x10, payload: []byte{0xde, 0xad}},
		ipsRecord{offset: 0x20, payload: []byte{0xff}, rleLen: 8},
	))
	test.ExpectedSuccess(t, err)

	pristine := make([]byte, 0x40)
	test.Equate(t, p.OutputSize(uint32(len(pristine))), 0x40)

	output := make([]byte, 0x40)
	err = p.Apply(pristine, output)
	test.ExpectedSuccess(t, err)

	test.Equate(t, output[0x10], uint8(0xde))
	test.Equate(t, output[0x11], uint8(0xad))
	for i := 0x20; i < 0x28; i++ {
		test.Equate(t, output[i], uint8(0xff))
	}
	test.Equate(t, output[0x28], uint8(0x00))

	// the pristine image is untouched
	test.Equate(t, pristine[0x10], uint8(0x00))
}

func TestIPSGrowsOutput(t *testing.T) {
	p, err := patch.NewIPS(assembleIPS(
		ipsRecord{offset: 0x100, payload: []byte{0x01, 0x02, 0x03, 0x04}},
	))
	test.ExpectedSuccess(t, err)
	test.Equate(t, p.OutputSize(0x40), 0x104)
}

func TestIPSMalformed(t *testing.T) {
	_, err := patch.NewIPS([]byte("NOTPATCH"))
	test.ExpectedFailure(t, err)

	// missing EOF terminator
	p, err := patch.NewIPS([]byte("PATCH\x00\x00\x10\x00\x02\xde\xad"))
	test.ExpectedSuccess(t, err)
	test.Equate(t, p.OutputSize(0x40), 0)

	err = p.Apply(make([]byte, 0x40), make([]byte, 0x40))
	test.ExpectedFailure(t, err)
}
