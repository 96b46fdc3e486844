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

package patch

import (
	"bytes"

	"github.com/jetsetilly/gopheradvance/curated"
)

const ipsMagic = "PATCH"
const ipsEOF = 0x454f46 // "EOF" as a 24bit offset

// IPS is a patch in the venerable IPS format: a sequence of records, each
// naming a 24bit offset and carrying either literal bytes or a run-length
// encoded fill.
type IPS struct {
	data []byte
}

// NewIPS checks the magic number of the patch data and returns an IPS
// instance.
func NewIPS(data []byte) (*IPS, error) {
	if len(data) < len(ipsMagic)+3 || !bytes.HasPrefix(data, []byte(ipsMagic)) {
		return nil, curated.Errorf("ips: not an IPS patch")
	}
	return &IPS{data: data}, nil
}

// read24 returns the big-endian 24bit value at offset idx.
func read24(data []byte, idx int) int {
	return int(data[idx])<<16 | int(data[idx+1])<<8 | int(data[idx+2])
}

// walk visits every record in the patch. the visit function receives the
// target offset, the length of the record and the bytes to write (a single
// repeated byte for RLE records, indicated by rle).
func (p *IPS) walk(visit func(offset int, length int, value []byte, rle bool) error) error {
	idx := len(ipsMagic)

	for {
		if idx+3 > len(p.data) {
			return curated.Errorf("ips: truncated patch")
		}

		offset := read24(p.data, idx)
		idx += 3
		if offset == ipsEOF {
			return nil
		}

		if idx+2 > len(p.data) {
			return curated.Errorf("ips: truncated patch")
		}
		length := int(p.data[idx])<<8 | int(p.data[idx+1])
		idx += 2

		if length == 0 {
			// RLE record. two byte run length and one byte fill value
			if idx+3 > len(p.data) {
				return curated.Errorf("ips: truncated patch")
			}
			length = int(p.data[idx])<<8 | int(p.data[idx+1])
			value := p.data[idx+2 : idx+3]
			idx += 3
			if err := visit(offset, length, value, true); err != nil {
				return err
			}
		} else {
			if idx+length > len(p.data) {
				return curated.Errorf("ips: truncated patch")
			}
			if err := visit(offset, length, p.data[idx:idx+length], false); err != nil {
				return err
			}
			idx += length
		}
	}
}

// OutputSize implements the Patch interface. The output is as large as the
// unpatched image or the furthest extent of any patch record, whichever is
// greater. A malformed patch returns zero.
func (p *IPS) OutputSize(currentSize uint32) uint32 {
	size := int(currentSize)
	err := p.walk(func(offset int, length int, _ []byte, _ bool) error {
		if offset+length > size {
			size = offset + length
		}
		return nil
	})
	if err != nil {
		return 0
	}
	return uint32(size)
}

// Apply implements the Patch interface.
func (p *IPS) Apply(pristine []byte, output []byte) error {
	copy(output, pristine)

	return p.walk(func(offset int, length int, value []byte, rle bool) error {
		if offset+length > len(output) {
			return curated.Errorf("ips: record extends past output (%#08x)", offset)
		}
		if rle {
			for i := 0; i < length; i++ {
				output[offset+i] = value[0]
			}
		} else {
			copy(output[offset:], value)
		}
		return nil
	})
}
