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
	"strings"
)

// cartridge header field offsets.
const (
	headerTitleOffset    = 0xa0
	headerTitleLength    = 12
	headerGameCodeOffset = 0xac
	headerGameCodeLength = 4
	headerMakerOffset    = 0xb0
	headerMakerLength    = 2
)

// Header is the parsed cartridge header.
type Header struct {
	// the game title as printed in the header, trimmed of padding
	Title string

	// the four character game code. the full product code as printed on
	// the cartridge label is returned by FullGameCode()
	GameCode string

	// two character publisher code
	MakerCode string
}

// ParseHeader reads the cartridge header fields out of a ROM image. Images
// too short to carry a header return the zero Header.
func ParseHeader(data []byte) Header {
	if len(data) < headerMakerOffset+headerMakerLength {
		return Header{}
	}

	trim := func(b []byte) string {
		return strings.TrimRight(string(b), "\x00 ")
	}

	return Header{
		Title:     trim(data[headerTitleOffset : headerTitleOffset+headerTitleLength]),
		GameCode:  trim(data[headerGameCodeOffset : headerGameCodeOffset+headerGameCodeLength]),
		MakerCode: trim(data[headerMakerOffset : headerMakerOffset+headerMakerLength]),
	}
}

// FullGameCode returns the product code as printed on cartridge labels.
func (hdr Header) FullGameCode() string {
	if hdr.GameCode == "" {
		return ""
	}
	return "AGB-" + hdr.GameCode
}
