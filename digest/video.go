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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/jetsetilly/gopheradvance/hardware"
)

// Video is an implementation of the hardware.Stream interface. It generates
// a SHA-1 value over every frame posted to it. The image is not displayed
// anywhere.
type Video struct {
	digest   [sha1.Size]byte
	frameNum int
}

// NewVideo is the preferred method of initialisation for the Video type.
// The digest attaches itself to the console.
func NewVideo(g *hardware.GBA) *Video {
	dig := &Video{}
	g.AttachStream(dig)
	return dig
}

// Hash implements the Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Video) ResetDigest() {
	dig.digest = [sha1.Size]byte{}
	dig.frameNum = 0
}

// PostVideoFrame implements the hardware.Stream interface. Hashes are
// chained; the previous digest value is folded in ahead of the new frame's
// pixels.
func (dig *Video) PostVideoFrame(pixels []byte, stride int) {
	buffer := make([]byte, 0, len(dig.digest)+len(pixels))
	buffer = append(buffer, dig.digest[:]...)
	buffer = append(buffer, pixels...)
	dig.digest = sha1.Sum(buffer)
	dig.frameNum++
}
