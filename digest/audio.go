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
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/gopheradvance/hardware"
)

// Audio is an implementation of the audio.Sink interface. It generates a
// SHA-1 value over every sample buffer queued with it.
type Audio struct {
	digest [sha1.Size]byte
}

// NewAudio is the preferred method of initialisation for the Audio type.
// The digest attaches itself to the console's audio subsystem.
func NewAudio(g *hardware.GBA) *Audio {
	dig := &Audio{}
	g.Audio.AddSink(dig)
	return dig
}

// Hash implements the Digest interface.
func (dig *Audio) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Audio) ResetDigest() {
	dig.digest = [sha1.Size]byte{}
}

// Queue implements the audio.Sink interface. Hashes are chained; the
// previous digest value is folded in ahead of the new samples.
func (dig *Audio) Queue(samples []int16) error {
	buffer := make([]byte, len(dig.digest)+len(samples)*2)
	copy(buffer, dig.digest[:])
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buffer[len(dig.digest)+i*2:], uint16(s))
	}
	dig.digest = sha1.Sum(buffer)
	return nil
}
