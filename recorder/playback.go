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

package recorder

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/hardware"
)

// number of header lines in a transcript file.
const numHeaderLines = 2

type playbackEntry struct {
	frame   uint32
	key     hardware.Key
	pressed bool

	// the line in the transcript the event appears on
	line int
}

// Playback replays the input events in a previously recorded transcript.
// It implements the hardware.Recorder interface.
type Playback struct {
	g *hardware.GBA

	// cartridge details from the transcript header
	CartTitle string
	CartCrc32 uint32

	sequence []playbackEntry
	seqCt    int

	frame uint32

	// the last frame in which an event occurs
	endFrame uint32
}

func (plb Playback) String() string {
	return fmt.Sprintf("%d/%d (%.1f%%)", plb.frame, plb.endFrame,
		100*(float64(plb.frame)/float64(plb.endFrame)))
}

// NewPlayback is the preferred method of initialisation for the Playback
// type. The transcript header is validated against the attached cartridge
// before the playback attaches itself to the console.
func NewPlayback(transcript string, g *hardware.GBA) (*Playback, error) {
	plb := &Playback{g: g}

	buffer, err := os.ReadFile(transcript)
	if err != nil {
		return nil, curated.Errorf("playback: %v", err)
	}

	lines := strings.Split(string(buffer), "\n")
	if len(lines) < numHeaderLines {
		return nil, curated.Errorf("playback: transcript has no header")
	}

	plb.CartTitle = strings.TrimSpace(strings.TrimPrefix(lines[0], "#"))
	crc, err := strconv.ParseUint(strings.TrimSpace(strings.TrimPrefix(lines[1], "#")), 16, 32)
	if err != nil {
		return nil, curated.Errorf("playback: bad header at line 2")
	}
	plb.CartCrc32 = uint32(crc)

	if plb.CartCrc32 != g.Mem.RomCrc32 {
		return nil, curated.Errorf("playback: transcript was recorded against a different cartridge")
	}

	for i := numHeaderLines; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		toks := strings.Split(lines[i], ", ")
		if len(toks) != 3 {
			return nil, curated.Errorf("playback: expected 3 fields at line %d", i+1)
		}

		entry := playbackEntry{line: i + 1}

		frame, err := strconv.ParseUint(toks[0], 10, 32)
		if err != nil {
			return nil, curated.Errorf("playback: bad frame number at line %d", i+1)
		}
		entry.frame = uint32(frame)

		key, err := strconv.Atoi(toks[1])
		if err != nil {
			return nil, curated.Errorf("playback: bad key at line %d", i+1)
		}
		entry.key = hardware.Key(key)

		entry.pressed = toks[2] == "1"

		plb.sequence = append(plb.sequence, entry)
		plb.endFrame = entry.frame
	}

	g.AttachRecorder(plb)

	return plb, nil
}

// EndFrame returns true once the playback has gone past the last frame in
// the transcript.
func (plb *Playback) EndFrame() bool {
	return plb.frame > plb.endFrame
}

// NextFrame implements the hardware.Recorder interface. Events recorded
// for the new frame are sent to the console.
func (plb *Playback) NextFrame() {
	plb.frame++
	for plb.seqCt < len(plb.sequence) && plb.sequence[plb.seqCt].frame <= plb.frame {
		e := plb.sequence[plb.seqCt]
		plb.g.HandleKeyEvent(e.key, e.pressed)
		plb.seqCt++
	}
}

// IsPlaying implements the hardware.Recorder interface.
func (plb *Playback) IsPlaying() bool {
	return true
}

// IsRecording implements the hardware.Recorder interface.
func (plb *Playback) IsRecording() bool {
	return false
}
