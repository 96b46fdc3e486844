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

// Package recorder records a play session to a transcript file and plays
// it back. Input events are stamped with the frame they occurred in; the
// transcript header names the cartridge so a playback against the wrong
// image can be refused.
package recorder

import (
	"fmt"
	"io"
	"os"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/hardware"
)

// Recorder transcribes input events as they happen. It implements the
// hardware.Recorder interface.
type Recorder struct {
	g *hardware.GBA

	output *os.File

	// the frame counter maintained by NextFrame(). input events are
	// stamped with this value
	frame uint32
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type. The recorder attaches itself to the console.
func NewRecorder(transcript string, g *hardware.GBA) (*Recorder, error) {
	rec := &Recorder{g: g}

	var err error
	rec.output, err = os.Create(transcript)
	if err != nil {
		return nil, curated.Errorf("recorder: %v", err)
	}

	if err := rec.writeHeader(); err != nil {
		_ = rec.output.Close()
		return nil, err
	}

	g.AttachRecorder(rec)

	return rec, nil
}

func (rec *Recorder) writeHeader() error {
	lines := fmt.Sprintf("# %s\n# %08x\n",
		rec.g.Mem.Header.Title, rec.g.Mem.RomCrc32)

	n, err := io.WriteString(rec.output, lines)
	if err != nil {
		return curated.Errorf("recorder: %v", err)
	}
	if n != len(lines) {
		return curated.Errorf("recorder: output truncated")
	}
	return nil
}

// RecordKey transcribes a key event. The console should be sent the event
// as normal; the recorder only observes.
func (rec *Recorder) RecordKey(key hardware.Key, pressed bool) error {
	p := 0
	if pressed {
		p = 1
	}
	_, err := fmt.Fprintf(rec.output, "%d, %d, %d\n", rec.frame, key, p)
	if err != nil {
		return curated.Errorf("recorder: %v", err)
	}
	return nil
}

// End the recording, flushing the transcript to disk.
func (rec *Recorder) End() error {
	rec.g.AttachRecorder(nil)
	if err := rec.output.Close(); err != nil {
		return curated.Errorf("recorder: %v", err)
	}
	return nil
}

// NextFrame implements the hardware.Recorder interface.
func (rec *Recorder) NextFrame() {
	rec.frame++
}

// IsPlaying implements the hardware.Recorder interface.
func (rec *Recorder) IsPlaying() bool {
	return false
}

// IsRecording implements the hardware.Recorder interface.
func (rec *Recorder) IsRecording() bool {
	return true
}
