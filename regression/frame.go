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

package regression

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jetsetilly/gopheradvance/cartridgeloader"
	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/database"
	"github.com/jetsetilly/gopheradvance/digest"
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware"
)

const frameEntryType = "frame"

const (
	frameFieldCartName int = iota
	frameFieldNumFrames
	frameFieldVideoDigest
	frameFieldAudioDigest
	numFrameFields
)

// FrameRecord is the simplest regression test type. The cartridge is run
// for a number of frames and digests of the video and audio streams are
// compared against the recorded values.
type FrameRecord struct {
	CartridgeFile string
	NumFrames     int

	videoDigest string
	audioDigest string
}

func deserialiseFrameEntry(fields database.SerialisedEntry) (database.Entry, error) {
	if len(fields) != numFrameFields {
		return nil, curated.Errorf("frame: wrong number of fields in entry")
	}

	rec := &FrameRecord{
		CartridgeFile: fields[frameFieldCartName],
		videoDigest:   fields[frameFieldVideoDigest],
		audioDigest:   fields[frameFieldAudioDigest],
	}

	var err error
	rec.NumFrames, err = strconv.Atoi(fields[frameFieldNumFrames])
	if err != nil {
		return nil, curated.Errorf("frame: invalid numFrames field [%s]", fields[frameFieldNumFrames])
	}

	return rec, nil
}

// EntryType implements the database.Entry interface.
func (rec *FrameRecord) EntryType() string {
	return frameEntryType
}

// Serialise implements the database.Entry interface.
func (rec *FrameRecord) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		rec.CartridgeFile,
		strconv.Itoa(rec.NumFrames),
		rec.videoDigest,
		rec.audioDigest,
	}, nil
}

// CleanUp implements the database.Entry interface.
func (rec *FrameRecord) CleanUp() error {
	return nil
}

func (rec *FrameRecord) String() string {
	return fmt.Sprintf("%s frames=%d", rec.CartridgeFile, rec.NumFrames)
}

// regress implements the Regressor interface.
func (rec *FrameRecord) regress(newRegression bool, output io.Writer, message string) (bool, error) {
	output.Write([]byte(message))

	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	if err != nil {
		return false, curated.Errorf("frame: %v", err)
	}

	// regression tests must start from the same state every run
	env.Normalise()

	g := hardware.NewGBA(env)
	defer g.End()

	vid := digest.NewVideo(g)
	aud := digest.NewAudio(g)

	ldr := cartridgeloader.NewLoader(rec.CartridgeFile)
	if err := g.AttachCartridge(&ldr); err != nil {
		return false, curated.Errorf("frame: %v", err)
	}
	g.SkipBIOS()

	// a regression run must not disturb the save file on disk
	g.Mem.Savedata.Mask()

	if err := g.RunForFrameCount(rec.NumFrames); err != nil {
		return false, curated.Errorf("frame: %v", err)
	}

	if newRegression {
		rec.videoDigest = vid.Hash()
		rec.audioDigest = aud.Hash()
		return true, nil
	}

	return vid.Hash() == rec.videoDigest && aud.Hash() == rec.audioDigest, nil
}

// NewFrameRecord is the preferred method of initialisation for the
// FrameRecord type.
func NewFrameRecord(cartridgeFile string, numFrames int) *FrameRecord {
	return &FrameRecord{
		CartridgeFile: cartridgeFile,
		NumFrames:     numFrames,
	}
}
