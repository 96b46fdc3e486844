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

// Package savedata implements battery backed cartridge storage. Writes are
// buffered in memory and flushed to disk once the game has stopped writing
// for a few frames, so that a half-finished save is never committed.
package savedata

import (
	"os"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware/memory/memorymap"
	"github.com/jetsetilly/gopheradvance/logger"
	"github.com/jetsetilly/gopheradvance/resources"
)

// number of frames without a write before dirty data is flushed.
const cleanupThreshold = 15

// save files live in this subdirectory of the resource path.
const saveDir = "saves"

// Savedata is the battery backed storage of the attached cartridge.
type Savedata struct {
	env *environment.Environment

	// path of the save file on disk. the empty string means storage has
	// not been initialised
	path string

	// the storage contents. an erased cell reads as 0xff
	data []byte

	// a masked Savedata writes to a temporary buffer rather than the real
	// storage. used during rewind so that scrubbing through history does
	// not corrupt the save file
	masked     bool
	maskedData []byte

	// dirty tracking. a write sets dirtNew; Clean() promotes it to
	// dirtSeen and flushes once the write activity has settled
	dirtNew  bool
	dirtSeen bool
	dirtAge  uint32
}

// NewSavedata is the preferred method of initialisation for the Savedata
// type.
func NewSavedata(env *environment.Environment) *Savedata {
	return &Savedata{env: env}
}

// Init attaches the storage to a save file named after the cartridge. Any
// existing file contents are loaded.
func (sv *Savedata) Init(name string) error {
	sv.Deinit()

	path, err := resources.JoinPath(saveDir, name+".sav")
	if err != nil {
		return curated.Errorf("savedata: %v", err)
	}
	sv.path = path

	sv.data = make([]byte, memorymap.SizeSaveRAM)
	for i := range sv.data {
		sv.data[i] = 0xff
	}

	d, err := os.ReadFile(path)
	if err == nil {
		copy(sv.data, d)
		logger.Log(sv.env, "savedata", "loaded "+path)
	}

	return nil
}

// Deinit flushes any dirty data and detaches the storage. The Savedata
// reads as erased until the next Init().
func (sv *Savedata) Deinit() {
	if sv.path == "" {
		return
	}
	if sv.dirtNew || sv.dirtSeen {
		sv.flush()
	}
	sv.path = ""
	sv.data = nil
	sv.masked = false
	sv.maskedData = nil
	sv.dirtNew = false
	sv.dirtSeen = false
}

// Mask redirects writes to a scratch buffer. The real storage and the save
// file are untouched until Unmask() is called.
func (sv *Savedata) Mask() {
	if sv.masked {
		return
	}
	sv.maskedData = make([]byte, len(sv.data))
	copy(sv.maskedData, sv.data)
	sv.masked = true
}

// Unmask discards the scratch buffer and restores the real storage.
func (sv *Savedata) Unmask() {
	sv.masked = false
	sv.maskedData = nil
}

func (sv *Savedata) buffer() []byte {
	if sv.masked {
		return sv.maskedData
	}
	return sv.data
}

// Read8 returns the byte at idx. Unattached or out-of-range storage reads
// as erased.
func (sv *Savedata) Read8(idx uint32) uint8 {
	b := sv.buffer()
	if int(idx) >= len(b) {
		return 0xff
	}
	return b[idx]
}

// Write8 writes the byte at idx and marks the storage dirty.
func (sv *Savedata) Write8(idx uint32, v uint8) {
	b := sv.buffer()
	if int(idx) >= len(b) {
		return
	}
	b[idx] = v
	if !sv.masked {
		sv.dirtNew = true
	}
}

// Clean is called once per frame with the current frame counter. Dirty
// data is flushed to disk once no write has happened for a few frames.
func (sv *Savedata) Clean(frameCounter uint32) {
	if sv.dirtNew {
		sv.dirtNew = false
		sv.dirtSeen = true
		sv.dirtAge = frameCounter
		return
	}
	if sv.dirtSeen && frameCounter-sv.dirtAge > cleanupThreshold {
		sv.flush()
		sv.dirtSeen = false
	}
}

func (sv *Savedata) flush() {
	if sv.path == "" || sv.masked {
		return
	}
	if err := os.WriteFile(sv.path, sv.data, 0644); err != nil {
		logger.Logf(sv.env, "savedata", "flush failed: %v", err)
		return
	}
	logger.Log(sv.env, "savedata", "flushed "+sv.path)
}
