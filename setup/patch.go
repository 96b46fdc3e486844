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

package setup

import (
	"fmt"
	"os"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/database"
	"github.com/jetsetilly/gopheradvance/hardware"
	"github.com/jetsetilly/gopheradvance/patch"
)

const patchEntryType = "patch"

const (
	patchFieldCartHash int = iota
	patchFieldCartName
	patchFieldPatchFile
	patchFieldNotes
	numPatchFields
)

// Patch records a patch that is applied to the cartridge whenever it is
// attached.
type Patch struct {
	cartHash  string
	cartName  string
	patchFile string
	notes     string
}

func deserialisePatchEntry(fields database.SerialisedEntry) (database.Entry, error) {
	if len(fields) != numPatchFields {
		return nil, curated.Errorf("patch: wrong number of fields in entry")
	}

	return &Patch{
		cartHash:  fields[patchFieldCartHash],
		cartName:  fields[patchFieldCartName],
		patchFile: fields[patchFieldPatchFile],
		notes:     fields[patchFieldNotes],
	}, nil
}

// EntryType implements the database.Entry interface.
func (set *Patch) EntryType() string {
	return patchEntryType
}

// Serialise implements the database.Entry interface.
func (set *Patch) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		set.cartHash,
		set.cartName,
		set.patchFile,
		set.notes,
	}, nil
}

// CleanUp implements the database.Entry interface.
func (set *Patch) CleanUp() error {
	return nil
}

func (set *Patch) String() string {
	return fmt.Sprintf("patch for %s: %s", set.cartName, set.notes)
}

// matchCartHash implements the setupEntry interface.
func (set *Patch) matchCartHash(hash string) bool {
	return set.cartHash == hash
}

// apply implements the setupEntry interface.
func (set *Patch) apply(g *hardware.GBA) (string, error) {
	data, err := os.ReadFile(set.patchFile)
	if err != nil {
		return "", err
	}

	ips, err := patch.NewIPS(data)
	if err != nil {
		return "", err
	}

	if err := g.Mem.ApplyPatch(ips); err != nil {
		return "", err
	}

	return set.String(), nil
}
