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
	"strconv"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/database"
	"github.com/jetsetilly/gopheradvance/hardware"
)

const idleEntryType = "idle"

const (
	idleFieldCartHash int = iota
	idleFieldCartName
	idleFieldAddress
	idleFieldNotes
	numIdleFields
)

// Idle records the known idle loop address for a cartridge. Skipping the
// idle loop makes the emulation considerably cheaper to run.
type Idle struct {
	cartHash string
	cartName string
	address  uint32
	notes    string
}

func deserialiseIdleEntry(fields database.SerialisedEntry) (database.Entry, error) {
	if len(fields) != numIdleFields {
		return nil, curated.Errorf("idle: wrong number of fields in entry")
	}

	set := &Idle{
		cartHash: fields[idleFieldCartHash],
		cartName: fields[idleFieldCartName],
		notes:    fields[idleFieldNotes],
	}

	addr, err := strconv.ParseUint(fields[idleFieldAddress], 16, 32)
	if err != nil {
		return nil, curated.Errorf("idle: invalid address field [%s]", fields[idleFieldAddress])
	}
	set.address = uint32(addr)

	return set, nil
}

// EntryType implements the database.Entry interface.
func (set *Idle) EntryType() string {
	return idleEntryType
}

// Serialise implements the database.Entry interface.
func (set *Idle) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		set.cartHash,
		set.cartName,
		fmt.Sprintf("%08x", set.address),
		set.notes,
	}, nil
}

// CleanUp implements the database.Entry interface.
func (set *Idle) CleanUp() error {
	return nil
}

func (set *Idle) String() string {
	return fmt.Sprintf("idle loop for %s at %08x", set.cartName, set.address)
}

// matchCartHash implements the setupEntry interface.
func (set *Idle) matchCartHash(hash string) bool {
	return set.cartHash == hash
}

// apply implements the setupEntry interface.
func (set *Idle) apply(g *hardware.GBA) (string, error) {
	g.SetIdleLoop(set.address)
	return set.String(), nil
}
