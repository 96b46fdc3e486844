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

package database

import (
	"github.com/jetsetilly/gopheradvance/curated"
)

// SerialisedEntry is the Entry data represented as an array of strings.
type SerialisedEntry []string

// the function used to recreate an entry from its serialised fields.
type deserialiser func(fields SerialisedEntry) (Entry, error)

// Entry represents a generic entry in the database.
type Entry interface {
	// EntryType identifies the entry type in the database file
	EntryType() string

	// information about the entry in a human readable format. the machine
	// readable representation is returned by Serialise()
	String() string

	// the entry data as an instance of SerialisedEntry
	Serialise() (SerialisedEntry, error)

	// CleanUp is called when the entry is deleted from the database
	CleanUp() error
}

// RegisterEntryType tells the session what entries to expect in the
// database and how to deserialise them.
func (db *Session) RegisterEntryType(id string, des deserialiser) error {
	if _, ok := db.entryTypes[id]; ok {
		return curated.Errorf("database: duplicate entry type [%s]", id)
	}
	db.entryTypes[id] = des
	return nil
}
