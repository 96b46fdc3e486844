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

package database_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gopheradvance/database"
	"github.com/jetsetilly/gopheradvance/test"
)

type testEntry struct {
	name  string
	notes string
}

func (ent *testEntry) EntryType() string {
	return "test"
}

func (ent *testEntry) String() string {
	return ent.name
}

func (ent *testEntry) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{ent.name, ent.notes}, nil
}

func (ent *testEntry) CleanUp() error {
	return nil
}

func deserialiseTestEntry(fields database.SerialisedEntry) (database.Entry, error) {
	return &testEntry{name: fields[0], notes: fields[1]}, nil
}

func initSession(db *database.Session) error {
	return db.RegisterEntryType("test", deserialiseTestEntry)
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(path, database.ActivityCreating, initSession)
	test.ExpectedSuccess(t, err)

	test.ExpectedSuccess(t, db.Add(&testEntry{name: "first", notes: "a note"}))
	test.ExpectedSuccess(t, db.Add(&testEntry{name: "second", notes: "another"}))
	test.Equate(t, db.NumEntries(), 2)

	test.ExpectedSuccess(t, db.EndSession(true))

	// a fresh session sees the committed entries
	db, err = database.StartSession(path, database.ActivityReading, initSession)
	test.ExpectedSuccess(t, err)
	defer db.EndSession(false)

	test.Equate(t, db.NumEntries(), 2)

	ent, err := db.Get(0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, ent.String(), "first")

	ent, err = db.Get(1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, ent.String(), "second")
}

func TestDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(path, database.ActivityCreating, initSession)
	test.ExpectedSuccess(t, err)

	test.ExpectedSuccess(t, db.Add(&testEntry{name: "first"}))
	test.ExpectedSuccess(t, db.Add(&testEntry{name: "second"}))
	test.ExpectedSuccess(t, db.Delete(0))
	test.Equate(t, db.NumEntries(), 1)

	test.ExpectedFailure(t, db.Delete(0))

	test.ExpectedSuccess(t, db.EndSession(true))

	db, err = database.StartSession(path, database.ActivityReading, initSession)
	test.ExpectedSuccess(t, err)
	defer db.EndSession(false)

	test.Equate(t, db.NumEntries(), 1)

	// the deleted key remains free for the next Add()
	_, err = db.Get(0)
	test.ExpectedFailure(t, err)
}

func TestReadOnlySessionCannotCommit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(path, database.ActivityCreating, initSession)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, db.EndSession(true))

	db, err = database.StartSession(path, database.ActivityReading, initSession)
	test.ExpectedSuccess(t, err)
	test.ExpectedFailure(t, db.EndSession(true))
}

func TestMissingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noSuchDB")

	_, err := database.StartSession(path, database.ActivityReading, initSession)
	test.ExpectedFailure(t, err)
	if !strings.Contains(err.Error(), "not available") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestUnrecognisedEntryType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(path, database.ActivityCreating, initSession)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, db.Add(&testEntry{name: "first"}))
	test.ExpectedSuccess(t, db.EndSession(true))

	// a session that has not registered the entry type refuses the file
	_, err = database.StartSession(path, database.ActivityReading, nil)
	test.ExpectedFailure(t, err)
}
