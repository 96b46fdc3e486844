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

// SelectAll visits every entry in the database, in key order. The onSelect
// function can be nil, in which case the entries are merely counted.
func (db *Session) SelectAll(onSelect func(key int, ent Entry) error) error {
	if onSelect == nil {
		onSelect = func(_ int, _ Entry) error { return nil }
	}

	for _, key := range db.SortedKeyList() {
		if err := onSelect(key, db.entries[key]); err != nil {
			return err
		}
	}

	return nil
}

// SelectKeys visits the entries with the specified keys, in the order
// given. An empty key list matches every entry.
func (db *Session) SelectKeys(onSelect func(key int, ent Entry) error, keys ...int) error {
	if len(keys) == 0 {
		return db.SelectAll(onSelect)
	}

	if onSelect == nil {
		onSelect = func(_ int, _ Entry) error { return nil }
	}

	for _, key := range keys {
		ent, err := db.Get(key)
		if err != nil {
			return err
		}
		if err := onSelect(key, ent); err != nil {
			return err
		}
	}

	return nil
}
