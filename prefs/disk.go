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

package prefs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jetsetilly/gopheradvance/curated"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "gopheradvance.prefs"

// the first line of a valid prefs file.
const magic = "*gopheradvance*"

// the string that separates the key from the value on each line of the
// prefs file.
const keySep = " :: "

// NoPrefsFile is a sentinel error pattern. Callers that can live without a
// prefs file on disk should check for it and carry on.
const NoPrefsFile = "prefs: no prefs file (%s)"

// Disk represents preference values as stored on disk.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type. The
// path argument is the full path to the preferences file.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

func (dsk *Disk) String() string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, dsk.entries[k].String()))
	}
	return s.String()
}

// Add preference value to list of values to store/load from disk. The key
// must not contain the key separator sequence.
func (dsk *Disk) Add(key string, p pref) error {
	if strings.Contains(key, keySep) {
		return curated.Errorf("prefs: add: illegal key (%s)", key)
	}
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf("prefs: add: duplicate key (%s)", key)
	}
	dsk.entries[key] = p
	return nil
}

// HasEntry returns true if the specified key has been added to the Disk.
func (dsk *Disk) HasEntry(key string) bool {
	_, ok := dsk.entries[key]
	return ok
}

// Load preference values from disk. The saveOnError argument instructs the
// function to save the file on a load error; useful for creating a good
// file for future use.
func (dsk *Disk) Load(saveOnError bool) error {
	f, err := os.Open(dsk.path)
	if err != nil {
		if os.IsNotExist(err) {
			if saveOnError {
				return dsk.Save()
			}
			return curated.Errorf(NoPrefsFile, dsk.path)
		}
		return curated.Errorf("prefs: load: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	if !scanner.Scan() || scanner.Text() != magic {
		return curated.Errorf("prefs: load: not a valid prefs file (%s)", dsk.path)
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		p := strings.SplitN(line, keySep, 2)
		if len(p) != 2 {
			return curated.Errorf("prefs: load: malformed line (%s)", line)
		}

		// unrecognised keys are tolerated. they may belong to another
		// version of the program
		if e, ok := dsk.entries[p[0]]; ok {
			if err := e.Set(p[1]); err != nil {
				return curated.Errorf("prefs: load: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return curated.Errorf("prefs: load: %v", err)
	}

	return nil
}

// Save current preference values to disk. Keys not registered with this Disk
// instance but present in the file are preserved.
func (dsk *Disk) Save() error {
	// load any existing entries so that unrecognised keys are not lost
	keep := make(map[string]string)

	if f, err := os.Open(dsk.path); err == nil {
		scanner := bufio.NewScanner(f)
		scanner.Scan() // magic line
		for scanner.Scan() {
			p := strings.SplitN(scanner.Text(), keySep, 2)
			if len(p) == 2 {
				if _, ok := dsk.entries[p[0]]; !ok {
					keep[p[0]] = p[1]
				}
			}
		}
		f.Close()
	}

	f, err := os.Create(dsk.path)
	if err != nil {
		return curated.Errorf("prefs: save: %v", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, magic); err != nil {
		return curated.Errorf("prefs: save: %v", err)
	}

	keys := make([]string, 0, len(dsk.entries)+len(keep))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	for k := range keep {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		var v string
		if e, ok := dsk.entries[k]; ok {
			v = e.String()
		} else {
			v = keep[k]
		}
		if _, err := fmt.Fprintf(f, "%s%s%s\n", k, keySep, v); err != nil {
			return curated.Errorf("prefs: save: %v", err)
		}
	}

	return nil
}
