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

// Package regression facilitates the regression testing of emulated
// cartridges. Tests are stored in a database; each test runs a cartridge
// for a number of frames and compares digests of the console's output
// against the recorded values.
package regression

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/database"
	"github.com/jetsetilly/gopheradvance/resources"
)

// the file in the resources directory holding the regression database.
const regressionDBFile = "regressionDB"

// Regressor is a database entry that can run itself as a regression test.
type Regressor interface {
	database.Entry

	// run the regression test. the newRegression flag means the test is
	// being run to record its results rather than to check them. the
	// message is printed while the test runs
	regress(newRegression bool, output io.Writer, message string) (bool, error)
}

func initDBSession(db *database.Session) error {
	return db.RegisterEntryType(frameEntryType, deserialiseFrameEntry)
}

func dbPath() (string, error) {
	return resources.JoinPath(regressionDBFile)
}

// RegressList displays all entries in the database.
func RegressList(output io.Writer) error {
	p, err := dbPath()
	if err != nil {
		return curated.Errorf("regression: %v", err)
	}

	db, err := database.StartSession(p, database.ActivityReading, initDBSession)
	if err != nil {
		return curated.Errorf("regression: %v", err)
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressAdd runs the Regressor to record its results and adds it to the
// database.
func RegressAdd(output io.Writer, reg Regressor) error {
	p, err := dbPath()
	if err != nil {
		return curated.Errorf("regression: %v", err)
	}

	db, err := database.StartSession(p, database.ActivityCreating, initDBSession)
	if err != nil {
		return curated.Errorf("regression: %v", err)
	}
	defer db.EndSession(true)

	msg := fmt.Sprintf("adding: %s", reg)
	ok, err := reg.regress(true, output, msg)
	if !ok || err != nil {
		return curated.Errorf("regression: %v", err)
	}

	fmt.Fprintf(output, "\radded: %s\n", reg)

	return db.Add(reg)
}

// RegressDelete removes an entry from the database. The confirmation reader
// is consulted before anything is deleted.
func RegressDelete(output io.Writer, confirmation io.Reader, key string) error {
	v, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf("regression: invalid key [%s]", key)
	}

	p, err := dbPath()
	if err != nil {
		return curated.Errorf("regression: %v", err)
	}

	db, err := database.StartSession(p, database.ActivityModifying, initDBSession)
	if err != nil {
		return curated.Errorf("regression: %v", err)
	}
	defer db.EndSession(true)

	ent, err := db.Get(v)
	if err != nil {
		return curated.Errorf("regression: %v", err)
	}

	fmt.Fprintf(output, "%s\ndelete? (y/n): ", ent)

	confirm := make([]byte, 32)
	if _, err := confirmation.Read(confirm); err != nil {
		return curated.Errorf("regression: %v", err)
	}

	if confirm[0] == 'y' || confirm[0] == 'Y' {
		if err := db.Delete(v); err != nil {
			return curated.Errorf("regression: %v", err)
		}
		fmt.Fprintf(output, "deleted test #%s from regression database\n", key)
	}

	return nil
}

// RegressRun runs the tests in the database. An empty keys list means every
// entry is tested.
func RegressRun(output io.Writer, keys []string) error {
	p, err := dbPath()
	if err != nil {
		return curated.Errorf("regression: %v", err)
	}

	db, err := database.StartSession(p, database.ActivityReading, initDBSession)
	if err != nil {
		return curated.Errorf("regression: %v", err)
	}
	defer db.EndSession(false)

	keysV := make([]int, 0, len(keys))
	for _, k := range keys {
		v, err := strconv.Atoi(k)
		if err != nil {
			return curated.Errorf("regression: invalid key [%s]", k)
		}
		keysV = append(keysV, v)
	}

	numSucceed := 0
	numFail := 0
	numError := 0

	err = db.SelectKeys(func(key int, ent database.Entry) error {
		reg, ok := ent.(Regressor)
		if !ok {
			return curated.Errorf("regression: entry #%d is not a regression test", key)
		}

		msg := fmt.Sprintf("running: #%03d %s", key, reg)
		ok, err := reg.regress(false, output, msg)

		switch {
		case err != nil:
			numError++
			fmt.Fprintf(output, "\r* error: #%03d %s (%v)\n", key, reg, err)
		case !ok:
			numFail++
			fmt.Fprintf(output, "\rfailure: #%03d %s\n", key, reg)
		default:
			numSucceed++
			fmt.Fprintf(output, "\rsucceed: #%03d %s\n", key, reg)
		}

		return nil
	}, keysV...)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "regression tests: %d succeed, %d fail, %d error\n",
		numSucceed, numFail, numError)

	return nil
}
