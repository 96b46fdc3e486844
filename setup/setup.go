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

// Package setup applies per-cartridge settings when a cartridge is
// attached. Settings are stored in a database keyed on the cartridge hash:
// known idle loop addresses, patches that must be applied for the game to
// run, and so on.
package setup

import (
	"github.com/jetsetilly/gopheradvance/cartridgeloader"
	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/database"
	"github.com/jetsetilly/gopheradvance/hardware"
	"github.com/jetsetilly/gopheradvance/logger"
	"github.com/jetsetilly/gopheradvance/resources"
)

// the file in the resources directory holding the setup database.
const setupDBFile = "setupDB"

// setupEntry is a database entry that can apply itself to the console.
type setupEntry interface {
	database.Entry

	// whether the entry is for the cartridge with the hash
	matchCartHash(hash string) bool

	// apply the setup to the console. returns a description of what was
	// done, for the log
	apply(g *hardware.GBA) (string, error)
}

func initDBSession(db *database.Session) error {
	if err := db.RegisterEntryType(idleEntryType, deserialiseIdleEntry); err != nil {
		return err
	}
	return db.RegisterEntryType(patchEntryType, deserialisePatchEntry)
}

// AttachCartridge to the console and apply any setup entries recorded for
// it. The absence of a setup database is not an error.
func AttachCartridge(g *hardware.GBA, loader *cartridgeloader.Loader) error {
	if err := g.AttachCartridge(loader); err != nil {
		return err
	}

	p, err := resources.JoinPath(setupDBFile)
	if err != nil {
		return curated.Errorf("setup: %v", err)
	}

	db, err := database.StartSession(p, database.ActivityReading, initDBSession)
	if err != nil {
		if curated.Is(err, database.NotAvailable) {
			return nil
		}
		return curated.Errorf("setup: %v", err)
	}
	defer db.EndSession(false)

	return db.SelectAll(func(_ int, ent database.Entry) error {
		set, ok := ent.(setupEntry)
		if !ok {
			return curated.Errorf("setup: unexpected entry type [%s]", ent.EntryType())
		}

		if !set.matchCartHash(loader.Hash) {
			return nil
		}

		msg, err := set.apply(g)
		if err != nil {
			return curated.Errorf("setup: %v", err)
		}
		logger.Log(g.Env(), "setup", msg)

		return nil
	})
}
