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

// Package preferences collates the preference values consulted by the
// hardware emulation. The values were once process-wide flags; they are now
// owned by the emulation that the GBA type represents and passed by
// reference to the subsystems that consult them.
package preferences

import (
	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/prefs"
	"github.com/jetsetilly/gopheradvance/resources"
)

// IdleOptimisation values recognised by the IdleOptimisation preference.
const (
	IdleIgnore = "IGNORE"
	IdleRemove = "REMOVE"
	IdleDetect = "DETECT"
)

// Preferences defines and collates all the preference values used by the
// hardware emulation.
type Preferences struct {
	dsk *prefs.Disk

	// how the emulation should treat detected idle loops: IGNORE to emulate
	// them cycle by cycle, REMOVE to fast-forward over them, DETECT to look
	// for them but take no action
	IdleOptimisation prefs.String

	// approximate real hardware memory timing rather than running every
	// access at the fastest possible rate
	RealisticTiming prefs.Bool

	// internal consistency violations (negative cycle counts in the
	// scheduler for example) cause a panic rather than a log entry
	HardCrash prefs.Bool

	// allow up+down / left+right combinations on the keypad. real hardware
	// cannot produce them but some games respond to them in interesting ways
	AllowOpposingDirections prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}

	err = p.dsk.Add("hardware.idleoptimisation", &p.IdleOptimisation)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	err = p.dsk.Add("hardware.realistictiming", &p.RealisticTiming)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	err = p.dsk.Add("hardware.hardcrash", &p.HardCrash)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	err = p.dsk.Add("hardware.allowopposingdirections", &p.AllowOpposingDirections)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}

	err = p.dsk.Load(true)
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, curated.Errorf("preferences: %v", err)
		}
	}

	return p, nil
}

// SetDefaults reverts all hardware preferences to the default values. The
// defaults match the behaviour of real hardware as closely as possible.
func (p *Preferences) SetDefaults() {
	_ = p.IdleOptimisation.Set(IdleRemove)
	_ = p.RealisticTiming.Set(true)
	_ = p.HardCrash.Set(true)
	_ = p.AllowOpposingDirections.Set(true)
}

// Load hardware preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
