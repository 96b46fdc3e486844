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

// Package prefs facilitates the storage of preference values. Preference
// values are declared as one of the exported types (Bool, String, Int) and
// registered with a Disk instance against a dot-delimited key:
//
//	dsk, _ := prefs.NewDisk(pth)
//	dsk.Add("hardware.realistictiming", &p.RealisticTiming)
//	dsk.Load(true)
//
// Values can be read and written concurrently with the emulation; the
// types synchronise access internally.
package prefs
