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

// Package curated provides the error type used throughout the project. A
// curated error remembers the pattern it was created with, meaning that an
// error can be tested for with the Is() and Has() functions without string
// comparison of the formatted message.
//
// By convention the pattern begins with the name of the package raising the
// error, followed by a colon. For example:
//
//	curated.Errorf("cartridgeloader: %v", err)
//
// Sentinel patterns can be declared as exported constants and matched
// anywhere in an error chain:
//
//	const NotMapped = "memory: region not mapped"
//
//	if curated.Has(err, memory.NotMapped) {
//		...
//	}
package curated
