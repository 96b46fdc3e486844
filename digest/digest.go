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

// Package digest produces cryptographic hashes of the console's video and
// audio output. The hash can be used to compare output from subsequent
// emulation runs; if a new hash differs from a previously recorded value
// then something has changed. This is the basis of the regression tests.
//
// Note that the use of SHA-1 is fine for this application because this is
// not a cryptographic task.
package digest

// Digest implementations return a hash of the output stream so far. The
// hash is chained; each frame or buffer folds in the hash of everything
// before it.
type Digest interface {
	Hash() string
	ResetDigest()
}
