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

// Package logger is the central log for the entire application. Log entries
// are made with the Log() and Logf() functions, giving a tag that identifies
// the subsystem making the entry:
//
//	logger.Logf(env, "BIOS", "checksum: %08x", checksum)
//
// The first argument is a Permission. Emulations that should not pollute the
// log (a preview emulation for example) can decline permission through their
// environment. The logger.Allow value can be used when no environment is in
// scope.
//
// The log is in-memory and bounded. It can be echoed to an io.Writer as
// entries arrive with SetEcho(), or retrieved after the fact with Write(),
// Tail() and BorrowLog().
package logger
