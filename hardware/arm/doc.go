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

// Package arm emulates the ARM7TDMI core at the heart of the console, to the
// depth needed by the hardware platform: the register file and privilege
// modes, the cycle counters shared with the event timeline, halt state,
// interrupt entry, and the trap opcodes used for software breakpoints.
//
// The platform package supplies the core with a handler table (the Handlers
// type) that the core calls on reset, on every instruction boundary when the
// cycle counter passes the next-event cursor, on supervisor calls, on
// breakpoint traps and on illegal opcodes.
//
// Instruction coverage is deliberately partial. The executor recognises the
// control-flow instructions the platform itself depends on (branches,
// supervisor calls, the BKPT encodings) and accounts cycles for everything
// else without modelling data processing. See the execute.go file.
package arm
