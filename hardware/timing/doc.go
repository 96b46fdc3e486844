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

// Package timing implements the shared event timeline that drives every
// time-based subsystem in the console: video, audio, the hardware timers,
// DMA completion, serial transfer completion.
//
// The timeline counts time in cycles of the CPU clock. Subsystems create
// Event values and Schedule() them some number of cycles into the future.
// The Tick() function advances the timeline and fires the callbacks of any
// event that has become due.
//
// The timeline shares two counters with the CPU core: the consumed-cycle
// counter and the next-event cursor. After every call to Tick() the cursor
// holds the distance to the nearest pending event so that the CPU knows how
// long it may run before yielding again.
//
// Events scheduled for the same cycle fire in the order they were scheduled.
package timing
