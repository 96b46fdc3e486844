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

package timing

import (
	"math"
	"strings"
)

// Callback is the function fired when an event becomes due. The cyclesLate
// argument says how far beyond the scheduled cycle the timeline had advanced
// when the event fired; event handlers that reschedule themselves should
// subtract it to stay in phase.
type Callback func(t *Timing, cyclesLate int32)

// Event is a callback registered against the timeline. The zero value is
// ready for use once Name and Callback have been set.
type Event struct {
	Name     string
	Callback Callback

	// the absolute cycle at which the event fires
	when int64

	queued bool
	next   *Event
}

// Timing is the shared event timeline. Timelines must be created with
// NewTiming().
type Timing struct {
	// counters shared with the CPU core. cycles is the CPU's consumed-cycle
	// counter; nextEvent is the cycle distance at which the CPU must yield
	cycles    *int32
	nextEvent *int32

	// cycles accounted for by previous calls to Tick()
	masterCycles int64

	// pending events, sorted by when. events with equal when values are
	// kept in schedule order
	root *Event
}

// NewTiming is the preferred method of initialisation for the Timing type.
// The two arguments are the CPU counters the timeline synchronises with.
func NewTiming(cycles *int32, nextEvent *int32) *Timing {
	return &Timing{
		cycles:    cycles,
		nextEvent: nextEvent,
	}
}

func (t *Timing) String() string {
	s := strings.Builder{}
	for e := t.root; e != nil; e = e.next {
		s.WriteString(e.Name)
		s.WriteString(" ")
	}
	return strings.TrimSpace(s.String())
}

// CurrentTime returns the cycle the timeline considers to be "now". Cycles
// consumed by the CPU since the last Tick() are included.
func (t *Timing) CurrentTime() int64 {
	return t.masterCycles + int64(*t.cycles)
}

// Schedule the event to fire after the specified number of cycles. If the
// event is already queued it is removed first; an event can only be pending
// once.
func (t *Timing) Schedule(e *Event, after int32) {
	if e.queued {
		t.Deschedule(e)
	}

	e.when = t.CurrentTime() + int64(after)
	e.queued = true

	// insert after any pending event with an equal or earlier cycle. this
	// keeps events scheduled for the identical cycle in schedule order
	var prev *Event
	next := t.root
	for next != nil && next.when <= e.when {
		prev = next
		next = next.next
	}

	e.next = next
	if prev == nil {
		t.root = e
	} else {
		prev.next = e
	}

	// a newly scheduled event may be nearer than the current next-event
	// cursor
	d := e.when - t.CurrentTime()
	if d < int64(*t.nextEvent) {
		*t.nextEvent = int32(d)
	}
}

// Deschedule removes the event from the timeline. It is not an error to
// deschedule an event that is not queued.
func (t *Timing) Deschedule(e *Event) {
	var prev *Event
	for next := t.root; next != nil; next = next.next {
		if next == e {
			if prev == nil {
				t.root = e.next
			} else {
				prev.next = e.next
			}
			e.next = nil
			e.queued = false
			return
		}
		prev = next
	}
	e.queued = false
}

// IsScheduled returns true if the event is pending on the timeline.
func (t *Timing) IsScheduled(e *Event) bool {
	return e.queued
}

// Until returns the number of cycles before the event fires. The result is
// meaningless if the event is not scheduled.
func (t *Timing) Until(e *Event) int64 {
	return e.when - t.CurrentTime()
}

// Tick advances the timeline by the specified number of cycles, firing any
// event that becomes due. The distance to the nearest still-pending event is
// written to the shared next-event cursor and also returned.
func (t *Timing) Tick(cycles int32) int32 {
	t.masterCycles += int64(cycles)

	for t.root != nil && t.root.when <= t.masterCycles {
		e := t.root
		t.root = e.next
		e.next = nil
		e.queued = false
		e.Callback(t, int32(t.masterCycles-e.when))
	}

	var d int64
	if t.root == nil {
		d = math.MaxInt32
	} else {
		d = t.root.when - t.masterCycles
		if d > math.MaxInt32 {
			d = math.MaxInt32
		}
	}

	*t.nextEvent = int32(d)
	return int32(d)
}

// Clear discards all pending events. The master cycle count is not reset; a
// timeline survives a console reset but the events on it do not.
func (t *Timing) Clear() {
	for e := t.root; e != nil; {
		n := e.next
		e.next = nil
		e.queued = false
		e = n
	}
	t.root = nil
}
