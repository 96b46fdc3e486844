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

package timing_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/hardware/timing"
	"github.com/jetsetilly/gopheradvance/test"
)

func TestFiringOrder(t *testing.T) {
	var cycles, nextEvent int32

	tml := timing.NewTiming(&cycles, &nextEvent)

	fired := make([]string, 0)
	note := func(name string) timing.Callback {
		return func(_ *timing.Timing, _ int32) {
			fired = append(fired, name)
		}
	}

	a := &timing.Event{Name: "a", Callback: note("a")}
	b := &timing.Event{Name: "b", Callback: note("b")}
	c := &timing.Event{Name: "c", Callback: note("c")}

	tml.Schedule(a, 30)
	tml.Schedule(b, 10)
	tml.Schedule(c, 20)

	test.Equate(t, nextEvent, 10)

	tml.Tick(30)

	test.Equate(t, len(fired), 3)
	test.Equate(t, fired[0], "b")
	test.Equate(t, fired[1], "c")
	test.Equate(t, fired[2], "a")
}

func TestScheduleOrderForEqualCycles(t *testing.T) {
	var cycles, nextEvent int32

	tml := timing.NewTiming(&cycles, &nextEvent)

	fired := make([]string, 0)
	note := func(name string) timing.Callback {
		return func(_ *timing.Timing, _ int32) {
			fired = append(fired, name)
		}
	}

	// all three events fire on the same cycle. they must fire in the order
	// they were scheduled
	a := &timing.Event{Name: "a", Callback: note("a")}
	b := &timing.Event{Name: "b", Callback: note("b")}
	c := &timing.Event{Name: "c", Callback: note("c")}

	tml.Schedule(a, 10)
	tml.Schedule(b, 10)
	tml.Schedule(c, 10)

	tml.Tick(10)

	test.Equate(t, len(fired), 3)
	test.Equate(t, fired[0], "a")
	test.Equate(t, fired[1], "b")
	test.Equate(t, fired[2], "c")
}

func TestCyclesLate(t *testing.T) {
	var cycles, nextEvent int32

	tml := timing.NewTiming(&cycles, &nextEvent)

	var late int32 = -1

	e := &timing.Event{
		Name: "e",
		Callback: func(_ *timing.Timing, cyclesLate int32) {
			late = cyclesLate
		},
	}

	tml.Schedule(e, 10)
	tml.Tick(25)

	test.Equate(t, late, 15)
	test.ExpectedFailure(t, tml.IsScheduled(e))
}

func TestReschedulingFromCallback(t *testing.T) {
	var cycles, nextEvent int32

	tml := timing.NewTiming(&cycles, &nextEvent)

	count := 0

	var e timing.Event
	e = timing.Event{
		Name: "periodic",
		Callback: func(t *timing.Timing, cyclesLate int32) {
			count++
			t.Schedule(&e, 100-cyclesLate)
		},
	}

	tml.Schedule(&e, 100)

	// 1000 cycles in uneven steps. the periodic event stays in phase
	// because it subtracts cyclesLate on rescheduling
	for i := 0; i < 100; i++ {
		tml.Tick(7)
	}
	tml.Tick(300)

	test.Equate(t, count, 10)
	test.ExpectedSuccess(t, tml.IsScheduled(&e))
}

func TestDeschedule(t *testing.T) {
	var cycles, nextEvent int32

	tml := timing.NewTiming(&cycles, &nextEvent)

	fired := false

	e := &timing.Event{
		Name: "e",
		Callback: func(_ *timing.Timing, _ int32) {
			fired = true
		},
	}

	tml.Schedule(e, 10)
	tml.Deschedule(e)
	tml.Tick(20)

	test.ExpectedFailure(t, fired)
	test.ExpectedFailure(t, tml.IsScheduled(e))
}

func TestNextEventDistanceNeverNegative(t *testing.T) {
	var cycles, nextEvent int32

	tml := timing.NewTiming(&cycles, &nextEvent)

	e := &timing.Event{Name: "e", Callback: func(_ *timing.Timing, _ int32) {}}
	tml.Schedule(e, 5)

	// overshooting the only event leaves the timeline empty. the next-event
	// cursor must report "far away", never a negative distance
	d := tml.Tick(500)
	test.ExpectedSuccess(t, d > 0)
	test.ExpectedSuccess(t, nextEvent > 0)
}
