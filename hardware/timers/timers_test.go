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

package timers_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware/timers"
	"github.com/jetsetilly/gopheradvance/hardware/timing"
	"github.com/jetsetilly/gopheradvance/test"
)

type fixture struct {
	tmr *timers.Timers
	t   *timing.Timing

	cycles    int32
	nextEvent int32

	irqs  []int
	fifos []int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	if err != nil {
		t.Fatal(err)
	}
	env.Normalise()

	fx := &fixture{}
	fx.t = timing.NewTiming(&fx.cycles, &fx.nextEvent)
	fx.tmr = timers.NewTimers(env,
		func(num int) { fx.irqs = append(fx.irqs, num) },
		func(num int) { fx.fifos = append(fx.fifos, num) },
	)
	fx.tmr.Reset(fx.t)

	return fx
}

func TestOverflowRaisesIRQ(t *testing.T) {
	fx := newFixture(t)

	// four ticks to overflow, prescaler 1, interrupt enabled
	fx.tmr.WriteReload(0, 0xfffc)
	fx.tmr.WriteControl(0, 0x00c0)

	fx.t.Tick(3)
	test.Equate(t, len(fx.irqs), 0)

	fx.t.Tick(1)
	test.Equate(t, len(fx.irqs), 1)
	test.Equate(t, fx.irqs[0], 0)

	// the timer reloads and keeps running
	fx.t.Tick(4)
	test.Equate(t, len(fx.irqs), 2)
}

func TestPrescaler(t *testing.T) {
	fx := newFixture(t)

	// one tick to overflow but each tick is 64 cycles
	fx.tmr.WriteReload(1, 0xffff)
	fx.tmr.WriteControl(1, 0x00c1)

	fx.t.Tick(63)
	test.Equate(t, len(fx.irqs), 0)

	fx.t.Tick(1)
	test.Equate(t, len(fx.irqs), 1)
	test.Equate(t, fx.irqs[0], 1)
}

func TestDisableStopsTimer(t *testing.T) {
	fx := newFixture(t)

	fx.tmr.WriteReload(0, 0xfffc)
	fx.tmr.WriteControl(0, 0x00c0)
	fx.tmr.WriteControl(0, 0x0040)

	fx.t.Tick(1000)
	test.Equate(t, len(fx.irqs), 0)
}

func TestCountUpCascade(t *testing.T) {
	fx := newFixture(t)

	// timer 1 is clocked by timer 0 overflows; two of them wrap it
	fx.tmr.WriteReload(1, 0xfffe)
	fx.tmr.WriteControl(1, 0x00c4)

	// timer 0 overflows every cycle
	fx.tmr.WriteReload(0, 0xffff)
	fx.tmr.WriteControl(0, 0x0080)

	fx.t.Tick(1)
	test.Equate(t, len(fx.irqs), 0)

	fx.t.Tick(1)
	test.Equate(t, len(fx.irqs), 1)
	test.Equate(t, fx.irqs[0], 1)
}

func TestFifoTick(t *testing.T) {
	fx := newFixture(t)

	// timers 0 and 1 clock the direct sound FIFOs; timer 2 does not
	fx.tmr.WriteReload(0, 0xffff)
	fx.tmr.WriteControl(0, 0x0080)
	fx.tmr.WriteReload(2, 0xffff)
	fx.tmr.WriteControl(2, 0x0080)

	fx.t.Tick(1)
	test.Equate(t, len(fx.fifos), 1)
	test.Equate(t, fx.fifos[0], 0)
}
