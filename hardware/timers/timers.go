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

// Package timers implements the four hardware timers. A running timer is an
// event on the shared timeline, scheduled for the cycle at which it will
// overflow; nothing is counted per cycle.
package timers

import (
	"fmt"

	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware/timing"
)

// NumTimers is the number of hardware timers.
const NumTimers = 4

// control register bits.
const (
	ctrlPrescaler = 0x0003
	ctrlCountUp   = 0x0004
	ctrlIRQ       = 0x0040
	ctrlEnable    = 0x0080
)

// prescaler selections, in cycles per timer tick.
var prescalers = [4]int32{1, 64, 256, 1024}

type timer struct {
	reload  uint16
	control uint16

	// counter value at the time the timer was last started or overflowed.
	// the live value is derived from the timeline
	counter uint16

	event timing.Event
}

// Timers implements the four hardware timers.
type Timers struct {
	env *environment.Environment

	timers [NumTimers]timer

	t *timing.Timing

	// installed by the platform. fired on overflow of a timer with the
	// interrupt bit set
	raiseIRQ func(timer int)

	// fired on every overflow of timers 0 and 1, which clock the two
	// direct sound FIFO channels
	fifoTick func(timer int)
}

// NewTimers is the preferred method of initialisation for the Timers type.
func NewTimers(env *environment.Environment, raiseIRQ func(int), fifoTick func(int)) *Timers {
	tmr := &Timers{
		env:      env,
		raiseIRQ: raiseIRQ,
		fifoTick: fifoTick,
	}
	for i := range tmr.timers {
		i := i
		tmr.timers[i].event.Name = fmt.Sprintf("timer.%d", i)
		tmr.timers[i].event.Callback = func(t *timing.Timing, cyclesLate int32) {
			tmr.overflow(i, cyclesLate)
		}
	}
	return tmr
}

// Reset stops all four timers.
func (tmr *Timers) Reset(t *timing.Timing) {
	tmr.t = t
	for i := range tmr.timers {
		tmr.timers[i].reload = 0
		tmr.timers[i].control = 0
		tmr.timers[i].counter = 0
	}
}

// WriteReload sets the reload value of the numbered timer. The value takes
// effect at the next overflow or enable.
func (tmr *Timers) WriteReload(num int, value uint16) {
	tmr.timers[num].reload = value
}

// WriteControl sets the control register of the numbered timer.
func (tmr *Timers) WriteControl(num int, value uint16) {
	tm := &tmr.timers[num]
	wasEnabled := tm.control&ctrlEnable == ctrlEnable
	tm.control = value
	enabled := value&ctrlEnable == ctrlEnable

	if enabled && !wasEnabled {
		tm.counter = tm.reload
		tmr.schedule(num, 0)
	} else if !enabled && wasEnabled {
		tmr.t.Deschedule(&tm.event)
	}
}

// Control returns the control register of the numbered timer.
func (tmr *Timers) Control(num int) uint16 {
	return tmr.timers[num].control
}

// a count-up timer is clocked by the overflow of the timer below it rather
// than by the prescaler, so it has no timeline event of its own.
func (tmr *Timers) schedule(num int, cyclesLate int32) {
	tm := &tmr.timers[num]
	if num > 0 && tm.control&ctrlCountUp == ctrlCountUp {
		return
	}
	ticks := int32(0x10000 - uint32(tm.counter))
	prescaler := prescalers[tm.control&ctrlPrescaler]
	tmr.t.Schedule(&tm.event, ticks*prescaler-cyclesLate)
}

func (tmr *Timers) overflow(num int, cyclesLate int32) {
	tm := &tmr.timers[num]
	tm.counter = tm.reload

	if tm.control&ctrlIRQ == ctrlIRQ && tmr.raiseIRQ != nil {
		tmr.raiseIRQ(num)
	}
	if num <= 1 && tmr.fifoTick != nil {
		tmr.fifoTick(num)
	}

	// clock the next timer if it is in count-up mode
	if num+1 < NumTimers {
		next := &tmr.timers[num+1]
		if next.control&ctrlEnable == ctrlEnable && next.control&ctrlCountUp == ctrlCountUp {
			next.counter++
			if next.counter == 0 {
				tmr.overflow(num+1, cyclesLate)
			}
		}
	}

	if tm.control&ctrlEnable == ctrlEnable {
		tmr.schedule(num, cyclesLate)
	}
}
