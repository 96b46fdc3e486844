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

// Package sio implements the serial port. The port is polled by the event
// scheduler rather than scheduled on the timeline: a connected peripheral
// can demand attention at a cadence the timeline does not control.
package sio

import (
	"math"

	"github.com/jetsetilly/gopheradvance/environment"
)

// serial transfer cycle counts per bit at the two supported clock speeds.
const (
	cyclesPerBit256KHz = 64
	cyclesPerBit2MHz   = 8
)

// Driver implementations stand in for whatever is on the other end of the
// link cable.
type Driver interface {
	// ShiftIn returns the bits the peripheral drives onto the link for
	// the current transfer
	ShiftIn() uint32
}

// SIO implements the serial port.
type SIO struct {
	env *environment.Environment

	driver Driver

	// cycles remaining in the active transfer. zero means the port is
	// idle
	remaining int32

	// transfer shift register and width in bits
	shift uint32
	bits  int32

	// installed by the platform. fired when a transfer completes with the
	// interrupt bit set
	raiseIRQ func()

	irqOnCompletion bool
}

// NewSIO is the preferred method of initialisation for the SIO type.
func NewSIO(env *environment.Environment, raiseIRQ func()) *SIO {
	return &SIO{
		env:      env,
		raiseIRQ: raiseIRQ,
	}
}

// SetDriver connects a peripheral to the port.
func (s *SIO) SetDriver(driver Driver) {
	s.driver = driver
}

// Reset the port, abandoning any active transfer.
func (s *SIO) Reset() {
	s.remaining = 0
	s.shift = 0
	s.bits = 0
	s.irqOnCompletion = false
}

// StartTransfer begins a transfer of the specified number of bits. The
// fastClock argument selects the 2MHz internal clock over the 256KHz one.
func (s *SIO) StartTransfer(bits int32, fastClock bool, irq bool) {
	perBit := int32(cyclesPerBit256KHz)
	if fastClock {
		perBit = cyclesPerBit2MHz
	}
	s.bits = bits
	s.remaining = bits * perBit
	s.irqOnCompletion = irq
	if s.driver != nil {
		s.shift = s.driver.ShiftIn()
	} else {
		// nothing connected. the line reads high
		s.shift = 0xffffffff
	}
}

// Data returns the shift register contents from the last completed
// transfer.
func (s *SIO) Data() uint32 {
	return s.shift
}

// ProcessEvents advances the port by the given number of cycles and
// returns the number of cycles until the port next needs attention.
func (s *SIO) ProcessEvents(cycles int32) int32 {
	if s.remaining <= 0 {
		return math.MaxInt32
	}

	s.remaining -= cycles
	if s.remaining <= 0 {
		s.remaining = 0
		if s.irqOnCompletion && s.raiseIRQ != nil {
			s.raiseIRQ()
		}
		return math.MaxInt32
	}

	return s.remaining
}
