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

package sio_test

import (
	"math"
	"testing"

	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware/sio"
	"github.com/jetsetilly/gopheradvance/test"
)

type driver struct {
	data uint32
}

func (drv *driver) ShiftIn() uint32 {
	return drv.data
}

func newSIO(t *testing.T, irqs *int) *sio.SIO {
	t.Helper()

	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	if err != nil {
		t.Fatal(err)
	}
	env.Normalise()

	return sio.NewSIO(env, func() { *irqs++ })
}

func TestIdlePortNeedsNoAttention(t *testing.T) {
	var irqs int
	s := newSIO(t, &irqs)

	test.Equate(t, s.ProcessEvents(1000), int32(math.MaxInt32))
	test.Equate(t, irqs, 0)
}

func TestTransferCompletion(t *testing.T) {
	var irqs int
	s := newSIO(t, &irqs)
	s.SetDriver(&driver{data: 0x1234abcd})

	// 32 bits on the slow clock
	s.StartTransfer(32, false, true)

	remaining := s.ProcessEvents(1000)
	test.Equate(t, remaining, 32*64-1000)
	test.Equate(t, irqs, 0)

	test.Equate(t, s.ProcessEvents(remaining), int32(math.MaxInt32))
	test.Equate(t, irqs, 1)
	test.Equate(t, s.Data(), 0x1234abcd)
}

func TestFastClock(t *testing.T) {
	var irqs int
	s := newSIO(t, &irqs)

	// 8 bits at 8 cycles per bit
	s.StartTransfer(8, true, true)

	test.Equate(t, s.ProcessEvents(63), int32(1))
	test.Equate(t, s.ProcessEvents(1), int32(math.MaxInt32))
	test.Equate(t, irqs, 1)
}

func TestDisconnectedLineReadsHigh(t *testing.T) {
	var irqs int
	s := newSIO(t, &irqs)

	s.StartTransfer(8, true, false)
	s.ProcessEvents(64)

	test.Equate(t, s.Data(), uint32(0xffffffff))
	test.Equate(t, irqs, 0)
}
