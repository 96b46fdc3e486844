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

// Package debugger implements a software-breakpoint debugger for the
// console. Breakpoints are traps installed through the console's shadow
// instruction table; the program in memory is never altered.
package debugger

import (
	"fmt"
	"io"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware"
	"github.com/jetsetilly/gopheradvance/hardware/arm"
	"github.com/jetsetilly/gopheradvance/logger"
)

// HaltReason says why the console stopped and handed control to the
// debugger.
type HaltReason int

// Valid HaltReason values.
const (
	HaltNone HaltReason = iota
	HaltBreakpoint
	HaltIllegalOpcode
)

func (h HaltReason) String() string {
	switch h {
	case HaltBreakpoint:
		return "breakpoint"
	case HaltIllegalOpcode:
		return "illegal opcode"
	}
	return "running"
}

type breakpoint struct {
	address  uint32
	mode     arm.ExecutionMode
	original uint32
}

// Debugger connects to a console and provides breakpoint control over the
// running program.
type Debugger struct {
	env *environment.Environment

	g *hardware.GBA

	breakpoints map[uint32]breakpoint

	// why and where the console last stopped
	LastHalt     HaltReason
	LastHaltAddr uint32

	// a running debugger keeps the console stepping until a halt
	halted bool
}

// NewDebugger is the preferred method of initialisation for the Debugger
// type. The debugger attaches itself to the console.
func NewDebugger(env *environment.Environment, g *hardware.GBA) *Debugger {
	dbg := &Debugger{
		env:         env,
		g:           g,
		breakpoints: make(map[uint32]breakpoint),
	}
	g.AttachDebugger(dbg)
	return dbg
}

// Detach the debugger from the console, clearing every installed trap.
func (dbg *Debugger) Detach() {
	for _, bp := range dbg.breakpoints {
		dbg.g.ClearBreakpoint(bp.address, bp.mode, bp.original)
	}
	dbg.breakpoints = make(map[uint32]breakpoint)
	dbg.g.DetachDebugger()
}

// Break installs a breakpoint at the address.
func (dbg *Debugger) Break(address uint32, mode arm.ExecutionMode) error {
	if _, ok := dbg.breakpoints[address]; ok {
		return curated.Errorf("debugger: breakpoint already installed at %08x", address)
	}

	original, err := dbg.g.SetBreakpoint(hardware.TagDebugger, address, mode)
	if err != nil {
		return curated.Errorf("debugger: %v", err)
	}

	dbg.breakpoints[address] = breakpoint{
		address:  address,
		mode:     mode,
		original: original,
	}

	return nil
}

// ClearBreak removes the breakpoint at the address.
func (dbg *Debugger) ClearBreak(address uint32) error {
	bp, ok := dbg.breakpoints[address]
	if !ok {
		return curated.Errorf("debugger: no breakpoint at %08x", address)
	}
	dbg.g.ClearBreakpoint(bp.address, bp.mode, bp.original)
	delete(dbg.breakpoints, address)
	return nil
}

// ListBreaks writes the installed breakpoints to the io.Writer.
func (dbg *Debugger) ListBreaks(output io.Writer) {
	for _, bp := range dbg.breakpoints {
		fmt.Fprintf(output, "%08x (%s)\n", bp.address, bp.mode)
	}
}

// Run the console until a breakpoint or fault halts it.
func (dbg *Debugger) Run() error {
	dbg.halted = false
	dbg.LastHalt = HaltNone
	return dbg.g.Run(func() (bool, error) {
		return !dbg.halted, nil
	})
}

// Step the console by a single instruction boundary.
func (dbg *Debugger) Step() {
	dbg.g.Step()
}

// HitBreakpoint implements the hardware.Debugger interface.
func (dbg *Debugger) HitBreakpoint(addr uint32) {
	dbg.halted = true
	dbg.LastHalt = HaltBreakpoint
	dbg.LastHaltAddr = addr
	logger.Logf(dbg.env, "debugger", "breakpoint at %08x", addr)
}

// HitIllegal implements the hardware.Debugger interface.
func (dbg *Debugger) HitIllegal(addr uint32, opcode uint32) {
	dbg.halted = true
	dbg.LastHalt = HaltIllegalOpcode
	dbg.LastHaltAddr = addr
	logger.Logf(dbg.env, "debugger", "illegal opcode %08x at %08x", opcode, addr)
}
