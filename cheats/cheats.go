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

// Package cheats implements a cheat device. A cheat set is a list of memory
// writes applied once per frame; a set can additionally be hooked to an
// address, in which case its writes are reapplied whenever execution passes
// through that address.
package cheats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware"
	"github.com/jetsetilly/gopheradvance/hardware/arm"
	"github.com/jetsetilly/gopheradvance/logger"
)

// Code is a single memory write.
type Code struct {
	Address uint32
	Value   uint32

	// width of the write in bytes: 1, 2 or 4
	Width int
}

func (c Code) String() string {
	return fmt.Sprintf("%08x:%0*x", c.Address, c.Width*2, c.Value)
}

// ParseCode parses the "address:value" form. The width of the write is
// taken from the number of digits in the value field.
func ParseCode(s string) (Code, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return Code{}, curated.Errorf("cheats: cannot parse code (%s)", s)
	}

	addr, err := strconv.ParseUint(parts[0], 16, 32)
	if err != nil {
		return Code{}, curated.Errorf("cheats: cannot parse code (%s)", s)
	}
	value, err := strconv.ParseUint(parts[1], 16, 32)
	if err != nil {
		return Code{}, curated.Errorf("cheats: cannot parse code (%s)", s)
	}

	var width int
	switch {
	case len(parts[1]) <= 2:
		width = 1
	case len(parts[1]) <= 4:
		width = 2
	default:
		width = 4
	}

	return Code{Address: uint32(addr), Value: uint32(value), Width: width}, nil
}

// a hook ties a cheat set to an address in the program.
type hook struct {
	address uint32
	mode    arm.ExecutionMode

	// the opcode the hook's trap displaced. executed in place of the trap
	// whenever the hook fires
	patchedOpcode uint32
}

// Set is a named list of codes.
type Set struct {
	Name    string
	Enabled bool
	Codes   []Code

	hook *hook
}

// Device is the cheat device. It attaches itself to the console on
// creation.
type Device struct {
	env *environment.Environment

	g *hardware.GBA

	sets []*Set
}

// NewDevice is the preferred method of initialisation for the Device type.
func NewDevice(env *environment.Environment, g *hardware.GBA) *Device {
	dev := &Device{
		env: env,
		g:   g,
	}
	g.AttachCheats(dev)
	return dev
}

// AddSet adds a cheat set to the device.
func (dev *Device) AddSet(set *Set) {
	dev.sets = append(dev.sets, set)
	logger.Logf(dev.env, "cheats", "added set %s (%d codes)", set.Name, len(set.Codes))
}

// RemoveSet removes a cheat set, unhooking it first if necessary.
func (dev *Device) RemoveSet(set *Set) {
	_ = dev.Unhook(set)
	for i, s := range dev.sets {
		if s == set {
			dev.sets = append(dev.sets[:i], dev.sets[i+1:]...)
			return
		}
	}
}

// Hook ties the set to an address. A trap is installed at the address and
// the set's codes are reapplied whenever execution reaches it.
func (dev *Device) Hook(set *Set, address uint32, mode arm.ExecutionMode) error {
	if set.hook != nil {
		return curated.Errorf("cheats: set %s is already hooked", set.Name)
	}

	original, err := dev.g.SetBreakpoint(hardware.TagCheatDevice, address, mode)
	if err != nil {
		return curated.Errorf("cheats: %v", err)
	}

	set.hook = &hook{
		address:       address,
		mode:          mode,
		patchedOpcode: original,
	}

	return nil
}

// Unhook removes the set's hook. Unhooking a set with no hook is a no-op.
func (dev *Device) Unhook(set *Set) error {
	if set.hook == nil {
		return nil
	}
	dev.g.ClearBreakpoint(set.hook.address, set.hook.mode, set.hook.patchedOpcode)
	set.hook = nil
	return nil
}

// refresh applies the set's codes to memory.
func (dev *Device) refresh(set *Set) {
	if !set.Enabled {
		return
	}
	for _, c := range set.Codes {
		switch c.Width {
		case 1:
			dev.g.Mem.Write8(c.Address, uint8(c.Value))
		case 2:
			dev.g.Mem.Write16(c.Address, uint16(c.Value))
		default:
			dev.g.Mem.Write32(c.Address, c.Value)
		}
	}
}

// HookAt implements the hardware.CheatHooker interface.
func (dev *Device) HookAt(addr uint32) (uint32, bool) {
	var found *hook
	for _, set := range dev.sets {
		if set.hook != nil && set.hook.address == addr {
			dev.refresh(set)
			found = set.hook
		}
	}
	if found == nil {
		return 0, false
	}
	return found.patchedOpcode, true
}

// RefreshAll implements the hardware.CheatHooker interface.
func (dev *Device) RefreshAll() {
	for _, set := range dev.sets {
		dev.refresh(set)
	}
}
