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

package memory

// GPIO registers live in the cartridge address space, overlapping the ROM
// image.
const (
	GPIORegData      = 0xc4
	GPIORegDirection = 0xc6
	GPIORegControl   = 0xc8
)

// devices that can hang off the cartridge GPIO port.
const (
	GPIODeviceRTC = 1 << iota
	GPIODeviceRumble
	GPIODeviceLightSensor
	GPIODeviceGyro
)

// GPIO is the general purpose IO port present on some cartridges.
type GPIO struct {
	// bitmask of attached devices
	Devices int

	// register state
	Data      uint16
	Direction uint16
	Control   uint16
}

// game codes known to carry GPIO devices. the cartridge gives no other
// indication of what is attached so a table is the only option.
var gpioDevices = map[string]int{
	// Pokemon Ruby/Sapphire/Emerald and FireRed/LeafGreen carry a clock
	"AXV": GPIODeviceRTC,
	"AXP": GPIODeviceRTC,
	"BPE": GPIODeviceRTC,

	// Boktai. clock and solar sensor
	"U3I": GPIODeviceRTC | GPIODeviceLightSensor,
	"U32": GPIODeviceRTC | GPIODeviceLightSensor,
	"U33": GPIODeviceRTC | GPIODeviceLightSensor,

	// WarioWare Twisted. gyroscope and rumble
	"RZW": GPIODeviceGyro | GPIODeviceRumble,

	// Drill Dozer
	"V49": GPIODeviceRumble,
}

// ProbeGPIO decides which GPIO devices the cartridge carries. The decision
// is made from the game code; the port registers themselves are probed by
// the game at runtime.
func ProbeGPIO(data []byte, hdr Header) GPIO {
	if len(data) < GPIORegControl+2 {
		return GPIO{}
	}
	if len(hdr.GameCode) < 3 {
		return GPIO{}
	}
	return GPIO{Devices: gpioDevices[hdr.GameCode[:3]]}
}

// Present returns true if the cartridge carries any GPIO device.
func (g GPIO) Present() bool {
	return g.Devices != 0
}
