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

package hardware

// Key identifies a button on the console. The value is the bit position in
// the key input register.
type Key int

// Valid Key values.
const (
	KeyA Key = iota
	KeyB
	KeySelect
	KeyStart
	KeyRight
	KeyLeft
	KeyUp
	KeyDown
	KeyR
	KeyL
	NumKeys
)

// the key input register reads active low.
const regKeyInput = 0x130

// HandleKeyEvent presses or releases a key. Real hardware cannot signal
// both directions of an axis at once; unless the relevant preference
// allows it, pressing a direction releases its opposite.
func (g *GBA) HandleKeyEvent(key Key, pressed bool) {
	if key < 0 || key >= NumKeys {
		return
	}

	state := g.Mem.ReadIO(regKeyInput)

	if pressed {
		state &^= 1 << key

		if !g.env.Prefs.AllowOpposingDirections.Get().(bool) {
			switch key {
			case KeyRight:
				state |= 1 << KeyLeft
			case KeyLeft:
				state |= 1 << KeyRight
			case KeyUp:
				state |= 1 << KeyDown
			case KeyDown:
				state |= 1 << KeyUp
			}
		}
	} else {
		state |= 1 << key
	}

	g.Mem.PokeIO(regKeyInput, state)
}

// KeyPressed returns true if the key is currently pressed.
func (g *GBA) KeyPressed(key Key) bool {
	return g.Mem.ReadIO(regKeyInput)&(1<<key) == 0
}

// resetKeypad returns the key input register to its all-released state.
// called as part of console reset; register zero would read as every key
// held down.
func (g *GBA) resetKeypad() {
	g.Mem.PokeIO(regKeyInput, (1<<NumKeys)-1)
}
