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

// Run the console until the continueCheck returns false. A nil
// continueCheck runs forever.
func (g *GBA) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	for {
		g.CPU.Step()

		cont, err := continueCheck()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}

// RunForFrameCount runs the console for the specified number of video
// frames.
func (g *GBA) RunForFrameCount(numFrames int) error {
	target := g.Video.FrameCounter + uint32(numFrames)
	return g.Run(func() (bool, error) {
		return g.Video.FrameCounter < target, nil
	})
}

// Step the console by one instruction boundary.
func (g *GBA) Step() {
	g.CPU.Step()
}
