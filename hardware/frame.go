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

import (
	"github.com/jetsetilly/gopheradvance/logger"
)

// called by the video subsystem at the end of every frame.
func (g *GBA) frameEnded() {
	g.Mem.Savedata.Clean(g.Video.FrameCounter)

	if g.recorder != nil {
		g.recorder.NextFrame()
	}

	if g.cheats != nil {
		g.cheats.RefreshAll()
	}

	if g.stream != nil {
		pixels, stride := g.Video.Pixels()
		if pixels != nil {
			g.stream.PostVideoFrame(pixels, stride)
		}
	}
}

// called by the timer subsystem on overflow of the two timers that clock
// the direct sound FIFO channels.
func (g *GBA) fifoTick(timer int) {
	// without DMA emulation the FIFO never fills; the channels carry
	// whatever was last pushed through the audio API
	_ = timer
}

// debug flag bits for the debug-string channel.
const (
	debugFlagSend  = 0x0100
	debugFlagLevel = 0x0007
)

// WriteDebugFlags drives the debug-string channel that development builds
// of games print through. Setting the send bit flushes the accumulated
// string to the log.
func (g *GBA) WriteDebugFlags(flags uint16) {
	g.debugFlags = flags
	if g.debugFlags&debugFlagSend == debugFlagSend {
		n := 0
		for n < len(g.debugString) && g.debugString[n] != 0 {
			n++
		}
		logger.Log(g.env, "gba debug", string(g.debugString[:n]))
	}
	g.debugFlags &^= debugFlagSend
}

// WriteDebugString fills the debug-string buffer. The next WriteDebugFlags
// with the send bit set flushes it.
func (g *GBA) WriteDebugString(s string) {
	for i := range g.debugString {
		g.debugString[i] = 0
	}
	copy(g.debugString[:], s)
}
