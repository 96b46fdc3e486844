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

// Package video drives the display timing: the scanline cadence, the
// vertical blank interrupt and the frame counter the rest of the console
// synchronises against.
package video

import (
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware/timing"
)

// Display timing. The horizontal period is fixed; four cycles per pixel
// plus the blanking interval.
const (
	HorizontalPixels = 240
	VerticalPixels   = 160

	CyclesPerScanline = 1232
	ScanlinesPerFrame = 228

	CyclesPerFrame = CyclesPerScanline * ScanlinesPerFrame

	// the master clock runs at 2^24 Hz
	FramesPerSecond = 16777216.0 / CyclesPerFrame
)

// Renderer implementations turn scanline state into pixels. The video
// subsystem drives the cadence; what a scanline looks like is the
// renderer's business.
type Renderer interface {
	// DrawScanline renders the numbered scanline into the renderer's
	// internal framebuffer
	DrawScanline(scanline int)

	// FinishFrame marks the end of the visible frame
	FinishFrame()

	// Pixels returns the finished framebuffer as RGBA bytes along with the
	// stride in pixels
	Pixels() ([]byte, int)
}

// Video implements the display cadence of the console.
type Video struct {
	env *environment.Environment

	// number of frames since the console was switched on. save data
	// cleaning and the recorder both pace themselves against this
	FrameCounter uint32

	// the scanline currently being drawn
	Scanline int

	renderer Renderer

	scanlineEvent timing.Event

	// installed by the platform
	writeVCount func(scanline uint16)
	raiseVBlank func()
	raiseHBlank func()
	frameEnded  func()
}

// NewVideo is the preferred method of initialisation for the Video type.
// The callback functions connect the display cadence to the platform; any
// of them can be nil.
func NewVideo(env *environment.Environment,
	writeVCount func(uint16), raiseVBlank func(), raiseHBlank func(), frameEnded func()) *Video {

	vid := &Video{
		env:         env,
		writeVCount: writeVCount,
		raiseVBlank: raiseVBlank,
		raiseHBlank: raiseHBlank,
		frameEnded:  frameEnded,
	}
	vid.scanlineEvent.Name = "video.scanline"
	vid.scanlineEvent.Callback = vid.nextScanline
	return vid
}

// SetRenderer installs the renderer. A nil renderer is allowed; the
// cadence runs regardless.
func (vid *Video) SetRenderer(renderer Renderer) {
	vid.renderer = renderer
}

// Pixels returns the most recently finished frame. Without a renderer the
// return values are nil and zero.
func (vid *Video) Pixels() ([]byte, int) {
	if vid.renderer == nil {
		return nil, 0
	}
	return vid.renderer.Pixels()
}

// Reset the video subsystem and begin the scanline cadence on the
// timeline.
func (vid *Video) Reset(t *timing.Timing) {
	vid.Scanline = 0
	if vid.writeVCount != nil {
		vid.writeVCount(0)
	}
	t.Schedule(&vid.scanlineEvent, CyclesPerScanline)
}

func (vid *Video) nextScanline(t *timing.Timing, cyclesLate int32) {
	if vid.Scanline < VerticalPixels && vid.renderer != nil {
		vid.renderer.DrawScanline(vid.Scanline)
	}
	if vid.raiseHBlank != nil {
		vid.raiseHBlank()
	}

	vid.Scanline++
	if vid.Scanline == VerticalPixels {
		if vid.renderer != nil {
			vid.renderer.FinishFrame()
		}
		if vid.raiseVBlank != nil {
			vid.raiseVBlank()
		}
	} else if vid.Scanline == ScanlinesPerFrame {
		vid.Scanline = 0
		vid.FrameCounter++
		if vid.frameEnded != nil {
			vid.frameEnded()
		}
	}

	if vid.writeVCount != nil {
		vid.writeVCount(uint16(vid.Scanline))
	}

	t.Schedule(&vid.scanlineEvent, CyclesPerScanline-cyclesLate)
}
