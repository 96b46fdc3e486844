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

package video_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware/timing"
	"github.com/jetsetilly/gopheradvance/hardware/video"
	"github.com/jetsetilly/gopheradvance/test"
)

type fixture struct {
	vid *video.Video
	t   *timing.Timing

	cycles    int32
	nextEvent int32

	vcount     uint16
	vblanks    int
	hblanks    int
	frameEnded int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	if err != nil {
		t.Fatal(err)
	}
	env.Normalise()

	fx := &fixture{}
	fx.t = timing.NewTiming(&fx.cycles, &fx.nextEvent)
	fx.vid = video.NewVideo(env,
		func(scanline uint16) { fx.vcount = scanline },
		func() { fx.vblanks++ },
		func() { fx.hblanks++ },
		func() { fx.frameEnded++ },
	)
	fx.vid.Reset(fx.t)

	return fx
}

func TestVBlankAtBottomOfVisibleFrame(t *testing.T) {
	fx := newFixture(t)

	// the vertical blank starts when the last visible scanline finishes
	fx.t.Tick(video.CyclesPerScanline * (video.VerticalPixels - 1))
	test.Equate(t, fx.vblanks, 0)

	fx.t.Tick(video.CyclesPerScanline)
	test.Equate(t, fx.vblanks, 1)
	test.Equate(t, fx.vcount, video.VerticalPixels)
}

func TestHBlankEveryScanline(t *testing.T) {
	fx := newFixture(t)

	fx.t.Tick(video.CyclesPerScanline * 10)
	test.Equate(t, fx.hblanks, 10)
	test.Equate(t, fx.vcount, 10)
}

func TestFrameCounter(t *testing.T) {
	fx := newFixture(t)

	fx.t.Tick(video.CyclesPerFrame)
	test.Equate(t, fx.vid.FrameCounter, 1)
	test.Equate(t, fx.frameEnded, 1)
	test.Equate(t, fx.vcount, 0)

	fx.t.Tick(video.CyclesPerFrame * 2)
	test.Equate(t, fx.vid.FrameCounter, 3)
	test.Equate(t, fx.frameEnded, 3)
}

func TestVCountWrapsAtEndOfFrame(t *testing.T) {
	fx := newFixture(t)

	fx.t.Tick(video.CyclesPerScanline * (video.ScanlinesPerFrame - 1))
	test.Equate(t, fx.vcount, video.ScanlinesPerFrame-1)

	fx.t.Tick(video.CyclesPerScanline)
	test.Equate(t, fx.vcount, 0)
}
