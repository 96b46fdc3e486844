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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gopheradvance/cartridgeloader"
	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware"
)

// sentinel error returned by the Run() loop.
var timedOut = errors.New("performance timed out")

// number of instructions to run between checks of the timer channel.
// checking the channel is relatively expensive.
const performanceBrake = 100

// Check the performance of the emulator using the supplied cartridge.
//
// Emulation will run for the specified duration and will create a cpu
// profile, a memory profile, a trace (or a combination of those) as defined
// by the Profile argument.
func Check(output io.Writer, profile Profile, loader *cartridgeloader.Loader, bios *cartridgeloader.Loader, duration string) error {
	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	g := hardware.NewGBA(env)
	defer g.End()

	if bios != nil {
		if err := g.AttachCartridge(bios); err != nil {
			return curated.Errorf("performance: %v", err)
		}
	}

	if err := g.AttachCartridge(loader); err != nil {
		return curated.Errorf("performance: %v", err)
	}

	if !g.Mem.HasBIOS() {
		g.SkipBIOS()
	}

	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	// starting frame number (should be 0)
	startFrame := g.Video.FrameCounter

	runner := func() error {
		// the timer channel signals false when the leadtime has elapsed and
		// measurement should begin; true when the measurement period has
		// expired
		timerChan := make(chan bool)

		// a two second leadtime allows the emulation to settle down before
		// the measured period starts
		go func() {
			time.AfterFunc(2*time.Second, func() {
				timerChan <- false
				time.AfterFunc(dur, func() {
					timerChan <- true
				})
			})
		}()

		brake := 0

		return g.Run(func() (bool, error) {
			brake++
			if brake < performanceBrake {
				return true, nil
			}
			brake = 0

			select {
			case v := <-timerChan:
				if v {
					return false, timedOut
				}
				startFrame = g.Video.FrameCounter
			default:
			}
			return true, nil
		})
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return curated.Errorf("performance: %v", err)
	}

	numFrames := int(g.Video.FrameCounter - startFrame)
	fps, accuracy := CalcFPS(numFrames, dur.Seconds())
	output.Write([]byte(fmt.Sprintf("%.2f fps (%d frames in %.2f seconds) %.1f%%\n",
		fps, numFrames, dur.Seconds(), accuracy)))

	return nil
}
