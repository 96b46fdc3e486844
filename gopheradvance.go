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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/jetsetilly/gopheradvance/cartridgeloader"
	"github.com/jetsetilly/gopheradvance/debugger"
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/gui/sdlaudio"
	"github.com/jetsetilly/gopheradvance/hardware"
	"github.com/jetsetilly/gopheradvance/hardware/arm"
	"github.com/jetsetilly/gopheradvance/hardware/video"
	"github.com/jetsetilly/gopheradvance/logger"
	"github.com/jetsetilly/gopheradvance/modalflag"
	"github.com/jetsetilly/gopheradvance/patch"
	"github.com/jetsetilly/gopheradvance/performance"
	"github.com/jetsetilly/gopheradvance/performance/limiter"
	"github.com/jetsetilly/gopheradvance/recorder"
	"github.com/jetsetilly/gopheradvance/regression"
	"github.com/jetsetilly/gopheradvance/setup"
	"github.com/jetsetilly/gopheradvance/statsview"
	"github.com/jetsetilly/gopheradvance/version"
	"github.com/jetsetilly/gopheradvance/wavwriter"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "DEBUG", "PERFORMANCE", "REGRESS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "DEBUG":
		err = debug(md)
	case "PERFORMANCE":
		err = perform(md)
	case "REGRESS":
		err = regress(md)
	case "VERSION":
		vrsn, rev, _ := version.Version()
		fmt.Printf("%s (%s)\n  %s\n", version.ApplicationName, vrsn, rev)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// newConsole creates the emulation hardware and attaches the named BIOS and
// cartridge files. An empty bios argument means the console boots without
// one, skipping straight to the cartridge.
func newConsole(bios string, cartridge string) (*hardware.GBA, error) {
	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	if err != nil {
		return nil, err
	}

	g := hardware.NewGBA(env)

	if bios != "" {
		ldr := cartridgeloader.NewLoader(bios)
		if err := g.AttachCartridge(&ldr); err != nil {
			return nil, err
		}
	}

	ldr := cartridgeloader.NewLoader(cartridge)
	if err := setup.AttachCartridge(g, &ldr); err != nil {
		return nil, err
	}

	if !g.Mem.HasBIOS() {
		g.SkipBIOS()
	}

	return g, nil
}

func applyPatchFile(g *hardware.GBA, patchFile string) error {
	data, err := os.ReadFile(patchFile)
	if err != nil {
		return err
	}
	ips, err := patch.NewIPS(data)
	if err != nil {
		return err
	}
	return g.Mem.ApplyPatch(ips)
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	bios := md.AddString("bios", "", "BIOS image to boot with")
	patchFile := md.AddString("patch", "", "IPS patch to apply to the cartridge")
	record := md.AddString("record", "", "record user input to the named transcript")
	playback := md.AddString("playback", "", "replay user input from the named transcript")
	wav := md.AddString("wav", "", "record audio to wav file")
	sdl := md.AddBool("sdl", false, "play audio through SDL")
	fpsCap := md.AddBool("fpscap", true, "cap frame rate to hardware refresh rate")
	numFrames := md.AddInt("frames", 0, "number of frames to emulate (0 means no limit)")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	if *stats {
		statsview.Launch(md.Output)
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("a single cartridge file is required for %s mode", md)
	}

	g, err := newConsole(*bios, md.GetArg(0))
	if err != nil {
		return err
	}
	defer g.End()

	if *patchFile != "" {
		if err := applyPatchFile(g, *patchFile); err != nil {
			return err
		}
	}

	if *wav != "" {
		aw, err := wavwriter.New(*wav)
		if err != nil {
			return err
		}
		g.Audio.AddSink(aw)
		defer aw.End()
	}

	if *sdl {
		aud, err := sdlaudio.NewAudio()
		if err != nil {
			return err
		}
		g.Audio.AddSink(aud)
		defer aud.EndMixing()
	}

	var rec *recorder.Recorder
	var plb *recorder.Playback

	if *record != "" && *playback != "" {
		return fmt.Errorf("record and playback cannot both be specified")
	}
	if *record != "" {
		rec, err = recorder.NewRecorder(*record, g)
		if err != nil {
			return err
		}
	}
	if *playback != "" {
		plb, err = recorder.NewPlayback(*playback, g)
		if err != nil {
			return err
		}
	}

	// ctrl-c ends the emulation gracefully, flushing save data and any
	// recording in progress
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	var lim *limiter.FpsLimiter
	if *fpsCap {
		lim = limiter.NewFPSLimiter(video.FramesPerSecond)
	}

	endFrame := uint32(0)
	if *numFrames > 0 {
		endFrame = g.Video.FrameCounter + uint32(*numFrames)
	}

	prevFrame := g.Video.FrameCounter
	err = g.Run(func() (bool, error) {
		if g.Video.FrameCounter == prevFrame {
			return true, nil
		}
		prevFrame = g.Video.FrameCounter

		if lim != nil {
			lim.Wait()
		}

		select {
		case <-intChan:
			return false, nil
		default:
		}

		if endFrame != 0 && g.Video.FrameCounter >= endFrame {
			return false, nil
		}
		if plb != nil && plb.EndFrame() {
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return err
	}

	if rec != nil {
		if err := rec.End(); err != nil {
			return err
		}
		fmt.Println("! recording completed")
	}

	return nil
}

func debug(md *modalflag.Modes) error {
	md.NewMode()

	bios := md.AddString("bios", "", "BIOS image to boot with")
	breaks := md.AddString("break", "", "comma separated list of breakpoint addresses (hex)")
	graph := md.AddString("graph", "", "write a graph of the console internals to file on halt")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("a single cartridge file is required for %s mode", md)
	}

	g, err := newConsole(*bios, md.GetArg(0))
	if err != nil {
		return err
	}
	defer g.End()

	dbg := debugger.NewDebugger(g.Env(), g)
	defer dbg.Detach()

	if *breaks != "" {
		for _, b := range strings.Split(*breaks, ",") {
			addr, err := strconv.ParseUint(strings.TrimSpace(b), 16, 32)
			if err != nil {
				return fmt.Errorf("bad breakpoint address: %s", b)
			}

			// a halfword-aligned address can only hold a thumb instruction
			mode := arm.ModeARM
			if addr&0x2 == 0x2 {
				mode = arm.ModeThumb
			}

			if err := dbg.Break(uint32(addr), mode); err != nil {
				return err
			}
		}
	}

	if err := dbg.Run(); err != nil {
		return err
	}

	fmt.Printf("halted: %s at %08x\n", dbg.LastHalt, dbg.LastHaltAddr)

	if *graph != "" {
		f, err := os.Create(*graph)
		if err != nil {
			return err
		}
		defer f.Close()
		dbg.DumpGraph(f)
	}

	return nil
}

func regress(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "ADD", "DELETE")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch md.Mode() {
	case "RUN":
		md.NewMode()
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		return regression.RegressRun(md.Output, md.RemainingArgs())

	case "LIST":
		md.NewMode()
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		return regression.RegressList(md.Output)

	case "ADD":
		md.NewMode()
		numFrames := md.AddInt("frames", 10, "number of frames to run")
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		if len(md.RemainingArgs()) != 1 {
			return fmt.Errorf("a single cartridge file is required for %s mode", md)
		}
		return regression.RegressAdd(md.Output, regression.NewFrameRecord(md.GetArg(0), *numFrames))

	case "DELETE":
		md.NewMode()
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		if len(md.RemainingArgs()) != 1 {
			return fmt.Errorf("a single database key is required for %s mode", md)
		}
		return regression.RegressDelete(md.Output, os.Stdin, md.GetArg(0))
	}

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	bios := md.AddString("bios", "", "BIOS image to boot with")
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "none", "run through profiler (CPU, MEM, TRACE, ALL)")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("a single cartridge file is required for %s mode", md)
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	ldr := cartridgeloader.NewLoader(md.GetArg(0))

	var biosLdr *cartridgeloader.Loader
	if *bios != "" {
		l := cartridgeloader.NewLoader(*bios)
		biosLdr = &l
	}

	return performance.Check(md.Output, prf, &ldr, biosLdr, *duration)
}
