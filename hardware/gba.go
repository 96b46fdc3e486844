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
	"github.com/jetsetilly/gopheradvance/cartridgeloader"
	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware/arm"
	"github.com/jetsetilly/gopheradvance/hardware/audio"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/hardware/memory/memorymap"
	"github.com/jetsetilly/gopheradvance/hardware/preferences"
	"github.com/jetsetilly/gopheradvance/hardware/sio"
	"github.com/jetsetilly/gopheradvance/hardware/timers"
	"github.com/jetsetilly/gopheradvance/hardware/timing"
	"github.com/jetsetilly/gopheradvance/hardware/video"
	"github.com/jetsetilly/gopheradvance/logger"
)

// sentinel value for the idle loop address when no loop is known.
const IdleLoopNone = 0xffffffff

// Debugger instances receive breakpoint and fault notifications from the
// running console.
type Debugger interface {
	// HitBreakpoint is called when execution reaches a trap installed
	// with the debugger's component tag
	HitBreakpoint(addr uint32)

	// HitIllegal is called when an illegal or unimplemented opcode is
	// executed
	HitIllegal(addr uint32, opcode uint32)
}

// CheatHooker instances patch the running program. The console consults
// the hooker when execution reaches a cheat trap and after every frame.
type CheatHooker interface {
	// HookAt refreshes any cheat set hooked at the address and returns
	// the opcode the trap displaced
	HookAt(addr uint32) (patchedOpcode uint32, ok bool)

	// RefreshAll refreshes every cheat set
	RefreshAll()
}

// Stream instances receive the finished frame.
type Stream interface {
	PostVideoFrame(pixels []byte, stride int)
}

// Recorder instances are told about frame boundaries and can veto save
// data being unmasked at reset, which would derail a recorded session.
type Recorder interface {
	NextFrame()
	IsPlaying() bool
	IsRecording() bool
}

// GBA is the console. It is the sole owner of its subsystems; nothing
// below this type holds a reference back to it.
type GBA struct {
	env *environment.Environment

	CPU    *arm.Core
	Mem    *memory.Memory
	Timing *timing.Timing
	Video  *video.Video
	Audio  *audio.Audio
	SIO    *sio.SIO
	Timers *timers.Timers

	// interrupts that were pending when the running program read the
	// status register. delivered at the next scheduler visit
	springIRQ uint16

	// a blocked CPU makes no progress while the timeline ticks forward.
	// used by peripherals that stall the bus
	cpuBlocked bool

	// idle loop bookkeeping. the address of a detected idle loop, or
	// IdleLoopNone
	idleLoop              uint32
	idleDetectionStep     int
	idleDetectionFailures int
	lastJump              uint32

	debugger Debugger
	cheats   CheatHooker
	stream   Stream
	recorder Recorder

	// called when the running program executes a stop. with no callback
	// the stop is ignored
	stopCallback func()

	// the debug-string channel. programs built with debugging support
	// write a string here and flag it for sending
	debugString [0x100]byte
	debugFlags  uint16
}

// NewGBA is the preferred method of initialisation for the GBA type.
func NewGBA(env *environment.Environment) *GBA {
	g := &GBA{
		env:      env,
		idleLoop: IdleLoopNone,
	}

	g.Mem = memory.NewMemory(env)
	g.CPU = arm.NewCore(g.Mem)
	g.Timing = timing.NewTiming(&g.CPU.Cycles, &g.CPU.NextEvent)

	g.Mem.SetHooks(&ioHooks{g: g})

	g.Video = video.NewVideo(env,
		func(scanline uint16) { g.Mem.PokeIO(memory.RegVCount, scanline) },
		func() { g.RaiseIRQ(IRQVBlank) },
		func() { g.RaiseIRQ(IRQHBlank) },
		func() { g.frameEnded() },
	)
	g.Audio = audio.NewAudio(env)
	g.SIO = sio.NewSIO(env, func() { g.RaiseIRQ(IRQSIO) })
	g.Timers = timers.NewTimers(env,
		func(timer int) { g.RaiseIRQ(IRQTimer0 + timer) },
		func(timer int) { g.fifoTick(timer) },
	)
	g.Mem.SetTimerHooks(g.Timers)

	g.CPU.Handlers = arm.Handlers{
		Reset:         g.resetHandler,
		ProcessEvents: g.processEvents,
		SWI16:         func(imm uint8) { g.swi(uint32(imm)) },
		SWI32:         g.swi,
		HitIllegal:    g.hitIllegal,
		HitStub:       g.hitStub,
		ReadCPSR:      g.testIRQ,
		Bkpt16:        g.breakpoint,
		Bkpt32:        g.breakpoint,
	}

	return g
}

// the CPU's reset handler. banked stack pointers are platform knowledge so
// they are set here rather than in the core.
func (g *GBA) resetHandler() {
	g.CPU.SetPrivilegeMode(arm.PrivIRQ)
	g.CPU.GPRs[arm.SP] = memorymap.StackBaseIRQ
	g.CPU.SetPrivilegeMode(arm.PrivSupervisor)
	g.CPU.GPRs[arm.SP] = memorymap.StackBaseSupervisor
	g.CPU.SetPrivilegeMode(arm.PrivSystem)
	g.CPU.GPRs[arm.SP] = memorymap.StackBaseSystem
}

// Reset the console to its switch-on state. The attached cartridge and
// BIOS stay attached; a yanked cartridge is restored.
func (g *GBA) Reset() {
	if g.recorder == nil || (!g.recorder.IsPlaying() && !g.recorder.IsRecording()) {
		g.Mem.Savedata.Unmask()
	}

	g.cpuBlocked = false
	g.springIRQ = 0

	g.Timing.Clear()
	g.Mem.Reset()
	g.resetKeypad()
	g.Video.Reset(g.Timing)
	g.Audio.Reset(g.Timing)
	g.Timers.Reset(g.Timing)
	g.SIO.Reset()

	g.lastJump = 0
	g.idleDetectionStep = 0
	g.idleDetectionFailures = 0

	g.debugFlags = 0
	for i := range g.debugString {
		g.debugString[i] = 0
	}

	g.CPU.Reset()
}

// SkipBIOS advances the console state past the BIOS boot animation. Only
// meaningful immediately after a reset.
func (g *GBA) SkipBIOS() {
	if g.CPU.GPRs[arm.PC] != arm.BaseReset+arm.WordSizeARM {
		return
	}
	if g.Mem.RomSize > 0 {
		g.CPU.GPRs[arm.PC] = memorymap.OriginCart
	} else {
		g.CPU.GPRs[arm.PC] = memorymap.OriginWorkingRAM
	}
	g.Mem.PokeIO(memory.RegVCount, 0x7e)
	g.Mem.PokeIO(memory.RegPostFlg, 0x1)
}

// AttachCartridge fingerprints the loader and attaches it as a cartridge,
// a multiboot program or a BIOS, whichever it looks like. The console is
// reset afterwards.
func (g *GBA) AttachCartridge(loader *cartridgeloader.Loader) error {
	if err := loader.Load(); err != nil {
		return curated.Errorf("gba: %v", err)
	}

	switch {
	case loader.IsBIOS():
		if err := g.Mem.LoadBIOS(loader); err != nil {
			return curated.Errorf("gba: %v", err)
		}
	case loader.IsMultiboot():
		if err := g.Mem.LoadMultiboot(loader); err != nil {
			return curated.Errorf("gba: %v", err)
		}
	case loader.IsROM():
		if err := g.Mem.LoadROM(loader); err != nil {
			return curated.Errorf("gba: %v", err)
		}
	default:
		return curated.Errorf("gba: %s does not look like a GBA image", loader.ShortName())
	}

	g.Reset()
	return nil
}

// DetachCartridge unloads the attached cartridge and resets the console.
func (g *GBA) DetachCartridge() {
	g.Mem.UnloadROM()
	g.idleLoop = IdleLoopNone
	g.Reset()
}

// YankCartridge simulates the cartridge being pulled from the running
// console. The game pak interrupt is raised; what happens next is up to
// the running program.
func (g *GBA) YankCartridge() {
	g.Mem.Yank()
	g.RaiseIRQ(IRQGamePak)
}

// End the emulation, flushing save data and releasing backing sources.
func (g *GBA) End() {
	g.Mem.UnloadROM()
	g.Mem.UnloadBIOS()
	g.idleLoop = IdleLoopNone
}

// AttachDebugger connects a debugger to the console.
func (g *GBA) AttachDebugger(debugger Debugger) {
	g.debugger = debugger
}

// DetachDebugger disconnects the debugger. Any traps it installed remain
// until cleared.
func (g *GBA) DetachDebugger() {
	g.debugger = nil
}

// AttachCheats connects a cheat device to the console.
func (g *GBA) AttachCheats(cheats CheatHooker) {
	g.cheats = cheats
}

// AttachStream connects a frame consumer to the console.
func (g *GBA) AttachStream(stream Stream) {
	g.stream = stream
}

// AttachRecorder connects a session recorder to the console.
func (g *GBA) AttachRecorder(recorder Recorder) {
	g.recorder = recorder
}

// SetStopCallback installs the function called when the running program
// executes a stop.
func (g *GBA) SetStopCallback(stop func()) {
	g.stopCallback = stop
}

// SetIdleLoop records the address of a known idle loop for the loaded
// game. The address is discarded when the IdleOptimisation preference is
// IGNORE.
func (g *GBA) SetIdleLoop(addr uint32) {
	if g.env.Prefs.IdleOptimisation.String() == preferences.IdleIgnore {
		return
	}
	g.idleLoop = addr
}

// IdleLoop returns the recorded idle loop address, or IdleLoopNone.
func (g *GBA) IdleLoop() uint32 {
	return g.idleLoop
}

// Env returns the environment the console was created with.
func (g *GBA) Env() *environment.Environment {
	return g.env
}

// Prefs returns the emulation preferences the console was created with.
func (g *GBA) Prefs() *preferences.Preferences {
	return g.env.Prefs
}

func (g *GBA) swi(imm uint32) {
	logger.Logf(g.env, "gba", "swi %#02x not implemented", imm)
}
