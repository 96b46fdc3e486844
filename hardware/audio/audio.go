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

// Package audio generates the sample cadence of the console and fans
// finished sample buffers out to the registered sinks (an audio device, a
// file writer, a digest).
package audio

import (
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware/timing"
	"github.com/jetsetilly/gopheradvance/logger"
)

// SampleRate of the console's direct sound output in samples per second.
const SampleRate = 32768

// CyclesPerSample is the master clock divided by the sample rate.
const CyclesPerSample = 512

// NumSamples is the size in stereo sample pairs of the buffer handed to
// the sinks.
const NumSamples = 1024

// Sink implementations accept finished sample buffers. Samples are
// interleaved stereo, signed 16bit.
type Sink interface {
	Queue(samples []int16) error
}

// Audio implements the sample cadence of the console.
type Audio struct {
	env *environment.Environment

	// the two direct sound FIFO channels. the timers feed these; we keep
	// only the most recent sample of each
	ChannelA int8
	ChannelB int8

	// master enable. a disabled mixer emits silence but the cadence runs
	// regardless so that sinks see an uninterrupted stream
	Enabled bool

	buffer []int16

	sampleEvent timing.Event

	sinks []Sink
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio(env *environment.Environment) *Audio {
	au := &Audio{
		env:    env,
		buffer: make([]int16, 0, NumSamples*2),
	}
	au.sampleEvent.Name = "audio.sample"
	au.sampleEvent.Callback = au.sample
	return au
}

// AddSink registers a sink for finished sample buffers.
func (au *Audio) AddSink(sink Sink) {
	au.sinks = append(au.sinks, sink)
}

// Reset the audio subsystem and begin the sample cadence on the timeline.
func (au *Audio) Reset(t *timing.Timing) {
	au.ChannelA = 0
	au.ChannelB = 0
	au.Enabled = false
	au.buffer = au.buffer[:0]
	t.Schedule(&au.sampleEvent, CyclesPerSample)
}

func (au *Audio) sample(t *timing.Timing, cyclesLate int32) {
	var l, r int16
	if au.Enabled {
		// both FIFO channels to both speakers at full volume
		v := int16(au.ChannelA)<<7 + int16(au.ChannelB)<<7
		l = v
		r = v
	}
	au.buffer = append(au.buffer, l, r)

	if len(au.buffer) >= NumSamples*2 {
		au.flush()
	}

	t.Schedule(&au.sampleEvent, CyclesPerSample-cyclesLate)
}

func (au *Audio) flush() {
	for _, sink := range au.sinks {
		if err := sink.Queue(au.buffer); err != nil {
			logger.Logf(au.env, "audio", "sink: %v", err)
		}
	}
	au.buffer = au.buffer[:0]
}
