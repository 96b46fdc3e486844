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

// Package sdlaudio plays the console's audio output through SDL.
package sdlaudio

import (
	"encoding/binary"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/hardware/audio"
)

// if the queue is allowed to grow without bound the audio will drift ever
// further behind the video. when the backlog exceeds this many bytes the
// queue is cleared and restarted from the incoming samples.
//
// the value is four flush periods' worth of stereo int16 samples. found
// through trial and error; the precise value is not critical.
const maxQueuedBytes = audio.NumSamples * 2 * 2 * 4

// Audio outputs sound using SDL. It implements the audio.Sink interface.
type Audio struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	// conversion buffer reused between Queue() calls
	scratch []byte
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() (*Audio, error) {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return nil, curated.Errorf("sdlaudio: %v", err)
	}

	aud := &Audio{}

	spec := &sdl.AudioSpec{
		Freq:     audio.SampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 2,
		Samples:  uint16(audio.NumSamples),
	}

	var err error
	var actualSpec sdl.AudioSpec

	aud.id, err = sdl.OpenAudioDevice("", false, spec, &actualSpec, 0)
	if err != nil {
		return nil, curated.Errorf("sdlaudio: %v", err)
	}
	aud.spec = actualSpec

	sdl.PauseAudioDevice(aud.id, false)

	return aud, nil
}

// Queue implements the audio.Sink interface.
func (aud *Audio) Queue(samples []int16) error {
	if sdl.GetQueuedAudioSize(aud.id) > maxQueuedBytes {
		sdl.ClearQueuedAudio(aud.id)
	}

	if cap(aud.scratch) < len(samples)*2 {
		aud.scratch = make([]byte, len(samples)*2)
	}
	aud.scratch = aud.scratch[:len(samples)*2]

	for i, s := range samples {
		binary.LittleEndian.PutUint16(aud.scratch[i*2:], uint16(s))
	}

	if err := sdl.QueueAudio(aud.id, aud.scratch); err != nil {
		return curated.Errorf("sdlaudio: %v", err)
	}

	return nil
}

// Mute silences the device without stopping the console from queueing
// samples.
func (aud *Audio) Mute(muted bool) {
	sdl.PauseAudioDevice(aud.id, muted)
	if muted {
		sdl.ClearQueuedAudio(aud.id)
	}
}

// EndMixing closes the audio device.
func (aud *Audio) EndMixing() error {
	sdl.ClearQueuedAudio(aud.id)
	sdl.CloseAudioDevice(aud.id)
	return nil
}
