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

package main_test

import (
	"encoding/binary"
	"testing"

	"github.com/jetsetilly/gopheradvance/cartridgeloader"
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware"
)

func BenchmarkCPU(b *testing.B) {
	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	if err != nil {
		b.Fatal(err)
	}
	env.Normalise()

	g := hardware.NewGBA(env)

	// a cartridge that branches to itself. the benchmark measures the raw
	// instruction dispatch rate
	data := make([]byte, 0x1000)
	for i := 0; i < len(data); i += 4 {
		binary.LittleEndian.PutUint32(data[i:], 0xeafffffe)
	}
	binary.LittleEndian.PutUint32(data, 0xea000010)
	copy(data[0xa0:], "BENCHMARK")
	copy(data[0xac:], "ABEN")

	ldr := cartridgeloader.NewLoaderFromData("bench.gba", data)
	if err := g.AttachCartridge(&ldr); err != nil {
		b.Fatal(err)
	}
	g.SkipBIOS()

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		g.Step()
	}
}
