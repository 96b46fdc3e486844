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

package savedata_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware/savedata"
	"github.com/jetsetilly/gopheradvance/test"
)

// run the test from a temporary directory containing a portable resource
// directory, so that save files never touch the real user configuration.
func newSavedata(t *testing.T) *savedata.Savedata {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	if err := os.Mkdir(".gopheradvance", 0700); err != nil {
		t.Fatal(err)
	}

	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	if err != nil {
		t.Fatal(err)
	}
	env.Normalise()

	return savedata.NewSavedata(env)
}

func saveFile(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(".gopheradvance", "saves", name+".sav")
}

func TestErasedByDefault(t *testing.T) {
	sv := newSavedata(t)

	err := sv.Init("testgame")
	test.ExpectedSuccess(t, err)

	test.Equate(t, sv.Read8(0), 0xff)
	test.Equate(t, sv.Read8(0xffff), 0xff)
}

func TestCleanFlushesAfterSettling(t *testing.T) {
	sv := newSavedata(t)

	err := sv.Init("testgame")
	test.ExpectedSuccess(t, err)

	sv.Write8(0, 0xaa)
	test.Equate(t, sv.Read8(0), 0xaa)

	// the write is promoted on the next frame but not yet flushed
	sv.Clean(1)
	if _, err := os.Stat(saveFile(t, "testgame")); err == nil {
		t.Error("save file flushed too early")
	}

	// a quiet period of more frames than the settle threshold flushes
	sv.Clean(32)
	data, err := os.ReadFile(saveFile(t, "testgame"))
	test.ExpectedSuccess(t, err)
	test.Equate(t, data[0], 0xaa)
}

func TestDeinitFlushes(t *testing.T) {
	sv := newSavedata(t)

	err := sv.Init("testgame")
	test.ExpectedSuccess(t, err)

	sv.Write8(1, 0xbb)
	sv.Deinit()

	data, err := os.ReadFile(saveFile(t, "testgame"))
	test.ExpectedSuccess(t, err)
	test.Equate(t, data[1], 0xbb)

	// detached storage reads as erased
	test.Equate(t, sv.Read8(1), 0xff)
}

func TestMaskProtectsStorage(t *testing.T) {
	sv := newSavedata(t)

	err := sv.Init("testgame")
	test.ExpectedSuccess(t, err)

	sv.Write8(0, 0x11)
	sv.Mask()

	// writes while masked are visible through reads
	sv.Write8(0, 0x22)
	test.Equate(t, sv.Read8(0), 0x22)

	// but the real storage is untouched
	sv.Unmask()
	test.Equate(t, sv.Read8(0), 0x11)

	// masked writes never reach the disk
	sv.Mask()
	sv.Write8(0, 0x33)
	sv.Clean(100)
	sv.Clean(200)
	if _, err := os.Stat(saveFile(t, "testgame")); err == nil {
		data, _ := os.ReadFile(saveFile(t, "testgame"))
		if len(data) > 0 && data[0] == 0x33 {
			t.Error("masked write reached the save file")
		}
	}
}

func TestExistingFileLoaded(t *testing.T) {
	sv := newSavedata(t)

	if err := os.MkdirAll(filepath.Join(".gopheradvance", "saves"), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(saveFile(t, "testgame"), []byte{0x01, 0x02, 0x03}, 0644); err != nil {
		t.Fatal(err)
	}

	err := sv.Init("testgame")
	test.ExpectedSuccess(t, err)

	test.Equate(t, sv.Read8(0), 0x01)
	test.Equate(t, sv.Read8(2), 0x03)
	test.Equate(t, sv.Read8(3), 0xff)
}
