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

package cartridgeloader

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/jetsetilly/gopheradvance/curated"
)

// NotMappable is a sentinel error pattern returned by Map() when the loader
// has no data to offer.
const NotMappable = "cartridgeloader: nothing to map"

// Loader is used to specify an image to load into the console: a cartridge
// ROM, a multiboot program or a BIOS. Once loaded it acts as the backing
// source for the memory subsystem.
type Loader struct {
	// filename (or URL) of the image
	Filename string

	// expected hash of the loaded image. empty string indicates that the
	// hash is unknown and need not be validated. after a load operation the
	// value will be the SHA1 hash of the loaded data
	Hash string

	// copy of the loaded data
	Data []byte

	// current read position for the Reader/Seeker implementation
	offset int64
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{
		Filename: filename,
	}
}

// NewLoaderFromData creates a Loader from data already in memory. Useful
// for testing and for images embedded in other files.
func NewLoaderFromData(name string, data []byte) Loader {
	return Loader{
		Filename: name,
		Data:     data,
		Hash:     fmt.Sprintf("%x", sha1.Sum(data)),
	}
}

// ShortName returns a shortened version of the loader's filename, suitable
// for window titles and log entries.
func (cl Loader) ShortName() string {
	sn := path.Base(cl.Filename)
	return strings.TrimSuffix(sn, path.Ext(cl.Filename))
}

// HasLoaded returns true if Load() has been successfully called.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// Load the image data. Loader filenames with a valid schema will use that
// method to load the data. Currently supported schemes are HTTP and local
// files.
func (cl *Loader) Load() error {
	if len(cl.Data) > 0 {
		return nil
	}

	scheme := "file"

	u, err := url.Parse(cl.Filename)
	if err == nil {
		scheme = u.Scheme
	}

	switch scheme {
	case "http":
		fallthrough
	case "https":
		resp, err := http.Get(cl.Filename)
		if err != nil {
			return curated.Errorf("cartridgeloader: %v", err)
		}
		defer resp.Body.Close()

		cl.Data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf("cartridgeloader: %v", err)
		}

	case "file":
		fallthrough
	case "":
		cl.Data, err = os.ReadFile(cl.Filename)
		if err != nil {
			return curated.Errorf("cartridgeloader: %v", err)
		}

	default:
		return curated.Errorf("cartridgeloader: unsupported URL scheme (%s)", scheme)
	}

	// generate hash and check for consistency with any expected value
	hash := fmt.Sprintf("%x", sha1.Sum(cl.Data))
	if cl.Hash != "" && cl.Hash != hash {
		return curated.Errorf("cartridgeloader: unexpected hash value")
	}
	cl.Hash = hash

	cl.offset = 0

	return nil
}

// Size returns the length in bytes of the loaded data.
func (cl *Loader) Size() int64 {
	return int64(len(cl.Data))
}

// Read implements the io.Reader interface.
func (cl *Loader) Read(p []byte) (int, error) {
	if cl.offset >= int64(len(cl.Data)) {
		return 0, io.EOF
	}
	n := copy(p, cl.Data[cl.offset:])
	cl.offset += int64(n)
	return n, nil
}

// Seek implements the io.Seeker interface.
func (cl *Loader) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = cl.offset + offset
	case io.SeekEnd:
		abs = int64(len(cl.Data)) + offset
	default:
		return 0, curated.Errorf("cartridgeloader: seek: invalid whence (%d)", whence)
	}
	if abs < 0 {
		return 0, curated.Errorf("cartridgeloader: seek: negative position")
	}
	cl.offset = abs
	return abs, nil
}

// Map returns a read-only view of the first length bytes of the loaded
// data. If length is greater than the available data the whole of the data
// is returned. The returned slice must not be written to; the patch
// mechanism in the memory subsystem always works on a copy.
func (cl *Loader) Map(length int64) ([]byte, error) {
	if len(cl.Data) == 0 {
		return nil, curated.Errorf(NotMappable)
	}
	if length > int64(len(cl.Data)) {
		length = int64(len(cl.Data))
	}
	return cl.Data[:length], nil
}

// Close releases the loaded data. Further calls to Load() will reload from
// the named source.
func (cl *Loader) Close() error {
	cl.Data = nil
	cl.offset = 0
	return nil
}
