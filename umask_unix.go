// umask_unix.go - scoped umask for unixish platforms
//
// (c) 2026 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

//go:build unix

package xfer

import (
	"io/fs"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// the umask is process wide; serialize the narrow/restore window
var umaskMu sync.Mutex

func openPrivate(nm string, flag int, perm fs.FileMode) (*os.File, error) {
	umaskMu.Lock()
	defer umaskMu.Unlock()

	old := unix.Umask(privateUmask)
	defer unix.Umask(old)

	return os.OpenFile(nm, flag, perm)
}
