// private.go - create files unreadable by group and other
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

package xfer

import (
	"io/fs"
	"os"
)

// bits stripped from every private file
const privateUmask = 0077

// CreatePrivate opens 'nm' like os.OpenFile() except that a newly
// created file never grants any permission to group or other,
// regardless of the process umask. The umask is restored before
// CreatePrivate returns.
func CreatePrivate(nm string, flag int, perm fs.FileMode) (*os.File, error) {
	return openPrivate(nm, flag, perm)
}
