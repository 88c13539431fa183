// umask_other.go - private files without a umask
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

//go:build !unix

package xfer

import (
	"io/fs"
	"os"
)

func openPrivate(nm string, flag int, perm fs.FileMode) (*os.File, error) {
	return os.OpenFile(nm, flag, perm&^privateUmask)
}
