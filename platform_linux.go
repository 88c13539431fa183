// platform_linux.go - Linux hardlink and reflink
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

//go:build linux

package xfer

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

type linuxPlatform struct{}

func newPlatform() platform {
	return linuxPlatform{}
}

func (linuxPlatform) link(dst, src string) error {
	return unix.Link(src, dst)
}

// FICLONE works on btrfs, xfs (reflink=1), bcachefs and friends.
// Everything else rejects it with one of the errnos below.
func (linuxPlatform) clone(dst, src *os.File) error {
	err := unix.IoctlFileClone(int(dst.Fd()), int(src.Fd()))
	if err == nil {
		return nil
	}

	if errAny(err, unix.EOPNOTSUPP, unix.ENOTTY, unix.ENOSYS, unix.EINVAL) {
		return fmt.Errorf("%w: %w", ErrNotSupported, err)
	}
	return err
}

func (linuxPlatform) canClone() bool {
	return true
}

func (linuxPlatform) String() string {
	return "linux"
}
