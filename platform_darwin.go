// platform_darwin.go - macOS hardlink and clonefile
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

//go:build darwin

package xfer

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

type darwinPlatform struct{}

func newPlatform() platform {
	return darwinPlatform{}
}

func (darwinPlatform) link(dst, src string) error {
	return unix.Link(src, dst)
}

// macOS doesn't have an fd to fd clone; fclonefileat(2) insists on
// creating the destination. So we drop the name of the empty file
// we were handed and let the kernel create it afresh. The caller
// still owns (and closes) the now unlinked descriptor.
func (darwinPlatform) clone(dst, src *os.File) error {
	if err := os.Remove(dst.Name()); err != nil {
		return err
	}

	err := unix.Fclonefileat(int(src.Fd()), unix.AT_FDCWD, dst.Name(), unix.CLONE_NOFOLLOW)
	if err == nil {
		return nil
	}

	if errAny(err, unix.ENOTSUP, unix.ENOSYS) {
		return fmt.Errorf("%w: %w", ErrNotSupported, err)
	}
	return err
}

func (darwinPlatform) canClone() bool {
	return true
}

func (darwinPlatform) String() string {
	return "darwin"
}
