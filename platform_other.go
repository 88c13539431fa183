// platform_other.go - hardlinks only; no clone support
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

//go:build !linux && !darwin

package xfer

import (
	"os"
)

type otherPlatform struct{}

func newPlatform() platform {
	return otherPlatform{}
}

func (otherPlatform) link(dst, src string) error {
	return os.Link(src, dst)
}

func (otherPlatform) clone(dst, src *os.File) error {
	return ErrNotSupported
}

func (otherPlatform) canClone() bool {
	return false
}

func (otherPlatform) String() string {
	return "generic"
}
