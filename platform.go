// platform.go - OS primitives for in-place transfers
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
	"os"
)

// platform abstracts the two OS specific primitives needed by
// the in-place transfer engines. Each supported OS provides an
// implementation via newPlatform() in a build-tagged file.
type platform interface {
	// link creates a hard link 'dst' referring to 'src'
	link(dst, src string) error

	// clone makes 'dst' a copy-on-write clone of 'src'; 'dst' is
	// freshly created and empty.
	clone(dst, src *os.File) error

	// canClone returns false if the platform has no clone primitive
	canClone() bool

	String() string
}

// the platform in use; tests swap this out.
var sys platform = newPlatform()
