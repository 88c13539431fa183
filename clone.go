// clone.go - copy-on-write clone of a relation file
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

// CloneFile creates 'dst' as a copy-on-write clone of 'src'. 'dst'
// must not exist. On platforms without a clone primitive CloneFile
// returns ErrNotSupported without touching the filesystem; when the
// filesystem itself can't clone, the returned error also satisfies
// errors.Is(err, ErrNotSupported) and 'dst' is removed.
func CloneFile(dst, src string) error {
	if !sys.canClone() {
		return &Error{"clone", src, dst, ErrNotSupported}
	}

	s, err := os.Open(src)
	if err != nil {
		return &Error{"open-src", src, dst, err}
	}

	defer s.Close()

	d, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return &Error{"create-dst", src, dst, err}
	}

	if err = sys.clone(d, s); err != nil {
		// the clone error is what the caller needs; cleanup
		// errors are ignored.
		os.Remove(dst)
		d.Close()
		return &Error{"clone", src, dst, err}
	}

	if err = d.Close(); err != nil {
		return &Error{"close-dst", src, dst, err}
	}
	return nil
}
