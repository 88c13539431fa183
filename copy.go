// copy.go - streaming byte copy of a relation file
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
	"io"
	"os"
	"sync"
)

// CopyChunkSize is the unit of I/O for CopyFile
const CopyChunkSize int = 50 * PageSize

var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, CopyChunkSize)
		return &b
	},
}

// CopyFile copies the contents of 'src' to 'dst'. 'dst' must not
// exist unless 'force' is set; a forced copy truncates and
// overwrites an existing 'dst'. Any error leaves 'dst' in an
// unspecified state.
func CopyFile(dst, src string, force bool) error {
	s, err := os.Open(src)
	if err != nil {
		return &Error{"open-src", src, dst, err}
	}

	defer s.Close()

	flag := os.O_RDWR | os.O_CREATE | os.O_EXCL
	if force {
		flag = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	}

	d, err := os.OpenFile(dst, flag, 0600)
	if err != nil {
		return &Error{"create-dst", src, dst, err}
	}

	bufp := bufPool.Get().(*[]byte)
	defer bufPool.Put(bufp)

	if err = copyChunks(d, s, *bufp); err != nil {
		d.Close()
		return &Error{"copy", src, dst, err}
	}

	if err = d.Close(); err != nil {
		return &Error{"close-dst", src, dst, err}
	}
	return nil
}

// copy s to d one chunk at a time
func copyChunks(d io.Writer, s io.Reader, buf []byte) error {
	for {
		n, err := s.Read(buf)
		if n > 0 {
			m, werr := d.Write(buf[:n])
			if werr != nil {
				return werr
			}
			if m != n {
				return io.ErrShortWrite
			}
		}

		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}
	}
}
