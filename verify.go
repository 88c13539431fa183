// verify.go - verify a transferred relation file
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
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/opencoff/go-mmap"
)

// Verify checks that 'dst' is a faithful result of transferring
// 'src' with 'mode': for Link both names must refer to the same
// file; for Copy and Clone the contents must be identical. It
// can't verify page converted files.
func Verify(mode Mode, dst, src string) error {
	si, err := os.Stat(src)
	if err != nil {
		return &Error{"stat-src", src, dst, err}
	}

	di, err := os.Stat(dst)
	if err != nil {
		return &Error{"stat-dst", src, dst, err}
	}

	switch mode {
	case Link:
		if !os.SameFile(si, di) {
			return &Error{"verify", src, dst, fmt.Errorf("%w: not the same file", ErrMismatch)}
		}
		return nil

	case Copy, Clone:

	default:
		return &Error{"verify", src, dst, fmt.Errorf("%w %d", ErrUnknownMode, int(mode))}
	}

	if si.Size() != di.Size() {
		return &Error{"verify", src, dst,
			fmt.Errorf("%w: size: exp %d, saw %d", ErrMismatch, si.Size(), di.Size())}
	}

	if si.Size() == 0 {
		return nil
	}

	if err = cmpFile(dst, src); err != nil {
		return &Error{"verify", src, dst, err}
	}
	return nil
}

// compare the mmap'd src against the bytes read from dst
func cmpFile(dst, src string) error {
	s, err := os.Open(src)
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := os.Open(dst)
	if err != nil {
		return err
	}
	defer d.Close()

	bufp := bufPool.Get().(*[]byte)
	defer bufPool.Put(bufp)

	buf := *bufp

	var off int64
	var mismatch error

	_, err = mmap.Reader(s, func(b []byte) error {
		for len(b) > 0 {
			n := min(len(b), len(buf))
			want, got := b[:n], buf[:n]

			if _, err := io.ReadFull(d, got); err != nil {
				return err
			}

			if !bytes.Equal(want, got) {
				mismatch = fmt.Errorf("%w at offset %d", ErrMismatch, off+int64(firstDiff(want, got)))
				return mismatch
			}

			b = b[n:]
			off += int64(n)
		}
		return nil
	})

	if mismatch != nil {
		return mismatch
	}
	return err
}

func firstDiff(a, b []byte) int {
	for i := range a {
		if a[i] != b[i] {
			return i
		}
	}
	return len(a)
}
