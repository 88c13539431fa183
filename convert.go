// convert.go - page by page conversion of a relation file
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
	"fmt"
	"io"
	"os"
)

// convertPages copies 'src' to a new file 'dst' one page at a time,
// passing each page through 'pc' (if non-nil). A trailing fragment
// smaller than a page is an error; 'dst' is left holding the pages
// converted so far.
func convertPages(dst, src string, pc PageConverter) (err error) {
	s, err := os.Open(src)
	if err != nil {
		return &Error{"open-src", src, dst, err}
	}

	defer s.Close()

	d, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return &Error{"create-dst", src, dst, err}
	}

	defer func() {
		if cerr := d.Close(); err == nil && cerr != nil {
			err = &Error{"close-dst", src, dst, cerr}
		}
	}()

	return pageLoop(d, s, dst, src, pc)
}

// pageLoop reads 's' a page at a time and writes each converted page
// to 'd'; 'dst' and 'src' name the two for errors.
func pageLoop(d io.Writer, s io.Reader, dst, src string, pc PageConverter) error {
	pg := make([]byte, PageSize)

	for pgno := 0; ; pgno++ {
		n, err := io.ReadFull(s, pg)
		switch {
		case err == io.EOF:
			return nil
		case err == io.ErrUnexpectedEOF:
			return &Error{"read", src, dst,
				fmt.Errorf("%w: page %d has %d bytes", ErrPartialPage, pgno, n)}
		case err != nil:
			return &Error{"read", src, dst, err}
		}

		if pc != nil {
			if err = pc.ConvertPage(pg); err != nil {
				return &Error{"convert-page", src, dst,
					fmt.Errorf("page %d: %w", pgno, err)}
			}
		}

		m, err := d.Write(pg)
		if err != nil || m != PageSize {
			if err == nil {
				err = io.ErrShortWrite
			}
			return &Error{"write", src, dst,
				fmt.Errorf("%w: page %d: %w", ErrShortPageWrite, pgno, err)}
		}
	}
}
