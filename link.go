// link.go - hard link transfer
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

// LinkFile makes 'dst' a hard link to 'src'. No data is read or
// written. Both names must be on the same filesystem; this is only
// safe when the old and new on-disk page layouts are identical.
func LinkFile(dst, src string) error {
	if err := sys.link(dst, src); err != nil {
		return &Error{"link", src, dst, err}
	}
	return nil
}
