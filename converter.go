// converter.go - page converter capabilities
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

// PageSize is the size of an on-disk page in both the old and
// new storage trees.
const PageSize int = 4096

// Converter is a caller supplied page format converter. It is
// opaque to xfer; what it can do is discovered at call time by
// checking whether it implements FileConverter and/or
// PageConverter. A Converter that implements neither converts
// pages by copying them unmodified.
//
// NB: a typed nil pointer stored in a Converter is not nil.
type Converter interface{}

// FileConverter converts an entire relation file in one call.
type FileConverter interface {
	ConvertFile(dst, src string) error
}

// PageConverter converts one page in place. 'pg' is always
// exactly PageSize bytes.
type PageConverter interface {
	ConvertPage(pg []byte) error
}

// FileFunc adapts a function to a FileConverter
type FileFunc func(dst, src string) error

// ConvertFile calls f(dst, src)
func (f FileFunc) ConvertFile(dst, src string) error {
	return f(dst, src)
}

// PageFunc adapts a function to a PageConverter
type PageFunc func(pg []byte) error

// ConvertPage calls f(pg)
func (f PageFunc) ConvertPage(pg []byte) error {
	return f(pg)
}

var _ FileConverter = FileFunc(nil)
var _ PageConverter = PageFunc(nil)
