// errors.go - descriptive errors for xfer
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
	"errors"
	"fmt"
)

// Error represents the errors returned by Transfer and the
// individual transfer engines: CopyFile, CloneFile, LinkFile.
// The OS error (if any) is preserved in the chain; callers can
// use errors.Is() to test for specific errno values.
type Error struct {
	Op  string
	Src string
	Dst string
	Err error
}

// Error returns a string representation of Error
func (e *Error) Error() string {
	return fmt.Sprintf("xfer: %s '%s' '%s': %s",
		e.Op, e.Src, e.Dst, e.Err.Error())
}

// Unwrap returns the underlying wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// ProbeError is returned when a capability probe fails. A probe
// failure means the old and new storage trees can't support the
// requested transfer mode at all; callers must abandon the run.
type ProbeError struct {
	Op       string // what was attempted
	Existing string // file in the old tree
	Test     string // probe artifact in the new tree
	Hint     string
	Err      error
}

// Error returns a string representation of ProbeError
func (e *ProbeError) Error() string {
	return fmt.Sprintf("could not %s between old and new data directories: %s\n%s",
		e.Op, e.Err.Error(), e.Hint)
}

// Unwrap returns the underlying wrapped error
func (e *ProbeError) Unwrap() error {
	return e.Err
}

var _ error = &Error{}
var _ error = &ProbeError{}

var (
	// ErrNotSupported is returned when the platform or the filesystem
	// can't clone files.
	ErrNotSupported = errors.New("system does not support file cloning")

	// ErrModeConflict is returned when a page converter is supplied
	// with an in-place transfer mode (Clone or Link).
	ErrModeConflict = errors.New("cannot in-place update this cluster, page-by-page (copy-mode) conversion is required")

	// ErrPartialPage is returned when the source of a page-by-page
	// conversion ends with a fragment smaller than PageSize.
	ErrPartialPage = errors.New("found partial page in source file")

	// ErrShortPageWrite is returned when a converted page could not be
	// written in full.
	ErrShortPageWrite = errors.New("could not write new page to destination")

	// ErrUnknownMode is returned for a transfer mode outside of
	// Copy, Clone, Link.
	ErrUnknownMode = errors.New("unknown transfer mode")

	// ErrMismatch is returned by Verify when the destination doesn't
	// match the source.
	ErrMismatch = errors.New("destination does not match source")
)

// return true if err matches any of the errors in 'errs'
func errAny(err error, errs ...error) bool {
	for _, e := range errs {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
