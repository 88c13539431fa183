// transfer.go - transfer a relation file from the old tree to the new
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
	"strings"
)

// Mode is the strategy used to transfer relation files; it is
// chosen once for an entire upgrade run.
type Mode int

const (
	Copy  Mode = iota // full byte copy
	Clone             // copy-on-write clone
	Link              // hard link
)

var modeNames = map[Mode]string{
	Copy:  "copy",
	Clone: "clone",
	Link:  "link",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode-%d", int(m))
}

// ParseMode returns the Mode named by 's' (case insensitive)
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, nm := range modeNames {
		if nm == s {
			return m, nil
		}
	}
	return Copy, fmt.Errorf("xfer: %w '%s'", ErrUnknownMode, s)
}

// Transfer moves the relation file 'src' in the old tree to 'dst'
// in the new tree.
//
// With a nil converter Transfer dispatches on 'mode' to CopyFile
// (never forced), CloneFile or LinkFile. A non-nil converter means
// the page layout changed; this is only possible in Copy mode and
// any other mode fails with ErrModeConflict before touching the
// filesystem. If 'cnv' is a FileConverter its result is returned
// as-is; otherwise the file is converted one page at a time via
// the optional PageConverter.
//
// A non-nil error means 'dst' can't be trusted.
func Transfer(mode Mode, dst, src string, cnv Converter) error {
	if cnv == nil {
		switch mode {
		case Copy:
			return CopyFile(dst, src, false)
		case Clone:
			return CloneFile(dst, src)
		case Link:
			return LinkFile(dst, src)
		default:
			return &Error{"transfer", src, dst, fmt.Errorf("%w %d", ErrUnknownMode, int(mode))}
		}
	}

	if mode != Copy {
		return &Error{mode.String(), src, dst, ErrModeConflict}
	}

	if fc, ok := cnv.(FileConverter); ok {
		return fc.ConvertFile(dst, src)
	}

	pc, _ := cnv.(PageConverter)
	return convertPages(dst, src, pc)
}
