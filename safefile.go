// safefile.go - private files that are atomically committed
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
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

// SafeFile is an io.WriteCloser which writes to a private temporary
// file that is atomically renamed when there are no errors and the
// caller invokes Close(). The recommended usage is:
//
//	sf, err := NewSafeFile(...)
//	... error handling
//
//	defer sf.Abort()
//
//	... write to sf ..
//	sf.Close()
//
// It is safe to call Abort on a closed SafeFile; the first call
// to Close() or Abort() seals the outcome.
type SafeFile struct {
	*os.File

	// error for writes recorded once
	err  error
	name string // actual filename

	// tracks the state of this file:
	//  < 0 => aborted
	//  > 0 => closed
	//  = 0 => open and active
	closed atomic.Int64
}

var _ io.WriteCloser = &SafeFile{}

// ErrAborted is returned by Close() after Abort()
var ErrAborted = errors.New("safefile: aborted; file not committed")

// NewSafeFile creates a new private temporary file that would either
// be aborted or renamed to 'nm'. If 'overwrite' is false and 'nm'
// exists, NewSafeFile fails.
func NewSafeFile(nm string, overwrite bool) (*SafeFile, error) {
	if st, err := os.Lstat(nm); err == nil {
		if !overwrite {
			return nil, fmt.Errorf("safefile: won't overwrite existing %s", nm)
		}

		if !st.Mode().IsRegular() {
			return nil, fmt.Errorf("safefile: %s is not a regular file", nm)
		}
	}

	tmp := fmt.Sprintf("%s.tmp.%d.%x", nm, os.Getpid(), randU32())
	fd, err := CreatePrivate(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("safefile: %w", err)
	}

	sf := &SafeFile{
		File: fd,
		name: nm,
	}
	return sf, nil
}

func (sf *SafeFile) isOpen() bool {
	return sf.closed.Load() == 0
}

// Write writes everything in 'b' unless a previous write failed or
// the file was already closed.
func (sf *SafeFile) Write(b []byte) (int, error) {
	if sf.err != nil {
		return 0, sf.err
	}

	if !sf.isOpen() {
		return 0, fmt.Errorf("safefile: %s is not open", sf.Name())
	}

	var n int
	if n, sf.err = sf.File.Write(b); sf.err != nil {
		sf.err = fmt.Errorf("safefile: %w", sf.err)
	}
	return n, sf.err
}

// Abort the file write and remove any temporary artifacts
func (sf *SafeFile) Abort() {
	if !sf.isOpen() {
		return
	}

	sf.File.Close()
	os.Remove(sf.Name())
	sf.closed.Store(-1)
}

// Close flushes all file data & metadata to disk, closes the file and
// atomically renames the temp file to the actual file - ONLY if there
// were no intervening errors.
func (sf *SafeFile) Close() error {
	if sf.err != nil {
		sf.Abort()
		return sf.err
	}

	switch n := sf.closed.Load(); {
	case n < 0:
		return ErrAborted
	case n > 0:
		return nil
	}

	if sf.err = sf.Sync(); sf.err != nil {
		sf.Abort()
		return sf.err
	}

	if sf.err = sf.File.Close(); sf.err != nil {
		os.Remove(sf.Name())
		sf.closed.Store(-1)
		return sf.err
	}

	if sf.err = os.Rename(sf.Name(), sf.name); sf.err != nil {
		os.Remove(sf.Name())
		sf.closed.Store(-1)
		return sf.err
	}

	sf.closed.Store(1)
	return nil
}

func randU32() uint32 {
	var b [4]byte

	_, err := io.ReadFull(rand.Reader, b[:])
	if err != nil {
		panic(fmt.Sprintf("can't read 4 rand bytes: %s", err))
	}

	return binary.LittleEndian.Uint32(b[:])
}
