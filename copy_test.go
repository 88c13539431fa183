// copy_test.go - file copy tests
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
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"
)

func TestCopyFile(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	src := filepath.Join(tmpdir, "file-a")
	dst := filepath.Join(tmpdir, "file-b")

	srcsum, err := createFile(src, 2*PageSize)
	assert(err == nil, "create %s: %s", src, err)

	err = CopyFile(dst, src, false)
	assert(err == nil, "copy %s to %s: %s", src, dst, err)

	dstsum, err := fileCksum(dst)
	assert(err == nil, "cksum %s: %s", dst, err)
	assert(byteEq(srcsum, dstsum), "cksum mismatch: %s", dst)

	fi, err := os.Stat(dst)
	assert(err == nil, "stat %s: %s", dst, err)
	assert(fi.Size() == int64(2*PageSize), "size: exp %d, saw %d", 2*PageSize, fi.Size())
}

func TestCopyFileSizes(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	sizes := []int{
		1,
		PageSize - 1,
		CopyChunkSize,
		CopyChunkSize + 1,
		3*CopyChunkSize + 17,
	}

	for _, sz := range sizes {
		src := filepath.Join(tmpdir, "src")
		dst := filepath.Join(tmpdir, "dst")

		srcsum, err := createFile(src, sz)
		assert(err == nil, "create %s: %s", src, err)

		err = CopyFile(dst, src, false)
		assert(err == nil, "%d: copy: %s", sz, err)

		dstsum, err := fileCksum(dst)
		assert(err == nil, "cksum %s: %s", dst, err)
		assert(byteEq(srcsum, dstsum), "%d: cksum mismatch", sz)

		os.Remove(src)
		os.Remove(dst)
	}
}

func TestCopyEmpty(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	src := filepath.Join(tmpdir, "empty")
	dst := filepath.Join(tmpdir, "empty-copy")

	err := os.WriteFile(src, nil, 0600)
	assert(err == nil, "create %s: %s", src, err)

	err = CopyFile(dst, src, false)
	assert(err == nil, "copy: %s", err)

	fi, err := os.Stat(dst)
	assert(err == nil, "stat: %s", err)
	assert(fi.Size() == 0, "size: exp 0, saw %d", fi.Size())
}

func TestCopyNoOverwrite(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	src := filepath.Join(tmpdir, "file-a")
	dst := filepath.Join(tmpdir, "file-b")

	_, err := createFile(src, PageSize)
	assert(err == nil, "create %s: %s", src, err)

	dstsum, err := createFile(dst, 100)
	assert(err == nil, "create %s: %s", dst, err)

	err = CopyFile(dst, src, false)
	assert(err != nil, "%s: bypassed overwrite protection", dst)
	assert(errors.Is(err, fs.ErrExist), "exp ErrExist, saw %s", err)

	var xe *Error
	assert(errors.As(err, &xe), "exp *Error, saw %T", err)
	assert(xe.Op == "create-dst", "op: exp create-dst, saw %s", xe.Op)

	sum, err := fileCksum(dst)
	assert(err == nil, "cksum %s: %s", dst, err)
	assert(byteEq(sum, dstsum), "%s: modified", dst)
}

func TestCopyForce(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	src := filepath.Join(tmpdir, "file-a")
	dst := filepath.Join(tmpdir, "file-b")

	srcsum, err := createFile(src, PageSize)
	assert(err == nil, "create %s: %s", src, err)

	// a longer file must not leave a tail behind
	_, err = createFile(dst, 3*PageSize)
	assert(err == nil, "create %s: %s", dst, err)

	err = CopyFile(dst, src, true)
	assert(err == nil, "forced copy: %s", err)

	dstsum, err := fileCksum(dst)
	assert(err == nil, "cksum %s: %s", dst, err)
	assert(byteEq(srcsum, dstsum), "cksum mismatch: %s", dst)
}

func TestCopyMissingSource(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	src := filepath.Join(tmpdir, "nonexistent")
	dst := filepath.Join(tmpdir, "file-b")

	for _, force := range []bool{false, true} {
		err := CopyFile(dst, src, force)
		assert(err != nil, "copy of missing file succeeded")
		assert(errors.Is(err, fs.ErrNotExist), "exp ErrNotExist, saw %s", err)
		assert(!exists(dst), "%s created for a missing source", dst)
	}
}

func TestCopyChunksShortWrite(t *testing.T) {
	assert := newAsserter(t)

	data := randbuf(make([]byte, 3*PageSize))
	buf := make([]byte, CopyChunkSize)

	w := &shortWriter{max: PageSize}
	err := copyChunks(w, bytes.NewReader(data), buf)
	assert(errors.Is(err, io.ErrShortWrite), "exp ErrShortWrite, saw %v", err)
	assert(w.n == PageSize, "exp %d bytes written, saw %d", PageSize, w.n)

	w = &shortWriter{err: errIO}
	err = copyChunks(w, bytes.NewReader(data), buf)
	assert(errors.Is(err, errIO), "exp write error, saw %v", err)
}

func TestCopyChunksReadError(t *testing.T) {
	assert := newAsserter(t)

	data := randbuf(make([]byte, 2*PageSize))
	buf := make([]byte, CopyChunkSize)

	w := &shortWriter{max: len(data)}
	err := copyChunks(w, io.MultiReader(bytes.NewReader(data), failReader{}), buf)
	assert(errors.Is(err, errIO), "exp read error, saw %v", err)
	assert(w.n == len(data), "exp %d bytes before the error, saw %d", len(data), w.n)
}

func TestCopyDirSource(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skipf("reading a directory is not EISDIR on %s", runtime.GOOS)
	}

	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	src := filepath.Join(tmpdir, "dir")
	dst := filepath.Join(tmpdir, "file-b")
	assert(os.Mkdir(src, 0700) == nil, "mkdir %s", src)

	err := CopyFile(dst, src, false)
	assert(err != nil, "copy of a directory succeeded")
	assert(errors.Is(err, syscall.EISDIR), "exp EISDIR, saw %v", err)

	var xe *Error
	assert(errors.As(err, &xe), "exp *Error, saw %T", err)
	assert(xe.Op == "copy", "exp op copy, saw %s", xe.Op)
}
