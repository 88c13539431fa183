// utils_test.go -- test helpers for xfer

package xfer

import (
	crand "crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/opencoff/go-mmap"
)

var testDir = flag.String("testdir", "", "Use 'T' as the testdir for file I/O tests")

func newAsserter(t *testing.T) func(cond bool, msg string, args ...interface{}) {
	return func(cond bool, msg string, args ...interface{}) {
		if cond {
			return
		}

		_, file, line, ok := runtime.Caller(1)
		if !ok {
			file = "???"
			line = 0
		}

		s := fmt.Sprintf(msg, args...)
		t.Fatalf("\n%s: %d: Assertion failed: %s\n", file, line, s)
	}
}

// getTmpdir returns a per-test scratch dir; -testdir puts it on a
// specific filesystem (eg a btrfs mount to exercise clones).
func getTmpdir(t *testing.T) string {
	assert := newAsserter(t)
	tmpdir := t.TempDir()

	if len(*testDir) > 0 {
		tmpdir = filepath.Join(*testDir, t.Name())
		err := os.MkdirAll(tmpdir, 0700)
		assert(err == nil, "mkdir %s: %s", tmpdir, err)
		t.Logf("Using %s as test dir .. \n", tmpdir)
		t.Cleanup(func() {
			t.Logf("cleaning up %s ..\n", tmpdir)
			os.RemoveAll(tmpdir)
		})
	}
	return tmpdir
}

// swap the platform for the duration of the test
func withPlatform(t *testing.T, p platform) {
	old := sys
	sys = p
	t.Cleanup(func() {
		sys = old
	})
}

// fakePlatform fails link/clone with a canned error
type fakePlatform struct {
	linkErr  error
	cloneErr error
	noClone  bool

	clones int
}

func (p *fakePlatform) link(dst, src string) error {
	if p.linkErr != nil {
		return p.linkErr
	}
	return os.Link(src, dst)
}

func (p *fakePlatform) clone(dst, src *os.File) error {
	p.clones++
	if p.cloneErr != nil {
		return p.cloneErr
	}
	_, err := dst.ReadFrom(src)
	return err
}

func (p *fakePlatform) canClone() bool {
	return !p.noClone
}

func (p *fakePlatform) String() string {
	return "fake"
}

var _ platform = &fakePlatform{}

func byteEq(a, b []byte) bool {
	return 1 == subtle.ConstantTimeCompare(a, b)
}

func cksum(b []byte) []byte {
	h := sha256.New()
	h.Write(b)
	return h.Sum(nil)[:]
}

func fileCksum(nm string) ([]byte, error) {
	fd, err := os.Open(nm)
	if err != nil {
		return nil, err
	}

	defer fd.Close()
	h := sha256.New()
	_, err = mmap.Reader(fd, func(b []byte) error {
		h.Write(b)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return h.Sum(nil)[:], nil
}

// create a file of 'sz' random bytes and return its checksum
func createFile(nm string, sz int) ([]byte, error) {
	b := randbuf(make([]byte, sz))
	if err := os.WriteFile(nm, b, 0600); err != nil {
		return nil, err
	}
	return cksum(b), nil
}

// create a file of 'npages' pages; each page is filled with its
// page number.
func createPages(nm string, npages int, tail int) error {
	b := make([]byte, 0, npages*PageSize+tail)
	for i := 0; i < npages; i++ {
		b = append(b, pageOf(byte(i))...)
	}
	b = append(b, make([]byte, tail)...)
	return os.WriteFile(nm, b, 0600)
}

func pageOf(v byte) []byte {
	pg := make([]byte, PageSize)
	for i := range pg {
		pg[i] = v
	}
	return pg
}

func exists(nm string) bool {
	_, err := os.Lstat(nm)
	return err == nil
}

func randbuf(b []byte) []byte {
	n, err := crand.Read(b)
	if err != nil || n != len(b) {
		panic(fmt.Sprintf("can't read %d bytes of crypto/rand: %s", len(b), err))
	}
	return b
}

var errIO = errors.New("injected I/O error")

// shortWriter accepts at most max bytes per Write, or fails with err
type shortWriter struct {
	max int
	err error
	n   int
}

func (w *shortWriter) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n := min(len(b), w.max)
	w.n += n
	return n, nil
}

// failReader always fails with errIO
type failReader struct{}

func (failReader) Read([]byte) (int, error) {
	return 0, errIO
}
