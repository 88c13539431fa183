// batch.go - transfer many relation files concurrently
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
	"runtime"
	"slices"

	"github.com/opencoff/go-logger"
	"github.com/puzpuzpuz/xsync/v3"
)

// Job describes one relation file to transfer
type Job struct {
	Dst string
	Src string

	// optional page converter for this file
	Converter Converter
}

type batchopt struct {
	ncpu   int
	verify bool
	log    logger.Logger
}

// Option captures the various options for a Batch
type Option func(o *batchopt)

// WithConcurrency runs at most 'n' transfers at once; n <= 0 means
// one per CPU.
func WithConcurrency(n int) Option {
	return func(o *batchopt) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		o.ncpu = n
	}
}

// WithVerify verifies each transferred file with Verify(); files
// transferred with a converter are not verified.
func WithVerify(v bool) Option {
	return func(o *batchopt) {
		o.verify = v
	}
}

// WithLogger logs the outcome of every transfer to 'l'
func WithLogger(l logger.Logger) Option {
	return func(o *batchopt) {
		o.log = l
	}
}

// Batch transfers a set of relation files with a single Mode. Each
// file is transferred by Transfer() on a pool of workers; a failure
// of one file doesn't stop the others. Batch never retries.
type Batch struct {
	batchopt

	mode Mode

	// dst -> outcome of the transfer
	done *xsync.MapOf[string, error]
}

// NewBatch makes a new Batch that transfers files using 'mode'
func NewBatch(mode Mode, opts ...Option) *Batch {
	b := &Batch{
		batchopt: batchopt{
			ncpu: runtime.NumCPU(),
		},
		mode: mode,
		done: xsync.NewMapOf[string, error](),
	}

	for _, fp := range opts {
		fp(&b.batchopt)
	}
	return b
}

// Mode returns the transfer mode of this batch
func (b *Batch) Mode() Mode {
	return b.mode
}

// Run transfers every job and returns the errors of all failed
// transfers. Two jobs with the same destination are rejected before
// anything is transferred. Each call to Run discards the outcomes
// of the previous one; Run must not be called concurrently.
func (b *Batch) Run(jobs []Job) error {
	b.done.Clear()

	seen := make(map[string]bool, len(jobs))
	for i := range jobs {
		j := &jobs[i]
		if seen[j.Dst] {
			return fmt.Errorf("xfer: batch: duplicate destination %s", j.Dst)
		}
		seen[j.Dst] = true
	}

	wp := NewWorkPool[Job](b.ncpu, func(_ int, j Job) error {
		return b.transfer(j)
	})

	for _, j := range jobs {
		wp.Submit(j)
	}

	wp.Close()
	return wp.Wait()
}

func (b *Batch) transfer(j Job) (err error) {
	// a panicking converter still leaves an outcome for j.Dst
	defer func() {
		if r := recover(); r != nil {
			err = &Error{"transfer", j.Src, j.Dst, fmt.Errorf("panic: %v", r)}
		}

		b.done.Store(j.Dst, err)
		if b.log != nil {
			if err != nil {
				b.log.Info("%s %s: %s", b.mode, j.Src, err)
			} else {
				b.log.Debug("%s %s -> %s", b.mode, j.Src, j.Dst)
			}
		}
	}()

	err = Transfer(b.mode, j.Dst, j.Src, j.Converter)
	if err == nil && b.verify && j.Converter == nil {
		err = Verify(b.mode, j.Dst, j.Src)
	}
	return err
}

// Result returns the outcome of transferring to 'dst'; 'done' is
// false if no such transfer was attempted.
func (b *Batch) Result(dst string) (done bool, err error) {
	err, done = b.done.Load(dst)
	return done, err
}

// Range calls 'fp' for the outcome of every attempted transfer
// until 'fp' returns false.
func (b *Batch) Range(fp func(dst string, err error) bool) {
	b.done.Range(fp)
}

// Failed returns the sorted list of destinations that failed
func (b *Batch) Failed() []string {
	var v []string
	b.done.Range(func(dst string, err error) bool {
		if err != nil {
			v = append(v, dst)
		}
		return true
	})
	slices.Sort(v)
	return v
}
