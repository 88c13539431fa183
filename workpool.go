// workpool.go - worker pool for concurrent transfers
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

// Workers are goroutines that accept work submitted via a channel
// and invoke a caller defined "work" function. The API is modeled
// after sync.WaitGroup:
//
//	pool := NewWorkPool[Job](n, func(i int, j Job) error {
//		.. process the work here
//		return nil
//	})
//
//	pool.Submit(j)
//	...
//	pool.Close()
//	err := pool.Wait()
//
// Wait() harvests the errors and ends all the worker goroutines.
// The pool can't be reused once Wait() returns.

package xfer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkPool is a fixed set of goroutines processing units of Work
type WorkPool[Work any] struct {
	stopped atomic.Bool
	wg      sync.WaitGroup
	ch      chan Work

	ech  chan error
	ewg  sync.WaitGroup
	errs []error
}

// ErrPoolClosed is the panic value when work is submitted to a
// closed pool or when a pool is closed twice.
var ErrPoolClosed = errors.New("workpool: workpool closed")

// NewWorkPool creates a pool of 'nworkers' goroutines that invoke 'fp'
// for each unit of work submitted via Submit(). 'nworkers' <= 0 means
// one worker per CPU.
func NewWorkPool[Work any](nworkers int, fp func(i int, w Work) error) *WorkPool[Work] {
	if nworkers <= 0 {
		nworkers = runtime.NumCPU()
	}

	wp := &WorkPool[Work]{
		ch:  make(chan Work, nworkers),
		ech: make(chan error, 1),
	}

	wp.wg.Add(nworkers)
	for i := 0; i < nworkers; i++ {
		go wp.worker(i, fp)
	}

	// harvest errors
	wp.ewg.Add(1)
	go func() {
		for e := range wp.ech {
			wp.errs = append(wp.errs, e)
		}
		wp.ewg.Done()
	}()

	return wp
}

func (wp *WorkPool[Work]) worker(i int, fp func(i int, w Work) error) {
	defer wp.wg.Done()

	for w := range wp.ch {
		if err := wp.run(i, w, fp); err != nil {
			wp.ech <- err
		}
	}
}

// a panicking worker must not take the pool down with it
func (wp *WorkPool[Work]) run(i int, w Work, fp func(i int, w Work) error) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("workpool: worker %d: panic: %v", i, e)
		}
	}()
	return fp(i, w)
}

// Wait waits for all workers to end and returns the errors from
// all the workers. Close() must be called before Wait().
func (wp *WorkPool[Work]) Wait() error {
	wp.wg.Wait()
	close(wp.ech)

	// wait for error harvestor to complete
	wp.ewg.Wait()
	if len(wp.errs) > 0 {
		return errors.Join(wp.errs...)
	}
	return nil
}

// Close ends work submission and signals the workers that there's
// no more work forthcoming.
func (wp *WorkPool[Work]) Close() {
	if wp.stopped.Swap(true) {
		panic(ErrPoolClosed)
	}
	close(wp.ch)
}

// Submit submits one unit of work to the pool
func (wp *WorkPool[Work]) Submit(w Work) {
	if wp.stopped.Load() {
		panic(ErrPoolClosed)
	}
	wp.ch <- w
}
