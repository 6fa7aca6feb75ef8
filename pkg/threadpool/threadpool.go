package threadpool

import (
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	srvErrors "github.com/tupyy/threadpool/pkg/errors"
)

type options struct {
	name       string
	lockThread bool
}

type Option func(*options)

// WithName sets the name used for the pool's logger.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLockOSThread pins every worker goroutine to its own OS thread for the
// whole life of the worker.
func WithLockOSThread() Option {
	return func(o *options) {
		o.lockThread = true
	}
}

type ThreadPool struct {
	workers []*worker
	queue   *Queue[Message]
	alive   atomic.Int32
	log     *zap.SugaredLogger

	// mu orders Execute against the closing of the pool: once Shutdown holds
	// it, no job can be queued behind the terminate tokens.
	mu     sync.RWMutex
	closed bool

	once        sync.Once
	shutdownErr error
}

// New creates a pool with size workers, all started before it returns.
func New(size int, opts ...Option) (*ThreadPool, error) {
	if size < 1 {
		return nil, srvErrors.NewInvalidPoolSizeError(size)
	}

	o := options{name: "threadpool"}
	for _, opt := range opts {
		opt(&o)
	}

	p := &ThreadPool{
		workers: make([]*worker, 0, size),
		queue:   NewQueue[Message](),
		log:     zap.S().Named(o.name),
	}

	for i := range size {
		w := newWorker(i + 1)
		p.workers = append(p.workers, w)
		p.alive.Add(1)
		go w.run(p.queue, o.lockThread, func() { p.alive.Add(-1) }, p.log)
	}

	p.log.Infow("thread pool started", "workers", size, "lock_os_thread", o.lockThread)
	return p, nil
}

// Execute queues job for execution and returns without waiting for it.
func (p *ThreadPool) Execute(job Job) error {
	if job == nil {
		return srvErrors.NewInvalidJobError()
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return srvErrors.NewPoolClosedError()
	}
	p.queue.Push(jobMessage(job))
	return nil
}

// Shutdown stops accepting jobs, lets the workers drain every job queued so
// far, and waits for all of them to exit.
// The returned error joins the failures of workers that died on a panicking job.
// It is safe to call Shutdown more than once; later calls return the same result.
func (p *ThreadPool) Shutdown() error {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		for range p.workers {
			p.queue.Push(terminateMessage())
		}
		p.mu.Unlock()

		p.log.Debugw("shutting down thread pool", "workers", len(p.workers), "pending", p.queue.Len())

		var errs []error
		for _, w := range p.workers {
			if err := w.join(); err != nil {
				errs = append(errs, err)
			}
		}

		// Drops what dead workers left behind, including their unused terminate tokens.
		if left := p.queue.Len(); left > 0 {
			p.log.Warnw("dropping messages left in queue", "count", left)
		}
		p.queue.Close()

		p.shutdownErr = errors.Join(errs...)
		if p.shutdownErr != nil {
			p.log.Errorw("thread pool stopped with failed workers", "failed", len(errs), "error", p.shutdownErr)
			return
		}
		p.log.Infow("thread pool stopped", "workers", len(p.workers))
	})
	return p.shutdownErr
}

// Size returns the number of workers the pool was created with.
func (p *ThreadPool) Size() int {
	return len(p.workers)
}

// Alive returns the number of worker goroutines that have not exited yet.
func (p *ThreadPool) Alive() int {
	return int(p.alive.Load())
}

// Pending returns the number of messages waiting in the queue.
func (p *ThreadPool) Pending() int {
	return p.queue.Len()
}

// With runs fn against a new pool and shuts the pool down on every exit path
// of fn. A panic in fn is re-raised once the pool is down.
func With(size int, fn func(p *ThreadPool) error, opts ...Option) (err error) {
	p, err := New(size, opts...)
	if err != nil {
		return err
	}

	defer func() {
		rec := recover()
		err = errors.Join(err, p.Shutdown())
		if rec != nil {
			panic(rec)
		}
	}()

	return fn(p)
}
