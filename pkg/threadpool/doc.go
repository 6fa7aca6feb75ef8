// Package threadpool implements a fixed-size worker pool.
//
// A ThreadPool owns N long-lived workers that pull jobs from one shared
// queue and run them to completion. Work is submitted with Execute, which is
// fire-and-forget: no result or handle is returned.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                           ThreadPool                                │
//	│                                                                     │
//	│  ┌──────────────┐      ┌──────────────┐      ┌──────────────┐       │
//	│  │   worker-1   │      │   worker-2   │      │   worker-N   │       │
//	│  └──────────────┘      └──────────────┘      └──────────────┘       │
//	│         ▲                     ▲                     ▲               │
//	│         │ Pop()               │ Pop()               │ Pop()         │
//	│         └─────────────────────┼─────────────────────┘               │
//	│                               │                                     │
//	│  ┌────────────────────────────┴────────────────────────────┐        │
//	│  │                  Queue[Message] (FIFO)                  │        │
//	│  │  [job] [job] [job] ... [terminate] [terminate]          │        │
//	│  └─────────────────────────────────────────────────────────┘        │
//	│                               ▲                                     │
//	│                               │ Push()                              │
//	│                        Execute(job)                                 │
//	└─────────────────────────────────────────────────────────────────────┘
//
// # Queue
//
// Queue is an unbounded FIFO guarded by a mutex and a condition variable:
//
//   - Push appends an item and signals one waiting consumer
//   - Pop blocks while the queue is empty, re-checking the condition after
//     every wake-up, and never spins
//   - Close drops pending items and broadcasts to every waiting consumer
//
// The lock is never exposed, so no caller can hold it while a job runs.
//
// # Worker Lifecycle
//
//	┌───────────┐  terminate token / queue closed / job panic  ┌───────────┐
//	│  Running  │ ────────────────────────────────────────────►│  Stopped  │
//	└───────────┘                                              └───────────┘
//
// Each worker loops:
//
//	for {
//	    msg, ok := queue.Pop()     // blocks while empty
//	    if !ok { return }          // queue closed
//	    switch msg.Kind {
//	    case MessageTerminate:
//	        return
//	    case MessageJob:
//	        msg.Job()              // runs to completion
//	    }
//	}
//
// # Panicking Jobs
//
// A panic is not swallowed. The worker records a WorkerPanicError, logs the
// stack and exits. The pool keeps running with one worker less and never
// spawns a replacement. If every worker dies, queued jobs are never run.
// Shutdown reports the dead workers in its returned error.
//
// # Shutdown
//
// Shutdown:
//
//  1. Marks the pool closed; Execute now returns PoolClosedError
//  2. Pushes one terminate token per worker, behind every queued job
//  3. Joins every worker, including the ones that already died
//  4. Closes the queue and returns the joined worker failures
//
// Because the queue is FIFO and the tokens are pushed under the lock that
// Execute takes, every job accepted before Shutdown begins is run before the
// workers exit, as long as one worker is still alive.
//
// Shutdown is idempotent (uses sync.Once).
//
// # Usage Example
//
//	pool, err := threadpool.New(4)
//	if err != nil {
//	    return err
//	}
//	defer pool.Shutdown()
//
//	for i := range 100 {
//	    if err := pool.Execute(func() { process(i) }); err != nil {
//	        return err
//	    }
//	}
//
// Or scoped, with the pool shut down on every exit path:
//
//	err := threadpool.With(4, func(p *threadpool.ThreadPool) error {
//	    return p.Execute(func() { process(0) })
//	})
package threadpool
