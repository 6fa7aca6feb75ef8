package threadpool

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"go.uber.org/zap"

	srvErrors "github.com/tupyy/threadpool/pkg/errors"
)

type worker struct {
	id   string
	done chan struct{}
	// err is written by the worker goroutine before done is closed
	// and read only after done is closed.
	err error
}

func newWorker(n int) *worker {
	return &worker{
		id:   fmt.Sprintf("worker-%d", n),
		done: make(chan struct{}),
	}
}

// run is the worker loop. It returns on a terminate token, on a closed queue,
// or when a job panics. In the last case the worker is gone for good.
func (w *worker) run(q *Queue[Message], lockThread bool, onExit func(), log *zap.SugaredLogger) {
	if lockThread {
		// never unlocked: the thread is discarded together with the goroutine
		runtime.LockOSThread()
	}
	defer close(w.done)
	defer onExit()
	defer func() {
		if rec := recover(); rec != nil {
			w.err = srvErrors.NewWorkerPanicError(w.id, rec)
			log.Errorw("job panicked, worker stopped", "worker", w.id, "panic", rec, "stack", string(debug.Stack()))
		}
	}()

	log.Debugw("worker started", "worker", w.id)
	for {
		msg, ok := q.Pop()
		if !ok {
			log.Debugw("queue closed, worker stopped", "worker", w.id)
			return
		}

		switch msg.Kind {
		case MessageTerminate:
			log.Debugw("worker terminated", "worker", w.id)
			return
		case MessageJob:
			msg.Job()
		}
	}
}

// join blocks until the worker goroutine has exited and returns its failure, if any.
func (w *worker) join() error {
	<-w.done
	return w.err
}
