package threadpool

import "sync"

type fifo[T any] []T

func (q *fifo[T]) Len() int { return len(*q) }

func (q *fifo[T]) Pop() T {
	old := *q
	var zero T
	x := old[0]
	old[0] = zero
	*q = old[1:]
	return x
}

func (q *fifo[T]) Push(t T) {
	*q = append(*q, t)
}

// Queue is an unbounded, strictly FIFO, blocking multi-producer/multi-consumer
// queue. The lock and the condition variable are private: callers only see
// Push and Pop, so nothing can hold the lock while running a job.
type Queue[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  fifo[T]
	closed bool
}

func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends v and wakes one waiting consumer.
// It returns false if the queue has been closed.
func (q *Queue[T]) Push(v T) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.items.Push(v)
	q.mu.Unlock()

	q.cond.Signal()
	return true
}

// Pop removes and returns the oldest item, blocking while the queue is empty.
// ok is false once the queue is closed.
func (q *Queue[T]) Pop() (v T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	// Wait can return without a matching Signal, so the condition is
	// re-checked every time.
	for q.items.Len() == 0 && !q.closed {
		q.cond.Wait()
	}
	if q.closed {
		return v, false
	}
	return q.items.Pop(), true
}

// TryPop is the non-blocking variant of Pop.
func (q *Queue[T]) TryPop() (v T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed || q.items.Len() == 0 {
		return v, false
	}
	return q.items.Pop(), true
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

// Close drops pending items and releases every blocked consumer.
// Closing twice is a no-op.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.items = nil
	q.mu.Unlock()

	q.cond.Broadcast()
}
