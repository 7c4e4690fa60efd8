package transmit

import (
	"container/list"
	"context"
	"sync"
)

// Queue is an unbounded FIFO of Requests with pause/resume. Pause
// suppresses Dequeue without draining the queue or reordering enqueues.
type Queue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	items    *list.List
	paused   bool
	closed   bool
}

// NewQueue returns an empty, running Queue.
func NewQueue() *Queue {
	q := &Queue{items: list.New()}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends req to the tail and wakes one waiting consumer. Enqueue
// always succeeds, paused or not.
func (q *Queue) Enqueue(req Request) {
	q.mu.Lock()
	q.items.PushBack(req)
	q.mu.Unlock()
	q.cond.Signal()
}

// Dequeue blocks until a request is available, the queue is paused, ctx
// is cancelled, or the queue is closed, whichever comes first. It
// returns ok=false on timeout, cancellation, pause, or close.
func (q *Queue) Dequeue(ctx context.Context) (req Request, ok bool) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			q.mu.Lock()
			q.cond.Broadcast()
			q.mu.Unlock()
		case <-done:
		}
	}()
	defer close(done)

	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		if q.closed {
			return Request{}, false
		}
		if q.paused {
			return Request{}, false
		}
		if front := q.items.Front(); front != nil {
			q.items.Remove(front)
			return front.Value.(Request), true
		}
		if ctx.Err() != nil {
			return Request{}, false
		}
		q.cond.Wait()
	}
}

// Pause suppresses Dequeue. Already-queued requests are preserved.
func (q *Queue) Pause() {
	q.mu.Lock()
	q.paused = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Resume clears the paused flag and wakes a waiting consumer.
func (q *Queue) Resume() {
	q.mu.Lock()
	q.paused = false
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Paused reports whether the queue is currently paused.
func (q *Queue) Paused() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.paused
}

// Size returns the observed queue length. Advisory only: it can be stale
// the instant it's read.
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

// Close unblocks any waiting Dequeue permanently. Queued requests are
// dropped.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}
