package bus

import "sync"

// Queue is a serial task executor. Tasks submitted to one queue run in
// submission order, one at a time, on the queue's own goroutine. Each bus
// subscriber registers the queue its handler runs on, which gives every
// subscriber ordered delivery without blocking publishers.
type Queue struct {
	mu      sync.Mutex
	tasks   chan func()
	closed  bool
	done    chan struct{}
	inline  bool
	inlineM sync.Mutex
}

const defaultQueueDepth = 256

// NewQueue starts a serial queue with the default depth.
func NewQueue() *Queue {
	q := &Queue{
		tasks: make(chan func(), defaultQueueDepth),
		done:  make(chan struct{}),
	}
	go q.run()
	return q
}

// NewInlineQueue returns a queue that runs each task synchronously on the
// submitter's goroutine. Used by subscribers that need caller-thread
// delivery, and by tests.
func NewInlineQueue() *Queue {
	return &Queue{inline: true}
}

func (q *Queue) run() {
	defer close(q.done)
	for task := range q.tasks {
		task()
	}
}

// Submit enqueues a task. It never blocks the caller for the duration of
// the task; on an inline queue the task runs immediately. Submitting to a
// closed queue is a no-op.
func (q *Queue) Submit(task func()) {
	if q.inline {
		q.inlineM.Lock()
		defer q.inlineM.Unlock()
		task()
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.tasks <- task
}

// Close stops the queue after draining already-submitted tasks.
func (q *Queue) Close() {
	if q.inline {
		return
	}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.tasks)
	q.mu.Unlock()
	<-q.done
}
