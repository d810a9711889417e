package queue

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrEmpty is returned by Pop when the wait elapses with no task available.
var ErrEmpty = errors.New("queue: empty")

// Queue is an unbounded FIFO of pending tasks. Safe for concurrent use by
// any number of producers and consumers.
type Queue struct {
	mu    sync.Mutex
	items []*Task

	// notify wakes at most one blocked consumer per push. Consumers that
	// lose the race re-check and continue waiting.
	notify chan struct{}
}

// New returns an empty Queue.
func New() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Push appends a task to the tail. Never blocks.
func (q *Queue) Push(t *Task) {
	q.mu.Lock()
	q.items = append(q.items, t)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Pop removes and returns the oldest task. It blocks until a task is
// available, wait elapses (ErrEmpty), or ctx is done (ctx.Err()).
func (q *Queue) Pop(ctx context.Context, wait time.Duration) (*Task, error) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		if t := q.take(); t != nil {
			return t, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
			return nil, ErrEmpty
		case <-q.notify:
			// Another consumer may have taken the item; loop and re-check.
		}
	}
}

func (q *Queue) take() *Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	t := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return t
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
