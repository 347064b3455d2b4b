// Copyright (c) 2018 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the MIT license

package queue

import (
	"sync"

	"github.com/ergochat/ircwire/irc/utils"
)

const (
	initialSize = 16
)

// Queue is a FIFO ring buffer that grows as needed. If it was created with
// a positive limit, pushing onto a full queue evicts the oldest item.
// It is safe for concurrent use.
type Queue[T any] struct {
	sync.Mutex

	// ring buffer: start is the oldest item, end is one past the newest,
	// start == -1 means empty, start == end means full
	buffer []T
	start  int
	end    int

	limit int
}

// NewQueue returns a new queue; limit <= 0 means unbounded.
func NewQueue[T any](limit int) (result *Queue[T]) {
	result = new(Queue[T])
	result.Initialize(limit)
	return
}

// Initialize empties the queue and sets its limit; limit <= 0 means unbounded.
func (q *Queue[T]) Initialize(limit int) {
	if limit < 0 {
		limit = 0
	}
	size := initialSize
	if 0 < limit && limit < size {
		size = limit
	}
	q.buffer = make([]T, size)
	q.start = -1
	q.end = -1
	q.limit = limit
}

// Push appends an item. If the queue is bounded and full, the oldest item
// is discarded and returned.
func (q *Queue[T]) Push(item T) (evicted T, wasEvicted bool) {
	q.Lock()
	defer q.Unlock()

	if q.start == q.end && q.start != -1 { // full
		if q.limit == 0 || len(q.buffer) < q.limit {
			q.grow()
		} else {
			evicted = q.buffer[q.start]
			wasEvicted = true
			q.buffer[q.end] = item
			q.end = (q.end + 1) % len(q.buffer)
			q.start = q.end
			return
		}
	}

	var pos int
	if q.start == -1 { // empty
		pos = 0
		q.start = 0
		q.end = 1 % len(q.buffer)
	} else { // partially full
		pos = q.end
		q.end = (q.end + 1) % len(q.buffer)
	}
	q.buffer[pos] = item
	return
}

// Pop removes and returns the oldest item.
func (q *Queue[T]) Pop() (item T, ok bool) {
	q.Lock()
	defer q.Unlock()

	if q.start == -1 {
		return
	}

	var zero T
	item, ok = q.buffer[q.start], true
	q.buffer[q.start] = zero // don't retain popped items
	q.start = (q.start + 1) % len(q.buffer)
	if q.start == q.end {
		q.start = -1
		q.end = -1
	}
	return
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.Lock()
	defer q.Unlock()
	return q.length()
}

func (q *Queue[T]) length() int {
	if q.start == -1 {
		return 0
	} else if q.start < q.end {
		return q.end - q.start
	} else {
		return len(q.buffer) - (q.start - q.end)
	}
}

// grow doubles the buffer (up to the limit), unrolling the ring so that the
// oldest item lands at index 0. Caller must hold the lock and the queue must
// be full.
func (q *Queue[T]) grow() {
	newBuffer := make([]T, utils.GrowBufferSize(len(q.buffer), q.limit))
	initialSegment := copy(newBuffer, q.buffer[q.start:])
	copy(newBuffer[initialSegment:], q.buffer[:q.end])
	count := len(q.buffer)
	q.buffer = newBuffer
	q.start = 0
	q.end = count % len(q.buffer)
}
