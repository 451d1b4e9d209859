package utils

import (
	"sync/atomic"
)

const QueueBufferSize = 16384

// Double-buffered queue over a single bounded array, for frontier-style
// two-phase iteration. While [outStart, outEnd) is being read, concurrent
// pushes land at [in, ...) and stay invisible until the next SlideWindow.
type SlidingQueue[T any] struct {
	shared   []T
	in       int64
	outStart int64
	outEnd   int64
}

func NewSlidingQueue[T any](capacity int64) *SlidingQueue[T] {
	return &SlidingQueue[T]{shared: make([]T, capacity)}
}

// Single-writer push. Concurrent producers go through a QueueBuffer instead.
func (q *SlidingQueue[T]) PushBack(t T) {
	q.shared[q.in] = t
	q.in++
}

func (q *SlidingQueue[T]) Empty() bool {
	return q.outStart == q.outEnd
}

func (q *SlidingQueue[T]) Reset() {
	q.outStart = 0
	q.outEnd = 0
	q.in = 0
}

func (q *SlidingQueue[T]) SlideWindow() {
	q.outStart = q.outEnd
	q.outEnd = atomic.LoadInt64(&q.in)
}

// The readable window. Valid until the next SlideWindow or Reset.
func (q *SlidingQueue[T]) Window() []T {
	return q.shared[q.outStart:q.outEnd]
}

// Index of the start of the current window within the backing array.
func (q *SlidingQueue[T]) WindowStart() int64 {
	return q.outStart
}

func (q *SlidingQueue[T]) Size() int64 {
	return q.outEnd - q.outStart
}

// Thread-local staging for concurrent pushes into a SlidingQueue. Flush
// reserves a range of the shared array with one fetch-and-add and bulk
// copies; no other synchronization is needed until the next SlideWindow.
type QueueBuffer[T any] struct {
	local []T
	queue *SlidingQueue[T]
}

func NewQueueBuffer[T any](q *SlidingQueue[T]) *QueueBuffer[T] {
	return &QueueBuffer[T]{local: make([]T, 0, QueueBufferSize), queue: q}
}

func (b *QueueBuffer[T]) PushBack(t T) {
	if len(b.local) == cap(b.local) {
		b.Flush()
	}
	b.local = append(b.local, t)
}

func (b *QueueBuffer[T]) Flush() {
	if len(b.local) == 0 {
		return
	}
	copyStart := atomic.AddInt64(&b.queue.in, int64(len(b.local))) - int64(len(b.local))
	copy(b.queue.shared[copyStart:], b.local)
	b.local = b.local[:0]
}
