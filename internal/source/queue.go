package source

import (
	"context"

	"streamplot.klederson.com/internal/stream"
)

// Queue hands samples from a decoding goroutine to the poll loop.
type Queue struct {
	ch chan stream.Sample
}

// NewQueue creates a queue holding up to size samples.
func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{ch: make(chan stream.Sample, size)}
}

// Push blocks until the sample is queued or ctx is done.
func (q *Queue) Push(ctx context.Context, smp stream.Sample) bool {
	select {
	case q.ch <- smp:
		return true
	case <-ctx.Done():
		return false
	}
}

// Next returns a queued sample without blocking.
func (q *Queue) Next() (stream.Sample, bool) {
	select {
	case smp := <-q.ch:
		return smp, true
	default:
		return stream.Sample{}, false
	}
}
