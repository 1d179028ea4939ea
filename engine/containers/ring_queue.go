package containers

import "errors"

var ErrQueueEmpty = errors.New("queue is empty")

const defaultQueueSize = 16

// Queue is a FIFO ring buffer that grows when full.
// It is not safe for concurrent use.
type Queue[T any] struct {
	data       []T
	readIndex  int
	writeIndex int
	count      int
}

// Create a new Queue with room for size elements before the first grow
func NewQueue[T any](size int) *Queue[T] {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Queue[T]{
		data: make([]T, size),
	}
}

// Enqueue adds an element at the tail of the queue
func (q *Queue[T]) Enqueue(value T) {
	if q.count == len(q.data) {
		q.grow()
	}
	q.data[q.writeIndex] = value
	q.writeIndex = (q.writeIndex + 1) % len(q.data)
	q.count++
}

// Dequeue removes and returns the front element in the queue
func (q *Queue[T]) Dequeue() (T, error) {
	var zero T
	if q.IsEmpty() {
		return zero, ErrQueueEmpty
	}
	value := q.data[q.readIndex]
	// release the reference so the element can be collected
	q.data[q.readIndex] = zero
	q.readIndex = (q.readIndex + 1) % len(q.data)
	q.count--
	return value, nil
}

// Clear drops every element and returns how many were dropped
func (q *Queue[T]) Clear() int {
	n := q.count
	clear(q.data)
	q.readIndex = 0
	q.writeIndex = 0
	q.count = 0
	return n
}

func (q *Queue[T]) Len() int {
	return q.count
}

// IsEmpty checks if the queue is empty
func (q *Queue[T]) IsEmpty() bool {
	return q.count == 0
}

func (q *Queue[T]) grow() {
	data := make([]T, len(q.data)*2)
	// unroll so that the head sits at index 0
	n := copy(data, q.data[q.readIndex:])
	copy(data[n:], q.data[:q.readIndex])
	q.data = data
	q.readIndex = 0
	q.writeIndex = q.count
}
