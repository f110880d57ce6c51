// Package queue implements growable ring buffer used for breadth-first traversals.
package queue

const minSize = 3

// Queue is a FIFO queue, size of the underlying buffer is always 2^n.
type Queue[T any] struct {
	items      []T
	mask       int
	head, tail int
}

// New creates a queue containing given items.
func New[T any](items ...T) *Queue[T] {
	mask := computeMask(len(items))
	q := &Queue[T]{items: make([]T, mask+1), mask: mask, tail: len(items)}
	copy(q.items, items)
	return q
}

func (q *Queue[T]) IsEmpty() bool {
	return q.head == q.tail
}

func (q *Queue[T]) Len() int {
	return (q.tail - q.head) & q.mask
}

// Append adds item to the end of the queue.
func (q *Queue[T]) Append(item T) *Queue[T] {
	q.items[q.tail] = item
	q.tail = (q.tail + 1) & q.mask
	if q.tail == q.head {
		q.grow()
	}
	return q
}

// First removes and returns the first item, the flag is false for empty queue.
func (q *Queue[T]) First() (T, bool) {
	var zero T
	if q.head == q.tail {
		return zero, false
	}

	res := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) & q.mask
	return res, true
}

// computeMask returns the least 2^n - 1 that can hold length items and one free slot.
func computeMask(length int) int {
	mask := minSize
	for mask < length {
		mask = mask<<1 | 1
	}
	return mask
}

func (q *Queue[T]) grow() {
	items := make([]T, (q.mask+1)<<1)
	n := copy(items, q.items[q.head:])
	copy(items[n:], q.items[:q.head])
	q.head = 0
	q.tail = q.mask + 1
	q.mask = q.mask<<1 | 1
	q.items = items
}
