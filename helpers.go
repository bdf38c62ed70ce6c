package scheduler

import (
	"container/heap"
	"io"
	"log/slog"
)

func ternary[T any](condition bool, value1, value2 T) T {
	if condition {
		return value1
	}

	return value2
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// priorityQueue is a binary min-heap ordered by less.
type priorityQueue[T any] struct {
	items []T
	less  func(a, b T) bool
}

func (pq *priorityQueue[T]) Len() int { return len(pq.items) }

func (pq *priorityQueue[T]) Less(i, j int) bool { return pq.less(pq.items[i], pq.items[j]) }

func (pq *priorityQueue[T]) Swap(i, j int) { pq.items[i], pq.items[j] = pq.items[j], pq.items[i] }

func (pq *priorityQueue[T]) Push(x any) { pq.items = append(pq.items, x.(T)) }

func (pq *priorityQueue[T]) Pop() any {
	old := pq.items
	n := len(old)

	x := old[n-1]

	var zero T
	old[n-1] = zero

	pq.items = old[:n-1]

	return x
}

func newPriorityQueue[T any](less func(a, b T) bool, capacity int) *priorityQueue[T] {
	return &priorityQueue[T]{
		items: make([]T, 0, capacity),
		less:  less,
	}
}

func (pq *priorityQueue[T]) push(item T) {
	heap.Push(pq, item)
}

func (pq *priorityQueue[T]) pop() T {
	return heap.Pop(pq).(T)
}

func (pq *priorityQueue[T]) peek() T {
	return pq.items[0]
}

func (pq *priorityQueue[T]) empty() bool {
	return len(pq.items) == 0
}

// heapify establishes heap order over items appended directly.
func (pq *priorityQueue[T]) heapify() {
	heap.Init(pq)
}
