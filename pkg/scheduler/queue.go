package scheduler

// queue is a FIFO of pending work requests.
type queue[T any] []T

func (q *queue[T]) Len() int { return len(*q) }

func (q *queue[T]) Push(t T) {
	*q = append(*q, t)
}

func (q *queue[T]) Pop() T {
	old := *q
	x := old[0]
	var zero T
	old[0] = zero
	*q = old[1:]
	return x
}

func (q *queue[T]) Drain() []T {
	items := *q
	*q = nil
	return items
}
