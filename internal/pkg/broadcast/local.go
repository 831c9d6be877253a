package broadcast

import "context"

type local[T any] struct {
	*fanout[T]
}

// NewLocal returns a bus that only reaches subscribers of this process.
func NewLocal[T any](buffer int) Bus[T] {
	return &local[T]{fanout: newFanout[T](buffer)}
}

func (l *local[T]) Publish(_ context.Context, v T) error {
	l.deliver(v)
	return nil
}
