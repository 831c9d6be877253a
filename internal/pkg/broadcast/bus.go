// Package broadcast fans values out to every subscriber, either inside the
// process or across instances through redis pub/sub. Delivery is best effort:
// a subscriber whose buffer is full misses the value.
package broadcast

import (
	"context"
	"sync"
)

//go:generate mockgen -source=bus.go -destination=mock_bus.go -package=broadcast

type Bus[T any] interface {
	// Subscribe returns a channel of published values and a function that
	// unsubscribes and closes the channel.
	Subscribe() (<-chan T, func())

	Publish(ctx context.Context, v T) error
}

// fanout tracks the subscribers of a bus. start runs when the first
// subscriber arrives and stop when the last one leaves, both under the lock.
type fanout[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]chan T
	buffer int

	start func()
	stop  func()
}

func newFanout[T any](buffer int) *fanout[T] {
	return &fanout[T]{
		subs:   make(map[uint64]chan T),
		buffer: max(buffer, 1),
	}
}

func (f *fanout[T]) Subscribe() (<-chan T, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++

	ch := make(chan T, f.buffer)
	f.subs[id] = ch

	if len(f.subs) == 1 && f.start != nil {
		f.start()
	}

	var once sync.Once

	return ch, func() {
		once.Do(func() { f.unsubscribe(id) })
	}
}

func (f *fanout[T]) unsubscribe(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch, ok := f.subs[id]
	if !ok {
		return
	}

	delete(f.subs, id)
	close(ch)

	if len(f.subs) == 0 && f.stop != nil {
		f.stop()
	}
}

func (f *fanout[T]) deliver(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subs {
		select {
		case ch <- v:
		default:
		}
	}
}
