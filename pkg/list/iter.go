package list

import "iter"

// Iterator walks a list forward without changing it.
type Iterator[T any] struct {
	c *Cursor[T]
}

func (l *List[T]) Iterator() *Iterator[T] { return &Iterator[T]{c: l.Cursor()} }

func (it *Iterator[T]) HasNext() bool    { return it.c.HasNext() }
func (it *Iterator[T]) Next() (T, error) { return it.c.Next() }

// All yields index and value pairs from front to back.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for n := l.head.next; n != l.tail; n = n.next {
			if !yield(i, n.value) {
				return
			}
			i++
		}
	}
}

// Backward yields index and value pairs from back to front.
func (l *List[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := l.size - 1
		for n := l.tail.prev; n != l.head; n = n.prev {
			if !yield(i, n.value) {
				return
			}
			i--
		}
	}
}

func (l *List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range l.All() {
			if !yield(v) {
				return
			}
		}
	}
}

func (l *List[T]) Slice() []T {
	s := make([]T, 0, l.size)
	for v := range l.Values() {
		s = append(s, v)
	}
	return s
}
