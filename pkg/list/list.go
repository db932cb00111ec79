// Package list implements a doubly linked list bounded by two sentinel
// nodes, and a cursor that can walk it in both directions and edit it at
// the position it last passed over.
//
// It is not thread safe.
package list

import (
	"fmt"
	"reflect"
	"strings"
)

type node[T any] struct {
	prev  *node[T]
	next  *node[T]
	value T
}

// List is a doubly linked list. The zero value is not usable, create one
// with New.
type List[T any] struct {
	// head and tail never carry a value
	head *node[T]
	tail *node[T]
	size int
}

func New[T any]() *List[T] {
	l := &List[T]{
		head: &node[T]{},
		tail: &node[T]{},
	}
	l.head.next = l.tail
	l.tail.prev = l.head
	return l
}

// Of returns a list holding vs in order.
func Of[T any](vs ...T) (*List[T], error) {
	l := New[T]()
	for _, v := range vs {
		if err := l.Add(v); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *List[T]) Len() int      { return l.size }
func (l *List[T]) IsEmpty() bool { return l.size == 0 }

func (l *List[T]) Get(index int) (T, error) {
	n, err := l.nth(index)
	if err != nil {
		var zero T
		return zero, err
	}
	return n.value, nil
}

// Insert puts v at position index, so that Get(index) returns v afterwards.
// index may equal Len, which appends.
func (l *List[T]) Insert(index int, v T) error {
	if isNil(v) {
		return nilValue("insert")
	}
	if index < 0 || index > l.size {
		return outOfRange(index, 0, l.size, true)
	}

	var at *node[T]
	switch {
	case index == 0:
		at = l.head.next
	case index == l.size:
		at = l.tail
	default:
		prev, err := l.nth(index - 1)
		if err != nil {
			return err
		}
		at = prev.next
	}

	l.linkBefore(at, v)
	return nil
}

// Add appends v before the tail sentinel.
func (l *List[T]) Add(v T) error {
	if isNil(v) {
		return nilValue("add")
	}
	l.linkBefore(l.tail, v)
	return nil
}

// Set replaces the element at index with v and returns the old element.
// The old node is spliced out and a new one takes its place.
func (l *List[T]) Set(index int, v T) (T, error) {
	var zero T
	if isNil(v) {
		return zero, nilValue("set")
	}
	old, err := l.nth(index)
	if err != nil {
		return zero, err
	}

	l.replace(old, v)
	return old.value, nil
}

func (l *List[T]) Remove(index int) (T, error) {
	n, err := l.nth(index)
	if err != nil {
		var zero T
		return zero, err
	}

	l.unlink(n)
	return n.value, nil
}

func (l *List[T]) Clear() {
	for n := l.head.next; n != l.tail; {
		next := n.next
		n.prev, n.next = nil, nil
		n = next
	}
	l.head.next = l.tail
	l.tail.prev = l.head
	l.size = 0
}

// Cursor returns a cursor placed before the first element.
func (l *List[T]) Cursor() *Cursor[T] {
	return &Cursor[T]{
		list:  l,
		left:  l.head,
		right: l.head.next,
	}
}

func (l *List[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for n := l.head.next; n != l.tail; n = n.next {
		if n != l.head.next {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, n.value)
	}
	sb.WriteByte(']')
	return sb.String()
}

// nth walks from the head. There is no shortcut from the tail side.
func (l *List[T]) nth(index int) (*node[T], error) {
	if index < 0 || index >= l.size {
		return nil, outOfRange(index, 0, l.size, false)
	}

	n := l.head
	for range index + 1 {
		n = n.next
	}
	return n, nil
}

// linkBefore splices a new node carrying v in front of at.
func (l *List[T]) linkBefore(at *node[T], v T) *node[T] {
	n := &node[T]{
		prev:  at.prev,
		next:  at,
		value: v,
	}
	at.prev.next = n
	at.prev = n
	l.size++
	return n
}

func (l *List[T]) unlink(n *node[T]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
	l.size--
}

// replace swaps old for a new node carrying v and returns the new node.
func (l *List[T]) replace(old *node[T], v T) *node[T] {
	n := &node[T]{
		prev:  old.prev,
		next:  old.next,
		value: v,
	}
	old.prev.next = n
	old.next.prev = n
	old.prev, old.next = nil, nil
	return n
}

func isNil[T any](v T) bool {
	x := any(v)
	if x == nil {
		return true
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
