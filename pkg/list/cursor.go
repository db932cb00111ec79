package list

import "fmt"

type direction uint8

const (
	none direction = iota
	forward
	backward
)

func (d direction) String() string {
	switch d {
	case forward:
		return "forward"
	case backward:
		return "backward"
	default:
		return "none"
	}
}

// Cursor sits in the gap between two adjacent nodes of a List.
//
// Replace and Delete act on the element most recently returned by Next or
// Previous. They are only allowed after a move; Insert and Delete lock the
// cursor again until the next move.
//
// Changing the list through anything other than the cursor itself while
// the cursor is in use is not supported.
type Cursor[T any] struct {
	list *List[T]

	// left.next == right && right.prev == left
	left  *node[T]
	right *node[T]

	index   int
	last    direction
	mutable bool
}

func (c *Cursor[T]) HasNext() bool     { return c.right != c.list.tail }
func (c *Cursor[T]) HasPrevious() bool { return c.left != c.list.head }

// Next moves the gap one element to the right and returns the element it
// passed over.
func (c *Cursor[T]) Next() (T, error) {
	if !c.HasNext() {
		var zero T
		return zero, ErrNoSuchElement
	}

	c.left = c.right
	c.right = c.right.next
	c.index++
	c.last = forward
	c.mutable = true
	return c.left.value, nil
}

// Previous moves the gap one element to the left and returns the element it
// passed over.
func (c *Cursor[T]) Previous() (T, error) {
	if !c.HasPrevious() {
		var zero T
		return zero, ErrNoSuchElement
	}

	c.right = c.left
	c.left = c.left.prev
	c.index--
	c.last = backward
	c.mutable = true
	return c.right.value, nil
}

// NextIndex is the index of the element Next would return, or the list
// length at the end.
func (c *Cursor[T]) NextIndex() int { return c.index }

// PreviousIndex is the index of the element Previous would return, or -1 at
// the start.
func (c *Cursor[T]) PreviousIndex() int { return c.index - 1 }

// Insert puts v into the gap. The gap ends up after the new element, so a
// following Next is unaffected and Previous returns v.
func (c *Cursor[T]) Insert(v T) error {
	if isNil(v) {
		return nilValue("cursor insert")
	}

	c.left = c.list.linkBefore(c.right, v)
	c.index++
	c.mutable = false
	return nil
}

// Replace swaps the element last returned by Next or Previous for v.
func (c *Cursor[T]) Replace(v T) error {
	if isNil(v) {
		return nilValue("cursor replace")
	}
	if !c.mutable {
		return ErrIllegalState
	}

	switch c.last {
	case forward:
		c.left = c.list.replace(c.left, v)
	case backward:
		c.right = c.list.replace(c.right, v)
	default:
		return ErrIllegalState
	}
	return nil
}

// Delete removes the element last returned by Next or Previous.
func (c *Cursor[T]) Delete() error {
	if !c.mutable {
		return ErrIllegalState
	}

	switch c.last {
	case forward:
		n := c.left
		c.left = n.prev
		c.list.unlink(n)
		c.index--
	case backward:
		n := c.right
		c.right = n.next
		c.list.unlink(n)
	default:
		return ErrIllegalState
	}

	c.mutable = false
	return nil
}

func (c *Cursor[T]) String() string {
	return fmt.Sprintf("cursor{index: %d, last: %v, mutable: %v}", c.index, c.last, c.mutable)
}
