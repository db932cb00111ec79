package list

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("list: invalid argument")
	ErrOutOfRange      = errors.New("list: index out of range")
	ErrNoSuchElement   = errors.New("list: no such element")
	ErrIllegalState    = errors.New("list: illegal state")
)

func outOfRange(index, lo, hi int, closed bool) error {
	end := ")"
	if closed {
		end = "]"
	}
	return fmt.Errorf("index %d out of range [%d, %d%s: %w", index, lo, hi, end, ErrOutOfRange)
}

func nilValue(op string) error {
	return fmt.Errorf("%s: nil value: %w", op, ErrInvalidArgument)
}
