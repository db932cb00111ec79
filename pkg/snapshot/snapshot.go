// Package snapshot serializes a list into a protobuf wire message:
//
//	message Snapshot {
//	  uint64 count = 1;
//	  repeated bytes elements = 2;
//	}
package snapshot

import (
	"errors"
	"fmt"

	"github.com/Asutorufa/dlist/pkg/list"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	countField    protowire.Number = 1
	elementsField protowire.Number = 2
)

var ErrCorrupt = errors.New("snapshot: corrupt data")

func Marshal[T any](l *list.List[T], c Codec[T]) ([]byte, error) {
	b := protowire.AppendTag(nil, countField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(l.Len()))

	for i, v := range l.All() {
		data, err := c.Encode(v)
		if err != nil {
			return nil, fmt.Errorf("encode element %d failed: %w", i, err)
		}
		b = protowire.AppendTag(b, elementsField, protowire.BytesType)
		b = protowire.AppendBytes(b, data)
	}

	return b, nil
}

func Unmarshal[T any](b []byte, c Codec[T]) (*list.List[T], error) {
	var (
		l        = list.New[T]()
		count    uint64
		hasCount bool
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == countField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %w", ErrCorrupt, protowire.ParseError(n))
			}
			count, hasCount = v, true
			b = b[n:]

		case num == elementsField && typ == protowire.BytesType:
			data, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %w", ErrCorrupt, protowire.ParseError(n))
			}
			v, err := c.Decode(data)
			if err != nil {
				return nil, fmt.Errorf("decode element %d failed: %w", l.Len(), err)
			}
			if err := l.Add(v); err != nil {
				return nil, fmt.Errorf("element %d: %w", l.Len(), err)
			}
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %w", ErrCorrupt, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	if hasCount && count != uint64(l.Len()) {
		return nil, fmt.Errorf("%w: count %d, got %d elements", ErrCorrupt, count, l.Len())
	}

	return l, nil
}
