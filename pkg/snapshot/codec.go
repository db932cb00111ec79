package snapshot

import (
	"fmt"

	"google.golang.org/protobuf/proto"
)

// Codec converts list elements to and from bytes.
type Codec[T any] interface {
	Encode(T) ([]byte, error)
	Decode([]byte) (T, error)
}

type stringCodec struct{}

func (stringCodec) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (stringCodec) Decode(b []byte) (string, error) { return string(b), nil }

type bytesCodec struct{}

func (bytesCodec) Encode(b []byte) ([]byte, error) { return b, nil }
func (bytesCodec) Decode(b []byte) ([]byte, error) { return append([]byte{}, b...), nil }

var String Codec[string] = stringCodec{}

// protoCodec stores proto messages in their binary wire form.
type protoCodec[T interface {
	proto.Message
	*A
}, A any] struct{}

func (protoCodec[T, A]) Encode(m T) ([]byte, error) {
	return proto.MarshalOptions{Deterministic: true}.Marshal(m)
}

func (protoCodec[T, A]) Decode(b []byte) (T, error) {
	m := T(new(A))
	if err := proto.Unmarshal(b, m); err != nil {
		var zero T
		return zero, fmt.Errorf("unmarshal %T failed: %w", m, err)
	}
	return m, nil
}
