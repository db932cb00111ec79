package snapshot

import (
	"testing"

	"github.com/Asutorufa/dlist/pkg/list"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestSnapshot(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		l, err := list.Of("0", "", "long value ✓")
		require.NoError(t, err)

		data, err := Marshal(l, String)
		require.NoError(t, err)

		got, err := Unmarshal(data, String)
		require.NoError(t, err)
		require.Equal(t, l.Slice(), got.Slice())
	})

	t.Run("empty", func(t *testing.T) {
		data, err := Marshal(list.New[string](), String)
		require.NoError(t, err)

		got, err := Unmarshal(data, String)
		require.NoError(t, err)
		require.True(t, got.IsEmpty())

		got, err = Unmarshal(nil, String)
		require.NoError(t, err)
		require.True(t, got.IsEmpty())
	})

	t.Run("bytes", func(t *testing.T) {
		l, err := list.Of([]byte{1, 2}, []byte{})
		require.NoError(t, err)

		data, err := Marshal(l, bytesCodec{})
		require.NoError(t, err)

		got, err := Unmarshal(data, bytesCodec{})
		require.NoError(t, err)
		require.Equal(t, 2, got.Len())
		v, err := got.Get(1)
		require.NoError(t, err)
		require.NotNil(t, v)
		require.Empty(t, v)
	})

	t.Run("proto", func(t *testing.T) {
		l, err := list.Of(wrapperspb.String("a"), wrapperspb.String("b"))
		require.NoError(t, err)

		codec := protoCodec[*wrapperspb.StringValue, wrapperspb.StringValue]{}
		data, err := Marshal(l, codec)
		require.NoError(t, err)

		got, err := Unmarshal(data, codec)
		require.NoError(t, err)
		require.Equal(t, 2, got.Len())
		for i, v := range got.All() {
			want, err := l.Get(i)
			require.NoError(t, err)
			require.True(t, proto.Equal(want, v))
		}
	})
}

func TestUnmarshalCorrupt(t *testing.T) {
	l, err := list.Of("a", "b")
	require.NoError(t, err)
	data, err := Marshal(l, String)
	require.NoError(t, err)

	t.Run("truncated", func(t *testing.T) {
		_, err := Unmarshal(data[:len(data)-1], String)
		require.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("count mismatch", func(t *testing.T) {
		b := protowire.AppendTag(nil, countField, protowire.VarintType)
		b = protowire.AppendVarint(b, 3)
		b = protowire.AppendTag(b, elementsField, protowire.BytesType)
		b = protowire.AppendBytes(b, []byte("a"))

		_, err := Unmarshal(b, String)
		require.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("unknown field", func(t *testing.T) {
		b := protowire.AppendTag(data, 9, protowire.BytesType)
		b = protowire.AppendBytes(b, []byte("ignored"))

		got, err := Unmarshal(b, String)
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b"}, got.Slice())
	})

	t.Run("bad element", func(t *testing.T) {
		b := protowire.AppendTag(nil, elementsField, protowire.BytesType)
		b = protowire.AppendBytes(b, []byte{0xff, 0xff})

		_, err := Unmarshal(b, protoCodec[*wrapperspb.StringValue, wrapperspb.StringValue]{})
		require.Error(t, err)
	})
}
