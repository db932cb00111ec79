package list

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIterator(t *testing.T) {
	l := mustOf(t, "a", "b", "c")
	it := l.Iterator()

	var got []string
	for it.HasNext() {
		v, err := it.Next()
		require.NoError(t, err)
		got = append(got, v)
	}
	require.Equal(t, []string{"a", "b", "c"}, got)

	_, err := it.Next()
	require.ErrorIs(t, err, ErrNoSuchElement)
	require.Equal(t, 3, l.Len())
}

func TestRange(t *testing.T) {
	l := mustOf(t, 10, 20, 30)

	var idx, vals []int
	for i, v := range l.All() {
		idx = append(idx, i)
		vals = append(vals, v)
	}
	require.Equal(t, []int{0, 1, 2}, idx)
	require.Equal(t, []int{10, 20, 30}, vals)

	idx, vals = nil, nil
	for i, v := range l.Backward() {
		idx = append(idx, i)
		vals = append(vals, v)
	}
	require.Equal(t, []int{2, 1, 0}, idx)
	require.Equal(t, []int{30, 20, 10}, vals)

	t.Run("break", func(t *testing.T) {
		var first []int
		for v := range l.Values() {
			first = append(first, v)
			if len(first) == 2 {
				break
			}
		}
		require.Equal(t, []int{10, 20}, first)

		for range l.Backward() {
			break
		}
	})

	t.Run("empty", func(t *testing.T) {
		e := New[int]()
		for range e.All() {
			t.Fatal("unexpected element")
		}
		require.Empty(t, e.Slice())
	})
}
