package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/Asutorufa/dlist/pkg/cache"
	"github.com/Asutorufa/dlist/pkg/cache/memory"
	"github.com/Asutorufa/dlist/pkg/list"
	"github.com/Asutorufa/dlist/pkg/snapshot"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store[string] {
	t.Helper()
	return New(memory.NewMemoryCache().NewCache("lists"), snapshot.String)
}

func TestStore(t *testing.T) {
	s := newStore(t)

	l, err := list.Of("0", "1", "2")
	require.NoError(t, err)
	require.NoError(t, s.Save("todo", l))

	got, err := s.Load("todo")
	require.NoError(t, err)
	require.Equal(t, []string{"0", "1", "2"}, got.Slice())

	// loaded lists are independent copies
	require.NoError(t, got.Add("3"))
	again, err := s.Load("todo")
	require.NoError(t, err)
	require.Equal(t, 3, again.Len())

	_, err = s.Load("missing")
	require.ErrorIs(t, err, ErrNotFound)

	names, err := s.Names()
	require.NoError(t, err)
	require.Equal(t, []string{"todo"}, names)

	require.NoError(t, s.Delete("todo"))
	_, err = s.Load("todo")
	require.ErrorIs(t, err, ErrNotFound)

	names, err = s.Names()
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestStoreNames(t *testing.T) {
	s := newStore(t)
	l := list.New[string]()

	for _, name := range []string{"", "a/b"} {
		require.ErrorIs(t, s.Save(name, l), ErrInvalidName)
		_, err := s.Load(name)
		require.ErrorIs(t, err, ErrInvalidName)
		require.ErrorIs(t, s.Delete(name), ErrInvalidName)
	}
}

func TestSaveAll(t *testing.T) {
	s := newStore(t)

	a, err := list.Of("a1", "a2")
	require.NoError(t, err)
	b, err := list.Of("b1")
	require.NoError(t, err)

	require.NoError(t, s.SaveAll(map[string]*list.List[string]{"b": b, "a": a}))

	names, err := s.Names()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, names)

	got, err := s.Load("b")
	require.NoError(t, err)
	require.Equal(t, []string{"b1"}, got.Slice())

	err = s.SaveAll(map[string]*list.List[string]{"ok": a, "bad/name": b})
	require.ErrorIs(t, err, ErrInvalidName)
	_, err = s.Load("ok")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRaw(t *testing.T) {
	s := newStore(t)
	l, err := list.Of("x")
	require.NoError(t, err)
	require.NoError(t, s.Save("x", l))

	data, err := s.Raw("x")
	require.NoError(t, err)

	require.NoError(t, s.PutRaw("copy", data))
	got, err := s.Load("copy")
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, got.Slice())

	require.ErrorIs(t, s.PutRaw("broken", []byte{0x0a}), snapshot.ErrCorrupt)

	_, err = s.Raw("nothing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadCorrupt(t *testing.T) {
	c := memory.NewMemoryCache()
	require.NoError(t, c.Put([]byte("bad"), []byte{0x0a}))

	_, err := New(cache.Cache(c), snapshot.String).Load("bad")
	require.ErrorIs(t, err, snapshot.ErrCorrupt)
}

type failCache struct {
	cache.MockCache
}

var errFail = errors.New("fail")

func (failCache) Get([]byte) ([]byte, error) { return nil, errFail }

func TestLoadError(t *testing.T) {
	_, err := New[string](&failCache{}, snapshot.String).Load("x")
	require.ErrorIs(t, err, errFail)
}

func TestConcurrentLoad(t *testing.T) {
	s := newStore(t)
	l, err := list.Of("a", "b")
	require.NoError(t, err)
	require.NoError(t, s.Save("shared", l))

	var wg sync.WaitGroup
	results := make([]*list.List[string], 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.Load("shared")
			if err == nil {
				results[i] = got
			}
		}()
	}
	wg.Wait()

	for _, r := range results {
		require.NotNil(t, r)
		require.Equal(t, []string{"a", "b"}, r.Slice())
	}
}
