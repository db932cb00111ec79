package badger

import (
	"testing"

	"github.com/Asutorufa/dlist/pkg/cache/cachetest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestBadger(t *testing.T) {
	c, err := New(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	cachetest.Run(t, c)
}

func TestBadgerInMemory(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	defer c.Close()

	sub := c.NewCache("lists")
	require.NoError(t, sub.Put([]byte("a"), []byte("1")))
	require.NoError(t, sub.(*Cache).Close())

	v, err := sub.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte("1"), v)
}

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(Collector("dlist")))
}
