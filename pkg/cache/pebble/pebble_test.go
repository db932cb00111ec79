package pebble

import (
	"testing"

	"github.com/Asutorufa/dlist/pkg/cache/cachetest"
	"github.com/stretchr/testify/require"
)

func TestPebble(t *testing.T) {
	c, err := New(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	cachetest.Run(t, c)
}

func TestUpperBound(t *testing.T) {
	require.Equal(t, []byte("b"), upperBound([]byte("a")))
	require.Equal(t, []byte("ab"), upperBound([]byte("aa")))
	require.Equal(t, []byte{0x02}, upperBound([]byte{0x01, 0xff}))
	require.Nil(t, upperBound([]byte{0xff}))
	require.Nil(t, upperBound(nil))
}
