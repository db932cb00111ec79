package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)

	p.AddStoreSave(10)
	p.AddStoreSave(1000)
	p.AddStoreLoad(true)
	p.AddStoreLoad(false)
	p.AddStoreLoad(false)
	p.AddStoreDelete()
	p.AddShellCommand("add", true)

	require.Equal(t, float64(2), testutil.ToFloat64(p.TotalStoreSave))
	require.Equal(t, float64(1), testutil.ToFloat64(p.TotalStoreLoad.WithLabelValues("true")))
	require.Equal(t, float64(2), testutil.ToFloat64(p.TotalStoreLoad.WithLabelValues("false")))
	require.Equal(t, float64(1), testutil.ToFloat64(p.TotalStoreDelete))
	require.Equal(t, float64(1), testutil.ToFloat64(p.TotalCommand.WithLabelValues("add", "true")))

	n, err := testutil.GatherAndCount(reg, "dlist_store_save_size_bytes")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestEmpty(t *testing.T) {
	var m Metrics = &EmptyMetrics{}
	m.AddStoreSave(1)
	m.AddStoreLoad(true)
	m.AddStoreDelete()
	m.AddShellCommand("x", false)
}
