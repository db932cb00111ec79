package badger

import (
	"github.com/dgraph-io/badger/v4/y"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collector exports the badger expvar counters that matter for list
// snapshots. Metrics are only populated when the db was opened by New.
func Collector(namespace string) prometheus.Collector {
	names := []string{
		"get_num_user",
		"get_with_result_num_user",
		"put_num_user",
		"write_bytes_user",
		"iterator_num_user",
		"size_bytes_lsm",
		"size_bytes_vlog",
		"compaction_current_num_lsm",
	}

	exports := make(map[string]*prometheus.Desc, len(names))
	for _, name := range names {
		key := y.BADGER_METRIC_PREFIX + name
		exports[key] = prometheus.NewDesc(
			namespace+"_"+key,
			"badger db metric "+key,
			nil, nil,
		)
	}
	return collectors.NewExpvarCollector(exports)
}
