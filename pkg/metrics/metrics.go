package metrics

import (
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Counter Metrics = &EmptyMetrics{}
	once    sync.Once
)

// SetPrometheus replaces Counter with counters registered on the default
// prometheus registry. Only the first call has an effect.
func SetPrometheus() {
	once.Do(func() {
		Counter = NewPrometheus(prometheus.DefaultRegisterer)
	})
}

type Metrics interface {
	AddStoreSave(size int)
	AddStoreLoad(hit bool)
	AddStoreDelete()
	AddShellCommand(cmd string, ok bool)
}

var _ Metrics = (*EmptyMetrics)(nil)

type EmptyMetrics struct{}

func (m *EmptyMetrics) AddStoreSave(size int)               {}
func (m *EmptyMetrics) AddStoreLoad(hit bool)               {}
func (m *EmptyMetrics) AddStoreDelete()                     {}
func (m *EmptyMetrics) AddShellCommand(cmd string, ok bool) {}

var _ Metrics = (*Prometheus)(nil)

type Prometheus struct {
	TotalStoreSave   prometheus.Counter
	StoreSaveSize    prometheus.Histogram
	TotalStoreLoad   *prometheus.CounterVec
	TotalStoreDelete prometheus.Counter
	TotalCommand     *prometheus.CounterVec
}

func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	hostname, _ := os.Hostname()
	labels := prometheus.Labels{
		"hostname": hostname,
		"os":       runtime.GOOS,
		"arch":     runtime.GOARCH,
	}

	factory := promauto.With(reg)

	return &Prometheus{
		TotalStoreSave: factory.NewCounter(prometheus.CounterOpts{
			Name:        "dlist_store_save_total",
			Help:        "The total number of list snapshots saved",
			ConstLabels: labels,
		}),
		StoreSaveSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:        "dlist_store_save_size_bytes",
			Help:        "The size of saved list snapshots",
			Buckets:     prometheus.ExponentialBuckets(16, 4, 10),
			ConstLabels: labels,
		}),
		TotalStoreLoad: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "dlist_store_load_total",
			Help:        "The total number of list snapshot loads",
			ConstLabels: labels,
		}, []string{"hit"}),
		TotalStoreDelete: factory.NewCounter(prometheus.CounterOpts{
			Name:        "dlist_store_delete_total",
			Help:        "The total number of list snapshots deleted",
			ConstLabels: labels,
		}),
		TotalCommand: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "dlist_shell_command_total",
			Help:        "The total number of shell commands",
			ConstLabels: labels,
		}, []string{"command", "ok"}),
	}
}

func (p *Prometheus) AddStoreSave(size int) {
	p.TotalStoreSave.Inc()
	p.StoreSaveSize.Observe(float64(size))
}

func (p *Prometheus) AddStoreLoad(hit bool) {
	p.TotalStoreLoad.WithLabelValues(strconv.FormatBool(hit)).Inc()
}

func (p *Prometheus) AddStoreDelete() { p.TotalStoreDelete.Inc() }

func (p *Prometheus) AddShellCommand(cmd string, ok bool) {
	p.TotalCommand.WithLabelValues(cmd, strconv.FormatBool(ok)).Inc()
}
