package telemetry

import (
	"skusync/config"
	"skusync/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric struct
type Metric struct {
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec
	SyncRowsTotal       *prometheus.CounterVec
	SyncRunsTotal       *prometheus.CounterVec
	RemoteCallDuration  *prometheus.HistogramVec
	config              *config.Configuration
}

// NewMetric 建立所有指標
func NewMetric(config *config.Configuration) *Metric {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}
	}
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	return &Metric{
		config: config,
		HttpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricHttpRequestsTotal),
				Help: "Total received API requests",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    config.App.Name + "_" + string(core.MetricHttpRequestDuration),
				Help:    "Request duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		SyncRowsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricSyncRowsTotal),
				Help: "Processed feed rows by outcome",
			},
			labelNames(core.MetricLabelFeed, core.MetricLabelOutcome),
		),
		SyncRunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricSyncRunsTotal),
				Help: "Completed sync runs by final status",
			},
			labelNames(core.MetricLabelFeed, core.MetricLabelStatus),
		),
		RemoteCallDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    config.App.Name + "_" + string(core.MetricRemoteCallDuration),
				Help:    "Remote admin API call duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelOperation),
		),
	}
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
