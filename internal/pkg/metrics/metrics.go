package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics はアプリケーションのメトリクスを管理する
type Metrics struct {
	// HTTPリクエストの総数（method, path, status_code）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPリクエストのレイテンシ（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// 面接操作の総数（operation: create/update/delete, status: success, conflict, validation_error, not_found, storage_error）
	InterviewOperationsTotal *prometheus.CounterVec

	// スナップショット永続化の所要時間（backend, status: success/failed）
	SnapshotPersistDuration *prometheus.HistogramVec

	// 登録済み面接イベント数
	ScheduledInterviews prometheus.Gauge
}

// New は新しいMetricsインスタンスを作成し、デフォルトレジストリに登録する
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry は指定したレジストリにメトリクスを登録する
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		InterviewOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interview_operations_total",
				Help: "Total number of interview scheduling operations",
			},
			[]string{"operation", "status"},
		),
		SnapshotPersistDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "snapshot_persist_duration_seconds",
				Help:    "Time spent persisting the event snapshot",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"backend", "status"},
		),
		ScheduledInterviews: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "scheduled_interviews",
				Help: "Current number of scheduled interview events",
			},
		),
	}

	// レジストリに登録
	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.InterviewOperationsTotal,
		m.SnapshotPersistDuration,
		m.ScheduledInterviews,
	)

	return m
}

// デフォルトのメトリクスインスタンス
var defaultMetrics *Metrics

// Init はデフォルトのメトリクスインスタンスを初期化する
func Init() *Metrics {
	defaultMetrics = New()
	return defaultMetrics
}

// Get はデフォルトのメトリクスインスタンスを返す
func Get() *Metrics {
	return defaultMetrics
}
