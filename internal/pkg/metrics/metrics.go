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

	// 予約試行の総数（result: success, session_full, seat_unavailable, persistence_failure, validation_error）
	ReservationsTotal *prometheus.CounterVec

	// 予約試行の処理時間（result）
	ReservationDuration *prometheus.HistogramVec

	// 空席数と使用中座席数が一致しない上映の数
	InventoryDriftSessions prometheus.Gauge

	// 発券イベント送信の失敗数
	TicketEventPublishFailures prometheus.Counter
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
		ReservationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservations_total",
				Help: "Total number of seat reservation attempts by result",
			},
			[]string{"result"},
		),
		ReservationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reservation_duration_seconds",
				Help:    "Time spent on a seat reservation attempt",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"result"},
		),
		InventoryDriftSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "inventory_drift_sessions",
				Help: "Number of sessions whose free seat count disagrees with occupied seats",
			},
		),
		TicketEventPublishFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ticket_event_publish_failures_total",
				Help: "Total number of ticket issued events that could not be published",
			},
		),
	}

	// レジストリに登録
	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ReservationsTotal,
		m.ReservationDuration,
		m.InventoryDriftSessions,
		m.TicketEventPublishFailures,
	)

	return m
}

// ObserveReservation は予約試行の結果と処理時間を記録する
func (m *Metrics) ObserveReservation(result string, seconds float64) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(result).Inc()
	m.ReservationDuration.WithLabelValues(result).Observe(seconds)
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
