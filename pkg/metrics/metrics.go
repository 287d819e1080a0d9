// Package metrics 基于Prometheus的指标定义
//
// 指标分组：
//   - HTTP: 请求总数、耗时、并发数（middleware.Metrics写入）
//   - 订单: 下单成功/失败、下单耗时、状态变更
//   - 数据库: 每条SQL的耗时与错误（查询观察插件写入）
//   - 熔断器: 状态、请求结果（事件发布器写入）
//   - 消息: 事件发布结果
//
// 命名规范：Counter以_total结尾，Histogram以单位结尾（_seconds）。
// 标签只使用有限取值（method、route模板、status），不要用user_id等高基数字段。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTPRequestsTotal HTTP请求总数，标签：method、path（路由模板）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时，标签：method、path
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// OrdersCreatedTotal 下单成功总数
	OrdersCreatedTotal prometheus.Counter

	// OrdersFailedTotal 下单失败总数
	OrdersFailedTotal prometheus.Counter

	// OrderCreationDuration 下单（结算事务）耗时
	OrderCreationDuration prometheus.Histogram

	// OrderStatusChangesTotal 订单状态变更次数，标签：status（目标状态）
	OrderStatusChangesTotal *prometheus.CounterVec

	// DBQueryDuration SQL耗时，标签：operation（create/query/update/delete/row/raw）、table
	DBQueryDuration *prometheus.HistogramVec

	// DBQueryErrorsTotal SQL错误总数，标签：operation
	DBQueryErrorsTotal *prometheus.CounterVec

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN），标签：name
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数，标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// MessagesPublishedTotal 事件发布总数，标签：exchange、routing_key、result（success/failure）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标到默认Registry
// 可重复调用，只有第一次生效
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "下单成功总数",
		},
	)

	OrdersFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_failed_total",
			Help: "下单失败总数",
		},
	)

	OrderCreationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_creation_duration_seconds",
			Help:    "结算事务耗时（秒）",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	OrderStatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_changes_total",
			Help: "订单状态变更次数",
		},
		[]string{"status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "SQL执行耗时（秒）",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation", "table"},
	)

	DBQueryErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "SQL执行错误总数",
		},
		[]string{"operation"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "事件发布总数",
		},
		[]string{"exchange", "routing_key", "result"},
	)
}

// 以下辅助函数在InitMetrics之前调用时不做任何事

// IncCounter 递增Counter
func IncCounter(counter prometheus.Counter) {
	if counter == nil {
		return
	}
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	if gauge == nil {
		return
	}
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}
