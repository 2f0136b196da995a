// Package metrics 提供基于Prometheus的业务指标
//
// 指标设计：
// - Counter（只增不减）：HTTP请求总数、成交笔数、缓存命中/未命中
// - Histogram（分布）：HTTP请求耗时、单笔交易金额
//
// 指标通过 /metrics 端点暴露，由Prometheus定期抓取
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal HTTP请求总数（按方法、路径、状态码）
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshop_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP请求耗时（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookshop_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// SalesCommittedTotal 成交的交易总笔数（一笔交易可含多本图书）
	SalesCommittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookshop_sales_committed_total",
			Help: "Total number of committed sale transactions",
		},
	)

	// SaleAmount 单笔交易金额分布（最小货币单位）
	SaleAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bookshop_sale_amount",
			Help:    "Distribution of committed sale transaction totals",
			Buckets: prometheus.ExponentialBuckets(100, 4, 8),
		},
	)

	// CacheHitsTotal 图书缓存命中次数
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookshop_book_cache_hits_total",
			Help: "Total number of book cache hits",
		},
	)

	// CacheMissesTotal 图书缓存未命中次数（含TTL过期）
	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookshop_book_cache_misses_total",
			Help: "Total number of book cache misses",
		},
	)

	// StockAdjustmentsTotal 库存调整次数（按方向）
	StockAdjustmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshop_stock_adjustments_total",
			Help: "Total number of manual stock adjustments",
		},
		[]string{"action"},
	)
)

// ObserveSale 记录一笔成交
func ObserveSale(total int64) {
	SalesCommittedTotal.Inc()
	SaleAmount.Observe(float64(total))
}
