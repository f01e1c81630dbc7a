// Package metrics 提供基于Prometheus的指标收集
//
// 核心指标：
// 1. HTTP维度：请求总数、请求耗时分布（由Gin中间件采集）
// 2. 业务维度：借阅操作计数（borrow/return/renew/cancel/expire）、罚款金额
//
// 指标通过 /metrics 端点暴露，由Prometheus Server定期抓取
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标收集器
// 设计说明：使用独立的Registry而非默认全局Registry，便于测试时隔离
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	circulationOpsTotal *prometheus.CounterVec
	finesIssuedTotal    prometheus.Counter
	fineAmountCents     prometheus.Counter
}

// New 创建指标收集器并注册所有指标
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "library_http_requests_total",
			Help: "HTTP请求总数",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "library_http_request_duration_seconds",
			Help:    "HTTP请求耗时分布",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		circulationOpsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "library_circulation_operations_total",
			Help: "借阅操作总数（按操作类型与结果区分）",
		}, []string{"operation", "result"}),
		finesIssuedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "library_fines_issued_total",
			Help: "产生的罚款记录总数",
		}),
		fineAmountCents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "library_fine_amount_cents_total",
			Help: "产生的罚款累计金额（欧分）",
		}),
	}

	registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.circulationOpsTotal,
		m.finesIssuedTotal,
		m.fineAmountCents,
	)

	return m
}

// ObserveCirculation 记录一次借阅操作
// operation: borrow | return | renew | cancel | expire
// result: ok | error
func (m *Metrics) ObserveCirculation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.circulationOpsTotal.WithLabelValues(operation, result).Inc()
}

// ObserveFine 记录一笔罚款
func (m *Metrics) ObserveFine(amountCents int64) {
	m.finesIssuedTotal.Inc()
	m.fineAmountCents.Add(float64(amountCents))
}

// GinMiddleware HTTP指标采集中间件
// 注意：使用c.FullPath()而非c.Request.URL.Path，避免/books/123这类路径导致标签爆炸
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

// Handler 返回/metrics端点的HTTP处理器
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
