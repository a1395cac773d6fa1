package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// 业务操作
	TrainOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "train_operations_total",
			Help: "Total successful train mutations",
		},
		[]string{"operation"}, // create|update|patch|delete
	)
	Registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_registrations_total",
			Help: "User registration attempts by result",
		},
		[]string{"result"}, // success|rejected
	)

	registerOnce sync.Once
)

// Handler /metrics 端点
var Handler = promhttp.Handler

// Init 注册所有指标，可重复调用
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal)
		prometheus.MustRegister(RequestLatency)
		prometheus.MustRegister(TrainOperations)
		prometheus.MustRegister(Registrations)
	})
}

// GinMiddleware 记录请求数和耗时，route 使用路由模板避免标签基数过高
func GinMiddleware() gin.HandlerFunc {
	Init()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		RequestsTotal.WithLabelValues(route, c.Request.Method, status).Inc()
		RequestLatency.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
	}
}
