package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const ns = "sakura"

// Registry — свой реестр, без глобального DefaultRegisterer
var Registry = prometheus.NewRegistry()

var reg = promauto.With(Registry)

// загрузка в 32 МБ может идти секунды
var latencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// http: path — шаблон маршрута gin, не сырой URL
var (
	httpInFlight = reg.NewGauge(prometheus.GaugeOpts{
		Namespace: ns, Subsystem: "http", Name: "inflight_requests",
		Help: "HTTP requests being served right now.",
	})
	httpRequests = reg.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns, Subsystem: "http", Name: "requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "path", "status"})
	httpDuration = reg.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns, Subsystem: "http", Name: "request_duration_seconds",
		Help: "HTTP request latency by method and route.", Buckets: latencyBuckets,
	}, []string{"method", "path"})
)

// загрузки лендинга
var (
	uploadFiles = reg.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns, Subsystem: "landing", Name: "upload_files_total",
		Help: "Landing files by result (ok|error).",
	}, []string{"result"})
	uploadBytes = reg.NewCounter(prometheus.CounterOpts{
		Namespace: ns, Subsystem: "landing", Name: "upload_bytes_total",
		Help: "Bytes of landing files written to the upload dir.",
	})
)

// 1 — компонент смонтирован, 0 — выключен или деградировал
var components = reg.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: ns, Subsystem: "server", Name: "component_up",
	Help: "Optional component state: 1 mounted, 0 off or degraded.",
}, []string{"component"})

func init() {
	Registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler — GET /metrics
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware считает запросы; /metrics сам себя не считает.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		httpRequests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

func ObserveUpload(ok bool, size int64) {
	if !ok {
		uploadFiles.WithLabelValues("error").Inc()
		return
	}
	uploadFiles.WithLabelValues("ok").Inc()
	uploadBytes.Add(float64(size))
}

func SetComponent(name string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	components.WithLabelValues(name).Set(v)
}
