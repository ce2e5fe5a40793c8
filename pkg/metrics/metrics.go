package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "marketing_dashboard"

// Metrics agrupa as métricas Prometheus da API
type Metrics struct {
	// HTTP
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Consultas aos provedores
	UpstreamQueries  *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	UpstreamRows     *prometheus.CounterVec

	// Credenciais
	TokenCache      *prometheus.CounterVec
	TokenRefreshes  *prometheus.CounterVec
	DefaultSections *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registra as métricas em reg. Com reg nil usa o registry padrão.
func New(reg *prometheus.Registry) *Metrics {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if reg != nil {
		registerer, gatherer = reg, reg
	}
	factory := promauto.With(registerer)

	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests handled",
			},
			[]string{"route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		UpstreamQueries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_queries_total",
				Help:      "Report queries issued to providers by outcome",
			},
			[]string{"source", "query", "outcome"},
		),
		UpstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_query_duration_seconds",
				Help:      "Report query latency per provider",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"source", "query"},
		),
		UpstreamRows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_rows_total",
				Help:      "Rows returned by providers",
			},
			[]string{"source", "query"},
		),
		TokenCache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "token_cache_lookups_total",
				Help:      "Access token cache lookups by result",
			},
			[]string{"service", "result"},
		),
		TokenRefreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "token_refreshes_total",
				Help:      "OAuth token refreshes by outcome",
			},
			[]string{"service", "outcome"},
		),
		DefaultSections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "defaulted_sections_total",
				Help:      "Response sections replaced by their default after a failed secondary query",
			},
			[]string{"source", "query"},
		),
		gatherer: gatherer,
	}
}

// Handler expõe as métricas no formato do Prometheus
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// RecordRequest registra uma requisição HTTP finalizada
func (m *Metrics) RecordRequest(route string, status int, latency time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(latency.Seconds())
}

// RecordUpstreamQuery registra o resultado de uma consulta a um provedor
func (m *Metrics) RecordUpstreamQuery(source, query string, rows int, err error, latency time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamQueries.WithLabelValues(source, query, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(source, query).Observe(latency.Seconds())
	if rows > 0 {
		m.UpstreamRows.WithLabelValues(source, query).Add(float64(rows))
	}
}

// RecordDefaultedSection registra uma seção preenchida com o valor padrão
func (m *Metrics) RecordDefaultedSection(source, query string) {
	if m == nil {
		return
	}
	m.DefaultSections.WithLabelValues(source, query).Inc()
}

// RecordTokenCache registra um hit ou miss no cache de tokens
func (m *Metrics) RecordTokenCache(service string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.TokenCache.WithLabelValues(service, result).Inc()
}

// RecordTokenRefresh registra uma renovação de token
func (m *Metrics) RecordTokenRefresh(service string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.TokenRefreshes.WithLabelValues(service, outcome).Inc()
}
