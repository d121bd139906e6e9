package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "univoto"

// APIMetrics agrupa as métricas HTTP e as métricas do processo eleitoral
type APIMetrics struct {
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	responseSize    *prometheus.SummaryVec
	activeRequests  *prometheus.GaugeVec
	errorsTotal     *prometheus.CounterVec
	rateLimited     *prometheus.CounterVec
	cacheHitRatio   *prometheus.GaugeVec
	breakerOpen     *prometheus.GaugeVec

	votesCast      prometheus.Counter
	voteRejections *prometheus.CounterVec
	tallyDuration  prometheus.Histogram
	logins         *prometheus.CounterVec
}

// NewRegistry cria um registro com os coletores de processo e runtime Go
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewAPIMetrics cria e registra as métricas no registrador informado
func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	factory := promauto.With(reg)

	return &APIMetrics{
		requestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total de requisições HTTP por rota, método e status",
			},
			[]string{"path", "method", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duração das requisições HTTP em segundos",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		responseSize: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Namespace:  namespace,
				Name:       "http_response_size_bytes",
				Help:       "Tamanho das respostas HTTP em bytes",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
			[]string{"path", "method"},
		),
		activeRequests: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_active_requests",
				Help:      "Requisições em processamento",
			},
			[]string{"path", "method"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_errors_total",
				Help:      "Total de erros por tipo",
			},
			[]string{"path", "method", "error_type"},
		),
		rateLimited: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_requests_total",
				Help:      "Total de requisições bloqueadas pelo rate limit",
			},
			[]string{"path", "method", "limit_type"},
		),
		cacheHitRatio: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cache_hit_ratio",
				Help:      "Taxa de acertos do cache (0.0 a 1.0)",
			},
			[]string{"cache_type"},
		),
		breakerOpen: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_open",
				Help:      "1 quando o circuit breaker está aberto",
			},
			[]string{"name"},
		),
		votesCast: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "votes_cast_total",
				Help:      "Votos registrados com sucesso",
			},
		),
		voteRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "vote_rejections_total",
				Help:      "Tentativas de voto rejeitadas por motivo",
			},
			[]string{"reason"},
		),
		tallyDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tally_compute_duration_seconds",
				Help:      "Tempo de leitura e agregação da apuração",
				Buckets:   prometheus.DefBuckets,
			},
		),
		logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "logins_total",
				Help:      "Tentativas de login por resultado",
			},
			[]string{"result"},
		),
	}
}

// RequestStarted registra o início de uma requisição
func (m *APIMetrics) RequestStarted(path, method string) {
	m.activeRequests.WithLabelValues(path, method).Inc()
}

// RequestCompleted registra a conclusão de uma requisição
func (m *APIMetrics) RequestCompleted(path, method, status string, duration time.Duration, responseSize int) {
	m.requestCounter.WithLabelValues(path, method, status).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
	m.responseSize.WithLabelValues(path, method).Observe(float64(responseSize))
	m.activeRequests.WithLabelValues(path, method).Dec()
}

func (m *APIMetrics) RequestError(path, method, errorType string) {
	m.errorsTotal.WithLabelValues(path, method, errorType).Inc()
}

func (m *APIMetrics) RateLimitExceeded(path, method, limitType string) {
	m.rateLimited.WithLabelValues(path, method, limitType).Inc()
}

func (m *APIMetrics) UpdateCacheHitRatio(cacheType string, hitRatio float64) {
	m.cacheHitRatio.WithLabelValues(cacheType).Set(hitRatio)
}

// CircuitBreakerStateChanged publica o estado de um circuit breaker
func (m *APIMetrics) CircuitBreakerStateChanged(name string, open bool) {
	v := 0.0
	if open {
		v = 1
	}
	m.breakerOpen.WithLabelValues(name).Set(v)
}

// VoteCast incrementa o contador de votos aceitos
func (m *APIMetrics) VoteCast() {
	m.votesCast.Inc()
}

// VoteRejected registra uma tentativa de voto recusada
func (m *APIMetrics) VoteRejected(reason string) {
	m.voteRejections.WithLabelValues(reason).Inc()
}

func (m *APIMetrics) TallyComputed(d time.Duration) {
	m.tallyDuration.Observe(d.Seconds())
}

// LoginAttempt registra o resultado de um login (success, invalid, error)
func (m *APIMetrics) LoginAttempt(result string) {
	m.logins.WithLabelValues(result).Inc()
}
