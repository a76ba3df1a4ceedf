package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	BusPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bus_published_total",
			Help: "Total number of messages published to the bus (count)",
		},
		[]string{"channel", "status"},
	)

	BusConsumedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bus_consumed_total",
			Help: "Total number of messages consumed from the bus (count)",
		},
		[]string{"channel", "status"},
	)

	ChatResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_responses_total",
			Help: "Total number of chat responses by processing outcome (count)",
		},
		[]string{"outcome"},
	)

	ChatProcessingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_processing_duration_ms",
			Help:    "Chat request processing duration in milliseconds",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		},
		[]string{"outcome"},
	)

	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_analyses_total",
			Help: "Total number of document analyses by type and risk level (count)",
		},
		[]string{"analysis_type", "risk_level"},
	)

	AnalysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "document_analysis_duration_ms",
			Help:    "Document analysis duration in milliseconds",
			Buckets: []float64{100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000},
		},
		[]string{"analysis_type", "status"},
	)

	GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_generation_duration_ms",
			Help:    "AI backend generation duration in milliseconds",
			Buckets: []float64{100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000},
		},
		[]string{"status"},
	)

	GenerationTokens = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ai_generation_tokens_total",
			Help: "Total number of tokens reported by the AI backend (count)",
		},
	)

	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open) (state code)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker (count)",
		},
		[]string{"name", "state"},
	)

	CircuitBreakerFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_failures_total",
			Help: "Total number of failed requests through circuit breaker (count)",
		},
		[]string{"name"},
	)
)

func RegisterGatewayMetrics() {
	prometheus.MustRegister(BusPublishedTotal)
	prometheus.MustRegister(BusConsumedTotal)
}

func RegisterChatMetrics() {
	prometheus.MustRegister(ChatResponsesTotal)
	prometheus.MustRegister(ChatProcessingDuration)
}

func RegisterAnalysisMetrics() {
	prometheus.MustRegister(AnalysesTotal)
	prometheus.MustRegister(AnalysisDuration)
}

func RegisterGenerationMetrics() {
	prometheus.MustRegister(GenerationDuration)
	prometheus.MustRegister(GenerationTokens)
}

func RegisterCircuitBreakerMetrics() {
	prometheus.MustRegister(CircuitBreakerState)
	prometheus.MustRegister(CircuitBreakerRequests)
	prometheus.MustRegister(CircuitBreakerFailures)
}

func ObserveChatDuration(d time.Duration, outcome string) {
	ChatProcessingDuration.WithLabelValues(outcome).Observe(float64(d.Milliseconds()))
}

func ObserveAnalysisDuration(d time.Duration, analysisType, status string) {
	AnalysisDuration.WithLabelValues(analysisType, status).Observe(float64(d.Milliseconds()))
}

func ObserveGenerationDuration(d time.Duration, status string) {
	GenerationDuration.WithLabelValues(status).Observe(float64(d.Milliseconds()))
}
