package wordtrie

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	operationCountMetric = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordtrie_operation_total",
			Help: "Number of trie operations run, by operation and outcome",
		},
		[]string{"operation", "success"},
	)

	operationDurationMetric = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "wordtrie_operation_duration_seconds",
			Help: "Histogram of trie operation durations in seconds",
			Objectives: map[float64]float64{
				0.5:  0.01,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.005,
			},
		},
		[]string{"operation"},
	)

	nodesCreatedCountMetric = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordtrie_trie_nodes_created_total",
			Help: "Number of trie nodes built while answering operations",
		},
		[]string{"operation"},
	)

	invalidInputCountMetric = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordtrie_invalid_input_total",
			Help: "Number of operations rejected because of characters outside a-z",
		},
		[]string{"operation"},
	)

	dictionaryWordsMetric = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wordtrie_dictionary_words_loaded",
			Help: "Number of dictionary words currently loaded",
		},
		[]string{"source"},
	)

	dictionaryReloadCountMetric = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordtrie_dictionary_reload_total",
			Help: "Total number of attempts to reload the dictionary",
		},
		[]string{"success"},
	)

	internalServerErrorCountMetric = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wordtrie_internal_server_error_total",
			Help: "Number of 500 Internal Server Error responses originating from wordtrie",
		},
	)
)

// RegisterMetrics registers the Prometheus metrics of this package. To use
// the default (global) registry, pass prometheus.DefaultRegisterer.
func RegisterMetrics(r prometheus.Registerer) {
	r.MustRegister(
		operationCountMetric,
		operationDurationMetric,
		nodesCreatedCountMetric,
		invalidInputCountMetric,
		dictionaryWordsMetric,
		dictionaryReloadCountMetric,
		internalServerErrorCountMetric,
	)
}
