package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Pipeline
	RecordsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_records_processed_total",
			Help: "Total number of scraped records fed through the grouper",
		},
		[]string{"status"},
	)

	DuplicatesCollapsed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_duplicates_collapsed_total",
			Help: "Total number of tiered listings collapsed by the per-country filter",
		},
	)

	GroupedEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pipeline_grouped_entries",
			Help: "Number of grouped price points produced by the last run",
		},
	)

	ComparisonDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_comparison_duration_seconds",
			Help:    "Time taken to build and sort a comparison table",
			Buckets: prometheus.DefBuckets,
		},
	)

	RatesFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_rates_fetched_total",
			Help: "Total number of exchange-rate base fetches",
		},
		[]string{"status"},
	)

	// Consumer
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consumer_messages_processed_total",
			Help: "Total number of messages processed",
		},
		[]string{"status"},
	)

	MessageProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "consumer_message_processing_duration_seconds",
			Help:    "Time taken to process a message",
			Buckets: prometheus.DefBuckets,
		},
	)

	DatabaseInserts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consumer_database_inserts_total",
			Help: "Total number of database inserts",
		},
		[]string{"status"},
	)
)

func StartMetricsServer(addr string) error {
	http.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, nil)
}
