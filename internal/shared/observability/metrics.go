package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "uilint_parsing_seconds",
		Help:    "Time spent parsing a source file into component trees.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	WalkDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "uilint_walk_seconds",
		Help:    "Time spent walking one component tree against the rule set.",
		Buckets: prometheus.DefBuckets,
	})

	FindingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uilint_findings_total",
		Help: "Total findings emitted, labeled by severity.",
	}, []string{"severity"})

	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uilint_runs_total",
		Help: "Total lint runs, labeled by verdict.",
	}, []string{"verdict"})

	ParseFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uilint_parse_failures_total",
		Help: "Total source files rejected by the parser frontend.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uilint_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	ActiveRules = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "uilint_active_rules",
		Help: "Number of rules in the resolved registry for the current run.",
	})
)
