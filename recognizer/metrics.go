package recognizer

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects recognizer counters.
type Metrics struct {
	Items         prometheus.Counter
	Scores        prometheus.Counter
	ScoreFailures prometheus.Counter
	ItemSeconds   prometheus.Histogram
}

// NewMetrics creates the recognizer metrics and registers them with reg.
// A nil reg leaves the metrics unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {

	m := &Metrics{
		Items: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "signrec",
			Name:      "items_total",
			Help:      "Number of test items scored.",
		}),
		Scores: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "signrec",
			Name:      "scores_total",
			Help:      "Number of (item, label) scoring calls.",
		}),
		ScoreFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "signrec",
			Name:      "score_failures_total",
			Help:      "Number of scoring calls that failed and were recorded as negative infinity.",
		}),
		ItemSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "signrec",
			Name:      "item_seconds",
			Help:      "Time to score one item against every model.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Items, m.Scores, m.ScoreFailures, m.ItemSeconds} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
