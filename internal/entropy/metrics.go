package entropy

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// rankDuration tracks wall time of a Rank call by mode.
	rankDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wordle_rank_duration_seconds",
		Help:    "Duration of entropy ranking calls in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
	}, []string{"mode"})

	// guessesEvaluated counts guesses scored against a pool.
	guessesEvaluated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordle_rank_guesses_evaluated_total",
		Help: "Total guesses scored by the entropy ranker",
	}, []string{"mode"})

	rankIncomplete = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordle_rank_incomplete_total",
		Help: "Ranking calls stopped early by cancellation or deadline",
	}, []string{"mode"})
)
