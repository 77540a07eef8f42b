package game

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordle_sessions_started_total",
		Help: "Total solve sessions created",
	})

	// sessionsFinished counts sessions reaching a terminal state by outcome.
	sessionsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordle_sessions_finished_total",
		Help: "Total solve sessions finished by outcome",
	}, []string{"outcome"})
)
