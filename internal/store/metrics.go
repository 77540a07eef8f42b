package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// cacheLookups counts rank cache reads by backend and result (hit|miss).
var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "wordle_rank_cache_lookups_total",
	Help: "Rank cache lookups by backend and result",
}, []string{"backend", "result"})
