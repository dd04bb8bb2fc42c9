package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnfinder_cache_lookups_total",
		Help: "Cache lookups by cache and outcome",
	}, []string{"cache", "result"})
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "learnfinder_active_sessions",
		Help: "Sessions with live search state",
	})
	cacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "learnfinder_cache_evictions_total",
		Help: "Resource cache entries removed after change notifications",
	})
)
