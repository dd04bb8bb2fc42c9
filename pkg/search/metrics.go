package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchesDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnfinder_searches_total",
		Help: "The total number of dispatched searches",
	}, []string{"incremental"})
	staleResponses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "learnfinder_stale_responses_total",
		Help: "Responses dropped because a newer search superseded them",
	})
	searchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnfinder_search_errors_total",
		Help: "Failed searches by error kind",
	}, []string{"kind"})
	skippedSearches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "learnfinder_searches_skipped_total",
		Help: "Debounced searches skipped because the query did not change",
	})
)
